// Package cssdom is a standards-conformant CSS parser: feed it source
// text or bytes, get back a Stylesheet object graph (rules, declarations,
// values) with structured, recoverable error reporting.
package cssdom

import (
	"github.com/solheim/cssdom/diag"
	"github.com/solheim/cssdom/registry"
	"github.com/solheim/cssdom/rule"
	"github.com/solheim/cssdom/selector"
)

// Stylesheet is an ordered sequence of top-level [rule.Rule]s, in source
// order. A rule's parent-rule back-pointer is exposed via
// [rule.ParentRule] — a weak relation, not ownership; the Stylesheet
// exclusively owns the rule tree itself. There is deliberately no stored
// "owning stylesheet" pointer on each rule: a rule belongs to exactly one
// Stylesheet for its lifetime (the one that built it), and the grammar
// packages (rule, declaration, value) stay dependency-free of this root
// package so they can be tested and reused independently.
type Stylesheet struct {
	Rules  []rule.Rule
	Errors []diag.Error
}

// defaultCollaborators returns the built-in PropertyRegistry and
// SelectorConstructor used whenever a caller does not supply its own.
func defaultCollaborators() (registry.PropertyRegistry, selector.SelectorConstructor) {
	return registry.NewDefault(), selector.NewDefault()
}
