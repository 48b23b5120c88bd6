// Package selector defines the pluggable selector-construction
// collaborator the rule builder consults when it reaches a style rule's
// prelude, and a default implementation backed by cascadia.
package selector

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/solheim/cssdom/token"
)

// Selector is the constructed form of a style rule's prelude. Text is
// always the normalized (whitespace-collapsed) source text; Matcher is nil
// when the constructor could not compile the prelude (an unsupported or
// malformed selector) — the rule is still kept, just without a usable
// matcher.
type Selector struct {
	Text    string
	Matcher []cascadia.Sel
}

// SelectorConstructor builds a Selector from the raw token run making up a
// style rule's prelude (everything between the previous boundary and the
// rule's "{").
type SelectorConstructor interface {
	Construct(tokens []token.Token) Selector
}

// Default is the built-in SelectorConstructor: it reassembles the
// prelude's textual form and hands it to cascadia, the same selector
// engine used by the retrieval pack's HTML-inlining example. A selector
// cascadia rejects is still returned (Matcher == nil), matching the
// parser's recover-and-continue error policy rather than dropping the
// rule.
type Default struct{}

// NewDefault returns the cascadia-backed SelectorConstructor.
func NewDefault() Default { return Default{} }

func (Default) Construct(tokens []token.Token) Selector {
	text := Text(tokens)
	sel, err := cascadia.ParseGroup(text)
	if err != nil {
		return Selector{Text: text}
	}
	return Selector{Text: text, Matcher: sel}
}

// Text reassembles tokens into a single whitespace-normalized string, the
// form both the default constructor and diagnostics use to refer to a
// selector.
func Text(tokens []token.Token) string {
	serialized := token.Serialize(tokens)
	return strings.Join(strings.Fields(serialized), " ")
}
