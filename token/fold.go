package token

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var foldCaser = cases.Lower(language.Und)

// FoldIdent lowercases an identifier-class string (property name,
// at-keyword, keyword value) the Unicode-aware way, generalizing the
// teacher's ASCII-only lowercasing to non-ASCII CSS identifiers.
func FoldIdent(s string) string { return foldCaser.String(s) }
