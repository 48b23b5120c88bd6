// Package token implements the CSS Syntax Level 3 tokenizer: a byte stream
// goes in, a flat slice of [Token] comes out, plus a [Cursor] for walking
// that slice the way the grammar (declarations, rules, values) needs to.
package token

import (
	"fmt"

	"github.com/solheim/cssdom/diag"
)

// Position is a 1-based line/column pair within the source a [Token] was
// read from.
type Position struct {
	Line   int
	Column int
}

func newPosition(line, column int) Position {
	return Position{Line: line, Column: column}
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Diag converts to the position shape used by the shared diagnostics
// package.
func (p Position) Diag() diag.Position {
	return diag.Position{Line: p.Line, Column: p.Column}
}
