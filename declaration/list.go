package declaration

import (
	"github.com/solheim/cssdom/diag"
	"github.com/solheim/cssdom/registry"
	"github.com/solheim/cssdom/token"
)

// BuildList parses tokens (a rule body: a style/page/font-face block, or a
// keyframe rule's body) as a sequence of ";"-terminated declarations,
// skipping empty declarations (bare ";" or whitespace-only spans) and
// recovering from malformed ones by resuming at the next ";". quirks is
// forwarded to every declaration's value grammar.
func BuildList(tokens []token.Token, reg registry.PropertyRegistry, mode Mode, sink *diag.Sink, quirks bool) []Declaration {
	c := token.NewCursor(tokens)
	c.Sink = sink
	var out []Declaration
	for !c.Eof() {
		c.SkipWhitespace()
		if c.Eof() {
			break
		}
		if _, ok := c.Current().(token.Semicolon); ok {
			c.Advance()
			continue
		}

		declTokens := c.SliceUntilSemicolon()
		if len(token.RemoveWhitespace(declTokens)) == 0 {
			continue
		}
		inner := token.NewCursor(declTokens)
		decl, ok := Build(inner, reg, mode, sink, quirks)
		if ok {
			out = append(out, decl)
		}
	}
	return out
}
