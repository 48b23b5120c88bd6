package token

import "github.com/solheim/cssdom/diag"

// Cursor is a restartable view over a flat []Token with single-token
// lookahead, adding explicit whitespace-skipping and sub-range-carving
// operations the grammar needs on top of plain index advancement.
type Cursor struct {
	tokens []Token
	pos    int

	// Sink, when set, receives diagnostics for recoverable structural
	// problems the cursor itself detects (e.g. an unbalanced block).
	// Builders that own a *diag.Sink assign it after NewCursor.
	Sink *diag.Sink
}

// NewCursor wraps tokens for sequential consumption.
func NewCursor(tokens []Token) *Cursor {
	return &Cursor{tokens: tokens}
}

func (c *Cursor) report(pos Position, code diag.Code, msg string) {
	if c.Sink == nil {
		return
	}
	c.Sink.Report(diag.New(code, msg, pos.Diag()))
}

// Eof reports whether the cursor has consumed every token.
func (c *Cursor) Eof() bool { return c.pos >= len(c.tokens) }

// Current returns the next token without consuming it, or nil at EOF.
func (c *Cursor) Current() Token {
	if c.Eof() {
		return nil
	}
	return c.tokens[c.pos]
}

// Advance returns the next token and consumes it, or nil at EOF.
func (c *Cursor) Advance() Token {
	if c.Eof() {
		return nil
	}
	t := c.tokens[c.pos]
	c.pos++
	return t
}

// Reconsume steps the cursor back by one, so the next Advance/Current
// returns the previously-consumed token again. Only valid immediately
// after an Advance.
func (c *Cursor) Reconsume() {
	if c.pos > 0 {
		c.pos--
	}
}

// SkipWhitespace consumes a (possibly empty) run of leading [Whitespace]
// and [Comment] tokens.
func (c *Cursor) SkipWhitespace() {
	for !c.Eof() {
		switch c.Current().(type) {
		case Whitespace, Comment:
			c.pos++
		default:
			return
		}
	}
}

// AdvanceToNonWhitespace consumes one token, then any further whitespace,
// and returns the first significant token reached (or nil at EOF).
func (c *Cursor) AdvanceToNonWhitespace() Token {
	c.Advance()
	c.SkipWhitespace()
	return c.Current()
}

// NextSignificant consumes and discards whitespace/comment tokens and
// returns the next significant token, or nil at EOF.
func (c *Cursor) NextSignificant() Token {
	c.SkipWhitespace()
	return c.Advance()
}

// isOpener/isCloser classify the flat bracket tokens the tokenizer emits.
func isOpener(t Token) bool {
	switch t.(type) {
	case CurlyOpen, RoundOpen, SquareOpen, Function:
		return true
	}
	return false
}

func isCloser(t Token) (Token, bool) {
	switch t.(type) {
	case CurlyClose, RoundClose, SquareClose:
		return t, true
	}
	return nil, false
}

func matches(opener, closer Token) bool {
	switch opener.(type) {
	case CurlyOpen:
		_, ok := closer.(CurlyClose)
		return ok
	case SquareOpen:
		_, ok := closer.(SquareClose)
		return ok
	case RoundOpen, Function:
		_, ok := closer.(RoundClose)
		return ok
	}
	return false
}

// SkipToSemicolon advances the cursor up to (but not past) the next
// top-level [Semicolon], honoring bracket nesting so a ";" inside a
// function argument or block does not terminate the skip early. If no
// semicolon is found, the cursor is left at EOF.
func (c *Cursor) SkipToSemicolon() {
	var stack []Token
	for !c.Eof() {
		t := c.Current()
		if _, ok := t.(Semicolon); ok && len(stack) == 0 {
			return
		}
		if isOpener(t) {
			stack = append(stack, t)
		} else if closer, ok := isCloser(t); ok && len(stack) > 0 && matches(stack[len(stack)-1], closer) {
			stack = stack[:len(stack)-1]
		}
		c.pos++
	}
}

// SkipPastSemicolon is SkipToSemicolon followed by consuming the
// semicolon itself, if one was found.
func (c *Cursor) SkipPastSemicolon() {
	c.SkipToSemicolon()
	if _, ok := c.Current().(Semicolon); ok {
		c.pos++
	}
}

// SliceUntilSemicolon returns the tokens up to (not including) the next
// top-level ";", consuming that semicolon (if present) from the parent
// cursor. Used to carve out one declaration's worth of tokens.
func (c *Cursor) SliceUntilSemicolon() []Token {
	start := c.pos
	c.SkipToSemicolon()
	slice := c.tokens[start:c.pos]
	if _, ok := c.Current().(Semicolon); ok {
		c.pos++
	}
	return slice
}

// SliceCurrentBlock assumes a [CurlyOpen] was just consumed by the caller,
// and returns the tokens up to (not including) the matching [CurlyClose],
// consuming that closing brace from the parent cursor. Nested "{"/"}"
// pairs, as well as "("/")"  and "["/"]" pairs, are counted so an unrelated
// closing bracket inside the block does not end the slice early.
func (c *Cursor) SliceCurrentBlock() []Token {
	start := c.pos
	depth := 1
	var stack []Token
	stack = append(stack, CurlyOpen{})
	for !c.Eof() {
		t := c.Current()
		if isOpener(t) {
			stack = append(stack, t)
			depth++
		} else if closer, ok := isCloser(t); ok {
			if matches(stack[len(stack)-1], closer) {
				stack = stack[:len(stack)-1]
				depth--
				if depth == 0 {
					slice := c.tokens[start:c.pos]
					c.pos++ // consume the matching "}"
					return slice
				}
			}
		}
		c.pos++
	}
	// Unbalanced input: return everything remaining.
	var pos Position
	if start < len(c.tokens) {
		pos = c.tokens[start].Pos()
	} else if start > 0 {
		pos = c.tokens[start-1].Pos()
	}
	c.report(pos, diag.UnbalancedBracket, "unbalanced block: missing closing '}'")
	return c.tokens[start:c.pos]
}

// SlicePrelude scans tokens from the cursor's current position up to a
// top-level "{" (left in place, not consumed) or a top-level ";"
// (consumed), honoring bracket nesting so neither terminator inside a
// function call or bracketed block ends the scan early. This mirrors the
// teacher's consumeRule/consumeAtRule prelude scan. ok is true only when a
// "{" terminated the scan; a ";" or EOF means the prelude had no block.
func (c *Cursor) SlicePrelude() (prelude []Token, ok bool) {
	start := c.pos
	var stack []Token
	for !c.Eof() {
		t := c.Current()
		if len(stack) == 0 {
			if _, isCurly := t.(CurlyOpen); isCurly {
				return c.tokens[start:c.pos], true
			}
			if _, isSemi := t.(Semicolon); isSemi {
				prelude = c.tokens[start:c.pos]
				c.pos++
				return prelude, false
			}
		}
		if isOpener(t) {
			stack = append(stack, t)
		} else if closer, okc := isCloser(t); okc && len(stack) > 0 && matches(stack[len(stack)-1], closer) {
			stack = stack[:len(stack)-1]
		}
		c.pos++
	}
	return c.tokens[start:c.pos], false
}

// Remaining returns every token not yet consumed, without advancing.
func (c *Cursor) Remaining() []Token {
	return c.tokens[c.pos:]
}

// Mark returns an opaque cursor position for later Reset, used by grammars
// that need unbounded lookahead (e.g. the ratio syntax's "<number> /
// <number>" two-token lookahead) rather than Reconsume's fixed one-step
// rewind.
func (c *Cursor) Mark() int { return c.pos }

// Reset rewinds the cursor to a position previously returned by Mark.
func (c *Cursor) Reset(mark int) { c.pos = mark }

// RemoveWhitespace returns a copy of tokens with [Whitespace] and
// [Comment] entries removed.
func RemoveWhitespace(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		switch t.(type) {
		case Whitespace, Comment:
			continue
		}
		out = append(out, t)
	}
	return out
}

// SplitOnComma splits a flat token slice on top-level [Comma] tokens,
// honoring bracket nesting (a comma inside a function call does not
// split).
func SplitOnComma(tokens []Token) [][]Token {
	var (
		result  [][]Token
		current []Token
		stack   []Token
	)
	for _, t := range tokens {
		if _, ok := t.(Comma); ok && len(stack) == 0 {
			result = append(result, current)
			current = nil
			continue
		}
		if isOpener(t) {
			stack = append(stack, t)
		} else if closer, ok := isCloser(t); ok && len(stack) > 0 && matches(stack[len(stack)-1], closer) {
			stack = stack[:len(stack)-1]
		}
		current = append(current, t)
	}
	result = append(result, current)
	return result
}
