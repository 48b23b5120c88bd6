package value

import (
	"strconv"
	"strings"

	"github.com/solheim/cssdom/diag"
	"github.com/solheim/cssdom/token"
)

func report(sink *diag.Sink, pos token.Position, code diag.Code, msg string) {
	if sink == nil {
		return
	}
	sink.Report(diag.New(code, msg, pos.Diag()))
}

// atTerminator reports whether the cursor is sitting on a token that ends
// an atomic value (top-level comma/semicolon, or a bracket the caller owns
// the matching close of — e.g. the ")" ending the enclosing function call).
func atTerminator(c *token.Cursor) bool {
	if c.Eof() {
		return true
	}
	switch t := c.Current().(type) {
	case token.Comma, token.Semicolon, token.RoundClose, token.CurlyClose:
		return true
	case token.Delim:
		// A bare "!" at this position is the start of "!important", which
		// belongs to the declaration grammar, not the value grammar.
		return t.Value == '!'
	}
	return false
}

// Read consumes one atomic Value from c, advancing the cursor past it, or
// returns (nil, false) if the cursor is at a terminator/EOF with nothing to
// read. A [token.Hash] that does not parse as a hex color is skipped
// (consumed, but reported to sink) per the ValueBuilder mapping table.
// quirks enables the legacy color grammar for a bare "#" delimiter followed
// by a token of up to six hex digits, in addition to the standard
// [token.Hash] form. A hex run with no "#" at all ("color: ff0000") is read
// as an ordinary identifier or number, with or without quirks.
func Read(c *token.Cursor, sink *diag.Sink, quirks bool) (Value, bool) {
	c.SkipWhitespace()
	if atTerminator(c) {
		return nil, false
	}

	tok := c.Advance()
	pos := tok.Pos()

	switch t := tok.(type) {
	case token.String:
		return Primitive{base: base{pos}, PrimitiveUnit: UnitString, Text: t.Value}, true

	case token.Url:
		return Primitive{base: base{pos}, PrimitiveUnit: UnitUri, Text: t.Value}, true

	case token.Ident:
		switch strings.ToLower(t.Value) {
		case "inherit":
			return Inherit{base: base{pos}}, true
		case "initial":
			return Initial{base: base{pos}}, true
		}
		return Primitive{base: base{pos}, PrimitiveUnit: UnitIdent, Text: t.Value}, true

	case token.Percentage:
		return readNumericOrRatio(c, pos, UnitPercentage, t.Representation+"%", t.Value, "")

	case token.Number:
		return readNumericOrRatio(c, pos, UnitNumber, t.Representation, t.Value, "")

	case token.Dimension:
		unit := unitFor(strings.ToLower(t.Unit))
		return readNumericOrRatio(c, pos, unit, t.Representation+t.Unit, t.Value, t.Unit)

	case token.Hash:
		if prim, ok := hexColor(pos, t); ok {
			return prim, true
		}
		report(sink, pos, diag.InvalidValue, "hash is not a valid hex color: #"+t.Value)
		return Read(c, sink, quirks)

	case token.Delim:
		if t.Value == '#' && quirks {
			if prim, ok := legacyHashColor(c, pos); ok {
				return prim, true
			}
		}
		report(sink, pos, diag.InvalidValue, "unrecognized delimiter in value position: "+string(t.Value))
		return Read(c, sink, quirks)

	case token.Function:
		args := MultiValues(c, sink, quirks)
		if !c.Eof() {
			if _, ok := c.Current().(token.RoundClose); ok {
				c.Advance()
			}
		}
		return Function{base: base{pos}, Name: strings.ToLower(t.Name), Args: args}, true

	case token.Colon:
		// A bare ":" can never start a value; its presence here is the
		// clearest sign that a ";" was dropped between two declarations
		// and their tokens ran together.
		report(sink, pos, diag.MissingSemicolon, "unexpected ':' in value position, likely a missing ';' before the next declaration")
		return Read(c, sink, quirks)

	default:
		// Anything else (a stray delimiter, bracket) does not map to a
		// value primitive; report it and read past it.
		report(sink, pos, diag.InvalidValue, "unrecognized token in value position")
		return Read(c, sink, quirks)
	}
}

// readNumericOrRatio builds the Primitive for a number/percentage/dimension
// token just consumed, folding in a following "/ <number>" into a single
// Unknown-unit Primitive bearing the combined textual form (the ratio
// syntax used by "font" shorthand and "aspect-ratio").
func readNumericOrRatio(c *token.Cursor, pos token.Position, unit Unit, text string, num float32, dimUnit string) (Value, bool) {
	mark := c.Mark()
	c.SkipWhitespace()
	if !c.Eof() {
		if d, ok := c.Current().(token.Delim); ok && d.Value == '/' {
			c.Advance()
			c.SkipWhitespace()
			if !c.Eof() {
				if n, ok := c.Current().(token.Number); ok {
					c.Advance()
					combined := text + "/" + n.Representation
					return Primitive{base: base{pos}, PrimitiveUnit: UnitUnknown, Text: combined}, true
				}
			}
		}
	}
	c.Reset(mark)
	return Primitive{base: base{pos}, PrimitiveUnit: unit, Text: text, Number: num, DimensionUnit: dimUnit}, true
}

// hexColor parses a [token.Hash]'s name as a 3/4/6/8-digit hex color,
// reconstructing "#rrggbb"-style text. Any other length or non-hex
// character means the hash does not represent a color.
func hexColor(pos token.Position, h token.Hash) (Primitive, bool) {
	name := h.Value
	switch len(name) {
	case 3, 4, 6, 8:
	default:
		return Primitive{}, false
	}
	for _, r := range name {
		if !isHexDigit(r) {
			return Primitive{}, false
		}
	}
	return Primitive{base: base{pos}, PrimitiveUnit: UnitColor, Text: "#" + strings.ToLower(name)}, true
}

// legacyHashColor handles a bare Delim('#') not glued to a [token.Hash] by
// the tokenizer (e.g. "#" followed by a token the hash sub-grammar would
// not itself absorb): reconstruct a color from up to 6 hex digits in the
// very next token's textual form, without consuming anything if that
// token is not entirely hex digits.
func legacyHashColor(c *token.Cursor, pos token.Position) (Primitive, bool) {
	if c.Eof() {
		return Primitive{}, false
	}
	var text string
	switch t := c.Current().(type) {
	case token.Ident:
		text = t.Value
	case token.Number:
		text = t.Representation
	case token.Dimension:
		text = t.Representation + t.Unit
	default:
		return Primitive{}, false
	}
	if len(text) > 6 || len(text) == 0 {
		return Primitive{}, false
	}
	for _, r := range text {
		if !isHexDigit(r) {
			return Primitive{}, false
		}
	}
	c.Advance()
	return Primitive{base: base{pos}, PrimitiveUnit: UnitColor, Text: "#" + strings.ToLower(text)}, true
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// ValueList accumulates whitespace-separated Values from c until a
// top-level comma, semicolon, or block/function end, returning a
// non-comma-separated [List].
func ValueList(c *token.Cursor, sink *diag.Sink, quirks bool) List {
	var items []Value
	for {
		c.SkipWhitespace()
		v, ok := Read(c, sink, quirks)
		if !ok {
			break
		}
		items = append(items, v)
	}
	var pos token.Position
	if len(items) > 0 {
		pos = items[0].Pos()
	}
	return List{base: base{pos}, Items: items, CommaSeparated: false}
}

// MultiValues reads comma-separated groups of whitespace-separated values
// from c until a semicolon, block/function end, or EOF. A singleton group
// collapses to its single inner value (or, for an empty input, to nothing);
// more than one group produces flattened Values with the group boundaries
// preserved as nested [List]s only when a group itself has more than one
// item.
func MultiValues(c *token.Cursor, sink *diag.Sink, quirks bool) []Value {
	var groups []List
	for {
		group := ValueList(c, sink, quirks)
		groups = append(groups, group)
		c.SkipWhitespace()
		if c.Eof() {
			break
		}
		if _, ok := c.Current().(token.Comma); ok {
			c.Advance()
			continue
		}
		break
	}

	collapse := func(g List) Value {
		if len(g.Items) == 1 {
			return g.Items[0]
		}
		return g
	}

	if len(groups) == 1 {
		g := groups[0]
		if len(g.Items) == 0 {
			return nil
		}
		return []Value{collapse(g)}
	}

	out := make([]Value, 0, len(groups))
	for _, g := range groups {
		out = append(out, collapse(g))
	}
	return out
}

// AsValue reduces a MultiValues result to the single Value a Declaration
// stores: the lone value directly when there is exactly one, or a
// comma-separated List wrapping all of them otherwise.
func AsValue(values []Value) Value {
	if len(values) == 0 {
		return nil
	}
	if len(values) == 1 {
		return values[0]
	}
	return List{base: base{values[0].Pos()}, Items: values, CommaSeparated: true}
}

// ParseFloat reads a raw numeric representation back out as a float32. A
// representation that does not parse returns 0 rather than an error,
// mirroring the value grammar's best-effort posture.
func ParseFloat(representation string) float32 {
	f, err := strconv.ParseFloat(representation, 32)
	if err != nil {
		return 0
	}
	return float32(f)
}
