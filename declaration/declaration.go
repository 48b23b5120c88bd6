// Package declaration builds [Declaration] values (property: value pairs)
// from a token cursor, dispatching property/value validation to a
// pluggable registry rather than hardcoding it.
package declaration

import (
	"strings"

	"github.com/solheim/cssdom/diag"
	"github.com/solheim/cssdom/registry"
	"github.com/solheim/cssdom/token"
	"github.com/solheim/cssdom/value"
)

// Declaration is a single "property: value" pair, optionally marked
// "!important". Name is lower-cased at construction, matching the CSS
// case-insensitivity rule for property names.
type Declaration struct {
	Name      string
	Value     value.Value
	Important bool
}

// Mode controls how a declaration whose property the registry rejects is
// handled.
type Mode int

const (
	// Lenient keeps a registry-rejected declaration as a generic
	// {name, value, important} triple. This is the default used by every
	// static convenience entry point.
	Lenient Mode = iota
	// Strict discards a registry-rejected declaration entirely.
	Strict
)

// Build consumes one declaration from c: an [token.Ident] property name,
// ":", a value (via [value.MultiValues]), and an optional trailing
// "!important". c is expected to hold exactly this declaration's tokens
// (as produced by [token.Cursor.SliceUntilSemicolon]); Build reads the
// declaration from its start, reporting malformed input to sink. Tokens
// left after the value and any "!important" are not consumed.
//
// Build returns (decl, true) on success, or (Declaration{}, false) if the
// registry rejected the value under Strict mode, or the declaration was
// too malformed to construct at all (e.g. no property name present). quirks
// enables the legacy value grammar (hashless colors) for this declaration.
func Build(c *token.Cursor, reg registry.PropertyRegistry, mode Mode, sink *diag.Sink, quirks bool) (Declaration, bool) {
	c.SkipWhitespace()
	if c.Eof() {
		return Declaration{}, false
	}

	nameTok, ok := c.Current().(token.Ident)
	if !ok {
		report(sink, c.Current(), diag.InputUnexpected, "expected property name")
		return Declaration{}, false
	}
	c.Advance()
	name := token.FoldIdent(nameTok.Value)

	c.SkipWhitespace()
	if c.Eof() {
		report(sink, nil, diag.InvalidCharacter, "expected ':' after property name")
		return Declaration{}, false
	}
	if _, ok := c.Current().(token.Colon); !ok {
		report(sink, c.Current(), diag.InvalidCharacter, "expected ':' after property name")
		return Declaration{}, false
	}
	c.Advance()

	values := value.MultiValues(c, sink, quirks)
	v := value.AsValue(values)
	if v == nil {
		report(sink, nameTok, diag.InputUnexpected, "expected a value after ':'")
		return Declaration{}, false
	}

	important := false
	c.SkipWhitespace()
	if d, ok := c.Current().(token.Delim); ok && d.Value == '!' {
		mark := c.Mark()
		c.Advance()
		c.SkipWhitespace()
		if id, ok := c.Current().(token.Ident); ok && strings.EqualFold(id.Value, "important") {
			c.Advance()
			important = true
		} else {
			c.Reset(mark)
		}
	}

	decl := Declaration{Name: name, Value: v, Important: important}

	if reg != nil && v != nil {
		switch reg.Validate(name, v) {
		case registry.Invalid:
			report(sink, nameTok, diag.InvalidProperty, "value rejected by property registry: "+name)
			if mode == Strict {
				return Declaration{}, false
			}
		}
	}

	return decl, true
}

func report(sink *diag.Sink, tok token.Token, code diag.Code, msg string) {
	if sink == nil {
		return
	}
	var pos diag.Position
	if tok != nil {
		pos = tok.Pos().Diag()
	}
	sink.Report(diag.New(code, msg, pos))
}
