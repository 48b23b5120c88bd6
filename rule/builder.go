package rule

import (
	"strings"

	"github.com/solheim/cssdom/declaration"
	"github.com/solheim/cssdom/diag"
	"github.com/solheim/cssdom/registry"
	"github.com/solheim/cssdom/selector"
	"github.com/solheim/cssdom/token"
)

// Builder carries the collaborators and accumulated state shared across an
// entire rule tree construction: the property/selector external
// collaborators, the error sink, and the open-rule stack that lets a
// nested rule record its Parent as it is built.
type Builder struct {
	Registry            registry.PropertyRegistry
	SelectorConstructor selector.SelectorConstructor
	Mode                declaration.Mode
	Sink                *diag.Sink
	// Quirks enables the legacy value grammar (hashless colors) for every
	// declaration this builder constructs.
	Quirks bool

	openStack []Rule
}

func (b *Builder) currentParent() Rule {
	if len(b.openStack) == 0 {
		return nil
	}
	return b.openStack[len(b.openStack)-1]
}

func (b *Builder) push(r Rule) { b.openStack = append(b.openStack, r) }
func (b *Builder) pop()        { b.openStack = b.openStack[:len(b.openStack)-1] }

func (b *Builder) report(tok token.Token, code diag.Code, msg string) {
	var pos token.Position
	if tok != nil {
		pos = tok.Pos()
	}
	b.reportPos(pos, code, msg)
}

func (b *Builder) reportPos(pos token.Position, code diag.Code, msg string) {
	if b.Sink == nil {
		return
	}
	b.Sink.Report(diag.New(code, msg, pos.Diag()))
}

// AppendRules parses tokens as a sequence of rules (a stylesheet's
// top-level content, or the content of a grouping at-rule's block).
// topLevel controls whether CDO/CDC are silently skipped (true, as at
// stylesheet top level) or would be unexpected (false, inside a block) and
// whether @charset's First flag can ever be set.
func (b *Builder) AppendRules(tokens []token.Token, topLevel bool) []Rule {
	c := token.NewCursor(tokens)
	c.Sink = b.Sink
	var rules []Rule
	isFirst := topLevel

	for {
		c.SkipWhitespace()
		if c.Eof() {
			break
		}
		switch tok := c.Current().(type) {
		case token.Cdo, token.Cdc:
			if !topLevel {
				b.report(tok, diag.InputUnexpected, "unexpected CDO/CDC outside stylesheet top level")
			}
			c.Advance()
			continue
		case token.AtKeyword:
			c.Advance()
			if r := b.buildAtRule(tok, c, isFirst); r != nil {
				rules = append(rules, r)
			}
		default:
			if r := b.buildStyleRule(c); r != nil {
				rules = append(rules, r)
			}
		}
		isFirst = false
	}
	return rules
}

func (b *Builder) buildStyleRule(c *token.Cursor) Rule {
	pos := c.Current().Pos()
	prelude, ok := c.SlicePrelude()
	if !ok {
		b.report(nil, diag.UnexpectedEof, "style rule missing '{'")
		return nil
	}
	c.Advance() // consume "{"
	block := c.SliceCurrentBlock()

	var sel selector.Selector
	if b.SelectorConstructor != nil {
		sel = b.SelectorConstructor.Construct(prelude)
	} else {
		sel = selector.Selector{Text: selector.Text(prelude)}
	}

	r := &Style{base: base{P: pos, Parent: b.currentParent()}, Selector: sel}
	b.push(r)
	r.Declarations = declaration.BuildList(block, b.Registry, b.Mode, b.Sink, b.Quirks)
	b.pop()
	return r
}

func (b *Builder) buildAtRule(kw token.AtKeyword, c *token.Cursor, isFirst bool) Rule {
	pos := kw.Pos()
	name := token.FoldIdent(kw.Value)

	switch name {
	case "media":
		return b.buildMedia(pos, c)
	case "import":
		return b.buildImport(pos, c)
	case "charset":
		return b.buildCharset(pos, c, isFirst)
	case "namespace":
		return b.buildNamespace(pos, c)
	case "page":
		return b.buildPage(pos, c)
	case "font-face":
		return b.buildFontFace(pos, c)
	case "keyframes":
		return b.buildKeyframes(pos, c)
	case "supports":
		return b.buildSupports(pos, c)
	case "document":
		return b.buildDocument(pos, c)
	default:
		return b.buildUnknown(pos, kw.Value, c)
	}
}

func (b *Builder) buildMedia(pos token.Position, c *token.Cursor) Rule {
	prelude, ok := c.SlicePrelude()
	if !ok {
		b.report(nil, diag.UnexpectedEof, "@media rule missing '{'")
		return nil
	}
	c.Advance()
	block := c.SliceCurrentBlock()

	r := &Media{base: base{P: pos, Parent: b.currentParent()}, MediaQueryList: parseMediaQueryList(prelude, b)}
	b.push(r)
	r.Rules = b.AppendRules(block, false)
	b.pop()
	return r
}

func (b *Builder) buildSupports(pos token.Position, c *token.Cursor) Rule {
	prelude, ok := c.SlicePrelude()
	if !ok {
		b.report(nil, diag.UnexpectedEof, "@supports rule missing '{'")
		return nil
	}
	c.Advance()
	block := c.SliceCurrentBlock()

	r := &Supports{base: base{P: pos, Parent: b.currentParent()}, ConditionText: selector.Text(prelude)}
	b.push(r)
	r.Rules = b.AppendRules(block, false)
	b.pop()
	return r
}

func (b *Builder) buildDocument(pos token.Position, c *token.Cursor) Rule {
	prelude, ok := c.SlicePrelude()
	if !ok {
		b.report(nil, diag.UnexpectedEof, "@document rule missing '{'")
		return nil
	}
	c.Advance()
	block := c.SliceCurrentBlock()

	r := &Document{base: base{P: pos, Parent: b.currentParent()}, Conditions: b.parseDocumentConditions(prelude)}
	b.push(r)
	r.Rules = b.AppendRules(block, false)
	b.pop()
	return r
}

func (b *Builder) parseDocumentConditions(prelude []token.Token) []DocumentCondition {
	groups := token.SplitOnComma(token.RemoveWhitespace(prelude))
	var conditions []DocumentCondition
	for i, group := range groups {
		if i > 0 && len(group) == 0 {
			b.report(nil, diag.InputUnexpected, "@document: empty condition between commas")
			continue
		}
		if len(group) == 0 {
			continue
		}
		switch t := group[0].(type) {
		case token.Url:
			conditions = append(conditions, DocumentCondition{Kind: ConditionURL, Text: t.Value})
		case token.Function:
			switch strings.ToLower(t.Name) {
			case "url":
				conditions = append(conditions, DocumentCondition{Kind: ConditionURL, Text: functionArgText(group)})
			case "url-prefix":
				conditions = append(conditions, DocumentCondition{Kind: ConditionURLPrefix, Text: functionArgText(group)})
			case "domain":
				conditions = append(conditions, DocumentCondition{Kind: ConditionDomain, Text: functionArgText(group)})
			case "regexp":
				conditions = append(conditions, DocumentCondition{Kind: ConditionRegExp, Text: functionArgText(group)})
			default:
				b.report(t, diag.UnknownAtRule, "@document: unrecognized condition function "+t.Name)
			}
		default:
			b.report(t, diag.InputUnexpected, "@document: expected url()/url-prefix()/domain()/regexp()")
		}
		span := 1
		if _, ok := group[0].(token.Function); ok {
			for span < len(group) {
				span++
				if _, ok := group[span-1].(token.RoundClose); ok {
					break
				}
			}
		}
		if span < len(group) {
			b.report(group[span], diag.InputUnexpected, "@document: missing comma between conditions")
		}
	}
	return conditions
}

// functionArgText extracts the text of a single-string-argument function's
// body, e.g. regexp("foo") -> "foo", given the function's full flat token
// span (Function, ..., RoundClose).
func functionArgText(tokens []token.Token) string {
	for _, t := range tokens {
		if s, ok := t.(token.String); ok {
			return s.Value
		}
		if id, ok := t.(token.Ident); ok {
			return id.Value
		}
	}
	return ""
}

func (b *Builder) buildImport(pos token.Position, c *token.Cursor) Rule {
	prelude, hitBrace := c.SlicePrelude()
	if hitBrace {
		b.report(nil, diag.InputUnexpected, "@import rule must not have a block")
	}
	cur := token.NewCursor(prelude)
	cur.SkipWhitespace()
	var href string
	if !cur.Eof() {
		switch t := cur.Advance().(type) {
		case token.String:
			href = t.Value
		case token.Url:
			href = t.Value
		case token.Function:
			if !strings.EqualFold(t.Name, "url") {
				b.report(t, diag.InputUnexpected, "@import: expected a string or url()")
				break
			}
			for !cur.Eof() {
				arg := cur.Advance()
				if s, ok := arg.(token.String); ok {
					href = s.Value
				}
				if _, ok := arg.(token.RoundClose); ok {
					break
				}
			}
		default:
			b.report(t, diag.InputUnexpected, "@import: expected a string or url()")
		}
	}
	return &Import{
		base:           base{P: pos, Parent: b.currentParent()},
		Href:           href,
		MediaQueryList: parseMediaQueryList(cur.Remaining(), b),
	}
}

func (b *Builder) buildCharset(pos token.Position, c *token.Cursor, isFirst bool) Rule {
	prelude, hitBrace := c.SlicePrelude()
	if hitBrace {
		b.report(nil, diag.InputUnexpected, "@charset rule must not have a block")
	}
	cur := token.NewCursor(token.RemoveWhitespace(prelude))
	var encoding string
	if !cur.Eof() {
		if s, ok := cur.Advance().(token.String); ok {
			encoding = s.Value
		} else {
			b.report(nil, diag.InputUnexpected, "@charset: expected a quoted encoding name")
		}
	}
	if !isFirst {
		b.report(nil, diag.InputUnexpected, "@charset must be the first rule in the stylesheet")
	}
	return &Charset{base: base{P: pos, Parent: b.currentParent()}, Encoding: encoding, First: isFirst}
}

func (b *Builder) buildNamespace(pos token.Position, c *token.Cursor) Rule {
	prelude, hitBrace := c.SlicePrelude()
	if hitBrace {
		b.report(nil, diag.InputUnexpected, "@namespace rule must not have a block")
	}
	cur := token.NewCursor(token.RemoveWhitespace(prelude))
	var prefix, uri string
	if !cur.Eof() {
		if id, ok := cur.Current().(token.Ident); ok {
			prefix = id.Value
			cur.Advance()
		}
	}
	if !cur.Eof() {
		switch t := cur.Advance().(type) {
		case token.String:
			uri = t.Value
		case token.Url:
			uri = t.Value
		default:
			b.report(t, diag.InputUnexpected, "@namespace: expected a uri")
		}
	}
	return &Namespace{base: base{P: pos, Parent: b.currentParent()}, Prefix: prefix, URI: uri}
}

func (b *Builder) buildPage(pos token.Position, c *token.Cursor) Rule {
	prelude, ok := c.SlicePrelude()
	if !ok {
		b.report(nil, diag.UnexpectedEof, "@page rule missing '{'")
		return nil
	}
	c.Advance()
	block := c.SliceCurrentBlock()

	r := &Page{base: base{P: pos, Parent: b.currentParent()}, Selector: selector.Text(prelude)}
	b.push(r)
	r.Declarations = declaration.BuildList(block, b.Registry, b.Mode, b.Sink, b.Quirks)
	b.pop()
	return r
}

func (b *Builder) buildFontFace(pos token.Position, c *token.Cursor) Rule {
	prelude, ok := c.SlicePrelude()
	if !ok {
		b.report(nil, diag.UnexpectedEof, "@font-face rule missing '{'")
		return nil
	}
	if len(token.RemoveWhitespace(prelude)) > 0 {
		b.report(nil, diag.InputUnexpected, "@font-face does not take a prelude")
	}
	c.Advance()
	block := c.SliceCurrentBlock()

	r := &FontFace{base: base{P: pos, Parent: b.currentParent()}}
	b.push(r)
	r.Declarations = declaration.BuildList(block, b.Registry, b.Mode, b.Sink, b.Quirks)
	b.pop()
	return r
}

func (b *Builder) buildKeyframes(pos token.Position, c *token.Cursor) Rule {
	prelude, ok := c.SlicePrelude()
	if !ok {
		b.report(nil, diag.UnexpectedEof, "@keyframes rule missing '{'")
		return nil
	}
	var name string
	for _, t := range token.RemoveWhitespace(prelude) {
		if id, ok := t.(token.Ident); ok {
			name = id.Value
			break
		}
	}
	c.Advance()
	block := c.SliceCurrentBlock()

	r := &Keyframes{base: base{P: pos, Parent: b.currentParent()}, Name: name}
	b.push(r)
	r.Keyframes = b.buildKeyframeRules(block)
	b.pop()
	return r
}

func (b *Builder) buildKeyframeRules(tokens []token.Token) []Keyframe {
	c := token.NewCursor(tokens)
	c.Sink = b.Sink
	var out []Keyframe
	for {
		c.SkipWhitespace()
		if c.Eof() {
			break
		}
		keyTokens, ok := c.SlicePrelude()
		if !ok {
			b.report(nil, diag.UnexpectedEof, "keyframe rule missing '{'")
			break
		}
		c.Advance()
		block := c.SliceCurrentBlock()
		out = append(out, Keyframe{
			KeyText:      keyframeKeyText(keyTokens),
			Declarations: declaration.BuildList(block, b.Registry, b.Mode, b.Sink, b.Quirks),
		})
	}
	return out
}

func keyframeKeyText(tokens []token.Token) string {
	groups := token.SplitOnComma(token.RemoveWhitespace(tokens))
	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		parts = append(parts, token.Serialize(g))
	}
	return strings.Join(parts, ", ")
}

func (b *Builder) buildUnknown(pos token.Position, atKeyword string, c *token.Cursor) Rule {
	b.reportPos(pos, diag.UnknownAtRule, "unrecognized at-rule @"+atKeyword)
	prelude, hitBrace := c.SlicePrelude()
	raw := token.Serialize(prelude)
	if hitBrace {
		c.Advance()
		block := c.SliceCurrentBlock()
		raw += "{" + token.Serialize(block) + "}"
	}
	return &Unknown{base: base{P: pos, Parent: b.currentParent()}, AtKeyword: atKeyword, RawText: raw}
}

// parseMediaQueryList keeps each comma-separated group's
// whitespace-normalized text verbatim, rather than only accepting bare
// media-type idents, since full media-feature grammar evaluation is out
// of scope for this builder.
func parseMediaQueryList(tokens []token.Token, b *Builder) []string {
	if len(token.RemoveWhitespace(tokens)) == 0 {
		return []string{"all"}
	}
	groups := token.SplitOnComma(tokens)
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		if len(token.RemoveWhitespace(g)) == 0 {
			b.report(nil, diag.InputUnexpected, "empty media query in list")
			continue
		}
		out = append(out, selector.Text(g))
	}
	return out
}
