package cssdom

import (
	"strings"
	"sync"

	"github.com/solheim/cssdom/declaration"
	"github.com/solheim/cssdom/diag"
	"github.com/solheim/cssdom/internal/charstream"
	"github.com/solheim/cssdom/registry"
	"github.com/solheim/cssdom/rule"
	"github.com/solheim/cssdom/selector"
	"github.com/solheim/cssdom/token"
	"github.com/solheim/cssdom/value"
)

// state is the Parser's Fresh -> Running -> Done lifecycle, guarded by mu.
type state int

const (
	stateFresh state = iota
	stateRunning
	stateDone
)

// Parser drives one construction pass over CSS source into a [Stylesheet].
// A Parser instance is not shared between concurrent callers; mu exists
// only to prevent a double-start race between parse()/parseAsync(), per
// the concurrency model's single lock.
type Parser struct {
	source      []byte
	quirks      bool
	charsetHint string

	registry            registry.PropertyRegistry
	selectorConstructor selector.SelectorConstructor
	mode                declaration.Mode

	mu         sync.Mutex
	st         state
	result     *Stylesheet
	sink       diag.Sink
	handler    diag.Handler
	asyncOnce  sync.Once
	asyncDone  chan struct{}
}

// New builds a Parser over source, ready to run with default collaborators
// (the built-in [registry.Default] and cascadia-backed [selector.Default]),
// in lenient mode (the registry's verdict is advisory, never rejecting a
// declaration outright).
func New(source string) *Parser {
	reg, sel := defaultCollaborators()
	return &Parser{
		source:              []byte(source),
		registry:            reg,
		selectorConstructor: sel,
		mode:                declaration.Lenient,
	}
}

// NewBytes is New over a raw byte source.
func NewBytes(source []byte) *Parser {
	p := New("")
	p.source = source
	return p
}

// WithCharsetHint sets an external charset label (from an HTTP
// Content-Type parameter, say) used to decode the source before
// tokenizing, when the source itself carries no BOM. A BOM, when present,
// always wins over this hint. Must be called before parse()/parse_async().
func (p *Parser) WithCharsetHint(hint string) *Parser {
	p.charsetHint = hint
	return p
}

// WithRegistry overrides the PropertyRegistry consulted during
// declaration construction. Must be called before parse()/parse_async().
func (p *Parser) WithRegistry(reg registry.PropertyRegistry) *Parser {
	p.registry = reg
	return p
}

// WithSelectorConstructor overrides the SelectorConstructor consulted for
// style-rule preludes. Must be called before parse()/parse_async().
func (p *Parser) WithSelectorConstructor(sel selector.SelectorConstructor) *Parser {
	p.selectorConstructor = sel
	return p
}

// Strict switches declaration validation to reject (rather than merely
// flag) values the PropertyRegistry rejects.
func (p *Parser) Strict() *Parser {
	p.mode = declaration.Strict
	return p
}

// SetQuirksMode sets the parser's quirks flag; see QuirksMode for its
// effect on the value grammar.
func (p *Parser) SetQuirksMode(on bool) { p.quirks = on }

// QuirksMode reports whether quirks mode is set. When on, the value
// builder reads a bare "#" delimiter followed by a token of up to six hex
// digits as a color, in every property; numeric parsing is the same with
// or without quirks, and the tokenizer itself is unaffected.
func (p *Parser) QuirksMode() bool { return p.quirks }

// OnError subscribes handler to every diagnostic reported during parsing,
// in source order, delivered during (never after) the parse call that
// produced it. Passing nil clears the subscription. Must be set before
// parsing starts to see every diagnostic.
func (p *Parser) OnError(handler diag.Handler) {
	p.handler = handler
	p.sink.SetHandler(handler)
}

// Parse runs the construction pass synchronously on the caller's
// goroutine. Calling Parse after ParseAsync has started fails with
// diag.InvalidOperation, reported through OnError if subscribed and
// returned as an error. Repeated calls after completion are no-ops.
func (p *Parser) Parse() error {
	p.mu.Lock()
	switch {
	case p.st == stateDone && p.asyncDone == nil:
		p.mu.Unlock()
		return nil
	case p.st != stateFresh:
		p.mu.Unlock()
		err := diag.New(diag.InvalidOperation, "parse already started", diag.Position{})
		p.sink.Report(err)
		return err
	}
	p.st = stateRunning
	p.mu.Unlock()

	p.run()

	p.mu.Lock()
	p.st = stateDone
	p.mu.Unlock()
	return nil
}

// Task is the handle returned by ParseAsync.
type Task struct {
	done chan struct{}
}

// Wait blocks until the asynchronous parse completes.
func (t *Task) Wait() { <-t.done }

// ParseAsync starts the same construction pass on a worker goroutine and
// returns immediately with a [Task] handle. A subsequent Parse call fails
// with diag.InvalidOperation once the async run has started.
func (p *Parser) ParseAsync() *Task {
	p.mu.Lock()
	if p.st != stateFresh {
		p.mu.Unlock()
		return &Task{done: closedChan()}
	}
	p.st = stateRunning
	p.asyncDone = make(chan struct{})
	done := p.asyncDone
	p.mu.Unlock()

	go func() {
		p.run()
		p.mu.Lock()
		p.st = stateDone
		p.mu.Unlock()
		close(done)
	}()

	return &Task{done: done}
}

func closedChan() chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}

// Result lazily drives Parse on first access (synchronously, if nothing
// has started it yet) and returns the populated Stylesheet.
func (p *Parser) Result() *Stylesheet {
	p.asyncOnce.Do(func() {
		p.mu.Lock()
		fresh := p.st == stateFresh
		p.mu.Unlock()
		if fresh {
			p.Parse()
		}
	})
	if p.asyncDone != nil {
		<-p.asyncDone
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.result
}

func (p *Parser) run() {
	hint := p.charsetHint
	if bom := charstream.Sniff(p.source); bom != "" {
		hint = bom
	}
	decoded := p.source
	if stream, err := charstream.New(p.source, hint); err == nil {
		decoded = stream.Bytes()
	}
	tokens := token.Tokenize(decoded, true, &p.sink)
	b := &rule.Builder{
		Registry:            p.registry,
		SelectorConstructor: p.selectorConstructor,
		Mode:                p.mode,
		Sink:                &p.sink,
		Quirks:              p.quirks,
	}
	rules := b.AppendRules(tokens, true)
	p.mu.Lock()
	p.result = &Stylesheet{Rules: rules, Errors: p.sink.Errors()}
	p.mu.Unlock()
}

// --- static convenience entry points -------------------------------------
//
// Every entry point below disables strict property validation (lenient
// accept) regardless of what a caller passes for quirksMode — the
// instance API is the only way to opt into strict mode.

// ParseStylesheet parses text as a complete stylesheet.
func ParseStylesheet(text string, quirksMode bool) *Stylesheet {
	p := New(text)
	p.SetQuirksMode(quirksMode)
	return p.Result()
}

// ParseRule parses text as a single rule (style rule or at-rule),
// reporting diag.SyntaxError if text is fundamentally malformed (e.g.
// starts with CDO/CDC) but otherwise still recovering within the
// fragment.
func ParseRule(text string, quirksMode bool) (rule.Rule, []diag.Error) {
	var sink diag.Sink
	tokens := token.Tokenize([]byte(text), true, &sink)
	c := token.NewCursor(tokens)
	c.SkipWhitespace()
	if c.Eof() {
		sink.Report(diag.New(diag.SyntaxError, "empty rule", diag.Position{}))
		return nil, sink.Errors()
	}
	if _, ok := c.Current().(token.Cdo); ok {
		sink.Report(diag.New(diag.SyntaxError, "unexpected CDO at top level", c.Current().Pos().Diag()))
		return nil, sink.Errors()
	}
	if _, ok := c.Current().(token.Cdc); ok {
		sink.Report(diag.New(diag.SyntaxError, "unexpected CDC at top level", c.Current().Pos().Diag()))
		return nil, sink.Errors()
	}
	reg, sel := defaultCollaborators()
	b := &rule.Builder{Registry: reg, SelectorConstructor: sel, Mode: declaration.Lenient, Sink: &sink, Quirks: quirksMode}
	rules := b.AppendRules(c.Remaining(), false)
	if len(rules) == 0 {
		return nil, sink.Errors()
	}
	return rules[0], sink.Errors()
}

// ParseDeclaration parses text as a single declaration.
func ParseDeclaration(text string) (declaration.Declaration, []diag.Error) {
	var sink diag.Sink
	tokens := token.Tokenize([]byte(text), true, &sink)
	c := token.NewCursor(tokens)
	reg, _ := defaultCollaborators()
	decl, ok := declaration.Build(c, reg, declaration.Lenient, &sink, false)
	if !ok {
		sink.Report(diag.New(diag.SyntaxError, "malformed declaration", diag.Position{}))
	}
	return decl, sink.Errors()
}

// ParseDeclarations parses text as a ";"-separated declaration list (a
// rule body without its surrounding braces).
func ParseDeclarations(text string) ([]declaration.Declaration, []diag.Error) {
	var sink diag.Sink
	tokens := token.Tokenize([]byte(text), true, &sink)
	reg, _ := defaultCollaborators()
	decls := declaration.BuildList(tokens, reg, declaration.Lenient, &sink, false)
	return decls, sink.Errors()
}

// ParseValue parses text as a single atomic value.
func ParseValue(text string) (value.Value, []diag.Error) {
	var sink diag.Sink
	tokens := token.Tokenize([]byte(text), true, &sink)
	c := token.NewCursor(tokens)
	v, ok := value.Read(c, &sink, false)
	if !ok {
		sink.Report(diag.New(diag.SyntaxError, "malformed value", diag.Position{}))
	}
	return v, sink.Errors()
}

// ParseValueList parses text as a whitespace-separated value list.
func ParseValueList(text string) (value.List, []diag.Error) {
	var sink diag.Sink
	tokens := token.Tokenize([]byte(text), true, &sink)
	c := token.NewCursor(tokens)
	list := value.ValueList(c, &sink, false)
	return list, sink.Errors()
}

// ParseSelector parses text as a selector prelude.
func ParseSelector(text string) (selector.Selector, []diag.Error) {
	var sink diag.Sink
	tokens := token.Tokenize([]byte(text), true, &sink)
	_, sel := defaultCollaborators()
	return sel.Construct(tokens), sink.Errors()
}

// ParseKeyframeRule parses text as a single keyframe rule (e.g.
// "50% { opacity: 0.5 }"), returning its key text and declarations.
func ParseKeyframeRule(text string) (rule.Keyframe, []diag.Error) {
	var sink diag.Sink
	tokens := token.Tokenize([]byte(text), true, &sink)
	c := token.NewCursor(tokens)
	c.Sink = &sink
	keyTokens, ok := c.SlicePrelude()
	if !ok {
		sink.Report(diag.New(diag.SyntaxError, "keyframe rule missing '{'", diag.Position{}))
		return rule.Keyframe{}, sink.Errors()
	}
	c.Advance()
	block := c.SliceCurrentBlock()
	reg, _ := defaultCollaborators()

	keyGroups := token.SplitOnComma(token.RemoveWhitespace(keyTokens))
	parts := make([]string, 0, len(keyGroups))
	for _, g := range keyGroups {
		parts = append(parts, token.Serialize(g))
	}
	return rule.Keyframe{
		KeyText:      strings.Join(parts, ", "),
		Declarations: declaration.BuildList(block, reg, declaration.Lenient, &sink, false),
	}, sink.Errors()
}
