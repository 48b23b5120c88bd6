// Package diag defines the structured error taxonomy shared by every layer
// of the parsing core (tokenizer, value/declaration/rule builders, driver),
// so a single [Sink] can collect diagnostics from all of them without the
// lower layers depending on the driver package.
package diag

import "fmt"

// Code classifies an [Error] by the grammar layer that detected it.
type Code string

const (
	// Tokenization errors.
	UnterminatedString Code = "unterminated-string"
	InvalidEscape      Code = "invalid-escape"
	BadUrl             Code = "bad-url"
	InvalidCharacter   Code = "invalid-character"

	// Grammar errors.
	InputUnexpected   Code = "input-unexpected"
	MissingSemicolon  Code = "missing-semicolon"
	UnbalancedBracket Code = "unbalanced-bracket"
	UnexpectedEof     Code = "unexpected-eof"

	// Semantic errors (informational; do not abort construction).
	InvalidProperty Code = "invalid-property"
	InvalidValue    Code = "invalid-value"
	UnknownAtRule   Code = "unknown-at-rule"

	// Driver errors.
	InvalidOperation Code = "invalid-operation"
	SyntaxError      Code = "syntax-error"
)

// Position is the minimal line/column pair an [Error] is anchored to. It is
// a structural copy of token.Position, duplicated here so this package has
// no dependency on token (which itself reports diagnostics through this
// package).
type Position struct {
	Line   int
	Column int
}

// Error is the payload delivered to an error-handler subscriber: one per
// reported problem. Line and Column are 1-based when the reporting site had
// a token to anchor to; reports made without one (e.g. a rule missing its
// "{" at end of input, or driver misuse) carry Line 0, Column 0.
type Error struct {
	Code    Code
	Message string
	Line    int
	Column  int
}

func (e Error) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Code, e.Line, e.Column, e.Message)
}

// New builds an Error from any position-like value exposing Line/Column via
// the Position shape above.
func New(code Code, message string, pos Position) Error {
	return Error{Code: code, Message: message, Line: pos.Line, Column: pos.Column}
}

// Handler receives each diagnostic as it is produced, in source order.
// Implementations must be safe to call reentrantly from the parser's
// worker (see the concurrency notes on Parser.OnError).
type Handler func(Error)

// Sink accumulates diagnostics and forwards them to an optional Handler as
// they arrive, preserving source order. The zero value is ready to use.
type Sink struct {
	handler Handler
	errors  []Error
}

// SetHandler installs (or clears, with nil) the subscriber notified on
// every Report call.
func (s *Sink) SetHandler(h Handler) { s.handler = h }

// Report records an error and, if a handler is installed, notifies it
// immediately (before Report returns), matching the ordering guarantee
// that ErrorOccurred events are delivered during the parse call that
// produced them.
func (s *Sink) Report(e Error) {
	s.errors = append(s.errors, e)
	if s.handler != nil {
		s.handler(e)
	}
}

// Errors returns every diagnostic reported so far, in source order.
func (s *Sink) Errors() []Error { return s.errors }
