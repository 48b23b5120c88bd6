// Package charstream turns a raw byte source into the decoded UTF-8 buffer
// the tokenizer's preprocessing step expects, folding in an optional
// external charset hint (a "@charset" sniff, a BOM, an HTTP Content-Type
// parameter) before any CSS grammar runs. It does no line/column tracking;
// token positions are computed by the tokenizer.
package charstream

import (
	"bytes"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// Stream holds a fully decoded, UTF-8 byte buffer ready for [token.Tokenize].
// Decoding happens once, up front, matching the tokenizer's own eager,
// single-pass design: there is no benefit to a streaming rune reader when
// every downstream consumer wants a materialized []byte anyway.
type Stream struct {
	bytes []byte
}

// New decodes raw using the encoding named by hint (an IANA charset label
// such as "utf-8", "iso-8859-1" or "windows-1252", as would be sniffed from
// a "@charset" rule, a byte-order mark or a Content-Type header). An empty
// or unrecognized hint is treated as UTF-8, matching the CSS Syntax Level 3
// default.
func New(raw []byte, hint string) (*Stream, error) {
	if hint == "" {
		return &Stream{bytes: raw}, nil
	}
	enc, err := htmlindex.Get(hint)
	if err != nil {
		return &Stream{bytes: raw}, nil
	}
	if enc == encoding.Nop || isUTF8(enc) {
		return &Stream{bytes: raw}, nil
	}
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, err
	}
	return &Stream{bytes: decoded}, nil
}

// NewFromReader reads r to completion and decodes it as New would.
func NewFromReader(r io.Reader, hint string) (*Stream, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return New(raw, hint)
}

// Bytes returns the decoded UTF-8 source, ready for tokenization.
func (s *Stream) Bytes() []byte { return s.bytes }

// Sniff inspects the first few bytes of raw for a UTF-8/UTF-16 byte-order
// mark, returning the charset label it implies, or "" if none is present.
// A BOM takes priority over any other charset hint per the CSS spec's
// "determine the fallback encoding" algorithm.
func Sniff(raw []byte) string {
	switch {
	case bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}):
		return "utf-8"
	case bytes.HasPrefix(raw, []byte{0xFE, 0xFF}):
		return "utf-16be"
	case bytes.HasPrefix(raw, []byte{0xFF, 0xFE}):
		return "utf-16le"
	default:
		return ""
	}
}

func isUTF8(enc encoding.Encoding) bool {
	name, _ := htmlindex.Name(enc)
	return name == "utf-8"
}
