package token

import (
	"fmt"
	"strings"
)

// Serialize renders a flat token slice back to CSS text, following the
// W3C "serialization" algorithm: adjacent tokens that would otherwise
// re-tokenize differently (e.g. two idents with nothing between them) get
// a "/**/" separator inserted.
func Serialize(tokens []Token) string {
	var w strings.Builder
	serializeTo(tokens, &w)
	return w.String()
}

var badPairs = map[[2]string]bool{}

func init() {
	for _, a := range []string{"ident", "at-keyword", "hash", "dimension", "#", "-", "number"} {
		for _, b := range []string{"ident", "function", "url", "number", "percentage", "dimension", "unicode-range"} {
			badPairs[[2]string{a, b}] = true
		}
	}
	for _, a := range []string{"ident", "at-keyword", "hash", "dimension"} {
		for _, b := range []string{"-", "-->"} {
			badPairs[[2]string{a, b}] = true
		}
	}
	for _, a := range []string{"#", "-", "number", "@"} {
		for _, b := range []string{"ident", "function", "url"} {
			badPairs[[2]string{a, b}] = true
		}
	}
	for _, a := range []string{"unicode-range", ".", "+"} {
		for _, b := range []string{"number", "percentage", "dimension"} {
			badPairs[[2]string{a, b}] = true
		}
	}
	for _, b := range []string{"ident", "function", "url", "unicode-range", "-"} {
		badPairs[[2]string{"@", b}] = true
	}
	for _, b := range []string{"ident", "function", "?"} {
		badPairs[[2]string{"unicode-range", b}] = true
	}
	badPairs[[2]string{"/", "*"}] = true
}

func serializeTo(tokens []Token, w *strings.Builder) {
	previousKind := ""
	for _, t := range tokens {
		kind := t.Kind()
		if d, ok := t.(Delim); ok {
			kind = string(d.Value)
		}
		if badPairs[[2]string{previousKind, kind}] {
			w.WriteString("/**/")
		}
		writeToken(w, t)
		previousKind = kind
	}
}

func writeToken(w *strings.Builder, t Token) {
	switch t := t.(type) {
	case Whitespace:
		w.WriteString(t.Value)
	case Comment:
		w.WriteString("/*")
		w.WriteString(t.Value)
		w.WriteString("*/")
	case Cdo:
		w.WriteString("<!--")
	case Cdc:
		w.WriteString("-->")
	case Semicolon:
		w.WriteString(";")
	case Colon:
		w.WriteString(":")
	case Comma:
		w.WriteString(",")
	case CurlyOpen:
		w.WriteString("{")
	case CurlyClose:
		w.WriteString("}")
	case RoundOpen:
		w.WriteString("(")
	case RoundClose:
		w.WriteString(")")
	case SquareOpen:
		w.WriteString("[")
	case SquareClose:
		w.WriteString("]")
	case Ident:
		w.WriteString(serializeIdentifier(t.Value))
	case AtKeyword:
		w.WriteString("@")
		w.WriteString(serializeIdentifier(t.Value))
	case Hash:
		w.WriteString("#")
		if t.IsIdentifier {
			w.WriteString(serializeIdentifier(t.Value))
		} else {
			w.WriteString(serializeName(t.Value))
		}
	case Function:
		w.WriteString(serializeIdentifier(t.Name))
		w.WriteString("(")
	case String:
		w.WriteString(`"`)
		w.WriteString(serializeStringValue(t.Value))
		if !t.BadString {
			w.WriteString(`"`)
		}
	case Url:
		w.WriteString("url(")
		w.WriteString(serializeURL(t.Value))
		if !t.BadURL {
			w.WriteString(")")
		}
	case UnicodeRange:
		if t.Start == t.End {
			w.WriteString(fmt.Sprintf("U+%X", t.Start))
		} else {
			w.WriteString(fmt.Sprintf("U+%X-%X", t.Start, t.End))
		}
	case Number:
		w.WriteString(t.Representation)
	case Percentage:
		w.WriteString(t.Representation)
		w.WriteString("%")
	case Dimension:
		w.WriteString(t.Representation)
		if t.Unit == "e" || t.Unit == "E" || strings.HasPrefix(t.Unit, "e-") || strings.HasPrefix(t.Unit, "E-") {
			w.WriteString(`\65 `)
			w.WriteString(serializeName(t.Unit[1:]))
		} else {
			w.WriteString(serializeIdentifier(t.Unit))
		}
	case Delim:
		w.WriteRune(t.Value)
	default:
		panic(fmt.Sprintf("token: cannot serialize %T", t))
	}
}

// serializeIdentifier returns a Unicode string that would tokenize back to
// an [Ident] (or the name part of an [AtKeyword]/[Hash]/[Dimension] unit)
// equal to value.
func serializeIdentifier(value string) string {
	if value == "-" {
		return `\-`
	}
	if strings.HasPrefix(value, "--") {
		return "--" + serializeName(value[2:])
	}
	var result string
	if strings.HasPrefix(value, "-") {
		result = "-"
		value = value[1:]
	}
	if value == "" {
		return result
	}
	c := rune(value[0])
	w := 1
	for i, r := range value {
		if i == 0 {
			c = r
		}
		if i > 0 {
			break
		}
		w = len(string(r))
	}
	var suffix string
	switch {
	case isAsciiAlpha(c) || c == '_':
		suffix = string(c)
	case c == '\n':
		suffix = `\A `
	case c == '\r':
		suffix = `\D `
	case c == '\f':
		suffix = `\C `
	case c >= '0' && c <= '9':
		suffix = fmt.Sprintf(`\%X `, c)
	case c > 0x7F:
		suffix = string(c)
	default:
		suffix = "\\" + string(c)
	}
	return result + suffix + serializeName(value[w:])
}

func serializeName(value string) string {
	var b strings.Builder
	for _, c := range value {
		switch {
		case isAsciiAlpha(c) || c == '-' || c == '_' || (c >= '0' && c <= '9'):
			b.WriteRune(c)
		case c == '\n':
			b.WriteString(`\A `)
		case c == '\r':
			b.WriteString(`\D `)
		case c == '\f':
			b.WriteString(`\C `)
		case c > 0x7F:
			b.WriteRune(c)
		default:
			b.WriteString("\\" + string(c))
		}
	}
	return b.String()
}

func serializeStringValue(value string) string {
	var b strings.Builder
	for _, c := range value {
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\A `)
		case '\r':
			b.WriteString(`\D `)
		case '\f':
			b.WriteString(`\C `)
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

func serializeURL(value string) string {
	var b strings.Builder
	for _, c := range value {
		switch c {
		case '\'':
			b.WriteString(`\'`)
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case ' ':
			b.WriteString(`\ `)
		case '\t':
			b.WriteString(`\9 `)
		case '\n':
			b.WriteString(`\A `)
		case '\r':
			b.WriteString(`\D `)
		case '\f':
			b.WriteString(`\C `)
		case '(':
			b.WriteString(`\(`)
		case ')':
			b.WriteString(`\)`)
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

func isAsciiAlpha(c rune) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
