package token_test

import (
	"testing"

	"github.com/solheim/cssdom/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, css string) []token.Token {
	t.Helper()
	a := token.TokenizeString(css, false, nil)
	serialized := token.Serialize(a)
	b := token.TokenizeString(serialized, false, nil)
	assert.Equal(t, kinds(a), kinds(b), "serialized form %q should retokenize to the same kinds", serialized)
	return a
}

func TestSerializeRoundTripsDeclaration(t *testing.T) {
	roundTrip(t, "color: red;")
}

func TestSerializeRoundTripsFunctionAndBrackets(t *testing.T) {
	roundTrip(t, "a[href^='x']{background:rgb(1,2,3)}")
}

func TestSerializeRoundTripsAtRule(t *testing.T) {
	roundTrip(t, "@media (min-width: 10px) { a { color: red; } }")
}

func TestSerializeInsertsSeparatorBetweenAdjacentIdents(t *testing.T) {
	tokens := []token.Token{
		token.Ident{Value: "foo"},
		token.Ident{Value: "bar"},
	}
	out := token.Serialize(tokens)
	assert.Contains(t, out, "/**/")

	retokenized := token.TokenizeString(out, true, nil)
	assert.Equal(t, []string{token.KindIdent, token.KindIdent}, kinds(retokenized))
}

func TestSerializeInsertsSeparatorBetweenNumberAndIdent(t *testing.T) {
	tokens := []token.Token{
		token.Number{Numeric: token.Numeric{Representation: "1", Value: 1, IsInteger: true}},
		token.Ident{Value: "px"},
	}
	out := token.Serialize(tokens)
	retokenized := token.TokenizeString(out, true, nil)
	require.Equal(t, []string{token.KindNumber, token.KindIdent}, kinds(retokenized))
}

func TestSerializeIdentifierEscapesLeadingDigit(t *testing.T) {
	out := token.Serialize([]token.Token{token.Ident{Value: "1x"}})
	retokenized := token.TokenizeString(out, true, nil)
	require.Equal(t, []string{token.KindIdent}, kinds(retokenized))
	assert.Equal(t, "1x", retokenized[0].(token.Ident).Value)
}

func TestSerializeStringEscapesQuotes(t *testing.T) {
	out := token.Serialize([]token.Token{token.String{Value: `a"b`}})
	retokenized := token.TokenizeString(out, true, nil)
	assert.Equal(t, `a"b`, retokenized[0].(token.String).Value)
}
