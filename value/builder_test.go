package value_test

import (
	"testing"

	"github.com/solheim/cssdom/token"
	"github.com/solheim/cssdom/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cursorFor(css string) *token.Cursor {
	return token.NewCursor(token.TokenizeString(css, true, nil))
}

func TestReadIdentPrimitive(t *testing.T) {
	c := cursorFor("red")
	v, ok := value.Read(c, nil, false)
	require.True(t, ok)
	p := v.(value.Primitive)
	assert.Equal(t, value.UnitIdent, p.PrimitiveUnit)
	assert.Equal(t, "red", p.Text)
}

func TestReadHexColor(t *testing.T) {
	c := cursorFor("#f0f")
	v, ok := value.Read(c, nil, false)
	require.True(t, ok)
	p := v.(value.Primitive)
	assert.Equal(t, value.UnitColor, p.PrimitiveUnit)
	assert.Equal(t, "#f0f", p.Text)
}

func TestReadNonHexHashSkipped(t *testing.T) {
	c := cursorFor("#zz ident")
	v, ok := value.Read(c, nil, false)
	require.True(t, ok)
	p := v.(value.Primitive)
	assert.Equal(t, "ident", p.Text)
}

func TestReadFunction(t *testing.T) {
	c := cursorFor("rgb(1, 2, 3)")
	v, ok := value.Read(c, nil, false)
	require.True(t, ok)
	fn := v.(value.Function)
	assert.Equal(t, "rgb", fn.Name)
	require.Len(t, fn.Args, 3)
}

func TestReadDimension(t *testing.T) {
	c := cursorFor("10px")
	v, ok := value.Read(c, nil, false)
	require.True(t, ok)
	p := v.(value.Primitive)
	assert.Equal(t, value.UnitLength, p.PrimitiveUnit)
	assert.Equal(t, "px", p.DimensionUnit)
	assert.Equal(t, float32(10), p.Number)
}

func TestReadRatioSyntax(t *testing.T) {
	c := cursorFor("16/9")
	v, ok := value.Read(c, nil, false)
	require.True(t, ok)
	p := v.(value.Primitive)
	assert.Equal(t, value.UnitUnknown, p.PrimitiveUnit)
	assert.Equal(t, "16/9", p.Text)
	assert.True(t, c.Eof())
}

func TestReadNumberNotFollowedBySlashIsPlainNumber(t *testing.T) {
	c := cursorFor("16 solid")
	v, ok := value.Read(c, nil, false)
	require.True(t, ok)
	p := v.(value.Primitive)
	assert.Equal(t, value.UnitNumber, p.PrimitiveUnit)

	v2, ok := value.Read(c, nil, false)
	require.True(t, ok)
	assert.Equal(t, "solid", v2.(value.Primitive).Text)
}

func TestValueListAccumulatesUntilComma(t *testing.T) {
	c := cursorFor("1px solid red, blue")
	list := value.ValueList(c, nil, false)
	require.Len(t, list.Items, 3)
	assert.False(t, list.CommaSeparated)

	_, ok := c.Current().(token.Comma)
	require.True(t, ok)
}

func TestMultiValuesCollapsesSingleton(t *testing.T) {
	c := cursorFor("red")
	values := value.MultiValues(c, nil, false)
	require.Len(t, values, 1)
	assert.Equal(t, "red", values[0].(value.Primitive).Text)
}

func TestMultiValuesKeepsMultipleGroups(t *testing.T) {
	c := cursorFor("Arial, sans-serif")
	values := value.MultiValues(c, nil, false)
	require.Len(t, values, 2)
	assert.Equal(t, "Arial", values[0].(value.Primitive).Text)
	assert.Equal(t, "sans-serif", values[1].(value.Primitive).Text)
}

func TestMultiValuesGroupWithMultipleItemsStaysAList(t *testing.T) {
	c := cursorFor("1px solid red, 2px dashed blue")
	values := value.MultiValues(c, nil, false)
	require.Len(t, values, 2)
	list, ok := values[0].(value.List)
	require.True(t, ok)
	assert.Len(t, list.Items, 3)
}

func TestReadInheritKeyword(t *testing.T) {
	c := cursorFor("inherit")
	v, ok := value.Read(c, nil, false)
	require.True(t, ok)
	_, isInherit := v.(value.Inherit)
	assert.True(t, isInherit)
}

func TestReadInitialKeywordCaseInsensitive(t *testing.T) {
	c := cursorFor("INITIAL")
	v, ok := value.Read(c, nil, false)
	require.True(t, ok)
	_, isInitial := v.(value.Initial)
	assert.True(t, isInitial)
}

func TestReadLegacyHashColorRequiresQuirks(t *testing.T) {
	tokens := []token.Token{token.Delim{Value: '#'}, token.Ident{Value: "f00"}}
	c := token.NewCursor(tokens)
	v, ok := value.Read(c, nil, false)
	require.True(t, ok)
	_, isPrimitive := v.(value.Primitive)
	require.True(t, isPrimitive)
	assert.NotEqual(t, value.UnitColor, v.(value.Primitive).PrimitiveUnit)
}

func TestReadLegacyHashColorAcceptedUnderQuirks(t *testing.T) {
	tokens := []token.Token{token.Delim{Value: '#'}, token.Ident{Value: "f00"}}
	c := token.NewCursor(tokens)
	v, ok := value.Read(c, nil, true)
	require.True(t, ok)
	p := v.(value.Primitive)
	assert.Equal(t, value.UnitColor, p.PrimitiveUnit)
	assert.Equal(t, "#f00", p.Text)
}

func TestAsValueWrapsMultipleInCommaList(t *testing.T) {
	c := cursorFor("Arial, sans-serif")
	values := value.MultiValues(c, nil, false)
	v := value.AsValue(values)
	list, ok := v.(value.List)
	require.True(t, ok)
	assert.True(t, list.CommaSeparated)
	assert.Len(t, list.Items, 2)
}
