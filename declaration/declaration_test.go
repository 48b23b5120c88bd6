package declaration_test

import (
	"testing"

	"github.com/solheim/cssdom/declaration"
	"github.com/solheim/cssdom/diag"
	"github.com/solheim/cssdom/registry"
	"github.com/solheim/cssdom/token"
	"github.com/solheim/cssdom/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSimpleDeclaration(t *testing.T) {
	tokens := token.TokenizeString("color: red", true, nil)
	c := token.NewCursor(tokens)
	decl, ok := declaration.Build(c, nil, declaration.Lenient, nil, false)
	require.True(t, ok)
	assert.Equal(t, "color", decl.Name)
	assert.False(t, decl.Important)
	assert.Equal(t, "red", decl.Value.(value.Primitive).Text)
}

func TestBuildImportant(t *testing.T) {
	tokens := token.TokenizeString("color: red !important", true, nil)
	c := token.NewCursor(tokens)
	decl, ok := declaration.Build(c, nil, declaration.Lenient, nil, false)
	require.True(t, ok)
	assert.True(t, decl.Important)
}

func TestBuildImportantCaseInsensitive(t *testing.T) {
	tokens := token.TokenizeString("color: red !IMPORTANT", true, nil)
	c := token.NewCursor(tokens)
	decl, ok := declaration.Build(c, nil, declaration.Lenient, nil, false)
	require.True(t, ok)
	assert.True(t, decl.Important)
}

func TestBuildNameLowercased(t *testing.T) {
	tokens := token.TokenizeString("COLOR: red", true, nil)
	c := token.NewCursor(tokens)
	decl, ok := declaration.Build(c, nil, declaration.Lenient, nil, false)
	require.True(t, ok)
	assert.Equal(t, "color", decl.Name)
}

func TestBuildMissingColonReportsError(t *testing.T) {
	var sink diag.Sink
	tokens := token.TokenizeString("color red", true, nil)
	c := token.NewCursor(tokens)
	_, ok := declaration.Build(c, nil, declaration.Lenient, &sink, false)
	assert.False(t, ok)
	require.Len(t, sink.Errors(), 1)
	assert.Equal(t, diag.InvalidCharacter, sink.Errors()[0].Code)
}

func TestBuildEmptyValueReportsError(t *testing.T) {
	var sink diag.Sink
	tokens := token.TokenizeString("color:", true, nil)
	c := token.NewCursor(tokens)
	_, ok := declaration.Build(c, nil, declaration.Lenient, &sink, false)
	assert.False(t, ok)
	require.Len(t, sink.Errors(), 1)
	assert.Equal(t, diag.InputUnexpected, sink.Errors()[0].Code)
}

func TestBuildLenientKeepsRegistryRejected(t *testing.T) {
	reg := registry.NewDefault()
	tokens := token.TokenizeString("opacity: red", true, nil)
	c := token.NewCursor(tokens)
	decl, ok := declaration.Build(c, reg, declaration.Lenient, nil, false)
	require.True(t, ok)
	assert.Equal(t, "opacity", decl.Name)
}

func TestBuildStrictDropsRegistryRejected(t *testing.T) {
	reg := registry.NewDefault()
	tokens := token.TokenizeString("opacity: red", true, nil)
	c := token.NewCursor(tokens)
	_, ok := declaration.Build(c, reg, declaration.Strict, nil, false)
	assert.False(t, ok)
}

func TestBuildListRecoversFromMalformedDeclaration(t *testing.T) {
	tokens := token.TokenizeString("color: ; margin: 1px", true, nil)
	decls := declaration.BuildList(tokens, nil, declaration.Lenient, nil, false)
	require.Len(t, decls, 1)
	assert.Equal(t, "margin", decls[0].Name)
}

func TestBuildListSkipsEmptyDeclarations(t *testing.T) {
	tokens := token.TokenizeString(";; color: red;;", true, nil)
	decls := declaration.BuildList(tokens, nil, declaration.Lenient, nil, false)
	require.Len(t, decls, 1)
	assert.Equal(t, "color", decls[0].Name)
}

func TestBuildListPreservesSourceOrder(t *testing.T) {
	tokens := token.TokenizeString("color: red; margin: 1px; padding: 2px", true, nil)
	decls := declaration.BuildList(tokens, nil, declaration.Lenient, nil, false)
	require.Len(t, decls, 3)
	assert.Equal(t, []string{"color", "margin", "padding"}, []string{decls[0].Name, decls[1].Name, decls[2].Name})
}
