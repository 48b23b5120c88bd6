package rule_test

import (
	"testing"

	"github.com/solheim/cssdom/diag"
	"github.com/solheim/cssdom/rule"
	"github.com/solheim/cssdom/selector"
	"github.com/solheim/cssdom/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, css string) ([]rule.Rule, *diag.Sink) {
	t.Helper()
	sink := &diag.Sink{}
	tokens := token.TokenizeString(css, true, nil)
	b := &rule.Builder{SelectorConstructor: selector.NewDefault(), Sink: sink}
	return b.AppendRules(tokens, true), sink
}

func buildQuirks(t *testing.T, css string) ([]rule.Rule, *diag.Sink) {
	t.Helper()
	sink := &diag.Sink{}
	tokens := token.TokenizeString(css, true, nil)
	b := &rule.Builder{SelectorConstructor: selector.NewDefault(), Sink: sink, Quirks: true}
	return b.AppendRules(tokens, true), sink
}

func TestBuildStyleRule(t *testing.T) {
	rules, _ := build(t, "h1 { color: red; }")
	require.Len(t, rules, 1)
	style := rules[0].(*rule.Style)
	assert.Equal(t, "h1", style.Selector.Text)
	require.Len(t, style.Declarations, 1)
	assert.Equal(t, "color", style.Declarations[0].Name)
}

func TestBuildMultipleDeclarationsWithColorAndFunction(t *testing.T) {
	rules, _ := build(t, "a { color: #f0f; background: rgb(1, 2, 3); }")
	style := rules[0].(*rule.Style)
	require.Len(t, style.Declarations, 2)
}

func TestBuildMediaRule(t *testing.T) {
	rules, _ := build(t, "@media screen { a { color: red; } }")
	require.Len(t, rules, 1)
	media := rules[0].(*rule.Media)
	assert.Equal(t, []string{"screen"}, media.MediaQueryList)
	require.Len(t, media.Rules, 1)

	nested := media.Rules[0].(*rule.Style)
	assert.Same(t, media, rule.ParentRule(nested))
}

func TestBuildMediaRuleEmptyPreludeDefaultsToAll(t *testing.T) {
	rules, _ := build(t, "@media { a { color: red; } }")
	media := rules[0].(*rule.Media)
	assert.Equal(t, []string{"all"}, media.MediaQueryList)
}

func TestBuildKeyframes(t *testing.T) {
	rules, _ := build(t, "@keyframes fade { from { opacity: 0 } to { opacity: 1 } }")
	kf := rules[0].(*rule.Keyframes)
	assert.Equal(t, "fade", kf.Name)
	require.Len(t, kf.Keyframes, 2)
	assert.Equal(t, "from", kf.Keyframes[0].KeyText)
	assert.Equal(t, "to", kf.Keyframes[1].KeyText)
}

func TestBuildImportAcceptsStringHref(t *testing.T) {
	rules, _ := build(t, `@import "foo.css" screen;`)
	imp := rules[0].(*rule.Import)
	assert.Equal(t, "foo.css", imp.Href)
	assert.Equal(t, []string{"screen"}, imp.MediaQueryList)
}

func TestBuildCharsetFirstFlag(t *testing.T) {
	rules, sink := build(t, `@charset "UTF-8"; h1 { color: red; }`)
	cs := rules[0].(*rule.Charset)
	assert.Equal(t, "UTF-8", cs.Encoding)
	assert.True(t, cs.First)
	assert.Empty(t, sink.Errors())
}

func TestBuildCharsetNotFirstFlagsButDoesNotReject(t *testing.T) {
	rules, sink := build(t, `h1 {} @charset "UTF-8";`)
	require.Len(t, rules, 2)
	cs := rules[1].(*rule.Charset)
	assert.False(t, cs.First)
	require.NotEmpty(t, sink.Errors())
}

func TestBuildNamespace(t *testing.T) {
	rules, _ := build(t, `@namespace svg url(http://www.w3.org/2000/svg);`)
	ns := rules[0].(*rule.Namespace)
	assert.Equal(t, "svg", ns.Prefix)
	assert.Equal(t, "http://www.w3.org/2000/svg", ns.URI)
}

func TestBuildFontFace(t *testing.T) {
	rules, _ := build(t, `@font-face { font-family: Arial; }`)
	ff := rules[0].(*rule.FontFace)
	require.Len(t, ff.Declarations, 1)
}

func TestBuildSupports(t *testing.T) {
	rules, _ := build(t, `@supports (display: grid) { a { color: red; } }`)
	s := rules[0].(*rule.Supports)
	assert.Contains(t, s.ConditionText, "display")
	require.Len(t, s.Rules, 1)
}

func TestBuildDocumentConditions(t *testing.T) {
	rules, _ := build(t, `@document url(http://example.com/), domain("example.com") { a {} }`)
	doc := rules[0].(*rule.Document)
	require.Len(t, doc.Conditions, 2)
	assert.Equal(t, rule.ConditionURL, doc.Conditions[0].Kind)
	assert.Equal(t, rule.ConditionDomain, doc.Conditions[1].Kind)
	assert.Equal(t, "example.com", doc.Conditions[1].Text)
}

func TestBuildUnknownAtRule(t *testing.T) {
	rules, sink := build(t, `@weird foo bar;`)
	u := rules[0].(*rule.Unknown)
	assert.Equal(t, "weird", u.AtKeyword)
	assert.Contains(t, u.RawText, "foo")
	require.Len(t, sink.Errors(), 1)
	assert.Equal(t, diag.UnknownAtRule, sink.Errors()[0].Code)
}

func TestBuildPreservesSourceOrder(t *testing.T) {
	rules, _ := build(t, `a {} b {} c {}`)
	require.Len(t, rules, 3)
	for i, want := range []string{"a", "b", "c"} {
		assert.Equal(t, want, rules[i].(*rule.Style).Selector.Text)
	}
}

func TestBuildMissingBraceReportsError(t *testing.T) {
	rules, sink := build(t, `h1`)
	assert.Empty(t, rules)
	require.NotEmpty(t, sink.Errors())
}

func TestBuildUnbalancedBlockReportsError(t *testing.T) {
	rules, sink := build(t, `h1 { color: red;`)
	require.Len(t, rules, 1)
	require.NotEmpty(t, sink.Errors())
	assert.Equal(t, diag.UnbalancedBracket, sink.Errors()[0].Code)
}

func TestBuildMissingSemicolonBetweenDeclarationsReportsError(t *testing.T) {
	rules, sink := build(t, `h1 { color: red width: 10px; }`)
	style := rules[0].(*rule.Style)
	require.Len(t, style.Declarations, 1)
	require.NotEmpty(t, sink.Errors())
	assert.Equal(t, diag.MissingSemicolon, sink.Errors()[0].Code)
}

func TestBuildQuirksFlagReachesDeclarations(t *testing.T) {
	// A smoke test that Builder.Quirks is actually threaded down to the
	// declaration/value layers rather than being dropped; the legacy
	// hashless-color grammar itself is exercised directly in
	// value/builder_test.go.
	rules, sink := buildQuirks(t, `h1 { color: red; }`)
	style := rules[0].(*rule.Style)
	require.Len(t, style.Declarations, 1)
	assert.Empty(t, sink.Errors())
}
