package jsast

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestParse_ConfigDeclaration(t *testing.T) {
	src := []byte(`
const path = require('path')

// build settings
const config = {
  projectName: 'demo',
  copy: { patterns: [{ from: 'src/a', to: 'dist/a' }] },
  sass: { resource: [path.resolve(__dirname, 'src/x.scss')] },
  enabled: true,
  width: 750,
  plugins: null,
}

module.exports = function (merge) { return merge({}, config) }
`)
	prog, err := Parse(context.Background(), src)
	require.NoError(t, err)
	require.Equal(t, KindProgram, prog.Kind)
	require.Len(t, prog.List, 3)

	assert.Equal(t, KindVariableDeclaration, prog.List[0].Kind)
	assert.Equal(t, KindOpaque, prog.List[2].Kind)

	decl := prog.List[1]
	require.Equal(t, KindVariableDeclaration, decl.Kind)
	assert.Equal(t, "const", decl.Text)
	require.Len(t, decl.List, 1)
	assert.Equal(t, "config", decl.List[0].Key.Text)

	obj := decl.List[0].Value
	require.Equal(t, KindObjectExpression, obj.Kind)
	require.Len(t, obj.List, 6)

	names := make([]string, 0, len(obj.List))
	for _, p := range obj.List {
		names = append(names, p.KeyName())
	}
	assert.Equal(t, []string{"projectName", "copy", "sass", "enabled", "width", "plugins"}, names)

	assert.Equal(t, KindBooleanLiteral, obj.List[3].Value.Kind)
	assert.Equal(t, KindNumericLiteral, obj.List[4].Value.Kind)
	assert.Equal(t, "750", obj.List[4].Value.Text)
	assert.Equal(t, KindNullLiteral, obj.List[5].Value.Kind)

	resource := obj.List[2].Value.List[0].Value
	require.Equal(t, KindArrayExpression, resource.Kind)
	call := resource.List[0]
	require.Equal(t, KindCallExpression, call.Kind)
	assert.Equal(t, "path.resolve", Generate(call.Callee))
	require.Len(t, call.List, 2)
	assert.Equal(t, KindIdentifier, call.List[0].Kind)
	assert.Equal(t, "src/x.scss", call.List[1].Text)
}

func TestParse_StringEscapes(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"plain", `'abc'`, "abc"},
		{"empty", `''`, ""},
		{"double quotes", `"a'b"`, "a'b"},
		{"escaped quote", `'it\'s'`, "it's"},
		{"newline", `'a\nb'`, "a\nb"},
		{"backslash", `'a\\b'`, `a\b`},
		{"hex", `'\x41'`, "A"},
		{"unicode", `'é'`, "é"},
		{"code point", `'\u{1F600}'`, "\U0001F600"},
		{"identity escape", `'\q'`, "q"},
		{"no bell escape", `'src\assets'`, "srcassets"},
		{"control escapes", `'\b\f\v\t\r'`, "\b\f\v\t\r"},
		{"null", `'\0'`, "\x00"},
		{"legacy octal", `'x\1'`, "x\x01"},
		{"three digit octal", `'\101'`, "A"},
		{"octal stops at 377", `'\400'`, " 0"},
		{"surrogate pair", `'\ud83d\ude00'`, "\U0001F600"},
		{"lone surrogate", `'\ud83dx'`, "\uFFFDx"},
		{"unicode escape", `'\u00e9'`, "é"},
		{"line continuation", "'a\\\nb'", "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := ParseExpression(context.Background(), []byte(tt.src))
			require.NoError(t, err)
			require.Equal(t, KindStringLiteral, n.Kind)
			assert.Equal(t, tt.want, n.Text)
		})
	}
}

func TestParse_ObjectMembers(t *testing.T) {
	n, err := ParseExpression(context.Background(), []byte(`{ a, ['b' + c]: 1, ...rest, 'd-e': x[0], f() {} }`))
	require.NoError(t, err)
	require.Equal(t, KindObjectExpression, n.Kind)
	require.Len(t, n.List, 5)

	assert.Equal(t, "a", n.List[0].KeyName())
	assert.Equal(t, "a", n.List[0].Value.Text)

	assert.True(t, n.List[1].Computed)
	assert.Equal(t, "", n.List[1].KeyName())

	assert.Equal(t, KindSpreadElement, n.List[2].Kind)

	assert.Equal(t, "d-e", n.List[3].KeyName())
	assert.True(t, n.List[3].Value.Computed)

	assert.Equal(t, KindOpaque, n.List[4].Kind)
}

func TestParse_OptionalChainIsOpaque(t *testing.T) {
	n, err := ParseExpression(context.Background(), []byte(`a?.b(c)`))
	require.NoError(t, err)
	assert.Equal(t, KindOpaque, n.Kind)
	assert.Equal(t, "a?.b(c)", n.Text)
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := Parse(context.Background(), []byte("const config = {\n  a: 'x',\n"))
	require.Error(t, err)

	var se *SyntaxError
	require.True(t, errors.As(err, &se))
	assert.Contains(t, se.Error(), ":")
}

func TestParse_InvalidUTF8(t *testing.T) {
	_, err := Parse(context.Background(), []byte{'a', 0xff, 0xfe})
	assert.Error(t, err)
}

func TestSyntaxErrors(t *testing.T) {
	assert.Nil(t, SyntaxErrors(context.Background(), []byte(`const a = 1`)))
	assert.NotEmpty(t, SyntaxErrors(context.Background(), []byte(`const a = {`)))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(context.Background(), []byte(`[{
  from: "x"
}]`)))
	assert.NoError(t, Validate(context.Background(), []byte(`{}`)))
	assert.Error(t, Validate(context.Background(), []byte(`[1, 2`)))
	assert.Error(t, Validate(context.Background(), []byte(`1; 2`)))
}
