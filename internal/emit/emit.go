// Package emit renders a resolve result as a file other build tools can
// load directly.
package emit

import (
	"bytes"
	"context"
	"fmt"
	"go/token"
	"strconv"
	"strings"

	"gitlab.com/tozd/go/errors"
	"mvdan.cc/gofumpt/format"

	"github.com/agentic-research/resolvecfg/api"
	"github.com/agentic-research/resolvecfg/internal/jsast"
)

// JSModule renders res as a CommonJS module that requires the modules the
// fragments depend on and exports the three fragments.
func JSModule(ctx context.Context, res *api.Result) ([]byte, error) {
	prog := &jsast.Node{Kind: jsast.KindProgram}
	for _, mod := range res.Requires {
		prog.List = append(prog.List, &jsast.Node{
			Kind: jsast.KindVariableDeclaration,
			Text: "const",
			List: []*jsast.Node{{
				Kind:  jsast.KindVariableDeclarator,
				Key:   jsast.Ident(mod),
				Value: jsast.Call(jsast.Ident("require"), jsast.String(mod)),
			}},
		})
	}

	exports := jsast.Object()
	for _, field := range []struct{ name, src string }{
		{"patterns", res.Patterns},
		{"resource", res.Resource},
		{"defineConstants", res.DefineConstants},
	} {
		n, err := jsast.ParseExpression(ctx, []byte(field.src))
		if err != nil {
			return nil, errors.Errorf("%s fragment: %w", field.name, err)
		}
		exports.List = append(exports.List, jsast.Property(jsast.Ident(field.name), n))
	}
	prog.List = append(prog.List, &jsast.Node{
		Kind: jsast.KindOpaque,
		Text: "module.exports = " + jsast.Generate(exports) + ";",
	})
	return []byte(jsast.Generate(prog) + "\n"), nil
}

// GoSource renders res as a gofumpt-formatted Go file declaring the
// fragments as string constants in package pkg.
func GoSource(pkg string, res *api.Result) ([]byte, error) {
	if !token.IsIdentifier(pkg) {
		return nil, errors.Errorf("invalid package name %q", pkg)
	}

	var buf bytes.Buffer
	buf.WriteString("// Code generated by resolvecfg. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", pkg)

	quoted := make([]string, len(res.Requires))
	for i, mod := range res.Requires {
		quoted[i] = strconv.Quote(mod)
	}
	buf.WriteString("// Requires lists the modules Resource refers to.\n")
	fmt.Fprintf(&buf, "var Requires = []string{%s}\n\n", strings.Join(quoted, ", "))

	buf.WriteString("const (\n")
	fmt.Fprintf(&buf, "Patterns = %s\n", goString(res.Patterns))
	fmt.Fprintf(&buf, "Resource = %s\n", goString(res.Resource))
	fmt.Fprintf(&buf, "DefineConstants = %s\n", goString(res.DefineConstants))
	buf.WriteString(")\n")

	formatted, err := format.Source(buf.Bytes(), format.Options{})
	if err != nil {
		return nil, errors.Errorf("format generated Go: %w", err)
	}
	return formatted, nil
}

// goString prefers a raw string literal so multi-line fragments stay
// readable.
func goString(s string) string {
	if strings.ContainsAny(s, "`\r") {
		return strconv.Quote(s)
	}
	return "`" + s + "`"
}
