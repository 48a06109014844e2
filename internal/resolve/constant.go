package resolve

import (
	"strings"

	"github.com/agentic-research/resolvecfg/internal/jsast"
)

const constantSigil = "__"

// collectConstants returns every `__`-prefixed property under section with
// its value wrapped in JSON.stringify. Other properties are skipped.
func collectConstants(section *jsast.Node) []*jsast.Node {
	var out []*jsast.Node
	jsast.Walk(section, func(n, _ *jsast.Node) jsast.Action {
		if n.Is(jsast.KindObjectProperty) && strings.HasPrefix(n.KeyName(), constantSigil) {
			out = append(out, constantEntry(n))
		}
		return jsast.Continue
	})
	return out
}

// constantEntry wraps the property value in JSON.stringify. A value that
// already is a JSON.stringify call keeps its own argument list.
func constantEntry(prop *jsast.Node) *jsast.Node {
	if !isStringifyCall(prop.Value) {
		return jsast.Property(prop.Key.Clone(), stringify(prop.Value.Clone()))
	}
	args := make([]*jsast.Node, len(prop.Value.List))
	for i, arg := range prop.Value.List {
		args[i] = arg.Clone()
	}
	return jsast.Property(prop.Key.Clone(), stringify(args...))
}

func isStringifyCall(n *jsast.Node) bool {
	if !n.Is(jsast.KindCallExpression) {
		return false
	}
	callee := n.Callee
	return callee.Is(jsast.KindMemberExpression) && !callee.Computed &&
		callee.Object.Is(jsast.KindIdentifier) && callee.Object.Text == "JSON" &&
		callee.Property.Is(jsast.KindIdentifier) && callee.Property.Text == "stringify"
}

func stringify(args ...*jsast.Node) *jsast.Node {
	return jsast.MethodCall("JSON", "stringify", args...)
}
