package resolve

import (
	"path"
	"strings"

	"github.com/agentic-research/resolvecfg/internal/jsast"
)

// collectResources returns the style resources under section in document
// order. String literals are taken as they are; a call is replaced by a
// path.join(process.cwd(), ...) over its string arguments. Neither is
// descended into.
func collectResources(section *jsast.Node) []*jsast.Node {
	var out []*jsast.Node
	jsast.Walk(section, func(n, _ *jsast.Node) jsast.Action {
		switch n.Kind {
		case jsast.KindStringLiteral:
			out = append(out, n.Clone())
		case jsast.KindCallExpression:
			out = append(out, cwdJoin(joinLiteralArgs(n)))
		default:
			return jsast.Continue
		}
		return jsast.Skip
	})
	return out
}

// joinLiteralArgs joins the string arguments of call under "/". A trailing
// slash on the last non-empty argument is kept, as Node's path.join does.
func joinLiteralArgs(call *jsast.Node) string {
	parts := []string{"/"}
	var last string
	for _, arg := range call.List {
		if arg.Is(jsast.KindStringLiteral) {
			parts = append(parts, arg.Text)
			if arg.Text != "" {
				last = arg.Text
			}
		}
	}
	joined := path.Join(parts...)
	if strings.HasSuffix(last, "/") && joined != "/" {
		joined += "/"
	}
	return joined
}

// cwdJoin builds path.join(process.cwd(), p).
func cwdJoin(p string) *jsast.Node {
	return jsast.MethodCall("path", "join", jsast.MethodCall("process", "cwd"), jsast.String(p))
}
