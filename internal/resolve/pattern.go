package resolve

import (
	"path/filepath"
	"strings"

	"github.com/agentic-research/resolvecfg/internal/jsast"
)

const (
	destinationKey = "to"
	distPrefix     = "dist"
)

// collectPatterns returns a rewritten copy of every object literal under
// section, in document order.
func collectPatterns(section *jsast.Node, env rewriteEnv) []*jsast.Node {
	var out []*jsast.Node
	jsast.Walk(section, func(n, _ *jsast.Node) jsast.Action {
		if n.Is(jsast.KindObjectExpression) {
			out = append(out, rewritePattern(n, env))
		}
		return jsast.Continue
	})
	return out
}

// rewritePattern clones a pattern object, pointing a string `to`
// destination at the project's dist directory.
func rewritePattern(obj *jsast.Node, env rewriteEnv) *jsast.Node {
	out := jsast.Object()
	for _, prop := range obj.List {
		c := prop.Clone()
		if c.KeyName() == destinationKey && c.Value.Is(jsast.KindStringLiteral) {
			c.Value = jsast.String(rewriteDestination(c.Value.Text, env))
		}
		out.List = append(out.List, c)
	}
	return out
}

// rewriteDestination makes dest relative to the working directory and, when
// its first segment starts with "dist", replaces that segment with
// "dist-<project>". Other destinations are returned unchanged.
func rewriteDestination(dest string, env rewriteEnv) string {
	abs := dest
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(env.workDir, abs)
	}
	rel, err := filepath.Rel(env.workDir, abs)
	if err != nil {
		return dest
	}
	segments := strings.Split(rel, string(filepath.Separator))
	if !strings.HasPrefix(segments[0], distPrefix) {
		return dest
	}
	segments[0] = distPrefix + "-" + env.project
	return filepath.Join(segments...)
}
