package resolve

import (
	"github.com/agentic-research/resolvecfg/internal/jsast"
)

// Section names recognised inside the config declaration.
const (
	sectionResource        = "resource"
	sectionPatterns        = "patterns"
	sectionDefineConstants = "defineConstants"
)

// sections accumulates the entries harvested from one declaration.
type sections struct {
	patterns  []*jsast.Node
	constants []*jsast.Node
	resources []*jsast.Node
}

// rewriteEnv carries the caller values the extractors rewrite with.
type rewriteEnv struct {
	project string
	workDir string
}

// dispatch walks decl and hands every node that has a section identifier as
// a direct child to that section's extractor. The node is then consumed:
// the outer walk does not descend into it, so entries are never collected
// twice.
func dispatch(decl *jsast.Node, env rewriteEnv) *sections {
	acc := &sections{}
	jsast.Walk(decl, func(n, _ *jsast.Node) jsast.Action {
		switch sectionOf(n) {
		case sectionResource:
			acc.resources = append(acc.resources, collectResources(n)...)
		case sectionPatterns:
			acc.patterns = append(acc.patterns, collectPatterns(n, env)...)
		case sectionDefineConstants:
			acc.constants = append(acc.constants, collectConstants(n)...)
		default:
			return jsast.Continue
		}
		return jsast.Skip
	})
	return acc
}

// sectionOf returns the section named by an identifier child of n, or "".
func sectionOf(n *jsast.Node) string {
	for _, child := range n.Children() {
		if !child.Is(jsast.KindIdentifier) {
			continue
		}
		switch child.Text {
		case sectionResource, sectionPatterns, sectionDefineConstants:
			return child.Text
		}
	}
	return ""
}
