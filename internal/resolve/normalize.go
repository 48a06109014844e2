package resolve

import (
	"github.com/agentic-research/resolvecfg/api"
	"github.com/agentic-research/resolvecfg/internal/jsast"
)

const projectConstant = "__PROJECT"

// dynamicRequires are the modules a cwdJoin entry needs at runtime.
var dynamicRequires = []string{"path", "process"}

// normalize prepends the default sass resource and appends the __PROJECT
// constant. It returns the modules the resource fragment now depends on.
//
// The default resource follows the shape of the first collected one: a
// literal when the list starts with a literal, otherwise a cwdJoin call.
func normalize(acc *sections, opts api.Options) []string {
	requires := []string{}

	var def *jsast.Node
	if len(acc.resources) == 0 || acc.resources[0].Is(jsast.KindCallExpression) {
		def = cwdJoin(opts.Sass)
		requires = append(requires, dynamicRequires...)
	} else {
		def = jsast.String(opts.Sass)
	}
	acc.resources = append([]*jsast.Node{def}, acc.resources...)

	acc.constants = append(acc.constants,
		jsast.Property(jsast.Ident(projectConstant), stringify(jsast.String(opts.Project))))
	return requires
}
