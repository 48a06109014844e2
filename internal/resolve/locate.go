package resolve

import (
	"github.com/agentic-research/resolvecfg/internal/jsast"
)

const configBinding = "config"

// locateConfig returns the first top-level variable declaration whose first
// declarator binds the name config.
func locateConfig(prog *jsast.Node) (*jsast.Node, error) {
	for _, stmt := range prog.List {
		if !stmt.Is(jsast.KindVariableDeclaration) || len(stmt.List) == 0 {
			continue
		}
		id := stmt.List[0].Key
		if id.Is(jsast.KindIdentifier) && id.Text == configBinding {
			return stmt, nil
		}
	}
	return nil, ErrConfigNotFound
}
