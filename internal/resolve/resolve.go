// Package resolve extracts the copy patterns, style resources and
// compile-time constants from a JavaScript build configuration and
// regenerates each of them as a standalone source fragment.
package resolve

import (
	"context"
	"os"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/agentic-research/resolvecfg/api"
	"github.com/agentic-research/resolvecfg/internal/jsast"
)

var (
	// ErrConfigNotFound means the source has no top-level `config` declaration.
	ErrConfigNotFound = errors.Base("no top-level config declaration")
	// ErrInvalidFragment means a generated fragment failed to re-parse.
	ErrInvalidFragment = errors.Base("generated fragment does not parse")
)

// Resolve reads the configuration file at name from fsys and resolves it.
func Resolve(ctx context.Context, fsys billy.Filesystem, name string, opts api.Options) (*api.Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	content, err := util.ReadFile(fsys, name)
	if err != nil {
		return nil, errors.Errorf("read %s: %w", name, err)
	}
	res, err := Source(ctx, content, opts)
	if err != nil {
		return nil, errors.Errorf("resolve %s: %w", name, err)
	}
	return res, nil
}

// Source resolves configuration source text. Nothing is returned unless
// all three fragments were produced.
func Source(ctx context.Context, content []byte, opts api.Options) (*api.Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Errorf("working directory: %w", err)
		}
		opts.WorkDir = wd
	}
	logger := zerolog.Ctx(ctx)

	prog, err := jsast.Parse(ctx, content)
	if err != nil {
		return nil, errors.Errorf("parse: %w", err)
	}
	decl, err := locateConfig(prog)
	if err != nil {
		return nil, err
	}

	acc := dispatch(decl, rewriteEnv{project: opts.Project, workDir: opts.WorkDir})
	logger.Debug().
		Int("patterns", len(acc.patterns)).
		Int("constants", len(acc.constants)).
		Int("resources", len(acc.resources)).
		Msg("collected config sections")

	requires := normalize(acc, opts)

	res := &api.Result{
		Requires:        requires,
		Patterns:        jsast.Generate(jsast.Array(acc.patterns...)),
		Resource:        jsast.Generate(jsast.Array(acc.resources...)),
		DefineConstants: jsast.Generate(jsast.Object(acc.constants...)),
	}
	for field, frag := range map[string]string{
		"patterns":        res.Patterns,
		"resource":        res.Resource,
		"defineConstants": res.DefineConstants,
	} {
		if err := jsast.Validate(ctx, []byte(frag)); err != nil {
			return nil, errors.Errorf("%w: %s: %s", ErrInvalidFragment, field, err.Error())
		}
	}
	logger.Debug().Strs("requires", res.Requires).Msg("generated fragments")
	return res, nil
}
