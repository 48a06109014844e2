package cmd

import (
	"path/filepath"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/agentic-research/resolvecfg/api"
	"github.com/agentic-research/resolvecfg/internal/emit"
	"github.com/agentic-research/resolvecfg/internal/jsast"
	"github.com/agentic-research/resolvecfg/internal/options"
	"github.com/agentic-research/resolvecfg/internal/output"
	"github.com/agentic-research/resolvecfg/internal/resolve"
	"github.com/agentic-research/resolvecfg/internal/writeback"
)

type resolveFlags struct {
	opts        api.Options
	optionsFile string
	selector    string
	emit        string
	pkg         string
	out         string
}

func newResolveCmd() *cobra.Command {
	var f resolveFlags

	cmd := &cobra.Command{
		Use:   "resolve [config.js]",
		Short: "Resolve a build config into patterns, resource and defineConstants fragments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, osfs.New("/"), args[0], f)
		},
	}
	cmd.Flags().StringVarP(&f.opts.Project, "project", "p", "", "Project name spliced into dist destinations and __PROJECT")
	cmd.Flags().StringVar(&f.opts.Sass, "sass", "", "Default sass resource prepended to the resource list")
	cmd.Flags().StringVar(&f.opts.WorkDir, "workdir", "", "Directory copy destinations are relative to (default: current directory)")
	cmd.Flags().StringVarP(&f.optionsFile, "options", "c", "", "HCL or YAML file with project/sass/workdir; flags take precedence")
	cmd.Flags().StringVar(&f.selector, "select", "", "JSONPath selecting part of the result, e.g. '$.resource'")
	cmd.Flags().StringVar(&f.emit, "emit", "json", "Output format: json, js or go")
	cmd.Flags().StringVar(&f.pkg, "package", "buildcfg", "Package name for --emit go")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "Write output to this file instead of stdout")
	return cmd
}

// runResolve resolves source on fsys and writes the rendered result.
// Relative paths are taken from the process working directory.
func runResolve(cmd *cobra.Command, fsys billy.Filesystem, source string, f resolveFlags) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	src, err := filepath.Abs(source)
	if err != nil {
		return errors.Errorf("resolve path %s: %w", source, err)
	}

	var opts api.Options
	if f.optionsFile != "" {
		path, err := filepath.Abs(f.optionsFile)
		if err != nil {
			return errors.Errorf("resolve path %s: %w", f.optionsFile, err)
		}
		if opts, err = options.Load(fsys, path); err != nil {
			return err
		}
		logger.Debug().Str("file", path).Msg("loaded options")
	}
	opts = options.Merge(opts, f.opts)

	res, err := resolve.Resolve(ctx, fsys, src, opts)
	if err != nil {
		var se *jsast.SyntaxError
		if errors.As(err, &se) {
			reportSyntaxErrors(cmd, fsys, src)
		}
		return err
	}

	data, err := render(cmd, res, f)
	if err != nil {
		return err
	}

	if f.out == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	dest, err := filepath.Abs(f.out)
	if err != nil {
		return errors.Errorf("resolve path %s: %w", f.out, err)
	}
	if err := writeback.WriteAtomic(fsys, dest, data); err != nil {
		return err
	}
	logger.Info().Str("file", dest).Str("format", f.emit).Msg("wrote resolved config")
	return nil
}

func render(cmd *cobra.Command, res *api.Result, f resolveFlags) ([]byte, error) {
	switch f.emit {
	case "json":
		if f.selector != "" {
			s, err := output.Select(res, f.selector)
			if err != nil {
				return nil, err
			}
			return []byte(s + "\n"), nil
		}
		return []byte(output.JSON(res) + "\n"), nil
	case "js":
		return emit.JSModule(cmd.Context(), res)
	case "go":
		return emit.GoSource(f.pkg, res)
	}
	return nil, errors.Errorf("unknown --emit format %q", f.emit)
}

func reportSyntaxErrors(cmd *cobra.Command, fsys billy.Filesystem, src string) {
	content, err := util.ReadFile(fsys, src)
	if err != nil {
		return
	}
	logger := zerolog.Ctx(cmd.Context())
	for _, se := range jsast.SyntaxErrors(cmd.Context(), content) {
		logger.Error().
			Str("file", src).
			Uint32("line", se.Line+1).
			Uint32("column", se.Column+1).
			Msg(se.Message)
	}
}
