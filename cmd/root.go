package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

// Version is the version reported by the MCP server.
var Version = "dev"

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "resolvecfg",
		Short:         "Extract copy patterns, style resources and constants from a build config",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := zerolog.ParseLevel(logLevel)
			if err != nil {
				return errors.Errorf("invalid --log-level %q: %w", logLevel, err)
			}
			logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
				Level(level).
				With().
				Timestamp().
				Str("command", cmd.Name()).
				Logger()
			cmd.SetContext(logger.WithContext(cmd.Context()))
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	root.AddCommand(newResolveCmd())
	root.AddCommand(newServeCmd())
	return root
}

// Execute runs the root command.
func Execute() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
