package cmd

import (
	"context"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentic-research/resolvecfg/api"
	"github.com/agentic-research/resolvecfg/internal/output"
	"github.com/agentic-research/resolvecfg/internal/resolve"
)

const resolveToolName = "resolve_build_config"

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the resolve_build_config tool over MCP stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := zerolog.Ctx(cmd.Context())
			logger.Info().Str("tool", resolveToolName).Msg("serving MCP on stdio")

			s := newMCPServer(osfs.New("/"))
			return server.ServeStdio(s, server.WithStdioContextFunc(func(ctx context.Context) context.Context {
				return logger.WithContext(ctx)
			}))
		},
	}
}

func newMCPServer(fsys billy.Filesystem) *server.MCPServer {
	s := server.NewMCPServer("resolvecfg", Version, server.WithToolCapabilities(false))

	tool := mcp.NewTool(resolveToolName,
		mcp.WithDescription("Extract the copy patterns, sass resources and defineConstants of a "+
			"JavaScript build config and return them as regenerated source fragments (JSON)."),
		mcp.WithString("source", mcp.Required(), mcp.Description("Absolute path of the build config file")),
		mcp.WithString("project", mcp.Required(), mcp.Description("Project name used for dist-<project> and __PROJECT")),
		mcp.WithString("sass", mcp.Required(), mcp.Description("Default sass resource path")),
		mcp.WithString("workdir", mcp.Description("Directory copy destinations are relative to")),
	)
	s.AddTool(tool, resolveToolHandler(fsys))
	return s
}

func resolveToolHandler(fsys billy.Filesystem) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		source, err := req.RequireString("source")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		opts := api.Options{
			Project: req.GetString("project", ""),
			Sass:    req.GetString("sass", ""),
			WorkDir: req.GetString("workdir", ""),
		}

		res, err := resolve.Resolve(ctx, fsys, source, opts)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("source", source).Msg("resolve failed")
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(output.JSON(res)), nil
	}
}
