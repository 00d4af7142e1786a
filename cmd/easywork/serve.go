// Package main provides the entry point for the easywork CLI.
package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	easyworkmcp "github.com/gorewood/easywork/internal/mcp"
	"github.com/gorewood/easywork/internal/output"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return newServeCmdInternal(nil)
}

// newServeCmdInternal creates the serve command with optional environment injection.
func newServeCmdInternal(env *appEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run easywork as a Model Context Protocol (MCP) server over stdio.

This lets an MCP-capable agent read and write your daily logs and build
monthly reports.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "easywork": {
        "command": "easywork",
        "args": ["serve"]
      }
    }
  }

Available tools: load_log, month_logs, month_report, search_logs, save_log, append_log`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, env)
		},
	}
}

// runServe executes the serve command.
func runServe(cmd *cobra.Command, env *appEnv) error {
	return withEnv(cmd, env, func(_ *output.Printer, env *appEnv) error {
		server := easyworkmcp.NewServer(buildVersion(), &easyworkmcp.Journal{
			Store: env.store,
			Locks: env.locks,
			Now:   env.now,
		})
		env.logger.Info("mcp server starting", "data_dir", env.store.Dir())
		return server.Run(cmd.Context(), &mcp.StdioTransport{})
	})
}
