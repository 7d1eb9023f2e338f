package main

import (
	"os"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	jotmcp "github.com/gorewood/jot/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run jot as a Model Context Protocol (MCP) server over stdio.

This exposes listing and syncing as MCP tools for MCP-capable agents.
Finder and editor are interactive and are not exposed. Output of the
programs jot runs goes to stderr so it never mixes with the protocol.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "jot": {
        "command": "jot",
        "args": ["serve"]
      }
    }
  }

Available tools: list_notes, sync_notes, status`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.loadApp(cmd)
			if err != nil {
				return err
			}

			a.runner.Stdin = strings.NewReader("")
			a.runner.Stdout = os.Stderr
			a.runner.Stderr = os.Stderr

			a.logger.Info("serving MCP over stdio", "base_dir", a.cfg.BaseDir)
			server := jotmcp.NewServer(buildVersion(), a.cfg, a.dispatcher)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
