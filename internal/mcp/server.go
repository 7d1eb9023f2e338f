// Package mcp provides a Model Context Protocol server for jot.
// It exposes the non-interactive note operations as MCP tools so an agent
// can browse and sync a notes repository.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/jot/internal/config"
)

// NewServer creates an MCP server with all jot tools registered.
func NewServer(version string, cfg config.Config, notes Notes) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "jot",
		Version: version,
	}, nil)
	registerTools(server, cfg, &serialNotes{notes: notes})
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// syncAnnotations returns annotations for the sync tool: it commits and
// pushes to a remote, but never discards work.
func syncAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(true),
	}
}

// registerTools adds all jot tools to the server.
func registerTools(server *mcp.Server, cfg config.Config, notes Notes) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_notes",
		Description: "List notes using the configured lister. Optional path is relative to the notes directory; the whole directory is listed when omitted.",
		Annotations: readOnlyAnnotations(),
	}, handleList(notes))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "sync_notes",
		Description: "Pull from the remote, commit every local change with a timestamp message and push. Reports up_to_date when there was nothing to commit.",
		Annotations: syncAnnotations(),
	}, handleSync(cfg, notes))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "status",
		Description: "Show the notes directory, the sync remote and branch, and which invocations are configured.",
		Annotations: readOnlyAnnotations(),
	}, handleStatus(cfg))
}
