package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/jot/internal/config"
	"github.com/gorewood/jot/internal/sync"
)

// Notes is the subset of the note dispatcher the tools use.
type Notes interface {
	Listing(ctx context.Context, subpath string) (string, error)
	Sync(ctx context.Context) (sync.Outcome, error)
}

// --- List tool ---

// ListInput is the input for the list_notes tool.
type ListInput struct {
	Path string `json:"path,omitempty" jsonschema:"path relative to the notes directory"`
}

// ListOutput is the output for the list_notes tool.
type ListOutput struct {
	Path    string `json:"path"    jsonschema:"path that was listed"`
	Listing string `json:"listing" jsonschema:"lister output, verbatim"`
}

func handleList(notes Notes) mcp.ToolHandlerFor[ListInput, ListOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListInput) (*mcp.CallToolResult, ListOutput, error) {
		listing, err := notes.Listing(ctx, input.Path)
		if err != nil {
			return nil, ListOutput{}, fmt.Errorf("listing notes: %w", err)
		}

		path := input.Path
		if path == "" {
			path = "."
		}
		return nil, ListOutput{Path: path, Listing: listing}, nil
	}
}

// --- Sync tool ---

// SyncInput is the input for the sync_notes tool (no parameters needed).
type SyncInput struct{}

// SyncOutput is the output for the sync_notes tool.
type SyncOutput struct {
	Status        string `json:"status"                   jsonschema:"up_to_date or synced"`
	CommitMessage string `json:"commit_message,omitempty" jsonschema:"message of the commit that was pushed"`
}

func handleSync(cfg config.Config, notes Notes) mcp.ToolHandlerFor[SyncInput, SyncOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ SyncInput) (*mcp.CallToolResult, SyncOutput, error) {
		if cfg.GitCustomCommitMsg {
			return nil, SyncOutput{}, errors.New("git_custom_commit_msg is set; the commit message editor needs a terminal, run jot sync instead")
		}

		outcome, err := notes.Sync(ctx)
		if err != nil {
			return nil, SyncOutput{}, err
		}
		return nil, SyncOutput{
			Status:        outcome.Kind.String(),
			CommitMessage: outcome.CommitMessage,
		}, nil
	}
}

// --- Status tool ---

// StatusInput is the input for the status tool (no parameters needed).
type StatusInput struct{}

// StatusOutput is the output for the status tool.
type StatusOutput struct {
	BaseDir      string `json:"base_dir"      jsonschema:"notes directory"`
	Remote       string `json:"remote"        jsonschema:"git remote synced with"`
	Branch       string `json:"branch"        jsonschema:"upstream branch synced with"`
	HasFinder    bool   `json:"has_finder"    jsonschema:"whether a finder is configured"`
	HasLister    bool   `json:"has_lister"    jsonschema:"whether a lister is configured"`
	ContainPaths bool   `json:"contain_paths" jsonschema:"whether paths outside the notes directory are rejected"`
}

func handleStatus(cfg config.Config) mcp.ToolHandlerFor[StatusInput, StatusOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ StatusInput) (*mcp.CallToolResult, StatusOutput, error) {
		return nil, StatusOutput{
			BaseDir:      cfg.BaseDir,
			Remote:       cfg.GitRemoteName,
			Branch:       cfg.GitUpstreamBranch,
			HasFinder:    cfg.Finder != "",
			HasLister:    cfg.Lister != "",
			ContainPaths: cfg.ContainPaths,
		}, nil
	}
}
