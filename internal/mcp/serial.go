package mcp

import (
	"context"
	gosync "sync"

	"github.com/gorewood/jot/internal/sync"
)

// serialNotes runs one Notes operation at a time. The server handles tool
// calls concurrently, and git cannot run two syncs on one repository.
type serialNotes struct {
	mu    gosync.Mutex
	notes Notes
}

func (s *serialNotes) Listing(ctx context.Context, subpath string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notes.Listing(ctx, subpath)
}

func (s *serialNotes) Sync(ctx context.Context) (sync.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notes.Sync(ctx)
}
