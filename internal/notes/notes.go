// Package notes implements the user-facing note operations: new, edit,
// list and sync. Each one composes finder/lister invocations, the editor
// and the sync engine, and either completes or fails as a whole.
package notes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gorewood/jot/internal/config"
	"github.com/gorewood/jot/internal/invoke"
	"github.com/gorewood/jot/internal/output"
	"github.com/gorewood/jot/internal/runner"
	"github.com/gorewood/jot/internal/sync"
)

// Resolver runs the configured finder and lister.
type Resolver interface {
	Finder(ctx context.Context) (string, error)
	Lister(ctx context.Context, path string) (string, error)
}

// Syncer runs the sync sequence.
type Syncer interface {
	Run(ctx context.Context) (sync.Outcome, error)
}

// Deps are the collaborators of a Dispatcher.
type Deps struct {
	Resolver Resolver
	Runner   runner.Runner
	Syncer   Syncer
	// Editor is the value of $EDITOR.
	Editor string
	// Out receives lister output.
	Out    io.Writer
	Logger *slog.Logger
}

// Dispatcher runs note operations. It performs one external process at a
// time.
type Dispatcher struct {
	cfg  config.Config
	deps Deps
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(cfg config.Config, deps Deps) *Dispatcher {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if deps.Out == nil {
		deps.Out = io.Discard
	}
	return &Dispatcher{cfg: cfg, deps: deps}
}

// EditResult describes a finished new or edit operation.
type EditResult struct {
	Path    Path
	Created bool
	// Sync is set when a sync ran and succeeded.
	Sync *sync.Outcome
}

// New creates an empty note at path if nothing exists there, then edits it.
// Existing content is never truncated. An empty path asks the finder.
func (d *Dispatcher) New(ctx context.Context, path string) (*EditResult, error) {
	note, err := d.pick(ctx, path)
	if err != nil {
		return nil, err
	}

	created, err := createIfAbsent(note.Abs)
	if err != nil {
		return nil, err
	}
	if created {
		d.deps.Logger.Debug("created note", "path", note.Abs)
	}
	return d.edit(ctx, note, created)
}

// Edit opens path in the editor, asking the finder for a path when empty.
// The path need not exist.
func (d *Dispatcher) Edit(ctx context.Context, path string) (*EditResult, error) {
	note, err := d.pick(ctx, path)
	if err != nil {
		return nil, err
	}
	return d.edit(ctx, note, false)
}

// List writes the lister's output for subpath (the base dir when empty)
// to the output writer. Nothing is written when the lister fails.
func (d *Dispatcher) List(ctx context.Context, subpath string) error {
	listing, err := d.Listing(ctx, subpath)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(d.deps.Out, listing); err != nil {
		return output.NewSystemErrorWithCause("writing listing: "+err.Error(), err)
	}
	return nil
}

// Listing returns the lister's output for subpath (the base dir when empty).
func (d *Dispatcher) Listing(ctx context.Context, subpath string) (string, error) {
	rel := "."
	if subpath != "" {
		note, err := d.Resolve(subpath)
		if err != nil {
			return "", err
		}
		rel = note.Rel
	}
	return d.deps.Resolver.Lister(ctx, rel)
}

// Sync runs the sync sequence.
func (d *Dispatcher) Sync(ctx context.Context) (sync.Outcome, error) {
	outcome, err := d.deps.Syncer.Run(ctx)
	if err != nil {
		return sync.Outcome{}, invoke.Quiet(err, d.cfg.QuietOnCtrlC)
	}
	return outcome, nil
}

// Resolve resolves a user or finder supplied path against the base dir.
func (d *Dispatcher) Resolve(path string) (Path, error) {
	return ResolvePath(d.cfg.BaseDir, path, d.cfg.ContainPaths)
}

func (d *Dispatcher) pick(ctx context.Context, path string) (Path, error) {
	if path == "" {
		found, err := d.deps.Resolver.Finder(ctx)
		if err != nil {
			return Path{}, err
		}
		if found == "" {
			return Path{}, output.NewUserError("finder returned no path")
		}
		path = found
	}
	return d.Resolve(path)
}

// edit runs the editor and, when configured, a sync afterwards. An editor
// that fails still gets a sync; one that could not start or was
// interrupted does not.
func (d *Dispatcher) edit(ctx context.Context, note Path, created bool) (*EditResult, error) {
	if d.deps.Editor == "" {
		return nil, output.NewUserError("failed to find $EDITOR in environment")
	}

	cmd := runner.Editor(d.deps.Editor, note.Abs)
	res, err := d.deps.Runner.Run(ctx, cmd)
	if err != nil {
		return nil, err
	}

	editErr := res.Err(cmd)
	if errors.Is(editErr, runner.ErrInterrupted) {
		return nil, invoke.Quiet(editErr, d.cfg.QuietOnCtrlC)
	}

	result := &EditResult{Path: note, Created: created}
	if !d.cfg.EditSyncs {
		return result, editErr
	}

	if editErr != nil {
		d.deps.Logger.Warn("editor failed, syncing anyway", "error", editErr)
	}
	outcome, syncErr := d.deps.Syncer.Run(ctx)
	if syncErr == nil {
		result.Sync = &outcome
	}
	syncErr = invoke.Quiet(syncErr, d.cfg.QuietOnCtrlC)
	if editErr == nil {
		return result, syncErr
	}
	// A silent error inside a join would hide the editor failure too.
	if output.IsSilent(syncErr) {
		d.deps.Logger.Debug("sync interrupted after editor failure", "error", syncErr)
		return result, editErr
	}
	return result, errors.Join(editErr, syncErr)
}

// createIfAbsent creates an empty file at path, and its parent directories,
// unless something already exists there.
func createIfAbsent(path string) (bool, error) {
	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return false, output.NewSystemError(fmt.Sprintf("failed to create a file at %s: is a directory", path))
		}
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, createError(path, err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, createError(path, err)
	}
	if err := file.Close(); err != nil {
		return false, createError(path, err)
	}
	return true, nil
}

func createError(path string, err error) error {
	return output.NewSystemErrorWithCause(fmt.Sprintf("failed to create a file at %s: %v", path, err), err)
}
