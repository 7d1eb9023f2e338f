// Package sync reconciles the notes directory with its remote by running
// pull, stage, commit and push in order, abandoning the sequence at the
// first step that fails.
package sync

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gorewood/jot/internal/config"
)

// Stage names a step of the sync sequence.
type Stage string

const (
	StagePull   Stage = "pull"
	StageStage  Stage = "stage"
	StageCommit Stage = "commit"
	StagePush   Stage = "push"
)

// Kind is the result of a sync that did not fail.
type Kind int

const (
	// UpToDate means there was nothing to commit; nothing was pushed.
	UpToDate Kind = iota
	// Synced means a commit was created and pushed.
	Synced
)

func (k Kind) String() string {
	if k == Synced {
		return "synced"
	}
	return "up_to_date"
}

// Outcome is the result of a completed sync.
type Outcome struct {
	Kind          Kind
	CommitMessage string
}

// StageError reports the stage at which a sync was abandoned.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	switch e.Stage {
	case StagePull:
		return fmt.Sprintf("failed to pull upstream changes, please fix the issue and run jot sync: %v", e.Err)
	case StagePush:
		return fmt.Sprintf("failed to push to upstream, the commit is kept locally; please fix the issue and run git push: %v", e.Err)
	default:
		return fmt.Sprintf("sync failed at %s: %v", e.Stage, e.Err)
	}
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Repository is the subset of git the engine drives.
type Repository interface {
	Pull(ctx context.Context, remote, branch string) error
	AddAll(ctx context.Context) error
	HasStagedChanges(ctx context.Context) (bool, error)
	Commit(ctx context.Context, message string) error
	CommitInteractive(ctx context.Context) (string, error)
	Push(ctx context.Context, remote, branch string) error
}

// Engine runs the sync sequence.
type Engine struct {
	cfg    config.Config
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock used for default commit messages.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates a sync engine.
func NewEngine(cfg config.Config, repo Repository, logger *slog.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	e := &Engine{
		cfg:    cfg,
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// progress is threaded through the steps. done stops the sequence early
// without an error.
type progress struct {
	outcome Outcome
	done    bool
}

type step struct {
	stage Stage
	run   func(ctx context.Context, p *progress) error
}

// Run executes pull, stage, commit and push. Nothing is retried and
// nothing is rolled back: a failed push leaves the local commit in place.
func (e *Engine) Run(ctx context.Context) (Outcome, error) {
	steps := []step{
		{stage: StagePull, run: e.pull},
		{stage: StageStage, run: e.stage},
		{stage: StageCommit, run: e.commit},
		{stage: StagePush, run: e.push},
	}

	var p progress
	for _, s := range steps {
		if p.done {
			break
		}
		e.logger.Debug("sync stage", "stage", string(s.stage))
		if err := s.run(ctx, &p); err != nil {
			e.logger.Info("sync abandoned", "stage", string(s.stage), "error", err)
			return Outcome{}, &StageError{Stage: s.stage, Err: err}
		}
	}

	e.logger.Info("sync finished", "outcome", p.outcome.Kind.String(), "message", p.outcome.CommitMessage)
	return p.outcome, nil
}

func (e *Engine) pull(ctx context.Context, _ *progress) error {
	return e.repo.Pull(ctx, e.cfg.GitRemoteName, e.cfg.GitUpstreamBranch)
}

func (e *Engine) stage(ctx context.Context, _ *progress) error {
	return e.repo.AddAll(ctx)
}

func (e *Engine) commit(ctx context.Context, p *progress) error {
	changed, err := e.repo.HasStagedChanges(ctx)
	if err != nil {
		return err
	}
	if !changed {
		p.outcome = Outcome{Kind: UpToDate}
		p.done = true
		return nil
	}

	if e.cfg.GitCustomCommitMsg {
		message, err := e.repo.CommitInteractive(ctx)
		if err != nil {
			return err
		}
		p.outcome = Outcome{Kind: Synced, CommitMessage: message}
		return nil
	}

	message := DefaultMessage(e.now())
	if err := e.repo.Commit(ctx, message); err != nil {
		return err
	}
	p.outcome = Outcome{Kind: Synced, CommitMessage: message}
	return nil
}

func (e *Engine) push(ctx context.Context, _ *progress) error {
	return e.repo.Push(ctx, e.cfg.GitRemoteName, e.cfg.GitUpstreamBranch)
}

// DefaultMessage formats t in local time as RFC3339 with seconds precision.
func DefaultMessage(t time.Time) string {
	return t.Local().Format(time.RFC3339)
}
