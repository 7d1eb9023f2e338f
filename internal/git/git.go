package git

import (
	"context"
	"errors"
	"strings"

	"github.com/gorewood/jot/internal/runner"
)

// Repo runs git in the runner's working directory, which is the notes base dir.
type Repo struct {
	runner runner.Runner
}

// NewRepo creates a Repo.
func NewRepo(r runner.Runner) *Repo {
	return &Repo{runner: r}
}

// run executes cmd and converts a non-zero exit into an error.
func (r *Repo) run(ctx context.Context, cmd runner.Command) (*runner.Result, error) {
	res, err := r.runner.Run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	if err := res.Err(cmd); err != nil {
		return res, err
	}
	return res, nil
}

// Pull fetches and merges branch from remote.
func (r *Repo) Pull(ctx context.Context, remote, branch string) error {
	_, err := r.run(ctx, runner.Git("pulling", "pull", remote, branch))
	return err
}

// AddAll stages every change under the working tree, including deletions.
func (r *Repo) AddAll(ctx context.Context) error {
	_, err := r.run(ctx, runner.Git("staging", "add", "-A"))
	return err
}

// HasStagedChanges reports whether the index differs from HEAD.
// git diff --quiet exits 1 when there are differences.
func (r *Repo) HasStagedChanges(ctx context.Context) (bool, error) {
	_, err := r.run(ctx, runner.Git("checking staged changes", "diff", "--cached", "--quiet"))
	if err == nil {
		return false, nil
	}
	var failure *runner.ExitFailure
	if errors.As(err, &failure) && failure.Code == 1 {
		return true, nil
	}
	return false, err
}

// Commit records the index with message.
func (r *Repo) Commit(ctx context.Context, message string) error {
	_, err := r.run(ctx, runner.Git("committing", "commit", "-m", message))
	return err
}

// CommitInteractive runs git commit without a message so git opens the
// user's commit editor, then returns the message that was recorded.
func (r *Repo) CommitInteractive(ctx context.Context) (string, error) {
	if _, err := r.run(ctx, runner.Git("committing", "commit")); err != nil {
		return "", err
	}
	return r.LastCommitMessage(ctx)
}

// LastCommitMessage returns the full message of HEAD, trimmed.
func (r *Repo) LastCommitMessage(ctx context.Context) (string, error) {
	res, err := r.run(ctx, runner.GitQuery("reading commit message", "log", "-1", "--format=%B"))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(res.Stdout)), nil
}

// Push pushes the current branch to branch on remote.
func (r *Repo) Push(ctx context.Context, remote, branch string) error {
	_, err := r.run(ctx, runner.Git("pushing", "push", remote, "HEAD:"+branch))
	return err
}
