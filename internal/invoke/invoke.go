// Package invoke turns the configured finder and lister invocation strings
// into shell commands, runs them and extracts their stdout payload.
package invoke

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/gorewood/jot/internal/config"
	"github.com/gorewood/jot/internal/output"
	"github.com/gorewood/jot/internal/runner"
)

// Resolver runs finder and lister invocations.
type Resolver struct {
	cfg    config.Config
	runner runner.Runner
	logger *slog.Logger
}

// NewResolver creates a Resolver.
func NewResolver(cfg config.Config, r runner.Runner, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Resolver{cfg: cfg, runner: r, logger: logger}
}

// Finder runs the finder and returns its stdout with trailing whitespace
// removed. The path is neither checked for existence nor for being a
// single line: a path that does not exist yet is a valid answer.
func (r *Resolver) Finder(ctx context.Context) (string, error) {
	if r.cfg.Finder == "" {
		return "", output.NewUserError("no finder configured (use --finder or finder in the config file)")
	}

	stdout, err := r.run(ctx, "finder", r.cfg.Finder)
	if err != nil {
		return "", err
	}

	path := strings.TrimRight(string(stdout), " \t\r\n")
	r.logger.Debug("finder resolved path", "path", path)
	return path, nil
}

// Lister runs the lister with path, relative to the base dir, appended as
// its last argument and returns its stdout verbatim.
func (r *Resolver) Lister(ctx context.Context, path string) (string, error) {
	if r.cfg.Lister == "" {
		return "", output.NewUserError("no lister configured (use --lister or lister in the config file)")
	}
	if path == "" {
		path = "."
	}

	stdout, err := r.run(ctx, "lister", AppendArg(r.cfg.Lister, path))
	if err != nil {
		return "", err
	}
	return string(stdout), nil
}

func (r *Resolver) run(ctx context.Context, label, line string) ([]byte, error) {
	if r.cfg.Shell == "" {
		return nil, output.NewUserError("failed to find $SHELL in environment (set SHELL or --shell)")
	}

	cmd := runner.Shell(label, r.cfg.Shell, r.cfg.ShellCmdFlag, line, r.cfg.CaptureStd)
	res, err := r.runner.Run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	if err := res.Err(cmd); err != nil {
		return nil, Quiet(err, r.cfg.QuietOnCtrlC)
	}
	return res.Stdout, nil
}

// Quiet marks interrupt errors as silent when quiet is set. The error still
// aborts the operation.
func Quiet(err error, quiet bool) error {
	if quiet && errors.Is(err, runner.ErrInterrupted) {
		return output.NewSilentError(err)
	}
	return err
}

// AppendArg appends arg to a shell command line as a single quoted word.
func AppendArg(line, arg string) string {
	return line + " " + ShellQuote(arg)
}

// ShellQuote wraps s in single quotes, escaping any embedded single quotes.
func ShellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
