package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
)

// ExecRunner runs commands with os/exec.
//
// Stdin, Stdout and Stderr are the streams an inheriting child is connected
// to. They default to the process's own standard streams; the MCP server
// points them away from its protocol channel.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Dir is the working directory for commands that do not set one.
	Dir string
	// Env is the environment for commands that do not set one.
	// Nil means the current process environment.
	Env []string

	logger *slog.Logger
}

// NewExecRunner creates a runner bound to the process's standard streams.
func NewExecRunner(dir string, env []string, logger *slog.Logger) *ExecRunner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ExecRunner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Dir:    dir,
		Env:    env,
		logger: logger,
	}
}

// Run starts cmd and waits for it to exit.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (*Result, error) {
	child := exec.CommandContext(ctx, cmd.Program, cmd.Args...)
	child.Dir = cmd.Dir
	if child.Dir == "" {
		child.Dir = r.Dir
	}
	child.Env = cmd.Env
	if child.Env == nil {
		child.Env = r.Env
	}

	var stdout, stderr bytes.Buffer
	if cmd.Policy.Stdin == Inherit {
		child.Stdin = r.Stdin
	}
	if cmd.Policy.Stdout == Capture {
		child.Stdout = &stdout
	} else {
		child.Stdout = r.Stdout
	}
	if cmd.Policy.Stderr == Capture {
		child.Stderr = &stderr
	} else {
		child.Stderr = r.Stderr
	}

	r.logger.Debug("running command",
		"label", cmd.Label,
		"program", cmd.Program,
		"args", cmd.Args,
		"dir", child.Dir,
		"streams", cmd.Policy.String())

	// Ctrl+C reaches the child through the terminal's process group. jot
	// keeps running so the child's exit code decides the outcome.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)

	code, err := exitCode(child.Run())
	if err != nil {
		r.logger.Debug("command failed to start", "label", cmd.Label, "error", err)
		return nil, &SpawnError{Label: cmd.Label, Invocation: cmd.String(), Err: err}
	}

	result := &Result{
		Status:         Classify(code),
		ExitCode:       code,
		StderrCaptured: cmd.Policy.Stderr == Capture,
	}
	if cmd.Policy.Stdout == Capture {
		result.Stdout = stdout.Bytes()
	}
	if result.StderrCaptured {
		result.Stderr = stderr.Bytes()
	}

	r.logger.Debug("command exited",
		"label", cmd.Label,
		"status", result.Status.String(),
		"code", code)

	return result, nil
}

// exitCode extracts the exit code from the error returned by exec.Cmd.Run.
// A child killed by SIGINT reports InterruptExitCode. Errors other than
// *exec.ExitError mean the child never ran.
func exitCode(err error) (int, error) {
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return 0, err
	}

	if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		if status.Signal() == syscall.SIGINT {
			return InterruptExitCode, nil
		}
	}
	return exitErr.ExitCode(), nil
}
