package runner

import (
	"errors"
	"fmt"
)

// ErrInterrupted matches any *InterruptedError.
var ErrInterrupted = errors.New("interrupted")

// stderrNotCaptured stands in for stderr in diagnostics when the child
// wrote it straight to the terminal.
const stderrNotCaptured = "<jot: stderr not captured>"

// SpawnError reports a child that could not be started.
type SpawnError struct {
	Label      string
	Invocation string
	Err        error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to execute %s (`%s`): %v", e.Label, e.Invocation, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// ExitFailure reports a child that exited with a non-zero code other than 130.
type ExitFailure struct {
	Label          string
	Invocation     string
	Code           int
	Stdout         string
	Stderr         string
	StderrCaptured bool
}

func (e *ExitFailure) Error() string {
	stderr := stderrNotCaptured
	if e.StderrCaptured {
		stderr = e.Stderr
	}
	return fmt.Sprintf("%s (`%s`) exited unsuccessfully with non-zero exit code (%d)\n"+
		"\tstdout:\n\t%q\n\tstderr:\n\t%q",
		e.Label, e.Invocation, e.Code, e.Stdout, stderr)
}

// InterruptedError reports a child stopped by Ctrl+C.
type InterruptedError struct {
	Label      string
	Invocation string
}

func (e *InterruptedError) Error() string {
	return fmt.Sprintf("%s (`%s`) was interrupted", e.Label, e.Invocation)
}

// Is makes errors.Is(err, ErrInterrupted) true.
func (e *InterruptedError) Is(target error) bool {
	return target == ErrInterrupted
}
