// Package runnertest provides a scripted runner.Runner for tests.
package runnertest

import (
	"context"

	"github.com/gorewood/jot/internal/runner"
)

// Response is what the fake returns for one command.
type Response struct {
	Result *runner.Result
	Err    error
}

// Fake records every command and answers from Responses, keyed by
// Command.Label. Unknown labels succeed with empty output.
type Fake struct {
	Responses map[string]Response
	// Handler, when set, takes precedence over Responses.
	Handler func(cmd runner.Command) (*runner.Result, error)
	Calls   []runner.Command
}

// Run implements runner.Runner.
func (f *Fake) Run(_ context.Context, cmd runner.Command) (*runner.Result, error) {
	f.Calls = append(f.Calls, cmd)
	if f.Handler != nil {
		return f.Handler(cmd)
	}
	if resp, ok := f.Responses[cmd.Label]; ok {
		return resp.Result, resp.Err
	}
	return Success(""), nil
}

// Labels returns the labels of recorded commands in call order.
func (f *Fake) Labels() []string {
	labels := make([]string, 0, len(f.Calls))
	for _, call := range f.Calls {
		labels = append(labels, call.Label)
	}
	return labels
}

// Find returns the first recorded command with the given label.
func (f *Fake) Find(label string) (runner.Command, bool) {
	for _, call := range f.Calls {
		if call.Label == label {
			return call, true
		}
	}
	return runner.Command{}, false
}

// Success is a zero-exit result with the given stdout.
func Success(stdout string) *runner.Result {
	return &runner.Result{Status: runner.StatusSuccess, Stdout: []byte(stdout)}
}

// Failure is a non-zero exit result with captured stderr.
func Failure(code int, stderr string) *runner.Result {
	return &runner.Result{
		Status:         runner.Classify(code),
		ExitCode:       code,
		Stderr:         []byte(stderr),
		StderrCaptured: stderr != "",
	}
}

// Interrupted is an exit-130 result.
func Interrupted() *runner.Result {
	return &runner.Result{Status: runner.StatusInterrupted, ExitCode: runner.InterruptExitCode}
}
