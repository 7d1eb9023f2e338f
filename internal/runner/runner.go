// Package runner executes external programs for jot with explicit control
// over which standard streams are inherited and which are captured, and
// classifies how each program exited.
package runner

import (
	"context"
	"fmt"
	"strings"
)

// InterruptExitCode is the exit code a shell reports for a child stopped by Ctrl+C.
const InterruptExitCode = 130

// Mode says what happens to one standard stream of a child process.
type Mode int

const (
	// Inherit connects the stream to the runner's parent stream.
	Inherit Mode = iota
	// Capture buffers the stream (stdout/stderr) or gives the child an
	// empty stdin.
	Capture
)

func (m Mode) String() string {
	if m == Capture {
		return "capture"
	}
	return "inherit"
}

// Policy assigns a Mode to each standard stream.
type Policy struct {
	Stdin  Mode
	Stdout Mode
	Stderr Mode
}

func (p Policy) String() string {
	return fmt.Sprintf("stdin=%s stdout=%s stderr=%s", p.Stdin, p.Stdout, p.Stderr)
}

// InvocationPolicy is used for finder and lister invocations. stdout is
// always captured since it carries the result; stdin and stderr are left to
// the terminal so programs like fzf can draw their UI, unless captureStd.
func InvocationPolicy(captureStd bool) Policy {
	if captureStd {
		return Policy{Stdin: Capture, Stdout: Capture, Stderr: Capture}
	}
	return Policy{Stdin: Inherit, Stdout: Capture, Stderr: Inherit}
}

// Fixed policies for git and the editor.
var (
	GitPolicy    = Policy{Stdin: Inherit, Stdout: Inherit, Stderr: Inherit}
	EditorPolicy = Policy{Stdin: Inherit, Stdout: Inherit, Stderr: Capture}
	QueryPolicy  = Policy{Stdin: Capture, Stdout: Capture, Stderr: Capture}
)

// Command describes one child process.
type Command struct {
	// Label names the command in diagnostics, e.g. "finder" or "pulling".
	Label   string
	Program string
	Args    []string
	// Dir and Env default to the runner's when empty.
	Dir    string
	Env    []string
	Policy Policy
}

// String renders the command line for diagnostics.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Program
	}
	return c.Program + " " + strings.Join(c.Args, " ")
}

// Shell builds a command that runs line through the user's shell:
// shell flag line.
func Shell(label, shell, flag, line string, captureStd bool) Command {
	return Command{
		Label:   label,
		Program: shell,
		Args:    []string{flag, line},
		Policy:  InvocationPolicy(captureStd),
	}
}

// Git builds a git command that inherits all standard streams.
func Git(label string, args ...string) Command {
	return Command{
		Label:   label,
		Program: "git",
		Args:    args,
		Policy:  GitPolicy,
	}
}

// GitQuery builds a read-only git command whose output is captured.
func GitQuery(label string, args ...string) Command {
	return Command{
		Label:   label,
		Program: "git",
		Args:    args,
		Policy:  QueryPolicy,
	}
}

// Editor builds a command opening editor on path. stdin and stdout belong
// to the editor; stderr is captured for diagnostics.
func Editor(editor, path string) Command {
	return Command{
		Label:   "$EDITOR",
		Program: editor,
		Args:    []string{path},
		Policy:  EditorPolicy,
	}
}

// Status classifies how a child exited.
type Status int

const (
	StatusSuccess Status = iota
	StatusFailure
	StatusInterrupted
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusInterrupted:
		return "interrupted"
	default:
		return "failure"
	}
}

// Classify maps an exit code to a Status.
func Classify(code int) Status {
	switch code {
	case 0:
		return StatusSuccess
	case InterruptExitCode:
		return StatusInterrupted
	default:
		return StatusFailure
	}
}

// Result is the outcome of a child that ran to completion.
type Result struct {
	Status   Status
	ExitCode int
	// Stdout holds output only when stdout was captured.
	Stdout []byte
	// Stderr holds output only when StderrCaptured.
	Stderr         []byte
	StderrCaptured bool
}

// Err converts a non-success result into an error describing cmd:
// *ExitFailure for failures, *InterruptedError for interrupts.
func (r *Result) Err(cmd Command) error {
	switch r.Status {
	case StatusSuccess:
		return nil
	case StatusInterrupted:
		return &InterruptedError{Label: cmd.Label, Invocation: cmd.String()}
	default:
		return &ExitFailure{
			Label:          cmd.Label,
			Invocation:     cmd.String(),
			Code:           r.ExitCode,
			Stdout:         string(r.Stdout),
			Stderr:         string(r.Stderr),
			StderrCaptured: r.StderrCaptured,
		}
	}
}

// Runner runs one child process per call and blocks until it exits.
// A non-nil error means the child could not be started; a child that ran
// and failed is reported through Result.Status.
type Runner interface {
	Run(ctx context.Context, cmd Command) (*Result, error)
}
