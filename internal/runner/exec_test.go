package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// newTestRunner returns a runner whose inherited streams are buffers.
func newTestRunner(t *testing.T, stdin string) (*ExecRunner, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	var stdout, stderr bytes.Buffer
	r := NewExecRunner(t.TempDir(), nil, nil)
	r.Stdin = strings.NewReader(stdin)
	r.Stdout = &stdout
	r.Stderr = &stderr
	return r, &stdout, &stderr
}

func TestExecRunner_ExitCodeClassification(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		wantStatus Status
		wantCode   int
	}{
		{name: "zero", line: "exit 0", wantStatus: StatusSuccess, wantCode: 0},
		{name: "one", line: "exit 1", wantStatus: StatusFailure, wantCode: 1},
		{name: "two", line: "exit 2", wantStatus: StatusFailure, wantCode: 2},
		{name: "ctrl-c code", line: "exit 130", wantStatus: StatusInterrupted, wantCode: 130},
	}

	for _, tt := range tests {
		for _, captureStd := range []bool{false, true} {
			r, _, _ := newTestRunner(t, "")
			res, err := r.Run(context.Background(), Shell("test", "sh", "-c", tt.line, captureStd))
			if err != nil {
				t.Fatalf("%s (capture=%v): Run() error = %v", tt.name, captureStd, err)
			}
			if res.Status != tt.wantStatus || res.ExitCode != tt.wantCode {
				t.Errorf("%s (capture=%v): got %s/%d, want %s/%d",
					tt.name, captureStd, res.Status, res.ExitCode, tt.wantStatus, tt.wantCode)
			}
		}
	}
}

func TestExecRunner_KilledBySIGINT(t *testing.T) {
	if signal.Ignored(os.Interrupt) {
		t.Skip("SIGINT is ignored by this process and would be by the child")
	}
	r, _, _ := newTestRunner(t, "")

	res, err := r.Run(context.Background(), Shell("test", "sh", "-c", "kill -INT $$; sleep 1", false))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Status != StatusInterrupted {
		t.Errorf("Status = %s, want interrupted", res.Status)
	}
}

func TestExecRunner_StdoutAlwaysCaptured(t *testing.T) {
	for _, captureStd := range []bool{false, true} {
		r, parentOut, _ := newTestRunner(t, "")

		res, err := r.Run(context.Background(), Shell("finder", "sh", "-c", "printf 'notes/todo.md\\n'", captureStd))
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if string(res.Stdout) != "notes/todo.md\n" {
			t.Errorf("capture=%v: Stdout = %q", captureStd, res.Stdout)
		}
		if parentOut.Len() != 0 {
			t.Errorf("capture=%v: parent stdout got %q", captureStd, parentOut.String())
		}
	}
}

func TestExecRunner_StderrInheritedUnlessCaptured(t *testing.T) {
	line := "echo oops >&2; exit 3"

	t.Run("inherited", func(t *testing.T) {
		r, _, parentErr := newTestRunner(t, "")
		res, err := r.Run(context.Background(), Shell("lister", "sh", "-c", line, false))
		if err != nil {
			t.Fatal(err)
		}
		if res.StderrCaptured || len(res.Stderr) != 0 {
			t.Errorf("stderr should not be in the result: %q", res.Stderr)
		}
		if parentErr.String() != "oops\n" {
			t.Errorf("parent stderr = %q, want %q", parentErr.String(), "oops\n")
		}
	})

	t.Run("captured", func(t *testing.T) {
		r, _, parentErr := newTestRunner(t, "")
		res, err := r.Run(context.Background(), Shell("lister", "sh", "-c", line, true))
		if err != nil {
			t.Fatal(err)
		}
		if !res.StderrCaptured || string(res.Stderr) != "oops\n" {
			t.Errorf("Stderr = %q (captured=%v), want %q", res.Stderr, res.StderrCaptured, "oops\n")
		}
		if parentErr.Len() != 0 {
			t.Errorf("parent stderr should be empty, got %q", parentErr.String())
		}
	})
}

func TestExecRunner_Stdin(t *testing.T) {
	t.Run("inherited", func(t *testing.T) {
		r, _, _ := newTestRunner(t, "picked.md\n")
		res, err := r.Run(context.Background(), Shell("finder", "sh", "-c", "cat", false))
		if err != nil {
			t.Fatal(err)
		}
		if string(res.Stdout) != "picked.md\n" {
			t.Errorf("Stdout = %q, want stdin echoed", res.Stdout)
		}
	})

	t.Run("captured reads empty", func(t *testing.T) {
		r, _, _ := newTestRunner(t, "picked.md\n")
		res, err := r.Run(context.Background(), Shell("finder", "sh", "-c", "cat", true))
		if err != nil {
			t.Fatal(err)
		}
		if len(res.Stdout) != 0 {
			t.Errorf("Stdout = %q, want empty", res.Stdout)
		}
	})
}

func TestExecRunner_EditorPolicy(t *testing.T) {
	r, parentOut, parentErr := newTestRunner(t, "")
	script := filepath.Join(t.TempDir(), "editor.sh")
	body := "#!/bin/sh\necho \"editing $1\"\necho warn >&2\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatal(err)
	}

	res, err := r.Run(context.Background(), Editor(script, "todo.md"))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if parentOut.String() != "editing todo.md\n" {
		t.Errorf("parent stdout = %q, editor stdout should be inherited", parentOut.String())
	}
	if parentErr.Len() != 0 || string(res.Stderr) != "warn\n" {
		t.Errorf("stderr should be captured: result %q, parent %q", res.Stderr, parentErr.String())
	}
}

func TestExecRunner_WorkingDirAndEnv(t *testing.T) {
	r, _, _ := newTestRunner(t, "")
	r.Env = append(os.Environ(), "JOT_TEST_VAR=passed")

	res, err := r.Run(context.Background(), Shell("lister", "sh", "-c", "pwd; echo $JOT_TEST_VAR", false))
	if err != nil {
		t.Fatal(err)
	}

	wantDir, _ := filepath.EvalSymlinks(r.Dir)
	lines := strings.Split(strings.TrimSpace(string(res.Stdout)), "\n")
	if len(lines) != 2 {
		t.Fatalf("unexpected output %q", res.Stdout)
	}
	if gotDir, _ := filepath.EvalSymlinks(lines[0]); gotDir != wantDir {
		t.Errorf("pwd = %q, want %q", lines[0], wantDir)
	}
	if lines[1] != "passed" {
		t.Errorf("env var = %q, want passed", lines[1])
	}
}

func TestExecRunner_SpawnError(t *testing.T) {
	r, _, _ := newTestRunner(t, "")

	res, err := r.Run(context.Background(), Editor("/nonexistent/editor-binary", "a.md"))
	if res != nil {
		t.Errorf("Result = %+v, want nil", res)
	}
	var spawnErr *SpawnError
	if !errors.As(err, &spawnErr) {
		t.Fatalf("error = %T %v, want *SpawnError", err, err)
	}
	if spawnErr.Label != "$EDITOR" {
		t.Errorf("Label = %q", spawnErr.Label)
	}
}
