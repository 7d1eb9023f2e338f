package main

import (
	"errors"
	"testing"

	"github.com/gorewood/jot/internal/notes"
	"github.com/gorewood/jot/internal/output"
	"github.com/gorewood/jot/internal/sync"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("stdout closed")
}

func TestReportEdit(t *testing.T) {
	result := &notes.EditResult{
		Path:    notes.Path{Abs: "/n/a.md", Rel: "a.md"},
		Created: true,
		Sync:    &sync.Outcome{Kind: sync.Synced, CommitMessage: "msg"},
	}

	tests := []struct {
		name    string
		printer *output.Printer
		result  *notes.EditResult
		wantErr bool
	}{
		{name: "human mode prints nothing", printer: output.NewPrinter(failingWriter{}, false, false), result: result},
		{name: "no result", printer: output.NewPrinter(failingWriter{}, true, false), result: nil},
		{name: "JSON write failure", printer: output.NewPrinter(failingWriter{}, true, false), result: result, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := reportEdit(tt.printer, tt.result)
			if (err != nil) != tt.wantErr {
				t.Errorf("reportEdit() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWithReport(t *testing.T) {
	opErr := errors.New("editor failed")
	reportErr := errors.New("encoding JSON")

	if got := withReport(nil, nil); got != nil {
		t.Errorf("withReport(nil, nil) = %v", got)
	}
	if got := withReport(opErr, nil); got != opErr {
		t.Errorf("withReport(op, nil) = %v, want the operation error", got)
	}
	if got := withReport(nil, reportErr); !errors.Is(got, reportErr) {
		t.Errorf("withReport(nil, report) = %v, want the report error", got)
	}
	got := withReport(opErr, reportErr)
	if !errors.Is(got, opErr) || !errors.Is(got, reportErr) {
		t.Errorf("withReport(op, report) = %v, want both", got)
	}
}
