package sync

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"reflect"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gorewood/jot/internal/config"
	"github.com/gorewood/jot/internal/runner"
)

// mockRepo implements Repository and records the calls it receives.
type mockRepo struct {
	calls []string

	pullErr      error
	addErr       error
	staged       bool
	stagedErr    error
	commitErr    error
	customMsg    string
	pushErr      error
	pushRemote   string
	pushBranch   string
	commitMsgArg string
}

func (m *mockRepo) Pull(_ context.Context, remote, branch string) error {
	m.calls = append(m.calls, "pull "+remote+" "+branch)
	return m.pullErr
}

func (m *mockRepo) AddAll(_ context.Context) error {
	m.calls = append(m.calls, "add")
	return m.addErr
}

func (m *mockRepo) HasStagedChanges(_ context.Context) (bool, error) {
	m.calls = append(m.calls, "diff")
	return m.staged, m.stagedErr
}

func (m *mockRepo) Commit(_ context.Context, message string) error {
	m.calls = append(m.calls, "commit")
	m.commitMsgArg = message
	return m.commitErr
}

func (m *mockRepo) CommitInteractive(_ context.Context) (string, error) {
	m.calls = append(m.calls, "commit-interactive")
	return m.customMsg, m.commitErr
}

func (m *mockRepo) Push(_ context.Context, remote, branch string) error {
	m.calls = append(m.calls, "push")
	m.pushRemote, m.pushBranch = remote, branch
	return m.pushErr
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.BaseDir = "/notes"
	return cfg
}

var fixedTime = time.Date(2024, 3, 1, 10, 15, 0, 0, time.UTC)

func newTestEngine(cfg config.Config, repo *mockRepo) *Engine {
	return NewEngine(cfg, repo, testLogger(), WithClock(func() time.Time { return fixedTime }))
}

func TestRun_Synced(t *testing.T) {
	repo := &mockRepo{staged: true}

	outcome, err := newTestEngine(testConfig(), repo).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if outcome.Kind != Synced {
		t.Errorf("Kind = %s, want synced", outcome.Kind)
	}
	rfc3339 := regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(Z|[+-]\d{2}:\d{2})$`)
	if !rfc3339.MatchString(outcome.CommitMessage) {
		t.Errorf("CommitMessage = %q, want RFC3339", outcome.CommitMessage)
	}
	parsed, err := time.Parse(time.RFC3339, outcome.CommitMessage)
	if err != nil || !parsed.Equal(fixedTime) {
		t.Errorf("CommitMessage = %q does not encode %s", outcome.CommitMessage, fixedTime)
	}
	if repo.commitMsgArg != outcome.CommitMessage {
		t.Errorf("committed with %q, reported %q", repo.commitMsgArg, outcome.CommitMessage)
	}

	want := []string{"pull origin main", "add", "diff", "commit", "push"}
	if !reflect.DeepEqual(repo.calls, want) {
		t.Errorf("calls = %v, want %v", repo.calls, want)
	}
	if repo.pushRemote != "origin" || repo.pushBranch != "main" {
		t.Errorf("pushed to %s/%s, want origin/main", repo.pushRemote, repo.pushBranch)
	}
}

func TestRun_UpToDate(t *testing.T) {
	repo := &mockRepo{staged: false}

	outcome, err := newTestEngine(testConfig(), repo).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if outcome.Kind != UpToDate || outcome.CommitMessage != "" {
		t.Errorf("outcome = %+v, want up to date", outcome)
	}

	want := []string{"pull origin main", "add", "diff"}
	if !reflect.DeepEqual(repo.calls, want) {
		t.Errorf("calls = %v, want no commit or push: %v", repo.calls, want)
	}
}

func TestRun_CustomCommitMessage(t *testing.T) {
	cfg := testConfig()
	cfg.GitCustomCommitMsg = true
	repo := &mockRepo{staged: true, customMsg: "weekly review"}

	outcome, err := newTestEngine(cfg, repo).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if outcome.Kind != Synced || outcome.CommitMessage != "weekly review" {
		t.Errorf("outcome = %+v", outcome)
	}
	want := []string{"pull origin main", "add", "diff", "commit-interactive", "push"}
	if !reflect.DeepEqual(repo.calls, want) {
		t.Errorf("calls = %v, want %v", repo.calls, want)
	}
}

func TestRun_ConfiguredRemoteAndBranch(t *testing.T) {
	cfg := testConfig()
	cfg.GitRemoteName = "backup"
	cfg.GitUpstreamBranch = "notes"
	repo := &mockRepo{staged: true}

	if _, err := newTestEngine(cfg, repo).Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if repo.calls[0] != "pull backup notes" {
		t.Errorf("pull = %q", repo.calls[0])
	}
	if repo.pushRemote != "backup" || repo.pushBranch != "notes" {
		t.Errorf("push = %s/%s", repo.pushRemote, repo.pushBranch)
	}
}

func TestRun_StageFailures(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name      string
		repo      *mockRepo
		wantStage Stage
		wantCalls []string
		wantMsg   string
	}{
		{
			name:      "pull fails",
			repo:      &mockRepo{staged: true, pullErr: boom},
			wantStage: StagePull,
			wantCalls: []string{"pull origin main"},
			wantMsg:   "failed to pull upstream changes",
		},
		{
			name:      "stage fails",
			repo:      &mockRepo{staged: true, addErr: boom},
			wantStage: StageStage,
			wantCalls: []string{"pull origin main", "add"},
			wantMsg:   "sync failed at stage",
		},
		{
			name:      "change check fails",
			repo:      &mockRepo{stagedErr: boom},
			wantStage: StageCommit,
			wantCalls: []string{"pull origin main", "add", "diff"},
			wantMsg:   "sync failed at commit",
		},
		{
			name:      "commit fails",
			repo:      &mockRepo{staged: true, commitErr: boom},
			wantStage: StageCommit,
			wantCalls: []string{"pull origin main", "add", "diff", "commit"},
			wantMsg:   "sync failed at commit",
		},
		{
			name:      "push fails after commit",
			repo:      &mockRepo{staged: true, pushErr: boom},
			wantStage: StagePush,
			wantCalls: []string{"pull origin main", "add", "diff", "commit", "push"},
			wantMsg:   "the commit is kept locally; please fix the issue and run git push",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := newTestEngine(testConfig(), tt.repo).Run(context.Background())
			if outcome != (Outcome{}) {
				t.Errorf("outcome = %+v, want zero on failure", outcome)
			}

			var stageErr *StageError
			if !errors.As(err, &stageErr) {
				t.Fatalf("error = %v, want *StageError", err)
			}
			if stageErr.Stage != tt.wantStage {
				t.Errorf("Stage = %s, want %s", stageErr.Stage, tt.wantStage)
			}
			if !errors.Is(err, boom) {
				t.Error("StageError should wrap the underlying error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Error() = %q, want containing %q", err.Error(), tt.wantMsg)
			}
			if !reflect.DeepEqual(tt.repo.calls, tt.wantCalls) {
				t.Errorf("calls = %v, want %v", tt.repo.calls, tt.wantCalls)
			}
		})
	}
}

func TestRun_InterruptedPullKeepsInterruptIdentity(t *testing.T) {
	repo := &mockRepo{pullErr: &runner.InterruptedError{Label: "pulling"}}

	_, err := newTestEngine(testConfig(), repo).Run(context.Background())
	if !errors.Is(err, runner.ErrInterrupted) {
		t.Errorf("error = %v, want to match runner.ErrInterrupted", err)
	}
}

func TestDefaultMessage(t *testing.T) {
	msg := DefaultMessage(fixedTime)
	parsed, err := time.Parse(time.RFC3339, msg)
	if err != nil {
		t.Fatalf("DefaultMessage() = %q is not RFC3339: %v", msg, err)
	}
	if !parsed.Equal(fixedTime) {
		t.Errorf("DefaultMessage() = %q, want instant %s", msg, fixedTime)
	}
	if strings.Contains(msg, ".") {
		t.Errorf("DefaultMessage() = %q, want seconds precision", msg)
	}
}

func TestKindString(t *testing.T) {
	if UpToDate.String() != "up_to_date" || Synced.String() != "synced" {
		t.Errorf("Kind strings = %q, %q", UpToDate, Synced)
	}
}
