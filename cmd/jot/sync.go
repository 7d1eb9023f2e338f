package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/jot/internal/sync"
)

// newSyncCmd creates the sync command.
func newSyncCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Pull, commit all changes and push",
		Long: `Reconcile the notes directory with its remote.

Runs, in the base dir and stopping at the first failure:
  git pull <remote> <branch>
  git add -A
  git commit -m <current time>     (skipped when nothing changed)
  git push <remote> HEAD:<branch>

With --git-custom-commit-msg git opens its editor for the message instead.

When the push fails the commit stays in the local repository. Running
jot sync again finds nothing to commit and stops, so push it with git push
once the problem is fixed.

Examples:
  jot sync
  jot sync --json          # {"status":"synced","commit_message":"..."}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.loadApp(cmd)
			if err != nil {
				return err
			}
			outcome, err := a.dispatcher.Sync(cmd.Context())
			if err != nil {
				return err
			}

			printer := newPrinter(cmd)
			if printer.IsJSON() {
				return printer.Success(syncData(outcome))
			}
			if outcome.Kind == sync.UpToDate {
				printer.Println(printer.Dim("Already up to date"))
				return nil
			}
			printer.Print("Synced: %s\n", outcome.CommitMessage)
			return nil
		},
	}
}

// syncData is the JSON form of a sync outcome.
func syncData(outcome sync.Outcome) map[string]any {
	data := map[string]any{"status": outcome.Kind.String()}
	if outcome.CommitMessage != "" {
		data["commit_message"] = outcome.CommitMessage
	}
	return data
}
