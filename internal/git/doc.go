// Package git runs the git operations jot needs to sync a notes directory.
//
// Every operation goes through a runner.Runner and inherits the terminal's
// standard streams, so git's own progress output, prompts and conflict
// messages reach the user unchanged. Failures come back as the runner's
// error types (*runner.ExitFailure, *runner.InterruptedError,
// *runner.SpawnError).
//
// Typical use:
//
//	repo := git.NewRepo(runner)
//	if err := repo.Pull(ctx, "origin", "main"); err != nil {
//		return err
//	}
package git
