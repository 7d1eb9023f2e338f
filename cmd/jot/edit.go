package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/gorewood/jot/internal/notes"
	"github.com/gorewood/jot/internal/output"
)

// newEditCmd creates the edit command.
func newEditCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "edit [path]",
		Short: "Open a note in $EDITOR, then sync",
		Long: `Open a note in $EDITOR.

Without a path the finder is run and the path it prints is opened. The
note does not have to exist; your editor decides what to do with a new
file. After the editor exits the notes directory is synced, unless
--edit-syncs=false. A failing editor still triggers the sync but jot exits
non-zero.

Examples:
  jot edit                 # Pick a note with the finder
  jot edit work/todo.md    # Open a note below the base dir
  jot                      # Same as jot edit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, opts, args)
		},
	}
}

// newNewCmd creates the new command.
func newNewCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "new [path]",
		Short: "Create a note if it does not exist, then edit it",
		Long: `Create an empty note, and any missing parent directories, then open
it in $EDITOR like jot edit. An existing note is opened unchanged.

Without a path the finder is asked for one.

Examples:
  jot new ideas/2026-10-18.md
  jot new --json journal.md   # Report path, creation and sync as JSON`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.loadApp(cmd)
			if err != nil {
				return err
			}
			result, err := a.dispatcher.New(cmd.Context(), argOrEmpty(args))
			return withReport(err, reportEdit(newPrinter(cmd), result))
		},
	}
}

// runEdit executes the edit command. It is also the root command's action.
func runEdit(cmd *cobra.Command, opts *rootOptions, args []string) error {
	a, err := opts.loadApp(cmd)
	if err != nil {
		return err
	}
	result, err := a.dispatcher.Edit(cmd.Context(), argOrEmpty(args))
	return withReport(err, reportEdit(newPrinter(cmd), result))
}

// withReport combines an operation error with a failure to print its
// result.
func withReport(err, reportErr error) error {
	if reportErr == nil {
		return err
	}
	return errors.Join(err, reportErr)
}

// reportEdit prints the JSON summary of an edit. Human mode prints nothing:
// the editor session is the output.
func reportEdit(printer *output.Printer, result *notes.EditResult) error {
	if result == nil || !printer.IsJSON() {
		return nil
	}

	data := map[string]any{
		"path":    result.Path.Abs,
		"created": result.Created,
	}
	if result.Sync != nil {
		data["sync"] = syncData(*result.Sync)
	}
	return printer.Success(data)
}

func argOrEmpty(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
