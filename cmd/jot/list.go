package main

import (
	"github.com/spf13/cobra"
)

// newListCmd creates the list command.
func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list [path]",
		Short: "List notes with the configured lister",
		Long: `Run the lister and print its output verbatim.

The path, relative to the base dir, is appended to the lister invocation
as a single quoted argument; the base dir itself is listed when it is
omitted. Nothing is printed when the lister fails.

Examples:
  jot list                 # e.g. runs: tree '.'
  jot list work            # e.g. runs: tree 'work'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.loadApp(cmd)
			if err != nil {
				return err
			}
			return a.dispatcher.List(cmd.Context(), argOrEmpty(args))
		},
	}
}
