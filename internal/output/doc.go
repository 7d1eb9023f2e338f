// Package output provides structured output handling for the jot CLI.
//
// Status messages (sync results, created notes) are printed through a
// Printer that switches between human-readable and JSON output. Data
// produced by external programs, such as lister output, bypasses the
// Printer and is written verbatim.
//
// # Printer
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, output.IsTTY(cmd.OutOrStdout()))
//	printer.Success(map[string]any{"status": "synced", "commit_message": msg})
//	printer.Error(err)
//
// # Exit Codes
//
//	output.ExitSuccess // 0
//	output.ExitFailure // 1: any failure
//
// # Silent Errors
//
// NewSilentError marks an error that aborts the command without a
// diagnostic. Printer.Error skips it; GetExitCode still reports failure.
package output
