// Package main provides the entry point for the easywork CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/easywork/internal/output"
	"github.com/gorewood/easywork/internal/worklog"
)

// savedLayout formats LastModified in human output.
const savedLayout = "2006-01-02 15:04:05"

// newShowCmd creates the show command.
func newShowCmd() *cobra.Command {
	return newShowCmdInternal(nil)
}

// newShowCmdInternal creates the show command with optional environment injection.
// If env is nil, configuration and storage are resolved when the command runs.
func newShowCmdInternal(env *appEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "show [<date>]",
		Short: "Print the log for a day",
		Long: `Print the log for a day. The date defaults to today.

Dates may be YYYY-MM-DD, today, yesterday, or a number of days back (-3 or 3d).

Examples:
  easywork show              # Today's log
  easywork show yesterday    # Yesterday's log
  easywork show 2025-03-17   # A specific day
  easywork show --json       # Today's log as JSON`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, env, args)
		},
	}
}

// runShow executes the show command.
func runShow(cmd *cobra.Command, env *appEnv, args []string) error {
	return withEnv(cmd, env, func(printer *output.Printer, env *appEnv) error {
		date, err := parseDateArg(env, args)
		if err != nil {
			return err
		}

		rec := env.store.Load(date)
		if printer.IsJSON() {
			return printer.WriteJSON(newLogJSON(rec))
		}

		printer.Heading(dayTitle(date))
		if rec.IsBlank() {
			printer.Muted("No log for this day. Run 'easywork edit %s' to write one.", date)
			return nil
		}
		printer.Println(worklog.EditorText(rec.Content))
		printer.Println()
		printer.Muted("Last saved: %s", rec.LastModified.Local().Format(savedLayout))
		return nil
	})
}
