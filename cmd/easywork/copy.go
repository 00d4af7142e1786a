// Package main provides the entry point for the easywork CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gorewood/easywork/internal/output"
)

// newCopyCmd creates the copy command.
func newCopyCmd() *cobra.Command {
	return newCopyCmdInternal(nil)
}

// newCopyCmdInternal creates the copy command with optional environment injection.
func newCopyCmdInternal(env *appEnv) *cobra.Command {
	var withDate bool

	cmd := &cobra.Command{
		Use:   "copy [<date>]",
		Short: "Copy a day's log to the clipboard",
		Long: `Copy a day's log to the system clipboard. The date defaults to today.

Examples:
  easywork copy                # Today's log
  easywork copy --with-date    # Prefix a "Date: YYYY-MM-DD Weekday" line
  easywork copy 2025-03-17     # A specific day`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCopy(cmd, env, args, withDate)
		},
	}

	cmd.Flags().BoolVar(&withDate, "with-date", false, "Start the copied text with the date")

	return cmd
}

// runCopy executes the copy command.
func runCopy(cmd *cobra.Command, env *appEnv, args []string, withDate bool) error {
	return withEnv(cmd, env, func(printer *output.Printer, env *appEnv) error {
		date, err := parseDateArg(env, args)
		if err != nil {
			return err
		}

		text := env.store.Load(date).CopyText(withDate)
		if text == "" {
			return output.NewUserError(fmt.Sprintf("nothing to copy: no log for %s", date))
		}
		if err := env.clipboard(text); err != nil {
			return output.NewSystemErrorWithCause("failed to copy to clipboard: "+err.Error(), err)
		}

		return printer.Success(map[string]any{
			"message": fmt.Sprintf("Copied log for %s to the clipboard", dayTitle(date)),
			"date":    date.String(),
			"bytes":   len(text),
		})
	})
}
