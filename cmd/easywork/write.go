// Package main provides the entry point for the easywork CLI.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/easywork/internal/output"
	"github.com/gorewood/easywork/internal/worklog"
)

// writeFlags holds the flags for the write command.
type writeFlags struct {
	date   string
	file   string
	append bool
	force  bool
}

// newWriteCmd creates the write command.
func newWriteCmd() *cobra.Command {
	return newWriteCmdInternal(nil)
}

// newWriteCmdInternal creates the write command with optional environment injection.
func newWriteCmdInternal(env *appEnv) *cobra.Command {
	var flags writeFlags

	cmd := &cobra.Command{
		Use:   "write [<text>...]",
		Short: "Write a day's log without opening the editor",
		Long: `Write a day's log from arguments, a file, or standard input.

The text replaces the day's log. A day that already has a log is left alone
unless --append or --force is given.

Examples:
  easywork write "Reviewed the deploy plan"         # Today's log from an argument
  easywork write --append "Standup"                 # Add a line to today's log
  easywork write --date yesterday --file notes.txt  # Yesterday's log from a file
  git log --oneline | easywork write --append       # Append from standard input`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWrite(cmd, env, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.date, "date", "d", "", "Day to write (default: today)")
	cmd.Flags().StringVarP(&flags.file, "file", "f", "", "Read the text from a file, or - for standard input")
	cmd.Flags().BoolVarP(&flags.append, "append", "a", false, "Add the text after the existing log")
	cmd.Flags().BoolVar(&flags.force, "force", false, "Replace an existing log")
	cmd.MarkFlagsMutuallyExclusive("append", "force")

	return cmd
}

// runWrite executes the write command.
func runWrite(cmd *cobra.Command, env *appEnv, args []string, flags writeFlags) error {
	return withEnv(cmd, env, func(printer *output.Printer, env *appEnv) error {
		date, err := worklog.ResolveDate(flags.date, env.today())
		if err != nil {
			return output.NewUserError(err.Error())
		}

		text, err := readWriteText(cmd, args, flags.file)
		if err != nil {
			return err
		}
		if strings.TrimSpace(text) == "" {
			return output.NewUserError("nothing to write: pass text, --file, or pipe it on standard input")
		}

		unlock := env.locks.Lock(date)
		defer unlock()

		rec := env.store.Load(date)
		action := "Saved"
		switch {
		case flags.append:
			rec.Append(text)
			action = "Appended to"
		case !rec.IsBlank() && !flags.force:
			return output.NewConflictError(fmt.Sprintf("log for %s already exists; use --append or --force", date))
		default:
			rec.Content = text
		}

		if err := env.store.Save(rec); err != nil {
			return output.NewSystemErrorWithCause(err.Error(), err)
		}
		env.logger.Info("log written", "date", date.String(), "append", flags.append)

		return printer.Success(map[string]any{
			"message": fmt.Sprintf("%s log for %s", action, dayTitle(date)),
			"date":    date.String(),
			"log":     newLogJSON(rec),
		})
	})
}

// readWriteText picks the text source: arguments, then --file, then a piped
// standard input.
func readWriteText(cmd *cobra.Command, args []string, file string) (string, error) {
	if len(args) > 0 {
		if file != "" {
			return "", output.NewUserError("cannot use both text arguments and --file")
		}
		return strings.Join(args, " "), nil
	}

	switch file {
	case "":
		in := cmd.InOrStdin()
		if output.IsInputTTY(in) {
			return "", nil
		}
		return readAll(in, "standard input")
	case "-":
		return readAll(cmd.InOrStdin(), "standard input")
	default:
		data, err := os.ReadFile(file)
		if err != nil {
			return "", output.NewUserError(fmt.Sprintf("failed to read %s: %v", file, err))
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	}
}

func readAll(r io.Reader, name string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", output.NewSystemErrorWithCause("failed to read "+name, err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}
