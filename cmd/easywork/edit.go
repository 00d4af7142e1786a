// Package main provides the entry point for the easywork CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/easywork/internal/autosave"
	"github.com/gorewood/easywork/internal/editor"
	"github.com/gorewood/easywork/internal/output"
	"github.com/gorewood/easywork/internal/worklog"
)

// newEditCmd creates the edit command.
func newEditCmd() *cobra.Command {
	return newEditCmdInternal(nil)
}

// newEditCmdInternal creates the edit command with optional environment injection.
func newEditCmdInternal(env *appEnv) *cobra.Command {
	var external bool

	cmd := &cobra.Command{
		Use:   "edit [<date>]",
		Short: "Open a day's log in the editor",
		Long: `Open a day's log in the terminal editor. The date defaults to today.

The log is autosaved while you type (every 30s unless autosave_interval says
otherwise) and saved once more when the editor closes.

Keys:
  ctrl+s  save now
  ctrl+y  copy the log to the clipboard
  esc     save and quit

With --external the log opens in $VISUAL or $EDITOR instead. The file is
watched and autosaved the same way until the editor exits.

Examples:
  easywork edit               # Today's log
  easywork edit yesterday     # Yesterday's log
  easywork edit --external    # Today's log in $EDITOR`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, env, args, external)
		},
	}

	cmd.Flags().BoolVarP(&external, "external", "e", false, "Use $VISUAL or $EDITOR instead of the built-in editor")

	return cmd
}

// runEdit executes the edit command.
func runEdit(cmd *cobra.Command, env *appEnv, args []string, external bool) error {
	return withEnv(cmd, env, func(printer *output.Printer, env *appEnv) error {
		date, err := parseDateArg(env, args)
		if err != nil {
			return err
		}

		session := autosave.NewSession(env.store, env.locks, date)
		env.logger.Debug("editing log", "date", date.String(), "external", external)

		if external {
			err = runExternalEditor(cmd, env, session)
		} else {
			err = runBuiltinEditor(cmd, env, session)
		}
		if err != nil {
			return err
		}

		return printer.Success(map[string]any{
			"message": fmt.Sprintf("%s | %s", dayTitle(date), session.Status()),
			"date":    date.String(),
			"saved":   !session.LastSaved().IsZero(),
		})
	})
}

func runBuiltinEditor(cmd *cobra.Command, env *appEnv, session *autosave.Session) error {
	if !output.IsInputTTY(cmd.InOrStdin()) || !output.IsTTY(cmd.OutOrStdout()) {
		return output.NewUserError("the editor needs a terminal; use 'easywork write' or --external")
	}
	err := editor.Run(session, env.cfg.AutosaveInterval, editor.WithClipboard(env.clipboard))
	if err != nil {
		return output.NewSystemErrorWithCause("editor failed: "+err.Error(), err)
	}
	return nil
}

// runExternalEditor writes the log to a temp file, runs the configured editor
// on it, and autosaves the file while the editor is open.
func runExternalEditor(cmd *cobra.Command, env *appEnv, session *autosave.Session) error {
	argv := strings.Fields(env.cfg.Editor)
	if len(argv) == 0 {
		return output.NewUserError("no editor configured: set $VISUAL, $EDITOR or editor in config.yaml")
	}

	dir, err := os.MkdirTemp("", "easywork-*")
	if err != nil {
		return output.NewSystemErrorWithCause("failed to create temp directory: "+err.Error(), err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	path := filepath.Join(dir, session.Date().String()+".txt")
	if err := os.WriteFile(path, []byte(worklog.EditorText(session.Content())), 0o600); err != nil {
		return output.NewSystemErrorWithCause("failed to create temp file: "+err.Error(), err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	loop := &autosave.Loop{
		Interval: env.cfg.AutosaveInterval,
		Save: func(context.Context) error {
			content, err := readEdited(path)
			if err != nil {
				return err
			}
			_, err = session.Autosave(content)
			return err
		},
		OnError: func(err error) {
			env.logger.Warn("autosave failed", "date", session.Date().String(), "error", err)
		},
	}
	loopDone := make(chan error, 1)
	go func() { loopDone <- loop.Run(ctx) }()

	child := exec.CommandContext(cmd.Context(), argv[0], append(argv[1:], path)...) //nolint:gosec // editor comes from the user's own config
	child.Stdin = cmd.InOrStdin()
	child.Stdout = cmd.OutOrStdout()
	child.Stderr = cmd.ErrOrStderr()
	runErr := child.Run()

	cancel()
	loopErr := <-loopDone

	// The loop's final save skips a cleared log; an explicit save does not.
	content, readErr := readEdited(path)
	if readErr == nil && session.Dirty(content) {
		loopErr = session.Save(content)
	}

	switch {
	case runErr != nil:
		return output.NewSystemErrorWithCause("editor "+argv[0]+" failed: "+runErr.Error(), runErr)
	case readErr != nil:
		return output.NewSystemErrorWithCause("failed to read edited log: "+readErr.Error(), readErr)
	case loopErr != nil:
		return output.NewSystemErrorWithCause(loopErr.Error(), loopErr)
	}
	return nil
}

// readEdited reads the temp file, dropping the final newline most editors add.
func readEdited(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	content := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(content, "\r"), nil
}
