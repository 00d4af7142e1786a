// Package main provides the entry point for the easywork CLI.
package main

import (
	"io"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/gorewood/easywork/internal/config"
	"github.com/gorewood/easywork/internal/logging"
	"github.com/gorewood/easywork/internal/output"
	"github.com/gorewood/easywork/internal/worklog"
)

// appEnv is what commands need from the outside world. Tests build one
// around a temp directory and a fixed clock.
type appEnv struct {
	cfg       *config.Config
	store     *worklog.FileStore
	locks     *worklog.DateLocks
	logger    *slog.Logger
	now       func() time.Time
	clipboard func(string) error
	closer    io.Closer
}

func (e *appEnv) today() worklog.Date {
	return worklog.DateOf(e.now())
}

// Close releases the log file, if one was opened.
func (e *appEnv) Close() {
	if e.closer != nil {
		_ = e.closer.Close()
	}
}

// resolveEnv returns env when injected, otherwise loads configuration from
// the --config and --data-dir flags, the environment and config.yaml.
func resolveEnv(cmd *cobra.Command, env *appEnv) (*appEnv, error) {
	if env != nil {
		return env, nil
	}

	cfg, err := config.Load(persistentFlag(cmd, "config"), config.Flags{
		DataDir: persistentFlag(cmd, "data-dir"),
	})
	if err != nil {
		return nil, output.NewUserError(err.Error())
	}

	logger, closer, err := logging.New(config.Dir(), cfg.LogLevel)
	if err != nil {
		logger, closer = logging.Discard(), nil
	}

	return &appEnv{
		cfg:       cfg,
		store:     worklog.NewFileStore(cfg.DataDir, worklog.WithLogger(logger)),
		locks:     &worklog.DateLocks{},
		logger:    logger,
		now:       time.Now,
		clipboard: clipboard.WriteAll,
		closer:    closer,
	}, nil
}

// withEnv resolves the environment, reports a failure through the printer,
// and runs fn.
func withEnv(cmd *cobra.Command, env *appEnv, fn func(*output.Printer, *appEnv) error) error {
	printer := newPrinter(cmd)
	resolved, err := resolveEnv(cmd, env)
	if err != nil {
		printer.Error(err)
		return err
	}
	if env == nil {
		defer resolved.Close()
	}
	if err := fn(printer, resolved); err != nil {
		printer.Error(err)
		return err
	}
	return nil
}

// parseDateArg resolves an optional date argument against today.
func parseDateArg(env *appEnv, args []string) (worklog.Date, error) {
	value := ""
	if len(args) > 0 {
		value = args[0]
	}
	date, err := worklog.ResolveDate(value, env.today())
	if err != nil {
		return worklog.Date{}, output.NewUserError(err.Error())
	}
	return date, nil
}

// parseMonthArg resolves an optional month argument against today.
func parseMonthArg(env *appEnv, value string) (worklog.Month, error) {
	month, err := worklog.ResolveMonth(value, env.today())
	if err != nil {
		return worklog.Month{}, output.NewUserError(err.Error())
	}
	return month, nil
}

// logJSON is the JSON shape of one day's log.
type logJSON struct {
	Date         string `json:"date"`
	Weekday      string `json:"weekday"`
	Content      string `json:"content"`
	Saved        bool   `json:"saved"`
	LastModified string `json:"last_modified,omitempty"`
}

func newLogJSON(rec *worklog.Record) logJSON {
	out := logJSON{
		Date:    rec.Date.String(),
		Weekday: rec.Date.Weekday().String(),
		Content: worklog.EditorText(rec.Content),
		Saved:   rec.IsSaved(),
	}
	if rec.IsSaved() {
		out.LastModified = rec.LastModified.Format(time.RFC3339)
	}
	return out
}

// dayTitle returns "YYYY-MM-DD Weekday".
func dayTitle(date worklog.Date) string {
	return date.String() + " " + date.Weekday().String()
}
