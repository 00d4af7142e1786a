// Package main provides the entry point for the easywork CLI.
package main

import (
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gorewood/easywork/internal/config"
	"github.com/gorewood/easywork/internal/logging"
	"github.com/gorewood/easywork/internal/output"
	"github.com/gorewood/easywork/internal/worklog"
)

// newStatusCmd creates the status command.
func newStatusCmd() *cobra.Command {
	return newStatusCmdInternal(nil)
}

// newStatusCmdInternal creates the status command with optional environment injection.
func newStatusCmdInternal(env *appEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show where logs are kept and today's state",
		Long: `Show the data directory, the configuration in effect, and whether today
and this month have logs.

Examples:
  easywork status          # Human-readable
  easywork status --json   # For scripts`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, env)
		},
	}
}

// statusJSON is the JSON shape of the status command.
type statusJSON struct {
	DataDir          string `json:"data_dir"`
	ConfigFile       string `json:"config_file"`
	ConfigLoaded     bool   `json:"config_loaded"`
	LogFile          string `json:"log_file"`
	LogLevel         string `json:"log_level"`
	AutosaveInterval string `json:"autosave_interval"`
	Editor           string `json:"editor,omitempty"`
	Today            string `json:"today"`
	TodayLogged      bool   `json:"today_logged"`
	Month            string `json:"month"`
	MonthLogged      int    `json:"month_logged"`
	DaysInMonth      int    `json:"days_in_month"`
}

// runStatus executes the status command.
func runStatus(cmd *cobra.Command, env *appEnv) error {
	return withEnv(cmd, env, func(printer *output.Printer, env *appEnv) error {
		status := gatherStatus(env)
		if printer.IsJSON() {
			return printer.WriteJSON(status)
		}

		printer.Heading("easywork " + buildVersion())
		printer.KeyValue("Data dir", status.DataDir)
		configFile := status.ConfigFile
		if !status.ConfigLoaded {
			configFile += " (not found, using defaults)"
		}
		printer.KeyValue("Config", configFile)
		printer.KeyValue("Log file", status.LogFile+" ("+status.LogLevel+")")
		printer.KeyValue("Autosave", "every "+status.AutosaveInterval)
		if status.Editor != "" {
			printer.KeyValue("Editor", status.Editor)
		}
		printer.Println()

		today := "not logged yet"
		if status.TodayLogged {
			today = "logged " + printer.Marker(true)
		}
		printer.KeyValue("Today", status.Today+" "+today)
		printer.KeyValue("This month", status.Month+" "+strconv.Itoa(status.MonthLogged)+" of "+strconv.Itoa(status.DaysInMonth)+" days logged")
		return nil
	})
}

func gatherStatus(env *appEnv) statusJSON {
	today := env.today()
	month := worklog.MonthOf(today)

	logged := 0
	todayLogged := false
	for _, day := range env.store.MonthStatus(month.Year, month.Month) {
		if !day.HasContent {
			continue
		}
		logged++
		if day.Date == today {
			todayLogged = true
		}
	}

	configFile := env.cfg.Source
	if configFile == "" {
		configFile = config.FilePath()
	}

	return statusJSON{
		DataDir:          env.store.Dir(),
		ConfigFile:       configFile,
		ConfigLoaded:     env.cfg.Source != "",
		LogFile:          filepath.Join(config.Dir(), logging.FileName),
		LogLevel:         env.cfg.LogLevel,
		AutosaveInterval: env.cfg.AutosaveInterval.String(),
		Editor:           env.cfg.Editor,
		Today:            today.String(),
		TodayLogged:      todayLogged,
		Month:            month.String(),
		MonthLogged:      logged,
		DaysInMonth:      worklog.DaysIn(month.Year, month.Month),
	}
}
