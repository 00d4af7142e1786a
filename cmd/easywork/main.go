// Package main provides the entry point for the easywork CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/easywork/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	return persistentFlag(cmd, "json") == "true"
}

// useColor resolves --color against the command's output stream.
func useColor(cmd *cobra.Command) bool {
	return output.ResolveColorMode(persistentFlag(cmd, "color"), output.IsTTY(cmd.OutOrStdout()))
}

// newPrinter builds the printer every command writes through.
func newPrinter(cmd *cobra.Command) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).WithStderr(cmd.ErrOrStderr())
}

func persistentFlag(cmd *cobra.Command, name string) string {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup(name)
	}
	if flag == nil {
		return ""
	}
	return flag.Value.String()
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	os.Exit(run())
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the easywork CLI.
func newRootCmd() *cobra.Command {
	return newRootCmdInternal(nil)
}

// newRootCmdInternal builds the command tree. A nil env makes each command
// resolve configuration and storage when it runs.
func newRootCmdInternal(env *appEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "easywork",
		Short: "A daily work-log journal",
		Long: `easywork keeps one free-text note per day and turns a month of notes
into a report.

Logs are stored one file per day under the EasyWork/Logs directory of your
user config folder, so notes written by the desktop app are picked up as-is.

All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if isJSONMode(cmd) {
				printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
				err := output.NewUserError("no command specified. Run 'easywork --help' for usage")
				printer.Error(err)
				return err
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("color", "auto", "Colorize output: auto, always or never")
	cmd.PersistentFlags().String("data-dir", "", "Directory holding the daily log files")
	cmd.PersistentFlags().String("config", "", "Config file (default: <config dir>/config.yaml)")

	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd, env)

	return cmd
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "core", Title: "Daily Log Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "report", Title: "Report Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "admin", Title: "Admin Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command, env *appEnv) {
	addGroupedCommand(cmd, newShowCmdInternal(env), "core")
	addGroupedCommand(cmd, newWriteCmdInternal(env), "core")
	addGroupedCommand(cmd, newEditCmdInternal(env), "core")
	addGroupedCommand(cmd, newCopyCmdInternal(env), "core")

	addGroupedCommand(cmd, newMonthCmdInternal(env), "report")
	addGroupedCommand(cmd, newExportCmdInternal(env), "report")
	addGroupedCommand(cmd, newSearchCmdInternal(env), "report")

	addGroupedCommand(cmd, newStatusCmdInternal(env), "admin")
	addGroupedCommand(cmd, newServeCmdInternal(env), "admin")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
