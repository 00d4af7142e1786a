// Package main provides the entry point for the easywork CLI.
package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/easywork/internal/export"
	"github.com/gorewood/easywork/internal/output"
)

// exportFormats lists the accepted --format values.
var exportFormats = []string{export.FormatText, export.FormatHTML, export.FormatMarkdown, export.FormatJSON}

// exportFlags holds the flags for the export command.
type exportFlags struct {
	format string
	out    string
}

// newExportCmd creates the export command.
func newExportCmd() *cobra.Command {
	return newExportCmdInternal(nil)
}

// newExportCmdInternal creates the export command with optional environment injection.
func newExportCmdInternal(env *appEnv) *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export [<YYYY-MM>]",
		Short: "Write a monthly report",
		Long: `Write a report of every logged day in a month.
The month defaults to the current one; "last" means the previous month.

Formats:
  txt   Plain text (default)
  html  A standalone page with a "Download TXT" button
  md    Markdown with YAML frontmatter
  json  The logs as JSON

The report is written to worklog_YYYY-MM.<format> in the current directory
unless --out names another file. Use --out - to print it instead.

Examples:
  easywork export                        # This month as text
  easywork export last --format html     # Last month as HTML
  easywork export 2025-03 --out -        # Print March 2025`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, env, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", export.FormatText, "Report format: "+strings.Join(exportFormats, ", "))
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "Output file, or - for standard output")

	return cmd
}

// runExport executes the export command.
func runExport(cmd *cobra.Command, env *appEnv, args []string, flags exportFlags) error {
	return withEnv(cmd, env, func(printer *output.Printer, env *appEnv) error {
		if !slices.Contains(exportFormats, flags.format) {
			return output.NewUserError(fmt.Sprintf("invalid format %q: use %s", flags.format, strings.Join(exportFormats, ", ")))
		}

		value := ""
		if len(args) > 0 {
			value = args[0]
		}
		month, err := parseMonthArg(env, value)
		if err != nil {
			return err
		}

		records := env.store.ListMonth(month.Year, month.Month)
		if len(records) == 0 {
			return output.NewUserError("no work logs for " + month.Label())
		}

		renderer := export.Renderer{Now: env.now}
		report, err := renderer.Render(flags.format, records)
		if err != nil {
			return output.NewSystemErrorWithCause("failed to render report: "+err.Error(), err)
		}

		if flags.out == "-" {
			printer.Print("%s", report)
			return nil
		}

		summary, err := export.NewSummary(records, env.now())
		if err != nil {
			return output.NewSystemErrorWithCause("failed to summarize report: "+err.Error(), err)
		}
		path := flags.out
		if path == "" {
			path = export.DefaultFileName(summary, flags.format)
		}
		if err := export.WriteFile(path, report); err != nil {
			return err
		}
		env.logger.Info("report exported", "month", month.String(), "format", flags.format, "path", path)

		return printer.Success(map[string]any{
			"message": fmt.Sprintf("Exported %d days of %s to %s", summary.Days, summary.Label, path),
			"path":    path,
			"format":  flags.format,
			"days":    summary.Days,
		})
	})
}
