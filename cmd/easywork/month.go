// Package main provides the entry point for the easywork CLI.
package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/easywork/internal/output"
	"github.com/gorewood/easywork/internal/worklog"
)

// previewWidth is how many characters of a log's first line the month table shows.
const previewWidth = 48

// newMonthCmd creates the month command.
func newMonthCmd() *cobra.Command {
	return newMonthCmdInternal(nil)
}

// newMonthCmdInternal creates the month command with optional environment injection.
func newMonthCmdInternal(env *appEnv) *cobra.Command {
	var onlyLogged bool

	cmd := &cobra.Command{
		Use:   "month [<YYYY-MM>]",
		Short: "List the days of a month and which have a log",
		Long: `List every day of a month, marking the days that have a log.
The month defaults to the current one; "last" means the previous month.

Examples:
  easywork month                 # This month
  easywork month last            # Last month
  easywork month 2025-03 --only-logged`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMonth(cmd, env, args, onlyLogged)
		},
	}

	cmd.Flags().BoolVar(&onlyLogged, "only-logged", false, "List only days that have a log")

	return cmd
}

// monthJSON is the JSON shape of the month command.
type monthJSON struct {
	Month       string    `json:"month"`
	Label       string    `json:"label"`
	DaysInMonth int       `json:"days_in_month"`
	LoggedDays  int       `json:"logged_days"`
	Days        []dayJSON `json:"days"`
}

type dayJSON struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
	Logged  bool   `json:"logged"`
	Preview string `json:"preview,omitempty"`
}

// runMonth executes the month command.
func runMonth(cmd *cobra.Command, env *appEnv, args []string, onlyLogged bool) error {
	return withEnv(cmd, env, func(printer *output.Printer, env *appEnv) error {
		value := ""
		if len(args) > 0 {
			value = args[0]
		}
		month, err := parseMonthArg(env, value)
		if err != nil {
			return err
		}

		result := buildMonth(env.store, month, onlyLogged)
		if printer.IsJSON() {
			return printer.WriteJSON(result)
		}

		printer.Heading(month.Label())
		rows := make([][]string, 0, len(result.Days))
		for _, day := range result.Days {
			rows = append(rows, []string{day.Date, day.Weekday[:3], printer.Marker(day.Logged), day.Preview})
		}
		printer.Table([]string{"Date", "Day", "Log", "Preview"}, rows)
		printer.Println()
		printer.Muted("%d of %d days logged", result.LoggedDays, result.DaysInMonth)
		return nil
	})
}

func buildMonth(store *worklog.FileStore, month worklog.Month, onlyLogged bool) monthJSON {
	previews := make(map[worklog.Date]string)
	for _, rec := range store.ListMonth(month.Year, month.Month) {
		previews[rec.Date] = preview(rec.Content)
	}

	result := monthJSON{
		Month:       month.String(),
		Label:       month.Label(),
		DaysInMonth: worklog.DaysIn(month.Year, month.Month),
		LoggedDays:  len(previews),
		Days:        []dayJSON{},
	}
	for _, date := range worklog.MonthDays(month.Year, month.Month) {
		text, logged := previews[date]
		if onlyLogged && !logged {
			continue
		}
		result.Days = append(result.Days, dayJSON{
			Date:    date.String(),
			Weekday: date.Weekday().String(),
			Logged:  logged,
			Preview: text,
		})
	}
	return result
}

// preview returns the first non-blank line of content, cut to previewWidth.
func preview(content string) string {
	for _, line := range strings.Split(worklog.EditorText(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		runes := []rune(line)
		if len(runes) > previewWidth {
			return string(runes[:previewWidth-1]) + "…"
		}
		return line
	}
	return ""
}
