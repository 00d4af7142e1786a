// Package main provides the entry point for the easywork CLI.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/easywork/internal/output"
	"github.com/gorewood/easywork/internal/search"
)

// searchFlags holds the flags for the search command.
type searchFlags struct {
	month string
	limit int
}

// newSearchCmd creates the search command.
func newSearchCmd() *cobra.Command {
	return newSearchCmdInternal(nil)
}

// newSearchCmdInternal creates the search command with optional environment injection.
func newSearchCmdInternal(env *appEnv) *cobra.Command {
	var flags searchFlags

	cmd := &cobra.Command{
		Use:   "search <query>...",
		Short: "Fuzzy-search a month of logs",
		Long: `Fuzzy-search the lines of a month's logs, best matches first.

Examples:
  easywork search deploy                  # This month
  easywork search "code review" -m last   # Last month
  easywork search standup --limit 5 --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, env, strings.Join(args, " "), flags)
		},
	}

	cmd.Flags().StringVarP(&flags.month, "month", "m", "", "Month to search, YYYY-MM or last (default: this month)")
	cmd.Flags().IntVarP(&flags.limit, "limit", "n", 20, "Maximum matches to show (0 for all)")

	return cmd
}

// searchJSON is one match in JSON output.
type searchJSON struct {
	Date  string `json:"date"`
	Line  int    `json:"line"`
	Text  string `json:"text"`
	Score int    `json:"score"`
}

// runSearch executes the search command.
func runSearch(cmd *cobra.Command, env *appEnv, query string, flags searchFlags) error {
	return withEnv(cmd, env, func(printer *output.Printer, env *appEnv) error {
		if flags.limit < 0 {
			return output.NewUserError("--limit must not be negative")
		}
		month, err := parseMonthArg(env, flags.month)
		if err != nil {
			return err
		}

		matches := search.Find(env.store.ListMonth(month.Year, month.Month), query)
		total := len(matches)
		if flags.limit > 0 && len(matches) > flags.limit {
			matches = matches[:flags.limit]
		}

		if printer.IsJSON() {
			out := make([]searchJSON, 0, len(matches))
			for _, m := range matches {
				out = append(out, searchJSON{Date: m.Date.String(), Line: m.Line, Text: m.Text, Score: m.Score})
			}
			return printer.WriteJSON(map[string]any{
				"month":   month.String(),
				"query":   query,
				"total":   total,
				"matches": out,
			})
		}

		if total == 0 {
			printer.Muted("No matches for %q in %s", query, month.Label())
			return nil
		}

		printer.Heading(fmt.Sprintf("%s: %q", month.Label(), query))
		rows := make([][]string, 0, len(matches))
		for _, m := range matches {
			rows = append(rows, []string{m.Date.String(), strconv.Itoa(m.Line), search.Highlight(m, printer.Match)})
		}
		printer.Table([]string{"Date", "Line", "Text"}, rows)
		if total > len(matches) {
			printer.Println()
			printer.Muted("Showing %d of %d matches. Use --limit 0 for all.", len(matches), total)
		}
		return nil
	})
}
