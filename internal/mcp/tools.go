package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/easywork/internal/export"
	"github.com/gorewood/easywork/internal/search"
	"github.com/gorewood/easywork/internal/worklog"
)

// --- Shared types ---

// LogEntry is one day's log as returned to agents. Content uses \n line endings.
type LogEntry struct {
	Date         string `json:"date"                    jsonschema:"day as YYYY-MM-DD"`
	Weekday      string `json:"weekday"                 jsonschema:"day of the week"`
	Content      string `json:"content"                 jsonschema:"log text, empty when nothing was written"`
	Saved        bool   `json:"saved"                   jsonschema:"whether the day has ever been saved"`
	LastModified string `json:"last_modified,omitempty" jsonschema:"RFC3339 time of the last save"`
}

func toLogEntry(rec *worklog.Record) LogEntry {
	entry := LogEntry{
		Date:    rec.Date.String(),
		Weekday: rec.Date.Weekday().String(),
		Content: worklog.EditorText(rec.Content),
		Saved:   rec.IsSaved(),
	}
	if rec.IsSaved() {
		entry.LastModified = rec.LastModified.Format(time.RFC3339)
	}
	return entry
}

// MonthInput selects a month. Zero values mean the current month.
type MonthInput struct {
	Year  int `json:"year,omitempty"  jsonschema:"four-digit year, defaults to the current year"`
	Month int `json:"month,omitempty" jsonschema:"month number 1-12, defaults to the current month"`
}

func (in MonthInput) resolve(today worklog.Date) (worklog.Month, error) {
	current := worklog.MonthOf(today)
	m := worklog.Month{Year: in.Year, Month: time.Month(in.Month)}
	if m.Year == 0 {
		m.Year = current.Year
	}
	if m.Month == 0 {
		m.Month = current.Month
	}
	if !m.Valid() {
		return worklog.Month{}, fmt.Errorf("%w: month %d is not between 1 and 12", worklog.ErrInvalidMonth, in.Month)
	}
	return m, nil
}

// --- load_log ---

// LoadLogInput is the input for the load_log tool.
type LoadLogInput struct {
	Date string `json:"date,omitempty" jsonschema:"YYYY-MM-DD, today, yesterday or -N days; defaults to today"`
}

func handleLoadLog(journal *Journal) mcp.ToolHandlerFor[LoadLogInput, LogEntry] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input LoadLogInput) (*mcp.CallToolResult, LogEntry, error) {
		date, err := worklog.ResolveDate(input.Date, journal.today())
		if err != nil {
			return nil, LogEntry{}, err
		}
		return nil, toLogEntry(journal.Store.Load(date)), nil
	}
}

// --- month_logs ---

// MonthLogsOutput is the output for the month_logs tool.
type MonthLogsOutput struct {
	Month       string     `json:"month"         jsonschema:"month as YYYY-MM"`
	Label       string     `json:"label"         jsonschema:"month as 'March 2025'"`
	DaysInMonth int        `json:"days_in_month" jsonschema:"calendar days in the month"`
	LoggedDays  int        `json:"logged_days"   jsonschema:"days with a non-blank log"`
	Logs        []LogEntry `json:"logs"          jsonschema:"logged days in ascending date order"`
}

func handleMonthLogs(journal *Journal) mcp.ToolHandlerFor[MonthInput, MonthLogsOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input MonthInput) (*mcp.CallToolResult, MonthLogsOutput, error) {
		month, err := input.resolve(journal.today())
		if err != nil {
			return nil, MonthLogsOutput{}, err
		}

		records := journal.Store.ListMonth(month.Year, month.Month)
		logs := make([]LogEntry, 0, len(records))
		for _, rec := range records {
			logs = append(logs, toLogEntry(rec))
		}

		return nil, MonthLogsOutput{
			Month:       month.String(),
			Label:       month.Label(),
			DaysInMonth: worklog.DaysIn(month.Year, month.Month),
			LoggedDays:  len(logs),
			Logs:        logs,
		}, nil
	}
}

// --- month_report ---

// MonthReportInput is the input for the month_report tool.
type MonthReportInput struct {
	Year   int    `json:"year,omitempty"   jsonschema:"four-digit year, defaults to the current year"`
	Month  int    `json:"month,omitempty"  jsonschema:"month number 1-12, defaults to the current month"`
	Format string `json:"format,omitempty" jsonschema:"text, html, markdown or json; defaults to text"`
}

// MonthReportOutput is the output for the month_report tool.
type MonthReportOutput struct {
	Format   string `json:"format"    jsonschema:"file extension of the rendered report"`
	FileName string `json:"file_name" jsonschema:"suggested file name"`
	Report   string `json:"report"    jsonschema:"rendered report"`
}

// reportFormats maps tool format names to export formats.
var reportFormats = map[string]string{
	"":         export.FormatText,
	"text":     export.FormatText,
	"txt":      export.FormatText,
	"html":     export.FormatHTML,
	"markdown": export.FormatMarkdown,
	"md":       export.FormatMarkdown,
	"json":     export.FormatJSON,
}

func handleMonthReport(journal *Journal) mcp.ToolHandlerFor[MonthReportInput, MonthReportOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input MonthReportInput) (*mcp.CallToolResult, MonthReportOutput, error) {
		format, ok := reportFormats[input.Format]
		if !ok {
			return nil, MonthReportOutput{}, fmt.Errorf("unknown format %q: use text, html, markdown or json", input.Format)
		}
		month, err := MonthInput{Year: input.Year, Month: input.Month}.resolve(journal.today())
		if err != nil {
			return nil, MonthReportOutput{}, err
		}

		records := journal.Store.ListMonth(month.Year, month.Month)
		summary, err := export.NewSummary(records, journal.now())
		if errors.Is(err, export.ErrEmptyInput) {
			return nil, MonthReportOutput{}, fmt.Errorf("no work logs for %s", month.Label())
		}
		if err != nil {
			return nil, MonthReportOutput{}, err
		}

		report, err := journal.renderer().Render(format, records)
		if err != nil {
			return nil, MonthReportOutput{}, err
		}

		return nil, MonthReportOutput{
			Format:   format,
			FileName: export.DefaultFileName(summary, format),
			Report:   report,
		}, nil
	}
}

// --- search_logs ---

// SearchLogsInput is the input for the search_logs tool.
type SearchLogsInput struct {
	Year  int    `json:"year,omitempty"  jsonschema:"four-digit year, defaults to the current year"`
	Month int    `json:"month,omitempty" jsonschema:"month number 1-12, defaults to the current month"`
	Query string `json:"query"           jsonschema:"text to fuzzy-match against log lines (required)"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum matches to return, default 20"`
}

// SearchMatch is one matching line.
type SearchMatch struct {
	Date  string `json:"date"  jsonschema:"day of the log, YYYY-MM-DD"`
	Line  int    `json:"line"  jsonschema:"1-based line number within the day"`
	Text  string `json:"text"  jsonschema:"the matching line"`
	Score int    `json:"score" jsonschema:"match quality, higher is better"`
}

// SearchLogsOutput is the output for the search_logs tool.
type SearchLogsOutput struct {
	Month   string        `json:"month"   jsonschema:"month searched, YYYY-MM"`
	Total   int           `json:"total"   jsonschema:"matches before the limit was applied"`
	Matches []SearchMatch `json:"matches" jsonschema:"matching lines, best first"`
}

const defaultSearchLimit = 20

func handleSearchLogs(journal *Journal) mcp.ToolHandlerFor[SearchLogsInput, SearchLogsOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input SearchLogsInput) (*mcp.CallToolResult, SearchLogsOutput, error) {
		if input.Query == "" {
			return nil, SearchLogsOutput{}, errors.New("query is required")
		}
		month, err := MonthInput{Year: input.Year, Month: input.Month}.resolve(journal.today())
		if err != nil {
			return nil, SearchLogsOutput{}, err
		}

		found := search.Find(journal.Store.ListMonth(month.Year, month.Month), input.Query)
		limit := input.Limit
		if limit <= 0 {
			limit = defaultSearchLimit
		}
		matches := make([]SearchMatch, 0, min(len(found), limit))
		for _, m := range found[:min(len(found), limit)] {
			matches = append(matches, SearchMatch{
				Date:  m.Date.String(),
				Line:  m.Line,
				Text:  m.Text,
				Score: m.Score,
			})
		}

		return nil, SearchLogsOutput{Month: month.String(), Total: len(found), Matches: matches}, nil
	}
}
