// Package export provides report rendering for work-log records.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gorewood/easywork/internal/output"
	"github.com/gorewood/easywork/internal/worklog"
)

// ErrEmptyInput is returned when there are no records to render.
var ErrEmptyInput = errors.New("no work logs to export")

// Report titles and layouts shared by the renderers.
const (
	reportTitle     = "Work Log Monthly Report"
	generatedLayout = "2006-01-02 15:04:05"
	ruleWidth       = 40
)

// Formats accepted by Render and DefaultFileName.
const (
	FormatText     = "txt"
	FormatHTML     = "html"
	FormatMarkdown = "md"
	FormatJSON     = "json"
)

// Summary holds the statistics printed with every report.
type Summary struct {
	Label       string    `json:"label"`
	Year        int       `json:"year"`
	Month       int       `json:"month"`
	Days        int       `json:"days"`
	GeneratedAt time.Time `json:"generated_at"`
}

// NewSummary computes the summary for records. The month comes from the first record.
func NewSummary(records []*worklog.Record, now time.Time) (Summary, error) {
	if len(records) == 0 {
		return Summary{}, ErrEmptyInput
	}
	first := records[0].Date
	return Summary{
		Label:       worklog.MonthOf(first).Label(),
		Year:        first.Year,
		Month:       int(first.Month),
		Days:        len(records),
		GeneratedAt: now,
	}, nil
}

// Renderer renders reports. The zero value uses the wall clock.
type Renderer struct {
	Now func() time.Time
}

func (r Renderer) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

// Render renders records in the given format (txt, html, md or json).
func (r Renderer) Render(format string, records []*worklog.Record) (string, error) {
	switch format {
	case FormatText:
		return r.RenderPlainText(records)
	case FormatHTML:
		return r.RenderHTML(records)
	case FormatMarkdown:
		return r.RenderMarkdown(records)
	case FormatJSON:
		return r.RenderJSON(records)
	default:
		return "", fmt.Errorf("unsupported report format %q", format)
	}
}

var defaultRenderer Renderer

// RenderPlainText renders records as a plain-text report using the wall clock.
func RenderPlainText(records []*worklog.Record) (string, error) {
	return defaultRenderer.RenderPlainText(records)
}

// RenderHTML renders records as an HTML report using the wall clock.
func RenderHTML(records []*worklog.Record) (string, error) {
	return defaultRenderer.RenderHTML(records)
}

// RenderMarkdown renders records as a markdown report using the wall clock.
func RenderMarkdown(records []*worklog.Record) (string, error) {
	return defaultRenderer.RenderMarkdown(records)
}

// dayHeading returns "YYYY-MM-DD Weekday".
func dayHeading(date worklog.Date) string {
	return date.String() + " " + date.Weekday().String()
}

// DefaultFileName returns worklog_YYYY-MM.<format>.
func DefaultFileName(summary Summary, format string) string {
	return fmt.Sprintf("worklog_%s.%s", summary.month(), format)
}

func (s Summary) month() worklog.Month {
	return worklog.Month{Year: s.Year, Month: time.Month(s.Month)}
}

// WriteFile writes a rendered report to path, replacing any existing file atomically.
func WriteFile(path, content string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return output.NewSystemErrorWithCause("failed to create output directory: "+dir, err)
		}
	}
	if err := worklog.WriteFileAtomic(path, []byte(content)); err != nil {
		return output.NewSystemErrorWithCause("failed to write report: "+path, err)
	}
	return nil
}
