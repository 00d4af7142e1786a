package export

import (
	"fmt"
	"strings"

	"github.com/gorewood/easywork/internal/worklog"
)

// RenderPlainText renders the bordered plain-text report.
// Lines end in worklog.LineEnding, the same convention as stored content.
func (r Renderer) RenderPlainText(records []*worklog.Record) (string, error) {
	summary, err := NewSummary(records, r.now())
	if err != nil {
		return "", err
	}
	return buildText(records, summary, true), nil
}

// downloadText is the copy offered by the HTML page. It omits the per-day rule.
func downloadText(records []*worklog.Record, summary Summary) string {
	return buildText(records, summary, false)
}

func buildText(records []*worklog.Record, summary Summary, dayRule bool) string {
	var builder strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&builder, format, args...)
		builder.WriteString(worklog.LineEnding)
	}
	border := strings.Repeat("=", ruleWidth)

	line("%s", border)
	line("        %s", reportTitle)
	line("        %s", summary.Label)
	line("%s", border)
	line("")

	for _, rec := range records {
		line("Date: %s", dayHeading(rec.Date))
		if dayRule {
			line("%s", strings.Repeat("-", ruleWidth))
		}
		line("%s", worklog.Normalize(rec.Content))
		line("")
		line("")
	}

	line("%s", border)
	line("Total recorded days: %d", summary.Days)
	line("Generated: %s", summary.GeneratedAt.Format(generatedLayout))
	line("%s", border)

	return builder.String()
}
