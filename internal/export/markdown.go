package export

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/easywork/internal/worklog"
)

// markdownSchema identifies markdown exports in their frontmatter.
const markdownSchema = "easywork.export/v1"

// frontmatter is the YAML header of a markdown report.
type frontmatter struct {
	Schema    string   `yaml:"schema"`
	Month     string   `yaml:"month"`
	Label     string   `yaml:"label"`
	Days      int      `yaml:"days"`
	Dates     []string `yaml:"dates"`
	Generated string   `yaml:"generated"`
}

// RenderMarkdown renders records as a markdown document with YAML frontmatter.
func (r Renderer) RenderMarkdown(records []*worklog.Record) (string, error) {
	summary, err := NewSummary(records, r.now())
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	if err := writeFrontmatter(&builder, records, summary); err != nil {
		return "", err
	}

	fmt.Fprintf(&builder, "# %s: %s\n\n", reportTitle, summary.Label)
	for _, rec := range records {
		fmt.Fprintf(&builder, "## %s\n\n", dayHeading(rec.Date))
		builder.WriteString(strings.TrimRight(worklog.EditorText(rec.Content), "\n"))
		builder.WriteString("\n\n")
	}
	fmt.Fprintf(&builder, "---\n\nTotal recorded days: %d\n", summary.Days)

	return builder.String(), nil
}

// writeFrontmatter writes the --- delimited YAML header.
func writeFrontmatter(builder *strings.Builder, records []*worklog.Record, summary Summary) error {
	dates := make([]string, 0, len(records))
	for _, rec := range records {
		dates = append(dates, rec.Date.String())
	}

	header, err := yaml.Marshal(frontmatter{
		Schema:    markdownSchema,
		Month:     summary.month().String(),
		Label:     summary.Label,
		Days:      summary.Days,
		Dates:     dates,
		Generated: summary.GeneratedAt.Format(generatedLayout),
	})
	if err != nil {
		return fmt.Errorf("encoding frontmatter: %w", err)
	}

	builder.WriteString("---\n")
	builder.Write(header)
	builder.WriteString("---\n\n")
	return nil
}
