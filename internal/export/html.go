package export

import (
	"fmt"
	"strings"

	"github.com/gorewood/easywork/internal/worklog"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

var scriptEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\r", `\r`,
	"\n", `\n`,
	"\t", `\t`,
	// Keeps "</script>" and "<!--" in user text from ending the script block.
	"<", `\u003c`,
	"\u2028", `\u2028`,
	"\u2029", `\u2029`,
)

// EscapeHTML escapes the five HTML-significant characters for element content
// and attribute values.
func EscapeHTML(text string) string {
	return htmlEscaper.Replace(text)
}

// EscapeScript escapes text for a double-quoted JavaScript string literal
// inside an HTML script element.
func EscapeScript(text string) string {
	return scriptEscaper.Replace(text)
}

const htmlStyle = `        body { font-family: 'Segoe UI', Arial, sans-serif; margin: 20px; background-color: #f5f5f5; }
        .header { text-align: center; background-color: #4CAF50; color: white; padding: 20px; border-radius: 5px; position: relative; }
        .export-btn { position: absolute; right: 20px; top: 50%; transform: translateY(-50%); background-color: white; color: #4CAF50; border: none; padding: 10px 20px; border-radius: 5px; cursor: pointer; font-size: 14px; font-weight: bold; }
        .export-btn:hover { background-color: #f0f0f0; }
        .log-item { background-color: white; margin: 20px 0; padding: 20px; border-radius: 5px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        .log-date { color: #4CAF50; font-size: 18px; font-weight: bold; border-bottom: 2px solid #4CAF50; padding-bottom: 10px; margin-bottom: 15px; }
        .log-content { line-height: 1.8; white-space: pre-wrap; }
        .footer { text-align: center; margin-top: 30px; color: #666; }`

// RenderHTML renders a self-contained HTML page for records.
func (r Renderer) RenderHTML(records []*worklog.Record) (string, error) {
	summary, err := NewSummary(records, r.now())
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	writeHTMLHead(&builder, records, summary)
	writeHTMLBody(&builder, records, summary)
	return builder.String(), nil
}

// writeHTMLHead writes the doctype, style and download script.
func writeHTMLHead(builder *strings.Builder, records []*worklog.Record, summary Summary) {
	label := EscapeHTML(summary.Label)
	fileName := DefaultFileName(summary, FormatText)

	builder.WriteString("<!DOCTYPE html>\n")
	builder.WriteString("<html>\n")
	builder.WriteString("<head>\n")
	builder.WriteString("    <meta charset='utf-8'>\n")
	fmt.Fprintf(builder, "    <title>Work Log - %s</title>\n", label)
	builder.WriteString("    <style>\n")
	builder.WriteString(htmlStyle)
	builder.WriteString("\n    </style>\n")
	builder.WriteString("    <script>\n")
	builder.WriteString("        function exportToTxt() {\n")
	fmt.Fprintf(builder, "            var textContent = \"%s\";\n", EscapeScript(downloadText(records, summary)))
	builder.WriteString("            var blob = new Blob([textContent], { type: 'text/plain;charset=utf-8' });\n")
	builder.WriteString("            var link = document.createElement('a');\n")
	builder.WriteString("            link.href = URL.createObjectURL(blob);\n")
	fmt.Fprintf(builder, "            link.download = \"%s\";\n", EscapeScript(fileName))
	builder.WriteString("            document.body.appendChild(link);\n")
	builder.WriteString("            link.click();\n")
	builder.WriteString("            document.body.removeChild(link);\n")
	builder.WriteString("        }\n")
	builder.WriteString("    </script>\n")
	builder.WriteString("</head>\n")
}

// writeHTMLBody writes the header, one block per day, and the footer.
func writeHTMLBody(builder *strings.Builder, records []*worklog.Record, summary Summary) {
	builder.WriteString("<body>\n")
	builder.WriteString("    <div class='header'>\n")
	builder.WriteString("        <button class='export-btn' onclick='exportToTxt()'>Download TXT</button>\n")
	fmt.Fprintf(builder, "        <h1>%s</h1>\n", reportTitle)
	fmt.Fprintf(builder, "        <h2>%s</h2>\n", EscapeHTML(summary.Label))
	builder.WriteString("    </div>\n")

	for _, rec := range records {
		builder.WriteString("    <div class='log-item'>\n")
		fmt.Fprintf(builder, "        <div class='log-date'>%s</div>\n", dayHeading(rec.Date))
		fmt.Fprintf(builder, "        <div class='log-content'>%s</div>\n", EscapeHTML(worklog.Normalize(rec.Content)))
		builder.WriteString("    </div>\n")
	}

	builder.WriteString("    <div class='footer'>\n")
	fmt.Fprintf(builder, "        <p>Total recorded days: %d</p>\n", summary.Days)
	fmt.Fprintf(builder, "        <p>Generated: %s</p>\n", summary.GeneratedAt.Format(generatedLayout))
	builder.WriteString("    </div>\n")
	builder.WriteString("</body>\n")
	builder.WriteString("</html>\n")
}
