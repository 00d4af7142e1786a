package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// LoggedMarker flags a day that has a log in month listings.
const LoggedMarker = "✓"

// Printer writes command results in JSON or human form.
type Printer struct {
	w      io.Writer
	errW   io.Writer
	json   bool
	isTTY  bool
	styles *Styles
}

// Styles holds the lipgloss styles used in human mode.
type Styles struct {
	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Bold    lipgloss.Style
	Dim     lipgloss.Style
	Title   lipgloss.Style
	Key     lipgloss.Style
	Marker  lipgloss.Style
	Match   lipgloss.Style
}

func colorStyles() *Styles {
	return &Styles{
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Bold:    lipgloss.NewStyle().Bold(true),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		Key:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Marker:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Match:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Underline(true),
	}
}

func plainStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Error:   plain,
		Success: plain,
		Warning: plain,
		Bold:    plain,
		Dim:     plain,
		Title:   plain,
		Key:     plain,
		Marker:  plain,
		Match:   plain,
	}
}

// NewPrinter returns a Printer writing to writer. Colors are used only
// when isTTY is true.
func NewPrinter(writer io.Writer, jsonMode bool, isTTY bool) *Printer {
	styles := plainStyles()
	if isTTY {
		styles = colorStyles()
	}
	return &Printer{
		w:      writer,
		errW:   writer,
		json:   jsonMode,
		isTTY:  isTTY,
		styles: styles,
	}
}

// WithStderr routes human-mode errors and warnings to w.
// JSON mode keeps everything on the main writer.
func (p *Printer) WithStderr(w io.Writer) *Printer {
	p.errW = w
	return p
}

// IsJSON reports whether the printer is in JSON mode.
func (p *Printer) IsJSON() bool {
	return p.json
}

// IsTTY reports whether colors are enabled.
func (p *Printer) IsTTY() bool {
	return p.isTTY
}

// Success writes a result. Human mode prints the "message" key when present,
// otherwise every key in sorted order.
func (p *Printer) Success(data map[string]any) error {
	if p.json {
		return p.WriteJSON(data)
	}
	if msg, ok := data["message"].(string); ok {
		mustWrite(fmt.Fprintln(p.w, p.styles.Success.Render(msg)))
		return nil
	}
	for _, key := range sortedKeys(data) {
		p.KeyValue(key, fmt.Sprint(data[key]))
	}
	return nil
}

// Error writes err. JSON mode emits {"error": "...", "code": N} on the main
// writer; human mode writes a styled line to the error writer.
func (p *Printer) Error(err error) {
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		exitErr = &ExitError{Code: ExitUserError, Message: err.Error()}
	}

	if p.json {
		mustWrite(p.w.Write(ErrorJSON(exitErr.Message, exitErr.Code)))
		mustWrite(fmt.Fprintln(p.w))
		return
	}
	mustWrite(fmt.Fprintf(p.errW, "%s: %s\n", p.styles.Error.Render("Error"), exitErr.Message))
}

// Warn writes a warning, as {"warning": "..."} in JSON mode.
func (p *Printer) Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.json {
		_ = p.WriteJSON(map[string]any{"warning": msg})
		return
	}
	mustWrite(fmt.Fprintf(p.errW, "%s: %s\n", p.styles.Warning.Render("Warning"), msg))
}

// Stderr writes a hint to the error writer. No-op in JSON mode.
func (p *Printer) Stderr(format string, args ...any) {
	if p.json {
		return
	}
	mustWrite(fmt.Fprintf(p.errW, format, args...))
}

// Print writes formatted text without a newline.
func (p *Printer) Print(format string, args ...any) {
	mustWrite(fmt.Fprintf(p.w, format, args...))
}

// Println writes a line.
func (p *Printer) Println(args ...any) {
	mustWrite(fmt.Fprintln(p.w, args...))
}

// WriteJSON writes data as indented JSON.
func (p *Printer) WriteJSON(data any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ErrorJSON returns {"code": N, "error": "message"}.
func ErrorJSON(message string, code int) []byte {
	result, _ := json.Marshal(map[string]any{
		"error": message,
		"code":  code,
	})
	return result
}

// Heading writes a day or month title followed by a rule of the same width.
func (p *Printer) Heading(title string) {
	mustWrite(fmt.Fprintln(p.w, p.styles.Title.Render(title)))
	mustWrite(fmt.Fprintln(p.w, p.styles.Dim.Render(strings.Repeat("─", lipgloss.Width(title)))))
}

// Muted writes a dim line, used for timestamps and empty-state hints.
func (p *Printer) Muted(format string, args ...any) {
	mustWrite(fmt.Fprintln(p.w, p.styles.Dim.Render(fmt.Sprintf(format, args...))))
}

// KeyValue writes "key: value".
func (p *Printer) KeyValue(key string, value string) {
	mustWrite(fmt.Fprintf(p.w, "%s %s\n", p.styles.Key.Render(key+":"), value))
}

// Marker returns LoggedMarker styled when logged is true and a blank of the
// same width otherwise.
func (p *Printer) Marker(logged bool) string {
	if !logged {
		return strings.Repeat(" ", lipgloss.Width(LoggedMarker))
	}
	return p.styles.Marker.Render(LoggedMarker)
}

// Match styles the matched characters of a search hit.
func (p *Printer) Match(s string) string {
	return p.styles.Match.Render(s)
}

// Table writes rows under bold headers with columns padded to the widest
// cell. Widths are measured in terminal cells so styled or non-ASCII cells
// line up.
func (p *Printer) Table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}
	widths := columnWidths(headers, rows)

	for i, h := range headers {
		if i > 0 {
			mustWrite(fmt.Fprint(p.w, "  "))
		}
		mustWrite(fmt.Fprint(p.w, p.styles.Bold.Render(padRight(h, widths[i]))))
	}
	mustWrite(fmt.Fprintln(p.w))

	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if i > 0 {
				mustWrite(fmt.Fprint(p.w, "  "))
			}
			mustWrite(fmt.Fprint(p.w, padRight(cell, widths[i])))
		}
		mustWrite(fmt.Fprintln(p.w))
	}
}

func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	return widths
}

func padRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func sortedKeys(data map[string]any) []string {
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// mustWrite panics on a failed write to stdout, stderr or a buffer.
func mustWrite(_ int, err error) {
	if err != nil {
		panic(fmt.Sprintf("write failed: %v", err))
	}
}
