// Package export turns a month of work-log records into reports.
//
// # Formats
//
//   - Plain text: bordered header, one section per day, summary trailer
//   - HTML: self-contained page with embedded style and a script that
//     offers the plain-text copy as a download
//   - Markdown: YAML frontmatter followed by one section per day
//   - JSON: the records themselves, for pipelines
//
// All renderers take records in the order they should appear (RecordStore
// ListMonth already returns them ascending by date) and reject an empty
// slice with ErrEmptyInput.
//
// # Determinism
//
// Renderers do no I/O. The only varying input is the generation time, which
// comes from Renderer.Now:
//
//	r := export.Renderer{Now: func() time.Time { return fixed }}
//	text, err := r.RenderPlainText(records)
//
// The package-level RenderPlainText, RenderHTML and RenderMarkdown use the
// wall clock.
//
// # Escaping
//
// HTML output escapes user content with EscapeHTML. The copy of the report
// embedded in the page script goes through EscapeScript instead. The two are
// not interchangeable.
//
// # File Naming
//
// DefaultFileName gives worklog_YYYY-MM.<ext>; WriteFile replaces the target
// atomically.
package export
