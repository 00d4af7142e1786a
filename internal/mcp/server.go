// Package mcp exposes the work-log journal as Model Context Protocol tools
// so an agent can read, write and report on daily logs over stdio.
package mcp

import (
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/easywork/internal/export"
	"github.com/gorewood/easywork/internal/worklog"
)

// Journal is what the tools operate on.
type Journal struct {
	Store *worklog.FileStore
	// Locks serializes writes per date. Share it with any other writer in
	// the process.
	Locks *worklog.DateLocks
	// Now defaults to time.Now. It sets "today" and report timestamps.
	Now func() time.Time
}

func (j *Journal) now() time.Time {
	if j.Now == nil {
		return time.Now()
	}
	return j.Now()
}

func (j *Journal) today() worklog.Date {
	return worklog.DateOf(j.now())
}

func (j *Journal) renderer() export.Renderer {
	return export.Renderer{Now: j.now}
}

// NewServer creates an MCP server with all easywork tools registered.
func NewServer(version string, journal *Journal) *mcp.Server {
	if journal.Locks == nil {
		journal.Locks = &worklog.DateLocks{}
	}
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "easywork",
		Version: version,
	}, nil)
	registerTools(server, journal)
	return server
}

func boolPtr(b bool) *bool {
	return &b
}

func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations marks tools that replace a day's content.
func writeAnnotations(destructive bool) *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(destructive),
		OpenWorldHint:   boolPtr(false),
	}
}

func registerTools(server *mcp.Server, journal *Journal) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "load_log",
		Description: "Read the work log for one day. Days without a log return empty content.",
		Annotations: readOnlyAnnotations(),
	}, handleLoadLog(journal))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "month_logs",
		Description: "List every day of a month that has a log, in date order, with content.",
		Annotations: readOnlyAnnotations(),
	}, handleMonthLogs(journal))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "month_report",
		Description: "Render the monthly work-log report as text, html, markdown or json.",
		Annotations: readOnlyAnnotations(),
	}, handleMonthReport(journal))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_logs",
		Description: "Fuzzy-search log lines in one month, best matches first.",
		Annotations: readOnlyAnnotations(),
	}, handleSearchLogs(journal))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "save_log",
		Description: "Replace the work log for one day with new content.",
		Annotations: writeAnnotations(true),
	}, handleSaveLog(journal))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "append_log",
		Description: "Append a line of text to the work log for one day, creating it if needed.",
		Annotations: writeAnnotations(false),
	}, handleAppendLog(journal))
}
