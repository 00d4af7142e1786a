package mcp

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/easywork/internal/export"
	"github.com/gorewood/easywork/internal/worklog"
)

// fixedNow is 2025-03-17 10:00 local.
var fixedNow = time.Date(2025, time.March, 17, 10, 0, 0, 0, time.Local)

func makeJournal(t *testing.T, logs map[string]string) *Journal {
	t.Helper()
	store := worklog.NewFileStore(t.TempDir(), worklog.WithClock(func() time.Time { return fixedNow }))
	for day, content := range logs {
		date, err := worklog.ParseDate(day)
		if err != nil {
			t.Fatalf("bad test date %q: %v", day, err)
		}
		rec := worklog.NewRecord(date)
		rec.Content = content
		if err := store.Save(rec); err != nil {
			t.Fatalf("writing test log: %v", err)
		}
	}
	return &Journal{
		Store: store,
		Locks: &worklog.DateLocks{},
		Now:   func() time.Time { return fixedNow },
	}
}

var ctx = context.Background()

// --- load_log ---

func TestHandleLoadLog(t *testing.T) {
	journal := makeJournal(t, map[string]string{
		"2025-03-17": "standup\nreview",
		"2025-03-16": "weekend",
	})
	handler := handleLoadLog(journal)

	tests := []struct {
		name        string
		date        string
		wantDate    string
		wantContent string
		wantSaved   bool
	}{
		{name: "default today", date: "", wantDate: "2025-03-17", wantContent: "standup\nreview", wantSaved: true},
		{name: "yesterday", date: "yesterday", wantDate: "2025-03-16", wantContent: "weekend", wantSaved: true},
		{name: "explicit missing", date: "2025-03-01", wantDate: "2025-03-01", wantContent: "", wantSaved: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out, err := handler(ctx, &mcp.CallToolRequest{}, LoadLogInput{Date: tt.date})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Date != tt.wantDate {
				t.Errorf("Date = %q, want %q", out.Date, tt.wantDate)
			}
			if out.Content != tt.wantContent {
				t.Errorf("Content = %q, want %q", out.Content, tt.wantContent)
			}
			if out.Saved != tt.wantSaved {
				t.Errorf("Saved = %v, want %v", out.Saved, tt.wantSaved)
			}
			if tt.wantSaved && out.LastModified == "" {
				t.Error("LastModified should be set for saved logs")
			}
		})
	}
}

func TestHandleLoadLog_InvalidDate(t *testing.T) {
	handler := handleLoadLog(makeJournal(t, nil))
	_, _, err := handler(ctx, &mcp.CallToolRequest{}, LoadLogInput{Date: "someday"})
	if !errors.Is(err, worklog.ErrInvalidDate) {
		t.Errorf("error = %v, want ErrInvalidDate", err)
	}
}

// --- month_logs ---

func TestHandleMonthLogs(t *testing.T) {
	journal := makeJournal(t, map[string]string{
		"2025-03-03": "b",
		"2025-03-01": "a",
		"2025-03-09": "   ",
		"2025-02-28": "previous month",
	})
	handler := handleMonthLogs(journal)

	_, out, err := handler(ctx, &mcp.CallToolRequest{}, MonthInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Month != "2025-03" || out.Label != "March 2025" || out.DaysInMonth != 31 {
		t.Errorf("out = %+v", out)
	}
	if out.LoggedDays != 2 || len(out.Logs) != 2 {
		t.Fatalf("LoggedDays = %d, len(Logs) = %d, want 2", out.LoggedDays, len(out.Logs))
	}
	if out.Logs[0].Date != "2025-03-01" || out.Logs[1].Date != "2025-03-03" {
		t.Errorf("Logs not ascending: %s, %s", out.Logs[0].Date, out.Logs[1].Date)
	}

	_, out, err = handler(ctx, &mcp.CallToolRequest{}, MonthInput{Year: 2025, Month: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.DaysInMonth != 28 || out.LoggedDays != 1 {
		t.Errorf("February: %+v", out)
	}
}

func TestHandleMonthLogs_InvalidMonth(t *testing.T) {
	handler := handleMonthLogs(makeJournal(t, nil))
	_, _, err := handler(ctx, &mcp.CallToolRequest{}, MonthInput{Year: 2025, Month: 13})
	if !errors.Is(err, worklog.ErrInvalidMonth) {
		t.Errorf("error = %v, want ErrInvalidMonth", err)
	}
}

// --- month_report ---

func TestHandleMonthReport(t *testing.T) {
	journal := makeJournal(t, map[string]string{"2025-03-01": "<b>shipped</b>"})
	handler := handleMonthReport(journal)

	tests := []struct {
		format     string
		wantFormat string
		wantFile   string
		wantText   string
	}{
		{format: "", wantFormat: export.FormatText, wantFile: "worklog_2025-03.txt", wantText: "Date: 2025-03-01 Saturday"},
		{format: "html", wantFormat: export.FormatHTML, wantFile: "worklog_2025-03.html", wantText: "&lt;b&gt;shipped&lt;/b&gt;"},
		{format: "markdown", wantFormat: export.FormatMarkdown, wantFile: "worklog_2025-03.md", wantText: "## 2025-03-01 Saturday"},
		{format: "json", wantFormat: export.FormatJSON, wantFile: "worklog_2025-03.json", wantText: `"days": 1`},
	}

	for _, tt := range tests {
		t.Run(tt.wantFormat, func(t *testing.T) {
			_, out, err := handler(ctx, &mcp.CallToolRequest{}, MonthReportInput{Format: tt.format})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Format != tt.wantFormat || out.FileName != tt.wantFile {
				t.Errorf("Format = %q, FileName = %q", out.Format, out.FileName)
			}
			if !strings.Contains(out.Report, tt.wantText) {
				t.Errorf("Report missing %q:\n%s", tt.wantText, out.Report)
			}
		})
	}
}

func TestHandleMonthReport_GeneratedAtUsesJournalClock(t *testing.T) {
	journal := makeJournal(t, map[string]string{"2025-03-01": "a"})
	_, out, err := handleMonthReport(journal)(ctx, &mcp.CallToolRequest{}, MonthReportInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.Report, "Generated: 2025-03-17 10:00:00") {
		t.Errorf("report timestamp not from journal clock:\n%s", out.Report)
	}
}

func TestHandleMonthReport_Errors(t *testing.T) {
	handler := handleMonthReport(makeJournal(t, nil))

	_, out, err := handler(ctx, &mcp.CallToolRequest{}, MonthReportInput{})
	if out.FileName != "" || out.Report != "" {
		t.Errorf("empty month returned output %+v", out)
	}
	if err == nil || !strings.Contains(err.Error(), "no work logs for March 2025") {
		t.Errorf("empty month error = %v", err)
	}

	_, _, err = handler(ctx, &mcp.CallToolRequest{}, MonthReportInput{Format: "pdf"})
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Errorf("bad format error = %v", err)
	}
}

// --- search_logs ---

func TestHandleSearchLogs(t *testing.T) {
	journal := makeJournal(t, map[string]string{
		"2025-03-03": "standup\nreviewed deploy plan",
		"2025-03-04": "fixed deploy script",
		"2025-03-05": "lunch",
	})
	handler := handleSearchLogs(journal)

	_, out, err := handler(ctx, &mcp.CallToolRequest{}, SearchLogsInput{Query: "deploy"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Month != "2025-03" || out.Total != 2 || len(out.Matches) != 2 {
		t.Fatalf("out = %+v", out)
	}

	_, out, err = handler(ctx, &mcp.CallToolRequest{}, SearchLogsInput{Query: "deploy", Limit: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Total != 2 || len(out.Matches) != 1 {
		t.Errorf("limited out = %+v", out)
	}

	_, out, err = handler(ctx, &mcp.CallToolRequest{}, SearchLogsInput{Query: "qqqzzz"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Matches == nil || len(out.Matches) != 0 {
		t.Errorf("no-match Matches = %#v, want empty slice", out.Matches)
	}

	if _, _, err := handler(ctx, &mcp.CallToolRequest{}, SearchLogsInput{}); err == nil {
		t.Error("expected error for empty query")
	}
}

// --- save_log / append_log ---

func TestHandleSaveLog(t *testing.T) {
	journal := makeJournal(t, map[string]string{"2025-03-17": "old"})
	handler := handleSaveLog(journal)

	_, out, err := handler(ctx, &mcp.CallToolRequest{}, SaveLogInput{Content: "new\nlines"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Date != "2025-03-17" || out.Content != "new\nlines" || !out.Saved {
		t.Errorf("out = %+v", out)
	}

	stored := journal.Store.Load(worklog.NewDate(2025, time.March, 17))
	if stored.Content != "new\r\nlines" {
		t.Errorf("stored content = %q", stored.Content)
	}
}

func TestHandleAppendLog(t *testing.T) {
	journal := makeJournal(t, map[string]string{"2025-03-17": "first"})
	handler := handleAppendLog(journal)

	for _, text := range []string{"second", "third"} {
		if _, _, err := handler(ctx, &mcp.CallToolRequest{}, AppendLogInput{Text: text}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	_, out, err := handler(ctx, &mcp.CallToolRequest{}, AppendLogInput{Date: "2025-03-02", Text: "fresh day"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Content != "fresh day" {
		t.Errorf("append to empty day = %q", out.Content)
	}

	stored := journal.Store.Load(worklog.NewDate(2025, time.March, 17))
	if stored.Content != "first\r\nsecond\r\nthird" {
		t.Errorf("stored content = %q", stored.Content)
	}

	if _, _, err := handler(ctx, &mcp.CallToolRequest{}, AppendLogInput{}); err == nil {
		t.Error("expected error for empty text")
	}
}

func TestHandleAppendLog_ConcurrentCallsAllLand(t *testing.T) {
	journal := makeJournal(t, nil)
	handler := handleAppendLog(journal)

	const calls = 10
	var wg sync.WaitGroup
	for range calls {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := handler(ctx, &mcp.CallToolRequest{}, AppendLogInput{Text: "x"}); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	stored := journal.Store.Load(worklog.NewDate(2025, time.March, 17))
	if got := strings.Count(stored.Content, "x"); got != calls {
		t.Errorf("appended %d lines, want %d: %q", got, calls, stored.Content)
	}
}

func TestHandleSaveLog_WriteFailure(t *testing.T) {
	journal := makeJournal(t, nil)
	journal.Store = worklog.NewFileStore("/dev/null/logs")

	_, _, err := handleSaveLog(journal)(ctx, &mcp.CallToolRequest{}, SaveLogInput{Content: "x"})
	var writeErr *worklog.WriteError
	if !errors.As(err, &writeErr) {
		t.Errorf("error = %v, want *WriteError", err)
	}
}

// --- server wiring ---

func TestNewServer_ListsAndCallsTools(t *testing.T) {
	journal := makeJournal(t, map[string]string{"2025-03-17": "hello"})
	server := NewServer("test", journal)

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("server connect: %v", err)
	}
	defer serverSession.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	defer session.Close()

	tools, err := session.ListTools(ctx, nil)
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}
	names := map[string]bool{}
	for _, tool := range tools.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{"load_log", "month_logs", "month_report", "search_logs", "save_log", "append_log"} {
		if !names[want] {
			t.Errorf("tool %q not registered", want)
		}
	}

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "load_log",
		Arguments: map[string]any{"date": "today"},
	})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if result.IsError {
		t.Fatalf("load_log returned tool error: %+v", result.Content)
	}
	if len(result.Content) == 0 {
		t.Fatal("load_log returned no content")
	}
	text, ok := result.Content[0].(*mcp.TextContent)
	if !ok || !strings.Contains(text.Text, `"content":"hello"`) {
		t.Errorf("load_log content = %+v", result.Content[0])
	}
}
