package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/easywork/internal/worklog"
)

// SaveLogInput is the input for the save_log tool.
type SaveLogInput struct {
	Date    string `json:"date,omitempty" jsonschema:"YYYY-MM-DD, today, yesterday or -N days; defaults to today"`
	Content string `json:"content"        jsonschema:"full log text for the day, replacing what was there"`
}

// AppendLogInput is the input for the append_log tool.
type AppendLogInput struct {
	Date string `json:"date,omitempty" jsonschema:"YYYY-MM-DD, today, yesterday or -N days; defaults to today"`
	Text string `json:"text"           jsonschema:"text to add on a new line (required)"`
}

func handleSaveLog(journal *Journal) mcp.ToolHandlerFor[SaveLogInput, LogEntry] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input SaveLogInput) (*mcp.CallToolResult, LogEntry, error) {
		date, err := worklog.ResolveDate(input.Date, journal.today())
		if err != nil {
			return nil, LogEntry{}, err
		}
		rec, err := journal.update(date, func(rec *worklog.Record) {
			rec.Content = input.Content
		})
		if err != nil {
			return nil, LogEntry{}, err
		}
		return nil, toLogEntry(rec), nil
	}
}

func handleAppendLog(journal *Journal) mcp.ToolHandlerFor[AppendLogInput, LogEntry] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input AppendLogInput) (*mcp.CallToolResult, LogEntry, error) {
		if input.Text == "" {
			return nil, LogEntry{}, errors.New("text is required")
		}
		date, err := worklog.ResolveDate(input.Date, journal.today())
		if err != nil {
			return nil, LogEntry{}, err
		}
		rec, err := journal.update(date, func(rec *worklog.Record) {
			rec.Append(input.Text)
		})
		if err != nil {
			return nil, LogEntry{}, err
		}
		return nil, toLogEntry(rec), nil
	}
}

// update runs a load, change, save cycle for date under its lock.
func (j *Journal) update(date worklog.Date, change func(*worklog.Record)) (*worklog.Record, error) {
	unlock := j.Locks.Lock(date)
	defer unlock()

	rec := j.Store.Load(date)
	change(rec)
	if err := j.Store.Save(rec); err != nil {
		return nil, fmt.Errorf("saving log: %w", err)
	}
	return rec, nil
}
