package export

import (
	"encoding/json"
	"fmt"

	"github.com/gorewood/easywork/internal/worklog"
)

// MonthJSON is the JSON export document.
type MonthJSON struct {
	Summary Summary           `json:"summary"`
	Records []*worklog.Record `json:"records"`
}

// NewMonthJSON builds the JSON export document for records.
func (r Renderer) NewMonthJSON(records []*worklog.Record) (*MonthJSON, error) {
	summary, err := NewSummary(records, r.now())
	if err != nil {
		return nil, err
	}
	return &MonthJSON{Summary: summary, Records: records}, nil
}

// RenderJSON renders the month document as indented JSON.
func (r Renderer) RenderJSON(records []*worklog.Record) (string, error) {
	doc, err := r.NewMonthJSON(records)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding records: %w", err)
	}
	return string(data) + "\n", nil
}
