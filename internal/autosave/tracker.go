package autosave

import (
	"strings"
	"time"

	"github.com/gorewood/easywork/internal/worklog"
)

// StatusLayout formats the last-saved time in status lines.
const StatusLayout = "15:04:05"

// Tracker remembers what was last written for one record.
// It is not safe for concurrent use; Session guards it.
type Tracker struct {
	saved   string
	savedAt time.Time
}

// NewTracker starts tracking from rec as loaded from the store.
func NewTracker(rec *worklog.Record) Tracker {
	return Tracker{
		saved:   worklog.Normalize(rec.Content),
		savedAt: rec.LastModified,
	}
}

// Dirty reports whether content differs from the last saved text.
func (t *Tracker) Dirty(content string) bool {
	return worklog.Normalize(content) != t.saved
}

// ShouldAutosave reports whether a timed save should write content.
// Blank text is never autosaved.
func (t *Tracker) ShouldAutosave(content string) bool {
	return strings.TrimSpace(content) != "" && t.Dirty(content)
}

// MarkSaved records a successful save.
func (t *Tracker) MarkSaved(content string, at time.Time) {
	t.saved = worklog.Normalize(content)
	t.savedAt = at
}

// LastSaved returns the time of the last successful save, zero if never.
func (t *Tracker) LastSaved() time.Time {
	return t.savedAt
}

// Status returns "Not saved yet" or "Last saved: HH:MM:SS".
func (t *Tracker) Status() string {
	if t.savedAt.IsZero() {
		return "Not saved yet"
	}
	return "Last saved: " + t.savedAt.Local().Format(StatusLayout)
}
