package autosave

import (
	"sync"
	"time"

	"github.com/gorewood/easywork/internal/worklog"
)

// Store is the part of worklog.FileStore a Session needs.
type Store interface {
	Load(date worklog.Date) *worklog.Record
	Save(rec *worklog.Record) error
}

// Session is one date's record open for editing.
type Session struct {
	store Store
	locks *worklog.DateLocks
	date  worklog.Date

	mu      sync.Mutex
	record  *worklog.Record
	tracker Tracker
	lastErr error
}

// NewSession loads date from store. locks may be shared with other writers
// in the process; nil gives the session its own.
func NewSession(store Store, locks *worklog.DateLocks, date worklog.Date) *Session {
	if locks == nil {
		locks = &worklog.DateLocks{}
	}
	rec := store.Load(date)
	return &Session{
		store:   store,
		locks:   locks,
		date:    date,
		record:  rec,
		tracker: NewTracker(rec),
	}
}

// Date returns the session's date.
func (s *Session) Date() worklog.Date {
	return s.date
}

// Content returns the record content as loaded or as last passed to a save
// attempt, including one that failed.
func (s *Session) Content() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record.Content
}

// Save writes content regardless of whether it changed.
func (s *Session) Save(content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(content)
}

// Autosave writes content if it changed and is not blank.
// It reports whether a write was attempted.
func (s *Session) Autosave(content string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.tracker.ShouldAutosave(content) {
		return false, nil
	}
	return true, s.saveLocked(content)
}

func (s *Session) saveLocked(content string) error {
	unlock := s.locks.Lock(s.date)
	defer unlock()

	s.record.Content = content
	if err := s.store.Save(s.record); err != nil {
		s.lastErr = err
		return err
	}
	s.lastErr = nil
	s.tracker.MarkSaved(s.record.Content, s.record.LastModified)
	return nil
}

// Dirty reports whether content has unsaved changes.
func (s *Session) Dirty(content string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.Dirty(content)
}

// LastSaved returns the time of the last successful save.
func (s *Session) LastSaved() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.LastSaved()
}

// Status returns the tracker status, prefixed by the last save error if
// the most recent attempt failed.
func (s *Session) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastErr != nil {
		return "Save failed: " + s.lastErr.Error() + " | " + s.tracker.Status()
	}
	return s.tracker.Status()
}
