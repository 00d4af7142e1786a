package worklog

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

const (
	recordExt = ".json"
	legacyExt = ".xml"
)

// WriteError reports a failed Save. The record was not durably stored.
type WriteError struct {
	Date Date
	Path string
	Err  error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("saving log for %s: %v", e.Date, e.Err)
}

// Unwrap returns the underlying filesystem error.
func (e *WriteError) Unwrap() error {
	return e.Err
}

// DayStatus describes one day of a month overview.
type DayStatus struct {
	Date       Date
	HasContent bool
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithLogger sets the logger used for swallowed read failures and saves.
func WithLogger(logger *slog.Logger) Option {
	return func(fs *FileStore) {
		if logger != nil {
			fs.logger = logger
		}
	}
}

// WithClock overrides the clock used to stamp LastModified.
func WithClock(now func() time.Time) Option {
	return func(fs *FileStore) {
		if now != nil {
			fs.now = now
		}
	}
}

// FileStore keeps one JSON file per day in a single directory.
// The file name is the only index: <dir>/YYYY-MM-DD.json.
//
// FileStore does no locking. Callers that can issue overlapping saves for the
// same date must serialize them (see DateLocks).
type FileStore struct {
	dir    string
	logger *slog.Logger
	now    func() time.Time
}

// NewFileStore creates a FileStore rooted at dir. The directory is created on first save.
func NewFileStore(dir string, opts ...Option) *FileStore {
	fs := &FileStore{
		dir:    dir,
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(fs)
	}
	return fs
}

// Dir returns the storage directory path.
func (fs *FileStore) Dir() string {
	return fs.dir
}

// Path returns the file path for date.
func (fs *FileStore) Path(date Date) string {
	return filepath.Join(fs.dir, date.String()+recordExt)
}

func (fs *FileStore) legacyPath(date Date) string {
	return filepath.Join(fs.dir, date.String()+legacyExt)
}

// Exists reports whether a record file exists for date.
func (fs *FileStore) Exists(date Date) bool {
	if _, err := os.Stat(fs.Path(date)); err == nil {
		return true
	}
	_, err := os.Stat(fs.legacyPath(date))
	return err == nil
}

// Load returns the stored record for date, or an empty record when there is none.
// Load never fails: missing, unreadable and corrupt files all yield NewRecord(date).
func (fs *FileStore) Load(date Date) *Record {
	rec, err := fs.read(date)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fs.logger.Warn("unreadable log treated as empty", "date", date.String(), "error", err)
		}
		return NewRecord(date)
	}
	if rec.Date != date {
		fs.logger.Warn("log file date mismatch treated as empty",
			"date", date.String(), "file_date", rec.Date.String())
		return NewRecord(date)
	}
	rec.Content = Normalize(rec.Content)
	return rec
}

// read loads the JSON record, falling back to a legacy XML file.
func (fs *FileStore) read(date Date) (*Record, error) {
	data, err := os.ReadFile(fs.Path(date))
	if err == nil {
		return FromJSON(data)
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	legacy, legacyErr := os.ReadFile(fs.legacyPath(date))
	if legacyErr != nil {
		return nil, legacyErr
	}
	return FromLegacyXML(legacy)
}

// Save stamps LastModified, normalizes the content, and replaces the file for rec.Date.
// The replacement is atomic: a failed save leaves the previous file intact.
// rec keeps the attempted content and timestamp whether or not the write succeeds.
func (fs *FileStore) Save(rec *Record) error {
	rec.LastModified = fs.now()
	rec.Content = Normalize(rec.Content)

	path := fs.Path(rec.Date)
	if rec.Date.IsZero() {
		return &WriteError{Date: rec.Date, Path: path, Err: errors.New("record has no date")}
	}

	data, err := rec.ToJSON()
	if err != nil {
		return &WriteError{Date: rec.Date, Path: path, Err: err}
	}

	if err := os.MkdirAll(fs.dir, 0o755); err != nil {
		return &WriteError{Date: rec.Date, Path: path, Err: fmt.Errorf("create log directory: %w", err)}
	}

	if err := atomicWrite(path, data); err != nil {
		return &WriteError{Date: rec.Date, Path: path, Err: err}
	}

	fs.logger.Debug("log saved", "date", rec.Date.String(), "bytes", len(data))
	return nil
}

// ListMonth returns the non-blank records of the given month in ascending date order.
// It loads every day of the month; an invalid month yields no records.
func (fs *FileStore) ListMonth(year int, month time.Month) []*Record {
	var records []*Record
	for _, date := range MonthDays(year, month) {
		if !fs.Exists(date) {
			continue
		}
		rec := fs.Load(date)
		if rec.IsBlank() {
			continue
		}
		records = append(records, rec)
	}
	return records
}

// MonthStatus returns every day of the month with whether it has a non-blank log.
func (fs *FileStore) MonthStatus(year int, month time.Month) []DayStatus {
	logged := make(map[Date]bool)
	for _, rec := range fs.ListMonth(year, month) {
		logged[rec.Date] = true
	}

	days := MonthDays(year, month)
	status := make([]DayStatus, 0, len(days))
	for _, date := range days {
		status = append(status, DayStatus{Date: date, HasContent: logged[date]})
	}
	return status
}

// atomicWrite writes data to path using write-to-temp-then-rename.
// The temp file is created in the same directory as path.
func atomicWrite(path string, data []byte) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".tmp-*"+filepath.Ext(path))
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write data: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o600); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// WriteFileAtomic writes data to path through a temp file and rename.
// The parent directory must exist.
func WriteFileAtomic(path string, data []byte) error {
	return atomicWrite(path, data)
}
