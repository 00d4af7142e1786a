// Package worklog provides the daily record schema, line-ending normalization,
// and the one-file-per-day store for the easywork journal.
package worklog

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SchemaVersion identifies easywork record files.
const SchemaVersion = "easywork.worklog/v1"

// ErrNotWorkLog is returned when a file parses but is not an easywork record.
var ErrNotWorkLog = errors.New("not an easywork record")

// Record is the note for a single calendar day.
type Record struct {
	Date         Date
	Content      string
	LastModified time.Time // zero until the first successful save
}

// NewRecord returns an empty, never-saved record for date.
func NewRecord(date Date) *Record {
	return &Record{Date: date}
}

// IsSaved reports whether the record carries a save timestamp.
func (r *Record) IsSaved() bool {
	return !r.LastModified.IsZero()
}

// IsBlank reports whether the content is empty or whitespace only.
func (r *Record) IsBlank() bool {
	return strings.TrimSpace(r.Content) == ""
}

// Append adds text to the end of the content on its own line.
func (r *Record) Append(text string) {
	if text == "" {
		return
	}
	if r.Content == "" || hasLineEnding(r.Content) {
		r.Content += text
		return
	}
	r.Content += LineEnding + text
}

// CopyText returns the text placed on the clipboard for the record, or ""
// when the record is blank. withDate prefixes a "Date: YYYY-MM-DD Weekday"
// line; without it a trailing line ending is added instead.
func (r *Record) CopyText(withDate bool) string {
	if r.IsBlank() {
		return ""
	}
	content := Normalize(r.Content)
	if withDate {
		return "Date: " + r.Date.String() + " " + r.Date.Weekday().String() + LineEnding + content
	}
	return content + LineEnding
}

func hasLineEnding(s string) bool {
	return strings.HasSuffix(s, "\n") || strings.HasSuffix(s, "\r")
}

// recordJSON is the file layout of a record.
type recordJSON struct {
	Schema       string     `json:"schema"`
	Date         *Date      `json:"date"`
	Content      string     `json:"content"`
	LastModified *time.Time `json:"last_modified,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (r *Record) MarshalJSON() ([]byte, error) {
	doc := recordJSON{
		Schema:  SchemaVersion,
		Date:    &r.Date,
		Content: r.Content,
	}
	if !r.LastModified.IsZero() {
		lm := r.LastModified
		doc.LastModified = &lm
	}
	return json.Marshal(doc)
}

// ToJSON serializes the record.
func (r *Record) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing record to JSON: %w", err)
	}
	return data, nil
}

// FromJSON deserializes a record.
// Returns ErrNotWorkLog for valid JSON with a foreign schema or no date.
func FromJSON(data []byte) (*Record, error) {
	if len(data) == 0 {
		return nil, errors.New("empty JSON data")
	}

	var doc recordJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing record JSON: %w", err)
	}
	if doc.Schema != SchemaVersion {
		return nil, fmt.Errorf("%w: schema %q", ErrNotWorkLog, doc.Schema)
	}
	if doc.Date == nil || doc.Date.IsZero() {
		return nil, fmt.Errorf("%w: missing date", ErrNotWorkLog)
	}

	rec := &Record{Date: *doc.Date, Content: doc.Content}
	if doc.LastModified != nil {
		rec.LastModified = *doc.LastModified
	}
	return rec, nil
}

// legacyRecord mirrors the XML written by the EasyWork desktop app.
type legacyRecord struct {
	XMLName      xml.Name `xml:"WorkLog"`
	Date         string   `xml:"Date"`
	Content      string   `xml:"Content"`
	LastModified string   `xml:"LastModified"`
}

// legacyTimeLayouts covers the DateTime forms the desktop app produced.
var legacyTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.9999999",
	"2006-01-02T15:04:05",
}

// FromLegacyXML decodes a record file written by the EasyWork desktop app.
func FromLegacyXML(data []byte) (*Record, error) {
	if len(data) == 0 {
		return nil, errors.New("empty XML data")
	}

	var doc legacyRecord
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing legacy record XML: %w", err)
	}

	day, err := parseLegacyTime(doc.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: bad date %q", ErrNotWorkLog, doc.Date)
	}

	rec := &Record{Date: DateOf(day), Content: doc.Content}
	if modified, err := parseLegacyTime(doc.LastModified); err == nil && modified.Year() > 1 {
		rec.LastModified = modified
	}
	return rec, nil
}

func parseLegacyTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range legacyTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", value)
}
