// Package search finds lines across daily logs with fuzzy matching.
package search

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/gorewood/easywork/internal/worklog"
)

// Match is one log line that matched a query.
type Match struct {
	Date worklog.Date `json:"date"`
	// Line is 1-based within the day's content.
	Line      int    `json:"line"`
	Text      string `json:"text"`
	Score     int    `json:"score"`
	Positions []int  `json:"positions,omitempty"`
}

type entry struct {
	date worklog.Date
	line int
	text string
}

// lines adapts entries to fuzzy.Source.
type lines []entry

func (l lines) String(i int) string { return l[i].text }
func (l lines) Len() int            { return len(l) }

// Find matches query against every non-blank line of records, best match
// first. Lines with equal scores keep log order. An empty query matches nothing.
func Find(records []*worklog.Record, query string) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	var source lines
	for _, rec := range records {
		for i, text := range strings.Split(worklog.EditorText(rec.Content), "\n") {
			if strings.TrimSpace(text) == "" {
				continue
			}
			source = append(source, entry{date: rec.Date, line: i + 1, text: text})
		}
	}

	found := fuzzy.FindFrom(query, source)
	matches := make([]Match, 0, len(found))
	for _, m := range found {
		e := source[m.Index]
		matches = append(matches, Match{
			Date:      e.date,
			Line:      e.line,
			Text:      e.text,
			Score:     m.Score,
			Positions: m.MatchedIndexes,
		})
	}
	return matches
}

// Highlight wraps the matched characters of m.Text with mark. It returns the
// text unchanged when mark is nil.
func Highlight(m Match, mark func(string) string) string {
	if mark == nil || len(m.Positions) == 0 {
		return m.Text
	}
	matched := make(map[int]bool, len(m.Positions))
	for _, pos := range m.Positions {
		matched[pos] = true
	}

	var builder strings.Builder
	for i, r := range m.Text {
		if matched[i] {
			builder.WriteString(mark(string(r)))
			continue
		}
		builder.WriteRune(r)
	}
	return builder.String()
}
