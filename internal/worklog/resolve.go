package worklog

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidMonth is returned when a string is not a month reference.
var ErrInvalidMonth = errors.New("invalid month")

// MonthLayout is the text form of a Month.
const MonthLayout = "2006-01"

// daysAgoRegex matches relative days like "-3" or "3d".
var daysAgoRegex = regexp.MustCompile(`^(?:-(\d+)|(\d+)d)$`)

// Month is a calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing d.
func MonthOf(d Date) Month {
	return Month{Year: d.Year, Month: d.Month}
}

// String returns the month as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Label returns the month as "March 2025".
func (m Month) Label() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}

// Valid reports whether the month number is 1..12.
func (m Month) Valid() bool {
	return m.Month >= time.January && m.Month <= time.December
}

// Prev returns the month before m.
func (m Month) Prev() Month {
	return MonthOf(NewDate(m.Year, m.Month-1, 1))
}

// ResolveDate turns a date argument into a Date relative to today.
// Accepts:
//   - "" or "today"
//   - "yesterday"
//   - "-N" or "Nd" for N days ago
//   - "YYYY-MM-DD"
func ResolveDate(value string, today Date) (Date, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	switch value {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDays(-1), nil
	}

	if matches := daysAgoRegex.FindStringSubmatch(value); matches != nil {
		digits := matches[1] + matches[2]
		days, err := strconv.Atoi(digits)
		if err != nil {
			return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
		}
		return today.AddDays(-days), nil
	}

	date, err := ParseDate(value)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q (use YYYY-MM-DD, today, yesterday or -N)", ErrInvalidDate, value)
	}
	return date, nil
}

// ResolveMonth turns a month argument into a Month relative to today.
// Accepts "", "this", "last" and "YYYY-MM".
func ResolveMonth(value string, today Date) (Month, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	switch value {
	case "", "this":
		return MonthOf(today), nil
	case "last":
		return MonthOf(today).Prev(), nil
	}

	t, err := time.Parse(MonthLayout, value)
	if err != nil {
		return Month{}, fmt.Errorf("%w: %q (use YYYY-MM, this or last)", ErrInvalidMonth, value)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}
