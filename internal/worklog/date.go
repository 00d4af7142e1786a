package worklog

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the on-disk and wire form of a Date.
const DateLayout = "2006-01-02"

// ErrInvalidDate is returned when a string is not a YYYY-MM-DD date.
var ErrInvalidDate = errors.New("invalid date")

// Date is a calendar day with no time component.
// It is comparable with == and usable as a map key.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the date for year, month, day.
// Out-of-range values are normalized the same way time.Date does (e.g. Feb 30 becomes Mar 1/2).
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the current local date.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q (want YYYY-MM-DD)", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

// String returns the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Time returns midnight of d in the local time zone.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.Local)
}

// Weekday returns the day of the week for d.
func (d Date) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Weekday()
}

// AddDays returns d shifted by n days (n may be negative).
func (d Date) AddDays(n int) Date {
	return NewDate(d.Year, d.Month, d.Day+n)
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DaysIn returns the number of days in the given month, accounting for leap years.
// Returns 0 for a month outside 1..12.
func DaysIn(year int, month time.Month) int {
	if month < time.January || month > time.December {
		return 0
	}
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthDays returns every date of the given month in ascending order.
func MonthDays(year int, month time.Month) []Date {
	n := DaysIn(year, month)
	days := make([]Date, 0, n)
	for day := 1; day <= n; day++ {
		days = append(days, Date{Year: year, Month: month, Day: day})
	}
	return days
}
