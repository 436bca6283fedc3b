// ABOUTME: Calendar date helpers for date-only values stored as YYYY-MM-DD
// ABOUTME: Covers parsing, day arithmetic, and month boundaries
package models

import (
	"strings"
	"time"
)

// DateLayout is the storage and wire format for calendar dates
const DateLayout = "2006-01-02"

// MonthLayout is the wire format for a year-month
const MonthLayout = "2006-01"

// ParseDate parses a YYYY-MM-DD calendar date at midnight UTC
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, invalidf("date %q must be YYYY-MM-DD", s)
	}
	return t, nil
}

// FormatDate formats the calendar date of t in t's location
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// CalendarDay strips the time of day, keeping the calendar date of t
// in t's own location, and returns it at midnight UTC
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddDays shifts a YYYY-MM-DD date by n calendar days
func AddDays(date string, n int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return FormatDate(t.AddDate(0, 0, n)), nil
}

// Month is a calendar year-month
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth parses a YYYY-MM string
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(MonthLayout, strings.TrimSpace(s))
	if err != nil {
		return Month{}, invalidf("month %q must be YYYY-MM", s)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// String formats the month as YYYY-MM
func (m Month) String() string {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format(MonthLayout)
}

// Days returns the number of days in the month.
// Day 0 of the following month is the last day of this one.
func (m Month) Days() int {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstDay returns the first calendar date of the month
func (m Month) FirstDay() string {
	return FormatDate(time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC))
}

// LastDay returns the last calendar date of the month
func (m Month) LastDay() string {
	return FormatDate(time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC))
}

// TimestampLayout is the ISO 8601 form used for created/updated stamps
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTimestamp renders t in UTC using TimestampLayout
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
