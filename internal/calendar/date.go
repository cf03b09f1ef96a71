package calendar

import (
	"fmt"
	"strings"
	"time"
)

const (
	dayLayout     = "02-01-2006"
	displayLayout = "02/01/2006"
	isoLayout     = "2006-01-02"
)

// Date is a calendar day with no time of day and no time zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate normalizes the given components, so NewDate(2024, 3, 0) is 29 Feb 2024.
func NewDate(year int, month time.Month, day int) Date {
	return FromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// FromTime takes the wall-clock date components of t in its own location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the local calendar date of now.
func Today(now time.Time) Date {
	return FromTime(now.Local())
}

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date {
	return FromTime(d.Time().AddDate(0, 0, n))
}

// Compare returns -1 if d is before o, 0 if equal, 1 if after.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }
func (d Date) Equal(o Date) bool  { return d.Compare(o) == 0 }

func (d Date) IsZero() bool { return d == Date{} }

func (d Date) String() string { return FormatDate(d) }

func cmpInt(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// FormatDate renders d as DD-MM-YYYY, the ID format of generated day entries.
func FormatDate(d Date) string {
	return fmt.Sprintf("%02d-%02d-%04d", d.Day, int(d.Month), d.Year)
}

// FormatDisplay renders d as DD/MM/YYYY.
func FormatDisplay(d Date) string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, int(d.Month), d.Year)
}

// FormatISO renders d as YYYY-MM-DD, the format dates use on the wire.
func FormatISO(d Date) string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// ParseDate parses a DD-MM-YYYY day ID.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dayLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (expected DD-MM-YYYY)", s)
	}
	return FromTime(t), nil
}

// ParseISO parses YYYY-MM-DD. Longer timestamps are accepted and only their
// date portion is used, so "2024-03-15T23:00:00.000Z" is 15 Mar 2024.
func ParseISO(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(isoLayout) {
		s = s[:len(isoLayout)]
	}
	t, err := time.Parse(isoLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return FromTime(t), nil
}

// ParseInput parses a date typed by the user.
// Supports: "today", "yesterday", "tomorrow", "15-03-2024", "15/03/2024", "2024-03-15".
func ParseInput(s string, now time.Time) (Date, error) {
	s = strings.TrimSpace(strings.ToLower(s))

	today := Today(now)
	switch s {
	case "today", "hoje":
		return today, nil
	case "yesterday", "ontem":
		return today.AddDays(-1), nil
	case "tomorrow", "amanhã", "amanha":
		return today.AddDays(1), nil
	}

	for _, layout := range []string{dayLayout, displayLayout, isoLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return FromTime(t), nil
		}
	}

	return Date{}, fmt.Errorf("unrecognized date %q (expected DD-MM-YYYY, DD/MM/YYYY or YYYY-MM-DD)", s)
}
