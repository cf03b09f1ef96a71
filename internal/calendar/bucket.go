package calendar

import "time"

// DayEntry is a generated placeholder for one calendar day.
type DayEntry struct {
	ID         string // DD-MM-YYYY
	Date       Date
	Registered bool
}

// DaysInMonth returns the last day of month using day 0 of the following month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// GenerateMonth returns one unregistered entry per day of the month, in
// ascending order. Months outside 1-12 produce no entries.
func GenerateMonth(year int, month time.Month) []DayEntry {
	if month < time.January || month > time.December {
		return nil
	}

	days := DaysInMonth(year, month)
	entries := make([]DayEntry, 0, days)
	for day := 1; day <= days; day++ {
		d := Date{Year: year, Month: month, Day: day}
		entries = append(entries, DayEntry{ID: FormatDate(d), Date: d})
	}
	return entries
}

// GenerateYear returns one unregistered entry per day of the year, in ascending order.
func GenerateYear(year int) []DayEntry {
	entries := make([]DayEntry, 0, 366)
	for m := time.January; m <= time.December; m++ {
		entries = append(entries, GenerateMonth(year, m)...)
	}
	return entries
}
