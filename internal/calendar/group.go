package calendar

import "time"

// MonthGroup holds the entries of one month, in input order.
type MonthGroup struct {
	Key     string // MM/YYYY
	Year    int
	Month   time.Month
	Entries []DayEntry
}

// GroupByMonth splits entries into consecutive month groups. Groups appear in
// the order their first entry appears.
func GroupByMonth(entries []DayEntry) []MonthGroup {
	var groups []MonthGroup
	pos := make(map[string]int)
	for _, e := range entries {
		key := MonthKey(e.Date)
		i, ok := pos[key]
		if !ok {
			groups = append(groups, MonthGroup{Key: key, Year: e.Date.Year, Month: e.Date.Month})
			i = len(groups) - 1
			pos[key] = i
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}
	return groups
}
