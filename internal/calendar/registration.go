package calendar

import (
	"fmt"
	"sort"
)

// Record is a single registration, as appended by Register.
type Record struct {
	DataFormatada string `json:"dataFormatada"`
}

// Index maps "MM/YYYY" keys to the registrations made in that month.
// It lives only as long as the view that owns it.
type Index struct {
	months map[string][]Record
}

// NewIndex returns an empty registration index.
func NewIndex() *Index {
	return &Index{months: make(map[string][]Record)}
}

// MonthKey returns the "MM/YYYY" key of d.
func MonthKey(d Date) string {
	return fmt.Sprintf("%02d/%04d", int(d.Month), d.Year)
}

// Register appends a record for dayID under its month key. Registering the
// same day twice appends twice.
func (idx *Index) Register(dayID string) error {
	d, err := ParseDate(dayID)
	if err != nil {
		return err
	}
	key := MonthKey(d)
	idx.months[key] = append(idx.months[key], Record{DataFormatada: FormatDate(d)})
	return nil
}

// Records returns the registrations stored under a "MM/YYYY" key.
func (idx *Index) Records(monthKey string) []Record {
	if idx == nil {
		return nil
	}
	return idx.months[monthKey]
}

// IsRegistered reports whether dayID itself has a record in its month.
func (idx *Index) IsRegistered(dayID string) bool {
	if idx == nil {
		return false
	}
	d, err := ParseDate(dayID)
	if err != nil {
		return false
	}
	id := FormatDate(d)
	for _, r := range idx.months[MonthKey(d)] {
		if r.DataFormatada == id {
			return true
		}
	}
	return false
}

// HasMonth reports whether any day of d's month has been registered.
func (idx *Index) HasMonth(d Date) bool {
	return len(idx.Records(MonthKey(d))) > 0
}

// Months returns the month keys that hold registrations, oldest first.
func (idx *Index) Months() []string {
	if idx == nil {
		return nil
	}
	keys := make([]string, 0, len(idx.months))
	for k := range idx.months {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		// "MM/YYYY": compare year first
		yi, yj := keys[i][3:], keys[j][3:]
		if yi != yj {
			return yi < yj
		}
		return keys[i][:2] < keys[j][:2]
	})
	return keys
}

// Apply returns copies of entries with Registered set for days that have a
// record. The input slice is left untouched.
func (idx *Index) Apply(entries []DayEntry) []DayEntry {
	out := make([]DayEntry, len(entries))
	for i, e := range entries {
		if idx.IsRegistered(e.ID) {
			e.Registered = true
		}
		out[i] = e
	}
	return out
}
