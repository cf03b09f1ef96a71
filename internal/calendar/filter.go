package calendar

// NoticeLevel distinguishes validation warnings from purely informational notices.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeWarning
)

// Notice is a non-fatal, dismissible message raised by Filter.
type Notice struct {
	Level   NoticeLevel
	Message string
}

const (
	MsgInvertedRange = "start date must not be after end date"
	MsgNoEntries     = "no entries found for the selected period"
)

// Range selects days between Start and End, both inclusive. A nil bound
// means the user has not provided it yet.
type Range struct {
	Start          *Date
	End            *Date
	RegisteredOnly bool
}

// Complete reports whether both bounds are set.
func (r Range) Complete() bool {
	return r.Start != nil && r.End != nil
}

// Inverted reports whether Start falls after End.
func (r Range) Inverted() bool {
	return r.Complete() && r.Start.After(*r.End)
}

// Contains reports whether d lies within the range. An incomplete range contains nothing.
func (r Range) Contains(d Date) bool {
	if !r.Complete() {
		return false
	}
	return !d.Before(*r.Start) && !d.After(*r.End)
}

// FilterResult is the outcome of Filter.
type FilterResult struct {
	Entries []DayEntry
	Applied bool // false when the input was returned unchanged
	Notice  *Notice
}

// Filter keeps the entries inside rng, and only registered ones when
// rng.RegisteredOnly is set. Registration is looked up in idx; a nil idx
// has no registrations.
//
// An incomplete range is a no-op. An inverted range is rejected with a
// warning and also leaves the input unchanged. An empty selection carries an
// informational notice.
func Filter(entries []DayEntry, rng Range, idx *Index) FilterResult {
	if !rng.Complete() {
		return FilterResult{Entries: entries}
	}
	if rng.Inverted() {
		return FilterResult{
			Entries: entries,
			Notice:  &Notice{Level: NoticeWarning, Message: MsgInvertedRange},
		}
	}

	filtered := make([]DayEntry, 0, len(entries))
	for _, e := range entries {
		if !rng.Contains(e.Date) {
			continue
		}
		if rng.RegisteredOnly && !idx.HasMonth(e.Date) {
			continue
		}
		filtered = append(filtered, e)
	}

	res := FilterResult{Entries: filtered, Applied: true}
	if len(filtered) == 0 {
		res.Notice = &Notice{Level: NoticeInfo, Message: MsgNoEntries}
	}
	return res
}
