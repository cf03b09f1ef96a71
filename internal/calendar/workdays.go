package calendar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/teambition/rrule-go"
)

// DefaultWorkdays is the rule used when none is configured.
const DefaultWorkdays = "every weekday"

var everyNDays = regexp.MustCompile(`^every (\d+) days?$`)

// Workdays describes which days are expected to have a result registered.
type Workdays struct {
	rule *rrule.RRule
	text string
}

// ParseWorkdays parses a natural language or raw RRULE recurrence.
func ParseWorkdays(s string) (*Workdays, error) {
	text := strings.TrimSpace(s)
	if text == "" {
		text = DefaultWorkdays
	}
	r, err := parseRecurrence(text)
	if err != nil {
		return nil, err
	}
	return &Workdays{rule: r, text: text}, nil
}

func (w *Workdays) String() string {
	if w == nil {
		return "no workdays"
	}
	return w.text
}

// Expected returns the set of days between from and to (inclusive) that the
// rule selects.
func (w *Workdays) Expected(from, to Date) map[Date]bool {
	days := make(map[Date]bool)
	if w == nil || to.Before(from) {
		return days
	}

	// Unbounded rules start at the range start so Between covers it.
	opts := w.rule.OrigOptions
	if opts.Dtstart.IsZero() {
		opts.Dtstart = from.Time()
	}
	r, err := rrule.NewRRule(opts)
	if err != nil {
		return days
	}
	for _, t := range r.Between(from.Time(), to.Time(), true) {
		days[FromTime(t)] = true
	}
	return days
}

func parseRecurrence(s string) (*rrule.RRule, error) {
	s = strings.TrimSpace(strings.ToLower(s))

	if strings.HasPrefix(s, "rrule:") || strings.HasPrefix(s, "freq=") {
		raw := strings.TrimPrefix(strings.ToUpper(s), "RRULE:")
		r, err := rrule.StrToRRule(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid RRULE %q: %w", raw, err)
		}
		return r, nil
	}

	switch s {
	case "every day", "daily":
		return rrule.NewRRule(rrule.ROption{Freq: rrule.DAILY})
	case "every weekday", "weekdays":
		return rrule.NewRRule(rrule.ROption{
			Freq:      rrule.WEEKLY,
			Byweekday: []rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR},
		})
	case "every weekend", "weekends":
		return rrule.NewRRule(rrule.ROption{
			Freq:      rrule.WEEKLY,
			Byweekday: []rrule.Weekday{rrule.SA, rrule.SU},
		})
	}

	if m := everyNDays.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		if n < 1 {
			return nil, fmt.Errorf("unrecognized recurrence %q", s)
		}
		return rrule.NewRRule(rrule.ROption{Freq: rrule.DAILY, Interval: n})
	}

	if strings.HasPrefix(s, "every ") {
		var days []rrule.Weekday
		for _, name := range strings.Split(strings.TrimPrefix(s, "every "), ",") {
			wd, ok := rruleWeekdays[strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(name), "and "))]
			if !ok {
				return nil, fmt.Errorf("unrecognized recurrence %q", s)
			}
			days = append(days, wd)
		}
		return rrule.NewRRule(rrule.ROption{Freq: rrule.WEEKLY, Byweekday: days})
	}

	return nil, fmt.Errorf("unrecognized recurrence %q", s)
}

var rruleWeekdays = map[string]rrule.Weekday{
	"sunday":    rrule.SU,
	"monday":    rrule.MO,
	"tuesday":   rrule.TU,
	"wednesday": rrule.WE,
	"thursday":  rrule.TH,
	"friday":    rrule.FR,
	"saturday":  rrule.SA,
}
