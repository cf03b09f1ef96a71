package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/natasilva/task-tracker-front/internal/calendar"
	"github.com/spf13/cobra"
)

// periodFlags are the flags shared by every command that works on a period.
var periodFlags = []StringFlag{
	{Name: "from", Usage: "first day, DD-MM-YYYY or today/yesterday"},
	{Name: "to", Usage: "last day, DD-MM-YYYY or today/yesterday"},
	{Name: "month", Usage: "month number 1-12 (default: current month)"},
	{Name: "year", Usage: "year (complementary to --month)"},
}

type periodInput struct {
	from, to, month, year string
}

func readPeriodFlags(cmd *cobra.Command) periodInput {
	var p periodInput
	p.from, _ = cmd.Flags().GetString("from")
	p.to, _ = cmd.Flags().GetString("to")
	p.month, _ = cmd.Flags().GetString("month")
	p.year, _ = cmd.Flags().GetString("year")
	return p
}

// parseMonthYearFlags parses the --month and --year flags into year and month.
// Defaults to current month/year if empty.
func parseMonthYearFlags(monthFlag, yearFlag string, now time.Time) (int, time.Month, error) {
	year := now.Year()
	if yearFlag != "" {
		y, err := strconv.Atoi(yearFlag)
		if err != nil || y <= 0 {
			return 0, 0, fmt.Errorf("invalid --year value %q (expected a positive number)", yearFlag)
		}
		year = y
	}

	month := now.Month()
	if monthFlag != "" {
		m, err := strconv.Atoi(monthFlag)
		if err != nil || m < 1 || m > 12 {
			return 0, 0, fmt.Errorf("invalid --month value %q (expected 1-12)", monthFlag)
		}
		month = time.Month(m)
	}

	return year, month, nil
}

// monthRange returns the first and last day of a month.
func monthRange(year int, month time.Month) calendar.Range {
	first := calendar.Date{Year: year, Month: month, Day: 1}
	last := calendar.Date{Year: year, Month: month, Day: calendar.DaysInMonth(year, month)}
	return calendar.Range{Start: &first, End: &last}
}

// shiftMonth moves a month range by n months.
func shiftMonth(rng calendar.Range, n int) calendar.Range {
	start := time.Date(rng.Start.Year, rng.Start.Month+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	out := monthRange(start.Year(), start.Month())
	out.RegisteredOnly = rng.RegisteredOnly
	return out
}

// parsePeriod resolves the period flags into a range.
// Rules:
//   - --from/--to cannot be mixed with --month/--year
//   - --from without --to (or the reverse) leaves the range incomplete
//   - neither = current month
//
// An inverted --from/--to range is returned as is; callers decide what to do
// with it through calendar.Filter.
func parsePeriod(p periodInput, now time.Time) (calendar.Range, error) {
	if (p.from != "" || p.to != "") && (p.month != "" || p.year != "") {
		return calendar.Range{}, fmt.Errorf("--from/--to cannot be used with --month/--year")
	}

	if p.from == "" && p.to == "" {
		year, month, err := parseMonthYearFlags(p.month, p.year, now)
		if err != nil {
			return calendar.Range{}, err
		}
		return monthRange(year, month), nil
	}

	var rng calendar.Range
	if p.from != "" {
		d, err := calendar.ParseInput(p.from, now)
		if err != nil {
			return calendar.Range{}, fmt.Errorf("invalid --from value: %w", err)
		}
		rng.Start = &d
	}
	if p.to != "" {
		d, err := calendar.ParseInput(p.to, now)
		if err != nil {
			return calendar.Range{}, fmt.Errorf("invalid --to value: %w", err)
		}
		rng.End = &d
	}
	return rng, nil
}

// rangeLabel describes a range for headings.
func rangeLabel(rng calendar.Range) string {
	if !rng.Complete() {
		return "all days"
	}
	return fmt.Sprintf("%s to %s", calendar.FormatDisplay(*rng.Start), calendar.FormatDisplay(*rng.End))
}
