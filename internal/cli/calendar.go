package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/natasilva/task-tracker-front/internal/calendar"
	"github.com/spf13/cobra"
)

type calendarOptions struct {
	year     int
	rng      calendar.Range
	register []string
	pick     bool
	workdays *calendar.Workdays
	now      time.Time
}

func newCalendarCmd() *cobra.Command {
	return LeafCommand{
		Use:   "calendar",
		Short: "Browse the days of a year and register them locally",
		Long: "Lists every day of a year, optionally narrowed to a period. Days given with --register\n" +
			"(or picked with --pick) are registered for this run only; nothing is saved.",
		BoolFlags: []BoolFlag{
			{Name: "registered-only", Usage: "only show months with a registered day"},
			{Name: "pick", Usage: "choose days to register from a list"},
		},
		StrFlags: append([]StringFlag{
			{Name: "workdays", Usage: "expected workdays, e.g. \"every weekday\" (default: TRACKER_WORKDAYS)"},
		}, periodFlags...),
		ListFlags: []StringsFlag{
			{Name: "register", Usage: "day to register, DD-MM-YYYY (repeatable)"},
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnv(cmd)
			if err != nil {
				return err
			}

			rule, _ := cmd.Flags().GetString("workdays")
			if rule == "" {
				rule = env.cfg.Workdays
			}
			workdays, err := calendar.ParseWorkdays(rule)
			if err != nil {
				return fmt.Errorf("invalid workdays: %w", err)
			}

			opts := calendarOptions{workdays: workdays, now: time.Now()}
			opts.register, _ = cmd.Flags().GetStringArray("register")
			opts.pick, _ = cmd.Flags().GetBool("pick")
			registeredOnly, _ := cmd.Flags().GetBool("registered-only")

			opts.year, opts.rng, err = parseCalendarPeriod(readPeriodFlags(cmd), opts.now)
			if err != nil {
				return err
			}
			opts.rng.RegisteredOnly = registeredOnly

			return runCalendar(cmd, NewPromptKit(), opts, isTerminal(cmd.OutOrStdout()))
		},
	}.Build()
}

// parseCalendarPeriod works like parsePeriod except that no flags at all
// select the whole year, i.e. an incomplete range.
func parseCalendarPeriod(p periodInput, now time.Time) (int, calendar.Range, error) {
	if p.from == "" && p.to == "" && p.month == "" {
		year := now.Year()
		if p.year != "" {
			y, err := strconv.Atoi(p.year)
			if err != nil || y <= 0 {
				return 0, calendar.Range{}, fmt.Errorf("invalid --year value %q (expected a positive number)", p.year)
			}
			year = y
		}
		return year, calendar.Range{}, nil
	}

	rng, err := parsePeriod(p, now)
	if err != nil {
		return 0, calendar.Range{}, err
	}
	switch {
	case rng.Start != nil:
		return rng.Start.Year, rng, nil
	case rng.End != nil:
		return rng.End.Year, rng, nil
	}
	return now.Year(), rng, nil
}

// calendarEntries generates the days of the year, extended to every year a
// valid range touches.
func calendarEntries(year int, rng calendar.Range) []calendar.DayEntry {
	first, last := year, year
	if rng.Complete() && !rng.Inverted() {
		first, last = rng.Start.Year, rng.End.Year
	}
	var entries []calendar.DayEntry
	for y := first; y <= last; y++ {
		entries = append(entries, calendar.GenerateYear(y)...)
	}
	return entries
}

func runCalendar(cmd *cobra.Command, kit PromptKit, opts calendarOptions, tui bool) error {
	idx := calendar.NewIndex()
	for _, s := range opts.register {
		d, err := calendar.ParseInput(s, opts.now)
		if err != nil {
			return fmt.Errorf("invalid --register value: %w", err)
		}
		if err := idx.Register(calendar.FormatDate(d)); err != nil {
			return err
		}
	}

	entries := calendarEntries(opts.year, opts.rng)

	if opts.pick {
		// candidates ignore registered-only: only unregistered days can be picked
		period := calendar.Range{Start: opts.rng.Start, End: opts.rng.End}
		if err := pickDays(kit, idx, calendar.Filter(entries, period, nil).Entries); err != nil {
			return err
		}
	}

	if tui {
		m := newCalendarModel(entries, idx, opts)
		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(cmd.OutOrStdout()))
		final, err := p.Run()
		if err != nil {
			return err
		}
		idx = final.(calendarModel).idx
	}

	printCalendar(cmd.OutOrStdout(), entries, idx, opts)
	return nil
}

// pickDays registers the days the user selects among the unregistered ones.
func pickDays(kit PromptKit, idx *calendar.Index, entries []calendar.DayEntry) error {
	var candidates []calendar.DayEntry
	for _, e := range idx.Apply(entries) {
		if !e.Registered {
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	options := make([]string, len(candidates))
	for i, e := range candidates {
		options[i] = fmt.Sprintf("%s %s", calendar.FormatDisplay(e.Date), e.Date.Time().Weekday().String()[:3])
	}
	picked, err := kit.MultiSelect("Days to register", options)
	if err != nil {
		return err
	}
	for _, i := range picked {
		if i < 0 || i >= len(candidates) {
			return fmt.Errorf("invalid selection %d", i)
		}
		if err := idx.Register(candidates[i].ID); err != nil {
			return err
		}
	}
	return nil
}

func calendarLine(e calendar.DayEntry, expected map[calendar.Date]bool, today calendar.Date) string {
	label := fmt.Sprintf("%s  %s", calendar.FormatDisplay(e.Date), e.Date.Time().Weekday().String()[:3])
	switch {
	case e.Registered:
		return fmt.Sprintf("%s  %s", label, Success("registered"))
	case expected[e.Date] && !e.Date.After(today):
		return fmt.Sprintf("%s  %s", label, Warning("missing"))
	case expected[e.Date]:
		return fmt.Sprintf("%s  %s", label, Silent("workday"))
	default:
		return fmt.Sprintf("%s  %s", label, Silent("-"))
	}
}

func printCalendar(w io.Writer, entries []calendar.DayEntry, idx *calendar.Index, opts calendarOptions) {
	res := calendar.Filter(idx.Apply(entries), opts.rng, idx)
	today := calendar.Today(opts.now)

	heading := fmt.Sprintf("Calendar %d", opts.year)
	if res.Applied {
		heading = "Calendar " + rangeLabel(opts.rng)
	}
	_, _ = fmt.Fprintf(w, "%s\n", Text(Primary(heading)))
	if res.Notice != nil {
		_, _ = fmt.Fprintf(w, "%s\n", noticeLine(res.Notice))
	}

	var expected map[calendar.Date]bool
	if len(res.Entries) > 0 {
		expected = opts.workdays.Expected(res.Entries[0].Date, res.Entries[len(res.Entries)-1].Date)
	}

	registered, missing := 0, 0
	for _, g := range calendar.GroupByMonth(res.Entries) {
		_, _ = fmt.Fprintf(w, "\n%s\n", Primary(fmt.Sprintf("%s %d", g.Month, g.Year)))
		for _, e := range g.Entries {
			_, _ = fmt.Fprintf(w, "  %s\n", calendarLine(e, expected, today))
			if e.Registered {
				registered++
			} else if expected[e.Date] && !e.Date.After(today) {
				missing++
			}
		}
	}

	_, _ = fmt.Fprintf(w, "\n%s\n", Text(fmt.Sprintf("%d days, %d registered, %d missing (%s)",
		len(res.Entries), registered, missing, opts.workdays)))

	if months := idx.Months(); len(months) > 0 {
		_, _ = fmt.Fprintf(w, "%s\n", Silent("registrations:"))
		for _, key := range months {
			_, _ = fmt.Fprintf(w, "  %s\n", Silent(fmt.Sprintf("%s  %d", key, len(idx.Records(key)))))
		}
	}
}
