package cli

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/natasilva/task-tracker-front/internal/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execCalendar(t *testing.T, kit PromptKit, opts calendarOptions) (string, error) {
	t.Helper()
	if opts.workdays == nil {
		opts.workdays = weekdays(t)
	}
	if opts.now.IsZero() {
		opts.now = fixedNow()
	}
	if opts.year == 0 {
		opts.year = opts.now.Year()
	}
	cmd, out := newTestCmd()
	err := runCalendar(cmd, kit, opts, false)
	return out.String(), err
}

func TestCalendarWholeYear(t *testing.T) {
	out, err := execCalendar(t, PromptKit{}, calendarOptions{})
	require.NoError(t, err)

	assert.Contains(t, out, "Calendar 2024")
	assert.Contains(t, out, "29/02/2024  Thu")
	assert.Contains(t, out, "366 days, 0 registered")
	// heading plus one line per month
	assert.Equal(t, 13, strings.Count(out, " 2024\n"))
}

func TestCalendarMonthWithRegistrations(t *testing.T) {
	opts := calendarOptions{
		rng:      monthRange(2024, time.March),
		register: []string{"15-03-2024", "15/03/2024", "2024-03-04"},
	}
	out, err := execCalendar(t, PromptKit{}, opts)
	require.NoError(t, err)

	assert.Contains(t, out, "Calendar 01/03/2024 to 31/03/2024")
	assert.Contains(t, out, "15/03/2024  Fri  registered")
	assert.Contains(t, out, "04/03/2024  Mon  registered")
	assert.Contains(t, out, "05/03/2024  Tue  missing")
	assert.Contains(t, out, "11/03/2024  Mon  workday")
	// 1, 5, 6, 7, 8 March are missing workdays up to the 10th
	assert.Contains(t, out, "31 days, 2 registered, 5 missing (every weekday)")
	// registering the 15th twice appends twice
	assert.Contains(t, out, "03/2024  3")
}

func TestCalendarRegisteredOnly(t *testing.T) {
	rng := monthRange(2024, time.March)
	rng.RegisteredOnly = true
	out, err := execCalendar(t, PromptKit{}, calendarOptions{rng: rng, register: []string{"15-03-2024"}})
	require.NoError(t, err)

	// one registration keeps every day of its month
	assert.Contains(t, out, "31 days, 1 registered, 6 missing")
	assert.Contains(t, out, "14/03/2024  Thu  workday")
	assert.Contains(t, out, "15/03/2024  Fri  registered")
}

func TestCalendarRegisteredOnlySkipsUnregisteredMonths(t *testing.T) {
	from, to := day(2024, time.February, 26), day(2024, time.March, 5)
	rng := calendar.Range{Start: &from, End: &to, RegisteredOnly: true}
	out, err := execCalendar(t, PromptKit{}, calendarOptions{rng: rng, register: []string{"20-03-2024"}})
	require.NoError(t, err)

	assert.Contains(t, out, "5 days, 0 registered")
	assert.NotContains(t, out, "February 2024")
	assert.Contains(t, out, "01/03/2024  Fri")
}

func TestCalendarRegisteredOnlyEmpty(t *testing.T) {
	rng := monthRange(2024, time.March)
	rng.RegisteredOnly = true
	out, err := execCalendar(t, PromptKit{}, calendarOptions{rng: rng})
	require.NoError(t, err)
	assert.Contains(t, out, calendar.MsgNoEntries)
}

func TestCalendarInvertedRange(t *testing.T) {
	from, to := day(2024, time.April, 10), day(2024, time.April, 5)
	out, err := execCalendar(t, PromptKit{}, calendarOptions{rng: calendar.Range{Start: &from, End: &to}})
	require.NoError(t, err)

	assert.Contains(t, out, calendar.MsgInvertedRange)
	assert.Contains(t, out, "Calendar 2024")
	assert.Contains(t, out, "366 days")
}

func TestCalendarRangeAcrossYears(t *testing.T) {
	from, to := day(2023, time.December, 30), day(2024, time.January, 2)
	out, err := execCalendar(t, PromptKit{}, calendarOptions{year: 2023, rng: calendar.Range{Start: &from, End: &to}})
	require.NoError(t, err)

	assert.Contains(t, out, "December 2023")
	assert.Contains(t, out, "January 2024")
	assert.Contains(t, out, "4 days")
}

func TestCalendarInvalidRegister(t *testing.T) {
	_, err := execCalendar(t, PromptKit{}, calendarOptions{register: []string{"31-02-2024"}})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --register value")
}

func TestCalendarPick(t *testing.T) {
	rng := monthRange(2024, time.March)
	kit := PromptKit{MultiSelect: multiChoices([]int{0, 2})}

	// 1st is registered already, so the candidates start on the 2nd
	out, err := execCalendar(t, kit, calendarOptions{rng: rng, register: []string{"01-03-2024"}, pick: true})
	require.NoError(t, err)

	assert.Contains(t, out, "02/03/2024  Sat  registered")
	assert.Contains(t, out, "04/03/2024  Mon  registered")
	assert.Contains(t, out, "3 registered")
}

func TestCalendarPickWithRegisteredOnly(t *testing.T) {
	rng := monthRange(2024, time.March)
	rng.RegisteredOnly = true
	var offered []string
	kit := PromptKit{MultiSelect: func(title string, options []string) ([]int, error) {
		offered = options
		return []int{3}, nil
	}}

	out, err := execCalendar(t, kit, calendarOptions{rng: rng, pick: true})
	require.NoError(t, err)

	require.Len(t, offered, 31)
	assert.Equal(t, "04/03/2024 Mon", offered[3])
	assert.Contains(t, out, "04/03/2024  Mon  registered")
	assert.Contains(t, out, "31 days, 1 registered")
}

func TestParseCalendarPeriod(t *testing.T) {
	year, rng, err := parseCalendarPeriod(periodInput{}, fixedNow())
	require.NoError(t, err)
	assert.Equal(t, 2024, year)
	assert.False(t, rng.Complete())

	year, rng, err = parseCalendarPeriod(periodInput{year: "2020"}, fixedNow())
	require.NoError(t, err)
	assert.Equal(t, 2020, year)
	assert.False(t, rng.Complete())

	year, rng, err = parseCalendarPeriod(periodInput{month: "2", year: "2023"}, fixedNow())
	require.NoError(t, err)
	assert.Equal(t, 2023, year)
	assert.Equal(t, day(2023, time.February, 28), *rng.End)

	year, rng, err = parseCalendarPeriod(periodInput{to: "05-01-2022"}, fixedNow())
	require.NoError(t, err)
	assert.Equal(t, 2022, year)
	assert.False(t, rng.Complete())

	_, _, err = parseCalendarPeriod(periodInput{year: "abc"}, fixedNow())
	assert.Error(t, err)
}

func calendarKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestCalendarModelRegister(t *testing.T) {
	idx := calendar.NewIndex()
	opts := calendarOptions{rng: monthRange(2024, time.March), workdays: weekdays(t), now: fixedNow()}
	m := newCalendarModel(calendar.GenerateYear(2024), idx, opts)

	require.Len(t, m.entries, 31)
	assert.Equal(t, 9, m.cursor, "cursor starts on today")

	updated, _ := m.Update(calendarKey('r'))
	m = updated.(calendarModel)
	assert.True(t, idx.IsRegistered("10-03-2024"))
	assert.Contains(t, m.View(), "registered 10/03/2024")

	updated, _ = m.Update(calendarKey('o'))
	m = updated.(calendarModel)
	require.Len(t, m.entries, 31, "the registered month stays listed")
	assert.True(t, m.entries[9].Registered)
	assert.False(t, m.entries[8].Registered)
	assert.Contains(t, m.View(), "(registered only)")
}

func TestCalendarModelNavigation(t *testing.T) {
	opts := calendarOptions{rng: monthRange(2024, time.March), workdays: weekdays(t), now: fixedNow()}
	m := newCalendarModel(calendar.GenerateYear(2024), calendar.NewIndex(), opts)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = updated.(calendarModel)
	assert.Equal(t, 8, m.cursor)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	m = updated.(calendarModel)
	assert.Equal(t, 27, m.cursor)

	updated, _ = m.Update(calendarKey('.'))
	m = updated.(calendarModel)
	assert.Equal(t, 9, m.cursor)

	_, cmd := m.Update(calendarKey('q'))
	assert.NotNil(t, cmd)
}

func TestCalendarModelEmptySelection(t *testing.T) {
	rng := monthRange(2024, time.March)
	rng.RegisteredOnly = true
	opts := calendarOptions{rng: rng, workdays: weekdays(t), now: fixedNow()}
	m := newCalendarModel(calendar.GenerateYear(2024), calendar.NewIndex(), opts)

	assert.Empty(t, m.entries)
	assert.Contains(t, m.View(), calendar.MsgNoEntries)

	_, cmd := m.Update(calendarKey('r'))
	assert.Nil(t, cmd)
}
