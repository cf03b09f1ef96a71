package cli

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/natasilva/task-tracker-front/internal/api"
	"github.com/natasilva/task-tracker-front/internal/calendar"
	"github.com/natasilva/task-tracker-front/internal/totalizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekdays(t *testing.T) *calendar.Workdays {
	t.Helper()
	w, err := calendar.ParseWorkdays("every weekday")
	require.NoError(t, err)
	return w
}

func marchOptions(t *testing.T) resultsOptions {
	return resultsOptions{
		userID:   "1",
		rng:      monthRange(2024, time.March),
		workdays: weekdays(t),
		now:      fixedNow(),
	}
}

func TestBuildResultDays(t *testing.T) {
	days, err := buildResultDays([]api.Result{
		{ID: "5", ValidationDate: "2024-03-01"},
		{ValidationDate: "2024-03-02"},
		{ID: "9", ValidationDate: "2024-03-01T00:00:00.000Z"},
	})
	require.NoError(t, err)

	require.Len(t, days.entries, 2)
	assert.True(t, days.entries[0].Registered)
	assert.False(t, days.entries[1].Registered)
	assert.Equal(t, []api.ID{"5", "9"}, days.ids["01-03-2024"])
	assert.Equal(t, api.ID("5"), days.firstID("01-03-2024"))
	assert.Equal(t, api.ID(""), days.firstID("02-03-2024"))
	assert.Len(t, days.index.Records("03/2024"), 2)
}

func TestBuildResultDaysBadDate(t *testing.T) {
	_, err := buildResultDays([]api.Result{{ID: "1", ValidationDate: "yesterday"}})
	assert.Error(t, err)
}

func TestResultsListStatic(t *testing.T) {
	client, _ := newTestAPI(t)
	cmd, out := newTestCmd()

	require.NoError(t, runResultsList(cmd, client, marchOptions(t)))

	s := out.String()
	assert.Contains(t, s, "Results 01/03/2024 to 31/03/2024")
	assert.Contains(t, s, "March 2024")
	assert.Contains(t, s, "01/03/2024  Fri  registered #1")
	assert.Contains(t, s, "04/03/2024  Mon  missing")
	assert.Contains(t, s, "09/03/2024  Sat  -")
	assert.Contains(t, s, "11/03/2024  Mon  upcoming")
	assert.Equal(t, 31, strings.Count(s, "/03/2024  "))
}

func TestResultsListRegisteredOnly(t *testing.T) {
	client, _ := newTestAPI(t)
	cmd, out := newTestCmd()
	opts := marchOptions(t)
	opts.rng.RegisteredOnly = true

	require.NoError(t, runResultsList(cmd, client, opts))

	assert.Equal(t, 3, strings.Count(out.String(), "registered #"))
	assert.NotContains(t, out.String(), "missing")
}

func TestResultsListEmptyNotice(t *testing.T) {
	client, _ := newTestAPI(t)
	cmd, out := newTestCmd()
	opts := marchOptions(t)
	opts.rng = monthRange(2024, time.February)
	opts.rng.RegisteredOnly = true

	require.NoError(t, runResultsList(cmd, client, opts))

	assert.Contains(t, out.String(), calendar.MsgNoEntries)
}

// fixedRows answers every listing with the same rows.
type fixedRows []api.Result

func (f fixedRows) Results(context.Context, api.ResultsQuery) ([]api.Result, error) {
	return f, nil
}

func TestResultsListShowsServerRowsAsIs(t *testing.T) {
	rows := fixedRows{
		{ValidationDate: "2024-03-05"},
		{ID: "9", ValidationDate: "2024-04-01"},
	}
	cmd, out := newTestCmd()
	opts := marchOptions(t)
	opts.rng.RegisteredOnly = true

	require.NoError(t, runResultsList(cmd, rows, opts))

	s := out.String()
	assert.Contains(t, s, "05/03/2024  Tue  missing")
	assert.Contains(t, s, "01/04/2024  Mon  registered #9")
	assert.NotContains(t, s, calendar.MsgNoEntries)
}

func TestResultsListInvertedRangeFallsBack(t *testing.T) {
	client, _ := newTestAPI(t)
	cmd, out := newTestCmd()
	opts := marchOptions(t)
	from, to := day(2024, time.April, 10), day(2024, time.April, 5)
	opts.rng = calendar.Range{Start: &from, End: &to}

	require.NoError(t, runResultsList(cmd, client, opts))

	assert.Contains(t, out.String(), calendar.MsgInvertedRange)
	assert.Contains(t, out.String(), "Results 01/03/2024 to 31/03/2024")
}

func TestResultsListRequestFailed(t *testing.T) {
	cmd, _ := newTestCmd()
	client := api.NewClient("http://127.0.0.1:1", 50*time.Millisecond)

	err := runResultsList(cmd, client, marchOptions(t))
	assert.ErrorIs(t, err, api.ErrRequestFailed)
}

func TestRunTotalizerCreates(t *testing.T) {
	client, _ := newTestAPI(t)
	cmd, out := newTestCmd()
	kit := PromptKit{Quantities: fillQuantities(map[string]string{"Deliveries": "12", "Repairs": "2 boxes"})}

	require.NoError(t, runTotalizer(cmd, client, kit, "1", day(2024, time.March, 4), ""))
	assert.Contains(t, out.String(), "registered 04/03/2024: 3 services, total 14")

	rows, err := client.Results(context.Background(), api.ResultsQuery{UserID: "1", Registered: true, From: day(2024, time.March, 4), To: day(2024, time.March, 4)})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	detail, err := client.Result(context.Background(), rows[0].ID)
	require.NoError(t, err)
	require.Len(t, detail.Items, 3)
	assert.Equal(t, 12, detail.Items[0].Quantity)
	assert.Equal(t, 0, detail.Items[1].Quantity)
	assert.Equal(t, 2, detail.Items[2].Quantity)
}

func TestRunTotalizerUpdatesPrefilled(t *testing.T) {
	client, _ := newTestAPI(t)
	cmd, out := newTestCmd()

	var seen string
	kit := PromptKit{Quantities: func(title string, form *totalizer.Form) error {
		seen = form.Value("1")
		form.Set("1", "20")
		return nil
	}}

	require.NoError(t, runTotalizer(cmd, client, kit, "1", day(2024, time.March, 1), "1"))
	assert.Equal(t, "8", seen)
	assert.Contains(t, out.String(), "updated 01/03/2024")

	detail, err := client.Result(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, 20, detail.Items[0].Quantity)
}

func TestRunTotalizerLoadFails(t *testing.T) {
	client, _ := newTestAPI(t)
	cmd, _ := newTestCmd()
	kit := PromptKit{Quantities: fillQuantities()}

	err := runTotalizer(cmd, client, kit, "1", day(2024, time.March, 1), "404")
	assert.ErrorIs(t, err, api.ErrRequestFailed)
}

func TestRunTotalizerFormCanceled(t *testing.T) {
	client, _ := newTestAPI(t)
	cmd, _ := newTestCmd()
	canceled := errors.New("user aborted")
	kit := PromptKit{Quantities: func(string, *totalizer.Form) error { return canceled }}

	err := runTotalizer(cmd, client, kit, "1", day(2024, time.March, 4), "")
	assert.ErrorIs(t, err, canceled)
}

func TestRunResultsEdit(t *testing.T) {
	client, _ := newTestAPI(t)
	cmd, out := newTestCmd()
	kit := PromptKit{Quantities: fillQuantities(map[string]string{"Installations": "5"})}

	require.NoError(t, runResultsEdit(cmd, client, kit, "2"))
	assert.Contains(t, out.String(), "updated 02/03/2024")
}

// countingResults counts the result lookups made through it.
type countingResults struct {
	totalizerAPI
	lookups int
}

func (c *countingResults) Result(ctx context.Context, id api.ID) (*api.ResultDetail, error) {
	c.lookups++
	return c.totalizerAPI.Result(ctx, id)
}

func TestRunResultsEditFetchesResultOnce(t *testing.T) {
	client, _ := newTestAPI(t)
	counting := &countingResults{totalizerAPI: client}
	cmd, out := newTestCmd()
	kit := PromptKit{Quantities: fillQuantities(map[string]string{"Installations": "5"})}

	require.NoError(t, runResultsEdit(cmd, counting, kit, "2"))
	assert.Equal(t, 1, counting.lookups)
	assert.Contains(t, out.String(), "updated 02/03/2024")
}

func TestBrowseResultsRegistersThenGoesBack(t *testing.T) {
	client, _ := newTestAPI(t)
	cmd, out := newTestCmd()
	kit := PromptKit{
		// 4th of March, then "Back" (31 days + Back)
		Select:     choices(3, 31),
		Quantities: fillQuantities(map[string]string{"Deliveries": "3"}),
	}

	require.NoError(t, browseResults(cmd, client, kit, marchOptions(t), false))

	s := out.String()
	assert.Contains(t, s, "registered 04/03/2024")
	assert.Contains(t, s, "04/03/2024  Mon  registered #4")
}

func TestBrowseResultsShowsSaveError(t *testing.T) {
	client, _ := newTestAPI(t)
	cmd, out := newTestCmd()
	kit := PromptKit{
		Select:     choices(0, 31),
		Quantities: func(string, *totalizer.Form) error { return errors.New("form closed") },
	}

	require.NoError(t, browseResults(cmd, client, kit, marchOptions(t), false))
	assert.Contains(t, out.String(), "form closed")
}

func loadedModel(t *testing.T, client resultsFetcher) resultsModel {
	t.Helper()
	m := newResultsModel(context.Background(), client, marchOptions(t))
	m, cmd := m.fetch()
	require.NotNil(t, cmd)
	updated, _ := m.Update(cmd())
	return updated.(resultsModel)
}

func TestResultsModelLoads(t *testing.T) {
	client, _ := newTestAPI(t)
	m := loadedModel(t, client)

	assert.False(t, m.loading)
	assert.NoError(t, m.err)
	assert.Len(t, m.entries, 31)
	assert.Contains(t, m.View(), "01/03/2024  Fri  registered #1")
}

func TestResultsModelKeepsServerRows(t *testing.T) {
	m := loadedModel(t, fixedRows{{ID: "9", ValidationDate: "2024-04-01"}})

	require.Len(t, m.entries, 1)
	assert.Equal(t, "01-04-2024", m.entries[0].ID)
	assert.Nil(t, m.notice)
}

func TestResultsModelDropsStaleResponse(t *testing.T) {
	client, _ := newTestAPI(t)
	m := newResultsModel(context.Background(), client, marchOptions(t))

	m, first := m.fetch()
	updated, second := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{']'}})
	m = updated.(resultsModel)
	require.NotNil(t, second)
	assert.True(t, m.loading)

	// the March response arrives after April was requested
	updated, _ = m.Update(first())
	m = updated.(resultsModel)
	assert.True(t, m.loading)
	assert.Empty(t, m.entries)

	updated, _ = m.Update(second())
	m = updated.(resultsModel)
	assert.False(t, m.loading)
	require.Len(t, m.entries, 30)
	assert.Equal(t, time.April, m.entries[0].Date.Month)
}

func TestResultsModelToggleRegistered(t *testing.T) {
	client, _ := newTestAPI(t)
	m := loadedModel(t, client)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	m = updated.(resultsModel)
	updated, _ = m.Update(cmd())
	m = updated.(resultsModel)

	assert.True(t, m.rng.RegisteredOnly)
	assert.Len(t, m.entries, 3)
	assert.Contains(t, m.View(), "(registered only)")
}

func TestResultsModelSelect(t *testing.T) {
	client, _ := newTestAPI(t)
	m := loadedModel(t, client)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	updated, cmd := updated.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(resultsModel)

	require.NotNil(t, cmd)
	require.NotNil(t, m.selected)
	assert.Equal(t, day(2024, time.March, 2), m.selected.day)
	assert.Equal(t, api.ID("2"), m.selected.id)
}

func TestResultsModelShowsRequestFailure(t *testing.T) {
	client := api.NewClient("http://127.0.0.1:1", 50*time.Millisecond)
	m := loadedModel(t, client)

	assert.False(t, m.loading)
	assert.Error(t, m.err)
	assert.Contains(t, m.View(), "request failed")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}
