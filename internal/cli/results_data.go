package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/natasilva/task-tracker-front/internal/api"
	"github.com/natasilva/task-tracker-front/internal/calendar"
)

type resultsFetcher interface {
	Results(ctx context.Context, q api.ResultsQuery) ([]api.Result, error)
}

// resultDays is an API listing turned into calendar entries. Days with a
// result are registered in index; ids keeps the result IDs of each day.
type resultDays struct {
	entries []calendar.DayEntry
	index   *calendar.Index
	ids     map[string][]api.ID
}

func buildResultDays(rows []api.Result) (resultDays, error) {
	days := resultDays{index: calendar.NewIndex(), ids: make(map[string][]api.ID)}
	seen := make(map[string]bool)
	for _, r := range rows {
		d, err := r.Date()
		if err != nil {
			return resultDays{}, fmt.Errorf("result %s: %w", r.ID, err)
		}
		id := calendar.FormatDate(d)
		if !seen[id] {
			seen[id] = true
			days.entries = append(days.entries, calendar.DayEntry{ID: id, Date: d})
		}
		if r.Registered() {
			if err := days.index.Register(id); err != nil {
				return resultDays{}, err
			}
			days.ids[id] = append(days.ids[id], r.ID)
		}
	}
	days.entries = days.index.Apply(days.entries)
	return days, nil
}

// firstID returns the first result of a day, empty when none is registered.
func (d resultDays) firstID(dayID string) api.ID {
	if ids := d.ids[dayID]; len(ids) > 0 {
		return ids[0]
	}
	return ""
}

// notice is the informational notice of an empty listing. Rows are shown
// as the server returned them, so only emptiness is reported.
func (d resultDays) notice() *calendar.Notice {
	if len(d.entries) > 0 {
		return nil
	}
	return &calendar.Notice{Level: calendar.NoticeInfo, Message: calendar.MsgNoEntries}
}

// resultsQuery builds the API query of a range.
func resultsQuery(userID api.ID, rng calendar.Range) api.ResultsQuery {
	return api.ResultsQuery{
		UserID:     userID,
		Registered: rng.RegisteredOnly,
		From:       *rng.Start,
		To:         *rng.End,
	}
}

// dayLine formats one day of a results listing.
func dayLine(e calendar.DayEntry, days resultDays, expected map[calendar.Date]bool, today calendar.Date) string {
	label := fmt.Sprintf("%s  %s", calendar.FormatDisplay(e.Date), e.Date.Time().Weekday().String()[:3])
	switch {
	case e.Registered:
		ids := days.ids[e.ID]
		refs := make([]string, len(ids))
		for i, id := range ids {
			refs[i] = "#" + id.String()
		}
		return fmt.Sprintf("%s  %s %s", label, Success("registered"), Silent(strings.Join(refs, " ")))
	case expected[e.Date] && !e.Date.After(today):
		return fmt.Sprintf("%s  %s", label, Warning("missing"))
	case e.Date.After(today):
		return fmt.Sprintf("%s  %s", label, Silent("upcoming"))
	default:
		return fmt.Sprintf("%s  %s", label, Silent("-"))
	}
}

func noticeLine(n *calendar.Notice) string {
	if n == nil {
		return ""
	}
	if n.Level == calendar.NoticeWarning {
		return Warning(n.Message)
	}
	return Info(n.Message)
}

// printResults writes a static, month-grouped listing.
func printResults(w io.Writer, rng calendar.Range, days resultDays, expected map[calendar.Date]bool, today calendar.Date) {
	_, _ = fmt.Fprintf(w, "%s\n", Text(fmt.Sprintf("Results %s", Primary(rangeLabel(rng)))))
	if n := days.notice(); n != nil {
		_, _ = fmt.Fprintf(w, "%s\n", noticeLine(n))
	}
	for _, g := range calendar.GroupByMonth(days.entries) {
		_, _ = fmt.Fprintf(w, "\n%s\n", Primary(fmt.Sprintf("%s %d", g.Month, g.Year)))
		for _, e := range g.Entries {
			_, _ = fmt.Fprintf(w, "  %s\n", dayLine(e, days, expected, today))
		}
	}
}
