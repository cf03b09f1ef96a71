package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) *Date {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return &d
}

func ids(entries []DayEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func TestFilterInclusiveRange(t *testing.T) {
	entries := GenerateYear(2024)

	res := Filter(entries, Range{Start: mustDate(t, "30-03-2024"), End: mustDate(t, "02-04-2024")}, nil)

	assert.True(t, res.Applied)
	assert.Nil(t, res.Notice)
	assert.Equal(t, []string{"30-03-2024", "31-03-2024", "01-04-2024", "02-04-2024"}, ids(res.Entries))
}

func TestFilterSingleDay(t *testing.T) {
	entries := GenerateYear(2024)
	day := mustDate(t, "29-02-2024")

	res := Filter(entries, Range{Start: day, End: day}, nil)

	require.Len(t, res.Entries, 1)
	assert.Equal(t, "29-02-2024", res.Entries[0].ID)
}

func TestFilterAbsentBoundIsNoop(t *testing.T) {
	entries := GenerateMonth(2024, time.April)

	tests := []struct {
		name string
		rng  Range
	}{
		{"no bounds", Range{}},
		{"start only", Range{Start: mustDate(t, "01-04-2024")}},
		{"end only", Range{End: mustDate(t, "10-04-2024"), RegisteredOnly: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Filter(entries, tt.rng, NewIndex())
			assert.False(t, res.Applied)
			assert.Nil(t, res.Notice)
			assert.Equal(t, entries, res.Entries)
		})
	}
}

func TestFilterInvertedRangeRaisesNotice(t *testing.T) {
	entries := GenerateMonth(2024, time.April)

	res := Filter(entries, Range{Start: mustDate(t, "10-04-2024"), End: mustDate(t, "05-04-2024")}, nil)

	assert.False(t, res.Applied)
	assert.Equal(t, entries, res.Entries)
	require.NotNil(t, res.Notice)
	assert.Equal(t, NoticeWarning, res.Notice.Level)
	assert.Equal(t, MsgInvertedRange, res.Notice.Message)
}

func TestFilterEmptyResultRaisesInfoNotice(t *testing.T) {
	entries := GenerateMonth(2024, time.April)

	res := Filter(entries, Range{Start: mustDate(t, "01-05-2024"), End: mustDate(t, "31-05-2024")}, nil)

	assert.True(t, res.Applied)
	assert.Empty(t, res.Entries)
	require.NotNil(t, res.Notice)
	assert.Equal(t, NoticeInfo, res.Notice.Level)
	assert.Equal(t, MsgNoEntries, res.Notice.Message)
}

func TestFilterIsIdempotent(t *testing.T) {
	entries := GenerateYear(2024)
	idx := NewIndex()
	require.NoError(t, idx.Register("03-06-2024"))
	require.NoError(t, idx.Register("20-06-2024"))

	for _, registeredOnly := range []bool{false, true} {
		rng := Range{Start: mustDate(t, "01-06-2024"), End: mustDate(t, "15-07-2024"), RegisteredOnly: registeredOnly}
		once := Filter(entries, rng, idx)
		twice := Filter(once.Entries, rng, idx)
		assert.Equal(t, once.Entries, twice.Entries)
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	entries := GenerateMonth(2024, time.January)

	res := Filter(entries, Range{Start: mustDate(t, "05-01-2024"), End: mustDate(t, "25-01-2024")}, nil)

	for i := 1; i < len(res.Entries); i++ {
		assert.True(t, res.Entries[i-1].Date.Before(res.Entries[i].Date))
	}
	assert.Len(t, res.Entries, 21)
}

func TestFilterRegisteredOnly(t *testing.T) {
	entries := GenerateYear(2024)
	idx := NewIndex()
	require.NoError(t, idx.Register("15-03-2024"))

	res := Filter(entries, Range{
		Start:          mustDate(t, "01-03-2024"),
		End:            mustDate(t, "31-03-2024"),
		RegisteredOnly: true,
	}, idx)

	assert.Len(t, res.Entries, 31, "one registration marks the whole month")
	assert.Equal(t, "01-03-2024", res.Entries[0].ID)
	assert.Equal(t, "31-03-2024", res.Entries[30].ID)
	assert.Nil(t, res.Notice)
}

func TestFilterRegisteredOnlySpansMonths(t *testing.T) {
	entries := GenerateYear(2024)
	idx := NewIndex()
	require.NoError(t, idx.Register("02-04-2024"))

	res := Filter(entries, Range{
		Start:          mustDate(t, "25-03-2024"),
		End:            mustDate(t, "05-04-2024"),
		RegisteredOnly: true,
	}, idx)

	assert.Equal(t, []string{"01-04-2024", "02-04-2024", "03-04-2024", "04-04-2024", "05-04-2024"}, ids(res.Entries))
}

func TestFilterRegisteredOnlyWithoutIndex(t *testing.T) {
	entries := GenerateMonth(2024, time.March)

	res := Filter(entries, Range{
		Start:          mustDate(t, "01-03-2024"),
		End:            mustDate(t, "31-03-2024"),
		RegisteredOnly: true,
	}, nil)

	assert.Empty(t, res.Entries)
	require.NotNil(t, res.Notice)
	assert.Equal(t, MsgNoEntries, res.Notice.Message)
}

func TestRangeContains(t *testing.T) {
	rng := Range{Start: mustDate(t, "01-03-2024"), End: mustDate(t, "31-03-2024")}

	assert.True(t, rng.Contains(*mustDate(t, "01-03-2024")))
	assert.True(t, rng.Contains(*mustDate(t, "31-03-2024")))
	assert.False(t, rng.Contains(*mustDate(t, "29-02-2024")))
	assert.False(t, rng.Contains(*mustDate(t, "01-04-2024")))
	assert.False(t, Range{}.Contains(*mustDate(t, "01-03-2024")))
}
