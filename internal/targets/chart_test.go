package targets

import (
	"testing"

	"github.com/natasilva/task-tracker-front/internal/api"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sample() []api.TargetReportRow {
	return []api.TargetReportRow{
		{Name: "Deliveries", TargetValue: dec("100"), AchievedValue: dec("27")},
		{Name: "Installations", TargetValue: dec("20"), AchievedValue: dec("30")},
		{Name: "Repairs", TargetValue: dec("15"), AchievedValue: dec("2")},
		{Name: "New", TargetValue: dec("0"), AchievedValue: dec("0")},
	}
}

func TestBuildPercent(t *testing.T) {
	c := Build(sample())
	require.Len(t, c.Rows, 4)

	assert.Equal(t, "27", c.Rows[0].Percent.String())
	assert.Equal(t, "150", c.Rows[1].Percent.String())
	assert.Equal(t, "13.3", c.Rows[2].Percent.String())
	assert.Equal(t, "0", c.Rows[3].Percent.String())

	assert.False(t, c.Rows[0].Met())
	assert.True(t, c.Rows[1].Met())
	assert.True(t, c.Rows[3].Met())
	assert.Equal(t, "100", c.Max.String())
}

func TestBar(t *testing.T) {
	c := Build(sample())

	assert.Equal(t, 40, c.Bar(dec("100"), 40))
	assert.Equal(t, 11, c.Bar(dec("27"), 40))
	assert.Equal(t, 1, c.Bar(dec("0.5"), 40))
	assert.Equal(t, 0, c.Bar(dec("0"), 40))
	assert.Equal(t, 0, c.Bar(dec("50"), 0))
}

func TestBuildEmpty(t *testing.T) {
	c := Build(nil)
	assert.True(t, c.Empty())
	assert.Equal(t, 0, c.Bar(dec("1"), 10))

	target, achieved := c.Totals()
	assert.True(t, target.IsZero())
	assert.True(t, achieved.IsZero())
}

func TestTotals(t *testing.T) {
	target, achieved := Build(sample()).Totals()
	assert.Equal(t, "135", target.String())
	assert.Equal(t, "59", achieved.String())
}
