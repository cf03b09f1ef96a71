// Package targets turns a target report into chart rows.
package targets

import (
	"github.com/natasilva/task-tracker-front/internal/api"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Row is one service of the report.
type Row struct {
	Name        string
	Description string
	Target      decimal.Decimal
	Achieved    decimal.Decimal
	// Percent is Achieved/Target in percent, rounded to one decimal place.
	// It is zero when Target is zero.
	Percent decimal.Decimal
}

// Met reports whether the target was reached.
func (r Row) Met() bool {
	return !r.Achieved.LessThan(r.Target)
}

// Chart is a report ready to be drawn.
type Chart struct {
	Rows []Row
	Max  decimal.Decimal
}

// Build computes percentages and the scale of the chart.
func Build(rows []api.TargetReportRow) Chart {
	c := Chart{Rows: make([]Row, 0, len(rows)), Max: decimal.Zero}
	for _, r := range rows {
		row := Row{
			Name:        r.Name,
			Description: r.Description,
			Target:      r.TargetValue,
			Achieved:    r.AchievedValue,
			Percent:     decimal.Zero,
		}
		if r.TargetValue.IsPositive() {
			row.Percent = r.AchievedValue.Div(r.TargetValue).Mul(hundred).Round(1)
		}
		c.Rows = append(c.Rows, row)
		if r.TargetValue.GreaterThan(c.Max) {
			c.Max = r.TargetValue
		}
		if r.AchievedValue.GreaterThan(c.Max) {
			c.Max = r.AchievedValue
		}
	}
	return c
}

// Empty reports whether there is nothing to draw.
func (c Chart) Empty() bool { return len(c.Rows) == 0 }

// Bar returns the length, in cells, of a bar for v when the longest bar is
// width cells. Non-zero values get at least one cell.
func (c Chart) Bar(v decimal.Decimal, width int) int {
	if width <= 0 || !c.Max.IsPositive() || !v.IsPositive() {
		return 0
	}
	n := int(v.Div(c.Max).Mul(decimal.NewFromInt(int64(width))).Round(0).IntPart())
	if n < 1 {
		n = 1
	}
	if n > width {
		n = width
	}
	return n
}

// Totals sums targets and achieved values over every row.
func (c Chart) Totals() (target, achieved decimal.Decimal) {
	target, achieved = decimal.Zero, decimal.Zero
	for _, r := range c.Rows {
		target = target.Add(r.Target)
		achieved = achieved.Add(r.Achieved)
	}
	return target, achieved
}
