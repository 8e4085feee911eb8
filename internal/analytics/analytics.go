// Package analytics derives summary figures from ledger snapshots. Every
// function is a pure function of its snapshot: no hidden state, same input,
// same output.
package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/atharvapisal16/household-ledger/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// DailyTotal is one point of a daily spending trend.
type DailyTotal struct {
	Date  time.Time
	Total decimal.Decimal
}

// Summary condenses one month (or year) of a section's ledger.
type Summary struct {
	Total            decimal.Decimal
	Transactions     int
	DaysRecorded     int
	AveragePerDay    decimal.Decimal
	TopCategory      string
	TopCategoryTotal decimal.Decimal
}

// TotalsByCategory sums record amounts per category. Categories absent from
// the snapshot are absent from the result; there is no zero-fill.
func TotalsByCategory(snap domain.Snapshot) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal, len(snap.Records))
	for _, r := range snap.Records {
		totals[r.Category] = totals[r.Category].Add(r.Amount)
	}
	return totals
}

// TotalsByDay returns the sum of amounts for each date present in the
// snapshot, ascending. Dates with no expenses are not synthesized; gap
// interpolation is a presentation concern.
func TotalsByDay(snap domain.Snapshot) []DailyTotal {
	byDay := make(map[time.Time]decimal.Decimal)
	for _, r := range snap.Records {
		day := r.Date.Truncate(24 * time.Hour)
		byDay[day] = byDay[day].Add(r.Amount)
	}

	trend := make([]DailyTotal, 0, len(byDay))
	for day, total := range byDay {
		trend = append(trend, DailyTotal{Date: day, Total: total})
	}
	sort.Slice(trend, func(i, j int) bool {
		return trend[i].Date.Before(trend[j].Date)
	})

	return trend
}

// PercentageBreakdown maps each category to its share of the grand total,
// as 100 * category_total / grand_total. An empty or all-zero snapshot
// yields an empty map rather than a division by zero.
func PercentageBreakdown(snap domain.Snapshot) map[string]decimal.Decimal {
	total := snap.Total()
	if total.IsZero() {
		return map[string]decimal.Decimal{}
	}

	breakdown := make(map[string]decimal.Decimal)
	for category, amount := range TotalsByCategory(snap) {
		breakdown[category] = amount.Mul(hundred).Div(total)
	}
	return breakdown
}

// Summarize computes the dashboard headline figures for a snapshot. The top
// category is the one with the largest total; equal totals resolve to the
// lexicographically smaller name so the result stays deterministic.
func Summarize(snap domain.Snapshot) Summary {
	s := Summary{
		Total:            snap.Total(),
		Transactions:     len(snap.Records),
		AveragePerDay:    decimal.Zero,
		TopCategoryTotal: decimal.Zero,
	}

	days := make(map[time.Time]bool)
	for _, r := range snap.Records {
		days[r.Date.Truncate(24*time.Hour)] = true
	}
	s.DaysRecorded = len(days)

	if s.DaysRecorded > 0 {
		s.AveragePerDay = s.Total.Div(decimal.NewFromInt(int64(s.DaysRecorded)))
	}

	for category, total := range TotalsByCategory(snap) {
		switch {
		case total.GreaterThan(s.TopCategoryTotal),
			total.Equal(s.TopCategoryTotal) && (s.TopCategory == "" || category < s.TopCategory):
			s.TopCategory = category
			s.TopCategoryTotal = total
		}
	}

	return s
}
