package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/atharvapisal16/household-ledger/internal/analytics"
	"github.com/atharvapisal16/household-ledger/internal/csvio"
	"github.com/atharvapisal16/household-ledger/internal/domain"
)

// ReportUseCase derives dashboard figures and exports from ledger
// snapshots. It never mutates the store.
type ReportUseCase struct {
	expenseRepo ExpenseRepository
}

// NewReportUseCase creates a new ReportUseCase.
func NewReportUseCase(expenseRepo ExpenseRepository) *ReportUseCase {
	return &ReportUseCase{expenseRepo: expenseRepo}
}

// Snapshot returns the point-in-time view all reports are computed from.
func (uc *ReportUseCase) Snapshot(ctx context.Context, owner string, section domain.Section, year, month int) (domain.Snapshot, error) {
	if !section.IsValid() {
		return domain.Snapshot{}, domain.ErrInvalidSection
	}
	if err := validatePeriod(year, month); err != nil {
		return domain.Snapshot{}, err
	}
	return uc.expenseRepo.Query(ctx, owner, section, year, month)
}

// Summary computes the headline figures for a period.
func (uc *ReportUseCase) Summary(ctx context.Context, owner string, section domain.Section, year, month int) (analytics.Summary, error) {
	snap, err := uc.Snapshot(ctx, owner, section, year, month)
	if err != nil {
		return analytics.Summary{}, err
	}
	return analytics.Summarize(snap), nil
}

// CategoryTotals sums amounts per category for a period.
func (uc *ReportUseCase) CategoryTotals(ctx context.Context, owner string, section domain.Section, year, month int) (map[string]decimal.Decimal, error) {
	snap, err := uc.Snapshot(ctx, owner, section, year, month)
	if err != nil {
		return nil, err
	}
	return analytics.TotalsByCategory(snap), nil
}

// DailyTrend returns the per-day totals of a period, ascending.
func (uc *ReportUseCase) DailyTrend(ctx context.Context, owner string, section domain.Section, year, month int) ([]analytics.DailyTotal, error) {
	snap, err := uc.Snapshot(ctx, owner, section, year, month)
	if err != nil {
		return nil, err
	}
	return analytics.TotalsByDay(snap), nil
}

// Breakdown returns each category's percentage share of a period's total.
func (uc *ReportUseCase) Breakdown(ctx context.Context, owner string, section domain.Section, year, month int) (map[string]decimal.Decimal, error) {
	snap, err := uc.Snapshot(ctx, owner, section, year, month)
	if err != nil {
		return nil, err
	}
	return analytics.PercentageBreakdown(snap), nil
}

// ExportCSV renders a period's snapshot as CSV text. Exporting a period
// with no records fails with domain.ErrEmptySnapshot.
func (uc *ReportUseCase) ExportCSV(ctx context.Context, owner string, section domain.Section, year, month int) (string, error) {
	snap, err := uc.Snapshot(ctx, owner, section, year, month)
	if err != nil {
		return "", err
	}
	return csvio.ExportString(snap)
}
