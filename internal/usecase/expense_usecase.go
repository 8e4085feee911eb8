package usecase

import (
	"context"
	"errors"

	"github.com/atharvapisal16/household-ledger/internal/domain"
)

// ErrInvalidPeriod is returned for query filters outside the calendar.
var ErrInvalidPeriod = errors.New("invalid year/month filter")

// ExpenseUseCase handles the ledger operations of one section at a time.
// The owner is always passed in explicitly; there is no ambient logged-in
// user.
type ExpenseUseCase struct {
	expenseRepo ExpenseRepository
	idGen       IDGenerator
}

// NewExpenseUseCase creates a new ExpenseUseCase.
func NewExpenseUseCase(expenseRepo ExpenseRepository, idGen IDGenerator) *ExpenseUseCase {
	return &ExpenseUseCase{
		expenseRepo: expenseRepo,
		idGen:       idGen,
	}
}

// Add validates a raw record, assigns it a fresh identifier, and appends it
// to the section's ledger.
func (uc *ExpenseUseCase) Add(ctx context.Context, owner string, section domain.Section, raw domain.RawRecord) (*domain.Expense, error) {
	if !section.IsValid() {
		return nil, domain.ErrInvalidSection
	}

	expense, verr := domain.ValidateRecord(raw)
	if verr != nil {
		return nil, verr
	}
	expense.ID = uc.idGen.Generate()

	if err := uc.expenseRepo.Add(ctx, owner, section, &expense); err != nil {
		return nil, err
	}

	return &expense, nil
}

// Update replaces the mutable fields (date, category, amount, note) of an
// existing record. Identifier and section never change. Fails with
// domain.ErrExpenseNotFound if the id is absent.
func (uc *ExpenseUseCase) Update(ctx context.Context, owner string, section domain.Section, id string, raw domain.RawRecord) (*domain.Expense, error) {
	if !section.IsValid() {
		return nil, domain.ErrInvalidSection
	}

	expense, verr := domain.ValidateRecord(raw)
	if verr != nil {
		return nil, verr
	}
	expense.ID = id

	if err := uc.expenseRepo.Update(ctx, owner, section, &expense); err != nil {
		return nil, err
	}

	return &expense, nil
}

// Delete removes a record permanently. There is no soft-delete or undo.
func (uc *ExpenseUseCase) Delete(ctx context.Context, owner string, section domain.Section, id string) error {
	if !section.IsValid() {
		return domain.ErrInvalidSection
	}
	return uc.expenseRepo.Delete(ctx, owner, section, id)
}

// ImportResult reports the outcome of a bulk import.
type ImportResult struct {
	Imported int
	Rejected []domain.RejectedRow
}

// Import validates rows independently and persists all accepted records in
// one store write: either every accepted record persists or, on a
// persistence failure, none do. A bad row never aborts the batch; it is
// reported in the result with its original row index and skipped.
func (uc *ExpenseUseCase) Import(ctx context.Context, owner string, section domain.Section, rows []domain.RawRecord) (ImportResult, error) {
	if !section.IsValid() {
		return ImportResult{}, domain.ErrInvalidSection
	}

	accepted, rejected := domain.ValidateBatch(rows)
	result := ImportResult{Rejected: rejected}

	if len(accepted) == 0 {
		return result, nil
	}

	batch := make([]*domain.Expense, len(accepted))
	for i := range accepted {
		accepted[i].ID = uc.idGen.Generate()
		batch[i] = &accepted[i]
	}

	if err := uc.expenseRepo.AddBatch(ctx, owner, section, batch); err != nil {
		return ImportResult{}, err
	}

	result.Imported = len(batch)
	return result, nil
}

// Query returns a fresh snapshot of the section's records for the given
// year, or year/month when month is non-zero. Records come back ordered by
// date ascending with ties in insertion order.
func (uc *ExpenseUseCase) Query(ctx context.Context, owner string, section domain.Section, year, month int) (domain.Snapshot, error) {
	if !section.IsValid() {
		return domain.Snapshot{}, domain.ErrInvalidSection
	}
	if err := validatePeriod(year, month); err != nil {
		return domain.Snapshot{}, err
	}
	return uc.expenseRepo.Query(ctx, owner, section, year, month)
}

// Categories returns the known categories of a section: the defaults plus
// every category in use, sorted.
func (uc *ExpenseUseCase) Categories(ctx context.Context, owner string, section domain.Section) ([]string, error) {
	if !section.IsValid() {
		return nil, domain.ErrInvalidSection
	}
	return uc.expenseRepo.Categories(ctx, owner, section)
}

// validatePeriod checks a year/month filter. Month 0 means the whole year.
func validatePeriod(year, month int) error {
	if year < 1 || year > 9999 {
		return ErrInvalidPeriod
	}
	if month < 0 || month > 12 {
		return ErrInvalidPeriod
	}
	return nil
}
