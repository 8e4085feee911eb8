package csvfile

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/atharvapisal16/household-ledger/internal/domain"
)

var expenseHeader = []string{"id", "date", "category", "note", "amount"}

// ExpenseRepository stores one CSV ledger file per (owner, section)
// pair. Every operation loads the whole file, applies the change in
// memory, and writes the whole file back. Rows that fail to parse on
// load are skipped so one corrupt line never takes the ledger down.
type ExpenseRepository struct {
	mu      sync.Mutex
	dataDir string
}

// NewExpenseRepository creates a new ExpenseRepository rooted at
// dataDir.
func NewExpenseRepository(dataDir string) *ExpenseRepository {
	return &ExpenseRepository{dataDir: dataDir}
}

func (r *ExpenseRepository) path(owner string, section domain.Section) string {
	return filepath.Join(r.dataDir, fmt.Sprintf("%s_expenses_%s.csv", section, owner))
}

// Add appends one record to the ledger.
func (r *ExpenseRepository) Add(ctx context.Context, owner string, section domain.Section, expense *domain.Expense) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	expenses, err := r.load(owner, section)
	if err != nil {
		return err
	}
	expenses = append(expenses, *expense)
	return r.save(owner, section, expenses)
}

// AddBatch appends records in one write. Either all of them land on
// disk or, when the write fails, none do.
func (r *ExpenseRepository) AddBatch(ctx context.Context, owner string, section domain.Section, batch []*domain.Expense) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	expenses, err := r.load(owner, section)
	if err != nil {
		return err
	}
	for _, exp := range batch {
		expenses = append(expenses, *exp)
	}
	return r.save(owner, section, expenses)
}

// Update replaces the record carrying expense.ID. Fails with
// domain.ErrExpenseNotFound when the id is absent.
func (r *ExpenseRepository) Update(ctx context.Context, owner string, section domain.Section, expense *domain.Expense) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	expenses, err := r.load(owner, section)
	if err != nil {
		return err
	}
	for i := range expenses {
		if expenses[i].ID == expense.ID {
			expenses[i] = *expense
			return r.save(owner, section, expenses)
		}
	}
	return domain.ErrExpenseNotFound
}

// Delete removes the record carrying id. Fails with
// domain.ErrExpenseNotFound when the id is absent.
func (r *ExpenseRepository) Delete(ctx context.Context, owner string, section domain.Section, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	expenses, err := r.load(owner, section)
	if err != nil {
		return err
	}
	for i := range expenses {
		if expenses[i].ID == id {
			expenses = append(expenses[:i], expenses[i+1:]...)
			return r.save(owner, section, expenses)
		}
	}
	return domain.ErrExpenseNotFound
}

// Query returns a snapshot of the ledger filtered to a year, or to a
// year and month when month is non-zero. Records come back sorted by
// date ascending; records on the same date keep their file order.
func (r *ExpenseRepository) Query(ctx context.Context, owner string, section domain.Section, year, month int) (domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.Snapshot{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	expenses, err := r.load(owner, section)
	if err != nil {
		return domain.Snapshot{}, err
	}

	snap := domain.Snapshot{Section: section, Year: year, Month: month}
	for _, exp := range expenses {
		if exp.Date.Year() != year {
			continue
		}
		if month != 0 && int(exp.Date.Month()) != month {
			continue
		}
		snap.Records = append(snap.Records, exp)
	}
	sort.SliceStable(snap.Records, func(i, j int) bool {
		return snap.Records[i].Date.Before(snap.Records[j].Date)
	})
	return snap, nil
}

// Categories returns the default categories plus every category
// present in the ledger, sorted.
func (r *ExpenseRepository) Categories(ctx context.Context, owner string, section domain.Section) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	expenses, err := r.load(owner, section)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(domain.DefaultCategories))
	for _, c := range domain.DefaultCategories {
		seen[c] = true
	}
	for _, exp := range expenses {
		seen[exp.Category] = true
	}

	categories := make([]string, 0, len(seen))
	for c := range seen {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories, nil
}

func (r *ExpenseRepository) load(owner string, section domain.Section) ([]domain.Expense, error) {
	records, err := readRecords(r.path(owner, section))
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	expenses := make([]domain.Expense, 0, len(records)-1)
	for _, row := range records[1:] {
		exp, ok := parseExpenseRow(row)
		if !ok {
			continue
		}
		expenses = append(expenses, exp)
	}
	return expenses, nil
}

func parseExpenseRow(row []string) (domain.Expense, bool) {
	if len(row) < 5 || row[0] == "" {
		return domain.Expense{}, false
	}
	date, err := time.Parse(domain.DateLayout, row[1])
	if err != nil {
		return domain.Expense{}, false
	}
	amount, err := decimal.NewFromString(row[4])
	if err != nil || amount.IsNegative() {
		return domain.Expense{}, false
	}
	if row[2] == "" {
		return domain.Expense{}, false
	}
	return domain.Expense{
		ID:       row[0],
		Date:     date,
		Category: row[2],
		Note:     row[3],
		Amount:   amount,
	}, true
}

func (r *ExpenseRepository) save(owner string, section domain.Section, expenses []domain.Expense) error {
	rows := make([][]string, len(expenses))
	for i, exp := range expenses {
		rows[i] = []string{
			exp.ID,
			exp.Date.Format(domain.DateLayout),
			exp.Category,
			exp.Note,
			exp.Amount.String(),
		}
	}
	return writeRecords(r.path(owner, section), expenseHeader, rows)
}
