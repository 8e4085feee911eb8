package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/atharvapisal16/household-ledger/internal/domain"
	"github.com/atharvapisal16/household-ledger/internal/usecase"
	"github.com/atharvapisal16/household-ledger/internal/usecase/mocks"
)

const testOwner = "alice"

func newExpenseUseCase() (*usecase.ExpenseUseCase, *mocks.FakeExpenseRepository) {
	repo := mocks.NewFakeExpenseRepository()
	return usecase.NewExpenseUseCase(repo, mocks.NewFakeIDGenerator()), repo
}

func TestExpenseUseCase_Add(t *testing.T) {
	tests := []struct {
		name           string
		section        domain.Section
		raw            domain.RawRecord
		wantErr        error
		wantValidation bool
	}{
		{
			name:    "valid record",
			section: domain.SectionPersonal,
			raw:     domain.RawRecord{Date: "2024-03-15", Category: "Food", Amount: "12.50", Note: "lunch"},
		},
		{
			name:    "zero amount allowed",
			section: domain.SectionPersonal,
			raw:     domain.RawRecord{Date: "2024-03-15", Category: "Misc", Amount: "0"},
		},
		{
			name:    "invalid section",
			section: domain.Section("savings"),
			raw:     domain.RawRecord{Date: "2024-03-15", Category: "Food", Amount: "12.50"},
			wantErr: domain.ErrInvalidSection,
		},
		{
			name:           "bad date",
			section:        domain.SectionFamily,
			raw:            domain.RawRecord{Date: "15/03/2024", Category: "Food", Amount: "12.50"},
			wantValidation: true,
		},
		{
			name:           "negative amount",
			section:        domain.SectionFamily,
			raw:            domain.RawRecord{Date: "2024-03-15", Category: "Food", Amount: "-1"},
			wantValidation: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newExpenseUseCase()

			expense, err := uc.Add(context.Background(), testOwner, tt.section, tt.raw)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if tt.wantValidation {
				var verr *domain.ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("expected a validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if expense.ID == "" {
				t.Error("expected a fresh identifier to be assigned")
			}
		})
	}
}

func TestExpenseUseCase_AddAssignsDistinctIDs(t *testing.T) {
	ctx := context.Background()
	uc, _ := newExpenseUseCase()
	raw := domain.RawRecord{Date: "2024-03-15", Category: "Food", Amount: "5.00"}

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		expense, err := uc.Add(ctx, testOwner, domain.SectionPersonal, raw)
		if err != nil {
			t.Fatalf("add: %v", err)
		}
		if seen[expense.ID] {
			t.Fatalf("identifier %q assigned twice", expense.ID)
		}
		seen[expense.ID] = true
	}
}

func TestExpenseUseCase_Update(t *testing.T) {
	ctx := context.Background()
	uc, _ := newExpenseUseCase()

	created, err := uc.Add(ctx, testOwner, domain.SectionPersonal, domain.RawRecord{
		Date: "2024-03-15", Category: "Food", Amount: "12.50", Note: "lunch",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	updated, err := uc.Update(ctx, testOwner, domain.SectionPersonal, created.ID, domain.RawRecord{
		Date: "2024-03-16", Category: "Transport", Amount: "3.20", Note: "bus",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != created.ID {
		t.Errorf("expected identifier %q to be preserved, got %q", created.ID, updated.ID)
	}
	if updated.Category != "Transport" {
		t.Errorf("expected category Transport, got %q", updated.Category)
	}

	_, err = uc.Update(ctx, testOwner, domain.SectionPersonal, "missing", domain.RawRecord{
		Date: "2024-03-16", Category: "Food", Amount: "1.00",
	})
	if !errors.Is(err, domain.ErrExpenseNotFound) {
		t.Errorf("expected ErrExpenseNotFound for an unknown id, got %v", err)
	}
}

func TestExpenseUseCase_Delete(t *testing.T) {
	ctx := context.Background()
	uc, _ := newExpenseUseCase()

	created, err := uc.Add(ctx, testOwner, domain.SectionPersonal, domain.RawRecord{
		Date: "2024-03-15", Category: "Food", Amount: "12.50",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := uc.Delete(ctx, testOwner, domain.SectionPersonal, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := uc.Delete(ctx, testOwner, domain.SectionPersonal, created.ID); !errors.Is(err, domain.ErrExpenseNotFound) {
		t.Errorf("expected ErrExpenseNotFound on second delete, got %v", err)
	}

	snap, err := uc.Query(ctx, testOwner, domain.SectionPersonal, 2024, 0)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if !snap.Empty() {
		t.Errorf("expected an empty snapshot after delete, got %d records", len(snap.Records))
	}
}

func TestExpenseUseCase_Import(t *testing.T) {
	ctx := context.Background()
	uc, _ := newExpenseUseCase()

	rows := []domain.RawRecord{
		{Date: "2024-03-01", Category: "Food", Amount: "10.00"},
		{Date: "not-a-date", Category: "Food", Amount: "10.00"},
		{Date: "2024-03-02", Category: "Transport", Amount: "5.50"},
		{Date: "2024-03-03", Category: "Rent", Amount: "-500"},
		{Date: "2024-03-04", Category: "Misc", Amount: "0"},
	}

	result, err := uc.Import(ctx, testOwner, domain.SectionFamily, rows)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Imported != 3 {
		t.Errorf("expected 3 imported, got %d", result.Imported)
	}
	if len(result.Rejected) != 2 {
		t.Fatalf("expected 2 rejected rows, got %d", len(result.Rejected))
	}
	if result.Rejected[0].Row != 1 || result.Rejected[1].Row != 3 {
		t.Errorf("expected rejections at rows 1 and 3, got %d and %d",
			result.Rejected[0].Row, result.Rejected[1].Row)
	}

	snap, err := uc.Query(ctx, testOwner, domain.SectionFamily, 2024, 3)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(snap.Records) != 3 {
		t.Errorf("expected 3 persisted records, got %d", len(snap.Records))
	}
}

func TestExpenseUseCase_ImportAllRowsInvalid(t *testing.T) {
	uc, repo := newExpenseUseCase()
	repo.AddBatchFunc = func(ctx context.Context, owner string, section domain.Section, expenses []*domain.Expense) error {
		t.Fatal("AddBatch must not be called when no rows are accepted")
		return nil
	}

	rows := []domain.RawRecord{
		{Date: "bad", Category: "Food", Amount: "1"},
		{Date: "2024-03-01", Category: "", Amount: "1"},
	}

	result, err := uc.Import(context.Background(), testOwner, domain.SectionPersonal, rows)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Imported != 0 {
		t.Errorf("expected 0 imported, got %d", result.Imported)
	}
	if len(result.Rejected) != 2 {
		t.Errorf("expected 2 rejected rows, got %d", len(result.Rejected))
	}
}

func TestExpenseUseCase_ImportStoreFailure(t *testing.T) {
	uc, repo := newExpenseUseCase()
	storeErr := errors.New("disk full")
	repo.AddBatchFunc = func(ctx context.Context, owner string, section domain.Section, expenses []*domain.Expense) error {
		return storeErr
	}

	rows := []domain.RawRecord{
		{Date: "2024-03-01", Category: "Food", Amount: "10.00"},
	}

	_, err := uc.Import(context.Background(), testOwner, domain.SectionPersonal, rows)
	if !errors.Is(err, storeErr) {
		t.Errorf("expected the store error to surface, got %v", err)
	}
}

func TestExpenseUseCase_Query(t *testing.T) {
	ctx := context.Background()
	uc, _ := newExpenseUseCase()

	seed := []domain.RawRecord{
		{Date: "2024-03-10", Category: "Food", Amount: "10.00"},
		{Date: "2024-03-05", Category: "Rent", Amount: "500.00"},
		{Date: "2024-04-01", Category: "Food", Amount: "7.00"},
		{Date: "2023-12-31", Category: "Misc", Amount: "1.00"},
	}
	for _, raw := range seed {
		if _, err := uc.Add(ctx, testOwner, domain.SectionPersonal, raw); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	tests := []struct {
		name        string
		year, month int
		wantCount   int
		wantErr     error
	}{
		{name: "single month", year: 2024, month: 3, wantCount: 2},
		{name: "whole year", year: 2024, month: 0, wantCount: 3},
		{name: "empty month", year: 2024, month: 6, wantCount: 0},
		{name: "month out of range", year: 2024, month: 13, wantErr: usecase.ErrInvalidPeriod},
		{name: "negative month", year: 2024, month: -1, wantErr: usecase.ErrInvalidPeriod},
		{name: "year out of range", year: 0, month: 1, wantErr: usecase.ErrInvalidPeriod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := uc.Query(ctx, testOwner, domain.SectionPersonal, tt.year, tt.month)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(snap.Records) != tt.wantCount {
				t.Errorf("expected %d records, got %d", tt.wantCount, len(snap.Records))
			}
			for i := 1; i < len(snap.Records); i++ {
				if snap.Records[i].Date.Before(snap.Records[i-1].Date) {
					t.Errorf("records out of date order at index %d", i)
				}
			}
		})
	}
}

func TestExpenseUseCase_QueryIsolatesOwnersAndSections(t *testing.T) {
	ctx := context.Background()
	uc, _ := newExpenseUseCase()
	raw := domain.RawRecord{Date: "2024-03-15", Category: "Food", Amount: "9.99"}

	if _, err := uc.Add(ctx, "alice", domain.SectionPersonal, raw); err != nil {
		t.Fatalf("add: %v", err)
	}

	for _, probe := range []struct {
		owner   string
		section domain.Section
	}{
		{"alice", domain.SectionFamily},
		{"bob", domain.SectionPersonal},
	} {
		snap, err := uc.Query(ctx, probe.owner, probe.section, 2024, 0)
		if err != nil {
			t.Fatalf("query %s/%s: %v", probe.owner, probe.section, err)
		}
		if !snap.Empty() {
			t.Errorf("expected %s/%s ledger to be empty, got %d records",
				probe.owner, probe.section, len(snap.Records))
		}
	}
}

func TestExpenseUseCase_Categories(t *testing.T) {
	ctx := context.Background()
	uc, _ := newExpenseUseCase()

	if _, err := uc.Add(ctx, testOwner, domain.SectionPersonal, domain.RawRecord{
		Date: "2024-03-15", Category: "Books", Amount: "20.00",
	}); err != nil {
		t.Fatalf("add: %v", err)
	}

	categories, err := uc.Categories(ctx, testOwner, domain.SectionPersonal)
	if err != nil {
		t.Fatalf("categories: %v", err)
	}

	want := map[string]bool{"Books": false}
	for _, c := range domain.DefaultCategories {
		want[c] = false
	}
	for _, c := range categories {
		if _, ok := want[c]; !ok {
			t.Errorf("unexpected category %q", c)
		}
		want[c] = true
	}
	for c, found := range want {
		if !found {
			t.Errorf("missing category %q", c)
		}
	}
}

func TestExpenseUseCase_AmountPrecision(t *testing.T) {
	ctx := context.Background()
	uc, _ := newExpenseUseCase()

	// 0.1 + 0.2 style sums stay exact with decimal arithmetic.
	for _, amount := range []string{"0.10", "0.20"} {
		if _, err := uc.Add(ctx, testOwner, domain.SectionPersonal, domain.RawRecord{
			Date: "2024-03-15", Category: "Misc", Amount: amount,
		}); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	snap, err := uc.Query(ctx, testOwner, domain.SectionPersonal, 2024, 3)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if want := decimal.RequireFromString("0.30"); !snap.Total().Equal(want) {
		t.Errorf("expected total 0.30, got %s", snap.Total())
	}
}
