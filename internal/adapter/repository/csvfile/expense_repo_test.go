package csvfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/atharvapisal16/household-ledger/internal/domain"
)

func expense(id, date, category, note, amount string) *domain.Expense {
	d, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		panic(err)
	}
	return &domain.Expense{
		ID:       id,
		Date:     d,
		Category: category,
		Note:     note,
		Amount:   decimal.RequireFromString(amount),
	}
}

func TestExpenseRepository_AddAndQuery(t *testing.T) {
	ctx := context.Background()
	repo := NewExpenseRepository(t.TempDir())

	if err := repo.Add(ctx, "alice", domain.SectionPersonal, expense("a1", "2024-03-15", "Food", "lunch", "12.50")); err != nil {
		t.Fatalf("add: %v", err)
	}

	snap, err := repo.Query(ctx, "alice", domain.SectionPersonal, 2024, 3)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(snap.Records) != 1 {
		t.Fatalf("expected exactly 1 record, got %d", len(snap.Records))
	}

	got := snap.Records[0]
	if got.ID != "a1" || got.Category != "Food" || got.Note != "lunch" {
		t.Errorf("unexpected record %+v", got)
	}
	if !got.Amount.Equal(decimal.RequireFromString("12.50")) {
		t.Errorf("expected amount 12.50, got %s", got.Amount)
	}
}

func TestExpenseRepository_QueryFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewExpenseRepository(t.TempDir())

	seed := []*domain.Expense{
		expense("a", "2024-03-10", "Food", "", "10"),
		expense("b", "2024-03-05", "Rent", "", "500"),
		expense("c", "2024-04-01", "Food", "", "7"),
		expense("d", "2023-12-31", "Misc", "", "1"),
	}
	if err := repo.AddBatch(ctx, "alice", domain.SectionPersonal, seed); err != nil {
		t.Fatalf("add batch: %v", err)
	}

	tests := []struct {
		name        string
		year, month int
		wantIDs     []string
	}{
		{name: "march only", year: 2024, month: 3, wantIDs: []string{"b", "a"}},
		{name: "whole year sorted by date", year: 2024, month: 0, wantIDs: []string{"b", "a", "c"}},
		{name: "previous year", year: 2023, month: 0, wantIDs: []string{"d"}},
		{name: "empty month", year: 2024, month: 7, wantIDs: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := repo.Query(ctx, "alice", domain.SectionPersonal, tt.year, tt.month)
			if err != nil {
				t.Fatalf("query: %v", err)
			}
			if len(snap.Records) != len(tt.wantIDs) {
				t.Fatalf("expected %d records, got %d", len(tt.wantIDs), len(snap.Records))
			}
			for i, id := range tt.wantIDs {
				if snap.Records[i].ID != id {
					t.Errorf("position %d: expected id %s, got %s", i, id, snap.Records[i].ID)
				}
			}
		})
	}
}

func TestExpenseRepository_QuerySameDateKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewExpenseRepository(t.TempDir())

	for i := 0; i < 4; i++ {
		e := expense(fmt.Sprintf("e%d", i), "2024-03-15", "Food", "", "1")
		if err := repo.Add(ctx, "alice", domain.SectionPersonal, e); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	snap, err := repo.Query(ctx, "alice", domain.SectionPersonal, 2024, 3)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	for i := 0; i < 4; i++ {
		if want := fmt.Sprintf("e%d", i); snap.Records[i].ID != want {
			t.Errorf("position %d: expected id %s, got %s", i, want, snap.Records[i].ID)
		}
	}
}

func TestExpenseRepository_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewExpenseRepository(t.TempDir())

	if err := repo.Add(ctx, "alice", domain.SectionFamily, expense("a1", "2024-03-15", "Food", "", "10")); err != nil {
		t.Fatalf("add: %v", err)
	}

	updated := expense("a1", "2024-03-16", "Transport", "bus", "3.20")
	if err := repo.Update(ctx, "alice", domain.SectionFamily, updated); err != nil {
		t.Fatalf("update: %v", err)
	}

	snap, err := repo.Query(ctx, "alice", domain.SectionFamily, 2024, 3)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(snap.Records) != 1 || snap.Records[0].Category != "Transport" {
		t.Fatalf("expected one updated record, got %+v", snap.Records)
	}

	if err := repo.Update(ctx, "alice", domain.SectionFamily, expense("nope", "2024-03-16", "Food", "", "1")); !errors.Is(err, domain.ErrExpenseNotFound) {
		t.Errorf("expected ErrExpenseNotFound for unknown update, got %v", err)
	}

	if err := repo.Delete(ctx, "alice", domain.SectionFamily, "a1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, "alice", domain.SectionFamily, "a1"); !errors.Is(err, domain.ErrExpenseNotFound) {
		t.Errorf("expected ErrExpenseNotFound for second delete, got %v", err)
	}
}

func TestExpenseRepository_LedgersAreIsolated(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo := NewExpenseRepository(dir)

	if err := repo.Add(ctx, "alice", domain.SectionPersonal, expense("a1", "2024-03-15", "Food", "", "10")); err != nil {
		t.Fatalf("add: %v", err)
	}

	for _, probe := range []struct {
		owner   string
		section domain.Section
	}{
		{"alice", domain.SectionFamily},
		{"alice", domain.SectionBusiness},
		{"bob", domain.SectionPersonal},
	} {
		snap, err := repo.Query(ctx, probe.owner, probe.section, 2024, 0)
		if err != nil {
			t.Fatalf("query %s/%s: %v", probe.owner, probe.section, err)
		}
		if !snap.Empty() {
			t.Errorf("expected %s/%s to be empty, got %d records", probe.owner, probe.section, len(snap.Records))
		}
	}

	// One file per (owner, section) pair, named after both.
	if _, err := os.Stat(filepath.Join(dir, "personal_expenses_alice.csv")); err != nil {
		t.Errorf("expected ledger file for alice/personal: %v", err)
	}
}

func TestExpenseRepository_ReopenRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first := NewExpenseRepository(dir)
	records := []*domain.Expense{
		expense("a1", "2024-03-15", "Food", "note, with comma", "12.50"),
		expense("a2", "2024-03-16", "Misc", "", "0"),
	}
	if err := first.AddBatch(ctx, "alice", domain.SectionPersonal, records); err != nil {
		t.Fatalf("add batch: %v", err)
	}

	// A fresh repository instance sees exactly what was written.
	second := NewExpenseRepository(dir)
	snap, err := second.Query(ctx, "alice", domain.SectionPersonal, 2024, 3)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(snap.Records) != 2 {
		t.Fatalf("expected 2 records after reopen, got %d", len(snap.Records))
	}
	if snap.Records[0].Note != "note, with comma" {
		t.Errorf("expected quoted note to survive, got %q", snap.Records[0].Note)
	}
	if !snap.Records[1].Amount.IsZero() {
		t.Errorf("expected zero amount to survive, got %s", snap.Records[1].Amount)
	}
}

func TestExpenseRepository_SkipsMalformedRows(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	content := "id,date,category,note,amount\n" +
		"a1,2024-03-15,Food,lunch,12.50\n" +
		"a2,not-a-date,Food,,1.00\n" +
		"a3,2024-03-16,Food,,-5\n" +
		"a4,2024-03-17,,,1.00\n" +
		"a5,2024-03-18,Misc,,2.00\n"
	path := filepath.Join(dir, "personal_expenses_alice.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	repo := NewExpenseRepository(dir)
	snap, err := repo.Query(ctx, "alice", domain.SectionPersonal, 2024, 3)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(snap.Records) != 2 {
		t.Fatalf("expected the 2 well-formed rows, got %d", len(snap.Records))
	}
	if snap.Records[0].ID != "a1" || snap.Records[1].ID != "a5" {
		t.Errorf("unexpected surviving rows %s and %s", snap.Records[0].ID, snap.Records[1].ID)
	}
}

func TestExpenseRepository_MissingFileReadsEmpty(t *testing.T) {
	repo := NewExpenseRepository(t.TempDir())

	snap, err := repo.Query(context.Background(), "ghost", domain.SectionBusiness, 2024, 0)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if !snap.Empty() {
		t.Errorf("expected empty snapshot for untouched ledger, got %d records", len(snap.Records))
	}
}

func TestExpenseRepository_FailedWriteLeavesFileIntact(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo := NewExpenseRepository(dir)

	if err := repo.Add(ctx, "alice", domain.SectionPersonal, expense("a1", "2024-03-15", "Food", "", "10")); err != nil {
		t.Fatalf("add: %v", err)
	}

	// Make the data directory unwritable so the temp file cannot be
	// created. The existing ledger must stay readable and unchanged.
	if err := os.Chmod(dir, 0o555); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { os.Chmod(dir, 0o755) })

	err := repo.Add(ctx, "alice", domain.SectionPersonal, expense("a2", "2024-03-16", "Food", "", "20"))
	if err == nil {
		t.Skip("running as a user unaffected by directory permissions")
	}

	if err := os.Chmod(dir, 0o755); err != nil {
		t.Fatalf("chmod back: %v", err)
	}
	snap, err := repo.Query(ctx, "alice", domain.SectionPersonal, 2024, 3)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(snap.Records) != 1 || snap.Records[0].ID != "a1" {
		t.Errorf("expected the original record only, got %+v", snap.Records)
	}
}
