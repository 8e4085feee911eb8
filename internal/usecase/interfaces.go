package usecase

import (
	"context"

	"github.com/atharvapisal16/household-ledger/internal/domain"
)

// CredentialRepository defines data access for account credentials.
type CredentialRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
}

// ExpenseRepository defines data access for one ledger store per
// (owner, section) pair. Owners never share records; each section's ledger
// is read and written independently.
type ExpenseRepository interface {
	Add(ctx context.Context, owner string, section domain.Section, expense *domain.Expense) error
	AddBatch(ctx context.Context, owner string, section domain.Section, expenses []*domain.Expense) error
	Update(ctx context.Context, owner string, section domain.Section, expense *domain.Expense) error
	Delete(ctx context.Context, owner string, section domain.Section, id string) error
	Query(ctx context.Context, owner string, section domain.Section, year, month int) (domain.Snapshot, error)
	Categories(ctx context.Context, owner string, section domain.Section) ([]string, error)
}

// IDGenerator generates unique record IDs.
type IDGenerator interface {
	Generate() string
}
