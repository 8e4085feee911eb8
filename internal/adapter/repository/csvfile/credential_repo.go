package csvfile

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/atharvapisal16/household-ledger/internal/domain"
)

const usersFile = "users.csv"

var userHeader = []string{"username", "password_hash", "full_name", "created_at"}

// CredentialRepository stores accounts in a single users.csv file. The
// whole file is re-read on every lookup and rewritten on every create,
// so the file on disk is always the source of truth.
type CredentialRepository struct {
	mu      sync.Mutex
	dataDir string
}

// NewCredentialRepository creates a new CredentialRepository rooted at
// dataDir.
func NewCredentialRepository(dataDir string) *CredentialRepository {
	return &CredentialRepository{dataDir: dataDir}
}

func (r *CredentialRepository) path() string {
	return filepath.Join(r.dataDir, usersFile)
}

// Create appends a new account. Fails with domain.ErrAccountExists if
// the username is already taken.
func (r *CredentialRepository) Create(ctx context.Context, account *domain.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	accounts, err := r.load()
	if err != nil {
		return err
	}
	for _, existing := range accounts {
		if existing.Username == account.Username {
			return domain.ErrAccountExists
		}
	}

	accounts = append(accounts, *account)
	return r.save(accounts)
}

// GetByUsername looks an account up by its exact username. Fails with
// domain.ErrAccountNotFound when absent.
func (r *CredentialRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	accounts, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].Username == username {
			out := accounts[i]
			return &out, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

// load reads every well-formed account row. Malformed rows are skipped
// rather than failing the whole file.
func (r *CredentialRepository) load() ([]domain.Account, error) {
	records, err := readRecords(r.path())
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	accounts := make([]domain.Account, 0, len(records)-1)
	for _, row := range records[1:] {
		if len(row) < 4 || row[0] == "" || row[1] == "" {
			continue
		}
		createdAt, err := time.Parse(time.RFC3339, row[3])
		if err != nil {
			continue
		}
		accounts = append(accounts, domain.Account{
			Username:     row[0],
			PasswordHash: row[1],
			FullName:     row[2],
			CreatedAt:    createdAt,
		})
	}
	return accounts, nil
}

func (r *CredentialRepository) save(accounts []domain.Account) error {
	rows := make([][]string, len(accounts))
	for i, acc := range accounts {
		rows[i] = []string{
			acc.Username,
			acc.PasswordHash,
			acc.FullName,
			acc.CreatedAt.UTC().Format(time.RFC3339),
		}
	}
	return writeRecords(r.path(), userHeader, rows)
}
