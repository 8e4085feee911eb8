package usecase

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
	"time"

	"github.com/atharvapisal16/household-ledger/internal/domain"
)

// UserUseCase handles account registration and login.
type UserUseCase struct {
	credRepo CredentialRepository
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(credRepo CredentialRepository) *UserUseCase {
	return &UserUseCase{credRepo: credRepo}
}

// RegisterInput represents input for registering an account.
type RegisterInput struct {
	Username string
	FullName string
	Password string
}

// Register creates a new account with a hashed password. Registering a
// username that already exists fails with domain.ErrAccountExists.
func (uc *UserUseCase) Register(ctx context.Context, input RegisterInput) (*domain.Account, error) {
	username := strings.TrimSpace(input.Username)

	if err := domain.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := domain.ValidateFullName(input.FullName); err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	account := &domain.Account{
		Username:     username,
		FullName:     strings.TrimSpace(input.FullName),
		PasswordHash: HashPassword(input.Password),
		CreatedAt:    time.Now().UTC(),
	}

	if err := uc.credRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	// Don't return the hash
	out := *account
	out.PasswordHash = ""
	return &out, nil
}

// Credentials represents a login attempt.
type Credentials struct {
	Username string
	Password string
}

// Authenticate verifies a username/password pair. An unknown username and a
// wrong password are indistinguishable to the caller: both fail with
// domain.ErrInvalidCredentials.
func (uc *UserUseCase) Authenticate(ctx context.Context, creds Credentials) (*domain.Account, error) {
	account, err := uc.credRepo.GetByUsername(ctx, strings.TrimSpace(creds.Username))
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !VerifyPassword(account.PasswordHash, creds.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	out := *account
	out.PasswordHash = ""
	return &out, nil
}

// HashPassword returns the SHA-256 hex digest of a password. The digest is
// deterministic so stored hashes can be compared by exact match.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// VerifyPassword compares a stored digest against the digest of a login
// attempt. Comparison is exact-match and case-sensitive.
func VerifyPassword(storedHash, password string) bool {
	digest := HashPassword(password)
	return subtle.ConstantTimeCompare([]byte(storedHash), []byte(digest)) == 1
}
