package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidUsername = errors.New("invalid username")
	ErrInvalidFullName = errors.New("invalid full name")
	ErrPasswordTooWeak = errors.New("password does not meet requirements")
)

// Registration constants
const (
	MinUsernameLength = 3
	MaxUsernameLength = 64
	MinPasswordLength = 6
	MaxPasswordLength = 128
)

// ValidationError reports the first field of a raw expense record that
// failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// RawRecord is an unvalidated expense row, as read from a form or an import
// file. All fields are raw strings.
type RawRecord struct {
	Date     string
	Category string
	Amount   string
	Note     string
}

// ValidateRecord checks a raw row and builds an Expense from it. Checks run
// in a fixed order (date, amount, category) and only the first failing field
// is reported. The returned expense carries no ID; the ledger store assigns
// one on add.
func ValidateRecord(raw RawRecord) (Expense, *ValidationError) {
	date, err := time.Parse(DateLayout, strings.TrimSpace(raw.Date))
	if err != nil {
		return Expense{}, &ValidationError{Field: "date", Reason: "must be a valid YYYY-MM-DD date"}
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(raw.Amount))
	if err != nil {
		return Expense{}, &ValidationError{Field: "amount", Reason: "must be a decimal number"}
	}
	if amount.IsNegative() {
		return Expense{}, &ValidationError{Field: "amount", Reason: "must not be negative"}
	}

	category := strings.TrimSpace(raw.Category)
	if category == "" {
		return Expense{}, &ValidationError{Field: "category", Reason: "must not be empty"}
	}

	return Expense{
		Date:     date,
		Category: category,
		Amount:   amount,
		Note:     strings.TrimSpace(raw.Note),
	}, nil
}

// RejectedRow pairs a failed import row with its 0-based position in the
// input.
type RejectedRow struct {
	Row int
	Err ValidationError
}

// ValidateBatch validates rows independently: a failure in one row never
// affects sibling rows. Accepted records keep their input order with
// rejected rows simply omitted; each rejection carries the original row
// index.
func ValidateBatch(rows []RawRecord) ([]Expense, []RejectedRow) {
	accepted := make([]Expense, 0, len(rows))
	var rejected []RejectedRow

	for i, raw := range rows {
		exp, verr := ValidateRecord(raw)
		if verr != nil {
			rejected = append(rejected, RejectedRow{Row: i, Err: *verr})
			continue
		}
		accepted = append(accepted, exp)
	}

	return accepted, rejected
}

// ValidateUsername validates a username at registration.
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)

	if len(username) < MinUsernameLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrInvalidUsername, MinUsernameLength)
	}

	if len(username) > MaxUsernameLength {
		return fmt.Errorf("%w: must not exceed %d characters", ErrInvalidUsername, MaxUsernameLength)
	}

	return nil
}

// ValidatePassword validates a password at registration.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrPasswordTooWeak, MinPasswordLength)
	}

	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: must not exceed %d characters", ErrPasswordTooWeak, MaxPasswordLength)
	}

	return nil
}

// ValidateFullName validates the display name at registration.
func ValidateFullName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: must not be empty", ErrInvalidFullName)
	}
	return nil
}
