package dto

import (
	"github.com/atharvapisal16/household-ledger/internal/domain"
	"github.com/atharvapisal16/household-ledger/internal/usecase"
)

// RegisterRequest represents a request to register an account.
type RegisterRequest struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Username: r.Username,
		FullName: r.FullName,
		Password: r.Password,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ToCredentials converts to use case credentials.
func (r *LoginRequest) ToCredentials() usecase.Credentials {
	return usecase.Credentials{
		Username: r.Username,
		Password: r.Password,
	}
}

// ExpenseRequest represents a request to create or update an expense
// record. All fields arrive as strings and go through validation.
type ExpenseRequest struct {
	Date     string `json:"date"`
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Note     string `json:"note"`
}

// ToRawRecord converts to an unvalidated domain record.
func (r *ExpenseRequest) ToRawRecord() domain.RawRecord {
	return domain.RawRecord{
		Date:     r.Date,
		Category: r.Category,
		Amount:   r.Amount,
		Note:     r.Note,
	}
}

// ImportRequest represents a bulk import of expense rows.
type ImportRequest struct {
	Rows []ExpenseRequest `json:"rows"`
}

// ToRawRecords converts to unvalidated domain records.
func (r *ImportRequest) ToRawRecords() []domain.RawRecord {
	rows := make([]domain.RawRecord, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = row.ToRawRecord()
	}
	return rows
}
