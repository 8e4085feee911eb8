package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/atharvapisal16/household-ledger/internal/analytics"
	"github.com/atharvapisal16/household-ledger/internal/domain"
	"github.com/atharvapisal16/household-ledger/internal/usecase"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// AccountResponse represents an account in API responses. The password
// hash never leaves the server.
type AccountResponse struct {
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		Username:  a.Username,
		FullName:  a.FullName,
		CreatedAt: a.CreatedAt,
	}
}

// TokenResponse represents a successful login.
type TokenResponse struct {
	Token   string           `json:"token"`
	Account *AccountResponse `json:"account"`
}

// ExpenseResponse represents an expense record in API responses.
type ExpenseResponse struct {
	ID       string          `json:"id"`
	Date     string          `json:"date"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Note     string          `json:"note,omitempty"`
}

// ExpenseFromDomain converts a domain expense to a response.
func ExpenseFromDomain(e *domain.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:       e.ID,
		Date:     e.Date.Format(domain.DateLayout),
		Category: e.Category,
		Amount:   e.Amount,
		Note:     e.Note,
	}
}

// SnapshotResponse represents a filtered ledger view.
type SnapshotResponse struct {
	Section  domain.Section     `json:"section"`
	Year     int                `json:"year"`
	Month    int                `json:"month"`
	Total    decimal.Decimal    `json:"total"`
	Expenses []*ExpenseResponse `json:"expenses"`
}

// SnapshotFromDomain converts a domain snapshot to a response.
func SnapshotFromDomain(s domain.Snapshot) *SnapshotResponse {
	expenses := make([]*ExpenseResponse, len(s.Records))
	for i := range s.Records {
		expenses[i] = ExpenseFromDomain(&s.Records[i])
	}
	return &SnapshotResponse{
		Section:  s.Section,
		Year:     s.Year,
		Month:    s.Month,
		Total:    s.Total(),
		Expenses: expenses,
	}
}

// RejectedRowResponse describes one import row that failed validation.
type RejectedRowResponse struct {
	Row    int    `json:"row"`
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ImportResponse represents the outcome of a bulk import.
type ImportResponse struct {
	Imported int                   `json:"imported"`
	Rejected []RejectedRowResponse `json:"rejected"`
}

// ImportFromResult converts an import result to a response.
func ImportFromResult(res usecase.ImportResult) *ImportResponse {
	rejected := make([]RejectedRowResponse, len(res.Rejected))
	for i, row := range res.Rejected {
		rejected[i] = RejectedRowResponse{
			Row:    row.Row,
			Field:  row.Err.Field,
			Reason: row.Err.Reason,
		}
	}
	return &ImportResponse{
		Imported: res.Imported,
		Rejected: rejected,
	}
}

// SummaryResponse represents the headline figures of a period.
type SummaryResponse struct {
	Total            decimal.Decimal `json:"total"`
	Transactions     int             `json:"transactions"`
	DaysRecorded     int             `json:"days_recorded"`
	AveragePerDay    decimal.Decimal `json:"average_per_day"`
	TopCategory      string          `json:"top_category,omitempty"`
	TopCategoryTotal decimal.Decimal `json:"top_category_total"`
}

// SummaryFromAnalytics converts a computed summary to a response.
func SummaryFromAnalytics(s analytics.Summary) *SummaryResponse {
	return &SummaryResponse{
		Total:            s.Total,
		Transactions:     s.Transactions,
		DaysRecorded:     s.DaysRecorded,
		AveragePerDay:    s.AveragePerDay,
		TopCategory:      s.TopCategory,
		TopCategoryTotal: s.TopCategoryTotal,
	}
}

// DailyTotalResponse represents one day of the spending trend.
type DailyTotalResponse struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
}

// DailyTrendFromAnalytics converts computed daily totals to responses.
func DailyTrendFromAnalytics(trend []analytics.DailyTotal) []DailyTotalResponse {
	result := make([]DailyTotalResponse, len(trend))
	for i, day := range trend {
		result[i] = DailyTotalResponse{
			Date:  day.Date.Format(domain.DateLayout),
			Total: day.Total,
		}
	}
	return result
}

// CategoriesResponse represents the known categories of a section.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}
