package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atharvapisal16/household-ledger/internal/adapter/http/dto"
	"github.com/atharvapisal16/household-ledger/internal/adapter/http/middleware"
	"github.com/atharvapisal16/household-ledger/internal/domain"
	"github.com/atharvapisal16/household-ledger/internal/infrastructure/metrics"
	"github.com/atharvapisal16/household-ledger/internal/usecase"
)

// ExpenseService defines the behavior needed by ExpenseHandler.
type ExpenseService interface {
	Add(ctx context.Context, owner string, section domain.Section, raw domain.RawRecord) (*domain.Expense, error)
	Update(ctx context.Context, owner string, section domain.Section, id string, raw domain.RawRecord) (*domain.Expense, error)
	Delete(ctx context.Context, owner string, section domain.Section, id string) error
	Import(ctx context.Context, owner string, section domain.Section, rows []domain.RawRecord) (usecase.ImportResult, error)
	Query(ctx context.Context, owner string, section domain.Section, year, month int) (domain.Snapshot, error)
	Categories(ctx context.Context, owner string, section domain.Section) ([]string, error)
}

// ExpenseHandler handles ledger record HTTP requests.
type ExpenseHandler struct {
	expenseUC ExpenseService
	metrics   *metrics.Metrics
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseUC ExpenseService, m *metrics.Metrics) *ExpenseHandler {
	return &ExpenseHandler{expenseUC: expenseUC, metrics: m}
}

// requestScope resolves the authenticated owner and the section from
// the URL. The section is parsed leniently; an unknown name is a 400.
func requestScope(w http.ResponseWriter, r *http.Request) (owner string, section domain.Section, ok bool) {
	account, found := middleware.GetAccountFromContext(r.Context())
	if !found {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return "", "", false
	}

	section, err := domain.ParseSection(chi.URLParam(r, "section"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown section", chi.URLParam(r, "section"))
		return "", "", false
	}
	return account.Username, section, true
}

// Create adds a new record to the section's ledger.
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, section, ok := requestScope(w, r)
	if !ok {
		return
	}

	var req dto.ExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	expense, err := h.expenseUC.Add(r.Context(), owner, section, req.ToRawRecord())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to add expense", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.ExpensesCreated.Inc()
		h.metrics.ExpenseAmount.Observe(expense.Amount.InexactFloat64())
	}
	writeJSON(w, http.StatusCreated, dto.ExpenseFromDomain(expense))
}

// Update replaces the fields of an existing record.
func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	owner, section, ok := requestScope(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing expense ID", "")
		return
	}

	var req dto.ExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	expense, err := h.expenseUC.Update(r.Context(), owner, section, id, req.ToRawRecord())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update expense", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.ExpensesUpdated.Inc()
	}
	writeJSON(w, http.StatusOK, dto.ExpenseFromDomain(expense))
}

// Delete removes a record permanently.
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, section, ok := requestScope(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing expense ID", "")
		return
	}

	if err := h.expenseUC.Delete(r.Context(), owner, section, id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete expense", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.ExpensesDeleted.Inc()
	}
	w.WriteHeader(http.StatusNoContent)
}

// List returns the section's records filtered by year and month.
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, section, ok := requestScope(w, r)
	if !ok {
		return
	}

	year, month := periodFromQuery(r)
	snap, err := h.expenseUC.Query(r.Context(), owner, section, year, month)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list expenses", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SnapshotFromDomain(snap))
}

// Import validates and persists a batch of rows. Bad rows are reported
// back with their index; they never abort the batch.
func (h *ExpenseHandler) Import(w http.ResponseWriter, r *http.Request) {
	owner, section, ok := requestScope(w, r)
	if !ok {
		return
	}

	var req dto.ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.expenseUC.Import(r.Context(), owner, section, req.ToRawRecords())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to import expenses", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.RowsImported.Add(float64(result.Imported))
		h.metrics.RowsRejected.Add(float64(len(result.Rejected)))
	}
	writeJSON(w, http.StatusOK, dto.ImportFromResult(result))
}

// Categories returns the known categories of the section.
func (h *ExpenseHandler) Categories(w http.ResponseWriter, r *http.Request) {
	owner, section, ok := requestScope(w, r)
	if !ok {
		return
	}

	categories, err := h.expenseUC.Categories(r.Context(), owner, section)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list categories", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CategoriesResponse{Categories: categories})
}
