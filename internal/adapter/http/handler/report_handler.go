package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/atharvapisal16/household-ledger/internal/adapter/http/dto"
	"github.com/atharvapisal16/household-ledger/internal/analytics"
	"github.com/atharvapisal16/household-ledger/internal/domain"
	"github.com/atharvapisal16/household-ledger/internal/infrastructure/metrics"
)

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	Summary(ctx context.Context, owner string, section domain.Section, year, month int) (analytics.Summary, error)
	CategoryTotals(ctx context.Context, owner string, section domain.Section, year, month int) (map[string]decimal.Decimal, error)
	DailyTrend(ctx context.Context, owner string, section domain.Section, year, month int) ([]analytics.DailyTotal, error)
	Breakdown(ctx context.Context, owner string, section domain.Section, year, month int) (map[string]decimal.Decimal, error)
	ExportCSV(ctx context.Context, owner string, section domain.Section, year, month int) (string, error)
}

// ReportHandler handles report and export HTTP requests.
type ReportHandler struct {
	reportUC ReportService
	metrics  *metrics.Metrics
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService, m *metrics.Metrics) *ReportHandler {
	return &ReportHandler{reportUC: reportUC, metrics: m}
}

func (h *ReportHandler) countReport(kind string) {
	if h.metrics != nil {
		h.metrics.ReportsGenerated.WithLabelValues(kind).Inc()
	}
}

// Summary returns the headline figures of a period.
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	owner, section, ok := requestScope(w, r)
	if !ok {
		return
	}

	year, month := periodFromQuery(r)
	summary, err := h.reportUC.Summary(r.Context(), owner, section, year, month)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute summary", err.Error())
		return
	}

	h.countReport("summary")
	writeJSON(w, http.StatusOK, dto.SummaryFromAnalytics(summary))
}

// CategoryTotals returns per-category sums of a period.
func (h *ReportHandler) CategoryTotals(w http.ResponseWriter, r *http.Request) {
	owner, section, ok := requestScope(w, r)
	if !ok {
		return
	}

	year, month := periodFromQuery(r)
	totals, err := h.reportUC.CategoryTotals(r.Context(), owner, section, year, month)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute category totals", err.Error())
		return
	}

	h.countReport("categories")
	writeJSON(w, http.StatusOK, totals)
}

// DailyTrend returns per-day totals of a period, ascending by date.
func (h *ReportHandler) DailyTrend(w http.ResponseWriter, r *http.Request) {
	owner, section, ok := requestScope(w, r)
	if !ok {
		return
	}

	year, month := periodFromQuery(r)
	trend, err := h.reportUC.DailyTrend(r.Context(), owner, section, year, month)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute daily trend", err.Error())
		return
	}

	h.countReport("daily")
	writeJSON(w, http.StatusOK, dto.DailyTrendFromAnalytics(trend))
}

// Breakdown returns each category's percentage share of a period.
func (h *ReportHandler) Breakdown(w http.ResponseWriter, r *http.Request) {
	owner, section, ok := requestScope(w, r)
	if !ok {
		return
	}

	year, month := periodFromQuery(r)
	breakdown, err := h.reportUC.Breakdown(r.Context(), owner, section, year, month)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute breakdown", err.Error())
		return
	}

	h.countReport("breakdown")
	writeJSON(w, http.StatusOK, breakdown)
}

// Export renders the period's records as a CSV download. An empty
// period is a 404 rather than an empty file.
func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	owner, section, ok := requestScope(w, r)
	if !ok {
		return
	}

	year, month := periodFromQuery(r)
	out, err := h.reportUC.ExportCSV(r.Context(), owner, section, year, month)
	if err != nil {
		if h.metrics != nil {
			h.metrics.Exports.WithLabelValues("failure").Inc()
		}
		writeError(w, mapDomainError(err), "failed to export", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.Exports.WithLabelValues("success").Inc()
	}

	filename := fmt.Sprintf("%s_%d", section, year)
	if month != 0 {
		filename = fmt.Sprintf("%s_%02d", filename, month)
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+".csv"))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(out))
}
