package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Expense metrics
	ExpensesCreated prometheus.Counter
	ExpensesUpdated prometheus.Counter
	ExpensesDeleted prometheus.Counter
	ExpenseAmount   prometheus.Histogram

	// Import/export metrics
	RowsImported prometheus.Counter
	RowsRejected prometheus.Counter
	Exports      *prometheus.CounterVec

	// Report metrics
	ReportsGenerated *prometheus.CounterVec

	// Account metrics
	AccountsRegistered prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Expense metrics
		ExpensesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_expenses_created_total",
			Help: "Total number of expense records created",
		}),
		ExpensesUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_expenses_updated_total",
			Help: "Total number of expense records updated",
		}),
		ExpensesDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_expenses_deleted_total",
			Help: "Total number of expense records deleted",
		}),
		ExpenseAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ledger_expense_amount",
			Help:    "Recorded expense amounts",
			Buckets: []float64{1, 5, 10, 50, 100, 500, 1000, 5000},
		}),

		// Import/export metrics
		RowsImported: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_import_rows_accepted_total",
			Help: "Total number of imported rows accepted",
		}),
		RowsRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_import_rows_rejected_total",
			Help: "Total number of imported rows rejected by validation",
		}),
		Exports: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_exports_total",
				Help: "Total number of CSV exports by outcome",
			},
			[]string{"status"},
		),

		// Report metrics
		ReportsGenerated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_reports_generated_total",
				Help: "Total number of reports generated by kind",
			},
			[]string{"kind"},
		),

		// Account metrics
		AccountsRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_accounts_registered_total",
			Help: "Total number of accounts registered",
		}),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledger_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Authentication metrics
		AuthAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_auth_attempts_total",
				Help: "Total authentication attempts by status",
			},
			[]string{"status"},
		),
	}
}
