package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the fixed calendar date convention used everywhere: store
// files, import files, exports, and the API (ISO 8601).
const DateLayout = "2006-01-02"

// Expense is a single expense record. The ID is unique within a section and
// immutable, as is the section the record belongs to; the remaining fields
// may be replaced by an update.
type Expense struct {
	ID       string
	Date     time.Time
	Category string
	Amount   decimal.Decimal
	Note     string
}

// Snapshot is an immutable point-in-time view of one section's ledger,
// filtered to a year and optionally a month. Records are ordered by date
// ascending with ties kept in insertion order. Snapshots are the sole input
// to aggregation and export; they are recomputed fresh per query and never
// mutated.
type Snapshot struct {
	Section Section
	Year    int
	Month   int // 0 means the whole year
	Records []Expense
}

// Empty reports whether the snapshot contains no records.
func (s Snapshot) Empty() bool {
	return len(s.Records) == 0
}

// Total returns the sum of all record amounts in the snapshot.
func (s Snapshot) Total() decimal.Decimal {
	total := decimal.Zero
	for _, r := range s.Records {
		total = total.Add(r.Amount)
	}
	return total
}

// DefaultCategories seed the category picker of a section that has no
// records yet.
var DefaultCategories = []string{
	"Food", "Transport", "Rent", "Utilities", "Entertainment", "Misc",
}
