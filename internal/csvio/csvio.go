// Package csvio reads and writes the CSV interchange format for expense
// records: comma-delimited, ISO 8601 dates, dot-separated decimal amounts
// with no currency symbols.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/atharvapisal16/household-ledger/internal/domain"
)

// ErrMissingHeader is returned when an import file lacks a required column.
var ErrMissingHeader = errors.New("import header missing required column")

// exportColumns is the fixed export column order.
var exportColumns = []string{"date", "category", "amount", "note"}

// ParseImport reads an import file into raw records. The first row must be
// a header naming at least date, category, and amount columns (note is
// optional); matching is case-insensitive and the legacy aliases "cost"
// (amount) and "item"/"description" (note) are accepted. Rows are not
// validated here; that is the validation layer's job.
func ParseImport(r io.Reader) ([]domain.RawRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty file", ErrMissingHeader)
	}
	if err != nil {
		return nil, fmt.Errorf("read import header: %w", err)
	}

	cols := columnIndex(header)
	dateCol, ok := cols["date"]
	if !ok {
		return nil, fmt.Errorf("%w: date", ErrMissingHeader)
	}
	categoryCol, ok := cols["category"]
	if !ok {
		return nil, fmt.Errorf("%w: category", ErrMissingHeader)
	}
	amountCol, ok := firstColumn(cols, "amount", "cost")
	if !ok {
		return nil, fmt.Errorf("%w: amount", ErrMissingHeader)
	}
	noteCol, hasNote := firstColumn(cols, "note", "description", "item")

	var rows []domain.RawRecord
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read import row: %w", err)
		}

		raw := domain.RawRecord{
			Date:     field(fields, dateCol),
			Category: field(fields, categoryCol),
			Amount:   field(fields, amountCol),
		}
		if hasNote {
			raw.Note = field(fields, noteCol)
		}
		rows = append(rows, raw)
	}

	return rows, nil
}

// Export writes a snapshot in the fixed column order date, category, amount,
// note, with amounts rendered at two decimal places. An empty snapshot is
// refused with domain.ErrEmptySnapshot.
func Export(w io.Writer, snap domain.Snapshot) error {
	if snap.Empty() {
		return domain.ErrEmptySnapshot
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportColumns); err != nil {
		return fmt.Errorf("write export header: %w", err)
	}

	for _, rec := range snap.Records {
		row := []string{
			rec.Date.Format(domain.DateLayout),
			rec.Category,
			rec.Amount.StringFixed(2),
			rec.Note,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write export row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush export: %w", err)
	}
	return nil
}

// ExportString renders a snapshot to a CSV string.
func ExportString(snap domain.Snapshot) (string, error) {
	var sb strings.Builder
	if err := Export(&sb, snap); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if _, seen := cols[name]; !seen {
			cols[name] = i
		}
	}
	return cols
}

func firstColumn(cols map[string]int, names ...string) (int, bool) {
	for _, name := range names {
		if i, ok := cols[name]; ok {
			return i, true
		}
	}
	return 0, false
}

func field(fields []string, i int) string {
	if i >= len(fields) {
		return ""
	}
	return fields[i]
}
