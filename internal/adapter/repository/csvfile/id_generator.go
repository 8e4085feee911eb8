package csvfile

import (
	"github.com/oklog/ulid/v2"
)

// ULIDGenerator generates ULID-based record IDs. ULIDs sort by creation
// time, which keeps ledger files readable when inspected by hand.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate generates a new ULID.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}
