package domain

import (
	"strings"
	"time"
)

// Account represents a registered user of the expense manager.
type Account struct {
	Username     string
	FullName     string
	PasswordHash string // SHA-256 hex digest
	CreatedAt    time.Time
}

// Section is a named partition of one account's expense data. Every account
// owns one ledger per section; sections are never aggregated together.
type Section string

const (
	SectionPersonal Section = "personal"
	SectionFamily   Section = "family"
	SectionBusiness Section = "business"
)

// Valid sections
var validSections = map[Section]bool{
	SectionPersonal: true,
	SectionFamily:   true,
	SectionBusiness: true,
}

// IsValid checks if the section is a known section.
func (s Section) IsValid() bool {
	return validSections[s]
}

// Sections returns all sections in display order.
func Sections() []Section {
	return []Section{SectionPersonal, SectionFamily, SectionBusiness}
}

// ParseSection parses a section name, case-insensitively.
func ParseSection(raw string) (Section, error) {
	s := Section(strings.ToLower(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", ErrInvalidSection
	}
	return s, nil
}
