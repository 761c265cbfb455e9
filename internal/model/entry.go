// Package model defines the core income entry types shared across the application.
package model

import (
	"fmt"
	"time"
)

// DateLayout is the canonical calendar-date form used everywhere: dates are
// stored and compared as YYYY-MM-DD strings, so lexicographic order is
// chronological order.
const DateLayout = "2006-01-02"

// MaxAmount is the largest accepted entry amount.
const MaxAmount = 999999.99

// MaxNotesLen is the maximum notes length in characters (not bytes).
const MaxNotesLen = 500

// IncomeEntry represents a single recorded income observation.
type IncomeEntry struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Amount    float64   `json:"amount"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DuplicateKey returns the key used for duplicate detection. Two entries with
// the same date and amount are considered potential duplicates.
func (e *IncomeEntry) DuplicateKey() string {
	return fmt.Sprintf("%s:%.2f", e.Date, e.Amount)
}

// ParsedDate parses the entry date. Entries that passed validation always
// parse; callers that may see unvalidated data must check the error.
func (e *IncomeEntry) ParsedDate() (time.Time, error) {
	return time.Parse(DateLayout, e.Date)
}
