package model

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// ValidationError describes a single rule violation on a candidate entry.
// Validation failures are data, not Go errors: pure transforms return them
// to the caller instead of failing.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// EntryInput is a candidate entry as it arrives from a form or an import row,
// before any type coercion.
type EntryInput struct {
	Date   string
	Amount string
	Notes  string
}

// Validate applies every entry rule independently and collects all
// violations. A candidate with any violation must be rejected as a unit;
// callers that want per-field detail get the full list. The now parameter
// anchors the future-date check: any date up to the end of now's calendar day
// is accepted.
func Validate(in EntryInput, now time.Time) []ValidationError {
	var errs []ValidationError

	if in.Date == "" {
		errs = append(errs, ValidationError{Field: "date", Message: "Date is required"})
	} else if d, err := time.Parse(DateLayout, in.Date); err != nil {
		errs = append(errs, ValidationError{Field: "date", Message: "Invalid date format"})
	} else {
		endOfToday := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, time.UTC)
		if d.After(endOfToday) {
			errs = append(errs, ValidationError{Field: "date", Message: "Date cannot be in the future"})
		}
	}

	if strings.TrimSpace(in.Amount) == "" {
		errs = append(errs, ValidationError{Field: "amount", Message: "Amount is required"})
	} else if amt, err := strconv.ParseFloat(in.Amount, 64); err != nil || math.IsNaN(amt) || math.IsInf(amt, 0) {
		errs = append(errs, ValidationError{Field: "amount", Message: "Amount must be a valid number"})
	} else if amt < 0 {
		errs = append(errs, ValidationError{Field: "amount", Message: "Amount cannot be negative"})
	} else if amt > MaxAmount {
		errs = append(errs, ValidationError{Field: "amount", Message: "Amount is too large (max: 999,999.99)"})
	}

	if utf8.RuneCountInString(in.Notes) > MaxNotesLen {
		errs = append(errs, ValidationError{Field: "notes", Message: "Notes must be less than 500 characters"})
	}

	return errs
}
