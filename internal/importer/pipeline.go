package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/khairulanwar/merci/internal/model"
	"github.com/khairulanwar/merci/internal/service"
)

// RowError is one validation or persistence failure, tagged with the 1-based
// data row it came from.
type RowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

// Candidate is a normalized, validated row ready to persist.
type Candidate struct {
	Date   string
	Amount float64
	Notes  string
	Row    int
}

// Result is the structured outcome of an import run. Success means at least
// one entry was persisted; a partial import is an expected outcome, not an
// error state.
type Result struct {
	Errors     []RowError `json:"errors"`
	Imported   int        `json:"imported"`
	Duplicates int        `json:"duplicates"`
	Success    bool       `json:"success"`
}

// ProgressFunc is called after each commit attempt with the number of rows
// processed so far and the total. May be nil.
type ProgressFunc func(done, total int)

// ValidateRows normalizes each parsed row and applies the entry validation
// rules. Rows failing any rule are excluded from the candidates and
// contribute one error per violated rule.
func ValidateRows(rows []ParsedRow, now time.Time) ([]Candidate, []RowError) {
	var candidates []Candidate
	var errs []RowError

	for _, row := range rows {
		date := NormalizeDate(row.Date)
		amount := NormalizeAmount(row.Amount)
		notes := row.Notes

		input := model.EntryInput{Date: date, Amount: amount, Notes: notes}
		violations := model.Validate(input, now)
		if len(violations) > 0 {
			for _, v := range violations {
				errs = append(errs, RowError{
					Row:     row.Line,
					Field:   v.Field,
					Value:   rawValue(row, v.Field),
					Message: v.Message,
				})
			}
			continue
		}

		parsed, err := strconv.ParseFloat(amount, 64)
		if err != nil {
			// Validation guarantees a parseable amount; keep the guard anyway.
			errs = append(errs, RowError{
				Row:     row.Line,
				Field:   "amount",
				Value:   row.Amount,
				Message: "Amount must be a valid number",
			})
			continue
		}

		candidates = append(candidates, Candidate{
			Date:   date,
			Amount: parsed,
			Notes:  notes,
			Row:    row.Line,
		})
	}

	return candidates, errs
}

func rawValue(row ParsedRow, field string) string {
	switch field {
	case "date":
		return row.Date
	case "amount":
		return row.Amount
	case "notes":
		return row.Notes
	default:
		return ""
	}
}

// DetectDuplicates counts candidates whose (date, amount) pair already exists
// in the stored entries. Duplicates are a warning, not a rejection: the
// caller still imports them. The pair key intentionally flags distinct
// same-day same-amount entries; see the dashboard's duplicate report.
func DetectDuplicates(candidates []Candidate, existing []model.IncomeEntry) int {
	keys := make(map[string]struct{}, len(existing))
	for i := range existing {
		keys[existing[i].DuplicateKey()] = struct{}{}
	}

	count := 0
	for _, c := range candidates {
		probe := model.IncomeEntry{Date: c.Date, Amount: c.Amount}
		if _, ok := keys[probe.DuplicateKey()]; ok {
			count++
		}
	}
	return count
}

// Commit persists candidates one at a time, in order. A single entry's
// failure is recorded and the loop continues; there is no batch atomicity.
// The context is checked before each item so a cancelled import stops
// cleanly between entries.
func Commit(ctx context.Context, candidates []Candidate, store service.Storage, progress ProgressFunc) (int, []RowError) {
	imported := 0
	var errs []RowError

	for i, c := range candidates {
		if err := ctx.Err(); err != nil {
			errs = append(errs, RowError{
				Row:     c.Row,
				Field:   "general",
				Message: fmt.Sprintf("import cancelled: %v", err),
			})
			break
		}

		if _, err := store.InsertEntry(ctx, c.Date, c.Amount, c.Notes); err != nil {
			slog.Error("Failed to persist imported entry",
				"row", c.Row,
				"date", c.Date,
				"error", err)
			errs = append(errs, RowError{
				Row:     c.Row,
				Field:   "general",
				Message: fmt.Sprintf("failed to save entry: %v", err),
			})
		} else {
			imported++
		}

		if progress != nil {
			progress(i+1, len(candidates))
		}
	}

	return imported, errs
}

// Run executes the whole pipeline over a CSV stream: parse, validate, warn
// about duplicates against the stored entries, then commit. Parse failures
// are top-level errors; everything after that lands in the Result.
func Run(ctx context.Context, r io.Reader, store service.Storage, now time.Time, progress ProgressFunc) (*Result, error) {
	rows, err := Parse(r)
	if err != nil {
		return nil, err
	}

	candidates, rowErrs := ValidateRows(rows, now)

	existing, err := store.ListEntries(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing entries: %w", err)
	}
	duplicates := DetectDuplicates(candidates, existing)

	imported, commitErrs := Commit(ctx, candidates, store, progress)

	result := &Result{
		Success:    imported > 0,
		Imported:   imported,
		Duplicates: duplicates,
		Errors:     append(rowErrs, commitErrs...),
	}

	slog.Info("Import finished",
		"rows", len(rows),
		"imported", result.Imported,
		"errors", len(result.Errors),
		"duplicates", result.Duplicates)

	return result, nil
}
