// Package importer implements the CSV import pipeline: tabular parsing,
// per-row normalization and validation, duplicate detection against existing
// data, and a per-entry commit loop that isolates persistence failures.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/khairulanwar/merci/internal/common"
	"github.com/khairulanwar/merci/internal/model"
)

// Column candidates per logical field, in priority order. The first candidate
// present in the header with a non-empty cell wins; matching is by exact
// header name, so the list spells out the accepted capitalizations.
var (
	dateColumns   = []string{"date", "Date", "DATE"}
	amountColumns = []string{"amount", "Amount", "AMOUNT"}
	notesColumns  = []string{"notes", "Notes", "NOTES", "note", "Note"}
)

// ParsedRow is one data row of the import table, keyed by logical field.
// Line is the 1-based data row number (the header does not count).
type ParsedRow struct {
	Date   string
	Amount string
	Notes  string
	Line   int
}

// Parse reads a comma-separated table with a required header row. Unknown
// columns are ignored. A structurally broken table is a single top-level
// failure; row-level data problems are left for validation.
func Parse(r io.Reader) ([]ParsedRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, common.ErrEmptyImport
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, seen := columns[name]; !seen {
			columns[name] = i
		}
	}

	if !hasAnyColumn(columns, dateColumns) || !hasAnyColumn(columns, amountColumns) {
		return nil, fmt.Errorf("%w: need date and amount", common.ErrMissingHeader)
	}

	var rows []ParsedRow
	line := 0
	for {
		record, readErr := reader.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("failed to parse row %d: %w", line+1, readErr)
		}

		if isBlankRecord(record) {
			continue
		}

		line++
		rows = append(rows, ParsedRow{
			Date:   pickField(record, columns, dateColumns),
			Amount: pickField(record, columns, amountColumns),
			Notes:  pickField(record, columns, notesColumns),
			Line:   line,
		})
	}

	if len(rows) == 0 {
		return nil, common.ErrEmptyImport
	}
	return rows, nil
}

func hasAnyColumn(columns map[string]int, candidates []string) bool {
	for _, name := range candidates {
		if _, ok := columns[name]; ok {
			return true
		}
	}
	return false
}

// pickField returns the first candidate column with a non-empty cell.
func pickField(record []string, columns map[string]int, candidates []string) string {
	for _, name := range candidates {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			continue
		}
		if value := strings.TrimSpace(record[idx]); value != "" {
			return value
		}
	}
	return ""
}

func isBlankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// nonAmountChars matches everything that is not a digit, decimal point or
// minus sign; stripping it tolerates currency symbols and thousands
// separators in amount cells.
var nonAmountChars = regexp.MustCompile(`[^0-9.\-]`)

// NormalizeAmount strips decoration from an amount cell before parsing.
func NormalizeAmount(raw string) string {
	return nonAmountChars.ReplaceAllString(raw, "")
}

// dateLayouts are the input forms accepted by the importer, tried in order.
// Whatever matches is re-emitted in the canonical YYYY-MM-DD form.
var dateLayouts = []string{
	model.DateLayout,
	"2006/01/02",
	"01/02/2006",
	"02-01-2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// NormalizeDate canonicalizes a date cell. Unrecognized input is returned
// unchanged so that validation reports it against the original value.
func NormalizeDate(raw string) string {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, raw); err == nil {
			return d.Format(model.DateLayout)
		}
	}
	return raw
}
