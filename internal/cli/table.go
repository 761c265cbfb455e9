package cli

import (
	"github.com/gosuri/uitable"

	"github.com/khairulanwar/merci/internal/model"
)

// EntryTable renders entries as an aligned terminal table. Notes are
// truncated by the table's max column width rather than wrapped.
func EntryTable(entries []model.IncomeEntry, currencyPrefix string) string {
	table := uitable.New()
	table.MaxColWidth = 50
	table.AddRow("ID", "DATE", "AMOUNT", "NOTES")

	for _, entry := range entries {
		notes := entry.Notes
		if notes == "" {
			notes = "-"
		}
		table.AddRow(shortID(entry.ID), entry.Date, Currency(currencyPrefix, entry.Amount), notes)
	}
	return table.String()
}

// shortID trims a UUID down to its first group for display. Full IDs remain
// the handle for edit/delete.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
