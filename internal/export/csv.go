package export

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/khairulanwar/merci/internal/analytics"
	"github.com/khairulanwar/merci/internal/model"
)

// ToCSV renders entries as comma-separated text. When analytics is included,
// a summary block and a monthly breakdown follow the entry rows after a
// blank row.
func ToCSV(entries []model.IncomeEntry, summary analytics.Summary, opts Options) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	header := []string{"Date", "Amount", "Amount (Formatted)"}
	if opts.IncludeNotes {
		header = append(header, "Notes")
	}
	header = append(header, "Created At")
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}

	blank := make([]string, len(header))

	for _, entry := range entries {
		row := []string{
			formatDisplayDate(entry.Date),
			strconv.FormatFloat(entry.Amount, 'f', -1, 64),
			opts.formatCurrency(entry.Amount),
		}
		if opts.IncludeNotes {
			row = append(row, entry.Notes)
		}
		row = append(row, entry.CreatedAt.Format("2006-01-02 15:04:05"))
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	if opts.IncludeAnalytics {
		summaryRows := [][]string{
			blank,
			{"=== ANALYTICS SUMMARY ===", "", ""},
			{"Total Income", strconv.FormatFloat(summary.TotalIncome, 'f', -1, 64), opts.formatCurrency(summary.TotalIncome)},
			{"Daily Average", strconv.FormatFloat(summary.AverageDaily, 'f', -1, 64), opts.formatCurrency(summary.AverageDaily)},
			{"Highest Day", strconv.FormatFloat(summary.HighestDay, 'f', -1, 64), opts.formatCurrency(summary.HighestDay)},
			{"Total Entries", strconv.Itoa(summary.EntriesCount), strconv.Itoa(summary.EntriesCount)},
			blank,
			{"=== MONTHLY TOTALS ===", "", ""},
		}
		for _, mt := range summary.MonthlyTotals {
			summaryRows = append(summaryRows, []string{
				mt.Month,
				strconv.FormatFloat(mt.Total, 'f', -1, 64),
				opts.formatCurrency(mt.Total),
			})
		}

		for _, row := range summaryRows {
			if err := w.Write(row); err != nil {
				return "", fmt.Errorf("failed to write analytics row: %w", err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV: %w", err)
	}
	return sb.String(), nil
}
