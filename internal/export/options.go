// Package export serializes income entries and their analytics into
// downloadable artifacts: CSV and JSON reports, PDF documents, and
// checksum-verified backup bundles.
package export

import (
	"fmt"
	"time"

	"github.com/khairulanwar/merci/internal/model"
)

// Options controls what an export includes.
type Options struct {
	CurrencyPrefix   string
	IncludeNotes     bool
	IncludeAnalytics bool
}

// DefaultOptions includes everything, formatted in ringgit.
func DefaultOptions() Options {
	return Options{
		CurrencyPrefix:   "RM",
		IncludeNotes:     true,
		IncludeAnalytics: true,
	}
}

// formatCurrency renders an amount with the configured currency prefix.
func (o Options) formatCurrency(amount float64) string {
	prefix := o.CurrencyPrefix
	if prefix == "" {
		prefix = "RM"
	}
	return fmt.Sprintf("%s %.2f", prefix, amount)
}

// formatDisplayDate renders a date for report output. Dates that fail to
// parse are shown as-is.
func formatDisplayDate(date string) string {
	d, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return date
	}
	return d.Format("2 Jan 2006")
}
