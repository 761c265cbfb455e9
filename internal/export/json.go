package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/khairulanwar/merci/internal/analytics"
	"github.com/khairulanwar/merci/internal/model"
)

// jsonMetadata heads every JSON export.
type jsonMetadata struct {
	ExportDate   string          `json:"exportDate"`
	DateRange    model.DateRange `json:"dateRange"`
	TotalEntries int             `json:"totalEntries"`
}

// jsonEntry is the exported shape of one entry. Notes are elided entirely
// when the export excludes them.
type jsonEntry struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Amount    float64   `json:"amount"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type jsonSummary struct {
	TotalIncome  float64 `json:"totalIncome"`
	AverageDaily float64 `json:"averageDaily"`
	HighestDay   float64 `json:"highestDay"`
	EntriesCount int     `json:"entriesCount"`
}

type jsonAnalytics struct {
	Summary         jsonSummary                `json:"summary"`
	MonthlyTotals   []analytics.MonthlyTotal   `json:"monthlyTotals"`
	WeekdayAverages []analytics.WeekdayAverage `json:"weekdayAverages"`
}

type jsonExport struct {
	Metadata  jsonMetadata   `json:"metadata"`
	Entries   []jsonEntry    `json:"entries"`
	Analytics *jsonAnalytics `json:"analytics,omitempty"`
}

// ToJSON renders entries, and optionally their analytics, as an indented
// JSON document.
func ToJSON(entries []model.IncomeEntry, summary analytics.Summary, dateRange model.DateRange, now time.Time, opts Options) (string, error) {
	doc := jsonExport{
		Metadata: jsonMetadata{
			ExportDate:   now.UTC().Format(time.RFC3339),
			DateRange:    dateRange,
			TotalEntries: len(entries),
		},
		Entries: make([]jsonEntry, 0, len(entries)),
	}

	for _, entry := range entries {
		je := jsonEntry{
			ID:        entry.ID,
			Date:      entry.Date,
			Amount:    entry.Amount,
			CreatedAt: entry.CreatedAt,
			UpdatedAt: entry.UpdatedAt,
		}
		if opts.IncludeNotes && entry.Notes != "" {
			notes := entry.Notes
			je.Notes = &notes
		}
		doc.Entries = append(doc.Entries, je)
	}

	if opts.IncludeAnalytics {
		doc.Analytics = &jsonAnalytics{
			Summary: jsonSummary{
				TotalIncome:  summary.TotalIncome,
				AverageDaily: summary.AverageDaily,
				HighestDay:   summary.HighestDay,
				EntriesCount: summary.EntriesCount,
			},
			MonthlyTotals:   summary.MonthlyTotals,
			WeekdayAverages: summary.WeekdayAverages,
		}
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal export: %w", err)
	}
	return string(out), nil
}
