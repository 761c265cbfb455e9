package export

import (
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/khairulanwar/merci/internal/analytics"
	"github.com/khairulanwar/merci/internal/model"
)

// ToPDF renders an income report document: title, report period, summary and
// monthly tables when analytics is included, then the entry table. The caller
// is responsible for writing the document out.
func ToPDF(entries []model.IncomeEntry, summary analytics.Summary, dateRange model.DateRange, now time.Time, opts Options) *gofpdf.Fpdf {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 20)
	doc.Cell(0, 10, "Income Report")
	doc.Ln(12)

	doc.SetFont("Helvetica", "", 11)
	period := "Report Period: all entries"
	if dateRange.Start != "" || dateRange.End != "" {
		period = "Report Period: " + formatDisplayDate(dateRange.Start) + " - " + formatDisplayDate(dateRange.End)
	}
	doc.Cell(0, 6, period)
	doc.Ln(6)
	doc.Cell(0, 6, "Generated: "+now.Format("2 Jan 2006"))
	doc.Ln(12)

	if opts.IncludeAnalytics {
		writeSectionTitle(doc, "Summary Statistics")
		writeTable(doc, []string{"Metric", "Value"}, [][]string{
			{"Total Income", opts.formatCurrency(summary.TotalIncome)},
			{"Daily Average", opts.formatCurrency(summary.AverageDaily)},
			{"Highest Day", opts.formatCurrency(summary.HighestDay)},
			{"Total Entries", strconv.Itoa(summary.EntriesCount)},
		})

		if len(summary.MonthlyTotals) > 0 {
			writeSectionTitle(doc, "Monthly Breakdown")
			rows := make([][]string, 0, len(summary.MonthlyTotals))
			for _, mt := range summary.MonthlyTotals {
				rows = append(rows, []string{mt.Month, opts.formatCurrency(mt.Total)})
			}
			writeTable(doc, []string{"Month", "Total"}, rows)
		}
	}

	if len(entries) > 0 {
		writeSectionTitle(doc, "Income Entries")

		header := []string{"Date", "Amount"}
		if opts.IncludeNotes {
			header = append(header, "Notes")
		}

		rows := make([][]string, 0, len(entries))
		for _, entry := range entries {
			row := []string{formatDisplayDate(entry.Date), opts.formatCurrency(entry.Amount)}
			if opts.IncludeNotes {
				notes := entry.Notes
				if notes == "" {
					notes = "-"
				}
				row = append(row, notes)
			}
			rows = append(rows, row)
		}
		writeTable(doc, header, rows)
	}

	return doc
}

func writeSectionTitle(doc *gofpdf.Fpdf, title string) {
	doc.SetFont("Helvetica", "B", 14)
	doc.Cell(0, 8, title)
	doc.Ln(10)
}

func writeTable(doc *gofpdf.Fpdf, header []string, rows [][]string) {
	pageWidth, _ := doc.GetPageSize()
	left, _, right, _ := doc.GetMargins()
	colWidth := (pageWidth - left - right) / float64(len(header))

	doc.SetFont("Helvetica", "B", 10)
	doc.SetFillColor(230, 230, 230)
	for _, cell := range header {
		doc.CellFormat(colWidth, 7, cell, "1", 0, "L", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		for _, cell := range row {
			doc.CellFormat(colWidth, 6, cell, "1", 0, "L", false, 0, "")
		}
		doc.Ln(-1)
	}
	doc.Ln(6)
}
