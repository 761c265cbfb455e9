package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/khairulanwar/merci/internal/analytics"
	"github.com/khairulanwar/merci/internal/cli"
	"github.com/khairulanwar/merci/internal/export"
	"github.com/khairulanwar/merci/internal/model"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export entries to CSV, JSON or PDF",
		Long: `Export entries, optionally restricted to a date range, as a CSV
spreadsheet, a JSON document or a PDF report. Analytics computed over
the exported range are included unless --analytics=false.

Examples:
  merci export
  merci export --format json --output income.json
  merci export --format pdf --from 2024-01-01 --to 2024-06-30
  merci export --notes=false --analytics=false`,
		RunE: runExport,
	}

	cmd.Flags().StringP("format", "f", "csv", "output format (csv, json, pdf)")
	cmd.Flags().StringP("output", "o", "", "output file (default: merci-export-<date>.<ext>)")
	cmd.Flags().String("from", "", "earliest date (YYYY-MM-DD, inclusive)")
	cmd.Flags().String("to", "", "latest date (YYYY-MM-DD, inclusive)")
	cmd.Flags().Bool("notes", true, "include the notes column")
	cmd.Flags().Bool("analytics", true, "include the analytics summary")

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	includeNotes, _ := cmd.Flags().GetBool("notes")
	includeAnalytics, _ := cmd.Flags().GetBool("analytics")

	switch format {
	case "csv", "json", "pdf":
	default:
		return fmt.Errorf("invalid --format %q: expected csv, json or pdf", format)
	}
	if err := validateDateFlag(from, "from"); err != nil {
		return err
	}
	if err := validateDateFlag(to, "to"); err != nil {
		return err
	}

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	entries, err := store.ListEntries(ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to load entries: %w", err)
	}
	entries = rangeFiltered(entries, from, to)
	if len(entries) == 0 {
		fmt.Println(cli.FormatInfo("No entries to export"))
		return nil
	}

	now := time.Now()
	if output == "" {
		output = fmt.Sprintf("merci-export-%s.%s", now.Format(model.DateLayout), format)
	}

	opts := export.Options{
		CurrencyPrefix:   currencyPrefix(),
		IncludeNotes:     includeNotes,
		IncludeAnalytics: includeAnalytics,
	}
	summary := analytics.Summarize(entries)
	dateRange := model.DateRange{Start: from, End: to}

	switch format {
	case "csv":
		content, err := export.ToCSV(entries, summary, opts)
		if err != nil {
			return fmt.Errorf("failed to build CSV export: %w", err)
		}
		if err := os.WriteFile(output, []byte(content), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", output, err)
		}
	case "json":
		content, err := export.ToJSON(entries, summary, dateRange, now, opts)
		if err != nil {
			return fmt.Errorf("failed to build JSON export: %w", err)
		}
		if err := os.WriteFile(output, []byte(content), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", output, err)
		}
	case "pdf":
		doc := export.ToPDF(entries, summary, dateRange, now, opts)
		if err := doc.OutputFileAndClose(output); err != nil {
			return fmt.Errorf("failed to write %s: %w", output, err)
		}
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d entries to %s", len(entries), output)))
	return nil
}
