package main

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/khairulanwar/merci/internal/cli"
	"github.com/khairulanwar/merci/internal/importer"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import entries from a CSV file",
		Long: `Import income entries from a CSV file. The file needs a header row
with at least a date and an amount column; a notes column is optional.
Rows failing validation are skipped and reported, the rest are saved.

Duplicates (same date and amount as a stored entry) are imported anyway
and counted in the summary.

Examples:
  merci import income.csv
  merci import income.csv --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().Bool("dry-run", false, "validate and report without saving anything")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	defer func() { _ = f.Close() }()

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	now := time.Now()

	if dryRun {
		rows, err := importer.Parse(f)
		if err != nil {
			return err
		}
		candidates, rowErrs := importer.ValidateRows(rows, now)
		existing, err := store.ListEntries(ctx, 0)
		if err != nil {
			return fmt.Errorf("failed to load existing entries: %w", err)
		}
		duplicates := importer.DetectDuplicates(candidates, existing)

		fmt.Println(cli.FormatInfo(fmt.Sprintf(
			"Dry run: %d of %d rows would be imported (%d duplicates)",
			len(candidates), len(rows), duplicates)))
		printRowErrors(rowErrs)
		return nil
	}

	// The bar is created on the first callback so an import with nothing to
	// commit never draws one.
	var bar *progressbar.ProgressBar
	progress := func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetDescription("Importing"),
				progressbar.OptionClearOnFinish(),
			)
		}
		_ = bar.Set(done)
	}

	result, err := importer.Run(ctx, f, store, now, progress)
	if err != nil {
		return err
	}

	switch {
	case result.Success && len(result.Errors) == 0:
		fmt.Println(cli.FormatSuccess(fmt.Sprintf(
			"Imported %d entries (%d duplicates)", result.Imported, result.Duplicates)))
	case result.Success:
		fmt.Println(cli.FormatPartial(fmt.Sprintf(
			"Imported %d entries, %d rows failed (%d duplicates)",
			result.Imported, len(result.Errors), result.Duplicates)))
	default:
		fmt.Println(cli.FormatError("No entries imported"))
	}

	printRowErrors(result.Errors)
	return nil
}

func printRowErrors(errs []importer.RowError) {
	for _, e := range errs {
		if e.Value != "" {
			fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf(
				"  row %d %s (%q): %s", e.Row, e.Field, e.Value, e.Message)))
		} else {
			fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf(
				"  row %d %s: %s", e.Row, e.Field, e.Message)))
		}
	}
}
