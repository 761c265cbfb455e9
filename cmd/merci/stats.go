package main

import (
	"fmt"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/khairulanwar/merci/internal/analytics"
	"github.com/khairulanwar/merci/internal/cli"
	"github.com/khairulanwar/merci/internal/engine"
	"github.com/khairulanwar/merci/internal/model"
)

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show income analytics",
		Long: `Show summary statistics, monthly totals, the recent daily trend
and weekday averages, optionally restricted to a date range.

Examples:
  merci stats
  merci stats --from 2024-01-01 --to 2024-06-30`,
		RunE: runStats,
	}

	cmd.Flags().String("from", "", "earliest date (YYYY-MM-DD, inclusive)")
	cmd.Flags().String("to", "", "latest date (YYYY-MM-DD, inclusive)")

	return cmd
}

func runStats(cmd *cobra.Command, _ []string) error {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
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

	filtered := rangeFiltered(entries, from, to)
	summary := analytics.Summarize(filtered)
	prefix := currencyPrefix()

	fmt.Println(cli.FormatTitle("Income Analytics"))

	overview := uitable.New()
	overview.AddRow("Total Income", cli.Currency(prefix, summary.TotalIncome))
	overview.AddRow("Daily Average", cli.Currency(prefix, summary.AverageDaily))
	overview.AddRow("Highest Day", cli.Currency(prefix, summary.HighestDay))
	overview.AddRow("Entries", fmt.Sprintf("%d", summary.EntriesCount))
	fmt.Println(overview.String())

	if len(summary.MonthlyTotals) > 0 {
		fmt.Println()
		fmt.Println(cli.BoldStyle.Render("Monthly Totals"))
		monthly := uitable.New()
		for _, mt := range summary.MonthlyTotals {
			monthly.AddRow(mt.Month, cli.Currency(prefix, mt.Total))
		}
		fmt.Println(monthly.String())
	}

	if len(summary.DailyTrends) > 0 {
		fmt.Println()
		fmt.Println(cli.BoldStyle.Render(fmt.Sprintf("Daily Trend (last %d days)", len(summary.DailyTrends))))
		trend := uitable.New()
		for _, dt := range summary.DailyTrends {
			trend.AddRow(dt.Date, cli.Currency(prefix, dt.Amount))
		}
		fmt.Println(trend.String())
	}

	fmt.Println()
	fmt.Println(cli.BoldStyle.Render("Weekday Averages"))
	weekday := uitable.New()
	for _, wa := range summary.WeekdayAverages {
		weekday.AddRow(wa.Day, cli.Currency(prefix, wa.Average))
	}
	fmt.Println(weekday.String())

	return nil
}

// rangeFiltered applies just an inclusive date range through the view engine.
func rangeFiltered(entries []model.IncomeEntry, from, to string) []model.IncomeEntry {
	if from == "" && to == "" {
		return entries
	}
	filters := model.DefaultFilters()
	filters.DateRange = model.DateRange{Start: from, End: to}
	result := engine.Apply(entries, filters, model.PaginationState{CurrentPage: 1, ItemsPerPage: len(entries)})
	return result.Filtered
}
