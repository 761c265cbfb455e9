package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khairulanwar/merci/internal/cli"
	"github.com/khairulanwar/merci/internal/engine"
	"github.com/khairulanwar/merci/internal/model"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show a filtered, paginated view of entries",
		Long: `Show entries with optional search, date and amount filters.

Examples:
  merci list
  merci list --search "stall" --sort relevance
  merci list --from 2024-06-01 --to 2024-06-30 --min 50
  merci list --page 2 --page-size 25`,
		RunE: runList,
	}

	cmd.Flags().String("search", "", "substring match against notes")
	cmd.Flags().String("from", "", "earliest date (YYYY-MM-DD, inclusive)")
	cmd.Flags().String("to", "", "latest date (YYYY-MM-DD, inclusive)")
	cmd.Flags().String("min", "", "minimum amount (inclusive)")
	cmd.Flags().String("max", "", "maximum amount (inclusive)")
	cmd.Flags().String("sort", "date", "sort field (date, amount, relevance)")
	cmd.Flags().String("order", "desc", "sort order (asc, desc)")
	cmd.Flags().Int("page", 1, "page number (1-based)")
	cmd.Flags().Int("page-size", 10, "entries per page")

	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	filters, pagination, err := filtersFromFlags(cmd)
	if err != nil {
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

	result := engine.Apply(entries, filters, pagination)
	if result.TotalCount == 0 {
		fmt.Println(cli.FormatInfo("No entries match the current filters"))
		return nil
	}

	fmt.Println(cli.EntryTable(result.Page, currencyPrefix()))

	var filteredTotal float64
	for _, entry := range result.Filtered {
		filteredTotal += entry.Amount
	}

	totalPages := (result.TotalCount + pagination.ItemsPerPage - 1) / pagination.ItemsPerPage
	fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf(
		"Page %d of %d — %d entries, %s total",
		pagination.CurrentPage, totalPages, result.TotalCount,
		cli.Currency(currencyPrefix(), filteredTotal))))

	return nil
}

func filtersFromFlags(cmd *cobra.Command) (model.FilterState, model.PaginationState, error) {
	filters := model.DefaultFilters()
	pagination := model.DefaultPagination()

	filters.SearchQuery, _ = cmd.Flags().GetString("search")
	filters.DateRange.Start, _ = cmd.Flags().GetString("from")
	filters.DateRange.End, _ = cmd.Flags().GetString("to")
	filters.AmountRange.Min, _ = cmd.Flags().GetString("min")
	filters.AmountRange.Max, _ = cmd.Flags().GetString("max")

	if err := validateDateFlag(filters.DateRange.Start, "from"); err != nil {
		return filters, pagination, err
	}
	if err := validateDateFlag(filters.DateRange.End, "to"); err != nil {
		return filters, pagination, err
	}

	sortBy, _ := cmd.Flags().GetString("sort")
	switch model.SortField(sortBy) {
	case model.SortByDate, model.SortByAmount, model.SortByRelevance:
		filters.SortBy = model.SortField(sortBy)
	default:
		return filters, pagination, fmt.Errorf("invalid --sort %q: expected date, amount or relevance", sortBy)
	}

	order, _ := cmd.Flags().GetString("order")
	switch model.SortOrder(order) {
	case model.SortAsc, model.SortDesc:
		filters.SortOrder = model.SortOrder(order)
	default:
		return filters, pagination, fmt.Errorf("invalid --order %q: expected asc or desc", order)
	}

	pagination.CurrentPage, _ = cmd.Flags().GetInt("page")
	pagination.ItemsPerPage, _ = cmd.Flags().GetInt("page-size")
	if pagination.CurrentPage < 1 {
		return filters, pagination, fmt.Errorf("--page must be at least 1")
	}
	if pagination.ItemsPerPage < 1 {
		return filters, pagination, fmt.Errorf("--page-size must be at least 1")
	}

	return filters, pagination, nil
}
