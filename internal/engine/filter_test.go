package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khairulanwar/merci/internal/model"
)

func entry(id, date string, amount float64, notes string) model.IncomeEntry {
	return model.IncomeEntry{ID: id, Date: date, Amount: amount, Notes: notes}
}

func allEntries() []model.IncomeEntry {
	return []model.IncomeEntry{
		entry("e1", "2024-01-01", 100, "market stall"),
		entry("e2", "2024-01-02", 50, "online order"),
		entry("e3", "2024-01-03", 200, ""),
		entry("e4", "2024-01-04", 75, "Market delivery"),
		entry("e5", "2024-01-05", 150, "catering"),
	}
}

func noPagination() model.PaginationState {
	return model.PaginationState{CurrentPage: 1, ItemsPerPage: 100}
}

func ids(entries []model.IncomeEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func TestApplySearchFilter(t *testing.T) {
	filters := model.DefaultFilters()
	filters.SearchQuery = "market"

	result := Apply(allEntries(), filters, noPagination())

	// Case-insensitive substring; entries with no notes never match.
	assert.ElementsMatch(t, []string{"e1", "e4"}, ids(result.Filtered))
	assert.Equal(t, 2, result.TotalCount)
}

func TestApplyDateRangeInclusive(t *testing.T) {
	filters := model.DefaultFilters()
	filters.DateRange = model.DateRange{Start: "2024-01-02", End: "2024-01-04"}
	filters.SortOrder = model.SortAsc

	result := Apply(allEntries(), filters, noPagination())

	assert.Equal(t, []string{"e2", "e3", "e4"}, ids(result.Filtered))
}

func TestApplyDateRangeOpenEnded(t *testing.T) {
	filters := model.DefaultFilters()
	filters.DateRange = model.DateRange{Start: "2024-01-04"}
	filters.SortOrder = model.SortAsc

	result := Apply(allEntries(), filters, noPagination())

	assert.Equal(t, []string{"e4", "e5"}, ids(result.Filtered))
}

func TestApplyAmountRangeInclusive(t *testing.T) {
	entries := []model.IncomeEntry{
		entry("a", "2024-01-01", 10, ""),
		entry("b", "2024-01-02", 75, ""),
		entry("c", "2024-01-03", 200, ""),
		entry("d", "2024-01-04", 150, ""),
	}

	filters := model.DefaultFilters()
	filters.AmountRange = model.AmountRange{Min: "50", Max: "150"}

	result := Apply(entries, filters, noPagination())

	assert.ElementsMatch(t, []string{"b", "d"}, ids(result.Filtered))
}

func TestApplyAmountRangeIgnoresUnparseableBounds(t *testing.T) {
	filters := model.DefaultFilters()
	filters.AmountRange = model.AmountRange{Min: "abc", Max: "150"}

	result := Apply(allEntries(), filters, noPagination())

	// Min is ignored, max still applies.
	assert.ElementsMatch(t, []string{"e1", "e2", "e4", "e5"}, ids(result.Filtered))
}

func TestSortByDate(t *testing.T) {
	filters := model.DefaultFilters()
	filters.SortBy = model.SortByDate

	filters.SortOrder = model.SortAsc
	result := Apply(allEntries(), filters, noPagination())
	assert.Equal(t, []string{"e1", "e2", "e3", "e4", "e5"}, ids(result.Filtered))

	filters.SortOrder = model.SortDesc
	result = Apply(allEntries(), filters, noPagination())
	assert.Equal(t, []string{"e5", "e4", "e3", "e2", "e1"}, ids(result.Filtered))
}

func TestSortByAmount(t *testing.T) {
	filters := model.DefaultFilters()
	filters.SortBy = model.SortByAmount

	filters.SortOrder = model.SortAsc
	result := Apply(allEntries(), filters, noPagination())
	assert.Equal(t, []string{"e2", "e4", "e1", "e5", "e3"}, ids(result.Filtered))

	filters.SortOrder = model.SortDesc
	result = Apply(allEntries(), filters, noPagination())
	assert.Equal(t, []string{"e3", "e5", "e1", "e4", "e2"}, ids(result.Filtered))
}

func TestSortByRelevanceGroupsMatchesFirst(t *testing.T) {
	entries := []model.IncomeEntry{
		entry("m1", "2024-01-03", 10, "weekend sale"),
		entry("n1", "2024-01-01", 20, "delivery"),
		entry("m2", "2024-01-02", 30, "flash sale"),
		entry("n2", "2024-01-04", 40, ""),
	}

	filters := model.DefaultFilters()
	filters.SearchQuery = "sale"
	filters.SortBy = model.SortByRelevance
	filters.SortOrder = model.SortAsc

	// Exercise the comparator directly: matching entries sort before
	// non-matching ones, date order within each group.
	sortEntries(entries, filters)
	assert.Equal(t, []string{"m2", "m1", "n1", "n2"}, ids(entries))

	// Matches stay in front even when the date tiebreak is descending.
	filters.SortOrder = model.SortDesc
	sortEntries(entries, filters)
	assert.Equal(t, []string{"m1", "m2", "n2", "n1"}, ids(entries))
}

func TestSortByRelevanceFallsBackToDate(t *testing.T) {
	// Without a query, relevance degrades to pure date ordering.
	filters := model.DefaultFilters()
	filters.SortBy = model.SortByRelevance
	filters.SortOrder = model.SortAsc

	result := Apply(allEntries(), filters, noPagination())
	assert.Equal(t, []string{"e1", "e2", "e3", "e4", "e5"}, ids(result.Filtered))
}

func TestPagination(t *testing.T) {
	filters := model.DefaultFilters()
	filters.SortOrder = model.SortAsc

	tests := []struct {
		name    string
		page    int
		perPage int
		wantIDs []string
	}{
		{name: "first page", page: 1, perPage: 2, wantIDs: []string{"e1", "e2"}},
		{name: "middle page", page: 2, perPage: 2, wantIDs: []string{"e3", "e4"}},
		{name: "short last page", page: 3, perPage: 2, wantIDs: []string{"e5"}},
		{name: "out of range page is empty", page: 4, perPage: 2, wantIDs: []string{}},
		{name: "single page holds everything", page: 1, perPage: 50, wantIDs: []string{"e1", "e2", "e3", "e4", "e5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pagination := model.PaginationState{CurrentPage: tt.page, ItemsPerPage: tt.perPage}
			result := Apply(allEntries(), filters, pagination)

			assert.Equal(t, tt.wantIDs, append([]string{}, ids(result.Page)...))
			assert.Equal(t, 5, result.TotalCount, "total count reflects the filtered set, not the page")
		})
	}
}

func TestPaginationCoversFilteredSetExactly(t *testing.T) {
	var entries []model.IncomeEntry
	for i := 0; i < 23; i++ {
		entries = append(entries, entry(
			fmt.Sprintf("e%02d", i),
			fmt.Sprintf("2024-01-%02d", i%28+1),
			float64(i),
			"",
		))
	}

	filters := model.DefaultFilters()
	perPage := 5

	full := Apply(entries, filters, model.PaginationState{CurrentPage: 1, ItemsPerPage: len(entries)})

	var reassembled []model.IncomeEntry
	for page := 1; ; page++ {
		result := Apply(entries, filters, model.PaginationState{CurrentPage: page, ItemsPerPage: perPage})
		if len(result.Page) == 0 {
			break
		}
		reassembled = append(reassembled, result.Page...)
	}

	require.Equal(t, ids(full.Filtered), ids(reassembled))
}

func TestApplyIsIdempotentAndPure(t *testing.T) {
	entries := allEntries()
	original := allEntries()

	filters := model.DefaultFilters()
	filters.SearchQuery = "market"
	filters.SortBy = model.SortByRelevance

	first := Apply(entries, filters, noPagination())
	second := Apply(entries, filters, noPagination())

	assert.Equal(t, first, second, "same filter state twice must yield identical output")
	assert.Equal(t, original, entries, "input slice must not be mutated")
}
