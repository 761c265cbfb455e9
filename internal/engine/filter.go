// Package engine implements the dashboard view pipeline: filtering, sorting
// and paginating an in-memory snapshot of income entries. Every function here
// is pure; the input slice is never mutated.
package engine

import (
	"sort"
	"strconv"
	"strings"

	"github.com/khairulanwar/merci/internal/model"
)

// ViewResult is the output of one filter pass. Filtered carries the complete
// filtered+sorted set because summary consumers need more than the visible
// page; TotalCount is its length and is the authoritative figure for
// resetting pagination after a filter change.
type ViewResult struct {
	Page       []model.IncomeEntry
	Filtered   []model.IncomeEntry
	TotalCount int
}

// Apply runs the fixed pipeline: search filter, date range filter, amount
// range filter, sort, paginate. The stage order matters for correctness.
func Apply(entries []model.IncomeEntry, filters model.FilterState, pagination model.PaginationState) ViewResult {
	filtered := make([]model.IncomeEntry, len(entries))
	copy(filtered, entries)

	filtered = applySearch(filtered, filters.SearchQuery)
	filtered = applyDateRange(filtered, filters.DateRange)
	filtered = applyAmountRange(filtered, filters.AmountRange)
	sortEntries(filtered, filters)

	return ViewResult{
		Page:       paginate(filtered, pagination),
		Filtered:   filtered,
		TotalCount: len(filtered),
	}
}

// applySearch keeps entries whose notes contain the query, case-insensitive.
// Entries without notes never match a non-empty query.
func applySearch(entries []model.IncomeEntry, query string) []model.IncomeEntry {
	if strings.TrimSpace(query) == "" {
		return entries
	}

	q := strings.ToLower(query)
	kept := entries[:0]
	for _, entry := range entries {
		if matchesQuery(entry, q) {
			kept = append(kept, entry)
		}
	}
	return kept
}

func matchesQuery(entry model.IncomeEntry, loweredQuery string) bool {
	if entry.Notes == "" {
		return false
	}
	return strings.Contains(strings.ToLower(entry.Notes), loweredQuery)
}

// applyDateRange keeps entries within the inclusive bounds. Comparison is
// lexicographic on the YYYY-MM-DD form, which matches chronological order.
func applyDateRange(entries []model.IncomeEntry, dr model.DateRange) []model.IncomeEntry {
	if dr.Start == "" && dr.End == "" {
		return entries
	}

	kept := entries[:0]
	for _, entry := range entries {
		if dr.Start != "" && entry.Date < dr.Start {
			continue
		}
		if dr.End != "" && entry.Date > dr.End {
			continue
		}
		kept = append(kept, entry)
	}
	return kept
}

// applyAmountRange keeps entries within the inclusive bounds. Bounds that
// fail to parse as numbers are treated as unset, not as errors.
func applyAmountRange(entries []model.IncomeEntry, ar model.AmountRange) []model.IncomeEntry {
	min, hasMin := parseBound(ar.Min)
	max, hasMax := parseBound(ar.Max)
	if !hasMin && !hasMax {
		return entries
	}

	kept := entries[:0]
	for _, entry := range entries {
		if hasMin && entry.Amount < min {
			continue
		}
		if hasMax && entry.Amount > max {
			continue
		}
		kept = append(kept, entry)
	}
	return kept
}

func parseBound(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// sortEntries orders the filtered set in place. For relevance, entries whose
// notes match the active query always sort before non-matching entries
// regardless of sort order; the date tiebreak (and the date/amount sorts)
// honor the requested order.
func sortEntries(entries []model.IncomeEntry, filters model.FilterState) {
	query := strings.ToLower(strings.TrimSpace(filters.SearchQuery))
	desc := filters.SortOrder == model.SortDesc

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]

		if filters.SortBy == model.SortByRelevance && query != "" {
			aMatch := matchesQuery(a, query)
			bMatch := matchesQuery(b, query)
			if aMatch != bMatch {
				return aMatch
			}
		}

		var cmp int
		switch filters.SortBy {
		case model.SortByAmount:
			cmp = compareFloat(a.Amount, b.Amount)
		default:
			// date base comparison, also the relevance tiebreak
			cmp = strings.Compare(a.Date, b.Date)
		}

		if desc {
			cmp = -cmp
		}
		return cmp < 0
	})
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// paginate slices the requested 1-based page out of the filtered set.
// Out-of-range pages yield an empty slice, never an error.
func paginate(entries []model.IncomeEntry, p model.PaginationState) []model.IncomeEntry {
	if p.ItemsPerPage <= 0 || p.CurrentPage <= 0 {
		return nil
	}

	start := (p.CurrentPage - 1) * p.ItemsPerPage
	if start >= len(entries) {
		return nil
	}

	end := start + p.ItemsPerPage
	if end > len(entries) {
		end = len(entries)
	}
	return entries[start:end]
}
