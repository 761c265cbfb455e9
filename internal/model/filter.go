package model

// SortField selects the comparison used when ordering a filtered view.
type SortField string

// Supported sort fields.
const (
	SortByDate      SortField = "date"
	SortByAmount    SortField = "amount"
	SortByRelevance SortField = "relevance"
)

// SortOrder is the direction applied on top of the base comparison.
type SortOrder string

// Supported sort orders.
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// DateRange holds inclusive date bounds in YYYY-MM-DD form. An empty bound is
// unbounded.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// AmountRange holds inclusive amount bounds as raw strings, matching how they
// arrive from user input. Bounds that fail to parse as numbers are ignored.
type AmountRange struct {
	Min string
	Max string
}

// FilterState captures every dashboard filter knob at once. The zero value of
// each field means "not filtering on this".
type FilterState struct {
	SearchQuery string
	DateRange   DateRange
	AmountRange AmountRange
	SortBy      SortField
	SortOrder   SortOrder
}

// DefaultFilters returns the state that matches "no active filter":
// everything unbounded, newest entries first.
func DefaultFilters() FilterState {
	return FilterState{
		SortBy:    SortByDate,
		SortOrder: SortDesc,
	}
}

// IsDefault reports whether no filter deviates from the default state. Used
// to short-circuit "clear filters" affordances.
func (f FilterState) IsDefault() bool {
	d := DefaultFilters()
	return f.SearchQuery == "" &&
		f.DateRange == DateRange{} &&
		f.AmountRange == AmountRange{} &&
		f.SortBy == d.SortBy &&
		f.SortOrder == d.SortOrder
}

// PaginationState describes the requested page of a filtered view.
// CurrentPage is 1-based. TotalItems is derived output, recomputed on every
// filter pass, never authoritative input.
type PaginationState struct {
	CurrentPage  int
	ItemsPerPage int
	TotalItems   int
}

// DefaultPagination returns the first page with the standard page size.
func DefaultPagination() PaginationState {
	return PaginationState{CurrentPage: 1, ItemsPerPage: 10}
}
