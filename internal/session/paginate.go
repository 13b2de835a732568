package session

import "github.com/storeops/sum-backend/model"

// PageSizeChoices lists the page sizes the dashboard offers.
var PageSizeChoices = []int{10, 25, 50, 100}

// DefaultPageSize is used when a requested size is not one of the choices.
const DefaultPageSize = 25

// PaginationState tracks the current page over a filtered record count.
// PageIndex is 1-based: the first page is 1 and the last is TotalPages.
// All navigation methods return a new state; the receiver is untouched.
type PaginationState struct {
	PageSize     int
	PageIndex    int
	TotalRecords int
}

// NewPaginationState builds a state on the first page, clamped to valid
// values.
func NewPaginationState(pageSize, totalRecords int) PaginationState {
	return PaginationState{
		PageSize:     normalizePageSize(pageSize),
		PageIndex:    1,
		TotalRecords: maxInt(totalRecords, 0),
	}
}

func normalizePageSize(size int) int {
	for _, choice := range PageSizeChoices {
		if size == choice {
			return size
		}
	}
	return DefaultPageSize
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// TotalPages is always at least 1 so an empty result set still renders as a
// single empty page rather than a zero-page edge case.
func (p PaginationState) TotalPages() int {
	if p.TotalRecords <= 0 {
		return 1
	}
	pages := p.TotalRecords / p.PageSize
	if p.TotalRecords%p.PageSize != 0 {
		pages++
	}
	return pages
}

// clamp pins PageIndex into [1, TotalPages].
func (p PaginationState) clamp() PaginationState {
	last := p.TotalPages()
	if p.PageIndex > last {
		p.PageIndex = last
	}
	if p.PageIndex < 1 {
		p.PageIndex = 1
	}
	return p
}

// GoTo moves to the given one-based page number, clamped to the valid range.
func (p PaginationState) GoTo(index int) PaginationState {
	p.PageIndex = index
	return p.clamp()
}

// Next advances one page, staying on the last page at the end.
func (p PaginationState) Next() PaginationState {
	return p.GoTo(p.PageIndex + 1)
}

// Previous steps back one page, staying on the first page at the start.
func (p PaginationState) Previous() PaginationState {
	return p.GoTo(p.PageIndex - 1)
}

// First jumps to the first page.
func (p PaginationState) First() PaginationState {
	return p.GoTo(1)
}

// Last jumps to the final page.
func (p PaginationState) Last() PaginationState {
	return p.GoTo(p.TotalPages())
}

// WithPageSize changes the page size and re-clamps the index so the view
// never points past the end after a size change.
func (p PaginationState) WithPageSize(size int) PaginationState {
	p.PageSize = normalizePageSize(size)
	return p.clamp()
}

// WithTotal updates the record count, clamping the index when the filtered
// set shrank underneath the current page.
func (p PaginationState) WithTotal(total int) PaginationState {
	p.TotalRecords = maxInt(total, 0)
	return p.clamp()
}

// Page is one rendered slice of the filtered records along with the
// navigation metadata the dashboard needs.
type Page struct {
	Items        []model.UpdateRecord `json:"items"`
	PageIndex    int                  `json:"page_index"`
	PageSize     int                  `json:"page_size"`
	TotalRecords int                  `json:"total_records"`
	TotalPages   int                  `json:"total_pages"`
	StartIndex   int                  `json:"start_index"`
	EndIndex     int                  `json:"end_index"`
	HasNext      bool                 `json:"has_next"`
	HasPrevious  bool                 `json:"has_previous"`
}

// SlicePage extracts the current page from the filtered records. The state
// is re-clamped against the actual slice length first, so callers can pass a
// stale state after the underlying set changed.
func SlicePage(items []model.UpdateRecord, state PaginationState) (Page, PaginationState) {
	state = state.WithTotal(len(items))

	start := (state.PageIndex - 1) * state.PageSize
	end := start + state.PageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	return Page{
		Items:        items[start:end],
		PageIndex:    state.PageIndex,
		PageSize:     state.PageSize,
		TotalRecords: state.TotalRecords,
		TotalPages:   state.TotalPages(),
		StartIndex:   start,
		EndIndex:     end,
		HasNext:      state.PageIndex < state.TotalPages(),
		HasPrevious:  state.PageIndex > 1,
	}, state
}
