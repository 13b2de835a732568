// Package updates implements the resolvers for update record queries.
package updates

import (
	"github.com/storeops/sum-backend/internal/session"
	"github.com/storeops/sum-backend/model"
)

// ResolveUpdatePage applies an ad-hoc filter to the user's record set and
// returns one page. The query is stateless: it never touches the session's
// stored filter or pagination, so exploratory GraphQL queries cannot move
// the dashboard view under the user.
func ResolveUpdatePage(mgr *session.Manager, userID string, args PageArgs) (interface{}, error) {
	levels := make([]model.BatchLevel, 0, len(args.Levels))
	for _, raw := range args.Levels {
		if level, ok := model.ParseBatchLevel(raw); ok {
			levels = append(levels, level)
		}
	}

	state := session.FilterState{
		SearchTerm:      args.Search,
		Levels:          levels,
		PublishedDates:  args.PublishedDates,
		SortField:       args.SortField,
		SortDirection:   session.SortDirection(args.SortDirection),
		SearchMinLength: mgr.SearchMinLength(),
	}

	filtered := session.ApplyFilters(mgr.Get(userID).Records(), state)
	paging := session.NewPaginationState(args.PageSize, len(filtered)).GoTo(args.PageIndex)
	page, _ := session.SlicePage(filtered, paging)

	return page, nil
}

// PageArgs carries the raw filter and pagination arguments from the query.
type PageArgs struct {
	Search         string
	Levels         []string
	PublishedDates []string
	SortField      string
	SortDirection  string
	PageIndex      int
	PageSize       int
}
