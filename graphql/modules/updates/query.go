// Package updates defines the GraphQL queries for update records.
package updates

import (
	"github.com/graphql-go/graphql"

	"github.com/storeops/sum-backend/internal/session"
)

// GetQueryFields returns the update record queries to be mounted in the root schema
func GetQueryFields(mgr *session.Manager) graphql.Fields {
	return graphql.Fields{
		"updateRecords": &graphql.Field{
			Type: UpdatePageType,
			Args: graphql.FieldConfigArgument{
				"user_id":         &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"search":          &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
				"levels":          &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
				"published_dates": &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
				"sort_field":      &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
				"sort_direction":  &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: "asc"},
				"page":            &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
				"page_size":       &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: session.DefaultPageSize},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				args := PageArgs{
					Search:         p.Args["search"].(string),
					Levels:         toStrings(p.Args["levels"]),
					PublishedDates: toStrings(p.Args["published_dates"]),
					SortField:      p.Args["sort_field"].(string),
					SortDirection:  p.Args["sort_direction"].(string),
					PageIndex:      p.Args["page"].(int),
					PageSize:       p.Args["page_size"].(int),
				}
				return ResolveUpdatePage(mgr, p.Args["user_id"].(string), args)
			},
		},
	}
}

func toStrings(v interface{}) []string {
	list, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
