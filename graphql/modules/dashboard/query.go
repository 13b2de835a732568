// Package dashboard defines the GraphQL queries for the dashboard.
package dashboard

import (
	"github.com/graphql-go/graphql"

	"github.com/storeops/sum-backend/database"
	"github.com/storeops/sum-backend/internal/session"
)

// GetQueryFields returns the dashboard queries to be mounted in the root schema
func GetQueryFields(mgr *session.Manager, db database.DBConnection) graphql.Fields {
	return graphql.Fields{
		// Section 1: Top Cards (Overview)
		"dashboardOverview": &graphql.Field{
			Type: DashboardOverviewType,
			Args: graphql.FieldConfigArgument{
				"user_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return ResolveOverview(mgr, p.Args["user_id"].(string))
			},
		},
		// Section 2: Charts (Level Breakdown)
		"dashboardLevelDistribution": &graphql.Field{
			Type: LevelDistributionType,
			Args: graphql.FieldConfigArgument{
				"user_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return ResolveLevelDistribution(mgr, p.Args["user_id"].(string))
			},
		},
		// Section 3: Tables (Recently Published)
		"dashboardRecentUpdates": &graphql.Field{
			Type: graphql.NewList(RecentUpdateType),
			Args: graphql.FieldConfigArgument{
				"user_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"limit":   &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 5},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return ResolveRecentUpdates(mgr, p.Args["user_id"].(string), p.Args["limit"].(int))
			},
		},
		// Section 4: Refresh Audit Trail
		"dashboardRefreshHistory": &graphql.Field{
			Type: graphql.NewList(RefreshHistoryType),
			Args: graphql.FieldConfigArgument{
				"user_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"limit":   &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 20},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return ResolveRefreshHistory(db, p.Args["user_id"].(string), p.Args["limit"].(int))
			},
		},
	}
}
