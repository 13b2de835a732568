// Package dashboard defines the GraphQL types for the update dashboard.
package dashboard

import (
	"github.com/graphql-go/graphql"
)

// DashboardOverviewType represents the high-level metrics for the top cards
var DashboardOverviewType = graphql.NewObject(graphql.ObjectConfig{
	Name: "DashboardOverview",
	Fields: graphql.Fields{
		"total_applications":         &graphql.Field{Type: graphql.Int},
		"total_major_updates":        &graphql.Field{Type: graphql.Int},
		"total_minor_updates":        &graphql.Field{Type: graphql.Int},
		"total_patch_updates":        &graphql.Field{Type: graphql.Int},
		"critical_count":             &graphql.Field{Type: graphql.Int},
		"currently_shown":            &graphql.Field{Type: graphql.Int},
		"statistics_source":          &graphql.Field{Type: graphql.String},
		"phase":                      &graphql.Field{Type: graphql.String},
		"has_significant_difference": &graphql.Field{Type: graphql.Boolean},
		"has_string_corruption":      &graphql.Field{Type: graphql.Boolean},
	},
})

// LevelDistributionType represents the data for the level breakdown chart
var LevelDistributionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "LevelDistribution",
	Fields: graphql.Fields{
		"major": &graphql.Field{Type: graphql.Int},
		"minor": &graphql.Field{Type: graphql.Int},
		"patch": &graphql.Field{Type: graphql.Int},
	},
})

// RecentUpdateType represents rows for the "Recently Published" table
var RecentUpdateType = graphql.NewObject(graphql.ObjectConfig{
	Name: "RecentUpdate",
	Fields: graphql.Fields{
		"sys_id":            &graphql.Field{Type: graphql.String},
		"name":              &graphql.Field{Type: graphql.String},
		"installed_version": &graphql.Field{Type: graphql.String},
		"latest_version":    &graphql.Field{Type: graphql.String},
		"batch_level":       &graphql.Field{Type: graphql.String},
		"published_date":    &graphql.Field{Type: graphql.String},
	},
})

// RefreshHistoryType represents one refresh audit entry
var RefreshHistoryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "RefreshHistory",
	Fields: graphql.Fields{
		"user_id":      &graphql.Field{Type: graphql.String},
		"record_count": &graphql.Field{Type: graphql.Int},
		"corrupted":    &graphql.Field{Type: graphql.Boolean},
		"started_at":   &graphql.Field{Type: graphql.String},
		"completed_at": &graphql.Field{Type: graphql.String},
	},
})
