// Package updates defines the GraphQL types for update record queries.
package updates

import (
	"github.com/graphql-go/graphql"
)

// UpdateRecordType represents one pending update row
var UpdateRecordType = graphql.NewObject(graphql.ObjectConfig{
	Name: "UpdateRecord",
	Fields: graphql.Fields{
		"sys_id":               &graphql.Field{Type: graphql.String},
		"name":                 &graphql.Field{Type: graphql.String},
		"installed_version":    &graphql.Field{Type: graphql.String},
		"latest_version":       &graphql.Field{Type: graphql.String},
		"batch_level":          &graphql.Field{Type: graphql.String},
		"latest_version_level": &graphql.Field{Type: graphql.String},
		"major_count":          &graphql.Field{Type: graphql.Int},
		"minor_count":          &graphql.Field{Type: graphql.Int},
		"patch_count":          &graphql.Field{Type: graphql.Int},
		"published_date":       &graphql.Field{Type: graphql.String},
		"short_description":    &graphql.Field{Type: graphql.String},
		"artifact_ref":         &graphql.Field{Type: graphql.String},
		"version_scheme":       &graphql.Field{Type: graphql.String},
	},
})

// UpdatePageType represents one page of filtered records with navigation metadata
var UpdatePageType = graphql.NewObject(graphql.ObjectConfig{
	Name: "UpdatePage",
	Fields: graphql.Fields{
		"items":         &graphql.Field{Type: graphql.NewList(UpdateRecordType)},
		"page_index":    &graphql.Field{Type: graphql.Int},
		"page_size":     &graphql.Field{Type: graphql.Int},
		"total_records": &graphql.Field{Type: graphql.Int},
		"total_pages":   &graphql.Field{Type: graphql.Int},
		"start_index":   &graphql.Field{Type: graphql.Int},
		"end_index":     &graphql.Field{Type: graphql.Int},
		"has_next":      &graphql.Field{Type: graphql.Boolean},
		"has_previous":  &graphql.Field{Type: graphql.Boolean},
	},
})
