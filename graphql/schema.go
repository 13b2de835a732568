// Package graphql assembles the root schema from the per-module query fields.
package graphql

import (
	gql "github.com/graphql-go/graphql"

	"github.com/storeops/sum-backend/database"
	"github.com/storeops/sum-backend/graphql/modules/dashboard"
	"github.com/storeops/sum-backend/graphql/modules/updates"
	"github.com/storeops/sum-backend/internal/session"
)

// CreateSchema merges every module's query fields into the root query type.
func CreateSchema(mgr *session.Manager, db database.DBConnection) (gql.Schema, error) {
	fields := gql.Fields{}

	for name, field := range dashboard.GetQueryFields(mgr, db) {
		fields[name] = field
	}
	for name, field := range updates.GetQueryFields(mgr) {
		fields[name] = field
	}

	rootQuery := gql.NewObject(gql.ObjectConfig{
		Name:   "Query",
		Fields: fields,
	})

	return gql.NewSchema(gql.SchemaConfig{Query: rootQuery})
}
