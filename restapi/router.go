// Package restapi wires the REST and GraphQL routes onto the Fiber app.
package restapi

import (
	gql "github.com/graphql-go/graphql"

	"github.com/gofiber/fiber/v2"

	"github.com/storeops/sum-backend/database"
	"github.com/storeops/sum-backend/internal/cache"
	"github.com/storeops/sum-backend/internal/fetch"
	"github.com/storeops/sum-backend/internal/session"
	"github.com/storeops/sum-backend/model"
	"github.com/storeops/sum-backend/restapi/modules/preferences"
	"github.com/storeops/sum-backend/restapi/modules/selection"
	"github.com/storeops/sum-backend/restapi/modules/updates"
)

// Deps carries the shared dependencies the route handlers need.
type Deps struct {
	Sessions   *session.Manager
	DB         database.DBConnection
	Upstream   *fetch.Client
	Themes     *model.ThemeCatalog
	ThemeCache *cache.ThemeCache
}

// SetupRoutes mounts all REST and GraphQL routes under /api/v1
func SetupRoutes(app *fiber.App, deps Deps, schema gql.Schema) {
	api := app.Group("/api/v1")

	// Update record endpoints
	updatesHandler := &updates.Handler{
		Sessions: deps.Sessions,
		Store:    &updates.ArangoStore{DB: deps.DB},
		Upstream: deps.Upstream,
	}
	api.Get("/updates/view", updatesHandler.GetView)
	api.Put("/updates/filter", updatesHandler.PutFilter)
	api.Post("/updates/page", updatesHandler.PostPage)
	api.Post("/updates/refresh", updatesHandler.PostRefresh)
	api.Post("/updates/install", updatesHandler.PostInstall)

	// Selection endpoints
	selectionHandler := &selection.Handler{Sessions: deps.Sessions}
	api.Post("/selection/toggle", selectionHandler.PostToggle)
	api.Post("/selection/visible", selectionHandler.PostSelectVisible)
	api.Post("/selection/clear", selectionHandler.PostClear)
	api.Get("/selection/stats", selectionHandler.GetStats)

	// Theme preference endpoints
	prefHandler := &preferences.Handler{
		DB:      deps.DB,
		Catalog: deps.Themes,
		Cache:   deps.ThemeCache,
	}
	api.Get("/preferences/themes", prefHandler.GetThemes)
	api.Get("/preferences/theme", prefHandler.GetTheme)
	api.Put("/preferences/theme", prefHandler.PutTheme)

	// GraphQL endpoint
	api.Post("/graphql", GraphQLHandler(schema))
}
