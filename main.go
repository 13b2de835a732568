// Package main is the entry point for the store updates manager backend.
package main

import (
	"context"
	"log"
	"time"

	"github.com/storeops/sum-backend/database"
	"github.com/storeops/sum-backend/internal/api"
	"github.com/storeops/sum-backend/internal/cache"
	"github.com/storeops/sum-backend/internal/fetch"
	"github.com/storeops/sum-backend/internal/kafka"
	"github.com/storeops/sum-backend/internal/session"
	"github.com/storeops/sum-backend/model"
	"github.com/storeops/sum-backend/restapi"
	"github.com/storeops/sum-backend/util"
)

func main() {
	// Initialize database connection
	db := database.InitializeDatabase()

	// Load the theme catalog
	catalog, err := model.LoadThemeCatalog(util.GetEnvDefault("THEME_FILE", "themes.yml"))
	if err != nil {
		log.Fatalf("Failed to load theme catalog: %v", err)
	}

	ttl := time.Duration(util.GetEnvInt("THEME_CACHE_TTL_SECONDS", 300)) * time.Second
	themeCache := cache.NewThemeCache(ttl, util.GetEnvInt("THEME_CACHE_MAX_ENTRIES", cache.DefaultMaxEntries))

	deps := restapi.Deps{
		Sessions:   session.NewManager(),
		DB:         db,
		Upstream:   fetch.NewClient(util.GetEnvDefault("UPSTREAM_URL", "http://localhost:8080")),
		Themes:     catalog,
		ThemeCache: themeCache,
	}

	app := api.NewFiberApp(deps, db)

	// Start the Kafka event processor for update feed refreshes
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := kafka.RunEventProcessor(ctx, db); err != nil {
		log.Printf("Kafka event processor unavailable: %v", err)
	}

	port := util.GetEnvDefault("MS_PORT", "3000")
	log.Printf("Starting server on port %s", port)
	log.Printf("GraphQL endpoint available at /api/v1/graphql")
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
