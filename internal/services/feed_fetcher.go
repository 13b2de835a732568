package services

import (
	"context"
	"fmt"
	"log"

	updates "github.com/storeops/sum-backend/events/modules/updates"
	"github.com/storeops/sum-backend/internal/fetch"
	"github.com/storeops/sum-backend/util"
)

// FeedFetcher implements updates.PayloadFetcher against the store API.
type FeedFetcher struct {
	client *fetch.Client
}

// NewFeedFetcher builds a fetcher pointed at the configured upstream.
func NewFeedFetcher() *FeedFetcher {
	return &FeedFetcher{
		client: fetch.NewClient(util.GetEnvDefault("UPSTREAM_URL", "http://localhost:8080")),
	}
}

// FetchPayload retrieves the refreshed payload for the user. The feed id is
// advisory; the store API always serves the newest payload per user.
func (f *FeedFetcher) FetchPayload(ctx context.Context, userID, feedID string) ([]byte, error) {
	log.Printf("Fetching update payload for user %s (feed=%s)", userID, feedID)

	if userID == "" {
		return nil, fmt.Errorf("user id is empty")
	}

	return f.client.FetchUpdates(ctx, userID)
}

// Ensure compile-time interface check
var _ updates.PayloadFetcher = (*FeedFetcher)(nil)
