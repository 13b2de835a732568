// Package updates handles Kafka event processing for update feed refresh events.
package updates

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/storeops/sum-backend/model"
)

// PayloadFetcher defines the interface for fetching a refreshed update payload.
type PayloadFetcher interface {
	FetchPayload(ctx context.Context, userID, feedID string) ([]byte, error)
}

// UpdateService defines the interface for applying a refreshed payload.
type UpdateService interface {
	ApplyPayload(ctx context.Context, userID string, payload *model.UpdatePayload) error
}

// HandleUpdateFeedRefreshedWithService processes update feed refresh events from Kafka.
func HandleUpdateFeedRefreshedWithService(
	ctx context.Context,
	msg []byte,
	fetcher PayloadFetcher,
	service UpdateService,
) error {
	var event UpdateFeedRefreshedEvent
	if err := json.Unmarshal(msg, &event); err != nil {
		return fmt.Errorf("failed to unmarshal UpdateFeedRefreshedEvent: %w", err)
	}

	if event.UserID == "" || event.Feed.FeedID == "" {
		return fmt.Errorf("invalid event: missing required fields")
	}

	log.Printf("Processing update feed %s for user %s", event.Feed.FeedID, event.UserID)

	data, err := fetcher.FetchPayload(ctx, event.UserID, event.Feed.FeedID)
	if err != nil {
		return fmt.Errorf("failed to fetch payload for feed %s: %w", event.Feed.FeedID, err)
	}

	payload, err := model.ParseUpdatePayload(data)
	if err != nil {
		return fmt.Errorf("failed to parse payload for feed %s: %w", event.Feed.FeedID, err)
	}

	if err := service.ApplyPayload(ctx, event.UserID, payload); err != nil {
		return fmt.Errorf("internal service error: %w", err)
	}

	log.Printf("Successfully processed update feed %s for user %s (%d records)",
		event.Feed.FeedID, event.UserID, len(payload.Records))
	return nil
}
