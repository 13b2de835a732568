// Package updates defines types for Kafka event processing of update feed refresh events.
package updates

import (
	"time"
)

// UpdateFeedRefreshedEvent represents an update feed refresh event published to Kafka.
// The store emits one whenever a user's pending-update feed changes upstream;
// the payload itself is fetched separately via the feed reference.
type UpdateFeedRefreshedEvent struct {
	EventType     string    `json:"event_type"`
	EventID       string    `json:"event_id"`
	EventTime     time.Time `json:"event_time"`
	SchemaVersion string    `json:"schema_version"`

	UserID string `json:"user_id"`

	Feed FeedReference `json:"feed_ref"`
}

// FeedReference describes where the refreshed payload can be retrieved.
type FeedReference struct {
	// Opaque handle the upstream store issues for this payload
	FeedID string `json:"feed_id"`

	// Source system identifier (e.g. "store-api", "batch-export")
	SourceType string `json:"source_type"`

	// Optional integrity metadata
	ContentSha string `json:"content_sha,omitempty"`
	SizeBytes  int64  `json:"size_bytes,omitempty"`

	// Timestamp when the payload was published upstream
	PublishedAt time.Time `json:"published_at"`
}
