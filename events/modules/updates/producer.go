// Package updates handles Kafka event production for update feed refresh events.
package updates

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// UpdateProducer handles sending feed refresh events to Kafka
type UpdateProducer struct {
	Writer *kafka.Writer
}

// NewUpdateProducer initializes a new Kafka writer for update feed events
func NewUpdateProducer(brokers []string, topic string) *UpdateProducer {
	return &UpdateProducer{
		Writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// PublishUpdateFeedRefreshed sends the event to the Kafka topic
func (p *UpdateProducer) PublishUpdateFeedRefreshed(ctx context.Context, userID, feedID string) error {

	// Construct the Event Contract
	event := UpdateFeedRefreshedEvent{
		EventType:     "update.feed.refreshed",
		EventID:       uuid.New().String(),
		EventTime:     time.Now().UTC(),
		SchemaVersion: "v1",
		UserID:        userID,
		Feed: FeedReference{
			FeedID:      feedID,
			SourceType:  "store-api",
			PublishedAt: time.Now().UTC(),
		},
	}

	// Marshal to JSON
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	// Write to Kafka
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(userID),
		Value: payload,
	})
}

// Close cleans up the Kafka writer
func (p *UpdateProducer) Close() error {
	return p.Writer.Close()
}
