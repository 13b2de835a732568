package updates

import (
	"context"
	"errors"
	"testing"

	"github.com/storeops/sum-backend/model"
)

type fakeFetcher struct {
	data []byte
	err  error
}

func (f *fakeFetcher) FetchPayload(_ context.Context, _, _ string) ([]byte, error) {
	return f.data, f.err
}

type captureService struct {
	userID  string
	payload *model.UpdatePayload
	err     error
}

func (s *captureService) ApplyPayload(_ context.Context, userID string, payload *model.UpdatePayload) error {
	s.userID = userID
	s.payload = payload
	return s.err
}

func TestHandleUpdateFeedRefreshed(t *testing.T) {
	fetcher := &fakeFetcher{data: []byte(`{
		"records": [
			{"sys_id": "s1", "name": "Service Portal", "installed_version": "1.0.0",
			 "batch_level": "minor", "minor_count": "2"}
		]
	}`)}
	service := &captureService{}

	msg := []byte(`{
		"event_type": "update.feed.refreshed",
		"user_id": "u1",
		"feed_ref": {"feed_id": "f42"}
	}`)

	if err := HandleUpdateFeedRefreshedWithService(context.Background(), msg, fetcher, service); err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if service.userID != "u1" {
		t.Errorf("service received user %q, want u1", service.userID)
	}
	if len(service.payload.Records) != 1 {
		t.Fatalf("service received %d records, want 1", len(service.payload.Records))
	}
	if service.payload.Records[0].MinorCount != 2 {
		t.Errorf("MinorCount = %d, want coerced 2", service.payload.Records[0].MinorCount)
	}
}

func TestHandleUpdateFeedRefreshedRejectsIncompleteEvent(t *testing.T) {
	msg := []byte(`{"event_type": "update.feed.refreshed", "user_id": "", "feed_ref": {}}`)
	err := HandleUpdateFeedRefreshedWithService(context.Background(), msg, &fakeFetcher{}, &captureService{})
	if err == nil {
		t.Fatal("expected error for event missing user and feed ids")
	}
}

func TestHandleUpdateFeedRefreshedBadJSON(t *testing.T) {
	err := HandleUpdateFeedRefreshedWithService(context.Background(), []byte(`{`), &fakeFetcher{}, &captureService{})
	if err == nil {
		t.Fatal("expected error for malformed event")
	}
}

func TestHandleUpdateFeedRefreshedFetchFailure(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("storage offline")}
	msg := []byte(`{"user_id": "u1", "feed_ref": {"feed_id": "f1"}}`)

	err := HandleUpdateFeedRefreshedWithService(context.Background(), msg, fetcher, &captureService{})
	if err == nil {
		t.Fatal("expected error when fetch fails")
	}
}

func TestHandleUpdateFeedRefreshedServiceFailure(t *testing.T) {
	fetcher := &fakeFetcher{data: []byte(`{"records": []}`)}
	service := &captureService{err: errors.New("db down")}
	msg := []byte(`{"user_id": "u1", "feed_ref": {"feed_id": "f1"}}`)

	err := HandleUpdateFeedRefreshedWithService(context.Background(), msg, fetcher, service)
	if err == nil {
		t.Fatal("expected error when service fails")
	}
}
