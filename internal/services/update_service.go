// Package services provides internal service implementations for the sum-backend.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/storeops/sum-backend/database"
	updates "github.com/storeops/sum-backend/events/modules/updates"
	"github.com/storeops/sum-backend/internal/session"
	"github.com/storeops/sum-backend/model"
)

// UpdateServiceWrapper persists refreshed update payloads and the snapshot
// history derived from them.
type UpdateServiceWrapper struct {
	DB database.DBConnection
}

// ApplyPayload replaces the user's stored record set, writes the calculated
// statistics snapshot, and appends a refresh audit entry.
func (s *UpdateServiceWrapper) ApplyPayload(ctx context.Context, userID string, payload *model.UpdatePayload) error {
	started := time.Now()

	if err := database.ReplaceUpdateSet(ctx, s.DB, userID, payload.Records); err != nil {
		return fmt.Errorf("failed to persist update set: %w", err)
	}

	snap := session.CalculateStatistics(payload.Records, len(payload.Records))
	if err := database.SaveSnapshot(ctx, s.DB, userID, snap); err != nil {
		return fmt.Errorf("failed to persist snapshot: %w", err)
	}

	audit := model.RefreshRecord{
		UserID:      userID,
		RecordCount: len(payload.Records),
		Corrupted:   payload.HasStringCorruption,
		StartedAt:   started.UTC().Format(time.RFC3339),
		CompletedAt: time.Now().UTC().Format(time.RFC3339),
		ObjType:     "RefreshRecord",
	}
	if err := database.RecordRefresh(ctx, s.DB, audit); err != nil {
		return fmt.Errorf("failed to record refresh: %w", err)
	}

	return nil
}

// Ensure compile-time interface check
var _ updates.UpdateService = (*UpdateServiceWrapper)(nil)
