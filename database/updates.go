package database

import (
	"context"
	"fmt"
	"time"

	"github.com/arangodb/go-driver/v2/arangodb"
	"github.com/google/uuid"

	"github.com/storeops/sum-backend/model"
	"github.com/storeops/sum-backend/util"
)

// ReplaceUpdateSet swaps the persisted record set for one user. The old
// documents are removed first so refreshes never leave stale rows behind.
func ReplaceUpdateSet(ctx context.Context, db DBConnection, userID string, records []model.UpdateRecord) error {
	query := `
		FOR u IN update
			FILTER u.user_id == @user_id
			REMOVE u IN update
	`
	cursor, err := db.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"user_id": userID},
	})
	if err != nil {
		return fmt.Errorf("failed to clear update set for %s: %w", userID, err)
	}
	cursor.Close()

	col := db.Collections["update"]
	for _, rec := range records {
		doc := struct {
			model.UpdateRecord
			UserID string `json:"user_id"`
		}{UpdateRecord: rec, UserID: userID}
		doc.Key = util.SanitizeKey(userID + "_" + rec.SysID)

		if _, err := col.CreateDocument(ctx, doc); err != nil {
			return fmt.Errorf("failed to store update %s: %w", rec.SysID, err)
		}
	}

	return nil
}

// LoadUpdateSet reads the persisted record set for one user, sorted by name
// for a stable order, used to warm a session before the first upstream fetch
// completes.
func LoadUpdateSet(ctx context.Context, db DBConnection, userID string) ([]model.UpdateRecord, error) {
	query := `
		FOR u IN update
			FILTER u.user_id == @user_id
			SORT u.name ASC
			RETURN u
	`
	cursor, err := db.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"user_id": userID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load update set for %s: %w", userID, err)
	}
	defer cursor.Close()

	var records []model.UpdateRecord
	for cursor.HasMore() {
		var rec model.UpdateRecord
		if _, err := cursor.ReadDocument(ctx, &rec); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}

// SaveSnapshot appends a statistics snapshot to the per-user history.
func SaveSnapshot(ctx context.Context, db DBConnection, userID string, snap model.StatisticsSnapshot) error {
	doc := struct {
		model.StatisticsSnapshot
		Key    string `json:"_key"`
		UserID string `json:"user_id"`
	}{StatisticsSnapshot: snap, Key: uuid.NewString(), UserID: userID}

	if _, err := db.Collections["snapshot"].CreateDocument(ctx, doc); err != nil {
		return fmt.Errorf("failed to store snapshot for %s: %w", userID, err)
	}
	return nil
}

// LatestSnapshot returns the most recent snapshot for the user, or nil when
// none exists.
func LatestSnapshot(ctx context.Context, db DBConnection, userID string) (*model.StatisticsSnapshot, error) {
	query := `
		FOR s IN snapshot
			FILTER s.user_id == @user_id
			SORT s.captured_at DESC
			LIMIT 1
			RETURN s
	`
	cursor, err := db.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"user_id": userID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot for %s: %w", userID, err)
	}
	defer cursor.Close()

	if cursor.HasMore() {
		var snap model.StatisticsSnapshot
		if _, err := cursor.ReadDocument(ctx, &snap); err != nil {
			return nil, err
		}
		return &snap, nil
	}

	return nil, nil
}

// UpsertThemePreference stores the user's theme choice, replacing any
// earlier one.
func UpsertThemePreference(ctx context.Context, db DBConnection, pref model.ThemePreference) error {
	pref.Key = util.SanitizeKey(pref.UserID)
	pref.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	pref.ObjType = "ThemePreference"

	col := db.Collections["preference"]
	exists, err := col.DocumentExists(ctx, pref.Key)
	if err != nil {
		return fmt.Errorf("failed to check preference for %s: %w", pref.UserID, err)
	}

	if exists {
		if _, err := col.ReplaceDocument(ctx, pref.Key, pref); err != nil {
			return fmt.Errorf("failed to replace preference for %s: %w", pref.UserID, err)
		}
		return nil
	}

	if _, err := col.CreateDocument(ctx, pref); err != nil {
		return fmt.Errorf("failed to store preference for %s: %w", pref.UserID, err)
	}
	return nil
}

// GetThemePreference reads the user's stored theme choice, or nil when the
// user never picked one.
func GetThemePreference(ctx context.Context, db DBConnection, userID string) (*model.ThemePreference, error) {
	col := db.Collections["preference"]
	key := util.SanitizeKey(userID)

	exists, err := col.DocumentExists(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to check preference for %s: %w", userID, err)
	}
	if !exists {
		return nil, nil
	}

	var pref model.ThemePreference
	if _, err := col.ReadDocument(ctx, key, &pref); err != nil {
		return nil, fmt.Errorf("failed to read preference for %s: %w", userID, err)
	}
	return &pref, nil
}

// RecordRefresh appends a refresh audit entry.
func RecordRefresh(ctx context.Context, db DBConnection, rec model.RefreshRecord) error {
	rec.Key = uuid.NewString()
	if _, err := db.Collections["refresh"].CreateDocument(ctx, rec); err != nil {
		return fmt.Errorf("failed to store refresh record: %w", err)
	}
	return nil
}

// RecentRefreshes returns the newest audit entries for the user, most
// recent first.
func RecentRefreshes(ctx context.Context, db DBConnection, userID string, limit int) ([]model.RefreshRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		FOR r IN refresh
			FILTER r.user_id == @user_id
			SORT r.completed_at DESC
			LIMIT @limit
			RETURN r
	`
	cursor, err := db.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"user_id": userID, "limit": limit},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load refresh history for %s: %w", userID, err)
	}
	defer cursor.Close()

	var out []model.RefreshRecord
	for cursor.HasMore() {
		var rec model.RefreshRecord
		if _, err := cursor.ReadDocument(ctx, &rec); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}

	return out, nil
}
