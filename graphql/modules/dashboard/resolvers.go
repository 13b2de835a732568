// Package dashboard implements the resolvers for dashboard metrics.
package dashboard

import (
	"context"
	"sort"

	"github.com/storeops/sum-backend/database"
	"github.com/storeops/sum-backend/internal/session"
)

// ResolveOverview handles fetching the high-level dashboard metrics for one
// user. The reconciled statistics come straight from the session view, so
// GraphQL and REST always report the same figures.
func ResolveOverview(mgr *session.Manager, userID string) (interface{}, error) {
	view := mgr.Get(userID).View()

	return map[string]interface{}{
		"total_applications":         view.Statistics.TotalApplications,
		"total_major_updates":        view.Statistics.TotalMajorUpdates,
		"total_minor_updates":        view.Statistics.TotalMinorUpdates,
		"total_patch_updates":        view.Statistics.TotalPatchUpdates,
		"critical_count":             view.Statistics.CriticalCount,
		"currently_shown":            view.Statistics.CurrentlyShown,
		"statistics_source":          view.Source,
		"phase":                      string(view.Phase),
		"has_significant_difference": view.SignificantGap,
		"has_string_corruption":      view.Corrupted,
	}, nil
}

// ResolveLevelDistribution fetches the per-level record breakdown
func ResolveLevelDistribution(mgr *session.Manager, userID string) (interface{}, error) {
	var major, minor, patch int
	for _, rec := range mgr.Get(userID).Records() {
		switch rec.BatchLevel {
		case "major":
			major++
		case "minor":
			minor++
		default:
			patch++
		}
	}

	return map[string]interface{}{
		"major": major,
		"minor": minor,
		"patch": patch,
	}, nil
}

// ResolveRecentUpdates returns the newest published records for the user
func ResolveRecentUpdates(mgr *session.Manager, userID string, limit int) (interface{}, error) {
	records := mgr.Get(userID).Records()

	recent := make([]map[string]interface{}, 0, len(records))
	sorted := append(records[:0:0], records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PublishedDate > sorted[j].PublishedDate
	})

	for _, rec := range sorted {
		if len(recent) >= limit {
			break
		}
		recent = append(recent, map[string]interface{}{
			"sys_id":            rec.SysID,
			"name":              rec.Name,
			"installed_version": rec.InstalledVersion,
			"latest_version":    rec.LatestVersion,
			"batch_level":       string(rec.BatchLevel),
			"published_date":    rec.PublishedDate,
		})
	}

	return recent, nil
}

// ResolveRefreshHistory returns the newest refresh audit entries
func ResolveRefreshHistory(db database.DBConnection, userID string, limit int) (interface{}, error) {
	return database.RecentRefreshes(context.Background(), db, userID, limit)
}
