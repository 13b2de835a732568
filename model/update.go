// Package model defines the data structures used by sum-backend,
// including store update records, statistics snapshots, and themes.
package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/storeops/sum-backend/util"
)

// BatchLevel classifies the severity/scope of a pending update, semver-like.
type BatchLevel string

const (
	// BatchLevelMajor marks an update that bumps the major version.
	BatchLevelMajor BatchLevel = "major"
	// BatchLevelMinor marks an update that bumps the minor version.
	BatchLevelMinor BatchLevel = "minor"
	// BatchLevelPatch marks an update that bumps the patch version.
	BatchLevelPatch BatchLevel = "patch"
)

// BatchLevels lists the valid levels in display order.
var BatchLevels = []BatchLevel{BatchLevelMajor, BatchLevelMinor, BatchLevelPatch}

// ParseBatchLevel maps a raw level string to the enum. The second return is
// false for unknown or empty input; observed source data carries corrupted
// level values so callers coerce instead of failing.
func ParseBatchLevel(s string) (BatchLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(BatchLevelMajor):
		return BatchLevelMajor, true
	case string(BatchLevelMinor):
		return BatchLevelMinor, true
	case string(BatchLevelPatch):
		return BatchLevelPatch, true
	default:
		return "", false
	}
}

// UpdateRecord is one row of update information for an installed application.
// Records are held immutably for the session and replaced wholesale on
// refresh; they are never mutated field-by-field.
type UpdateRecord struct {
	Key                string     `json:"_key,omitempty"`
	SysID              string     `json:"sys_id"`
	Name               string     `json:"name"`
	InstalledVersion   string     `json:"installed_version"`
	LatestVersion      string     `json:"latest_version,omitempty"`
	BatchLevel         BatchLevel `json:"batch_level"`
	LatestVersionLevel BatchLevel `json:"latest_version_level,omitempty"`
	MajorCount         int        `json:"major_count"`
	MinorCount         int        `json:"minor_count"`
	PatchCount         int        `json:"patch_count"`
	PublishedDate      string     `json:"published_date,omitempty"`
	ShortDescription   string     `json:"short_description,omitempty"`
	ArtifactRef        string     `json:"artifact_ref,omitempty"`
	VersionScheme      string     `json:"version_scheme,omitempty"`
	ObjType            string     `json:"objtype,omitempty"`
}

// UpdateCount returns the total pending update count across all levels.
func (r UpdateRecord) UpdateCount() int {
	return r.MajorCount + r.MinorCount + r.PatchCount
}

// flexCount decodes a count field that the backend sometimes delivers as a
// string instead of a number. Non-numeric strings and negative values coerce
// to zero with the corrupted flag set so NaN-equivalents never propagate.
type flexCount struct {
	value     int
	corrupted bool
}

func (f *flexCount) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		if n < 0 {
			f.value = 0
			f.corrupted = true
			return nil
		}
		f.value = n
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		n, convErr := strconv.Atoi(strings.TrimSpace(s))
		if convErr != nil || n < 0 {
			f.value = 0
			f.corrupted = true
			return nil
		}
		f.value = n
		return nil
	}

	// null, objects, arrays: coerce like any other corrupt value
	f.value = 0
	f.corrupted = true
	return nil
}

// rawUpdateRecord is the wire shape before coercion and normalization.
type rawUpdateRecord struct {
	SysID              string    `json:"sys_id"`
	Name               string    `json:"name"`
	InstalledVersion   string    `json:"installed_version"`
	LatestVersion      string    `json:"latest_version"`
	BatchLevel         string    `json:"batch_level"`
	LatestVersionLevel string    `json:"latest_version_level"`
	MajorCount         flexCount `json:"major_count"`
	MinorCount         flexCount `json:"minor_count"`
	PatchCount         flexCount `json:"patch_count"`
	PublishedDate      string    `json:"published_date"`
	ShortDescription   string    `json:"short_description"`
	ArtifactRef        string    `json:"artifact_ref"`
	VersionScheme      string    `json:"version_scheme"`
}

// normalize converts a raw record into the internal shape. It reports whether
// any count field was coerced from a corrupt value.
func (raw rawUpdateRecord) normalize() (UpdateRecord, bool) {
	rec := UpdateRecord{
		SysID:            strings.TrimSpace(raw.SysID),
		Name:             strings.TrimSpace(raw.Name),
		InstalledVersion: strings.TrimSpace(raw.InstalledVersion),
		LatestVersion:    strings.TrimSpace(raw.LatestVersion),
		MajorCount:       raw.MajorCount.value,
		MinorCount:       raw.MinorCount.value,
		PatchCount:       raw.PatchCount.value,
		PublishedDate:    strings.TrimSpace(raw.PublishedDate),
		ShortDescription: raw.ShortDescription,
		VersionScheme:    string(util.ParseVersionScheme(raw.VersionScheme)),
		ObjType:          "UpdateRecord",
	}

	corrupted := raw.MajorCount.corrupted || raw.MinorCount.corrupted || raw.PatchCount.corrupted

	if level, ok := ParseBatchLevel(raw.BatchLevel); ok {
		rec.BatchLevel = level
	} else {
		// Corrupt or missing level: patch is the least alarming default
		rec.BatchLevel = BatchLevelPatch
	}

	if level, ok := ParseBatchLevel(raw.LatestVersionLevel); ok {
		rec.LatestVersionLevel = level
	} else if derived, ok := util.ClassifyUpdateLevel(rec.InstalledVersion, rec.LatestVersion,
		util.VersionScheme(rec.VersionScheme)); ok {
		if level, ok := ParseBatchLevel(derived); ok {
			rec.LatestVersionLevel = level
		}
	} else {
		rec.LatestVersionLevel = rec.BatchLevel
	}

	if raw.ArtifactRef != "" {
		if cleaned, err := util.NormalizeArtifactRef(raw.ArtifactRef); err == nil {
			rec.ArtifactRef = cleaned
		} else {
			rec.ArtifactRef = raw.ArtifactRef
		}
	}

	return rec, corrupted
}

// UpdatePayload is the decoded upstream response: the record collection,
// the backend's point-in-time statistics, and the requesting user's context.
type UpdatePayload struct {
	Records             []UpdateRecord     `json:"records"`
	ImmediateStatistics StatisticsSnapshot `json:"immediate_statistics"`
	UserContext         UserContext        `json:"user_context"`

	// HasStringCorruption is set when any numeric field in the raw payload
	// arrived as a non-numeric string and was coerced to zero.
	HasStringCorruption bool `json:"-"`
}

type rawPayload struct {
	Records             []rawUpdateRecord     `json:"records"`
	ImmediateStatistics rawStatisticsSnapshot `json:"immediate_statistics"`
	UserContext         UserContext           `json:"user_context"`
}

// ParseUpdatePayload decodes and normalizes the raw upstream payload. This is
// the single place string-typed numbers are detected and coerced; everything
// downstream works with clean integers.
func ParseUpdatePayload(data []byte) (*UpdatePayload, error) {
	var raw rawPayload
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode update payload: %w", err)
	}

	payload := &UpdatePayload{
		Records:     make([]UpdateRecord, 0, len(raw.Records)),
		UserContext: raw.UserContext,
	}

	for _, rawRec := range raw.Records {
		rec, corrupted := rawRec.normalize()
		if rec.SysID == "" {
			continue
		}
		payload.Records = append(payload.Records, rec)
		if corrupted {
			payload.HasStringCorruption = true
		}
	}

	stats, corrupted := raw.ImmediateStatistics.normalize()
	payload.ImmediateStatistics = stats
	if corrupted {
		payload.HasStringCorruption = true
	}

	return payload, nil
}
