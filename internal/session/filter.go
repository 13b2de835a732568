// Package session implements the per-user dashboard session: filtering,
// pagination, selection tracking, and statistics reconciliation over an
// immutable record set that is replaced wholesale on refresh.
package session

import (
	"sort"
	"strings"

	"github.com/storeops/sum-backend/model"
	"github.com/storeops/sum-backend/util"
)

// DefaultSearchMinLength is the shortest search term that triggers matching.
// Shorter terms are ignored rather than rejected so the filter state can hold
// partial input while the user types.
const DefaultSearchMinLength = 3

// SortDirection orders filter output ascending or descending.
type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// SortFields lists the record fields the engine can sort by.
var SortFields = []string{"name", "installed_version", "batch_level", "published_date", "update_count"}

// FilterState captures the user's active filter criteria. The zero value
// matches every record.
type FilterState struct {
	SearchTerm      string
	Levels          []model.BatchLevel
	PublishedDates  []string
	SortField       string
	SortDirection   SortDirection
	SearchMinLength int
}

// IsActive reports whether any criterion would narrow the record set.
func (f FilterState) IsActive() bool {
	return f.effectiveSearch() != "" || len(f.Levels) > 0 || len(f.PublishedDates) > 0
}

func (f FilterState) minLength() int {
	if f.SearchMinLength > 0 {
		return f.SearchMinLength
	}
	return DefaultSearchMinLength
}

// effectiveSearch returns the lowercased search term, or empty when the term
// is too short to apply.
func (f FilterState) effectiveSearch() string {
	term := strings.ToLower(strings.TrimSpace(f.SearchTerm))
	if len(term) < f.minLength() {
		return ""
	}
	return term
}

func (f FilterState) matches(rec model.UpdateRecord) bool {
	if term := f.effectiveSearch(); term != "" {
		name := strings.ToLower(rec.Name)
		desc := strings.ToLower(rec.ShortDescription)
		if !strings.Contains(name, term) && !strings.Contains(desc, term) {
			return false
		}
	}

	// OR within a facet, AND across facets
	if len(f.Levels) > 0 {
		found := false
		for _, level := range f.Levels {
			if rec.BatchLevel == level {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if len(f.PublishedDates) > 0 {
		found := false
		for _, date := range f.PublishedDates {
			if rec.PublishedDate == date {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// levelRank orders levels by severity for sorting, major first.
func levelRank(level model.BatchLevel) int {
	switch level {
	case model.BatchLevelMajor:
		return 0
	case model.BatchLevelMinor:
		return 1
	default:
		return 2
	}
}

// ApplyFilters returns the records matching the filter state, sorted per its
// sort criteria. The input slice is never modified; callers can apply
// different filter states to the same record set concurrently.
func ApplyFilters(records []model.UpdateRecord, state FilterState) []model.UpdateRecord {
	out := make([]model.UpdateRecord, 0, len(records))
	for _, rec := range records {
		if state.matches(rec) {
			out = append(out, rec)
		}
	}

	// An empty or unrecognized sort field keeps insertion order.
	if !util.Contains(SortFields, state.SortField) {
		return out
	}

	desc := state.SortDirection == SortDescending
	sort.SliceStable(out, func(i, j int) bool {
		less := lessByField(out[i], out[j], state.SortField)
		if desc {
			return lessByField(out[j], out[i], state.SortField)
		}
		return less
	})

	return out
}

func lessByField(a, b model.UpdateRecord, field string) bool {
	switch field {
	case "installed_version":
		return strings.ToLower(a.InstalledVersion) < strings.ToLower(b.InstalledVersion)
	case "batch_level":
		return levelRank(a.BatchLevel) < levelRank(b.BatchLevel)
	case "published_date":
		return a.PublishedDate < b.PublishedDate
	case "update_count":
		return a.UpdateCount() < b.UpdateCount()
	default: // "name"
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	}
}
