package session

import (
	"sort"

	"github.com/storeops/sum-backend/model"
)

// SelectionSet tracks which records the user has marked for action. Only
// sys_ids are stored; counts and level breakdowns are always computed
// against the live record set, so a selected record that disappears on
// refresh or no longer matches simply stops contributing.
type SelectionSet struct {
	ids map[string]struct{}
}

// NewSelectionSet returns an empty selection.
func NewSelectionSet() *SelectionSet {
	return &SelectionSet{ids: make(map[string]struct{})}
}

// Toggle flips the membership of one sys_id and reports the new state.
func (s *SelectionSet) Toggle(sysID string) bool {
	if sysID == "" {
		return false
	}
	if _, ok := s.ids[sysID]; ok {
		delete(s.ids, sysID)
		return false
	}
	s.ids[sysID] = struct{}{}
	return true
}

// Contains reports whether the sys_id is selected.
func (s *SelectionSet) Contains(sysID string) bool {
	_, ok := s.ids[sysID]
	return ok
}

// SelectAll adds every given record to the selection. Used for
// "select all visible" where the caller passes the current filtered page.
func (s *SelectionSet) SelectAll(records []model.UpdateRecord) {
	for _, rec := range records {
		if rec.SysID != "" {
			s.ids[rec.SysID] = struct{}{}
		}
	}
}

// Deselect removes the given records from the selection.
func (s *SelectionSet) Deselect(records []model.UpdateRecord) {
	for _, rec := range records {
		delete(s.ids, rec.SysID)
	}
}

// Clear empties the selection.
func (s *SelectionSet) Clear() {
	s.ids = make(map[string]struct{})
}

// Size returns the number of tracked sys_ids, including ones that no longer
// resolve to a live record.
func (s *SelectionSet) Size() int {
	return len(s.ids)
}

// SysIDs returns the tracked ids in sorted order for deterministic output.
func (s *SelectionSet) SysIDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// SelectionStats summarizes the selected records that still exist in the
// live record set.
type SelectionStats struct {
	SelectedCount int `json:"selected_count"`
	MajorCount    int `json:"major_count"`
	MinorCount    int `json:"minor_count"`
	PatchCount    int `json:"patch_count"`
	UpdateTotal   int `json:"update_total"`
}

// Stats computes the selection summary against the live records. Tracked
// ids without a matching record are excluded from every figure.
func (s *SelectionSet) Stats(records []model.UpdateRecord) SelectionStats {
	var stats SelectionStats
	for _, rec := range records {
		if !s.Contains(rec.SysID) {
			continue
		}
		stats.SelectedCount++
		stats.UpdateTotal += rec.UpdateCount()
		switch rec.BatchLevel {
		case model.BatchLevelMajor:
			stats.MajorCount++
		case model.BatchLevelMinor:
			stats.MinorCount++
		case model.BatchLevelPatch:
			stats.PatchCount++
		}
	}
	return stats
}

// Resolve returns the live records currently selected, in record-set order.
func (s *SelectionSet) Resolve(records []model.UpdateRecord) []model.UpdateRecord {
	out := make([]model.UpdateRecord, 0, len(s.ids))
	for _, rec := range records {
		if s.Contains(rec.SysID) {
			out = append(out, rec)
		}
	}
	return out
}
