package session

import (
	"time"

	"github.com/storeops/sum-backend/model"
)

// Snapshot source labels.
const (
	SourceImmediate  = "immediate"
	SourceCalculated = "calculated"
)

// Default reconciliation thresholds. A field difference is significant when
// it exceeds the relative tolerance of the larger value or the absolute
// floor, whichever trips first.
const (
	DefaultRelativeTolerance = 0.10
	DefaultAbsoluteFloor     = 5
)

// ReconcileOptions tunes the significance thresholds. Zero values fall back
// to the defaults.
type ReconcileOptions struct {
	RelativeTolerance float64
	AbsoluteFloor     int
}

func (o ReconcileOptions) tolerance() float64 {
	if o.RelativeTolerance > 0 {
		return o.RelativeTolerance
	}
	return DefaultRelativeTolerance
}

func (o ReconcileOptions) floor() int {
	if o.AbsoluteFloor > 0 {
		return o.AbsoluteFloor
	}
	return DefaultAbsoluteFloor
}

// CalculateStatistics derives a snapshot from the full record set. Totals
// sum the per-record pending-update counts; the critical count tallies
// records whose batch level is major.
func CalculateStatistics(records []model.UpdateRecord, currentlyShown int) model.StatisticsSnapshot {
	snap := model.StatisticsSnapshot{
		TotalApplications: len(records),
		CurrentlyShown:    currentlyShown,
		Source:            SourceCalculated,
		CapturedAt:        time.Now().UTC().Format(time.RFC3339),
		ObjType:           "StatisticsSnapshot",
	}
	for _, rec := range records {
		snap.TotalMajorUpdates += rec.MajorCount
		snap.TotalMinorUpdates += rec.MinorCount
		snap.TotalPatchUpdates += rec.PatchCount
		if rec.BatchLevel == model.BatchLevelMajor {
			snap.CriticalCount++
		}
	}
	return snap
}

// Reconciliation is the outcome of comparing the immediate and calculated
// snapshots: which one the dashboard should display, and whether the two
// disagree enough to surface a data-quality warning.
type Reconciliation struct {
	Preferred                model.StatisticsSnapshot `json:"preferred"`
	Source                   string                   `json:"source"`
	HasSignificantDifference bool                     `json:"has_significant_difference"`
	HasStringCorruption      bool                     `json:"has_string_corruption"`
}

// Reconcile compares the backend's immediate snapshot against the one
// calculated from the loaded records. The calculated snapshot is preferred
// because it reflects the data actually on screen; the immediate one is kept
// only as the comparison baseline. Reconcile is a pure function of its
// inputs, so reconciling twice with the same snapshots yields the same
// result.
func Reconcile(immediate, calculated model.StatisticsSnapshot, corrupted bool, opts ReconcileOptions) Reconciliation {
	rec := Reconciliation{
		Preferred:           calculated,
		Source:              SourceCalculated,
		HasStringCorruption: corrupted,
	}

	fields := []struct {
		immediate  int
		calculated int
	}{
		{immediate.TotalApplications, calculated.TotalApplications},
		{immediate.TotalMajorUpdates, calculated.TotalMajorUpdates},
		{immediate.TotalMinorUpdates, calculated.TotalMinorUpdates},
		{immediate.TotalPatchUpdates, calculated.TotalPatchUpdates},
		{immediate.CriticalCount, calculated.CriticalCount},
		// CurrentlyShown is view state, not data quality; never compared
	}

	for _, f := range fields {
		if significantDiff(f.immediate, f.calculated, opts) {
			rec.HasSignificantDifference = true
			break
		}
	}

	return rec
}

// significantDiff applies the relative tolerance against the larger of the
// two values, with the absolute floor guarding small bases where a tiny
// absolute change is a huge relative one.
func significantDiff(a, b int, opts ReconcileOptions) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	if diff == 0 {
		return false
	}

	base := a
	if b > base {
		base = b
	}
	if base == 0 {
		return false
	}

	if diff >= opts.floor() {
		return true
	}
	return float64(diff) > opts.tolerance()*float64(base)
}
