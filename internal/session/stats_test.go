package session

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/storeops/sum-backend/model"
)

func TestCalculateStatistics(t *testing.T) {
	got := CalculateStatistics(sampleRecords(), 4)

	want := model.StatisticsSnapshot{
		TotalApplications: 6,
		TotalMajorUpdates: 3,
		TotalMinorUpdates: 5,
		TotalPatchUpdates: 5,
		CriticalCount:     2,
		CurrentlyShown:    4,
		Source:            SourceCalculated,
		ObjType:           "StatisticsSnapshot",
	}
	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(model.StatisticsSnapshot{}, "CapturedAt")); diff != "" {
		t.Errorf("CalculateStatistics mismatch (-want +got):\n%s", diff)
	}
}

func TestCalculateStatisticsEmpty(t *testing.T) {
	got := CalculateStatistics(nil, 0)
	if got.TotalApplications != 0 || got.TotalUpdates() != 0 || got.CriticalCount != 0 {
		t.Errorf("empty set produced non-zero snapshot: %+v", got)
	}
}

func TestReconcilePrefersCalculated(t *testing.T) {
	immediate := model.StatisticsSnapshot{TotalApplications: 10, Source: SourceImmediate}
	calculated := model.StatisticsSnapshot{TotalApplications: 10, Source: SourceCalculated}

	rec := Reconcile(immediate, calculated, false, ReconcileOptions{})
	if rec.Source != SourceCalculated {
		t.Errorf("Source = %q, want calculated", rec.Source)
	}
	if rec.Preferred.Source != SourceCalculated {
		t.Errorf("Preferred.Source = %q, want calculated", rec.Preferred.Source)
	}
	if rec.HasSignificantDifference {
		t.Error("identical snapshots flagged as significantly different")
	}
}

func TestReconcileSignificantDifference(t *testing.T) {
	tests := []struct {
		name        string
		immediate   int
		calculated  int
		opts        ReconcileOptions
		significant bool
	}{
		{"identical", 10, 10, ReconcileOptions{}, false},
		{"forty percent gap", 10, 14, ReconcileOptions{}, true},
		{"within ten percent", 100, 104, ReconcileOptions{}, false},
		{"hits absolute floor", 100, 105, ReconcileOptions{}, true},
		{"tight tolerance", 100, 103, ReconcileOptions{RelativeTolerance: 0.02}, true},
		{"raised floor", 100, 106, ReconcileOptions{AbsoluteFloor: 10, RelativeTolerance: 0.10}, false},
		{"zero baseline", 0, 0, ReconcileOptions{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			immediate := model.StatisticsSnapshot{TotalApplications: tt.immediate}
			calculated := model.StatisticsSnapshot{TotalApplications: tt.calculated}
			rec := Reconcile(immediate, calculated, false, tt.opts)
			if rec.HasSignificantDifference != tt.significant {
				t.Errorf("HasSignificantDifference = %v, want %v", rec.HasSignificantDifference, tt.significant)
			}
		})
	}
}

func TestReconcileIgnoresCurrentlyShown(t *testing.T) {
	immediate := model.StatisticsSnapshot{TotalApplications: 50, CurrentlyShown: 50}
	calculated := model.StatisticsSnapshot{TotalApplications: 50, CurrentlyShown: 3}

	rec := Reconcile(immediate, calculated, false, ReconcileOptions{})
	if rec.HasSignificantDifference {
		t.Error("CurrentlyShown gap flagged as significant; it is view state, not data quality")
	}
}

func TestReconcileIdempotent(t *testing.T) {
	immediate := model.StatisticsSnapshot{TotalApplications: 10, TotalMajorUpdates: 3}
	calculated := model.StatisticsSnapshot{TotalApplications: 14, TotalMajorUpdates: 3}

	first := Reconcile(immediate, calculated, true, ReconcileOptions{})
	second := Reconcile(immediate, calculated, true, ReconcileOptions{})
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated reconciliation differs (-first +second):\n%s", diff)
	}
}

func TestReconcileCarriesCorruptionFlag(t *testing.T) {
	snap := model.StatisticsSnapshot{TotalApplications: 5}
	rec := Reconcile(snap, snap, true, ReconcileOptions{})
	if !rec.HasStringCorruption {
		t.Error("HasStringCorruption = false, want true")
	}
	if rec.HasSignificantDifference {
		t.Error("corruption alone should not flag a significant difference")
	}
}
