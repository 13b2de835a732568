package session

import (
	"testing"

	"github.com/storeops/sum-backend/model"
)

func loadedSession(t *testing.T, records []model.UpdateRecord, immediate model.StatisticsSnapshot) *Session {
	t.Helper()
	sess := New(ReconcileOptions{})
	gen := sess.BeginRefresh()
	ok := sess.LoadRecords(gen, &model.UpdatePayload{
		Records:             records,
		ImmediateStatistics: immediate,
		UserContext:         model.UserContext{UserID: "u1"},
	})
	if !ok {
		t.Fatal("LoadRecords rejected a current generation")
	}
	return sess
}

func TestSessionPhaseTransitions(t *testing.T) {
	sess := New(ReconcileOptions{})
	if sess.Phase() != PhaseUninitialized {
		t.Fatalf("Phase = %q, want uninitialized", sess.Phase())
	}

	sess.LoadImmediate(model.StatisticsSnapshot{TotalApplications: 6}, model.UserContext{UserID: "u1"})
	if sess.Phase() != PhaseImmediateOnly {
		t.Fatalf("Phase = %q after immediate load, want immediate_only", sess.Phase())
	}

	view := sess.View()
	if view.Source != SourceImmediate {
		t.Errorf("Source = %q in immediate-only phase, want immediate", view.Source)
	}
	if view.Statistics.TotalApplications != 6 {
		t.Errorf("TotalApplications = %d, want 6 from immediate snapshot", view.Statistics.TotalApplications)
	}

	gen := sess.BeginRefresh()
	sess.LoadRecords(gen, &model.UpdatePayload{Records: sampleRecords()})
	if sess.Phase() != PhaseReconciled {
		t.Fatalf("Phase = %q after record load, want reconciled", sess.Phase())
	}

	view = sess.View()
	if view.Source != SourceCalculated {
		t.Errorf("Source = %q in reconciled phase, want calculated", view.Source)
	}
}

func TestSessionReconciledStaysReconciledOnImmediate(t *testing.T) {
	sess := loadedSession(t, sampleRecords(), model.StatisticsSnapshot{})
	sess.LoadImmediate(model.StatisticsSnapshot{TotalApplications: 99}, model.UserContext{})
	if sess.Phase() != PhaseReconciled {
		t.Errorf("Phase = %q, want reconciled; a partial snapshot must not demote full data", sess.Phase())
	}
}

func TestSessionLastRefreshWins(t *testing.T) {
	sess := New(ReconcileOptions{})

	stale := sess.BeginRefresh()
	fresh := sess.BeginRefresh()

	if !sess.LoadRecords(fresh, &model.UpdatePayload{Records: sampleRecords()}) {
		t.Fatal("fresh generation rejected")
	}
	if sess.LoadRecords(stale, &model.UpdatePayload{Records: makeRecords(2)}) {
		t.Fatal("stale generation accepted")
	}
	if got := len(sess.Records()); got != len(sampleRecords()) {
		t.Errorf("record count = %d, want %d from the fresh load", got, len(sampleRecords()))
	}
}

func TestSessionRefreshClearsSelection(t *testing.T) {
	sess := loadedSession(t, sampleRecords(), model.StatisticsSnapshot{})
	sess.ToggleSelection("s1")
	sess.ToggleSelection("s2")

	gen := sess.BeginRefresh()
	sess.LoadRecords(gen, &model.UpdatePayload{Records: makeRecords(3)})

	if got := len(sess.SelectedSysIDs()); got != 0 {
		t.Errorf("selection has %d entries after refresh, want 0", got)
	}
}

func TestSessionSetFilterResetsPage(t *testing.T) {
	sess := loadedSession(t, makeRecords(57), model.StatisticsSnapshot{})
	sess.Navigate(func(p PaginationState) PaginationState { return p.Last() })
	if got := sess.View().Page.PageIndex; got != 3 {
		t.Fatalf("PageIndex = %d after Last, want 3", got)
	}

	sess.SetFilter(FilterState{SearchTerm: "App 00"})
	if got := sess.View().Page.PageIndex; got != 1 {
		t.Errorf("PageIndex = %d after filter change, want 1", got)
	}
}

func TestSessionViewReconciles(t *testing.T) {
	// immediate snapshot disagrees with the loaded records by more than 10%
	immediate := model.StatisticsSnapshot{
		TotalApplications: 10,
		TotalMajorUpdates: 3,
		TotalMinorUpdates: 5,
		TotalPatchUpdates: 5,
		CriticalCount:     2,
	}
	sess := loadedSession(t, sampleRecords(), immediate)

	view := sess.View()
	if view.Statistics.TotalApplications != 6 {
		t.Errorf("TotalApplications = %d, want 6 from calculated snapshot", view.Statistics.TotalApplications)
	}
	if !view.SignificantGap {
		t.Error("SignificantGap = false; 10 vs 6 applications is beyond tolerance")
	}
	if view.Statistics.CurrentlyShown != len(sampleRecords()) {
		t.Errorf("CurrentlyShown = %d, want %d", view.Statistics.CurrentlyShown, len(sampleRecords()))
	}
}

func TestSessionViewCurrentlyShownTracksFilter(t *testing.T) {
	sess := loadedSession(t, sampleRecords(), model.StatisticsSnapshot{})
	sess.SetFilter(FilterState{Levels: []model.BatchLevel{model.BatchLevelMajor}})

	view := sess.View()
	if view.Statistics.CurrentlyShown != 2 {
		t.Errorf("CurrentlyShown = %d, want 2 filtered records", view.Statistics.CurrentlyShown)
	}
	if view.Statistics.TotalApplications != 6 {
		t.Errorf("TotalApplications = %d, want 6; totals cover the full set, not the filter", view.Statistics.TotalApplications)
	}
}

func TestSessionViewCorruptionFlag(t *testing.T) {
	sess := New(ReconcileOptions{})
	gen := sess.BeginRefresh()
	sess.LoadRecords(gen, &model.UpdatePayload{
		Records:             sampleRecords(),
		HasStringCorruption: true,
	})
	if !sess.View().Corrupted {
		t.Error("Corrupted = false, want true when the payload was coerced")
	}
}

func TestSessionSelectVisible(t *testing.T) {
	sess := loadedSession(t, makeRecords(57), model.StatisticsSnapshot{})
	sess.Navigate(func(p PaginationState) PaginationState { return p.Last() })

	if got := sess.SelectVisible(); got != 7 {
		t.Errorf("SelectVisible() = %d, want the 7 records on the last page", got)
	}

	stats := sess.SelectionStats()
	if stats.SelectedCount != 7 {
		t.Errorf("SelectedCount = %d, want 7", stats.SelectedCount)
	}
}

func TestSessionAssembleInstall(t *testing.T) {
	sess := loadedSession(t, sampleRecords(), model.StatisticsSnapshot{})
	sess.ToggleSelection("s2")
	sess.ToggleSelection("s4")
	sess.ToggleSelection("ghost")

	req, err := sess.AssembleInstall("install")
	if err != nil {
		t.Fatalf("AssembleInstall() error = %v", err)
	}
	if len(req.SysIDs) != 2 {
		t.Errorf("SysIDs = %v, want the two live selections only", req.SysIDs)
	}
	if req.UserID != "u1" {
		t.Errorf("UserID = %q, want u1", req.UserID)
	}

	if _, err := sess.AssembleInstall("detonate"); err == nil {
		t.Error("expected error for unknown action")
	}

	sess.ClearSelection()
	if _, err := sess.AssembleInstall("install"); err == nil {
		t.Error("expected error for empty selection")
	}
}

func TestSessionIdentityNoFilter(t *testing.T) {
	records := sampleRecords()
	sess := loadedSession(t, records, model.StatisticsSnapshot{})

	view := sess.View()
	if view.Page.TotalRecords != len(records) {
		t.Errorf("TotalRecords = %d, want %d with no filter active", view.Page.TotalRecords, len(records))
	}
	for i, rec := range view.Page.Items {
		if rec.SysID != records[i].SysID {
			t.Fatalf("record order changed at %d without filter or sort", i)
		}
	}
}
