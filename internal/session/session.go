package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/storeops/sum-backend/model"
)

// Phase tracks how much data the session holds.
type Phase string

const (
	// PhaseUninitialized means no data has arrived yet.
	PhaseUninitialized Phase = "uninitialized"
	// PhaseImmediateOnly means the backend snapshot arrived but the full
	// record set has not; the immediate snapshot is all we can show.
	PhaseImmediateOnly Phase = "immediate_only"
	// PhaseReconciled means the full record set is loaded and the
	// calculated snapshot is authoritative.
	PhaseReconciled Phase = "reconciled"
)

// Session holds all per-user dashboard state. Every piece of state lives on
// the struct so two users, or two tests, never share anything. All exported
// methods are safe for concurrent use.
type Session struct {
	mu sync.Mutex

	userCtx   model.UserContext
	records   []model.UpdateRecord
	immediate model.StatisticsSnapshot
	corrupted bool
	phase     Phase

	filter    FilterState
	paging    PaginationState
	selection *SelectionSet

	opts ReconcileOptions

	// generation increments on BeginRefresh; LoadRecords calls carrying a
	// stale generation are dropped so only the last started refresh wins.
	generation uint64
}

// New creates an empty session with the given reconciliation thresholds.
func New(opts ReconcileOptions) *Session {
	return &Session{
		phase:     PhaseUninitialized,
		paging:    NewPaginationState(DefaultPageSize, 0),
		selection: NewSelectionSet(),
		opts:      opts,
	}
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// UserContext returns the user the session data was fetched for.
func (s *Session) UserContext() model.UserContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userCtx
}

// LoadImmediate installs the backend's point-in-time snapshot before the
// record set is available. It moves an uninitialized session to
// immediate-only; a reconciled session stays reconciled since full data
// always beats a partial snapshot.
func (s *Session) LoadImmediate(snap model.StatisticsSnapshot, userCtx model.UserContext) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap.Source = SourceImmediate
	s.immediate = snap
	s.userCtx = userCtx
	if s.phase == PhaseUninitialized {
		s.phase = PhaseImmediateOnly
	}
}

// BeginRefresh marks the start of a record fetch and returns the generation
// token the eventual LoadRecords call must present. Starting a newer refresh
// invalidates every earlier token.
func (s *Session) BeginRefresh() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}

// LoadRecords installs a freshly fetched record set. The call is ignored
// when a newer refresh has started since the given token was issued, so
// out-of-order fetch completions cannot clobber newer data. Loading clears
// the selection: the old sys_ids may not exist in the new set, and acting
// on a stale selection is worse than reselecting.
func (s *Session) LoadRecords(gen uint64, payload *model.UpdatePayload) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		return false
	}

	s.records = payload.Records
	s.immediate = payload.ImmediateStatistics
	s.userCtx = payload.UserContext
	s.corrupted = payload.HasStringCorruption
	s.phase = PhaseReconciled
	s.selection.Clear()
	s.paging = s.paging.WithTotal(len(payload.Records))
	return true
}

// Records returns the live record set. The slice is shared and must be
// treated as read-only; records are replaced wholesale, never mutated.
func (s *Session) Records() []model.UpdateRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records
}

// SetFilter replaces the filter criteria and rewinds to the first page,
// since the old page index is meaningless against a different filtered set.
func (s *Session) SetFilter(f FilterState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
	s.paging = s.paging.First()
}

// Filter returns the active filter criteria.
func (s *Session) Filter() FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// Navigate applies fn to the pagination state and stores the result.
func (s *Session) Navigate(fn func(PaginationState) PaginationState) PaginationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paging = fn(s.paging)
	return s.paging
}

// ToggleSelection flips one record's membership and reports the new state.
func (s *Session) ToggleSelection(sysID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Toggle(sysID)
}

// SelectVisible adds every record on the current filtered page to the
// selection.
func (s *Session) SelectVisible() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := ApplyFilters(s.records, s.filter)
	page, paging := SlicePage(filtered, s.paging)
	s.paging = paging
	s.selection.SelectAll(page.Items)
	return s.selection.Size()
}

// ClearSelection empties the selection.
func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Clear()
}

// SelectionStats summarizes the selection against the live records.
func (s *Session) SelectionStats() SelectionStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Stats(s.records)
}

// SelectedSysIDs returns the tracked sys_ids in sorted order.
func (s *Session) SelectedSysIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.SysIDs()
}

// View is everything the dashboard renders for the current state: the page
// of filtered records, the reconciled statistics, and the selection summary.
type View struct {
	Page           Page                     `json:"page"`
	Statistics     model.StatisticsSnapshot `json:"statistics"`
	Source         string                   `json:"statistics_source"`
	Phase          Phase                    `json:"phase"`
	SignificantGap bool                     `json:"has_significant_difference"`
	Corrupted      bool                     `json:"has_string_corruption"`
	Selection      SelectionStats           `json:"selection"`
}

// View assembles the current dashboard view. Statistics follow the phase:
// uninitialized shows zeros, immediate-only shows the backend snapshot, and
// reconciled prefers the snapshot calculated from the loaded records.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := ApplyFilters(s.records, s.filter)
	page, paging := SlicePage(filtered, s.paging)
	s.paging = paging

	view := View{
		Page:      page,
		Phase:     s.phase,
		Selection: s.selection.Stats(s.records),
	}

	switch s.phase {
	case PhaseReconciled:
		calculated := CalculateStatistics(s.records, len(filtered))
		rec := Reconcile(s.immediate, calculated, s.corrupted, s.opts)
		view.Statistics = rec.Preferred
		view.Source = rec.Source
		view.SignificantGap = rec.HasSignificantDifference
		view.Corrupted = rec.HasStringCorruption
	case PhaseImmediateOnly:
		view.Statistics = s.immediate
		view.Source = SourceImmediate
		view.Corrupted = s.corrupted
	default:
		view.Source = SourceImmediate
	}

	return view
}

// AssembleInstall builds the upstream request for the current selection.
// Only sys_ids that resolve to live records are included.
func (s *Session) AssembleInstall(action string) (model.InstallRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !model.ValidInstallAction(action) {
		return model.InstallRequest{}, fmt.Errorf("unknown install action %q", action)
	}

	live := s.selection.Resolve(s.records)
	if len(live) == 0 {
		return model.InstallRequest{}, fmt.Errorf("no selected records to %s", action)
	}

	ids := make([]string, 0, len(live))
	for _, rec := range live {
		ids = append(ids, rec.SysID)
	}

	return model.InstallRequest{
		Action: action,
		SysIDs: ids,
		UserID: s.userCtx.UserID,
	}, nil
}

// RefreshSummary captures the outcome of a completed refresh for auditing.
func (s *Session) RefreshSummary(started time.Time) model.RefreshRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return model.RefreshRecord{
		UserID:      s.userCtx.UserID,
		RecordCount: len(s.records),
		Corrupted:   s.corrupted,
		StartedAt:   started.UTC().Format(time.RFC3339),
		CompletedAt: time.Now().UTC().Format(time.RFC3339),
		ObjType:     "RefreshRecord",
	}
}
