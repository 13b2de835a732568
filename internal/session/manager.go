package session

import (
	"sync"

	"github.com/storeops/sum-backend/util"
)

// Manager hands out one Session per user. Sessions are created lazily with
// thresholds read from the environment once at construction.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	opts     ReconcileOptions
	minLen   int
}

// NewManager builds a manager with thresholds from the environment.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		opts: ReconcileOptions{
			RelativeTolerance: util.GetEnvFloat("STATS_DIFF_TOLERANCE", DefaultRelativeTolerance),
			AbsoluteFloor:     util.GetEnvInt("STATS_DIFF_ABSOLUTE", DefaultAbsoluteFloor),
		},
		minLen: util.GetEnvInt("SEARCH_MIN_LENGTH", DefaultSearchMinLength),
	}
}

// Get returns the session for the user, creating it on first access.
func (m *Manager) Get(userID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[userID]
	if !ok {
		sess = New(m.opts)
		m.sessions[userID] = sess
	}
	return sess
}

// SearchMinLength is the configured minimum search term length, applied to
// filter states built from transport-layer input.
func (m *Manager) SearchMinLength() int {
	return m.minLen
}

// Drop removes a user's session, used on logout.
func (m *Manager) Drop(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}
