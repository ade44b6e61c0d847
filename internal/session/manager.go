package session

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/hamgoftar/voice-gateway/internal/metrics"
)

// ErrCapacity is returned by Connect when the connection ceiling is reached.
var ErrCapacity = errors.New("session: connection capacity reached")

// Manager is the process-wide session registry. All methods are safe for
// concurrent use.
type Manager struct {
	max int
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a registry holding at most max concurrent sessions.
func NewManager(max int) *Manager {
	if max <= 0 {
		max = 100
	}
	return &Manager{
		max:      max,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// WithClock replaces the time source, for tests.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// Connect admits a new session or returns ErrCapacity when the ceiling is
// reached. The capacity check and the registration are one atomic step.
func (m *Manager) Connect(client string, conn Transport) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sessions) >= m.max {
		return nil, ErrCapacity
	}

	s := newSession(client, conn, m.now())
	m.sessions[s.ID] = s

	metrics.SessionsTotal.Inc()
	metrics.SessionsActive.Set(float64(len(m.sessions)))
	slog.Info("session connected", "session_id", s.ID, "client", client, "active", len(m.sessions))
	return s, nil
}

// Disconnect removes a session from the registry. Unknown IDs are a no-op, so
// the call is safe from any cleanup path.
func (m *Manager) Disconnect(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return
	}
	delete(m.sessions, id)
	metrics.SessionsActive.Set(float64(len(m.sessions)))
	slog.Info("session disconnected", "session_id", id, "active", len(m.sessions))
}

// AtCapacity reports whether the registry is full. Connect re-checks under
// the same lock, so this is only a fast pre-upgrade reject.
func (m *Manager) AtCapacity() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions) >= m.max
}

// Get returns the session with the given ID, if registered.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// ActiveCount reports the number of registered sessions.
func (m *Manager) ActiveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Broadcast writes v to every registered session. Write failures are logged
// and skipped; the failed session is torn down by its own read loop.
func (m *Manager) Broadcast(v any) {
	m.mu.Lock()
	targets := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		targets = append(targets, s)
	}
	m.mu.Unlock()

	for _, s := range targets {
		if err := s.Conn.WriteJSON(v); err != nil {
			slog.Warn("broadcast write failed", "session_id", s.ID, "error", err)
		}
	}
}
