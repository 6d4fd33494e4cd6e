package rollover

import (
	"sync"
	"time"

	"github.com/daybreak-app/daybreak/internal/domain"
)

// SessionManager owns one scheduler per attached user session with an
// explicit attach/detach lifecycle, no ambient global listener state.
type SessionManager struct {
	mu       sync.Mutex
	cb       Callback
	sessions map[string]*Scheduler
}

// NewSessionManager creates a manager that arms every attached session
// with the given rollover callback.
func NewSessionManager(cb Callback) *SessionManager {
	return &SessionManager{
		cb:       cb,
		sessions: make(map[string]*Scheduler),
	}
}

// Attach arms a midnight scheduler for the user in the given timezone.
// Returns domain.ErrSessionExists if one is already attached.
func (m *SessionManager) Attach(userID string, loc *time.Location) error {
	if userID == "" {
		return domain.ErrUserIDRequired
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[userID]; ok {
		return domain.ErrSessionExists
	}

	s := NewScheduler(userID, loc, m.cb)
	s.Start()
	m.sessions[userID] = s
	return nil
}

// Reattach replaces the user's scheduler with one armed for loc, so a
// profile timezone change takes effect without a daemon restart. When no
// session exists it attaches a fresh one.
func (m *SessionManager) Reattach(userID string, loc *time.Location) error {
	if userID == "" {
		return domain.ErrUserIDRequired
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.sessions[userID]; ok {
		old.Stop()
		delete(m.sessions, userID)
	}

	s := NewScheduler(userID, loc, m.cb)
	s.Start()
	m.sessions[userID] = s
	return nil
}

// Detach stops and removes the user's scheduler.
func (m *SessionManager) Detach(userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[userID]
	if !ok {
		return domain.ErrSessionNotFound
	}
	s.Stop()
	delete(m.sessions, userID)
	return nil
}

// Active returns the number of attached sessions.
func (m *SessionManager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Close detaches every session. Used at daemon shutdown.
func (m *SessionManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		s.Stop()
		delete(m.sessions, id)
	}
}
