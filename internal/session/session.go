// Package session associates opaque tokens with user ids for the lifetime
// of a login. Tokens are random uuids; nothing about the user is encoded in
// the token itself.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type entry struct {
	userID    int
	expiresAt time.Time
}

type Manager struct {
	mu       sync.RWMutex
	sessions map[string]entry
	now      func() time.Time
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]entry),
		now:      time.Now,
	}
}

// Create issues a new token bound to userID, valid for ttl.
func (m *Manager) Create(userID int, ttl time.Duration) string {
	token := uuid.NewString()
	m.mu.Lock()
	m.sessions[token] = entry{userID: userID, expiresAt: m.now().Add(ttl)}
	m.mu.Unlock()
	return token
}

// Resolve returns the user id bound to token. Expired sessions are dropped
// on access.
func (m *Manager) Resolve(token string) (int, bool) {
	m.mu.RLock()
	e, ok := m.sessions[token]
	m.mu.RUnlock()
	if !ok {
		return 0, false
	}
	if m.now().After(e.expiresAt) {
		m.Destroy(token)
		return 0, false
	}
	return e.userID, true
}

func (m *Manager) Destroy(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}
