package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateResolveDestroy(t *testing.T) {
	m := NewManager()

	token := m.Create(7, time.Hour)
	require.NotEmpty(t, token)

	userID, ok := m.Resolve(token)
	require.True(t, ok)
	assert.Equal(t, 7, userID)

	other := m.Create(8, time.Hour)
	assert.NotEqual(t, token, other)

	m.Destroy(token)
	_, ok = m.Resolve(token)
	assert.False(t, ok)

	// destroying one token leaves the other alone
	userID, ok = m.Resolve(other)
	require.True(t, ok)
	assert.Equal(t, 8, userID)
}

func TestResolveUnknownToken(t *testing.T) {
	m := NewManager()
	_, ok := m.Resolve("no-such-token")
	assert.False(t, ok)
}

func TestExpiredSessionIsDropped(t *testing.T) {
	m := NewManager()
	current := time.Now()
	m.now = func() time.Time { return current }

	token := m.Create(7, time.Minute)

	_, ok := m.Resolve(token)
	require.True(t, ok)

	current = current.Add(2 * time.Minute)
	_, ok = m.Resolve(token)
	assert.False(t, ok)

	// expired entries are removed, not just hidden
	m.mu.RLock()
	_, still := m.sessions[token]
	m.mu.RUnlock()
	assert.False(t, still)
}
