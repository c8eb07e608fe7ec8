package assistantService

import (
	"testing"
	"time"

	"ProjectSenorita/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestAcquireCreatesSessionWithDefaults(t *testing.T) {
	m := NewSessionManager(testLogger())
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	session := m.Acquire("s1", "u1", now)
	assert.Equal(t, "s1", session.ID)
	assert.Equal(t, "u1", session.UserID)
	assert.Equal(t, 1, session.LastImageOffset)
	assert.Equal(t, entity.TopicGeneral, session.Topic)
	assert.Equal(t, entity.MoodNeutral, session.Mood)
	assert.Equal(t, now, session.CreatedAt)
}

func TestAcquireReturnsSameSession(t *testing.T) {
	m := NewSessionManager(testLogger())
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	first := m.Acquire("s1", "u1", now)
	first.PendingMediaQuery = "despacito"

	again := m.Acquire("s1", "", now.Add(time.Minute))
	assert.Same(t, first, again)
	assert.Equal(t, "despacito", again.PendingMediaQuery)
	// An empty user id on a later turn never clobbers the known one.
	assert.Equal(t, "u1", again.UserID)
	assert.Equal(t, now.Add(time.Minute), again.LastActivity)
}

func TestCleanupDropsIdleSessions(t *testing.T) {
	m := NewSessionManager(testLogger())
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	m.Acquire("stale", "u1", now)
	m.Acquire("fresh", "u2", now.Add(23*time.Hour))
	assert.Equal(t, 2, m.Len())

	removed := m.Cleanup(now.Add(25 * time.Hour))
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, m.Len())

	// The surviving session is handed back untouched under its id.
	fresh := m.Acquire("fresh", "", now.Add(25*time.Hour))
	assert.Equal(t, "u2", fresh.UserID)
}
