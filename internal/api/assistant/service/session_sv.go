package assistantService

import (
	"sync"
	"time"

	"ProjectSenorita/internal/entity"

	"github.com/sirupsen/logrus"
)

// sessionIdleTimeout is how long a session may sit untouched before the
// sweeper reclaims it, pending continuations included.
const sessionIdleTimeout = 24 * time.Hour

// SessionManager owns all live conversation state. Sessions are created
// on first use and never persisted.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*entity.SessionContext
	log      *logrus.Logger
}

func NewSessionManager(log *logrus.Logger) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*entity.SessionContext),
		log:      log,
	}
}

// Acquire returns the session for the given id, creating it if needed,
// and touches its activity clock.
func (m *SessionManager) Acquire(sessionID, userID string, now time.Time) *entity.SessionContext {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		s = &entity.SessionContext{
			ID:              sessionID,
			UserID:          userID,
			LastImageOffset: 1,
			Topic:           entity.TopicGeneral,
			Mood:            entity.MoodNeutral,
			CreatedAt:       now,
		}
		m.sessions[sessionID] = s
		m.log.WithFields(logrus.Fields{
			"session_id": sessionID,
			"user_id":    userID,
		}).Debug("Created new session")
	}

	if userID != "" {
		s.UserID = userID
	}
	s.LastActivity = now
	return s
}

// Cleanup drops sessions idle past the timeout and reports how many
// were removed.
func (m *SessionManager) Cleanup(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if now.Sub(s.LastActivity) > sessionIdleTimeout {
			delete(m.sessions, id)
			removed++
		}
	}

	if removed > 0 {
		m.log.WithFields(logrus.Fields{
			"removed": removed,
		}).Info("Swept idle sessions")
	}
	return removed
}

// StartSweeper runs Cleanup on an interval until stop is closed.
func (m *SessionManager) StartSweeper(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.Cleanup(time.Now())
			case <-stop:
				return
			}
		}
	}()
}

// Len reports the number of live sessions.
func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
