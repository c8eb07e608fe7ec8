package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"ProjectSenorita/internal/entity"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// IStore persists what the assistant learns about each user across
// sessions. Load never fails: missing or unreadable files fall back to
// a fresh default profile so a corrupted disk never blocks a command.
type IStore interface {
	Load(userID string) *entity.UserProfile
	Save(userID string, p *entity.UserProfile) error
}

type store struct {
	dir string
	log *logrus.Logger
	mu  sync.Mutex
}

func NewStore(dir string, log *logrus.Logger) (IStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create profile directory: %w", err)
	}
	return &store{dir: dir, log: log}, nil
}

func (s *store) path(userID string) string {
	// Keep filenames flat regardless of what arrives as a user id.
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, userID)
	return filepath.Join(s.dir, safe+".json")
}

func (s *store) Load(userID string) *entity.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := entity.DefaultProfile()

	data, err := os.ReadFile(s.path(userID))
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.WithFields(logrus.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Warn("Failed to read profile file, starting fresh")
		}
		return p
	}

	if err := json.Unmarshal(data, p); err != nil {
		s.log.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Warn("Malformed profile file, starting fresh")
		return entity.DefaultProfile()
	}

	// Older profile files may predate some fields.
	if p.FavoriteThings == nil {
		p.FavoriteThings = map[string]string{}
	}
	if p.Interests == nil {
		p.Interests = []string{}
	}
	if p.Reminders == nil {
		p.Reminders = []entity.Reminder{}
	}

	return p
}

func (s *store) Save(userID string, p *entity.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	path := s.path(userID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace profile: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"user_id": userID,
	}).Debug("Profile saved")

	return nil
}
