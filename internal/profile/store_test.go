package profile

import (
	"os"
	"path/filepath"
	"testing"

	"ProjectSenorita/internal/entity"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) IStore {
	t.Helper()
	log := logrus.New()
	log.SetOutput(os.Stderr)

	s, err := NewStore(t.TempDir(), log)
	require.NoError(t, err)
	return s
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	s := newTestStore(t)

	p := s.Load("nobody")
	require.NotNil(t, p)
	assert.Nil(t, p.Name)
	assert.Empty(t, p.FavoriteThings)
	assert.Empty(t, p.Interests)
	assert.Empty(t, p.Reminders)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)

	p := entity.DefaultProfile()
	p.SetName("Priya")
	p.FavoriteThings["favorite food"] = "pizza"
	p.AddInterest("astronomy")
	p.Reminders = append(p.Reminders, entity.Reminder{
		Note:      "water the plants",
		Timestamp: "2026-08-28T10:00:00Z",
	})

	require.NoError(t, s.Save("priya", p))

	got := s.Load("priya")
	assert.Equal(t, "Priya", got.NameOr("friend"))
	assert.Equal(t, "pizza", got.FavoriteThings["favorite food"])
	assert.Equal(t, []string{"astronomy"}, got.Interests)
	require.Len(t, got.Reminders, 1)
	assert.Equal(t, "water the plants", got.Reminders[0].Note)
}

func TestLoadBackfillsMissingFields(t *testing.T) {
	log := logrus.New()
	dir := t.TempDir()
	s, err := NewStore(dir, log)
	require.NoError(t, err)

	// A profile written before reminders existed.
	old := []byte(`{"name": "Sam", "favorite_things": {}, "interests": []}`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sam.json"), old, 0o644))

	p := s.Load("sam")
	assert.Equal(t, "Sam", p.NameOr("friend"))
	assert.NotNil(t, p.Reminders)
	assert.NotNil(t, p.FavoriteThings)
}

func TestLoadMalformedFileStartsFresh(t *testing.T) {
	log := logrus.New()
	dir := t.TempDir()
	s, err := NewStore(dir, log)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o644))

	p := s.Load("bad")
	require.NotNil(t, p)
	assert.Nil(t, p.Name)
}

func TestPathSanitizesUserID(t *testing.T) {
	s := newTestStore(t)

	p := entity.DefaultProfile()
	p.SetName("Casey")
	require.NoError(t, s.Save("../evil/../user", p))

	got := s.Load("../evil/../user")
	assert.Equal(t, "Casey", got.NameOr("friend"))
}
