package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-persona-chat/client/internal/models"
	"ai-persona-chat/client/internal/store"
)

func openStore(t *testing.T, dir string) *store.Store {
	t.Helper()
	s, err := store.Open(dir)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestUserIDAbsentUntilSet(t *testing.T) {
	s := openStore(t, t.TempDir())

	_, ok, err := s.UserID()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetUserID(42))

	id, ok, err := s.UserID()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
}

func TestPersonaRoundTrip(t *testing.T) {
	s := openStore(t, t.TempDir())

	_, ok, err := s.Persona()
	require.NoError(t, err)
	assert.False(t, ok)

	persona := models.Persona{
		UserID:      42,
		Name:        "Luna",
		Role:        "friend",
		Personality: []string{"curious", "witty"},
		Tone:        "casual",
		Likes:       []string{"coffee"},
	}
	require.NoError(t, s.SetPersona(persona))

	got, ok, err := s.Persona()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, persona, got)
}

func TestSessionSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := store.Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.SetUserID(7))
	require.NoError(t, s.SetPersona(models.Persona{UserID: 7, Name: "Atlas"}))
	require.NoError(t, s.Close())

	reopened := openStore(t, dir)
	id, ok, err := reopened.UserID()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(7), id)

	persona, ok, err := reopened.Persona()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Atlas", persona.Name)
}

func TestResetClearsEverything(t *testing.T) {
	s := openStore(t, t.TempDir())
	require.NoError(t, s.SetUserID(7))
	require.NoError(t, s.SetPersona(models.Persona{UserID: 7, Name: "Atlas"}))

	require.NoError(t, s.Reset())

	_, ok, err := s.UserID()
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = s.Persona()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResetOnEmptyStoreIsIdempotent(t *testing.T) {
	s := openStore(t, t.TempDir())
	require.NoError(t, s.Reset())
	require.NoError(t, s.Reset())
}
