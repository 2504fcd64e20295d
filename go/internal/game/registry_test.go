package game

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionRegistryBindUnbind(t *testing.T) {
	r := NewConnectionRegistry()
	gameID, playerID := uuid.New(), uuid.New()

	r.Bind("conn-1", gameID, playerID)

	b, ok := r.Lookup("conn-1")
	require.True(t, ok)
	assert.Equal(t, gameID, b.GameID)
	assert.Equal(t, playerID, b.PlayerID)

	b, ok = r.Unbind("conn-1")
	require.True(t, ok)
	assert.Equal(t, gameID, b.GameID)

	_, ok = r.Unbind("conn-1")
	assert.False(t, ok)
}

func TestConnectionRegistryRebindReplaces(t *testing.T) {
	r := NewConnectionRegistry()
	playerID := uuid.New()
	first, second := uuid.New(), uuid.New()

	r.Bind("conn-1", first, playerID)
	r.Bind("conn-1", second, playerID)

	b, ok := r.Unbind("conn-1")
	require.True(t, ok)
	assert.Equal(t, second, b.GameID)
}

func TestConnectionRegistryReleaseGame(t *testing.T) {
	r := NewConnectionRegistry()
	gameID, otherGameID := uuid.New(), uuid.New()

	r.Bind("conn-x", gameID, uuid.New())
	r.Bind("conn-o", gameID, uuid.New())
	r.Bind("conn-other", otherGameID, uuid.New())

	r.ReleaseGame(gameID)

	_, ok := r.Lookup("conn-x")
	assert.False(t, ok)
	_, ok = r.Lookup("conn-o")
	assert.False(t, ok)

	b, ok := r.Lookup("conn-other")
	require.True(t, ok)
	assert.Equal(t, otherGameID, b.GameID)
}

func TestConnectionRegistryUnknownConnection(t *testing.T) {
	r := NewConnectionRegistry()

	_, ok := r.Lookup("nope")
	assert.False(t, ok)
	_, ok = r.Unbind("nope")
	assert.False(t, ok)
}
