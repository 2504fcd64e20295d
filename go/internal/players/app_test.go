package players

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsurePlayerUpserts(t *testing.T) {
	app := NewApp(NewMemoryRepository())
	ctx := context.Background()
	id := uuid.New()

	p, err := app.EnsurePlayer(ctx, id, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", p.Username)
	assert.Equal(t, 0, p.Wins)

	// Re-registering with a new name keeps the row and its counters.
	require.NoError(t, app.RecordResult(ctx, id, uuid.New()))
	p, err = app.EnsurePlayer(ctx, id, "alice2")
	require.NoError(t, err)
	assert.Equal(t, "alice2", p.Username)
	assert.Equal(t, 1, p.Wins)
}

func TestGetPlayerNotFound(t *testing.T) {
	app := NewApp(NewMemoryRepository())

	_, err := app.GetPlayer(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestRecordResult(t *testing.T) {
	app := NewApp(NewMemoryRepository())
	ctx := context.Background()
	winner, loser := uuid.New(), uuid.New()

	require.NoError(t, app.RecordResult(ctx, winner, loser))
	require.NoError(t, app.RecordResult(ctx, winner, loser))

	w, err := app.GetPlayer(ctx, winner)
	require.NoError(t, err)
	assert.Equal(t, 2, w.Wins)
	assert.Equal(t, 0, w.Losses)

	l, err := app.GetPlayer(ctx, loser)
	require.NoError(t, err)
	assert.Equal(t, 2, l.Losses)
	assert.Equal(t, 0, l.Wins)
}

func TestRecordDraw(t *testing.T) {
	app := NewApp(NewMemoryRepository())
	ctx := context.Background()
	a, b := uuid.New(), uuid.New()

	require.NoError(t, app.RecordDraw(ctx, a, b))

	for _, id := range []uuid.UUID{a, b} {
		p, err := app.GetPlayer(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 1, p.Draws)
		assert.Equal(t, 0, p.Wins)
		assert.Equal(t, 0, p.Losses)
	}
}
