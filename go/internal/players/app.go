package players

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/gamehub/go/internal/models"
)

// ErrPlayerNotFound is returned when no player row exists for an id.
var ErrPlayerNotFound = errors.New("player not found")

// PlayersRepository defines what the app layer needs from the repository.
type PlayersRepository interface {
	GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error)
	UpsertPlayer(ctx context.Context, id uuid.UUID, username string) (*models.Player, error)
	IncrementResult(ctx context.Context, winnerID, loserID uuid.UUID) error
	IncrementDraws(ctx context.Context, a, b uuid.UUID) error
}

// App handles player stats business logic. Counters move only through the
// session engine's terminal transition, once per finished game.
type App struct {
	repo PlayersRepository
}

// NewApp creates a new players App.
func NewApp(repo PlayersRepository) *App {
	return &App{repo: repo}
}

// EnsurePlayer lazily registers the player row for a verified identity so
// stats have somewhere to land.
func (a *App) EnsurePlayer(ctx context.Context, id uuid.UUID, username string) (*models.Player, error) {
	p, err := a.repo.UpsertPlayer(ctx, id, username)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert player: %w", err)
	}
	return p, nil
}

// GetPlayer retrieves a player with their win/lose/draw tallies.
func (a *App) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	p, err := a.repo.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// RecordResult increments the winner's win counter and the loser's loss
// counter in one transaction.
func (a *App) RecordResult(ctx context.Context, winnerID, loserID uuid.UUID) error {
	if err := a.repo.IncrementResult(ctx, winnerID, loserID); err != nil {
		return fmt.Errorf("failed to record result: %w", err)
	}
	log.Debug().
		Str("winner_id", winnerID.String()).
		Str("loser_id", loserID.String()).
		Msg("recorded game result")
	return nil
}

// RecordDraw increments both players' draw counters in one transaction.
func (a *App) RecordDraw(ctx context.Context, playerA, playerB uuid.UUID) error {
	if err := a.repo.IncrementDraws(ctx, playerA, playerB); err != nil {
		return fmt.Errorf("failed to record draw: %w", err)
	}
	log.Debug().
		Str("player_a", playerA.String()).
		Str("player_b", playerB.String()).
		Msg("recorded draw")
	return nil
}
