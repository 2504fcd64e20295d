package players

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/gamehub/go/internal/models"
	"github.com/mcdev12/gamehub/go/internal/sqlutil"
)

// Repository is the postgres-backed player stats store.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a postgres players repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	var p models.Player
	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, wins, losses, draws, created_at
		FROM players
		WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.Username, &p.Wins, &p.Losses, &p.Draws, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return &p, nil
}

func (r *Repository) UpsertPlayer(ctx context.Context, id uuid.UUID, username string) (*models.Player, error) {
	var p models.Player
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO players (id, username)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET username = EXCLUDED.username
		RETURNING id, username, wins, losses, draws, created_at`,
		id, username,
	).Scan(&p.ID, &p.Username, &p.Wins, &p.Losses, &p.Draws, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert player: %w", err)
	}
	return &p, nil
}

func (r *Repository) IncrementResult(ctx context.Context, winnerID, loserID uuid.UUID) error {
	return sqlutil.Run(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			UPDATE players SET wins = wins + 1 WHERE id = $1`, winnerID); err != nil {
			return fmt.Errorf("increment wins: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			UPDATE players SET losses = losses + 1 WHERE id = $1`, loserID); err != nil {
			return fmt.Errorf("increment losses: %w", err)
		}
		return nil
	})
}

func (r *Repository) IncrementDraws(ctx context.Context, a, b uuid.UUID) error {
	return sqlutil.Run(ctx, r.db, func(tx *sql.Tx) error {
		for _, id := range []uuid.UUID{a, b} {
			if _, err := tx.ExecContext(ctx, `
				UPDATE players SET draws = draws + 1 WHERE id = $1`, id); err != nil {
				return fmt.Errorf("increment draws: %w", err)
			}
		}
		return nil
	})
}
