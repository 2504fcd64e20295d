package game

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/gamehub/go/internal/models"
	"github.com/mcdev12/gamehub/go/internal/sqlutil"
)

// Repository is the postgres-backed session store.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a postgres game repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const gameColumns = `id, player_x_id, player_o_id, player_x_name, player_o_name,
	board, current_turn, status, winner_id, winner_name, last_move_time,
	created_at, updated_at`

func (r *Repository) CreateGame(ctx context.Context, req CreateGameRequest) (*models.GameSession, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO game_sessions (id, player_x_id, player_x_name, board, current_turn, status, last_move_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+gameColumns,
		req.ID, req.PlayerXID, req.PlayerXName, req.Board, string(req.CurrentTurn), int(req.Status), req.LastMoveTime,
	)

	g, err := scanGame(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}
	return g, nil
}

func (r *Repository) GetGame(ctx context.Context, id uuid.UUID) (*models.GameSession, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+gameColumns+`
		FROM game_sessions
		WHERE id = $1`,
		id,
	)

	g, err := scanGame(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return g, nil
}

func (r *Repository) UpdateGame(ctx context.Context, session *models.GameSession) (*models.GameSession, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE game_sessions
		SET player_o_id = $2,
		    player_x_name = $3,
		    player_o_name = $4,
		    board = $5,
		    current_turn = $6,
		    status = $7,
		    winner_id = $8,
		    winner_name = $9,
		    last_move_time = $10,
		    updated_at = now()
		WHERE id = $1
		RETURNING `+gameColumns,
		session.ID,
		sqlutil.ToNullUUID(session.PlayerOID),
		session.PlayerXName,
		session.PlayerOName,
		session.Board,
		string(session.CurrentTurn),
		int(session.Status),
		sqlutil.ToNullUUID(session.WinnerID),
		session.WinnerName,
		session.LastMoveTime,
	)

	g, err := scanGame(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to update game: %w", err)
	}
	return g, nil
}

func scanGame(row *sql.Row) (*models.GameSession, error) {
	var (
		g           models.GameSession
		playerOID   uuid.NullUUID
		winnerID    uuid.NullUUID
		currentTurn string
		status      int
	)
	err := row.Scan(
		&g.ID,
		&g.PlayerXID,
		&playerOID,
		&g.PlayerXName,
		&g.PlayerOName,
		&g.Board,
		&currentTurn,
		&status,
		&winnerID,
		&g.WinnerName,
		&g.LastMoveTime,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	g.PlayerOID = sqlutil.FromNullUUID(playerOID)
	g.WinnerID = sqlutil.FromNullUUID(winnerID)
	g.CurrentTurn = models.Symbol(currentTurn)
	g.Status = models.GameStatus(status)
	return &g, nil
}
