package game

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/gamehub/go/internal/board"
	"github.com/mcdev12/gamehub/go/internal/identity"
	"github.com/mcdev12/gamehub/go/internal/models"
)

// CreateGameRequest carries the initial state for a new session.
type CreateGameRequest struct {
	ID           uuid.UUID         `json:"id"`
	PlayerXID    uuid.UUID         `json:"player_x_id"`
	PlayerXName  string            `json:"player_x_name"`
	Board        string            `json:"board"`
	CurrentTurn  models.Symbol     `json:"current_turn"`
	Status       models.GameStatus `json:"status"`
	LastMoveTime time.Time         `json:"last_move_time"`
}

// GameRepository defines what the engine needs from the session store.
// Callers hold the per-session lock while composing an UpdateGame value.
type GameRepository interface {
	CreateGame(ctx context.Context, req CreateGameRequest) (*models.GameSession, error)
	GetGame(ctx context.Context, id uuid.UUID) (*models.GameSession, error)
	UpdateGame(ctx context.Context, session *models.GameSession) (*models.GameSession, error)
}

// PlayerStats defines what the engine needs from the player stats store.
type PlayerStats interface {
	RecordResult(ctx context.Context, winnerID, loserID uuid.UUID) error
	RecordDraw(ctx context.Context, a, b uuid.UUID) error
}

// App is the session engine. Every path that mutates a session (a move, a
// timer fire, a disconnect) funnels through the same per-session lock, so a
// session sees exactly one terminal transition and exactly one stats update.
type App struct {
	repo     GameRepository
	stats    PlayerStats
	timers   *TimerManager
	registry *ConnectionRegistry
	notifier Notifier
	clock    clockwork.Clock
	locks    *sessionLocks

	turnTimeout time.Duration
}

// NewApp creates a new session engine.
func NewApp(repo GameRepository, stats PlayerStats, timers *TimerManager, registry *ConnectionRegistry, notifier Notifier, clock clockwork.Clock, turnTimeout time.Duration) *App {
	return &App{
		repo:        repo,
		stats:       stats,
		timers:      timers,
		registry:    registry,
		notifier:    notifier,
		clock:       clock,
		locks:       newSessionLocks(),
		turnTimeout: turnTimeout,
	}
}

// CreateGame creates a new session with the caller as X and binds the
// caller's connection to it. No timer is armed yet; there is no opponent.
func (a *App) CreateGame(ctx context.Context, ident identity.Identity, connID string) (*models.GameSession, error) {
	g, err := a.repo.CreateGame(ctx, CreateGameRequest{
		ID:           uuid.New(),
		PlayerXID:    ident.PlayerID,
		PlayerXName:  ident.Name,
		Board:        models.EmptyBoard,
		CurrentTurn:  models.SymbolX,
		Status:       models.GameStatusWaitingForOpponent,
		LastMoveTime: a.clock.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("create game: %w", err)
	}

	a.registry.Bind(connID, g.ID, ident.PlayerID)

	log.Info().
		Str("game_id", g.ID.String()).
		Str("player_id", ident.PlayerID.String()).
		Msg("game created")
	return g, nil
}

// JoinGame adds the caller as O, starts the game and arms the first turn
// timer.
func (a *App) JoinGame(ctx context.Context, gameID uuid.UUID, ident identity.Identity, connID string) (*models.GameSession, error) {
	unlock := a.locks.lock(gameID)
	defer unlock()

	g, err := a.repo.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if g.PlayerOID != nil {
		return nil, ErrRoomFull
	}
	if g.PlayerXID == ident.PlayerID {
		return nil, ErrSelfJoin
	}

	playerOID := ident.PlayerID
	g.PlayerOID = &playerOID
	g.PlayerOName = ident.Name
	g.Status = models.GameStatusInProgress
	g.LastMoveTime = a.clock.Now()

	updated, err := a.repo.UpdateGame(ctx, g)
	if err != nil {
		return nil, fmt.Errorf("update game: %w", err)
	}

	a.armTurnTimer(gameID)
	a.notifier.GameUpdated(ctx, SnapshotOf(updated))
	a.registry.Bind(connID, gameID, ident.PlayerID)

	log.Info().
		Str("game_id", gameID.String()).
		Str("player_id", ident.PlayerID.String()).
		Msg("game joined")
	return updated, nil
}

// MakeMove validates and applies one move. On a legal move the session either
// terminates (win or draw, timer disarmed, stats tallied once) or the turn
// flips and the timer re-arms. A rejected move leaves the session unchanged.
func (a *App) MakeMove(ctx context.Context, gameID, playerID uuid.UUID, cellIndex int) (*models.GameSession, error) {
	unlock := a.locks.lock(gameID)
	defer unlock()

	g, err := a.repo.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if g.Status != models.GameStatusInProgress {
		return nil, ErrGameNotInProgress
	}

	sym, ok := g.SymbolOf(playerID)
	if !ok {
		return nil, ErrUnknownPlayer
	}
	if sym != g.CurrentTurn {
		return nil, ErrNotYourTurn
	}

	newBoard, err := board.Apply(g.Board, cellIndex, sym)
	if err != nil {
		return nil, err
	}
	g.Board = newBoard

	switch {
	case board.HasWin(newBoard, sym):
		g.Status = models.GameStatusWon
		g.WinnerID = g.PlayerIDFor(sym)
		g.WinnerName = g.PlayerNameFor(sym)
	case board.IsFull(newBoard):
		g.Status = models.GameStatusDraw
	default:
		g.CurrentTurn = sym.Opponent()
		g.LastMoveTime = a.clock.Now()
	}

	// The store write must land before stats, broadcast or timer re-arm.
	updated, err := a.repo.UpdateGame(ctx, g)
	if err != nil {
		return nil, fmt.Errorf("update game: %w", err)
	}

	if updated.Status.Terminal() {
		a.timers.Disarm(gameID)
		a.registry.ReleaseGame(gameID)
		a.recordOutcome(ctx, updated)
	} else {
		a.armTurnTimer(gameID)
	}
	a.notifier.GameUpdated(ctx, SnapshotOf(updated))

	log.Info().
		Str("game_id", gameID.String()).
		Str("player_id", playerID.String()).
		Int("cell", cellIndex).
		Str("status", updated.Status.String()).
		Msg("move applied")
	return updated, nil
}

// GetGame returns the session for display. No exclusivity required.
func (a *App) GetGame(ctx context.Context, gameID uuid.UUID) (*models.GameSession, error) {
	return a.repo.GetGame(ctx, gameID)
}

// WhoAmI echoes the verified identity's display name.
func (a *App) WhoAmI(ident identity.Identity) string {
	return ident.Name
}

// HandleTimeout resolves a fired turn timer. The player who failed to act in
// time loses; the opponent is credited the win. Silent no-op when the session
// is gone, no longer in progress, or its deadline has been refreshed by a
// move that won the race against the fire.
func (a *App) HandleTimeout(ctx context.Context, gameID uuid.UUID) error {
	unlock := a.locks.lock(gameID)
	defer unlock()

	g, err := a.repo.GetGame(ctx, gameID)
	if err != nil {
		log.Debug().Str("game_id", gameID.String()).Err(err).Msg("timeout for missing game, ignoring")
		return nil
	}
	if g.Status != models.GameStatusInProgress {
		return nil
	}
	// A fire that lost the race to a concurrent move reaches this point only
	// after the move has landed and re-armed. The refreshed deadline exposes
	// it as stale.
	if a.clock.Now().Sub(g.LastMoveTime) < a.turnTimeout {
		log.Debug().Str("game_id", gameID.String()).Msg("stale timer fire, ignoring")
		return nil
	}

	winner := g.CurrentTurn.Opponent()
	return a.forfeit(ctx, g, winner, "turn timer expired")
}

// HandleDisconnect resolves a dropped connection. If the connection was bound
// to a session still in progress, the disconnecting player forfeits and the
// remaining player wins immediately.
func (a *App) HandleDisconnect(ctx context.Context, connID string) error {
	binding, ok := a.registry.Unbind(connID)
	if !ok {
		return nil
	}

	unlock := a.locks.lock(binding.GameID)
	defer unlock()

	g, err := a.repo.GetGame(ctx, binding.GameID)
	if err != nil {
		log.Debug().Str("game_id", binding.GameID.String()).Err(err).Msg("disconnect for missing game, ignoring")
		return nil
	}
	if g.Status != models.GameStatusInProgress {
		return nil
	}

	sym, ok := g.SymbolOf(binding.PlayerID)
	if !ok {
		log.Warn().
			Str("game_id", g.ID.String()).
			Str("player_id", binding.PlayerID.String()).
			Msg("disconnected connection bound to a game it does not play in")
		return nil
	}

	return a.forfeit(ctx, g, sym.Opponent(), "player disconnected")
}

// forfeit performs the shared timeout/disconnect terminal transition: the
// session enters Timeout, the given symbol's player is credited the win,
// stats update once, both GameUpdated and GameTimeout are pushed, the timer
// is disarmed and the session's bindings are released. Caller holds the
// session lock.
func (a *App) forfeit(ctx context.Context, g *models.GameSession, winner models.Symbol, reason string) error {
	g.Status = models.GameStatusTimeout
	g.WinnerID = g.PlayerIDFor(winner)
	g.WinnerName = g.PlayerNameFor(winner)

	updated, err := a.repo.UpdateGame(ctx, g)
	if err != nil {
		return fmt.Errorf("update game: %w", err)
	}

	a.timers.Disarm(updated.ID)
	a.registry.ReleaseGame(updated.ID)
	a.recordOutcome(ctx, updated)

	snap := SnapshotOf(updated)
	a.notifier.GameUpdated(ctx, snap)
	a.notifier.GameTimeout(ctx, snap)

	log.Info().
		Str("game_id", updated.ID.String()).
		Str("winner", string(winner)).
		Str("reason", reason).
		Msg("game resolved by forfeiture")
	return nil
}

// armTurnTimer (re)arms the session's turn timer; the previous timer, if
// any, is disposed before the new one can fire.
func (a *App) armTurnTimer(gameID uuid.UUID) {
	a.timers.Arm(gameID, a.turnTimeout, func(id uuid.UUID) {
		if err := a.HandleTimeout(context.Background(), id); err != nil {
			log.Error().Err(err).Str("game_id", id.String()).Msg("timeout resolution failed")
		}
	})
}

// recordOutcome tallies the terminal result. It runs at most once per session
// because exactly one caller performs the terminal transition. Stats failures
// are logged, not surfaced; the transition itself is already durable.
func (a *App) recordOutcome(ctx context.Context, g *models.GameSession) {
	var err error
	switch g.Status {
	case models.GameStatusWon, models.GameStatusTimeout:
		if g.WinnerID == nil || g.PlayerOID == nil {
			return
		}
		loserID := g.PlayerXID
		if *g.WinnerID == g.PlayerXID {
			loserID = *g.PlayerOID
		}
		err = a.stats.RecordResult(ctx, *g.WinnerID, loserID)
	case models.GameStatusDraw:
		if g.PlayerOID == nil {
			return
		}
		err = a.stats.RecordDraw(ctx, g.PlayerXID, *g.PlayerOID)
	default:
		return
	}
	if err != nil {
		log.Error().Err(err).Str("game_id", g.ID.String()).Msg("failed to record game outcome")
	}
}
