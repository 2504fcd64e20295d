package models

import (
	"time"

	"github.com/google/uuid"
)

// Symbol is one of the two markers placed on the board.
type Symbol string

const (
	SymbolX Symbol = "X"
	SymbolO Symbol = "O"
)

// Opponent returns the other symbol.
func (s Symbol) Opponent() Symbol {
	if s == SymbolX {
		return SymbolO
	}
	return SymbolX
}

// GameStatus defines the lifecycle state of a game session.
// Status only ever advances forward; Won, Draw and Timeout are terminal.
type GameStatus int

const (
	GameStatusWaitingForOpponent GameStatus = iota
	GameStatusInProgress
	GameStatusWon
	GameStatusDraw
	GameStatusTimeout
)

// Terminal reports whether the status permits no further mutation.
func (s GameStatus) Terminal() bool {
	return s == GameStatusWon || s == GameStatusDraw || s == GameStatusTimeout
}

func (s GameStatus) String() string {
	switch s {
	case GameStatusWaitingForOpponent:
		return "WAITING_FOR_OPPONENT"
	case GameStatusInProgress:
		return "IN_PROGRESS"
	case GameStatusWon:
		return "WON"
	case GameStatusDraw:
		return "DRAW"
	case GameStatusTimeout:
		return "TIMEOUT"
	default:
		return "UNKNOWN"
	}
}

// EmptyBoard is the 9-cell board with no moves played, one byte per cell.
const EmptyBoard = "_________"

// BoardCellEmpty marks an unclaimed cell in the board string.
const BoardCellEmpty = '_'

// GameSession represents one game instance between two players.
type GameSession struct {
	ID           uuid.UUID  `json:"id"`
	PlayerXID    uuid.UUID  `json:"player_x_id"`
	PlayerOID    *uuid.UUID `json:"player_o_id,omitempty"`
	PlayerXName  string     `json:"player_x_name,omitempty"`
	PlayerOName  string     `json:"player_o_name,omitempty"`
	Board        string     `json:"board"`
	CurrentTurn  Symbol     `json:"current_turn"`
	Status       GameStatus `json:"status"`
	WinnerID     *uuid.UUID `json:"winner_id,omitempty"`
	WinnerName   string     `json:"winner_name,omitempty"`
	LastMoveTime time.Time  `json:"last_move_time"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// SymbolOf resolves a player id to the symbol it plays in this session.
func (g *GameSession) SymbolOf(playerID uuid.UUID) (Symbol, bool) {
	if g.PlayerXID == playerID {
		return SymbolX, true
	}
	if g.PlayerOID != nil && *g.PlayerOID == playerID {
		return SymbolO, true
	}
	return "", false
}

// PlayerIDFor returns the id of the player holding the given symbol.
func (g *GameSession) PlayerIDFor(sym Symbol) *uuid.UUID {
	if sym == SymbolX {
		id := g.PlayerXID
		return &id
	}
	return g.PlayerOID
}

// PlayerNameFor returns the display name of the player holding the symbol.
func (g *GameSession) PlayerNameFor(sym Symbol) string {
	if sym == SymbolX {
		return g.PlayerXName
	}
	return g.PlayerOName
}
