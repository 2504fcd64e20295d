package models

import (
	"time"

	"github.com/google/uuid"
)

// Player represents a registered player and their lifetime tallies.
// The counters are only ever touched by the session engine's terminal
// transition, one update per finished game.
type Player struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Wins      int       `json:"wins"`
	Losses    int       `json:"losses"`
	Draws     int       `json:"draws"`
	CreatedAt time.Time `json:"created_at"`
}
