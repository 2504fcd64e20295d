package game

import (
	"github.com/mcdev12/gamehub/go/internal/models"
)

// Snapshot is the externally visible view of a session, pushed to clients on
// every state change and returned from every request.
type Snapshot struct {
	ID          string `json:"id"`
	Board       string `json:"board"`
	PlayerXName string `json:"player_x_name,omitempty"`
	PlayerOName string `json:"player_o_name,omitempty"`
	CurrentTurn string `json:"current_turn"`
	Status      int    `json:"status"`
	WinnerName  string `json:"winner_name,omitempty"`
}

// SnapshotOf maps a session to its external view.
func SnapshotOf(g *models.GameSession) Snapshot {
	return Snapshot{
		ID:          g.ID.String(),
		Board:       g.Board,
		PlayerXName: g.PlayerXName,
		PlayerOName: g.PlayerOName,
		CurrentTurn: string(g.CurrentTurn),
		Status:      int(g.Status),
		WinnerName:  g.WinnerName,
	}
}
