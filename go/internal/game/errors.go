package game

import "errors"

// Error taxonomy surfaced to callers. All are rejected synchronously with no
// partial mutation of the session. Invalid moves carry board.ErrInvalidMove.
var (
	ErrGameNotFound      = errors.New("game not found")
	ErrRoomFull          = errors.New("game already has an opponent")
	ErrSelfJoin          = errors.New("cannot join your own game")
	ErrGameNotInProgress = errors.New("game is not in progress")
	ErrUnknownPlayer     = errors.New("player is not part of this game")
	ErrNotYourTurn       = errors.New("not your turn")
)
