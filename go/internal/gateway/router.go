package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/gamehub/go/internal/board"
	"github.com/mcdev12/gamehub/go/internal/game"
	"github.com/mcdev12/gamehub/go/internal/identity"
	"github.com/mcdev12/gamehub/go/internal/models"
)

// Request operations accepted on a connection.
const (
	OpCreateGame = "create_game"
	OpJoinGame   = "join_game"
	OpMakeMove   = "make_move"
	OpGetGame    = "get_game"
	OpWhoAmI     = "who_am_i"
)

// Request is a client request frame.
type Request struct {
	Op        string `json:"op"`
	RequestID string `json:"request_id,omitempty"`
	GameID    string `json:"game_id,omitempty"`
	Cell      *int   `json:"cell,omitempty"`
}

// Response is the reply frame for a request. Pushes use PushMessage instead.
type Response struct {
	RequestID string         `json:"request_id,omitempty"`
	Op        string         `json:"op"`
	OK        bool           `json:"ok"`
	ErrorCode string         `json:"error_code,omitempty"`
	Error     string         `json:"error,omitempty"`
	Game      *game.Snapshot `json:"game,omitempty"`
	Name      string         `json:"name,omitempty"`
}

// Error codes surfaced on response frames.
const (
	CodeNotFound      = "NOT_FOUND"
	CodeRoomFull      = "ROOM_FULL"
	CodeSelfJoin      = "SELF_JOIN"
	CodeNotInProgress = "NOT_IN_PROGRESS"
	CodeUnknownPlayer = "UNKNOWN_PLAYER"
	CodeNotYourTurn   = "NOT_YOUR_TURN"
	CodeInvalidMove   = "INVALID_MOVE"
	CodeBadRequest    = "BAD_REQUEST"
	CodeInternal      = "INTERNAL"
)

// GameService defines what the router needs from the session engine.
type GameService interface {
	CreateGame(ctx context.Context, ident identity.Identity, connID string) (*models.GameSession, error)
	JoinGame(ctx context.Context, gameID uuid.UUID, ident identity.Identity, connID string) (*models.GameSession, error)
	MakeMove(ctx context.Context, gameID, playerID uuid.UUID, cellIndex int) (*models.GameSession, error)
	GetGame(ctx context.Context, gameID uuid.UUID) (*models.GameSession, error)
	WhoAmI(ident identity.Identity) string
	HandleDisconnect(ctx context.Context, connID string) error
}

// Router translates request frames into engine calls.
type Router struct {
	engine         GameService
	requestTimeout time.Duration
}

// NewRouter creates a request router over the session engine.
func NewRouter(engine GameService) *Router {
	return &Router{engine: engine, requestTimeout: 10 * time.Second}
}

// HandleRequest parses and executes one request frame and returns the reply.
func (rt *Router) HandleRequest(conn *Connection, message []byte) Response {
	var req Request
	if err := json.Unmarshal(message, &req); err != nil {
		return Response{OK: false, ErrorCode: CodeBadRequest, Error: "malformed request frame"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), rt.requestTimeout)
	defer cancel()

	resp := rt.dispatch(ctx, conn, req)
	resp.RequestID = req.RequestID
	resp.Op = req.Op
	return resp
}

func (rt *Router) dispatch(ctx context.Context, conn *Connection, req Request) Response {
	switch req.Op {
	case OpCreateGame:
		g, err := rt.engine.CreateGame(ctx, conn.Identity, conn.ID)
		if err != nil {
			return errResponse(err)
		}
		conn.Manager.Subscribe(conn, g.ID.String())
		return okResponse(g)

	case OpJoinGame:
		gameID, ok := parseGameID(req.GameID)
		if !ok {
			return Response{OK: false, ErrorCode: CodeBadRequest, Error: "invalid game_id"}
		}
		g, err := rt.engine.JoinGame(ctx, gameID, conn.Identity, conn.ID)
		if err != nil {
			return errResponse(err)
		}
		conn.Manager.Subscribe(conn, g.ID.String())
		return okResponse(g)

	case OpMakeMove:
		gameID, ok := parseGameID(req.GameID)
		if !ok {
			return Response{OK: false, ErrorCode: CodeBadRequest, Error: "invalid game_id"}
		}
		if req.Cell == nil {
			return Response{OK: false, ErrorCode: CodeBadRequest, Error: "cell is required"}
		}
		g, err := rt.engine.MakeMove(ctx, gameID, conn.Identity.PlayerID, *req.Cell)
		if err != nil {
			return errResponse(err)
		}
		return okResponse(g)

	case OpGetGame:
		gameID, ok := parseGameID(req.GameID)
		if !ok {
			return Response{OK: false, ErrorCode: CodeBadRequest, Error: "invalid game_id"}
		}
		g, err := rt.engine.GetGame(ctx, gameID)
		if err != nil {
			return errResponse(err)
		}
		return okResponse(g)

	case OpWhoAmI:
		return Response{OK: true, Name: rt.engine.WhoAmI(conn.Identity)}

	default:
		return Response{OK: false, ErrorCode: CodeBadRequest, Error: "unknown op"}
	}
}

// HandleDisconnect routes a closed connection into the engine's forfeiture
// path. Called by the connection manager when a socket drops.
func (rt *Router) HandleDisconnect(connID string) {
	ctx, cancel := context.WithTimeout(context.Background(), rt.requestTimeout)
	defer cancel()

	if err := rt.engine.HandleDisconnect(ctx, connID); err != nil {
		log.Error().Err(err).Str("connection_id", connID).Msg("disconnect resolution failed")
	}
}

func parseGameID(s string) (uuid.UUID, bool) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func okResponse(g *models.GameSession) Response {
	snap := game.SnapshotOf(g)
	return Response{OK: true, Game: &snap}
}

func errResponse(err error) Response {
	code := CodeInternal
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		code = CodeNotFound
	case errors.Is(err, game.ErrRoomFull):
		code = CodeRoomFull
	case errors.Is(err, game.ErrSelfJoin):
		code = CodeSelfJoin
	case errors.Is(err, game.ErrGameNotInProgress):
		code = CodeNotInProgress
	case errors.Is(err, game.ErrUnknownPlayer):
		code = CodeUnknownPlayer
	case errors.Is(err, game.ErrNotYourTurn):
		code = CodeNotYourTurn
	case errors.Is(err, board.ErrInvalidMove):
		code = CodeInvalidMove
	default:
		log.Error().Err(err).Msg("request failed")
	}
	return Response{OK: false, ErrorCode: code, Error: err.Error()}
}
