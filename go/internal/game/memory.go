package game

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mcdev12/gamehub/go/internal/models"
)

// MemoryRepository is a thread-safe in-memory session store, used in tests
// and for running the engine without postgres. Values going in and out are
// copied so callers never alias stored state.
type MemoryRepository struct {
	mu    sync.RWMutex
	games map[uuid.UUID]models.GameSession
}

// NewMemoryRepository creates an empty in-memory game repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{games: make(map[uuid.UUID]models.GameSession)}
}

func (m *MemoryRepository) CreateGame(_ context.Context, req CreateGameRequest) (*models.GameSession, error) {
	now := time.Now()
	g := models.GameSession{
		ID:           req.ID,
		PlayerXID:    req.PlayerXID,
		PlayerXName:  req.PlayerXName,
		Board:        req.Board,
		CurrentTurn:  req.CurrentTurn,
		Status:       req.Status,
		LastMoveTime: req.LastMoveTime,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = g

	out := g
	return &out, nil
}

func (m *MemoryRepository) GetGame(_ context.Context, id uuid.UUID) (*models.GameSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	g, ok := m.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	out := cloneSession(g)
	return &out, nil
}

func (m *MemoryRepository) UpdateGame(_ context.Context, session *models.GameSession) (*models.GameSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.games[session.ID]; !ok {
		return nil, ErrGameNotFound
	}

	g := cloneSession(*session)
	g.UpdatedAt = time.Now()
	m.games[g.ID] = g

	out := cloneSession(g)
	return &out, nil
}

// cloneSession copies a session including its pointer fields, so stored
// records and returned records never alias caller memory.
func cloneSession(g models.GameSession) models.GameSession {
	if g.PlayerOID != nil {
		id := *g.PlayerOID
		g.PlayerOID = &id
	}
	if g.WinnerID != nil {
		id := *g.WinnerID
		g.WinnerID = &id
	}
	return g
}
