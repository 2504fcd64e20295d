package players

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mcdev12/gamehub/go/internal/models"
)

// MemoryRepository is a thread-safe in-memory stats store for tests and for
// running without postgres.
type MemoryRepository struct {
	mu      sync.Mutex
	players map[uuid.UUID]models.Player
}

// NewMemoryRepository creates an empty in-memory players repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{players: make(map[uuid.UUID]models.Player)}
}

func (m *MemoryRepository) GetPlayer(_ context.Context, id uuid.UUID) (*models.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.players[id]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	out := p
	return &out, nil
}

func (m *MemoryRepository) UpsertPlayer(_ context.Context, id uuid.UUID, username string) (*models.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.players[id]
	if !ok {
		p = models.Player{ID: id, CreatedAt: time.Now()}
	}
	p.Username = username
	m.players[id] = p

	out := p
	return &out, nil
}

func (m *MemoryRepository) IncrementResult(_ context.Context, winnerID, loserID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	winner := m.players[winnerID]
	winner.ID = winnerID
	winner.Wins++
	m.players[winnerID] = winner

	loser := m.players[loserID]
	loser.ID = loserID
	loser.Losses++
	m.players[loserID] = loser
	return nil
}

func (m *MemoryRepository) IncrementDraws(_ context.Context, a, b uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range []uuid.UUID{a, b} {
		p := m.players[id]
		p.ID = id
		p.Draws++
		m.players[id] = p
	}
	return nil
}
