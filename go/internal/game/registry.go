package game

import (
	"sync"

	"github.com/google/uuid"
)

// Binding ties a live connection to the session it is currently playing in.
// Bindings are process-local and never persisted; their only purpose is to
// route a disconnect event to the right session.
type Binding struct {
	GameID   uuid.UUID
	PlayerID uuid.UUID
}

// ConnectionRegistry maps active connection ids to their session binding.
type ConnectionRegistry struct {
	mu       sync.RWMutex
	bindings map[string]Binding
}

// NewConnectionRegistry creates an empty registry.
func NewConnectionRegistry() *ConnectionRegistry {
	return &ConnectionRegistry{bindings: make(map[string]Binding)}
}

// Bind records that connID is playing in the given session. A connection is
// bound to at most one session; a new bind replaces the previous one.
func (r *ConnectionRegistry) Bind(connID string, gameID, playerID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings[connID] = Binding{GameID: gameID, PlayerID: playerID}
}

// Unbind removes and returns the binding for connID, if any.
func (r *ConnectionRegistry) Unbind(connID string) (Binding, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bindings[connID]
	if ok {
		delete(r.bindings, connID)
	}
	return b, ok
}

// ReleaseGame drops every binding for the session. Called on the terminal
// transition so finished sessions do not hold bindings until socket close.
func (r *ConnectionRegistry) ReleaseGame(gameID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for connID, b := range r.bindings {
		if b.GameID == gameID {
			delete(r.bindings, connID)
		}
	}
}

// Lookup returns the binding for connID without removing it.
func (r *ConnectionRegistry) Lookup(connID string) (Binding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bindings[connID]
	return b, ok
}
