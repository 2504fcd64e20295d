// Package events defines the session event envelope shared by the engine's
// notifier (publisher side) and the websocket gateway (consumer side).
package events

import (
	"encoding/json"
	"time"
)

// EventType identifies the kind of session event.
type EventType string

const (
	// EventTypeGameUpdated is published on every session state change.
	EventTypeGameUpdated EventType = "GameUpdated"
	// EventTypeGameTimeout is additionally published when a session resolves
	// by timeout or disconnect forfeiture.
	EventTypeGameTimeout EventType = "GameTimeout"
)

// Envelope is the wire format for session events on the bus.
type Envelope struct {
	EventID   string          `json:"event_id"`
	EventType EventType       `json:"event_type"`
	GameID    string          `json:"game_id"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}
