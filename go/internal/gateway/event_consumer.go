package gateway

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/gamehub/go/internal/events"
)

// ConsumerConfig holds NATS settings for the gateway's event consumer.
type ConsumerConfig struct {
	URL           string
	SubjectFilter string // e.g. "game.events.>"
	MaxReconnects int
	ReconnectWait time.Duration
}

// DefaultConsumerConfig returns default consumer configuration.
func DefaultConsumerConfig() ConsumerConfig {
	return ConsumerConfig{
		URL:           nats.DefaultURL,
		SubjectFilter: "game.events.>",
		MaxReconnects: -1,
		ReconnectWait: 2 * time.Second,
	}
}

// PushMessage is the frame delivered to websocket subscribers of a game
// channel.
type PushMessage struct {
	Type events.EventType `json:"type"`
	Game json.RawMessage  `json:"game"`
}

// EventConsumer subscribes to session events on NATS and fans them out to
// websocket subscribers of the affected game.
type EventConsumer struct {
	connectionManager *ConnectionManager
	nc                *nats.Conn
	sub               *nats.Subscription
	config            ConsumerConfig
}

// NewEventConsumer connects to NATS and returns an unstarted consumer.
func NewEventConsumer(cm *ConnectionManager, config ConsumerConfig) (*EventConsumer, error) {
	opts := []nats.Option{
		nats.MaxReconnects(config.MaxReconnects),
		nats.ReconnectWait(config.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			log.Error().Err(err).Msg("NATS error")
		}),
	}

	nc, err := nats.Connect(config.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	return &EventConsumer{
		connectionManager: cm,
		nc:                nc,
		config:            config,
	}, nil
}

// NewEventConsumerWithConn wraps an existing NATS connection.
func NewEventConsumerWithConn(cm *ConnectionManager, nc *nats.Conn, config ConsumerConfig) *EventConsumer {
	return &EventConsumer{connectionManager: cm, nc: nc, config: config}
}

// Start subscribes to the session event subjects.
func (ec *EventConsumer) Start() error {
	sub, err := ec.nc.Subscribe(ec.config.SubjectFilter, func(msg *nats.Msg) {
		if err := ec.processMessage(msg); err != nil {
			log.Error().
				Err(err).
				Str("subject", msg.Subject).
				Msg("failed to process event")
		}
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", ec.config.SubjectFilter, err)
	}
	ec.sub = sub

	log.Info().
		Str("subject", ec.config.SubjectFilter).
		Msg("event consumer started")
	return nil
}

// processMessage converts one bus event into a push frame and broadcasts it.
func (ec *EventConsumer) processMessage(msg *nats.Msg) error {
	var envelope events.Envelope
	if err := json.Unmarshal(msg.Data, &envelope); err != nil {
		return fmt.Errorf("unmarshal event envelope: %w", err)
	}

	push, err := json.Marshal(PushMessage{
		Type: envelope.EventType,
		Game: envelope.Payload,
	})
	if err != nil {
		return fmt.Errorf("marshal push frame: %w", err)
	}

	ec.connectionManager.BroadcastToGame(envelope.GameID, push)

	log.Debug().
		Str("event_id", envelope.EventID).
		Str("game_id", envelope.GameID).
		Str("event_type", string(envelope.EventType)).
		Msg("event forwarded to game channel")
	return nil
}

// Stop unsubscribes and closes the NATS connection.
func (ec *EventConsumer) Stop() error {
	if ec.sub != nil {
		if err := ec.sub.Unsubscribe(); err != nil {
			log.Error().Err(err).Msg("failed to unsubscribe")
		}
	}
	if ec.nc != nil {
		ec.nc.Close()
	}
	return nil
}
