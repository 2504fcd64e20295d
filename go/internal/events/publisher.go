package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/gamehub/go/internal/game"
)

// PublisherConfig holds NATS settings for the event publisher.
type PublisherConfig struct {
	URL           string
	SubjectPrefix string
	MaxReconnects int
	ReconnectWait time.Duration
}

// DefaultPublisherConfig returns default publisher configuration.
func DefaultPublisherConfig() PublisherConfig {
	return PublisherConfig{
		URL:           nats.DefaultURL,
		SubjectPrefix: "game.events",
		MaxReconnects: -1,
		ReconnectWait: 2 * time.Second,
	}
}

// Publisher pushes session snapshots onto per-session NATS subjects. It is
// the production implementation of the engine's Notifier: fire-and-forget,
// no ordering guarantee beyond NATS's own per-connection ordering.
type Publisher struct {
	nc     *nats.Conn
	config PublisherConfig
}

// NewPublisher connects to NATS and returns a ready publisher.
func NewPublisher(cfg PublisherConfig) (*Publisher, error) {
	opts := []nats.Option{
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
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

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	return &Publisher{nc: nc, config: cfg}, nil
}

// NewPublisherWithConn wraps an existing NATS connection.
func NewPublisherWithConn(nc *nats.Conn, cfg PublisherConfig) *Publisher {
	return &Publisher{nc: nc, config: cfg}
}

// GameUpdated publishes a GameUpdated event for the snapshot's session.
func (p *Publisher) GameUpdated(ctx context.Context, snap game.Snapshot) {
	p.publish(EventTypeGameUpdated, snap)
}

// GameTimeout publishes a GameTimeout event for the snapshot's session.
func (p *Publisher) GameTimeout(ctx context.Context, snap game.Snapshot) {
	p.publish(EventTypeGameTimeout, snap)
}

func (p *Publisher) publish(eventType EventType, snap game.Snapshot) {
	payload, err := json.Marshal(snap)
	if err != nil {
		log.Error().Err(err).Str("game_id", snap.ID).Msg("failed to marshal snapshot")
		return
	}

	envelope := Envelope{
		EventID:   uuid.New().String(),
		EventType: eventType,
		GameID:    snap.ID,
		Timestamp: time.Now(),
		Payload:   payload,
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		log.Error().Err(err).Str("game_id", snap.ID).Msg("failed to marshal event envelope")
		return
	}

	subject := fmt.Sprintf("%s.%s", p.config.SubjectPrefix, snap.ID)
	if err := p.nc.Publish(subject, data); err != nil {
		log.Error().
			Err(err).
			Str("subject", subject).
			Str("event_type", string(eventType)).
			Msg("failed to publish event")
		return
	}

	log.Debug().
		Str("subject", subject).
		Str("event_type", string(eventType)).
		Msg("event published")
}

// Close drains the underlying NATS connection.
func (p *Publisher) Close() {
	if p.nc != nil {
		p.nc.Close()
	}
}
