package main

import (
	"database/sql"

	"github.com/jonboulle/clockwork"
	"github.com/nats-io/nats.go"

	"github.com/mcdev12/gamehub/go/internal/events"
	"github.com/mcdev12/gamehub/go/internal/game"
	"github.com/mcdev12/gamehub/go/internal/gateway"
	"github.com/mcdev12/gamehub/go/internal/identity"
	"github.com/mcdev12/gamehub/go/internal/players"
)

type Services struct {
	Game     *game.App
	Players  *players.App
	Gateway  *gateway.WebSocketHandler
	ConnMgr  *gateway.ConnectionManager
	Consumer *gateway.EventConsumer
	Notifier *events.Publisher
}

func setupServices(database *sql.DB, nc *nats.Conn, config *Config) *Services {
	// Wire up dependency injection chain
	// Database layer → Repository layer → App layer → Gateway layer

	// Players
	playersRepo := players.NewRepository(database)
	playersApp := players.NewApp(playersRepo)

	// Session engine
	gameRepo := game.NewRepository(database)
	clock := clockwork.NewRealClock()
	timers := game.NewTimerManager(clock)
	registry := game.NewConnectionRegistry()

	publisherCfg := events.DefaultPublisherConfig()
	publisherCfg.URL = config.NATSURL
	notifier := events.NewPublisherWithConn(nc, publisherCfg)

	gameApp := game.NewApp(gameRepo, playersApp, timers, registry, notifier, clock, config.TurnTimeout())

	// Gateway
	router := gateway.NewRouter(gameApp)
	connMgr := gateway.NewConnectionManager(gateway.DefaultConnectionConfig(), router)

	consumerCfg := gateway.DefaultConsumerConfig()
	consumerCfg.URL = config.NATSURL
	consumer := gateway.NewEventConsumerWithConn(connMgr, nc, consumerCfg)

	verifier := identity.NewJWTVerifier(config.JWTSecret)
	wsHandler := gateway.NewWebSocketHandler(connMgr, verifier, playersApp)

	return &Services{
		Game:     gameApp,
		Players:  playersApp,
		Gateway:  wsHandler,
		ConnMgr:  connMgr,
		Consumer: consumer,
		Notifier: notifier,
	}
}
