package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/gamehub/go/internal/identity"
)

// ConnectionManager manages the websocket connections and the per-game
// channels pushes are fanned out on.
type ConnectionManager struct {
	// Connection pools organized by game id
	gameConnections map[string]map[*Connection]bool
	mu              sync.RWMutex

	upgrader websocket.Upgrader
	config   ConnectionConfig
	router   *Router

	// Event broadcasting
	broadcastCh chan BroadcastMessage
}

// Connection represents a websocket connection to an authenticated player.
type Connection struct {
	ID       string
	Identity identity.Identity
	Conn     *websocket.Conn
	Send     chan []byte
	Manager  *ConnectionManager

	// Current game channel subscription, guarded by the manager's mutex.
	gameID string

	ConnectedAt time.Time
	LastPing    time.Time
}

// ConnectionConfig holds configuration for websocket connections.
type ConnectionConfig struct {
	WriteTimeout    time.Duration
	ReadTimeout     time.Duration
	PingInterval    time.Duration
	MaxMessageSize  int64
	ReadBufferSize  int
	WriteBufferSize int
	CheckOrigin     func(r *http.Request) bool
}

// BroadcastMessage represents a push to every subscriber of a game channel.
type BroadcastMessage struct {
	GameID string
	Data   []byte
}

// DefaultConnectionConfig returns default websocket configuration.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		WriteTimeout:    10 * time.Second,
		ReadTimeout:     60 * time.Second,
		PingInterval:    30 * time.Second,
		MaxMessageSize:  4096,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			// Allow all origins in development - restrict in production
			return true
		},
	}
}

// NewConnectionManager creates a new websocket connection manager.
func NewConnectionManager(config ConnectionConfig, router *Router) *ConnectionManager {
	return &ConnectionManager{
		gameConnections: make(map[string]map[*Connection]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		config:      config,
		router:      router,
		broadcastCh: make(chan BroadcastMessage, 1000),
	}
}

// Start begins processing broadcast messages.
func (cm *ConnectionManager) Start(ctx context.Context) {
	log.Info().Msg("connection manager started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("connection manager shutting down")
			return
		case message := <-cm.broadcastCh:
			cm.handleBroadcast(message)
		}
	}
}

// UpgradeConnection upgrades an HTTP request to a websocket connection for
// the verified identity and starts its pumps.
func (cm *ConnectionManager) UpgradeConnection(w http.ResponseWriter, r *http.Request, ident identity.Identity) error {
	conn, err := cm.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to upgrade websocket connection")
		return fmt.Errorf("failed to upgrade connection: %w", err)
	}

	connection := &Connection{
		ID:          uuid.New().String(),
		Identity:    ident,
		Conn:        conn,
		Send:        make(chan []byte, 256),
		Manager:     cm,
		ConnectedAt: time.Now(),
		LastPing:    time.Now(),
	}

	go connection.writePump()
	go connection.readPump()

	log.Info().
		Str("connection_id", connection.ID).
		Str("player_id", ident.PlayerID.String()).
		Msg("websocket connection established")

	return nil
}

// Subscribe puts the connection on the game's push channel, replacing any
// previous subscription. A connection follows at most one game at a time.
func (cm *ConnectionManager) Subscribe(conn *Connection, gameID string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	cm.unsubscribeLocked(conn)

	if cm.gameConnections[gameID] == nil {
		cm.gameConnections[gameID] = make(map[*Connection]bool)
	}
	cm.gameConnections[gameID][conn] = true
	conn.gameID = gameID

	log.Debug().
		Str("connection_id", conn.ID).
		Str("game_id", gameID).
		Int("subscribers", len(cm.gameConnections[gameID])).
		Msg("connection subscribed to game channel")
}

// unsubscribeLocked removes the connection from its current channel.
// Caller holds cm.mu.
func (cm *ConnectionManager) unsubscribeLocked(conn *Connection) {
	if conn.gameID == "" {
		return
	}
	if connections, exists := cm.gameConnections[conn.gameID]; exists {
		delete(connections, conn)
		if len(connections) == 0 {
			delete(cm.gameConnections, conn.gameID)
		}
	}
	conn.gameID = ""
}

// dropConnection removes a closed connection from the manager and tells the
// engine the player is gone.
func (cm *ConnectionManager) dropConnection(conn *Connection) {
	cm.mu.Lock()
	alreadyDropped := conn.Send == nil
	if !alreadyDropped {
		cm.unsubscribeLocked(conn)
		close(conn.Send)
		conn.Send = nil
	}
	cm.mu.Unlock()

	if alreadyDropped {
		return
	}

	log.Info().
		Str("connection_id", conn.ID).
		Str("player_id", conn.Identity.PlayerID.String()).
		Msg("connection closed")

	cm.router.HandleDisconnect(conn.ID)
}

// BroadcastToGame queues data for every subscriber of the game channel.
func (cm *ConnectionManager) BroadcastToGame(gameID string, data []byte) {
	select {
	case cm.broadcastCh <- BroadcastMessage{GameID: gameID, Data: data}:
	default:
		log.Warn().Str("game_id", gameID).Msg("broadcast channel full, dropping message")
	}
}

// handleBroadcast fans a message out to the game's subscribers.
func (cm *ConnectionManager) handleBroadcast(message BroadcastMessage) {
	cm.mu.RLock()
	connections, exists := cm.gameConnections[message.GameID]
	if !exists {
		cm.mu.RUnlock()
		return
	}

	// Snapshot the subscriber set so the lock is not held while sending.
	targets := make([]*Connection, 0, len(connections))
	for conn := range connections {
		targets = append(targets, conn)
	}
	cm.mu.RUnlock()

	for _, conn := range targets {
		conn.enqueue(message.Data)
	}

	log.Debug().
		Str("game_id", message.GameID).
		Int("connections", len(targets)).
		Msg("event broadcasted")
}

// enqueue hands data to the connection's write pump; a slow or dead
// connection is closed rather than blocking the broadcast path.
func (c *Connection) enqueue(data []byte) {
	c.Manager.mu.RLock()
	send := c.Send
	c.Manager.mu.RUnlock()
	if send == nil {
		return
	}

	select {
	case send <- data:
	default:
		log.Warn().
			Str("connection_id", c.ID).
			Msg("connection send buffer full, closing connection")
		c.Conn.Close()
	}
}

// ConnectionStats summarizes active connections for the stats endpoint.
type ConnectionStats struct {
	ActiveGames int `json:"active_games"`
	Subscribers int `json:"subscribers"`
}

// Stats returns statistics about active game channels.
func (cm *ConnectionManager) Stats() ConnectionStats {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	total := 0
	for _, connections := range cm.gameConnections {
		total += len(connections)
	}
	return ConnectionStats{
		ActiveGames: len(cm.gameConnections),
		Subscribers: total,
	}
}

// writePump handles sending messages to the websocket connection.
func (c *Connection) writePump() {
	ticker := time.NewTicker(c.Manager.config.PingInterval)
	send := c.Send
	defer func() {
		ticker.Stop()
		c.Conn.Close()
		c.Manager.dropConnection(c)
	}()

	for {
		select {
		case message, ok := <-send:
			c.Conn.SetWriteDeadline(time.Now().Add(c.Manager.config.WriteTimeout))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Error().
					Err(err).
					Str("connection_id", c.ID).
					Msg("failed to write message to websocket")
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(c.Manager.config.WriteTimeout))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Error().
					Err(err).
					Str("connection_id", c.ID).
					Msg("failed to send ping")
				return
			}
			c.LastPing = time.Now()
		}
	}
}

// readPump handles reading request frames from the websocket connection.
func (c *Connection) readPump() {
	defer func() {
		c.Manager.dropConnection(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(c.Manager.config.MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
		c.LastPing = time.Now()
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().
					Err(err).
					Str("connection_id", c.ID).
					Msg("unexpected websocket close error")
			}
			break
		}

		c.handleClientMessage(message)
		c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
	}
}

// handleClientMessage routes a request frame through the router and writes
// the response back on the same connection.
func (c *Connection) handleClientMessage(message []byte) {
	resp := c.Manager.router.HandleRequest(c, message)

	data, err := json.Marshal(resp)
	if err != nil {
		log.Error().Err(err).Str("connection_id", c.ID).Msg("failed to marshal response frame")
		return
	}
	c.enqueue(data)
}
