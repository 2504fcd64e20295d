package gateway

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/gamehub/go/internal/identity"
	"github.com/mcdev12/gamehub/go/internal/players"
)

// WebSocketHandler handles websocket upgrade requests. Every connection must
// present a verifiable bearer token before it reaches the engine.
type WebSocketHandler struct {
	connectionManager *ConnectionManager
	verifier          identity.Verifier
	players           *players.App
}

// NewWebSocketHandler creates a new websocket handler.
func NewWebSocketHandler(cm *ConnectionManager, verifier identity.Verifier, playersApp *players.App) *WebSocketHandler {
	return &WebSocketHandler{
		connectionManager: cm,
		verifier:          verifier,
		players:           playersApp,
	}
}

// HandleConnection authenticates and upgrades a client connection.
func (h *WebSocketHandler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	ident, err := h.verifier.Verify(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	// Make sure the stats row exists before this player can finish a game.
	if _, err := h.players.EnsurePlayer(r.Context(), ident.PlayerID, ident.Name); err != nil {
		log.Error().Err(err).Str("player_id", ident.PlayerID.String()).Msg("failed to ensure player")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if err := h.connectionManager.UpgradeConnection(w, r, ident); err != nil {
		log.Error().
			Err(err).
			Str("player_id", ident.PlayerID.String()).
			Msg("failed to upgrade websocket connection")
		return
	}
}

// HandleConnectionStats returns statistics about active connections.
func (h *WebSocketHandler) HandleConnectionStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(h.connectionManager.Stats()); err != nil {
		log.Error().Err(err).Msg("failed to encode connection stats")
	}
}

// RegisterRoutes registers websocket routes with an HTTP mux.
func (h *WebSocketHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", h.HandleConnection)
	mux.HandleFunc("/ws/stats", h.HandleConnectionStats)
}

// bearerToken extracts the token from the Authorization header, falling back
// to the "token" query parameter for browser websocket clients that cannot
// set headers on the upgrade request.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return r.URL.Query().Get("token")
}
