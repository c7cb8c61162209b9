package ws

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/daltonlim/articulate/internal/app"
)

// Handler handles WebSocket connections.
type Handler struct {
	hub      *app.GameHub
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewHandler creates a new WebSocket handler.
func NewHandler(hub *app.GameHub, logger *zap.Logger) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// Allow all origins for development
				// In production, you should validate the origin
				return true
			},
		},
		logger: logger,
	}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Get room code from query params
	roomCode := r.URL.Query().Get("roomCode")
	if roomCode == "" {
		http.Error(w, "roomCode is required", http.StatusBadRequest)
		return
	}

	// Get or create player ID; passing one back keeps a reconnecting
	// participant's identity
	playerID := r.URL.Query().Get("playerId")
	isReconnect := playerID != ""
	if !isReconnect {
		playerID = uuid.New().String()
	}

	// Get the game session
	session, err := h.hub.GetSession(roomCode)
	if err != nil {
		http.Error(w, "Game not found", http.StatusNotFound)
		return
	}

	// Upgrade connection to WebSocket
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	// Create and register the client
	client := NewClient(conn, session, playerID, h.logger)
	session.RegisterClient(playerID, client)

	h.logger.Info("websocket connected",
		zap.String("roomCode", roomCode),
		zap.String("playerID", playerID),
		zap.Bool("isReconnect", isReconnect),
	)

	// Send the current state so late joiners and reconnects catch up
	client.SendConnected()

	// Start the client
	client.Run()
}
