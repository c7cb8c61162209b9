package app

import (
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/daltonlim/articulate/internal/domain"
	"github.com/daltonlim/articulate/internal/metrics"
)

const (
	// DefaultRoomCodeLength is the default length for room codes
	DefaultRoomCodeLength = 6

	// StaleGameTimeout is how long before an inactive game is cleaned up
	StaleGameTimeout = 2 * time.Hour
)

// RoomCodeChars are characters used for room codes (no ambiguous chars)
const RoomCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GameHub manages all active game sessions
type GameHub struct {
	sessions       map[string]*GameSession
	mu             sync.RWMutex
	roomCodeLength int
	wordBank       domain.WordBank
	logger         *zap.Logger
	metrics        *metrics.Metrics
	done           chan struct{}
}

// NewGameHub creates a new game hub drawing from the given word bank.
func NewGameHub(wordBank domain.WordBank, logger *zap.Logger, m *metrics.Metrics) *GameHub {
	hub := &GameHub{
		sessions:       make(map[string]*GameSession),
		roomCodeLength: DefaultRoomCodeLength,
		wordBank:       wordBank,
		logger:         logger,
		metrics:        m,
		done:           make(chan struct{}),
	}

	// Start cleanup goroutine
	go hub.cleanupLoop()

	return hub
}

// SetRoomCodeLength overrides the length of generated room codes. It only
// affects games created afterwards.
func (h *GameHub) SetRoomCodeLength(n int) {
	if n <= 0 {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.roomCodeLength = n
}

// WordBank returns the hub's word bank.
func (h *GameHub) WordBank() domain.WordBank {
	return h.wordBank
}

// CreateGame creates a new game for the given teams and returns its session.
func (h *GameHub) CreateGame(teamNames []string, settings domain.Settings) (*GameSession, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Generate unique room code
	var roomCode string
	for attempts := 0; attempts < 10; attempts++ {
		code, err := h.generateRoomCode()
		if err != nil {
			return nil, fmt.Errorf("generate room code: %w", err)
		}
		roomCode = code
		if _, exists := h.sessions[roomCode]; !exists {
			break
		}
	}

	// Check if we found a unique code
	if _, exists := h.sessions[roomCode]; exists {
		return nil, fmt.Errorf("failed to generate unique room code")
	}

	game, err := domain.NewGame(roomCode, teamNames, h.wordBank, settings)
	if err != nil {
		return nil, err
	}

	session := NewGameSession(game, h.logger, h.metrics)
	h.sessions[roomCode] = session

	h.metrics.GamesCreated.Inc()
	h.metrics.ActiveGames.Set(float64(len(h.sessions)))
	h.logger.Info("game created",
		zap.String("roomCode", roomCode),
		zap.Int("teams", len(teamNames)),
	)

	return session, nil
}

// GetSession returns a game session by room code
func (h *GameHub) GetSession(roomCode string) (*GameSession, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	session, ok := h.sessions[roomCode]
	if !ok {
		return nil, domain.ErrGameNotFound
	}

	return session, nil
}

// DeleteSession removes a game session
func (h *GameHub) DeleteSession(roomCode string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if session, ok := h.sessions[roomCode]; ok {
		session.Close()
		delete(h.sessions, roomCode)
		h.metrics.ActiveGames.Set(float64(len(h.sessions)))
		h.logger.Info("game deleted", zap.String("roomCode", roomCode))
	}
}

// GetSessionCount returns the number of active sessions
func (h *GameHub) GetSessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// GetTotalClientCount returns the number of connected clients across all
// sessions.
func (h *GameHub) GetTotalClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, session := range h.sessions {
		total += session.GetClientCount()
	}
	return total
}

// Close shuts down the hub and all sessions
func (h *GameHub) Close() {
	select {
	case <-h.done:
		return
	default:
		close(h.done)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, session := range h.sessions {
		session.Close()
	}
	h.sessions = make(map[string]*GameSession)
	h.metrics.ActiveGames.Set(0)
}

// generateRoomCode generates a random room code
func (h *GameHub) generateRoomCode() (string, error) {
	b := make([]byte, h.roomCodeLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	code := make([]byte, h.roomCodeLength)
	for i := range code {
		code[i] = RoomCodeChars[int(b[i])%len(RoomCodeChars)]
	}

	return string(code), nil
}

// cleanupLoop periodically cleans up stale games
func (h *GameHub) cleanupLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-h.done:
			return
		case <-ticker.C:
			h.cleanupStaleGames()
		}
	}
}

// cleanupStaleGames removes games with no connected clients that have been
// around longer than the stale timeout, finished games included.
func (h *GameHub) cleanupStaleGames() {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := time.Now()
	stale := make([]string, 0)

	for roomCode, session := range h.sessions {
		if session.GetClientCount() == 0 && now.Sub(session.GetCreatedAt()) > StaleGameTimeout {
			stale = append(stale, roomCode)
		}
	}

	for _, roomCode := range stale {
		if session, ok := h.sessions[roomCode]; ok {
			session.Close()
			delete(h.sessions, roomCode)
			h.logger.Info("stale game cleaned up", zap.String("roomCode", roomCode))
		}
	}
	h.metrics.ActiveGames.Set(float64(len(h.sessions)))
}
