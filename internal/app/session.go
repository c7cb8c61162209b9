package app

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/daltonlim/articulate/internal/domain"
	"github.com/daltonlim/articulate/internal/metrics"
)

// turnExpiryGrace is how long past the turn timer the session waits for the
// clients to resolve a turn before ending it server-side.
const turnExpiryGrace = 2 * time.Second

// snapshotBufferSize is the broadcast queue depth per session.
const snapshotBufferSize = 64

// ClientConnection represents a connected client.
type ClientConnection interface {
	SendState(snapshot *domain.Snapshot) error
	GetPlayerID() string
	Close() error
}

// GameSession wraps a game with concurrency control and client management.
// All game mutations for one room go through the session's mutex, which is
// the serialized single-writer access the core requires.
type GameSession struct {
	game      *domain.Game
	mu        sync.RWMutex
	clients   map[string]ClientConnection // playerID -> client
	clientsMu sync.RWMutex
	logger    *zap.Logger
	metrics   *metrics.Metrics

	snapshots chan *domain.Snapshot
	done      chan struct{}
}

// NewGameSession creates a new game session.
func NewGameSession(game *domain.Game, logger *zap.Logger, m *metrics.Metrics) *GameSession {
	session := &GameSession{
		game:      game,
		clients:   make(map[string]ClientConnection),
		logger:    logger,
		metrics:   m,
		snapshots: make(chan *domain.Snapshot, snapshotBufferSize),
		done:      make(chan struct{}),
	}

	// Start snapshot broadcaster
	go session.broadcastLoop()

	return session
}

// GetRoomCode returns the room code.
func (s *GameSession) GetRoomCode() string {
	return s.game.ID
}

// GetCreatedAt returns when the game was created.
func (s *GameSession) GetCreatedAt() time.Time {
	return s.game.CreatedAt
}

// GetPhase returns the current game phase.
func (s *GameSession) GetPhase() domain.Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.game.CurrentPhase()
}

// GetTeamCount returns the number of teams in the game.
func (s *GameSession) GetTeamCount() int {
	return s.game.TeamCount()
}

// Snapshot returns the current game snapshot.
func (s *GameSession) Snapshot() *domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.game.State()
}

// RegisterClient registers a client connection for a player.
func (s *GameSession) RegisterClient(playerID string, client ClientConnection) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[playerID] = client
	s.metrics.ConnectedClients.Inc()
}

// UnregisterClient removes a client connection.
func (s *GameSession) UnregisterClient(playerID string) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	if _, ok := s.clients[playerID]; ok {
		delete(s.clients, playerID)
		s.metrics.ConnectedClients.Dec()
	}
}

// GetClientCount returns the number of connected clients.
func (s *GameSession) GetClientCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

// apply runs one game operation under the write lock and broadcasts the
// resulting snapshot.
func (s *GameSession) apply(op func()) *domain.Snapshot {
	s.mu.Lock()
	op()
	snapshot := s.game.State()
	s.mu.Unlock()

	s.metrics.ActionsTotal.Inc()
	s.queueSnapshot(snapshot)
	return snapshot
}

// Start starts the game.
func (s *GameSession) Start() {
	s.apply(s.game.Start)
}

// StartTurn opens a turn for the current team and arms the expiry watchdog
// for timed turns.
func (s *GameSession) StartTurn() {
	snapshot := s.apply(s.game.StartTurn)
	s.scheduleTurnExpiry(snapshot)
}

// CorrectGuess records a correct guess on the active turn.
func (s *GameSession) CorrectGuess() {
	s.apply(s.game.CorrectGuess)
}

// PassWord passes the current word.
func (s *GameSession) PassWord() {
	s.apply(s.game.PassWord)
}

// EndTurn resolves the active turn. A negative count uses the turn's tally.
func (s *GameSession) EndTurn(correctCount int) {
	s.apply(func() { s.game.EndTurn(correctCount) })
}

// SpinSpinner spins the pending spinner.
func (s *GameSession) SpinSpinner() {
	s.apply(s.game.SpinSpinner)
}

// ResolveSpinner applies the recorded spinner outcome.
func (s *GameSession) ResolveSpinner(choice string, teamIndex int) {
	s.apply(func() { s.game.ResolveSpinner(choice, teamIndex) })
}

// DrawSpadeCard opens the spade free-for-all.
func (s *GameSession) DrawSpadeCard() {
	s.apply(s.game.DrawSpadeCard)
}

// ResolveSpade ends the spade free-for-all. A negative index means no winner.
func (s *GameSession) ResolveSpade(winningTeamIndex int) {
	s.apply(func() { s.game.ResolveSpade(winningTeamIndex) })
}

// GuessControlWord records the first correct guess of a control turn and
// reports whether it won the game.
func (s *GameSession) GuessControlWord(teamIndex int) bool {
	var won bool
	snapshot := s.apply(func() { won = s.game.GuessControlWord(teamIndex) })

	if won {
		s.metrics.GamesFinished.Inc()
		winner := ""
		if snapshot.Winner != nil {
			winner = snapshot.Winner.Name
		}
		s.logger.Info("game won",
			zap.String("roomCode", s.game.ID),
			zap.String("winner", winner),
		)
	}
	return won
}

// PassControlWord ends a control turn nobody guessed.
func (s *GameSession) PassControlWord() {
	s.apply(s.game.PassControlWord)
}

// RerollControlCard redraws the control word.
func (s *GameSession) RerollControlCard() {
	s.apply(s.game.RerollControlCard)
}

// scheduleTurnExpiry arms a watchdog that ends the turn with its own tally
// if no client resolved it shortly after the timer ran out. The core leaves
// expiry enforcement to this layer; a later turn is recognized by its start
// time and left alone.
func (s *GameSession) scheduleTurnExpiry(snapshot *domain.Snapshot) {
	if snapshot.Phase != domain.PhaseTurn || snapshot.CurrentTurn == nil {
		return
	}

	startTime := snapshot.CurrentTurn.StartTime
	duration := time.Duration(snapshot.TurnDuration) * time.Millisecond

	time.AfterFunc(duration+turnExpiryGrace, func() {
		select {
		case <-s.done:
			return
		default:
		}

		s.mu.Lock()
		var expired *domain.Snapshot
		current := s.game.State()
		if current.Phase == domain.PhaseTurn && current.CurrentTurn != nil &&
			current.CurrentTurn.StartTime == startTime {
			s.game.EndTurn(-1)
			expired = s.game.State()
		}
		s.mu.Unlock()

		if expired != nil {
			s.logger.Info("turn expired without resolution",
				zap.String("roomCode", s.game.ID),
			)
			s.queueSnapshot(expired)
		}
	})
}

// queueSnapshot adds a snapshot to the broadcast queue.
func (s *GameSession) queueSnapshot(snapshot *domain.Snapshot) {
	select {
	case s.snapshots <- snapshot:
	default:
		s.logger.Warn("snapshot queue full, dropping broadcast",
			zap.String("roomCode", s.game.ID),
		)
	}
}

// broadcastLoop sends queued snapshots to all connected clients.
func (s *GameSession) broadcastLoop() {
	for {
		select {
		case <-s.done:
			return
		case snapshot := <-s.snapshots:
			s.broadcast(snapshot)
		}
	}
}

// broadcast sends one snapshot to every client.
func (s *GameSession) broadcast(snapshot *domain.Snapshot) {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()

	for playerID, client := range s.clients {
		if err := client.SendState(snapshot); err != nil {
			s.logger.Debug("failed to send to client",
				zap.String("playerID", playerID),
				zap.Error(err),
			)
		}
	}
}

// Close shuts down the session.
func (s *GameSession) Close() {
	select {
	case <-s.done:
		return // Already closed
	default:
		close(s.done)
	}

	// Close all client connections
	s.clientsMu.Lock()
	for _, client := range s.clients {
		client.Close()
	}
	if n := len(s.clients); n > 0 {
		s.metrics.ConnectedClients.Sub(float64(n))
	}
	s.clients = make(map[string]ClientConnection)
	s.clientsMu.Unlock()
}
