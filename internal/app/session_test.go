package app

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/daltonlim/articulate/internal/domain"
	"github.com/daltonlim/articulate/internal/metrics"
)

// fakeClient records every snapshot it receives.
type fakeClient struct {
	playerID string
	mu       sync.Mutex
	received []*domain.Snapshot
	closed   bool
}

func (c *fakeClient) SendState(snapshot *domain.Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.received = append(c.received, snapshot)
	return nil
}

func (c *fakeClient) GetPlayerID() string { return c.playerID }

func (c *fakeClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeClient) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.received)
}

func (c *fakeClient) last() *domain.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.received) == 0 {
		return nil
	}
	return c.received[len(c.received)-1]
}

func newTestSession(t *testing.T, settings domain.Settings) *GameSession {
	t.Helper()
	game, err := domain.NewGame("ROOM01", []string{"Red", "Blue"}, DefaultWordBank(), settings)
	require.NoError(t, err)

	session := NewGameSession(game, zap.NewNop(), metrics.New(prometheus.NewRegistry()))
	t.Cleanup(session.Close)
	return session
}

func TestSessionBroadcastsAfterEveryOperation(t *testing.T) {
	session := newTestSession(t, domain.DefaultSettings())
	client := &fakeClient{playerID: "p1"}
	session.RegisterClient("p1", client)

	session.Start()
	session.StartTurn()
	session.CorrectGuess()

	require.Eventually(t, func() bool {
		return client.count() >= 3
	}, time.Second, 10*time.Millisecond)

	last := client.last()
	assert.Equal(t, domain.PhaseTurn, last.Phase)
	require.NotNil(t, last.CurrentTurn)
	assert.Equal(t, 1, last.CurrentTurn.CorrectCount)
}

func TestSessionUnregisteredClientGetsNothing(t *testing.T) {
	session := newTestSession(t, domain.DefaultSettings())
	client := &fakeClient{playerID: "p1"}
	session.RegisterClient("p1", client)
	session.UnregisterClient("p1")

	session.Start()

	// The broadcast loop has no receiver; give it a moment and verify.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, client.count())
	assert.Equal(t, 0, session.GetClientCount())
}

func TestSessionFullGameToWin(t *testing.T) {
	session := newTestSession(t, domain.DefaultSettings())
	client := &fakeClient{playerID: "p1"}
	session.RegisterClient("p1", client)

	session.Start()
	session.StartTurn()
	session.EndTurn(60) // straight to the finish

	snap := session.Snapshot()
	require.NotNil(t, snap.FinalChallenge)
	assert.Equal(t, 0, snap.FinalChallenge.TeamIndex)
	assert.Equal(t, 0, snap.CurrentTeamIndex)

	session.StartTurn()
	assert.Equal(t, domain.PhaseControlTurn, session.GetPhase())

	won := session.GuessControlWord(0)
	assert.True(t, won)

	snap = session.Snapshot()
	assert.Equal(t, domain.PhaseWon, snap.Phase)
	require.NotNil(t, snap.Winner)
	assert.Equal(t, "Red", snap.Winner.Name)
	assert.False(t, snap.IsStarted)

	require.Eventually(t, func() bool {
		last := client.last()
		return last != nil && last.Phase == domain.PhaseWon
	}, time.Second, 10*time.Millisecond)
}

func TestSessionControlGuessByOpponentDoesNotWin(t *testing.T) {
	session := newTestSession(t, domain.DefaultSettings())

	session.Start()
	session.StartTurn()
	session.EndTurn(60)
	session.StartTurn()

	won := session.GuessControlWord(1)
	assert.False(t, won)

	snap := session.Snapshot()
	assert.Nil(t, snap.Winner)
	require.NotNil(t, snap.FinalChallenge)
	assert.Equal(t, 1, snap.CurrentTeamIndex)
}

func TestSessionTurnExpiryWatchdog(t *testing.T) {
	if testing.Short() {
		t.Skip("watchdog waits out the grace period")
	}

	session := newTestSession(t, domain.Settings{TurnDuration: 100 * time.Millisecond})

	session.Start()
	session.StartTurn()
	session.CorrectGuess()
	session.CorrectGuess()
	require.Equal(t, domain.PhaseTurn, session.GetPhase())

	// Nobody ends the turn; the watchdog resolves it with the turn's tally
	// after the timer plus grace.
	require.Eventually(t, func() bool {
		return session.GetPhase() != domain.PhaseTurn
	}, 5*time.Second, 50*time.Millisecond)

	snap := session.Snapshot()
	assert.Equal(t, domain.PhaseAwaitingTurn, snap.Phase)
	assert.Nil(t, snap.CurrentTurn)
	assert.Equal(t, 2, snap.Teams[0].Position)
	assert.Equal(t, 1, snap.CurrentTeamIndex)
}

func TestSessionCloseDisconnectsClients(t *testing.T) {
	session := newTestSession(t, domain.DefaultSettings())
	client := &fakeClient{playerID: "p1"}
	session.RegisterClient("p1", client)

	session.Close()

	assert.True(t, client.closed)
	assert.Equal(t, 0, session.GetClientCount())

	// Closing twice is harmless.
	session.Close()
}
