package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/daltonlim/articulate/internal/app"
	"github.com/daltonlim/articulate/internal/domain"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096

	// Size of the send channel buffer
	sendBufferSize = 256
)

// Client represents a WebSocket client connection.
type Client struct {
	conn     *websocket.Conn
	session  *app.GameSession
	playerID string
	send     chan []byte
	done     chan struct{}
	logger   *zap.Logger
	mu       sync.Mutex
	closed   bool
}

// NewClient creates a new WebSocket client.
func NewClient(conn *websocket.Conn, session *app.GameSession, playerID string, logger *zap.Logger) *Client {
	return &Client{
		conn:     conn,
		session:  session,
		playerID: playerID,
		send:     make(chan []byte, sendBufferSize),
		done:     make(chan struct{}),
		logger:   logger,
	}
}

// GetPlayerID returns the player ID for this client.
func (c *Client) GetPlayerID() string {
	return c.playerID
}

// SendState implements app.ClientConnection by wrapping the snapshot in a
// game-updated message.
func (c *Client) SendState(snapshot *domain.Snapshot) error {
	return c.sendMessage(NewServerMessage(MsgGameUpdated, &GameUpdatedPayload{GameState: snapshot}))
}

// sendMessage queues a message for the write pump.
func (c *Client) sendMessage(message *ServerMessage) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	select {
	case c.send <- data:
		return nil
	default:
		// Buffer full, message dropped
		c.logger.Warn("send buffer full, message dropped", zap.String("playerID", c.playerID))
		return nil
	}
}

// Close implements app.ClientConnection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	c.closed = true
	close(c.done)
	return c.conn.Close()
}

// Run starts the client's read and write pumps.
func (c *Client) Run() {
	go c.writePump()
	c.readPump()
}

// readPump pumps messages from the WebSocket connection.
func (c *Client) readPump() {
	defer func() {
		c.session.UnregisterClient(c.playerID)
		c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Debug("websocket read error", zap.Error(err))
			}
			break
		}

		c.handleMessage(message)
	}
}

// writePump pumps messages from the send channel to the WebSocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			return
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current websocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage processes an incoming message from the client. Game
// preconditions are enforced by the core as silent no-ops, so every action
// simply results in a fresh snapshot broadcast; only malformed payloads are
// answered with errors.
func (c *Client) handleMessage(data []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.sendError(ErrCodeInvalidMessage, "Invalid message format")
		return
	}

	switch msg.Type {
	case MsgStartGame:
		c.session.Start()
	case MsgStartTurn:
		c.session.StartTurn()
	case MsgCorrectGuess:
		c.session.CorrectGuess()
	case MsgPassWord:
		c.session.PassWord()
	case MsgEndTurn:
		c.handleEndTurn(msg.Payload)
	case MsgSpinSpinner:
		c.session.SpinSpinner()
	case MsgSpinnerChoice:
		c.handleSpinnerChoice(msg.Payload)
	case MsgDrawSpadeCard:
		c.session.DrawSpadeCard()
	case MsgHandleSpade:
		c.handleSpade(msg.Payload)
	case MsgControlGuess:
		c.handleControlGuess(msg.Payload)
	case MsgControlPass:
		c.session.PassControlWord()
	case MsgRerollControl:
		c.session.RerollControlCard()
	case MsgPing:
		c.sendMessage(NewServerMessage(MsgPong, nil))
	default:
		c.sendError(ErrCodeInvalidMessage, "Unknown message type")
	}
}

// handleEndTurn handles an end-turn message.
func (c *Client) handleEndTurn(payload json.RawMessage) {
	count := -1 // use the turn's own tally
	if len(payload) > 0 {
		var p EndTurnPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			c.sendError(ErrCodeInvalidMessage, "Invalid payload")
			return
		}
		if p.CorrectCount != nil {
			count = *p.CorrectCount
		}
	}
	c.session.EndTurn(count)
}

// handleSpinnerChoice handles a spinner-choice message.
func (c *Client) handleSpinnerChoice(payload json.RawMessage) {
	var p SpinnerChoicePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		c.sendError(ErrCodeInvalidMessage, "Invalid payload")
		return
	}
	c.session.ResolveSpinner(p.Choice, p.SelectedTeamIndex)
}

// handleSpade handles a handle-spade message.
func (c *Client) handleSpade(payload json.RawMessage) {
	winner := -1 // nobody won
	if len(payload) > 0 {
		var p HandleSpadePayload
		if err := json.Unmarshal(payload, &p); err != nil {
			c.sendError(ErrCodeInvalidMessage, "Invalid payload")
			return
		}
		if p.WinningTeamIndex != nil {
			winner = *p.WinningTeamIndex
		}
	}
	c.session.ResolveSpade(winner)
}

// handleControlGuess handles a control-guess message.
func (c *Client) handleControlGuess(payload json.RawMessage) {
	var p ControlGuessPayload
	if err := json.Unmarshal(payload, &p); err != nil || p.TeamIndex == nil {
		c.sendError(ErrCodeInvalidMessage, "Team index is required")
		return
	}

	won := c.session.GuessControlWord(*p.TeamIndex)
	c.sendMessage(NewServerMessage(MsgControlGuess, &ControlResultPayload{Won: won}))
}

// SendConnected sends the connected message with the current snapshot.
func (c *Client) SendConnected() {
	payload := &ConnectedPayload{
		PlayerID:  c.playerID,
		GameID:    c.session.GetRoomCode(),
		GameState: c.session.Snapshot(),
	}
	c.sendMessage(NewServerMessage(MsgConnected, payload))
}

// sendError sends an error message to the client.
func (c *Client) sendError(code, message string) {
	c.sendMessage(NewServerMessage(MsgError, &ErrorPayload{
		Code:    code,
		Message: message,
	}))
}
