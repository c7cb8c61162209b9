package ws

import (
	"encoding/json"
	"time"

	"github.com/daltonlim/articulate/internal/domain"
)

// MessageType represents the type of WebSocket message.
type MessageType string

// Client → Server message types. One message per game operation; the names
// match the channel events the game's UI emits.
const (
	MsgStartGame     MessageType = "start-game"
	MsgStartTurn     MessageType = "start-turn"
	MsgCorrectGuess  MessageType = "correct-guess"
	MsgPassWord      MessageType = "pass-word"
	MsgEndTurn       MessageType = "end-turn"
	MsgSpinSpinner   MessageType = "spin-spinner"
	MsgSpinnerChoice MessageType = "spinner-choice"
	MsgDrawSpadeCard MessageType = "draw-spade-card"
	MsgHandleSpade   MessageType = "handle-spade"
	MsgControlGuess  MessageType = "control-guess"
	MsgControlPass   MessageType = "control-pass"
	MsgRerollControl MessageType = "reroll-control"
	MsgPing          MessageType = "ping"
)

// Server → Client message types.
const (
	MsgConnected   MessageType = "connected"
	MsgGameUpdated MessageType = "game-updated"
	MsgError       MessageType = "error"
	MsgPong        MessageType = "pong"
)

// ClientMessage represents a message from client to server.
type ClientMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ServerMessage represents a message from server to client.
type ServerMessage struct {
	Type      MessageType `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// NewServerMessage creates a new server message with current timestamp.
func NewServerMessage(msgType MessageType, payload interface{}) *ServerMessage {
	return &ServerMessage{
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// Client message payloads

// EndTurnPayload is the payload for end-turn. A missing correctCount means
// "use the turn's own tally".
type EndTurnPayload struct {
	CorrectCount *int `json:"correctCount,omitempty"`
}

// SpinnerChoicePayload is the payload for spinner-choice.
type SpinnerChoicePayload struct {
	Choice            string `json:"choice"` // "forward" or "backward"
	SelectedTeamIndex int    `json:"selectedTeamIndex"`
}

// HandleSpadePayload is the payload for handle-spade. A missing
// winningTeamIndex means nobody won the free-for-all.
type HandleSpadePayload struct {
	WinningTeamIndex *int `json:"winningTeamIndex,omitempty"`
}

// ControlGuessPayload is the payload for control-guess.
type ControlGuessPayload struct {
	TeamIndex *int `json:"teamIndex"`
}

// Server message payloads

// ConnectedPayload is the payload for the connected message.
type ConnectedPayload struct {
	PlayerID  string           `json:"playerId"`
	GameID    string           `json:"gameId"`
	GameState *domain.Snapshot `json:"gameState"`
}

// GameUpdatedPayload carries a full game snapshot; every broadcast is
// complete, never a delta.
type GameUpdatedPayload struct {
	GameState *domain.Snapshot `json:"gameState"`
}

// ControlResultPayload reports whether a control-turn guess won the game.
type ControlResultPayload struct {
	Won bool `json:"won"`
}

// ErrorPayload is the payload for error messages.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes
const (
	ErrCodeInvalidMessage = "INVALID_MESSAGE"
	ErrCodeGameNotFound   = "GAME_NOT_FOUND"
	ErrCodeInternalError  = "INTERNAL_ERROR"
)
