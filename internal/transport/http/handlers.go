package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/daltonlim/articulate/internal/domain"
)

// Response is a standard API response.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo contains error details.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CreateRoomRequest is the body for room creation.
type CreateRoomRequest struct {
	TeamNames           []string `json:"teamNames"`
	TurnDurationSeconds int      `json:"turnDurationSeconds,omitempty"`
}

// CreateRoomResponse is the response for room creation.
type CreateRoomResponse struct {
	RoomCode   string           `json:"roomCode"`
	InviteLink string           `json:"inviteLink"`
	GameState  *domain.Snapshot `json:"gameState"`
}

// GetRoomResponse is the response for getting room info.
type GetRoomResponse struct {
	RoomCode    string `json:"roomCode"`
	TeamCount   int    `json:"teamCount"`
	ClientCount int    `json:"clientCount"`
	Phase       string `json:"phase"`
}

// RoomExistsResponse is the response for checking if a room exists.
type RoomExistsResponse struct {
	Exists bool `json:"exists"`
}

// HealthResponse is the response for health check.
type HealthResponse struct {
	Status string `json:"status"`
}

// StatsResponse is the response for the stats endpoint.
type StatsResponse struct {
	ActiveGames  int `json:"activeGames"`
	TotalClients int `json:"totalClients"`
}

// handleCreateRoom handles POST /api/rooms.
func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	if len(req.TeamNames) == 0 {
		req.TeamNames = []string{"Team 1", "Team 2"}
	}

	settings := domain.Settings{
		TurnDuration: s.config.TurnDuration(),
	}
	if req.TurnDurationSeconds > 0 {
		settings.TurnDuration = time.Duration(req.TurnDurationSeconds) * time.Second
	}

	session, err := s.hub.CreateGame(req.TeamNames, settings)
	if err != nil {
		if err == domain.ErrNotEnoughTeams {
			s.sendError(w, http.StatusBadRequest, "NOT_ENOUGH_TEAMS", err.Error())
			return
		}
		s.sendError(w, http.StatusInternalServerError, "CREATION_FAILED", "Failed to create room")
		return
	}

	// Build invite link
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	inviteLink := scheme + "://" + r.Host + "/join/" + session.GetRoomCode()

	s.sendSuccess(w, &CreateRoomResponse{
		RoomCode:   session.GetRoomCode(),
		InviteLink: inviteLink,
		GameState:  session.Snapshot(),
	})
}

// handleGetRoom handles GET /api/rooms/{roomCode}.
func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	roomCode := r.PathValue("roomCode")
	if roomCode == "" {
		s.sendError(w, http.StatusBadRequest, "MISSING_ROOM_CODE", "Room code is required")
		return
	}

	session, err := s.hub.GetSession(strings.ToUpper(roomCode))
	if err != nil {
		if err == domain.ErrGameNotFound {
			s.sendError(w, http.StatusNotFound, "ROOM_NOT_FOUND", "Room not found")
		} else {
			s.sendError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		}
		return
	}

	s.sendSuccess(w, &GetRoomResponse{
		RoomCode:    session.GetRoomCode(),
		TeamCount:   session.GetTeamCount(),
		ClientCount: session.GetClientCount(),
		Phase:       session.GetPhase().String(),
	})
}

// handleRoomExists handles GET /api/rooms/{roomCode}/exists.
func (s *Server) handleRoomExists(w http.ResponseWriter, r *http.Request) {
	roomCode := r.PathValue("roomCode")
	if roomCode == "" {
		s.sendError(w, http.StatusBadRequest, "MISSING_ROOM_CODE", "Room code is required")
		return
	}

	_, err := s.hub.GetSession(strings.ToUpper(roomCode))

	s.sendSuccess(w, &RoomExistsResponse{
		Exists: err == nil,
	})
}

// handleWords handles GET /api/words.
func (s *Server) handleWords(w http.ResponseWriter, r *http.Request) {
	s.sendSuccess(w, s.hub.WordBank())
}

// handleHealth handles GET /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.sendSuccess(w, &HealthResponse{
		Status: "ok",
	})
}

// handleStats handles GET /api/stats.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.sendSuccess(w, &StatsResponse{
		ActiveGames:  s.hub.GetSessionCount(),
		TotalClients: s.hub.GetTotalClientCount(),
	})
}

// sendSuccess sends a successful JSON response.
func (s *Server) sendSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(&Response{
		Success: true,
		Data:    data,
	})
}

// sendError sends an error JSON response.
func (s *Server) sendError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(&Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	})
}
