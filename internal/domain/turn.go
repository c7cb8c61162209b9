package domain

import "time"

// Turn is the transient record of an in-progress description attempt. At most
// one Turn exists per game at any time; it is discarded when the turn
// resolves.
type Turn struct {
	TeamIndex    int
	Category     string
	CorrectCount int
	PassedCount  int
	StartedAt    time.Time
	IsControl    bool
}

// TurnState is the snapshot view of the active turn.
type TurnState struct {
	TeamIndex     int    `json:"teamIndex"`
	Category      string `json:"category"`
	CorrectCount  int    `json:"correctCount"`
	PassedCount   int    `json:"passedCount"`
	StartTime     int64  `json:"startTime"` // epoch millis
	IsControlTurn bool   `json:"isControlTurn"`
}

// State returns the snapshot view of the turn.
func (t *Turn) State() TurnState {
	return TurnState{
		TeamIndex:     t.TeamIndex,
		Category:      t.Category,
		CorrectCount:  t.CorrectCount,
		PassedCount:   t.PassedCount,
		StartTime:     t.StartedAt.UnixMilli(),
		IsControlTurn: t.IsControl,
	}
}
