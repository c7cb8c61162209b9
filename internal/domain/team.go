package domain

// Team is a per-participant-group record. Teams are owned exclusively by the
// Game that created them and are mutated only through its operations.
type Team struct {
	Index              int    `json:"index"`
	Name               string `json:"name"`
	Position           int    `json:"position"`
	CategoryCycleIndex int    `json:"categoryCycleIndex"`
}

// NewTeam creates a team at the start position.
func NewTeam(index int, name string) *Team {
	return &Team{
		Index: index,
		Name:  name,
	}
}

// TeamState is the snapshot view of a team, with the category the team will
// face on its next turn resolved from its cycle index.
type TeamState struct {
	Index              int    `json:"index"`
	Name               string `json:"name"`
	Position           int    `json:"position"`
	CategoryCycleIndex int    `json:"categoryCycleIndex"`
	NextCategory       string `json:"nextCategory"`
}
