package domain

// Snapshot is the fully denormalized, read-only view of a game. It is the
// only state exposed outside the package; every broadcast carries a complete
// snapshot, never a delta. The shape is flat and stable for direct JSON
// encoding.
type Snapshot struct {
	GameID             string          `json:"gameId"`
	Phase              Phase           `json:"phase"`
	Board              TrackState      `json:"board"`
	Teams              []TeamState     `json:"teams"`
	CategoryCycle      []string        `json:"categoryCycle"`
	CurrentTeamIndex   int             `json:"currentTeamIndex"`
	CurrentTurn        *TurnState      `json:"currentTurn,omitempty"`
	CurrentCard        *Card           `json:"currentCard,omitempty"`
	SpadeCard          *Card           `json:"spadeCard,omitempty"`
	ControlCard        *Card           `json:"controlCard,omitempty"`
	PendingSpinner     *PendingSpinner `json:"pendingSpinner,omitempty"`
	SpinnerResult      *SpinnerOutcome `json:"spinnerResult,omitempty"`
	FinalChallenge     *FinalChallenge `json:"finalChallenge,omitempty"`
	IsBonusTurn        bool            `json:"isBonusTurn"`
	NextTeamAfterBonus *int            `json:"nextTeamAfterBonus,omitempty"`
	IsStarted          bool            `json:"isStarted"`
	Winner             *TeamState      `json:"winner,omitempty"`
	TurnDuration       int64           `json:"turnDuration"`                // millis
	TurnTimeRemaining  *int64          `json:"turnTimeRemaining,omitempty"` // millis, timed turns only
}

// State produces the current snapshot. All contained values are copies; the
// caller cannot reach back into the game through them.
func (g *Game) State() *Snapshot {
	snap := &Snapshot{
		GameID:           g.ID,
		Phase:            g.phase,
		Board:            g.track.State(),
		Teams:            make([]TeamState, len(g.teams)),
		CategoryCycle:    append([]string(nil), g.track.CategoryCycle...),
		CurrentTeamIndex: g.currentTeamIndex,
		IsStarted:        g.IsStarted(),
		TurnDuration:     g.settings.TurnDuration.Milliseconds(),
	}

	for i, team := range g.teams {
		snap.Teams[i] = g.teamState(team)
	}

	if g.turn != nil {
		turn := g.turn.State()
		snap.CurrentTurn = &turn
	}
	if g.currentCard != nil {
		card := *g.currentCard
		snap.CurrentCard = &card
	}
	if g.controlCard != nil {
		card := *g.controlCard
		snap.ControlCard = &card
	}

	switch g.sub.kind {
	case subEventSpinner:
		spinner := *g.sub.spinner
		snap.PendingSpinner = &spinner
		if g.sub.spinnerResult != nil {
			result := *g.sub.spinnerResult
			snap.SpinnerResult = &result
		}
	case subEventSpade:
		if g.sub.spadeCard != nil {
			card := *g.sub.spadeCard
			snap.SpadeCard = &card
		}
	}

	if g.finalChallenge != nil {
		challenge := *g.finalChallenge
		snap.FinalChallenge = &challenge
	}
	if g.bonusReturn != nil {
		next := *g.bonusReturn
		snap.IsBonusTurn = true
		snap.NextTeamAfterBonus = &next
	}
	if g.winner != nil {
		winner := g.teamState(g.winner)
		snap.Winner = &winner
	}

	if g.phase == PhaseTurn && g.turn != nil {
		elapsed := g.now().Sub(g.turn.StartedAt)
		remaining := g.settings.TurnDuration.Milliseconds() - elapsed.Milliseconds()
		if remaining < 0 {
			remaining = 0
		}
		snap.TurnTimeRemaining = &remaining
	}

	return snap
}

// teamState copies a team into its snapshot view.
func (g *Game) teamState(team *Team) TeamState {
	return TeamState{
		Index:              team.Index,
		Name:               team.Name,
		Position:           team.Position,
		CategoryCycleIndex: team.CategoryCycleIndex,
		NextCategory:       g.track.CategoryCycle[team.CategoryCycleIndex],
	}
}
