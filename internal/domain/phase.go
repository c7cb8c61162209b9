package domain

// Phase represents the current phase of a game.
type Phase string

const (
	PhaseLobby         Phase = "LOBBY"            // Teams assembled, game not started
	PhaseAwaitingTurn  Phase = "AWAITING_TURN"    // Between turns, waiting for the next start
	PhaseTurn          Phase = "TURN_IN_PROGRESS" // A timed description turn is running
	PhaseSpinnerSpin   Phase = "SPINNER_SPIN"     // Landed on a spinner space, waiting for the spin
	PhaseSpinnerChoice Phase = "SPINNER_CHOICE"   // Spin recorded, waiting for direction and target
	PhaseSpade         Phase = "SPADE"            // Spade card drawn, free-for-all in progress
	PhaseControlTurn   Phase = "CONTROL_TURN"     // Untimed final-challenge turn is running
	PhaseWon           Phase = "WON"              // Terminal
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	return string(p)
}

// CanTransitionTo checks if a transition from the current phase to the target
// phase is valid.
func (p Phase) CanTransitionTo(target Phase) bool {
	validTransitions := map[Phase][]Phase{
		PhaseLobby:         {PhaseAwaitingTurn},
		PhaseAwaitingTurn:  {PhaseTurn, PhaseControlTurn, PhaseSpade},
		PhaseTurn:          {PhaseAwaitingTurn, PhaseSpinnerSpin},
		PhaseSpinnerSpin:   {PhaseSpinnerChoice},
		PhaseSpinnerChoice: {PhaseAwaitingTurn},
		PhaseSpade:         {PhaseAwaitingTurn},
		PhaseControlTurn:   {PhaseAwaitingTurn, PhaseWon},
		PhaseWon:           {},
	}

	allowed, ok := validTransitions[p]
	if !ok {
		return false
	}

	for _, phase := range allowed {
		if phase == target {
			return true
		}
	}
	return false
}
