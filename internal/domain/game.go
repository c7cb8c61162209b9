package domain

import (
	"math/rand"
	"time"
)

// Settings holds configurable game parameters.
type Settings struct {
	TurnDuration time.Duration `json:"turnDuration"`
}

// DefaultSettings returns the default game settings.
func DefaultSettings() Settings {
	return Settings{
		TurnDuration: 30 * time.Second,
	}
}

// subEventKind tags the mutually exclusive pending sub-event slot.
type subEventKind int

const (
	subEventNone subEventKind = iota
	subEventSpinner
	subEventSpade
)

// subEvent is the single pending sub-event of a game. At most one of the
// payloads is set, matching the kind.
type subEvent struct {
	kind          subEventKind
	spinner       *PendingSpinner
	spinnerResult *SpinnerOutcome
	spadeCard     *Card
}

// Game is the authoritative state machine for one board race. It is not safe
// for concurrent use; callers serialize access per game (see app.GameSession).
//
// Every mutating operation is a silent no-op when its preconditions do not
// hold, so duplicate or late external messages cannot corrupt state.
type Game struct {
	ID        string
	CreatedAt time.Time

	track    *Track
	teams    []*Team
	bank     WordBank
	settings Settings

	phase            Phase
	currentTeamIndex int
	turn             *Turn
	currentCard      *Card
	controlCard      *Card
	sub              subEvent
	finalChallenge   *FinalChallenge
	bonusReturn      *int // team to resume with after a spade bonus turn
	winner           *Team

	rng *rand.Rand
	now func() time.Time
}

// Option customizes a Game at construction.
type Option func(*Game)

// WithRand overrides the game's random source. Used to make card draws and
// spinner outcomes deterministic in tests.
func WithRand(r *rand.Rand) Option {
	return func(g *Game) { g.rng = r }
}

// WithNow overrides the game's clock.
func WithNow(now func() time.Time) Option {
	return func(g *Game) { g.now = now }
}

// NewGame creates a game in the lobby phase with one team per name, in order.
func NewGame(id string, teamNames []string, bank WordBank, settings Settings, opts ...Option) (*Game, error) {
	if len(teamNames) < 2 {
		return nil, ErrNotEnoughTeams
	}
	if !bank.HasWords() {
		return nil, ErrEmptyWordBank
	}
	if settings.TurnDuration <= 0 {
		settings.TurnDuration = DefaultSettings().TurnDuration
	}

	teams := make([]*Team, len(teamNames))
	for i, name := range teamNames {
		teams[i] = NewTeam(i, name)
	}

	g := &Game{
		ID:        id,
		CreatedAt: time.Now(),
		track:     NewTrack(),
		teams:     teams,
		bank:      bank,
		settings:  settings,
		phase:     PhaseLobby,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// CurrentPhase returns the game's phase.
func (g *Game) CurrentPhase() Phase {
	return g.phase
}

// TeamCount returns the number of teams.
func (g *Game) TeamCount() int {
	return len(g.teams)
}

// IsStarted reports whether the game is running. It turns false permanently
// once a winner is recorded.
func (g *Game) IsStarted() bool {
	return g.phase != PhaseLobby && g.phase != PhaseWon
}

// Start begins the game: all teams move to the start space with the first
// cycle category, and the first team becomes current. Only valid from the
// lobby; a game already under way is left untouched.
func (g *Game) Start() {
	if g.phase != PhaseLobby {
		return
	}
	g.currentTeamIndex = 0
	for _, team := range g.teams {
		team.Position = 0
		team.CategoryCycleIndex = 0
	}
	g.phase = PhaseAwaitingTurn
}

// StartTurn opens a turn for the current team. If that team holds the final
// challenge this becomes its untimed control turn; otherwise a normal timed
// turn starts on the team's cycle category.
func (g *Game) StartTurn() {
	if g.phase != PhaseAwaitingTurn {
		return
	}
	if g.finalChallenge != nil && g.finalChallenge.TeamIndex == g.currentTeamIndex {
		g.startControlTurn()
		return
	}

	team := g.teams[g.currentTeamIndex]
	category := g.track.CategoryCycle[team.CategoryCycleIndex]
	g.currentCard = g.bank.Draw(category, g.rng)
	g.turn = &Turn{
		TeamIndex: g.currentTeamIndex,
		Category:  category,
		StartedAt: g.now(),
	}
	g.phase = PhaseTurn
}

// startControlTurn opens the untimed final-challenge turn.
func (g *Game) startControlTurn() {
	g.controlCard = g.bank.DrawControl(g.rng)
	g.turn = &Turn{
		TeamIndex: g.currentTeamIndex,
		Category:  CategoryControl,
		StartedAt: g.now(),
		IsControl: true,
	}
	g.phase = PhaseControlTurn
}

// CorrectGuess records a correct guess on the active timed turn and draws the
// next card. If the accumulated count would carry the team to the finish, the
// turn resolves immediately so the team cannot overshoot while still
// guessing.
func (g *Game) CorrectGuess() {
	if g.phase != PhaseTurn || g.turn == nil {
		return
	}
	g.turn.CorrectCount++

	team := g.teams[g.turn.TeamIndex]
	if team.Position+g.turn.CorrectCount >= g.track.TotalSpaces {
		g.resolveTurn(g.turn.CorrectCount)
		return
	}
	g.currentCard = g.bank.Draw(g.turn.Category, g.rng)
}

// PassWord skips the current word and draws a replacement. Passing never
// moves the team.
func (g *Game) PassWord() {
	if g.phase != PhaseTurn || g.turn == nil {
		return
	}
	g.turn.PassedCount++
	g.currentCard = g.bank.Draw(g.turn.Category, g.rng)
}

// EndTurn resolves the active timed turn, moving the team by the given number
// of correct guesses. A negative count means "use the turn's own tally",
// which is how callers encode an omitted count. Control turns resolve through
// the control operations instead.
func (g *Game) EndTurn(correctCount int) {
	if g.phase != PhaseTurn || g.turn == nil {
		return
	}
	if correctCount < 0 {
		correctCount = g.turn.CorrectCount
	}
	g.resolveTurn(correctCount)
}

// resolveTurn applies the end-turn transition with the given move count.
func (g *Game) resolveTurn(moves int) {
	team := g.teams[g.currentTeamIndex]
	cycleLen := len(g.track.CategoryCycle)
	team.CategoryCycleIndex = (team.CategoryCycleIndex + moves) % cycleLen

	newPosition := team.Position + moves
	switch {
	case newPosition >= g.track.TotalSpaces && moves > 0:
		// Reached the finish with at least one word: the team is pinned
		// awaiting its control turn and rotation does not advance.
		team.Position = g.track.TotalSpaces
		g.finalChallenge = &FinalChallenge{TeamIndex: g.currentTeamIndex}
		g.phase = PhaseAwaitingTurn

	case newPosition >= g.track.TotalSpaces:
		// At the finish with no words: no challenge earned, play moves on.
		team.Position = g.track.TotalSpaces
		g.advanceRotation()
		g.phase = PhaseAwaitingTurn

	default:
		team.Position = newPosition
		if category, ok := g.track.CategoryAt(newPosition); ok && TriggersSpinner(category) {
			// Rotation is deferred until the spinner resolves.
			g.sub = subEvent{
				kind: subEventSpinner,
				spinner: &PendingSpinner{
					TeamIndex:       g.currentTeamIndex,
					LandingPosition: newPosition,
				},
			}
			g.phase = PhaseSpinnerSpin
		} else {
			g.advanceRotation()
			g.phase = PhaseAwaitingTurn
		}
	}

	g.turn = nil
	g.currentCard = nil
}

// advanceRotation moves play to the next team: back to the deferred team if a
// spade bonus turn is concluding, otherwise one slot around the table.
func (g *Game) advanceRotation() {
	if g.bonusReturn != nil {
		g.currentTeamIndex = *g.bonusReturn
		g.bonusReturn = nil
		return
	}
	g.currentTeamIndex = (g.currentTeamIndex + 1) % len(g.teams)
}

// SpinSpinner samples the pending spinner's outcome and records it without
// moving any team. The outcome is applied by ResolveSpinner.
func (g *Game) SpinSpinner() {
	if g.phase != PhaseSpinnerSpin || g.sub.kind != subEventSpinner {
		return
	}
	outcome := sampleSpinnerOutcome(g.rng)
	g.sub.spinnerResult = &outcome
	g.phase = PhaseSpinnerChoice
}

// ResolveSpinner applies the recorded spin. With a bonus outcome, choice is
// "forward" to move the selected team toward the finish or "backward" to push
// it toward the start; a no-bonus outcome just closes the sub-event. Invalid
// choices or team indexes are ignored so the caller can retry.
func (g *Game) ResolveSpinner(choice string, teamIndex int) {
	if g.phase != PhaseSpinnerChoice || g.sub.kind != subEventSpinner || g.sub.spinnerResult == nil {
		return
	}

	result := g.sub.spinnerResult
	if result.Spaces == 0 {
		g.closeSpinner()
		return
	}

	if choice != SpinnerForward && choice != SpinnerBackward {
		return
	}
	if teamIndex < 0 || teamIndex >= len(g.teams) {
		return
	}

	target := g.teams[teamIndex]
	if choice == SpinnerForward {
		newPosition := target.Position + result.Spaces
		if newPosition >= g.track.TotalSpaces {
			// Spinner moves can carry a team to the finish; the challenge is
			// earned but rotation still advances, so the control turn waits
			// until play returns to the team.
			target.Position = g.track.TotalSpaces
			g.finalChallenge = &FinalChallenge{TeamIndex: teamIndex}
		} else {
			// No chain rule: landing on another spinner space does not spin
			// again. The cycle index tracks correct guesses, not bonus moves.
			target.Position = newPosition
		}
	} else {
		newPosition := target.Position - result.Spaces
		if newPosition < 0 {
			newPosition = 0
		}
		target.Position = newPosition
		// Backward moves resync the team's cycle to its new board position.
		target.CategoryCycleIndex = newPosition % len(g.track.CategoryCycle)
	}

	g.closeSpinner()
}

// closeSpinner clears the spinner sub-event and releases the deferred
// rotation.
func (g *Game) closeSpinner() {
	g.sub = subEvent{}
	g.advanceRotation()
	g.phase = PhaseAwaitingTurn
}

// DrawSpadeCard opens the spade free-for-all by drawing a Wildcard card.
// Rotation is untouched; the card may be absent if the bank is exhausted.
func (g *Game) DrawSpadeCard() {
	if g.phase != PhaseAwaitingTurn || g.sub.kind != subEventNone {
		return
	}
	g.sub = subEvent{
		kind:      subEventSpade,
		spadeCard: g.bank.Draw(CategoryWildcard, g.rng),
	}
	g.phase = PhaseSpade
}

// ResolveSpade ends the spade free-for-all. The winning team, if any, gets a
// bonus turn with no board movement; play resumes with the originally
// scheduled team afterwards. A negative or out-of-range index means nobody
// won and rotation is untouched.
func (g *Game) ResolveSpade(winningTeamIndex int) {
	if g.phase != PhaseSpade || g.sub.kind != subEventSpade {
		return
	}
	if winningTeamIndex >= 0 && winningTeamIndex < len(g.teams) {
		scheduled := g.currentTeamIndex
		g.bonusReturn = &scheduled
		g.currentTeamIndex = winningTeamIndex
	}
	g.sub = subEvent{}
	g.phase = PhaseAwaitingTurn
}

// GuessControlWord records which team guessed the control word first. If it
// is the finishing team the game ends and true is returned; any other team
// fails the attempt, rotation advances one slot and the challenge is retained
// for a retry.
func (g *Game) GuessControlWord(teamIndex int) bool {
	if g.phase != PhaseControlTurn || g.turn == nil || g.finalChallenge == nil {
		return false
	}
	if teamIndex < 0 || teamIndex >= len(g.teams) {
		return false
	}

	if teamIndex == g.finalChallenge.TeamIndex {
		g.winner = g.teams[teamIndex]
		g.finalChallenge = nil
		g.controlCard = nil
		g.currentCard = nil
		g.turn = nil
		g.bonusReturn = nil
		g.phase = PhaseWon
		return true
	}

	g.failControlAttempt()
	return false
}

// PassControlWord ends a control turn nobody guessed. Same state change as an
// opponent guessing first.
func (g *Game) PassControlWord() {
	if g.phase != PhaseControlTurn || g.turn == nil {
		return
	}
	g.failControlAttempt()
}

// failControlAttempt closes a failed control turn: the challenge is retained
// and rotation advances. A spade winner attempting the challenge on its bonus
// turn hands play back to the originally scheduled team, like any other bonus
// turn concluding.
func (g *Game) failControlAttempt() {
	g.controlCard = nil
	g.turn = nil
	g.advanceRotation()
	g.phase = PhaseAwaitingTurn
}

// RerollControlCard replaces an unsuitable control word in place, without
// touching turn state or rotation.
func (g *Game) RerollControlCard() {
	if g.phase != PhaseControlTurn {
		return
	}
	g.controlCard = g.bank.DrawControl(g.rng)
}
