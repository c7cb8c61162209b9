package domain

import "math/rand"

// Spinner direction choices.
const (
	SpinnerForward  = "forward"
	SpinnerBackward = "backward"
)

// Spinner outcome types.
const (
	SpinnerWideGreen   = "wide-green"
	SpinnerNarrowGreen = "narrow-green"
	SpinnerNoBonus     = "no-bonus"
)

// Spinner segment layout, matching the physical spinner: the wide green
// segment covers 3/8 of the circle, the narrow green 1/8, and the rest is no
// bonus.
const (
	spinnerWideGreenProb   = 0.375
	spinnerNarrowGreenProb = 0.125

	spinnerWideGreenSpaces   = 2
	spinnerNarrowGreenSpaces = 3
)

// SpinnerOutcome is the recorded result of one spin.
type SpinnerOutcome struct {
	Type   string `json:"type"`
	Spaces int    `json:"spaces"`
}

// PendingSpinner marks a deferred spinner resolution for the team that landed
// on a spinner space. Rotation is held until the spinner resolves.
type PendingSpinner struct {
	TeamIndex       int `json:"teamIndex"`
	LandingPosition int `json:"landingPosition"`
}

// sampleSpinnerOutcome spins the wheel.
func sampleSpinnerOutcome(r *rand.Rand) SpinnerOutcome {
	roll := r.Float64()
	switch {
	case roll < spinnerWideGreenProb:
		return SpinnerOutcome{Type: SpinnerWideGreen, Spaces: spinnerWideGreenSpaces}
	case roll < spinnerWideGreenProb+spinnerNarrowGreenProb:
		return SpinnerOutcome{Type: SpinnerNarrowGreen, Spaces: spinnerNarrowGreenSpaces}
	default:
		return SpinnerOutcome{Type: SpinnerNoBonus, Spaces: 0}
	}
}

// FinalChallenge pins the team that reached the finish line and is attempting
// the terminal control turn. It persists across failed attempts until that
// team wins.
type FinalChallenge struct {
	TeamIndex int `json:"teamIndex"`
}
