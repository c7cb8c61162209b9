package domain

import "errors"

// Domain errors. In-game operations never fail; these cover construction and
// registry lookups, the only places allowed to surface errors.
var (
	ErrGameNotFound   = errors.New("game not found")
	ErrNotEnoughTeams = errors.New("at least two teams are required")
	ErrEmptyWordBank  = errors.New("word bank has no drawable words")
)
