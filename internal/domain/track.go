package domain

// Category labels used on the board and in the word bank.
const (
	CategoryObject   = "Object"
	CategoryAction   = "Action"
	CategoryWildcard = "Wildcard"
	CategoryWorld    = "World"
	CategoryPerson   = "Person"
	CategoryRandom   = "Random"
	CategoryNature   = "Nature"

	// CategoryControl labels the word drawn for a control turn. It is not
	// part of the board cycle; the word itself comes from a random category.
	CategoryControl = "Control"
)

// DefaultTotalSpaces is the number of spaces on the board, finish excluded.
const DefaultTotalSpaces = 60

// DefaultCategoryCycle is the repeating category order assigned to
// consecutive board spaces and to each team's upcoming-turn category.
var DefaultCategoryCycle = []string{
	CategoryObject,
	CategoryAction,
	CategoryWildcard,
	CategoryWorld,
	CategoryPerson,
	CategoryRandom,
	CategoryNature,
}

// DefaultCategoryColors maps categories to their display colors. Carried in
// snapshots for the UI; never consulted by game logic.
var DefaultCategoryColors = map[string]string{
	CategoryObject:   "#64B5F6",
	CategoryAction:   "#FF9800",
	CategoryWildcard: "#FFFFFF",
	CategoryWorld:    "#1976D2",
	CategoryPerson:   "#FFEB3B",
	CategoryRandom:   "#F44336",
	CategoryNature:   "#4CAF50",
}

// Track is the immutable board geometry.
type Track struct {
	TotalSpaces    int
	CategoryCycle  []string
	CategoryColors map[string]string
	FinishSpace    int
}

// NewTrack builds the standard board.
func NewTrack() *Track {
	return &Track{
		TotalSpaces:    DefaultTotalSpaces,
		CategoryCycle:  DefaultCategoryCycle,
		CategoryColors: DefaultCategoryColors,
		FinishSpace:    DefaultTotalSpaces,
	}
}

// CategoryAt returns the category of the given board position. The finish
// space (and anything past it) has no category.
func (t *Track) CategoryAt(position int) (string, bool) {
	if position < 0 || position >= t.TotalSpaces {
		return "", false
	}
	return t.CategoryCycle[position%len(t.CategoryCycle)], true
}

// TriggersSpinner reports whether landing on a space of the given category
// opens the spinner sub-event.
func TriggersSpinner(category string) bool {
	return category == CategoryAction || category == CategoryRandom
}

// TrackState is the snapshot view of the board.
type TrackState struct {
	TotalSpaces    int               `json:"totalSpaces"`
	Categories     []string          `json:"categories"`
	CategoryColors map[string]string `json:"categoryColors"`
	FinishSpace    int               `json:"finishSpace"`
}

// State returns the snapshot view of the track.
func (t *Track) State() TrackState {
	categories := make([]string, len(t.CategoryCycle))
	copy(categories, t.CategoryCycle)

	colors := make(map[string]string, len(t.CategoryColors))
	for k, v := range t.CategoryColors {
		colors[k] = v
	}

	return TrackState{
		TotalSpaces:    t.TotalSpaces,
		Categories:     categories,
		CategoryColors: colors,
		FinishSpace:    t.FinishSpace,
	}
}
