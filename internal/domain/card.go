package domain

import (
	"math/rand"
	"sort"
)

// Card is a freshly drawn word. Draws sample with replacement, so the same
// word may come up again later.
type Card struct {
	Category string `json:"category"`
	Word     string `json:"word"`
}

// WordBank maps a category label to its pool of describable words.
type WordBank map[string][]string

// Draw picks a uniformly random word for the given category. Wildcard draws
// resolve to a random non-Wildcard category first. Returns nil if the
// resolved pool is empty; callers treat that as "no card available".
func (b WordBank) Draw(category string, r *rand.Rand) *Card {
	pool := b[category]
	if category == CategoryWildcard {
		resolved := b.randomCategory(r)
		if resolved == "" {
			return nil
		}
		pool = b[resolved]
	}
	if len(pool) == 0 {
		return nil
	}
	return &Card{Category: category, Word: pool[r.Intn(len(pool))]}
}

// DrawControl draws a word from a random category and labels it as the
// control-turn card.
func (b WordBank) DrawControl(r *rand.Rand) *Card {
	resolved := b.randomCategory(r)
	if resolved == "" {
		return nil
	}
	pool := b[resolved]
	return &Card{Category: CategoryControl, Word: pool[r.Intn(len(pool))]}
}

// randomCategory picks a uniformly random non-Wildcard category with a
// non-empty pool. Keys are sorted so seeded draws are reproducible.
func (b WordBank) randomCategory(r *rand.Rand) string {
	candidates := make([]string, 0, len(b))
	for category, pool := range b {
		if category == CategoryWildcard || len(pool) == 0 {
			continue
		}
		candidates = append(candidates, category)
	}
	if len(candidates) == 0 {
		return ""
	}
	sort.Strings(candidates)
	return candidates[r.Intn(len(candidates))]
}

// HasWords reports whether any non-Wildcard category has a non-empty pool,
// i.e. whether the bank can produce cards at all.
func (b WordBank) HasWords() bool {
	for category, pool := range b {
		if category != CategoryWildcard && len(pool) > 0 {
			return true
		}
	}
	return false
}
