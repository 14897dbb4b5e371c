package shoe

import (
	rand "math/rand/v2"

	"github.com/lox/hit/internal/deck"
)

// Infinite draws each card independently and uniformly. It never runs out.
type Infinite struct {
	rng *rand.Rand
}

// NewInfinite creates an unlimited shoe drawing from rng
func NewInfinite(rng *rand.Rand) *Infinite {
	return &Infinite{rng: rng}
}

// Draw returns a uniformly random card; the error is always nil
func (s *Infinite) Draw() (deck.Card, error) {
	rank := deck.Ranks[s.rng.IntN(len(deck.Ranks))]
	suit := deck.Suits[s.rng.IntN(len(deck.Suits))]
	return deck.NewCard(suit, rank), nil
}
