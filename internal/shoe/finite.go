package shoe

import (
	rand "math/rand/v2"

	"github.com/lox/hit/internal/deck"
)

const deckSize = 52

// Finite is a single shuffled 52-card deck consumed without replacement
type Finite struct {
	cards [deckSize]deck.Card
	next  int
	rng   *rand.Rand
}

// NewFinite creates a freshly shuffled 52-card shoe using rng
func NewFinite(rng *rand.Rand) *Finite {
	s := &Finite{rng: rng}
	s.Reset()
	return s
}

// Reset restores all 52 cards and reshuffles them
func (s *Finite) Reset() {
	copy(s.cards[:], deck.Full())
	s.shuffle()
}

// shuffle shuffles the deck using Fisher-Yates
func (s *Finite) shuffle() {
	s.next = 0
	for i := len(s.cards) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}

// Draw removes and returns the top card
func (s *Finite) Draw() (deck.Card, error) {
	if s.next >= len(s.cards) {
		return deck.Card{}, ErrShoeExhausted
	}
	card := s.cards[s.next]
	s.next++
	return card, nil
}

// Remaining returns the number of cards left in the shoe
func (s *Finite) Remaining() int {
	return len(s.cards) - s.next
}
