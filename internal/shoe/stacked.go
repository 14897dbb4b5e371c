package shoe

import "github.com/lox/hit/internal/deck"

// Stacked deals a predetermined sequence of cards, first card first.
// It is used to script exact scenarios.
type Stacked struct {
	cards []deck.Card
	next  int
}

// NewStacked creates a shoe that deals cards in the given order
func NewStacked(cards ...deck.Card) *Stacked {
	return &Stacked{cards: append([]deck.Card(nil), cards...)}
}

// Draw returns the next scripted card
func (s *Stacked) Draw() (deck.Card, error) {
	if s.next >= len(s.cards) {
		return deck.Card{}, ErrShoeExhausted
	}
	card := s.cards[s.next]
	s.next++
	return card, nil
}

// Remaining returns the number of scripted cards not yet dealt
func (s *Stacked) Remaining() int {
	return len(s.cards) - s.next
}
