package game

import (
	"testing"

	"github.com/lox/hit/internal/deck"
	"github.com/lox/hit/internal/shoe"
)

// newStackedGame creates a game whose shoe deals exactly the listed cards.
// Deal order is player, player, dealer, dealer, then hits and dealer draws.
func newStackedGame(t *testing.T, cards string, opts ...Option) *Game {
	t.Helper()
	return New(shoe.NewStacked(deck.MustParseCards(cards)...), opts...)
}

func hand(cards string) Hand {
	return NewHand(deck.MustParseCards(cards)...)
}
