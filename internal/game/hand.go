package game

import (
	"fmt"
	"strings"

	"github.com/lox/hit/internal/deck"
)

// BlackjackValue is the best total a hand can have
const BlackjackValue = 21

// DealerStandsOn is the lowest total the dealer stands on, soft or hard
const DealerStandsOn = 17

// Total is the evaluated value of a hand
type Total struct {
	Value int  `json:"value"`
	Soft  bool `json:"soft"`
}

// String returns "soft N" or "total N"
func (t Total) String() string {
	if t.Soft {
		return fmt.Sprintf("soft %d", t.Value)
	}
	return fmt.Sprintf("total %d", t.Value)
}

// IsBust reports whether the total exceeds 21
func (t Total) IsBust() bool {
	return t.Value > BlackjackValue
}

// Hand is an ordered sequence of dealt cards
type Hand struct {
	cards []deck.Card
}

// NewHand creates a hand holding the given cards in order
func NewHand(cards ...deck.Card) Hand {
	return Hand{cards: append([]deck.Card(nil), cards...)}
}

// Push appends a card to the hand
func (h *Hand) Push(card deck.Card) {
	h.cards = append(h.cards, card)
}

// Cards returns a copy of the cards in deal order
func (h Hand) Cards() []deck.Card {
	return append([]deck.Card(nil), h.cards...)
}

// Len returns the number of cards in the hand
func (h Hand) Len() int {
	return len(h.cards)
}

// Total evaluates the hand. Aces count 1; if the hand holds an ace and the
// hard sum is at most 11, one ace is promoted to 11 and the total is soft.
func (h Hand) Total() Total {
	sum := 0
	hasAce := false
	for _, c := range h.cards {
		sum += c.Points()
		if c.IsAce() {
			hasAce = true
		}
	}
	return softTotal(sum, hasAce)
}

func softTotal(hard int, hasAce bool) Total {
	if hasAce && hard <= 11 {
		return Total{Value: hard + 10, Soft: true}
	}
	return Total{Value: hard}
}

// IsBust reports whether the hand's total exceeds 21
func (h Hand) IsBust() bool {
	return h.Total().IsBust()
}

// IsNatural reports whether the hand is a two-card 21
func (h Hand) IsNatural() bool {
	return len(h.cards) == 2 && h.Total().Value == BlackjackValue
}

// String renders each card followed by a space, then the total,
// e.g. "A♠ 5♦ (soft 16)"
func (h Hand) String() string {
	var sb strings.Builder
	for _, c := range h.cards {
		sb.WriteString(c.String())
		sb.WriteByte(' ')
	}
	fmt.Fprintf(&sb, "(%s)", h.Total())
	return sb.String()
}

func (h Hand) clone() Hand {
	return NewHand(h.cards...)
}
