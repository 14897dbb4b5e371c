package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/hit/internal/randutil"
	"github.com/lox/hit/internal/shoe"
)

func TestTotalValuesAcesAs11UnlessTotalWouldExceed21(t *testing.T) {
	h := hand("As 5s")
	assert.Equal(t, Total{Value: 16, Soft: true}, h.Total())

	h.Push(hand("Ts").Cards()[0])
	assert.Equal(t, Total{Value: 16, Soft: false}, h.Total())
}

func TestHandTotal(t *testing.T) {
	tests := []struct {
		name  string
		cards string
		want  Total
	}{
		{"empty", "", Total{Value: 0}},
		{"hard", "9c 7d", Total{Value: 16}},
		{"face cards", "Kc Qd", Total{Value: 20}},
		{"pair of aces", "Ac Ad", Total{Value: 12, Soft: true}},
		{"only one ace promoted", "Ac Ad 9h", Total{Value: 21, Soft: true}},
		{"soft becomes hard", "Ac 6d 8h", Total{Value: 15}},
		{"natural", "Ah Jd", Total{Value: 21, Soft: true}},
		{"bust", "Kc Qd 2h", Total{Value: 22}},
		{"four aces", "Ac Ad Ah As", Total{Value: 14, Soft: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hand(tt.cards).Total())
		})
	}
}

func TestIsNatural(t *testing.T) {
	assert.True(t, hand("As Kd").IsNatural())
	assert.True(t, hand("Th Ac").IsNatural())
	assert.False(t, hand("As 5d 5c").IsNatural(), "three-card 21 is not a natural")
	assert.False(t, hand("As 9d").IsNatural())
}

func TestIsBustMatchesTotal(t *testing.T) {
	s := shoe.NewInfinite(randutil.New(11))
	for range 2000 {
		var h Hand
		for h.Total().Value <= 26 {
			card, _ := s.Draw()
			h.Push(card)
			assert.Equal(t, h.Total().Value > 21, h.IsBust(), h.String())
		}
		assert.True(t, h.IsBust())
	}
}

func TestHandString(t *testing.T) {
	assert.Equal(t, "A♠ 5♦ (soft 16)", hand("As 5d").String())
	assert.Equal(t, "10♦ 6♣ (total 16)", hand("Td 6c").String())
	assert.Equal(t, "(total 0)", Hand{}.String())
}

func TestCardsReturnsCopy(t *testing.T) {
	h := hand("As 5d")
	cards := h.Cards()
	cards[0] = cards[1]
	assert.Equal(t, "A♠ 5♦ (soft 16)", h.String())
}
