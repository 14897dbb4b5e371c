// Package advisor computes the exact expected value of hitting and standing.
//
// Probabilities assume an unlimited shoe: each rank Ace through Nine is
// drawn with probability 1/13 and a ten-valued card with 4/13. Values are in
// units of the wager: a plain win is +1, a bonus win +2, a push 0 and a loss -1.
// The rules modelled are this table's: the dealer draws to 17 and stands on
// all 17s, a player reaching 21 stands automatically, and the bonus rule of
// the game decides which 21s pay extra.
package advisor

import (
	"fmt"

	"github.com/lox/hit/internal/game"
)

// Action is a recommended player decision
type Action int

const (
	// Stand keeps the current hand and lets the dealer play
	Stand Action = iota
	// Hit draws one more card
	Hit
)

// String returns "stand" or "hit"
func (a Action) String() string {
	if a == Hit {
		return "hit"
	}
	return "stand"
}

// MarshalText implements encoding.TextMarshaler
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (a *Action) UnmarshalText(text []byte) error {
	switch string(text) {
	case "hit":
		*a = Hit
	case "stand":
		*a = Stand
	default:
		return fmt.Errorf("unknown action %q", text)
	}
	return nil
}

// Advice holds the expected value of each action and the better of the two
type Advice struct {
	Stand  float64 `json:"stand"`
	Hit    float64 `json:"hit"`
	Action Action  `json:"action"`
}

// String formats the advice for display, e.g. "hit (hit -0.21, stand -0.54)"
func (a Advice) String() string {
	return fmt.Sprintf("%s (hit %+.2f, stand %+.2f)", a.Action, a.Hit, a.Stand)
}

// Recommend evaluates the player's options against the dealer's visible hand
func Recommend(player, dealer game.Hand, rule game.BonusRule) Advice {
	hard, ace := hardTotal(player)
	e := newEvaluator(dealer, rule)

	stand := e.standEV(player.Total().Value, rule.Applies(player))
	hit := e.hitEV(hard, ace)

	advice := Advice{Stand: stand, Hit: hit, Action: Stand}
	if hit > stand {
		advice.Action = Hit
	}
	return advice
}

// DealerDistribution returns the probability of each final dealer result
// starting from the given hand: index 0..4 for 17..21, index 5 for bust.
func DealerDistribution(dealer game.Hand) [6]float64 {
	hard, ace := hardTotal(dealer)
	return newDealerTable().from(hard, ace)
}

const bustIndex = 5

// rankWeights are the draw probabilities by base value 1..10
var rankWeights = [11]float64{
	1: 1.0 / 13, 2: 1.0 / 13, 3: 1.0 / 13, 4: 1.0 / 13, 5: 1.0 / 13,
	6: 1.0 / 13, 7: 1.0 / 13, 8: 1.0 / 13, 9: 1.0 / 13, 10: 4.0 / 13,
}

type handKey struct {
	hard int
	ace  bool
}

func hardTotal(h game.Hand) (int, bool) {
	hard, ace := 0, false
	for _, c := range h.Cards() {
		hard += c.Points()
		if c.IsAce() {
			ace = true
		}
	}
	return hard, ace
}

func total(hard int, ace bool) int {
	if ace && hard <= 11 {
		return hard + 10
	}
	return hard
}

type dealerTable struct {
	memo map[handKey][6]float64
}

func newDealerTable() *dealerTable {
	return &dealerTable{memo: make(map[handKey][6]float64)}
}

func (d *dealerTable) from(hard int, ace bool) [6]float64 {
	var dist [6]float64
	t := total(hard, ace)
	switch {
	case t > game.BlackjackValue:
		dist[bustIndex] = 1
		return dist
	case t >= game.DealerStandsOn:
		dist[t-game.DealerStandsOn] = 1
		return dist
	}

	key := handKey{hard, ace}
	if cached, ok := d.memo[key]; ok {
		return cached
	}
	for v := 1; v <= 10; v++ {
		next := d.from(hard+v, ace || v == 1)
		for i := range dist {
			dist[i] += rankWeights[v] * next[i]
		}
	}
	d.memo[key] = dist
	return dist
}

type evaluator struct {
	dealer [6]float64
	rule   game.BonusRule
	memo   map[handKey]float64
}

func newEvaluator(dealer game.Hand, rule game.BonusRule) *evaluator {
	return &evaluator{
		dealer: DealerDistribution(dealer),
		rule:   rule,
		memo:   make(map[handKey]float64),
	}
}

func (e *evaluator) standEV(player int, bonus bool) float64 {
	if player > game.BlackjackValue {
		return -1
	}
	win := 1.0
	if bonus {
		win = 2
	}

	ev := e.dealer[bustIndex] * win
	for i := 0; i < bustIndex; i++ {
		dealer := game.DealerStandsOn + i
		switch {
		case player > dealer:
			ev += e.dealer[i] * win
		case player < dealer:
			ev -= e.dealer[i]
		}
	}
	return ev
}

// hitEV is the value of taking one card and then playing optimally
func (e *evaluator) hitEV(hard int, ace bool) float64 {
	key := handKey{hard, ace}
	if cached, ok := e.memo[key]; ok {
		return cached
	}

	ev := 0.0
	for v := 1; v <= 10; v++ {
		h, a := hard+v, ace || v == 1
		t := total(h, a)
		var value float64
		switch {
		case t > game.BlackjackValue:
			value = -1
		case t == game.BlackjackValue:
			// A multi-card 21 only earns the bonus under BonusAny21.
			value = e.standEV(t, e.rule == game.BonusAny21)
		default:
			value = max(e.standEV(t, false), e.hitEV(h, a))
		}
		ev += rankWeights[v] * value
	}

	e.memo[key] = ev
	return ev
}
