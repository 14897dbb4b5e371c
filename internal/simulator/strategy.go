package simulator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/hit/internal/advisor"
	"github.com/lox/hit/internal/game"
)

// Strategy decides the player's action in a live round
type Strategy interface {
	Decide(player, dealer game.Hand, rule game.BonusRule) advisor.Action
	Name() string
}

// Threshold hits until the player's total reaches a fixed value, the way
// the dealer plays at 17
type Threshold struct {
	StandOn int
}

func (t Threshold) Decide(player, _ game.Hand, _ game.BonusRule) advisor.Action {
	if player.Total().Value >= t.StandOn {
		return advisor.Stand
	}
	return advisor.Hit
}

func (t Threshold) Name() string {
	return fmt.Sprintf("stand:%d", t.StandOn)
}

// Optimal follows the advisor's expected-value recommendation
type Optimal struct{}

func (Optimal) Decide(player, dealer game.Hand, rule game.BonusRule) advisor.Action {
	return advisor.Recommend(player, dealer, rule).Action
}

func (Optimal) Name() string {
	return "advisor"
}

// ParseStrategy parses "advisor" or "stand:N" (N between 12 and 21)
func ParseStrategy(s string) (Strategy, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "advisor" {
		return Optimal{}, nil
	}

	value, ok := strings.CutPrefix(s, "stand:")
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q (want \"advisor\" or \"stand:N\")", s)
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid stand threshold %q: %w", value, err)
	}
	if n < 12 || n > game.BlackjackValue {
		return nil, fmt.Errorf("stand threshold %d out of range [12, %d]", n, game.BlackjackValue)
	}
	return Threshold{StandOn: n}, nil
}
