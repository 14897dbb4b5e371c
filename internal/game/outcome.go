package game

import "fmt"

// Outcome is the result of a finished round
type Outcome int

const (
	// PlayerBust means the player went over 21 and lost the wager
	PlayerBust Outcome = iota
	// DealerBust means the dealer went over 21 and the player won
	DealerBust
	// PlayerWin means the player finished closer to 21
	PlayerWin
	// DealerWin means the dealer finished closer to 21
	DealerWin
	// Push means both totals tied and the wager is returned
	Push
)

var outcomeNames = [...]string{
	PlayerBust: "player_bust",
	DealerBust: "dealer_bust",
	PlayerWin:  "player_win",
	DealerWin:  "dealer_win",
	Push:       "push",
}

// String returns the message shown to the player
func (o Outcome) String() string {
	switch o {
	case PlayerBust:
		return "Bust!"
	case DealerBust:
		return "Dealer bust, you win!"
	case PlayerWin:
		return "You win!"
	case DealerWin:
		return "Dealer wins!"
	case Push:
		return "It's a tie!"
	default:
		return "Unknown"
	}
}

// Name returns a stable identifier used in reports and on the wire
func (o Outcome) Name() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return "unknown"
	}
	return outcomeNames[o]
}

// MarshalText implements encoding.TextMarshaler
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.Name()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (o *Outcome) UnmarshalText(text []byte) error {
	for i, name := range outcomeNames {
		if name == string(text) {
			*o = Outcome(i)
			return nil
		}
	}
	return fmt.Errorf("unknown outcome %q", text)
}

// PlayerWon reports whether the outcome pays the player
func (o Outcome) PlayerWon() bool {
	return o == PlayerWin || o == DealerBust
}

// Outcomes lists every outcome
var Outcomes = [...]Outcome{PlayerBust, DealerBust, PlayerWin, DealerWin, Push}

// Resolve classifies a finished round. The first matching rule wins, so a
// busted player loses even when the dealer also busted.
func Resolve(player, dealer Total) Outcome {
	switch {
	case player.Value > BlackjackValue:
		return PlayerBust
	case dealer.Value > BlackjackValue:
		return DealerBust
	case player.Value > dealer.Value:
		return PlayerWin
	case dealer.Value > player.Value:
		return DealerWin
	default:
		return Push
	}
}

// BonusRule decides which winning hands are paid 3× instead of 2×
type BonusRule int

const (
	// BonusAny21 pays the bonus on any winning hand totalling exactly 21,
	// including multi-card 21s.
	BonusAny21 BonusRule = iota
	// BonusNatural pays the bonus only on a two-card 21.
	BonusNatural
)

// String returns the configuration name of the rule
func (r BonusRule) String() string {
	switch r {
	case BonusAny21:
		return "any21"
	case BonusNatural:
		return "natural"
	default:
		return "unknown"
	}
}

// ParseBonusRule parses "any21" or "natural"
func ParseBonusRule(s string) (BonusRule, error) {
	switch s {
	case "any21", "":
		return BonusAny21, nil
	case "natural":
		return BonusNatural, nil
	}
	return 0, fmt.Errorf("unknown bonus rule %q (want \"any21\" or \"natural\")", s)
}

// Applies reports whether the bonus is earned by the player's final hand
func (r BonusRule) Applies(player Hand) bool {
	if r == BonusNatural {
		return player.IsNatural()
	}
	return player.Total().Value == BlackjackValue
}

// Payout returns what is credited back to the bankroll for a settled
// round. The wager itself was taken at deal time, so a push returns 1×,
// a win 2× (3× with the bonus) and a loss nothing.
func Payout(o Outcome, player Hand, wager int, rule BonusRule) int {
	switch {
	case o == Push:
		return wager
	case o.PlayerWon() && rule.Applies(player):
		return 3 * wager
	case o.PlayerWon():
		return 2 * wager
	default:
		return 0
	}
}
