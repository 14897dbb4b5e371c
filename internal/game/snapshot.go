package game

import "github.com/lox/hit/internal/shoe"

// HandView is a read-only rendering of a hand
type HandView struct {
	Cards   []string `json:"cards"`
	Total   Total    `json:"total"`
	Display string   `json:"display"`
}

// Snapshot is what drivers render after every command
type Snapshot struct {
	Round    int       `json:"round"`
	State    State     `json:"state"`
	Player   HandView  `json:"player"`
	Dealer   HandView  `json:"dealer"`
	Outcome  *Outcome  `json:"outcome,omitempty"`
	Message  string    `json:"message,omitempty"`
	Wagering bool      `json:"wagering"`
	Bankroll int       `json:"bankroll"`
	Wager    int       `json:"wager"`
	Settled  bool      `json:"settled"`
	Fair     *Fairness `json:"fair,omitempty"`
}

// Fairness carries what a player needs to verify a provably fair round
// once the server seed is revealed
type Fairness struct {
	ServerSeedHash string `json:"server_seed_hash"`
	ClientSeed     string `json:"client_seed"`
	Nonce          uint64 `json:"nonce"`
}

// Snapshot captures the current table
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Round:    g.round,
		State:    g.state,
		Player:   viewOf(g.player),
		Dealer:   viewOf(g.dealer),
		Wagering: g.wagering,
		Bankroll: g.bankroll,
		Wager:    g.wager,
		Settled:  g.settled,
	}
	if p, ok := g.shoe.(shoe.Provable); ok {
		s.Fair = &Fairness{
			ServerSeedHash: p.Commitment(),
			ClientSeed:     p.ClientSeed(),
			Nonce:          p.Nonce(),
		}
	}
	if g.state == Resolved {
		outcome := g.RoundResult()
		s.Outcome = &outcome
		s.Message = outcome.String()
	}
	return s
}

func viewOf(h Hand) HandView {
	cards := make([]string, 0, h.Len())
	for _, c := range h.cards {
		cards = append(cards, c.String())
	}
	return HandView{
		Cards:   cards,
		Total:   h.Total(),
		Display: h.String(),
	}
}
