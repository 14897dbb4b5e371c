package game

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/hit/internal/shoe"
)

// Game is a single-player blackjack table. It is not safe for concurrent
// use; a Game belongs to one driver.
type Game struct {
	shoe   shoe.Shoe
	player Hand
	dealer Hand
	state  State
	round  int

	wagering bool
	bankroll int
	wager    int
	settled  bool

	rule        BonusRule
	reshuffleAt int
	logger      *log.Logger
}

// New creates a game dealing from s. The shoe is owned by the game from
// here on; nothing else may draw from it.
//
// Example usage:
//
//	// Original rules: bankroll 100, wager 5
//	g := New(shoe.NewInfinite(randutil.New(seed)))
//
//	// No money involved
//	g := New(s, WithoutWagering())
//
//	// A single deck, reshuffled when fewer than 15 cards remain
//	g := New(shoe.NewFinite(rng), WithBankroll(500, 10), WithReshuffleAt(15))
func New(s shoe.Shoe, opts ...Option) *Game {
	if s == nil {
		panic("shoe is required for game creation")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.bankroll < 0 || cfg.wager < 0 {
		panic("bankroll and wager must be non-negative")
	}

	return &Game{
		shoe:        s,
		wagering:    cfg.wagering,
		bankroll:    cfg.bankroll,
		wager:       cfg.wager,
		rule:        cfg.rule,
		reshuffleAt: cfg.reshuffleAt,
		logger:      cfg.logger.WithPrefix("game"),
	}
}

// NewDeal starts a round: takes the wager, clears both hands and deals
// player, player, dealer, dealer. A player 21 off the deal is played out
// immediately and the round ends Resolved.
func (g *Game) NewDeal() error {
	if g.state == Playing {
		return invalidTransition("deal", g.state)
	}
	if g.wagering && g.bankroll < g.wager {
		return fmt.Errorf("%w: bankroll %d, wager %d", ErrInsufficientFunds, g.bankroll, g.wager)
	}

	g.maybeReshuffle()
	if k, ok := g.shoe.(shoe.RoundKeyed); ok {
		k.BeginRound()
	}

	var player, dealer Hand
	for _, h := range []*Hand{&player, &player, &dealer, &dealer} {
		card, err := g.shoe.Draw()
		if err != nil {
			return fmt.Errorf("deal: %w", err)
		}
		h.Push(card)
	}

	state := Playing
	if player.Total().Value >= BlackjackValue {
		var err error
		if dealer, err = g.playDealer(dealer); err != nil {
			return fmt.Errorf("deal: %w", err)
		}
		state = Resolved
	}

	if g.wagering {
		g.bankroll -= g.wager
	}
	g.player, g.dealer = player, dealer
	g.state = state
	g.settled = false
	g.round++

	g.logger.Debug("Dealt",
		"round", g.round,
		"player", g.player.String(),
		"dealer", g.dealer.String(),
		"state", g.state,
		"bankroll", g.bankroll)
	return nil
}

// Hit deals one card to the player. Reaching 21 stands automatically; a
// bust ends the round without the dealer drawing.
func (g *Game) Hit() error {
	if g.state != Playing {
		return invalidTransition("hit", g.state)
	}

	card, err := g.shoe.Draw()
	if err != nil {
		return fmt.Errorf("hit: %w", err)
	}
	player := g.player.clone()
	player.Push(card)

	switch total := player.Total(); {
	case total.Value == BlackjackValue:
		dealer, err := g.playDealer(g.dealer)
		if err != nil {
			return fmt.Errorf("hit: %w", err)
		}
		g.player, g.dealer = player, dealer
		g.state = Resolved
	case total.IsBust():
		g.player = player
		g.state = Resolved
	default:
		g.player = player
	}

	g.logger.Debug("Hit", "round", g.round, "card", card.String(), "player", g.player.String(), "state", g.state)
	return nil
}

// Stand ends the player's turn. The dealer draws while at 16 or less.
func (g *Game) Stand() error {
	if g.state != Playing {
		return invalidTransition("stand", g.state)
	}

	dealer, err := g.playDealer(g.dealer)
	if err != nil {
		return fmt.Errorf("stand: %w", err)
	}
	g.dealer = dealer
	g.state = Resolved

	g.logger.Debug("Stand", "round", g.round, "dealer", g.dealer.String())
	return nil
}

// playDealer draws to a copy of the dealer's hand so a failed draw leaves
// the table untouched
func (g *Game) playDealer(dealer Hand) (Hand, error) {
	dealer = dealer.clone()
	for dealer.Total().Value < DealerStandsOn {
		card, err := g.shoe.Draw()
		if err != nil {
			return Hand{}, err
		}
		dealer.Push(card)
	}
	return dealer, nil
}

func (g *Game) maybeReshuffle() {
	if g.reshuffleAt <= 0 {
		return
	}
	d, ok := g.shoe.(shoe.Depletable)
	if !ok || d.Remaining() >= g.reshuffleAt {
		return
	}
	if r, ok := g.shoe.(shoe.Resetter); ok {
		g.logger.Debug("Reshuffling", "remaining", d.Remaining())
		r.Reset()
	}
}

// RoundResult classifies the current hands. It is only meaningful once the
// round is Resolved.
func (g *Game) RoundResult() Outcome {
	return Resolve(g.player.Total(), g.dealer.Total())
}

// Settle pays out the resolved round and returns the amount credited to
// the bankroll. Each round settles at most once.
func (g *Game) Settle() (int, error) {
	if !g.wagering {
		return 0, ErrWageringDisabled
	}
	if g.state != Resolved {
		return 0, invalidTransition("settle", g.state)
	}
	if g.settled {
		return 0, ErrAlreadySettled
	}

	outcome := g.RoundResult()
	credit := Payout(outcome, g.player, g.wager, g.rule)
	g.bankroll += credit
	g.settled = true

	g.logger.Debug("Settled", "round", g.round, "outcome", outcome.Name(), "credit", credit, "bankroll", g.bankroll)
	return credit, nil
}

// CanCoverWager reports whether the next NewDeal can take the wager
func (g *Game) CanCoverWager() bool {
	return !g.wagering || g.bankroll >= g.wager
}

// State returns the current round state
func (g *Game) State() State { return g.state }

// Player returns a copy of the player's hand
func (g *Game) Player() Hand { return g.player.clone() }

// Dealer returns a copy of the dealer's hand
func (g *Game) Dealer() Hand { return g.dealer.clone() }

// Round returns the number of rounds dealt so far
func (g *Game) Round() int { return g.round }

// Wagering reports whether the game tracks a bankroll
func (g *Game) Wagering() bool { return g.wagering }

// Bankroll returns the current bankroll
func (g *Game) Bankroll() int { return g.bankroll }

// Wager returns the fixed wager per round
func (g *Game) Wager() int { return g.wager }

// Settled reports whether the current round has been settled
func (g *Game) Settled() bool { return g.settled }

// BonusRule returns the rule deciding 3× payouts
func (g *Game) BonusRule() BonusRule { return g.rule }
