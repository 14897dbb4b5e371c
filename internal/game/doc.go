// Package game implements the blackjack game core.
//
// The main type is Game, which owns a shoe, the player's and dealer's
// hands, and optionally a bankroll. A round moves through three states:
//
//	Start → Playing → Resolved → (NewDeal) → Playing → ...
//
// # Basic Usage
//
//	g := game.New(shoe.NewFinite(randutil.New(42)))
//	if err := g.NewDeal(); err != nil {
//	    return err
//	}
//	for g.State() == game.Playing && g.Player().Total().Value < 17 {
//	    if err := g.Hit(); err != nil {
//	        return err
//	    }
//	}
//	if g.State() == game.Playing {
//	    _ = g.Stand()
//	}
//	outcome := g.RoundResult()
//	credited, _ := g.Settle()
//
// # Deterministic Testing
//
// Randomness lives in the shoe. Seed it with randutil.New, or script exact
// deals with shoe.NewStacked:
//
//	s := shoe.NewStacked(deck.MustParseCards("As Kd 7c 9h 5s")...)
//	g := game.New(s, game.WithoutWagering())
//
// # Failure Semantics
//
// Transitions are atomic. A transition that fails (shoe exhausted,
// insufficient funds, wrong state) returns an error and leaves the hands,
// state and bankroll exactly as they were. Cards already pulled from the
// shoe are not returned to it.
package game
