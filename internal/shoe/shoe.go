// Package shoe provides the sources cards are dealt from.
//
// A Shoe is owned by exactly one game. Two families exist: unlimited
// shoes, where every draw is an independent sample and Draw never fails,
// and depletable shoes (the shuffled 52-card deck and the stacked shoe),
// which fail with ErrShoeExhausted once empty.
//
// Randomness is always injected. Pass randutil.New(seed) to reproduce a
// sequence of cards exactly.
package shoe

import (
	"errors"
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/hit/internal/deck"
)

// ErrShoeExhausted is returned when a depletable shoe has no cards left
var ErrShoeExhausted = errors.New("shoe exhausted")

// Shoe is a source of cards
type Shoe interface {
	Draw() (deck.Card, error)
}

// Depletable is implemented by shoes that hold a finite number of cards
type Depletable interface {
	Shoe
	Remaining() int
}

// Resetter is implemented by shoes that can be refilled in place
type Resetter interface {
	Reset()
}

// RoundKeyed is implemented by shoes whose cards depend on the round being
// dealt. The game calls BeginRound once per deal, before the first draw.
type RoundKeyed interface {
	BeginRound()
}

// Provable is implemented by shoes whose deals can be replayed from
// published seeds
type Provable interface {
	Commitment() string
	ClientSeed() string
	Nonce() uint64
}

// Kind selects a shoe variant from configuration
type Kind string

const (
	// KindInfinite draws every card independently
	KindInfinite Kind = "infinite"
	// KindFinite deals a single shuffled 52-card deck
	KindFinite Kind = "finite"
	// KindFair derives every card from published seeds; see NewFair
	KindFair Kind = "fair"
)

// ErrSeedsRequired is returned by New for kinds that cannot be built from
// an RNG alone
var ErrSeedsRequired = errors.New("shoe needs seeds")

// ParseKind validates a configured shoe kind
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindInfinite, KindFinite, KindFair:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown shoe kind %q (want %q, %q or %q)", s, KindInfinite, KindFinite, KindFair)
}

// New builds a shoe of the given kind around rng
func New(kind Kind, rng *rand.Rand) (Shoe, error) {
	switch kind {
	case KindInfinite:
		return NewInfinite(rng), nil
	case KindFinite:
		return NewFinite(rng), nil
	case KindFair:
		return nil, fmt.Errorf("%w: build a %s shoe with NewFair", ErrSeedsRequired, kind)
	}
	return nil, fmt.Errorf("unknown shoe kind %q", kind)
}
