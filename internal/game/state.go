package game

import (
	"errors"
	"fmt"
)

// State is the phase of the current round
type State int

const (
	// Start is the state of a game that has never dealt
	Start State = iota
	// Playing means the player is deciding
	Playing
	// Resolved means the round is over and can be settled
	Resolved
)

// String returns the lower-case state name
func (s State) String() string {
	switch s {
	case Start:
		return "start"
	case Playing:
		return "playing"
	case Resolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *State) UnmarshalText(text []byte) error {
	for _, candidate := range []State{Start, Playing, Resolved} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown state %q", text)
}

var (
	// ErrInsufficientFunds is returned by NewDeal when the bankroll cannot
	// cover the wager
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidTransition is returned when an operation is called in a
	// state that does not allow it
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrAlreadySettled is returned by a second Settle for the same round
	ErrAlreadySettled = errors.New("round already settled")

	// ErrWageringDisabled is returned by Settle on a game without a bankroll
	ErrWageringDisabled = errors.New("wagering disabled")
)

func invalidTransition(op string, s State) error {
	return fmt.Errorf("%w: cannot %s while %s", ErrInvalidTransition, op, s)
}
