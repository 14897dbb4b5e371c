package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/lox/hit/internal/deck"
	"github.com/lox/hit/internal/shoe"
)

// VerifyCmd recomputes the cards a provably-fair shoe dealt
type VerifyCmd struct {
	ServerSeed string `arg:"" help:"Server seed revealed after the round"`
	ClientSeed string `arg:"" help:"Client seed supplied before the round"`
	Nonce      uint64 `arg:"" help:"Round nonce"`

	Cards int    `short:"n" help:"Number of cards to replay" default:"10"`
	Hash  string `help:"Commitment published before the round; checked against the server seed"`
}

func (c *VerifyCmd) Run(_ *Globals) error {
	hash := shoe.ServerSeedHash(c.ServerSeed)
	if c.Hash != "" && !strings.EqualFold(c.Hash, hash) {
		return fmt.Errorf("server seed does not match commitment: got %s, want %s", hash, c.Hash)
	}
	if c.Cards <= 0 {
		return errors.New("--cards must be positive")
	}

	cards := shoe.FairCards(c.ServerSeed, c.ClientSeed, c.Nonce, c.Cards)
	fmt.Fprintf(os.Stdout, "Server seed hash: %s\n", hash)
	fmt.Fprintf(os.Stdout, "Cards: %s\n", formatCards(cards))
	if len(cards) >= 4 {
		fmt.Fprintf(os.Stdout, "Player: %s %s\n", cards[0], cards[1])
		fmt.Fprintf(os.Stdout, "Dealer: %s %s\n", cards[2], cards[3])
	}
	return nil
}

func formatCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
