package shoe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"

	"github.com/lox/hit/internal/deck"
)

// Fair is an unlimited shoe whose cards are derived from published seeds.
// Each draw consumes four bytes of HMAC-SHA256(serverSeed,
// "clientSeed:nonce:round"), turns them into a float in [0,1) and maps it
// onto one of the 52 cards. Anyone holding the seeds can replay the deal.
//
// Each round dealt by a game uses its own nonce: the first round uses the
// nonce the shoe was created with and every later round the next one.
type Fair struct {
	serverSeed string
	clientSeed string
	nonce      uint64
	started    bool

	round  uint64
	pos    int
	buffer [sha256.Size]byte
}

// NewFair creates a provably fair shoe for one (serverSeed, clientSeed, nonce)
func NewFair(serverSeed, clientSeed string, nonce uint64) *Fair {
	s := &Fair{
		serverSeed: serverSeed,
		clientSeed: clientSeed,
		nonce:      nonce,
	}
	s.fill()
	return s
}

// Draw returns the next card derived from the seeds; the error is always nil
func (s *Fair) Draw() (deck.Card, error) {
	var b [4]byte
	for i := range b {
		b[i] = s.next()
	}
	return cardFromFloat(bytesToFloat(b)), nil
}

// BeginRound moves to the next nonce and restarts the card stream
func (s *Fair) BeginRound() {
	if s.started {
		s.nonce++
	}
	s.started = true
	s.round = 0
	s.fill()
}

// Commitment returns the SHA-256 of the server seed, published before play
func (s *Fair) Commitment() string {
	return ServerSeedHash(s.serverSeed)
}

// ClientSeed returns the client seed mixed into every draw
func (s *Fair) ClientSeed() string {
	return s.clientSeed
}

// Nonce returns the nonce of the current round, or of the first round
// before anything has been dealt
func (s *Fair) Nonce() uint64 {
	return s.nonce
}

// ServerSeedHash returns the hex SHA-256 commitment of a server seed
func ServerSeedHash(serverSeed string) string {
	sum := sha256.Sum256([]byte(serverSeed))
	return hex.EncodeToString(sum[:])
}

// FairCards replays the first n cards a Fair shoe deals for the given seeds
func FairCards(serverSeed, clientSeed string, nonce uint64, n int) []deck.Card {
	s := NewFair(serverSeed, clientSeed, nonce)
	cards := make([]deck.Card, n)
	for i := range cards {
		cards[i], _ = s.Draw()
	}
	return cards
}

func (s *Fair) next() byte {
	if s.pos >= len(s.buffer) {
		s.round++
		s.fill()
	}
	b := s.buffer[s.pos]
	s.pos++
	return b
}

func (s *Fair) fill() {
	h := hmac.New(sha256.New, []byte(s.serverSeed))
	fmt.Fprintf(h, "%s:%d:%d", s.clientSeed, s.nonce, s.round)
	copy(s.buffer[:], h.Sum(nil))
	s.pos = 0
}

func bytesToFloat(b [4]byte) float64 {
	result := 0.0
	for i, v := range b {
		result += float64(v) / math.Pow(256, float64(i+1))
	}
	return result
}

func cardFromFloat(f float64) deck.Card {
	index := int(math.Floor(f * deckSize))
	index = max(0, min(index, deckSize-1))
	return deck.FromIndex(index)
}
