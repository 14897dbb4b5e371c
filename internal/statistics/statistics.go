package statistics

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/lox/hit/internal/game"
)

// RoundResult represents the outcome of a single blackjack round
type RoundResult struct {
	Net         float64      // Net result in wagers (+1 win, +2 bonus win, 0 push, -1 loss)
	Outcome     game.Outcome // How the round ended
	PlayerTotal int          // Player's final total
	Cards       int          // Number of cards in the player's final hand
	Seed        int64        // Seed of the shoe that dealt the round (for replay)
}

// OutcomeStats tracks results for one outcome category
type OutcomeStats struct {
	Rounds int
	SumNet float64
}

// Statistics tracks running results of a blackjack session or simulation
type Statistics struct {
	Rounds  int
	SumNet  float64
	SumNet2 float64   // Sum of squares for variance calculation
	Values  []float64 // All values for median/percentile calculation

	Outcomes   [len(game.Outcomes)]OutcomeStats
	BonusWins  int // Wins paid at 3×
	Naturals   int // Two-card 21s dealt to the player
	HitsToWin  int // Wins where the player took at least one card
	MaxWinRun  int
	MaxLossRun int

	winRun  int
	lossRun int
}

// Add incorporates a new round result into the statistics
func (s *Statistics) Add(result RoundResult) {
	net := result.Net
	s.Rounds++
	s.SumNet += net
	s.SumNet2 += net * net
	s.Values = append(s.Values, net)

	if int(result.Outcome) >= 0 && int(result.Outcome) < len(s.Outcomes) {
		s.Outcomes[result.Outcome].Rounds++
		s.Outcomes[result.Outcome].SumNet += net
	}

	if result.Cards == 2 && result.PlayerTotal == game.BlackjackValue {
		s.Naturals++
	}
	if net > 1 {
		s.BonusWins++
	}
	if result.Outcome.PlayerWon() && result.Cards > 2 {
		s.HitsToWin++
	}

	switch {
	case net > 0:
		s.winRun++
		s.lossRun = 0
	case net < 0:
		s.lossRun++
		s.winRun = 0
	default:
		s.winRun, s.lossRun = 0, 0
	}
	s.MaxWinRun = max(s.MaxWinRun, s.winRun)
	s.MaxLossRun = max(s.MaxLossRun, s.lossRun)
}

// Merge folds another set of statistics into s. Streaks are not carried
// across the boundary; the longer of the two maxima is kept.
func (s *Statistics) Merge(other *Statistics) {
	s.Rounds += other.Rounds
	s.SumNet += other.SumNet
	s.SumNet2 += other.SumNet2
	s.Values = append(s.Values, other.Values...)
	for i := range s.Outcomes {
		s.Outcomes[i].Rounds += other.Outcomes[i].Rounds
		s.Outcomes[i].SumNet += other.Outcomes[i].SumNet
	}
	s.BonusWins += other.BonusWins
	s.Naturals += other.Naturals
	s.HitsToWin += other.HitsToWin
	s.MaxWinRun = max(s.MaxWinRun, other.MaxWinRun)
	s.MaxLossRun = max(s.MaxLossRun, other.MaxLossRun)
}

// Mean returns the average net result per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumNet / float64(s.Rounds)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumNet2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Count returns how many rounds ended with the outcome
func (s *Statistics) Count(o game.Outcome) int {
	return s.Outcomes[o].Rounds
}

// WinRate returns the fraction of rounds the player won
func (s *Statistics) WinRate() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Count(game.PlayerWin)+s.Count(game.DealerBust)) / float64(s.Rounds)
}

// IsLedgerBalanced checks that per-outcome nets add up to the total
func (s *Statistics) IsLedgerBalanced() bool {
	sum := 0.0
	for _, o := range s.Outcomes {
		sum += o.SumNet
	}
	return math.Abs(s.SumNet-sum) <= 1e-6
}

// Validate performs consistency checks on the collected data
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: total net %.6f does not match outcome breakdown", s.SumNet)
	}
	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}
	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values array length (%d) does not match rounds count (%d)",
			len(s.Values), s.Rounds)
	}

	counted := 0
	for _, o := range s.Outcomes {
		counted += o.Rounds
	}
	if counted != s.Rounds {
		return fmt.Errorf("outcome rounds total (%d) does not match rounds count (%d)", counted, s.Rounds)
	}
	return nil
}

// Summary renders a short multi-line report
func (s *Statistics) Summary() string {
	var sb strings.Builder
	lo, hi := s.ConfidenceInterval95()
	fmt.Fprintf(&sb, "Rounds: %d\n", s.Rounds)
	fmt.Fprintf(&sb, "Net: %+.1f wagers (%+.4f per round, 95%% CI [%+.4f, %+.4f])\n", s.SumNet, s.Mean(), lo, hi)
	fmt.Fprintf(&sb, "Win rate: %.2f%%\n", 100*s.WinRate())
	for _, o := range game.Outcomes {
		fmt.Fprintf(&sb, "  %-12s %d\n", o.Name(), s.Count(o))
	}
	fmt.Fprintf(&sb, "Naturals: %d  Bonus wins: %d\n", s.Naturals, s.BonusWins)
	fmt.Fprintf(&sb, "Longest win streak: %d  Longest losing streak: %d", s.MaxWinRun, s.MaxLossRun)
	return sb.String()
}

// Report is the JSON form of the statistics
type Report struct {
	Rounds     int            `json:"rounds"`
	Net        float64        `json:"net"`
	Mean       float64        `json:"mean"`
	StdDev     float64        `json:"stddev"`
	CI95       [2]float64     `json:"ci95"`
	WinRate    float64        `json:"win_rate"`
	Outcomes   map[string]int `json:"outcomes"`
	Naturals   int            `json:"naturals"`
	BonusWins  int            `json:"bonus_wins"`
	MaxWinRun  int            `json:"max_win_streak"`
	MaxLossRun int            `json:"max_loss_streak"`
}

// Report builds the JSON report
func (s *Statistics) Report() Report {
	lo, hi := s.ConfidenceInterval95()
	outcomes := make(map[string]int, len(game.Outcomes))
	for _, o := range game.Outcomes {
		outcomes[o.Name()] = s.Count(o)
	}
	return Report{
		Rounds:     s.Rounds,
		Net:        s.SumNet,
		Mean:       s.Mean(),
		StdDev:     s.StdDev(),
		CI95:       [2]float64{lo, hi},
		WinRate:    s.WinRate(),
		Outcomes:   outcomes,
		Naturals:   s.Naturals,
		BonusWins:  s.BonusWins,
		MaxWinRun:  s.MaxWinRun,
		MaxLossRun: s.MaxLossRun,
	}
}

// ResultOf converts a resolved game into a RoundResult
func ResultOf(g *game.Game, seed int64) RoundResult {
	player := g.Player()
	outcome := g.RoundResult()
	wager := 1
	return RoundResult{
		Net:         float64(game.Payout(outcome, player, wager, g.BonusRule()) - wager),
		Outcome:     outcome,
		PlayerTotal: player.Total().Value,
		Cards:       player.Len(),
		Seed:        seed,
	}
}
