package statistics

import (
	"math"
	"testing"

	"github.com/lox/hit/internal/deck"
	"github.com/lox/hit/internal/game"
	"github.com/lox/hit/internal/shoe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatistics_Empty(t *testing.T) {
	stats := &Statistics{}

	if stats.Mean() != 0 {
		t.Errorf("Expected mean of 0 for empty stats, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for empty stats, got %f", stats.Variance())
	}
	if stats.StdError() != 0 {
		t.Errorf("Expected stderr of 0 for empty stats, got %f", stats.StdError())
	}
	if stats.Median() != 0 {
		t.Errorf("Expected median of 0 for empty stats, got %f", stats.Median())
	}
	if stats.WinRate() != 0 {
		t.Errorf("Expected win rate of 0 for empty stats, got %f", stats.WinRate())
	}
	if err := stats.Validate(); err == nil {
		t.Error("Expected validation error for empty stats")
	}
}

func TestStatistics_Add(t *testing.T) {
	stats := &Statistics{}
	results := []RoundResult{
		{Net: 1, Outcome: game.PlayerWin, PlayerTotal: 20, Cards: 3},
		{Net: 2, Outcome: game.PlayerWin, PlayerTotal: 21, Cards: 2},
		{Net: -1, Outcome: game.PlayerBust, PlayerTotal: 24, Cards: 3},
		{Net: 0, Outcome: game.Push, PlayerTotal: 19, Cards: 2},
		{Net: 1, Outcome: game.DealerBust, PlayerTotal: 13, Cards: 2},
		{Net: -1, Outcome: game.DealerWin, PlayerTotal: 17, Cards: 2},
	}
	for _, r := range results {
		stats.Add(r)
	}

	assert.Equal(t, 6, stats.Rounds)
	assert.InDelta(t, 2.0, stats.SumNet, 1e-9)
	assert.InDelta(t, 2.0/6, stats.Mean(), 1e-9)
	assert.Equal(t, 2, stats.Count(game.PlayerWin))
	assert.Equal(t, 1, stats.Count(game.PlayerBust))
	assert.Equal(t, 1, stats.Count(game.Push))
	assert.Equal(t, 1, stats.Naturals)
	assert.Equal(t, 1, stats.BonusWins)
	assert.Equal(t, 1, stats.HitsToWin)
	assert.Equal(t, 2, stats.MaxWinRun)
	assert.Equal(t, 1, stats.MaxLossRun)
	assert.InDelta(t, 0.5, stats.WinRate(), 1e-9)
	assert.True(t, stats.IsLedgerBalanced())
	require.NoError(t, stats.Validate())
}

func TestStatistics_Variance(t *testing.T) {
	stats := &Statistics{}
	for _, v := range []float64{1, -1, 1, -1} {
		o := game.PlayerWin
		if v < 0 {
			o = game.DealerWin
		}
		stats.Add(RoundResult{Net: v, Outcome: o})
	}

	// Sample variance of {1,-1,1,-1}: sum of squares 4 over n-1 = 3
	if math.Abs(stats.Variance()-4.0/3.0) > 1e-9 {
		t.Errorf("Expected variance 4/3, got %f", stats.Variance())
	}
	lo, hi := stats.ConfidenceInterval95()
	if lo >= 0 || hi <= 0 {
		t.Errorf("Expected CI to straddle zero, got [%f, %f]", lo, hi)
	}
}

func TestStatistics_Percentile(t *testing.T) {
	stats := &Statistics{}
	for _, v := range []float64{-1, -1, 0, 1, 2} {
		stats.Add(RoundResult{Net: v, Outcome: game.Push})
	}

	tests := []struct {
		p    float64
		want float64
	}{
		{0, -1},
		{0.5, 0},
		{0.75, 1},
		{1, 2},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, stats.Percentile(tt.p), 1e-9, "percentile %.2f", tt.p)
	}
	assert.InDelta(t, 0.0, stats.Median(), 1e-9)
}

func TestStatistics_Merge(t *testing.T) {
	a := &Statistics{}
	b := &Statistics{}
	a.Add(RoundResult{Net: 1, Outcome: game.PlayerWin})
	a.Add(RoundResult{Net: 1, Outcome: game.DealerBust})
	b.Add(RoundResult{Net: -1, Outcome: game.DealerWin})
	b.Add(RoundResult{Net: -1, Outcome: game.PlayerBust})
	b.Add(RoundResult{Net: -1, Outcome: game.PlayerBust})

	a.Merge(b)

	assert.Equal(t, 5, a.Rounds)
	assert.InDelta(t, -1.0, a.SumNet, 1e-9)
	assert.Equal(t, 2, a.Count(game.PlayerBust))
	assert.Equal(t, 2, a.MaxWinRun)
	assert.Equal(t, 3, a.MaxLossRun)
	require.NoError(t, a.Validate())
}

func TestStatistics_ValidateDetectsMismatch(t *testing.T) {
	stats := &Statistics{}
	stats.Add(RoundResult{Net: 1, Outcome: game.PlayerWin})
	stats.SumNet = 5

	err := stats.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ledger mismatch")
}

func TestResultOf(t *testing.T) {
	tests := []struct {
		name    string
		cards   string
		hits    int
		wantNet float64
		want    game.Outcome
	}{
		{"natural pays bonus", "As Kd 9c 8c", 0, 2, game.PlayerWin},
		{"stand and lose", "Ts 7d Kc 9c", 0, -1, game.DealerWin},
		{"push", "Ts 9d Kc 9c", 0, 0, game.Push},
		{"bust", "Ts 6d Kc 9c Qh", 1, -1, game.PlayerBust},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := game.New(shoe.NewStacked(deck.MustParseCards(tt.cards)...), game.WithoutWagering())
			require.NoError(t, g.NewDeal())
			for range tt.hits {
				require.NoError(t, g.Hit())
			}
			if g.State() == game.Playing {
				require.NoError(t, g.Stand())
			}

			r := ResultOf(g, 42)
			assert.Equal(t, tt.want, r.Outcome)
			assert.InDelta(t, tt.wantNet, r.Net, 1e-9)
			assert.Equal(t, int64(42), r.Seed)
		})
	}
}

func TestReport(t *testing.T) {
	stats := &Statistics{}
	stats.Add(RoundResult{Net: 1, Outcome: game.PlayerWin})
	stats.Add(RoundResult{Net: -1, Outcome: game.PlayerBust})

	r := stats.Report()
	assert.Equal(t, 2, r.Rounds)
	assert.Equal(t, 1, r.Outcomes[game.PlayerWin.Name()])
	assert.Equal(t, 1, r.Outcomes[game.PlayerBust.Name()])
	assert.Equal(t, 0, r.Outcomes[game.Push.Name()])
	assert.Contains(t, stats.Summary(), "Rounds: 2")
}
