package simulator

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/hit/internal/advisor"
	"github.com/lox/hit/internal/deck"
	"github.com/lox/hit/internal/game"
	"github.com/lox/hit/internal/shoe"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"advisor", "advisor", false},
		{" Advisor ", "advisor", false},
		{"stand:17", "stand:17", false},
		{"stand:12", "stand:12", false},
		{"stand:11", "", true},
		{"stand:22", "", true},
		{"stand:x", "", true},
		{"hit", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s, err := ParseStrategy(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Name())
		})
	}
}

func TestThresholdDecide(t *testing.T) {
	s := Threshold{StandOn: 17}
	dealer := game.NewHand(deck.MustParseCards("Ts 6d")...)

	assert.Equal(t, advisor.Hit, s.Decide(game.NewHand(deck.MustParseCards("Ts 6c")...), dealer, game.BonusAny21))
	assert.Equal(t, advisor.Stand, s.Decide(game.NewHand(deck.MustParseCards("Ts 7c")...), dealer, game.BonusAny21))
	assert.Equal(t, advisor.Stand, s.Decide(game.NewHand(deck.MustParseCards("As 6c")...), dealer, game.BonusAny21))
}

func TestSimulatorIsReproducible(t *testing.T) {
	for _, kind := range []shoe.Kind{shoe.KindInfinite, shoe.KindFinite} {
		t.Run(string(kind), func(t *testing.T) {
			cfg := Config{
				Rounds:   2000,
				Workers:  4,
				Strategy: Threshold{StandOn: 17},
				Shoe:     kind,
				Seed:     12345,
				Timeout:  30 * time.Second,
			}

			first, err := New(cfg).Run(context.Background())
			require.NoError(t, err)
			second, err := New(cfg).Run(context.Background())
			require.NoError(t, err)

			assert.Equal(t, 2000, first.Rounds)
			assert.Equal(t, first.SumNet, second.SumNet)
			assert.Equal(t, first.Values, second.Values)
			assert.Equal(t, first.Outcomes, second.Outcomes)
			require.NoError(t, first.Validate())
		})
	}
}

func TestSimulatorDifferentSeedsDiffer(t *testing.T) {
	run := func(seed int64) []float64 {
		stats, err := New(Config{Rounds: 500, Workers: 2, Strategy: Threshold{StandOn: 15}, Seed: seed}).
			Run(context.Background())
		require.NoError(t, err)
		return stats.Values
	}
	assert.NotEqual(t, run(1), run(2))
}

func TestSimulatorRemainderRounds(t *testing.T) {
	stats, err := New(Config{Rounds: 10, Workers: 3, Seed: 7}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, stats.Rounds)

	// More workers than rounds collapses to one round per worker
	stats, err = New(Config{Rounds: 2, Workers: 8, Seed: 7}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Rounds)
}

func TestSimulatorStandOn21NeverStandsEarly(t *testing.T) {
	stats, err := New(Config{Rounds: 1000, Workers: 2, Strategy: Threshold{StandOn: 21}, Seed: 99}).
		Run(context.Background())
	require.NoError(t, err)

	// Every round ends on 21 or a bust, so the dealer can only win by
	// outdrawing a player who busted
	assert.Zero(t, stats.Count(game.DealerWin))
	assert.Positive(t, stats.Count(game.PlayerBust))
}

func TestSimulatorAdvisorBeatsThreshold(t *testing.T) {
	cfg := Config{Rounds: 20000, Workers: 4, Seed: 2024}

	cfg.Strategy = Optimal{}
	optimal, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	cfg.Strategy = Threshold{StandOn: 21}
	reckless, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	assert.Greater(t, optimal.Mean(), reckless.Mean())
}

func TestSimulatorHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Config{Rounds: 100000, Workers: 2, Seed: 1}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSimulatorRejectsNoRounds(t *testing.T) {
	_, err := New(Config{}).Run(context.Background())
	assert.Error(t, err)
}

func TestWriteReport(t *testing.T) {
	sim := New(Config{Rounds: 100, Workers: 2, Strategy: Threshold{StandOn: 17}, Seed: 5})
	stats, err := sim.Run(context.Background())
	require.NoError(t, err)

	report := sim.NewReport(stats, 1500*time.Millisecond)
	path := filepath.Join(t.TempDir(), "sim.json")
	require.NoError(t, WriteReport(path, report))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "stand:17", decoded.Strategy)
	assert.Equal(t, "infinite", decoded.Shoe)
	assert.Equal(t, "any21", decoded.BonusRule)
	assert.Equal(t, 100, decoded.Results.Rounds)
	assert.Equal(t, "1.5s", decoded.Elapsed)

	var buf bytes.Buffer
	PrintSummary(&buf, report, stats)
	assert.Contains(t, buf.String(), "stand:17 on infinite shoe")
}
