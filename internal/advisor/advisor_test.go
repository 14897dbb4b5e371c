package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/hit/internal/deck"
	"github.com/lox/hit/internal/game"
)

func hand(cards string) game.Hand {
	return game.NewHand(deck.MustParseCards(cards)...)
}

func TestDealerDistributionSumsToOne(t *testing.T) {
	for _, dealer := range []string{"2s 3d", "Ts 6d", "As 5d", "Ks Qd", "As Ad"} {
		dist := DealerDistribution(hand(dealer))
		sum := 0.0
		for _, p := range dist {
			sum += p
		}
		assert.InDelta(t, 1.0, sum, 1e-9, dealer)
	}
}

func TestDealerDistributionStandingHand(t *testing.T) {
	dist := DealerDistribution(hand("Ts 9d"))
	assert.Equal(t, 1.0, dist[2], "dealer on 19 stands")

	dist = DealerDistribution(hand("As 6d"))
	assert.Equal(t, 1.0, dist[0], "dealer stands on soft 17")
}

func TestDealerOn16BustsOften(t *testing.T) {
	dist := DealerDistribution(hand("Ts 6d"))
	// Any 6 through King busts a hard 16: 8 of 13 ranks.
	assert.InDelta(t, 8.0/13, dist[bustIndex], 1e-9)
}

func TestStandOnHard20(t *testing.T) {
	advice := Recommend(hand("Ts Kd"), hand("Ts 6d"), game.BonusAny21)
	assert.Equal(t, Stand, advice.Action)
	assert.Greater(t, advice.Stand, advice.Hit)
}

func TestAlwaysHitHard11OrLess(t *testing.T) {
	dealers := []string{"2s 3d", "Ts 6d", "Ts 9d", "Ts Kd", "As 6d"}
	players := []string{"2s 3c", "4s 4c", "5s 6c", "2s 9c", "3s 4c 2d"}
	for _, d := range dealers {
		for _, p := range players {
			advice := Recommend(hand(p), hand(d), game.BonusAny21)
			assert.Equal(t, Hit, advice.Action, "player %s dealer %s: %s", p, d, advice)
		}
	}
}

func TestHitWhenStandingCannotWin(t *testing.T) {
	advice := Recommend(hand("Ts 6c"), hand("Ts Kd"), game.BonusAny21)
	assert.Equal(t, -1.0, advice.Stand)
	assert.Equal(t, Hit, advice.Action)
}

func TestBonusRuleRaisesHitValue(t *testing.T) {
	any21 := Recommend(hand("Ts 4c"), hand("Ts 8d"), game.BonusAny21)
	natural := Recommend(hand("Ts 4c"), hand("Ts 8d"), game.BonusNatural)
	assert.Greater(t, any21.Hit, natural.Hit)
	assert.Equal(t, any21.Stand, natural.Stand)
}

func TestAdviceString(t *testing.T) {
	a := Advice{Stand: -0.5, Hit: 0.25, Action: Hit}
	require.Equal(t, "hit (hit +0.25, stand -0.50)", a.String())
}
