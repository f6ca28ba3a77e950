package game

import (
	"context"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klaverjas-engine/pkg/cards"
	"github.com/klaverjas-engine/pkg/engine"
)

func sortedCards(cc []cards.Card) []cards.Card {
	out := append([]cards.Card(nil), cc...)
	sort.Slice(out, func(i, j int) bool { return out[i].Index() < out[j].Index() })
	return out
}

func TestDeterminiseLegality(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	for game := 0; game < 40; game++ {
		gs, err := New(randomDeal(rng), game%4, (game+2)%4, TrumpRule(game%2), cards.Suit(game%4))
		require.NoError(t, err)
		for !gs.IsFinished() {
			observer := gs.CurrentPlayer()
			det := gs.CloneAndRandomise(observer, rng).(*GameState)

			var hidden, redealt []cards.Card
			for p := 0; p < PlayersPerTrick; p++ {
				if p == observer {
					assert.Equal(t, gs.Hand(p), det.Hand(p), "observer keeps his hand")
					continue
				}
				require.Equal(t, gs.HandSize(p), det.HandSize(p))
				for _, c := range det.Hand(p) {
					require.True(t, gs.Constraints(p).Allows(c, gs.Trump()), "seat %d got %s", p, c)
				}
				hidden = append(hidden, gs.Hand(p)...)
				redealt = append(redealt, det.Hand(p)...)
			}
			require.Equal(t, sortedCards(hidden), sortedCards(redealt))
			assert.Equal(t, gs.ValidMoves(), det.ValidMoves(), "the observer's options do not change")

			moves := gs.ValidMoves()
			gs.DoMove(moves[rng.Intn(len(moves))])
		}
	}
}

func TestDeterminiseForcedDeal(t *testing.T) {
	deal := []string{
		"h7 h8 h9 h10 hJ hQ hK hA",
		"c7 c8 c9 c10 cJ cQ cK cA",
		"s7 s8 s9 s10 sJ sQ sK sA",
		"d7 d8 d9 d10 dJ dQ dK dA",
	}
	gs := newState(t, deal, 0, 0, Rotterdams, cards.Hearts)
	only := map[int]cards.Suit{1: cards.Clubs, 2: cards.Spades, 3: cards.Diamonds}
	for p, keep := range only {
		for _, s := range cards.Suits() {
			if s != keep {
				gs.RemoveConstraint(p, s)
			}
		}
	}

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		det := gs.CloneAndRandomise(0, rng).(*GameState)
		for p := 1; p < PlayersPerTrick; p++ {
			assert.ElementsMatch(t, gs.Hand(p), det.Hand(p))
		}
	}
}

func TestExactDealFindsRareSolution(t *testing.T) {
	gs := newState(t, standardDeal, 0, 0, Rotterdams, cards.Hearts)
	// Zo weinig ruimte dat een gulzige deling vaak vastloopt.
	gs.RemoveConstraint(3, cards.Diamonds)
	gs.RemoveConstraint(2, cards.Clubs)

	var pool []cards.Card
	for p := 1; p < PlayersPerTrick; p++ {
		pool = append(pool, gs.Hand(p)...)
	}
	d, ok := gs.exactDeal(pool, []int{1, 2, 3})
	require.True(t, ok)
	for p := 1; p < PlayersPerTrick; p++ {
		require.Len(t, d[p], TricksPerRound)
		for _, c := range d[p] {
			assert.True(t, gs.Constraints(p).Allows(c, gs.Trump()))
		}
	}
}

func TestDeterminiseInfeasiblePanics(t *testing.T) {
	gs := newState(t, standardDeal, 0, 0, Rotterdams, cards.Hearts)
	for p := 1; p < PlayersPerTrick; p++ {
		gs.RemoveConstraint(p, cards.Clubs)
	}
	assert.Panics(t, func() {
		gs.CloneAndRandomise(0, rand.New(rand.NewSource(1)))
	})
}

func TestDeterminiseFollowsHighSignal(t *testing.T) {
	gs := newState(t, standardDeal, 0, 0, Amsterdams, cards.Spades)
	play(t, gs, "cA c8 h8")
	require.Equal(t, []SignalRecord{{Signal: High, Suit: cards.Hearts}}, gs.Signals(2))

	rng := rand.New(rand.NewSource(8))
	aceOfHearts := cards.Card{Suit: cards.Hearts, Rank: cards.Ace}
	for i := 0; i < 50; i++ {
		det := gs.CloneAndRandomise(1, rng).(*GameState)
		assert.Contains(t, det.Hand(2), aceOfHearts)
	}
}

func TestSolverTakesTheTrick(t *testing.T) {
	deal := []string{
		"cA c7 d7 d8 s7 s8 h9 hQ",
		"c10 cJ d9 d10 s9 s10 hJ h7",
		"c8 cQ dJ dQ sJ sQ h8 hK",
		"c9 cK dK dA sK sA h10 hA",
	}
	gs := newState(t, deal, 1, 0, Rotterdams, cards.Hearts)
	play(t, gs, "c10 cQ cK")
	require.ElementsMatch(t, cards.MustParseCards("cA c7"), gs.ValidMoves())

	cfg := engine.DefaultConfig()
	cfg.Iterations = 3000
	cfg.Seed = 17
	solver := engine.NewSolver[cards.Card](cfg)
	move, eval, err := solver.BestMove(context.Background(), gs)
	require.NoError(t, err)
	assert.Equal(t, cards.Card{Suit: cards.Clubs, Rank: cards.Ace}, move)
	assert.Equal(t, 3000, eval.Iterations)
	assert.Len(t, eval.Details, 2)

	// De zoektocht laat de echte toestand ongemoeid.
	assert.Equal(t, 3, gs.CurrentTrick().Len())
	assert.Equal(t, 8, gs.HandSize(0))
}
