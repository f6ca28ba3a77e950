package player

import (
	"context"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klaverjas-engine/pkg/cards"
	"github.com/klaverjas-engine/pkg/engine"
	"github.com/klaverjas-engine/pkg/game"
)

func allOptions(pass bool) []game.Bid {
	opts := []game.Bid{
		game.SuitBid(cards.Spades), game.SuitBid(cards.Hearts),
		game.SuitBid(cards.Diamonds), game.SuitBid(cards.Clubs),
	}
	if pass {
		opts = append(opts, game.PassBid)
	}
	return opts
}

func TestHandStrength(t *testing.T) {
	hand := cards.MustParseCards("hJ h9 hA h10 cA c10 s7 s8")
	got := HandStrength(hand, []cards.Suit{cards.Hearts, cards.Clubs}, DefaultWeights())
	// harten troef: J 9 A 10 = 55, plus klaver A 10 = 21
	assert.Equal(t, 76.0, got[cards.Hearts])
	// klaver troef: harten A 10 = 21, klaver heeft geen boer
	assert.Equal(t, 21.0, got[cards.Clubs])

	w := DefaultWeights()
	w.TrumpLengthBonus = 2
	got = HandStrength(hand, []cards.Suit{cards.Hearts}, w)
	assert.Equal(t, 84.0, got[cards.Hearts])
}

func TestChooseBid(t *testing.T) {
	tests := []struct {
		name    string
		hand    string
		options []game.Bid
		want    game.Bid
	}{
		{"strong trump", "hJ h9 hA h10 c7 d8 s7 s8", allOptions(true), game.SuitBid(cards.Hearts)},
		{"long middling trump", "hJ h7 h8 hQ c7 d8 s7 s8", allOptions(true), game.SuitBid(cards.Hearts)},
		{"too short", "hJ h7 hQ c7 c8 d8 s7 s8", allOptions(true), game.PassBid},
		{"weak hand passes", "c7 c8 d7 d8 h7 h8 s9 sQ", allOptions(true), game.PassBid},
		{"weak hand forced", "c7 c8 d7 d8 h7 h8 s9 sQ", allOptions(false), game.SuitBid(cards.Spades)},
		{"only pass", "c7 c8 d7 d8 h7 h8 s9 sQ", []game.Bid{game.PassBid}, game.PassBid},
		{"proposed suit", "cJ c9 cA d7 d8 h7 h8 s9", []game.Bid{game.SuitBid(cards.Clubs), game.PassBid}, game.SuitBid(cards.Clubs)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := game.BidRequest{Hand: cards.MustParseCards(tt.hand), Options: tt.options}
			assert.Equal(t, tt.want, ChooseBid(req, DefaultWeights()))
		})
	}
}

func TestWeightsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.yaml")
	w := DefaultWeights()
	for _, p := range w.Params() {
		*p.Ptr = Clamp(*p.Ptr+1, p.Min, p.Max)
	}
	require.NoError(t, SaveWeights(w, path))
	got, err := LoadWeights(path)
	require.NoError(t, err)
	assert.Equal(t, w, got)

	_, err = LoadWeights(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 2.0, Clamp(1, 2, 6))
	assert.Equal(t, 6.0, Clamp(9, 2, 6))
	assert.Equal(t, 4.0, Clamp(4, 2, 6))
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{"ai": KindAI, "Random": KindRandom, " mens ": KindHuman} {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseKind("robot")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestNew(t *testing.T) {
	opts := DefaultOptions()
	p, err := New(KindAI, opts)
	require.NoError(t, err)
	assert.IsType(t, &AI{}, p)
	p, err = New(KindRandom, opts)
	require.NoError(t, err)
	assert.IsType(t, &Random{}, p)
	p, err = New(KindHuman, opts)
	require.NoError(t, err)
	assert.IsType(t, &Human{}, p)
	_, err = New(Kind(9), opts)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func newRound(t *testing.T, seed int64) *game.GameState {
	t.Helper()
	deck := cards.NewDeck()
	deck.Shuffle(rand.New(rand.NewSource(seed)))
	hands, _ := deck.Deal(game.PlayersPerTrick, game.TricksPerRound)
	gs, err := game.New(hands, 0, 0, game.Rotterdams, cards.Hearts)
	require.NoError(t, err)
	return gs
}

func TestPlayersPlayLegalCards(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.Iterations = 100
	cfg.Seed = 5
	seats := []game.Player{NewAI(cfg, DefaultWeights()), NewRandom(7, DefaultWeights())}

	gs := newRound(t, 3)
	ctx := context.Background()
	for !gs.IsFinished() {
		seat := gs.CurrentPlayer()
		legal := gs.ValidMoves()
		c, err := seats[game.Team(seat)].SelectMove(ctx, seat, gs, legal)
		require.NoError(t, err)
		require.Contains(t, legal, c)
		gs.DoMove(c)
	}
	for seat := 0; seat < game.PlayersPerTrick; seat++ {
		assert.InDelta(t, 0.5, gs.Result(seat), 0.5)
	}
}

func TestAIEvaluate(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.Iterations = 200
	cfg.Seed = 11
	ai := NewAI(cfg, DefaultWeights())
	gs := newRound(t, 4)
	move, eval, err := ai.Evaluate(context.Background(), gs)
	require.NoError(t, err)
	assert.Contains(t, gs.ValidMoves(), move)
	assert.Equal(t, 200, eval.Iterations)
	assert.Equal(t, move, eval.Details[0].Move)
}

func TestHumanRelaysRequests(t *testing.T) {
	h := NewHuman()
	gs := newRound(t, 5)

	go func() {
		for req := range h.Requests() {
			switch req.Kind {
			case RequestBid:
				req.Reply(Response{Bid: req.Bid.Options[0]})
			case RequestMove:
				req.Reply(Response{Card: req.Legal[len(req.Legal)-1]})
			}
		}
	}()

	ctx := context.Background()
	bid, err := h.SelectBid(ctx, game.BidRequest{Seat: 0, Options: allOptions(true)})
	require.NoError(t, err)
	assert.Equal(t, game.SuitBid(cards.Spades), bid)

	legal := gs.ValidMoves()
	c, err := h.SelectMove(ctx, 0, gs, legal)
	require.NoError(t, err)
	assert.Equal(t, legal[len(legal)-1], c)
}

func TestHumanReplyError(t *testing.T) {
	h := NewHuman()
	go func() {
		req := <-h.Requests()
		req.Reply(Response{Err: context.Canceled})
	}()
	_, err := h.SelectBid(context.Background(), game.BidRequest{Options: allOptions(true)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHumanHonoursContext(t *testing.T) {
	h := NewHuman()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := h.SelectMove(ctx, 0, newRound(t, 6), nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
