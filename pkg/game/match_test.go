package game

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klaverjas-engine/pkg/cards"
)

// scripted speelt altijd de eerste optie; passen als dat mag.
type scripted struct {
	pass     bool
	bids     []BidRequest
	badBid   bool
	badMove  bool
	moveErrs error
}

func (s *scripted) SelectBid(_ context.Context, req BidRequest) (Bid, error) {
	s.bids = append(s.bids, req)
	if s.badBid {
		return SuitBid(cards.Suit(7)), nil
	}
	if s.pass && !req.Forced {
		return PassBid, nil
	}
	return req.Options[0], nil
}

func (s *scripted) SelectMove(_ context.Context, seat int, gs *GameState, legal []cards.Card) (cards.Card, error) {
	if s.moveErrs != nil {
		return cards.Card{}, s.moveErrs
	}
	if s.badMove {
		for _, c := range gs.Hand(seat) {
			if !containsCard(legal, c) {
				return c, nil
			}
		}
	}
	return legal[0], nil
}

func newScriptedMatch(rules Rules, players ...*scripted) *Match {
	var seats [PlayersPerTrick]Player
	for i := range seats {
		seats[i] = players[i%len(players)]
	}
	return NewMatch(seats, rules, 99)
}

func TestBidding(t *testing.T) {
	tests := []struct {
		name       string
		rule       BidRule
		pass       bool
		contractor int
		trump      cards.Suit
	}{
		{"official first bid", Official, false, 0, cards.Spades},
		{"official all pass", Official, true, 0, cards.Spades},
		{"utrechts", Utrechts, true, 0, cards.Spades},
		{"random first round proposes clubs", Random, false, 0, cards.Clubs},
		{"random all pass", Random, true, 0, cards.Spades},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &scripted{pass: tt.pass}
			m := newScriptedMatch(Rules{BidRule: tt.rule}, p)
			hands := randomDeal(m.rng)
			contractor, trump, err := m.bidding(context.Background(), hands, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.contractor, contractor)
			assert.Equal(t, tt.trump, trump)
		})
	}
}

func TestBiddingOptions(t *testing.T) {
	p := &scripted{pass: true}
	m := newScriptedMatch(Rules{BidRule: Random}, p)
	_, _, err := m.bidding(context.Background(), randomDeal(m.rng), 2)
	require.NoError(t, err)

	require.Len(t, p.bids, 5)
	for i, req := range p.bids[:4] {
		assert.Equal(t, (2+i)%4, req.Seat)
		assert.Equal(t, []Bid{SuitBid(cards.Clubs), PassBid}, req.Options)
		assert.False(t, req.Forced)
		assert.Len(t, req.Hand, TricksPerRound)
	}
	last := p.bids[4]
	assert.Equal(t, 2, last.Seat)
	assert.True(t, last.Forced)
	assert.NotContains(t, last.Options, SuitBid(cards.Clubs))
	assert.Len(t, last.Options, 3)
}

func TestBiddingTwentsAllPass(t *testing.T) {
	p := &scripted{pass: true}
	m := newScriptedMatch(Rules{BidRule: Twents}, p)
	contractor, _, err := m.bidding(context.Background(), randomDeal(m.rng), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, contractor)
	assert.Len(t, p.bids, 4, "no forced bid: trump is drawn")
}

func TestBiddingRejectsIllegalBid(t *testing.T) {
	m := newScriptedMatch(DefaultRules(), &scripted{badBid: true})
	_, _, err := m.bidding(context.Background(), randomDeal(m.rng), 0)
	assert.ErrorIs(t, err, ErrIllegalBid)
}

func TestMatchPlay(t *testing.T) {
	var played, tricks, rounds int
	m := newScriptedMatch(Rules{TrumpRule: Amsterdams, BidRule: Official, Rounds: 4}, &scripted{})
	m.Notify = func(e Event) {
		switch e.Kind {
		case EventCardPlayed:
			played++
		case EventTrickCompleted:
			tricks++
			assert.True(t, e.Trick.IsComplete())
		case EventRoundCompleted:
			rounds++
			require.NotNil(t, e.Result)
			assert.True(t, e.State.IsFinished())
		}
	}

	totals, err := m.Play(context.Background())
	require.NoError(t, err)
	assert.True(t, m.IsFinished())
	assert.Equal(t, 4, m.Round())
	assert.Equal(t, 4*32, played)
	assert.Equal(t, 4*8, tricks)
	assert.Equal(t, 4, rounds)

	var sum [2]int
	for i, r := range m.History() {
		assert.Equal(t, i, r.Round)
		sum[0] += r.Scores[0].Sum()
		sum[1] += r.Scores[1].Sum()
	}
	assert.Equal(t, sum, totals)
	assert.Equal(t, totals, m.Totals())
	assert.NotEqual(t, [2]int{}, totals)
}

func TestMatchRotatesEldest(t *testing.T) {
	p := &scripted{}
	m := newScriptedMatch(Rules{Rounds: 3}, p)
	_, err := m.Play(context.Background())
	require.NoError(t, err)
	for i, r := range m.History() {
		assert.Equal(t, i%PlayersPerTrick, r.Contractor, "eldest bids first and takes it")
	}
}

func TestMatchRejectsIllegalMove(t *testing.T) {
	m := newScriptedMatch(DefaultRules(), &scripted{badMove: true})
	_, err := m.PlayRound(context.Background())
	assert.ErrorIs(t, err, ErrIllegalMove)
}

func TestMatchPropagatesPlayerErrors(t *testing.T) {
	boom := errors.New("boom")
	m := newScriptedMatch(DefaultRules(), &scripted{moveErrs: boom})
	_, err := m.PlayRound(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, m.Round())
}

func TestMatchStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := newScriptedMatch(DefaultRules(), &scripted{})
	_, err := m.Play(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
