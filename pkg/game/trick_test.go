package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klaverjas-engine/pkg/cards"
)

func playTrick(trump cards.Suit, leader int, played string) *Trick {
	t := NewTrick(trump)
	for i, c := range cards.MustParseCards(played) {
		t.Add((leader+i)%PlayersPerTrick, c)
	}
	return t
}

func TestTrickScore(t *testing.T) {
	tests := []struct {
		name   string
		trump  cards.Suit
		played string
		winner int
		want   Score
	}{
		{"trump beats plain", cards.Hearts, "c7 cA h7 cK", 2, Score{Points: 15}},
		{"run of four", cards.Hearts, "c7 c8 c9 c10", 3, Score{Points: 10, Bonus: 50}},
		{"run of three", cards.Hearts, "dQ dK dA s7", 2, Score{Points: 18, Bonus: 20}},
		{"stuk", cards.Hearts, "hK hQ c7 d9", 0, Score{Points: 7, Bonus: 20}},
		{"stuk in run", cards.Hearts, "hQ hK hA s7", 2, Score{Points: 18, Bonus: 40}},
		{"four jacks", cards.Hearts, "cJ dJ hJ sJ", 2, Score{Points: 26, Bonus: 200}},
		{"four sevens", cards.Spades, "c7 d7 h7 s7", 3, Score{Points: 0, Bonus: 100}},
		{"off suit never wins", cards.Hearts, "d7 sA cA dA", 3, Score{Points: 33}},
		{"trump nine over ace", cards.Spades, "sA s9 s10 cK", 1, Score{Points: 39}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := playTrick(tt.trump, 0, tt.played)
			require.True(t, tr.IsComplete())
			assert.Equal(t, tt.winner, tr.Winner())
			assert.Equal(t, tt.want, tr.Score())
		})
	}
}

func TestTrickIncomplete(t *testing.T) {
	tr := playTrick(cards.Hearts, 1, "c7 c8 c9")
	assert.False(t, tr.IsComplete())
	assert.Equal(t, Score{}, tr.Score(), "no bonus before the trick is complete")
	assert.Equal(t, 3, tr.Winner())
	assert.Equal(t, cards.Clubs, tr.SuitLed())
	assert.Equal(t, 1, tr.Leader())
}

func TestTrickWinnerMonotonic(t *testing.T) {
	tr := NewTrick(cards.Hearts)
	tr.Add(0, cards.Card{Suit: cards.Clubs, Rank: cards.King})
	tr.Add(1, cards.Card{Suit: cards.Clubs, Rank: cards.Ten})
	assert.Equal(t, 1, tr.Winner())
	tr.Add(2, cards.Card{Suit: cards.Spades, Rank: cards.Ace})
	assert.Equal(t, 1, tr.Winner(), "off-suit ace does not win")
	tr.Add(3, cards.Card{Suit: cards.Hearts, Rank: cards.Seven})
	assert.Equal(t, 3, tr.Winner())
	assert.Equal(t, cards.Card{Suit: cards.Hearts, Rank: cards.Seven}, tr.WinningCard())
}

func TestCheckSignal(t *testing.T) {
	tests := []struct {
		name   string
		played string
		signal Signal
		suit   cards.Suit
	}{
		{"low card means high", "cA c7 d8", High, cards.Diamonds},
		{"face card means low", "cA c7 dK", Low, cards.Diamonds},
		{"ace means long", "cA c7 sA", Long, cards.Spades},
		{"ten is no signal", "cA c7 d10", NoSignal, 0},
		{"following suit", "cA c7 c8", NoSignal, 0},
		{"trump is no signal", "cA c7 h8", NoSignal, 0},
		{"partner not winning", "c7 cA d8", NoSignal, 0},
		{"too early", "cA d8", NoSignal, 0},
		{"fourth seat", "c7 cA d7 s9", High, cards.Spades},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig, suit := playTrick(cards.Hearts, 0, tt.played).CheckSignal()
			assert.Equal(t, tt.signal, sig)
			if sig != NoSignal {
				assert.Equal(t, tt.suit, suit)
			}
		})
	}
}
