package io

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klaverjas-engine/pkg/cards"
	"github.com/klaverjas-engine/pkg/game"
)

func TestParseChoice(t *testing.T) {
	legal := cards.MustParseCards("hJ s10 cA")
	tests := []struct {
		in      string
		want    cards.Card
		wantErr bool
	}{
		{"hJ", legal[0], false},
		{"2", legal[1], false},
		{"ka", legal[2], false},
		{"4", cards.Card{}, true},
		{"0", cards.Card{}, true},
		{"d7", cards.Card{}, true},
		{"zz", cards.Card{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseChoice(tt.in, legal)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBid(t *testing.T) {
	options := []game.Bid{game.SuitBid(cards.Hearts), game.PassBid}

	b, err := ParseBid("h", options)
	require.NoError(t, err)
	assert.Equal(t, game.SuitBid(cards.Hearts), b)

	b, err = ParseBid("pas", options)
	require.NoError(t, err)
	assert.Equal(t, game.PassBid, b)

	_, err = ParseBid("s", options)
	assert.ErrorIs(t, err, ErrNotAnOption)

	_, err = ParseBid("p", options[:1])
	assert.ErrorIs(t, err, ErrNotAnOption)
}

func TestReadCardRetries(t *testing.T) {
	var out bytes.Buffer
	r := NewReader(strings.NewReader("d7\nonzin\n2\n"), &out)
	c, err := r.ReadCard("> ", cards.MustParseCards("hJ s10"))
	require.NoError(t, err)
	assert.Equal(t, cards.Card{Suit: cards.Spades, Rank: cards.Ten}, c)
	assert.Equal(t, 2, strings.Count(out.String(), "Fout:"))
}

func TestReadBidEOF(t *testing.T) {
	r := NewReader(strings.NewReader("x\n"), io.Discard)
	_, err := r.ReadBid("> ", []game.Bid{game.PassBid})
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadYesNoAndInt(t *testing.T) {
	r := NewReader(strings.NewReader("ja\nn\n12\nelf\n"), io.Discard)
	yes, err := r.ReadYesNo("?")
	require.NoError(t, err)
	assert.True(t, yes)
	yes, err = r.ReadYesNo("?")
	require.NoError(t, err)
	assert.False(t, yes)

	n, err := r.ReadInt("?")
	require.NoError(t, err)
	assert.Equal(t, 12, n)
	_, err = r.ReadInt("?")
	assert.Error(t, err)
}

func TestFormatHand(t *testing.T) {
	got := FormatHand(cards.MustParseCards("s7 cA h9 c10 hJ"), cards.Hearts)
	assert.Equal(t, "♥J ♥9 ♣A ♣10 ♠7", got)
	got = FormatPlainHand(cards.MustParseCards("s7 cA h9 c10 hJ"))
	assert.Equal(t, "♣A ♣10 ♥J ♥9 ♠7", got)
}

func TestFormatTrick(t *testing.T) {
	trick := game.NewTrick(cards.Hearts)
	for i, c := range cards.MustParseCards("c7 c8 cK dA") {
		trick.Add(i, c)
	}
	assert.Equal(t, "P1:♣7 P2:♣8 P3:♣K P4:♦A  → speler 3 (15)", FormatTrick(trick))
}

func TestFormatOptionsAndBids(t *testing.T) {
	assert.Equal(t, "1:hJ  2:s10", FormatOptions(cards.MustParseCards("hJ s10")))
	assert.Equal(t, "h=♥  p=pas", FormatBids([]game.Bid{game.SuitBid(cards.Hearts), game.PassBid}))
}
