package game

import (
	"fmt"
	"strings"

	"github.com/klaverjas-engine/pkg/cards"
)

// PlayersPerTrick is both the number of seats and the size of a full trick.
const PlayersPerTrick = 4

// Signal is a partner signal read from a discard while the partner wins.
type Signal int

const (
	NoSignal Signal = iota
	// High: de speler heeft de hoogste kaart in die kleur.
	High
	// Low: niets van waarde in die kleur.
	Low
	// Long: de tien en nog een beeld in die kleur.
	Long
)

func (s Signal) String() string {
	switch s {
	case High:
		return "hoog"
	case Low:
		return "laag"
	case Long:
		return "lang"
	}
	return "geen"
}

// Trick is one slag: up to four (player, card) pairs with the running winner.
type Trick struct {
	trump   cards.Suit
	cards   []cards.Card
	players []int
	points  int
	winner  int
	winning cards.Card
}

func NewTrick(trump cards.Suit) *Trick {
	return &Trick{
		trump:   trump,
		cards:   make([]cards.Card, 0, PlayersPerTrick),
		players: make([]int, 0, PlayersPerTrick),
		winner:  -1,
	}
}

// Add speelt card voor player bij. De winnaar wordt direct bijgewerkt:
// troef wint van niet-troef, binnen dezelfde kleur wint de hogere rang.
func (t *Trick) Add(player int, card cards.Card) {
	t.points += card.Value(t.trump)
	if len(t.cards) == 0 || t.beatsWinner(card) {
		t.winner = player
		t.winning = card
	}
	t.cards = append(t.cards, card)
	t.players = append(t.players, player)
}

func (t *Trick) beatsWinner(card cards.Card) bool {
	if card.Suit == t.trump && t.winning.Suit != t.trump {
		return true
	}
	return card.Beats(t.winning, cards.RankOrder(card.Suit == t.trump))
}

func (t *Trick) Len() int          { return len(t.cards) }
func (t *Trick) IsEmpty() bool     { return len(t.cards) == 0 }
func (t *Trick) IsComplete() bool  { return len(t.cards) == PlayersPerTrick }
func (t *Trick) Trump() cards.Suit { return t.trump }

// Winner is the seat currently taking the trick, -1 while empty.
func (t *Trick) Winner() int { return t.winner }

func (t *Trick) WinningCard() cards.Card { return t.winning }

// SuitLed is the suit of the first card. Only meaningful when not empty.
func (t *Trick) SuitLed() cards.Suit {
	if len(t.cards) == 0 {
		return t.trump
	}
	return t.cards[0].Suit
}

func (t *Trick) Cards() []cards.Card {
	out := make([]cards.Card, len(t.cards))
	copy(out, t.cards)
	return out
}

func (t *Trick) Players() []int {
	out := make([]int, len(t.players))
	copy(out, t.players)
	return out
}

// Leader is the seat that opened the trick, -1 while empty.
func (t *Trick) Leader() int {
	if len(t.players) == 0 {
		return -1
	}
	return t.players[0]
}

// Score geeft de kaartpunten en, voor een volle slag, de roem.
func (t *Trick) Score() Score {
	s := Score{Points: t.points}
	if t.IsComplete() {
		s.Bonus = t.bonus()
	}
	return s
}

// bonus telt roem:
//
//	drie op een rij +20, vier op een rij +50
//	stuk (troef heer + vrouw) +20
//	vier gelijke kaarten +100, vier boeren +200 (alleen zonder reeks)
func (t *Trick) bonus() int {
	set := cards.NewCardSet(t.cards)
	longest := 0
	for _, n := range set.MaxRunLengths(cards.UniformSortingMap(cards.BonusOrder)) {
		longest = max(longest, n)
	}

	bonus := 0
	if longest >= 3 {
		bonus += 20
	}
	if longest >= 4 {
		bonus += 30
	}
	if set.Contains(cards.Card{Suit: t.trump, Rank: cards.King}) &&
		set.Contains(cards.Card{Suit: t.trump, Rank: cards.Queen}) {
		bonus += 20
	}
	if longest < 3 && t.sameRank() {
		if t.cards[0].Rank == cards.Jack {
			bonus += 200
		} else {
			bonus += 100
		}
	}
	return bonus
}

func (t *Trick) sameRank() bool {
	for _, c := range t.cards[1:] {
		if c.Rank != t.cards[0].Rank {
			return false
		}
	}
	return true
}

// CheckSignal inspects the card just played. When the partner of its player
// (two seats back) is winning and the card neither follows suit nor is trump,
// the card is a signal: 7/8/9 high, J/Q/K low, A long.
func (t *Trick) CheckSignal() (Signal, cards.Suit) {
	n := len(t.cards)
	if n < 3 {
		return NoSignal, 0
	}
	last := t.cards[n-1]
	if t.players[n-3] != t.winner || last.Suit == t.SuitLed() || last.Suit == t.trump {
		return NoSignal, 0
	}
	switch last.Rank {
	case cards.Seven, cards.Eight, cards.Nine:
		return High, last.Suit
	case cards.Jack, cards.Queen, cards.King:
		return Low, last.Suit
	case cards.Ace:
		return Long, last.Suit
	}
	return NoSignal, 0
}

func (t *Trick) clone() *Trick {
	out := *t
	out.cards = make([]cards.Card, len(t.cards), PlayersPerTrick)
	copy(out.cards, t.cards)
	out.players = make([]int, len(t.players), PlayersPerTrick)
	copy(out.players, t.players)
	return &out
}

func (t *Trick) String() string {
	parts := make([]string, len(t.cards))
	for i, c := range t.cards {
		parts[i] = fmt.Sprintf("P%d:%s", t.players[i]+1, c)
	}
	return strings.Join(parts, " ")
}
