package cards

import (
	"math/rand"
	"strings"

	"github.com/pkg/errors"
)

// Suit is een van de vier kleuren.
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// NumSuits is the number of suits in a Klaverjas deck.
const NumSuits = 4

// Suits returns the suits in their canonical order.
func Suits() []Suit { return []Suit{Clubs, Diamonds, Hearts, Spades} }

func (s Suit) String() string {
	switch s {
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	}
	return "?"
}

// Letter is de ASCII-notatie van de kleur, gebruikt bij invoer.
func (s Suit) Letter() string {
	switch s {
	case Clubs:
		return "c"
	case Diamonds:
		return "d"
	case Hearts:
		return "h"
	case Spades:
		return "s"
	}
	return "?"
}

// Rank follows the natural (bonus) order 7 < 8 < ... < A.
type Rank int

const (
	Seven Rank = iota
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// NumRanks is the number of ranks per suit.
const NumRanks = 8

// Ranks returns the ranks in natural order.
func Ranks() []Rank { return []Rank{Seven, Eight, Nine, Ten, Jack, Queen, King, Ace} }

func (r Rank) String() string {
	switch r {
	case Seven:
		return "7"
	case Eight:
		return "8"
	case Nine:
		return "9"
	case Ten:
		return "10"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	}
	return "?"
}

type Card struct {
	Suit Suit
	Rank Rank
}

func (c Card) String() string {
	return c.Suit.String() + c.Rank.String()
}

// Notation geeft de invoernotatie terug, bv. "hJ" of "s10".
func (c Card) Notation() string {
	return c.Suit.Letter() + c.Rank.String()
}

// Beats reports whether c outranks other under order. Cards of a different
// suit never beat each other; trumping is decided by the trick.
func (c Card) Beats(other Card, order Order) bool {
	return c.Suit == other.Suit && order[c.Rank] > order[other.Rank]
}

// Index maps a card onto 0..31, handy for bitsets and lookup tables.
func (c Card) Index() int { return int(c.Suit)*NumRanks + int(c.Rank) }

// ParseSuit accepteert de letter (c d h s, of Nederlands k r h s), de
// volledige naam of het symbool.
func ParseSuit(s string) (Suit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "c", "k", "clubs", "klaveren", "♣":
		return Clubs, nil
	case "d", "r", "diamonds", "ruiten", "♦":
		return Diamonds, nil
	case "h", "hearts", "harten", "♥":
		return Hearts, nil
	case "s", "spades", "schoppen", "♠":
		return Spades, nil
	}
	return 0, errors.Errorf("ongeldige kleur: %q", s)
}

// ParseCard parst een kaart in de vorm <kleur><rang>: "hJ", "s10", "cA", "d7".
// Kleur: c (klaveren) d (ruiten) h (harten) s (schoppen).
// Rang: 7 8 9 10 (of T/X) J Q K A. Hoofdletters maken niet uit.
func ParseCard(s string) (Card, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < 2 {
		return Card{}, errors.Errorf("ongeldige kaart: %q (verwacht bv. hJ, s10, cA)", s)
	}
	var c Card
	suit, err := ParseSuit(s[:1])
	if err != nil {
		return Card{}, errors.Wrapf(err, "kaart %q", s)
	}
	c.Suit = suit
	switch s[1:] {
	case "7":
		c.Rank = Seven
	case "8":
		c.Rank = Eight
	case "9":
		c.Rank = Nine
	case "10", "t", "x":
		c.Rank = Ten
	case "j", "b":
		c.Rank = Jack
	case "q", "v":
		c.Rank = Queen
	case "k", "h":
		c.Rank = King
	case "a":
		c.Rank = Ace
	default:
		return Card{}, errors.Errorf("ongeldige rang in %q", s)
	}
	return c, nil
}

// ParseCards parst kaarten gescheiden door komma's of spaties: "hJ,h9 cA".
func ParseCards(s string) ([]Card, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Fields(strings.ReplaceAll(s, ",", " "))
	result := make([]Card, 0, len(parts))
	for _, p := range parts {
		c, err := ParseCard(p)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, nil
}

// MustParseCards is ParseCards for literals in tests and tables.
func MustParseCards(s string) []Card {
	cc, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cc
}

// CardsToString formats a slice of cards
func CardsToString(cc []Card) string {
	parts := make([]string, len(cc))
	for i, c := range cc {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// ---- Deck ----

type Deck struct {
	Cards []Card
}

// NewDeck creates the 32-card piquet deck.
func NewDeck() *Deck {
	d := &Deck{Cards: make([]Card, 0, NumSuits*NumRanks)}
	for _, s := range Suits() {
		for _, r := range Ranks() {
			d.Cards = append(d.Cards, Card{Suit: s, Rank: r})
		}
	}
	return d
}

func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.Cards), func(i, j int) {
		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	})
}

// Deal deelt rondsgewijs uit; de rest van de stapel wordt teruggegeven.
func (d *Deck) Deal(numPlayers, cardsPerPlayer int) ([][]Card, []Card) {
	hands := make([][]Card, numPlayers)
	for i := range hands {
		hands[i] = make([]Card, 0, cardsPerPlayer)
	}
	idx := 0
	for c := 0; c < cardsPerPlayer; c++ {
		for p := 0; p < numPlayers; p++ {
			if idx < len(d.Cards) {
				hands[p] = append(hands[p], d.Cards[idx])
				idx++
			}
		}
	}
	return hands, d.Cards[idx:]
}
