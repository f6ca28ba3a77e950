package game

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/klaverjas-engine/pkg/cards"
)

// Bid is een troefkeuze of passen.
type Bid struct {
	Suit cards.Suit
	Pass bool
}

// PassBid is "pas".
var PassBid = Bid{Pass: true}

// SuitBid elects s as trump.
func SuitBid(s cards.Suit) Bid { return Bid{Suit: s} }

func (b Bid) String() string {
	if b.Pass {
		return "pas"
	}
	return b.Suit.String()
}

// BidRule decides how trump is elected.
type BidRule int

const (
	// Official: iedereen mag een kleur kiezen of passen. Past iedereen, dan
	// moet de voorhand kiezen.
	Official BidRule = iota
	// Random: een willekeurige kleur wordt voorgesteld. Past iedereen, dan
	// kiest de voorhand een van de andere drie kleuren.
	Random
	// Twents: zoals Random, maar past iedereen dan wordt troef geloot.
	Twents
	// Utrechts: geen bieden, de voorhand moet meteen kiezen.
	Utrechts
)

func (r BidRule) String() string {
	switch r {
	case Official:
		return "officieel"
	case Random:
		return "willekeurig"
	case Twents:
		return "twents"
	case Utrechts:
		return "utrechts"
	}
	return "?"
}

func ParseBidRule(s string) (BidRule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "official", "officieel":
		return Official, nil
	case "random", "willekeurig":
		return Random, nil
	case "twents":
		return Twents, nil
	case "utrechts":
		return Utrechts, nil
	}
	return Official, errors.Errorf("onbekende biedregel %q", s)
}

// BidRequest is what a player sees when asked to bid.
type BidRequest struct {
	Seat    int
	Hand    []cards.Card
	Options []Bid
	// Forced: passen is geen optie.
	Forced bool
}

// ErrIllegalBid is returned when a player answers with a bid not on offer.
var ErrIllegalBid = errors.New("bod is geen optie")

func allSuitBids() []Bid {
	return []Bid{SuitBid(cards.Spades), SuitBid(cards.Hearts), SuitBid(cards.Diamonds), SuitBid(cards.Clubs)}
}

// bidding voert de biedronde uit en geeft de aanvrager en troef terug.
func (m *Match) bidding(ctx context.Context, hands [][]cards.Card, eldest int) (int, cards.Suit, error) {
	var options []Bid
	switch m.Rules.BidRule {
	case Official:
		options = append(allSuitBids(), PassBid)
	case Utrechts:
		bid, err := m.askBid(ctx, hands, eldest, allSuitBids())
		return eldest, bid.Suit, err
	case Random, Twents:
		proposal := cards.Clubs
		if m.round > 0 {
			proposal = cards.Suit(m.rng.Intn(cards.NumSuits))
		}
		options = []Bid{SuitBid(proposal), PassBid}
	}

	seat := eldest
	for i := 0; i < PlayersPerTrick; i++ {
		bid, err := m.askBid(ctx, hands, seat, options)
		if err != nil {
			return 0, 0, err
		}
		if !bid.Pass {
			return seat, bid.Suit, nil
		}
		seat = (seat + 1) % PlayersPerTrick
	}

	// Iedereen heeft gepast.
	var forced []Bid
	switch m.Rules.BidRule {
	case Twents:
		suit := cards.Suit(m.rng.Intn(cards.NumSuits))
		m.notify(Event{Kind: EventBid, Seat: eldest, Bid: SuitBid(suit)})
		return eldest, suit, nil
	case Official:
		forced = allSuitBids()
	case Random:
		for _, b := range allSuitBids() {
			if b.Suit != options[0].Suit {
				forced = append(forced, b)
			}
		}
	}
	bid, err := m.askBid(ctx, hands, eldest, forced)
	return eldest, bid.Suit, err
}

func (m *Match) askBid(ctx context.Context, hands [][]cards.Card, seat int, options []Bid) (Bid, error) {
	req := BidRequest{
		Seat:    seat,
		Hand:    append([]cards.Card(nil), hands[seat]...),
		Options: options,
		Forced:  !containsBid(options, PassBid),
	}
	bid, err := m.players[seat].SelectBid(ctx, req)
	if err != nil {
		return Bid{}, errors.WithMessagef(err, "bod van speler %d", seat+1)
	}
	if !containsBid(options, bid) {
		return Bid{}, errors.Wrapf(ErrIllegalBid, "speler %d: %s", seat+1, bid)
	}
	m.notify(Event{Kind: EventBid, Seat: seat, Bid: bid})
	return bid, nil
}

func containsBid(options []Bid, b Bid) bool {
	for _, o := range options {
		if o == b || (o.Pass && b.Pass) {
			return true
		}
	}
	return false
}
