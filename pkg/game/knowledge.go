package game

import "github.com/klaverjas-engine/pkg/cards"

// ConstraintSet houdt per kleur de hoogste rang bij die een speler nog kan
// hebben. Zolang er niets bekend is staat elke kleur op de top van zijn
// volgorde (aas, bij troef de boer). Een kleur verdwijnt zodra de speler
// aantoonbaar renonce is.
type ConstraintSet struct {
	max  [cards.NumSuits]cards.Rank
	void [cards.NumSuits]bool
}

// NewConstraintSet returns the "nothing known" constraints for a trump suit.
func NewConstraintSet(trump cards.Suit) ConstraintSet {
	var cs ConstraintSet
	for _, s := range cards.Suits() {
		cs.max[s] = cards.RankOrder(s == trump).Top()
	}
	return cs
}

// Max returns the highest rank the player may hold in s; false when void.
func (cs ConstraintSet) Max(s cards.Suit) (cards.Rank, bool) {
	if cs.void[s] {
		return 0, false
	}
	return cs.max[s], true
}

// Allows reports whether the player may hold c.
func (cs ConstraintSet) Allows(c cards.Card, trump cards.Suit) bool {
	if cs.void[c.Suit] {
		return false
	}
	order := cards.RankOrder(c.Suit == trump)
	return order[c.Rank] <= order[cs.max[c.Suit]]
}

// tightness is lower for a player we know more about.
func (cs ConstraintSet) tightness(trump cards.Suit) int {
	sum := 0
	for _, s := range cards.Suits() {
		if cs.void[s] {
			continue
		}
		sum += cards.RankOrder(s == trump)[cs.max[s]] + 1
	}
	return sum
}

// SetConstraint caps the highest rank player may hold in suit. Constraints
// only tighten; a looser cap or a cap on a void suit is ignored.
func (gs *GameState) SetConstraint(player int, suit cards.Suit, rank cards.Rank) {
	cs := &gs.constraints[player]
	if cs.void[suit] {
		return
	}
	order := cards.RankOrder(suit == gs.trump)
	if order[rank] < order[cs.max[suit]] {
		cs.max[suit] = rank
	}
}

// RemoveConstraint records that player holds no card of suit.
func (gs *GameState) RemoveConstraint(player int, suit cards.Suit) {
	gs.constraints[player].void[suit] = true
}

// Constraints returns the constraints known for player.
func (gs *GameState) Constraints(player int) ConstraintSet {
	return gs.constraints[player]
}

// SignalRecord is a signal a player gave through a discard.
type SignalRecord struct {
	Signal Signal
	Suit   cards.Suit
}

// Signals returns the signals player gave this round, oldest first.
func (gs *GameState) Signals(player int) []SignalRecord {
	out := make([]SignalRecord, len(gs.signals[player]))
	copy(out, gs.signals[player])
	return out
}

// inferConstraints leidt vóór het bijspelen af wat de zet over de hand
// verraadt. Alleen wat de spelregels afdwingen telt: renonce in de gevraagde
// kleur, geen troef als er verplicht getroefd moest worden, of geen hogere
// troef als er niet overgetroefd werd.
func (gs *GameState) inferConstraints(player int, card cards.Card) {
	trick := gs.CurrentTrick()
	if trick.IsEmpty() || gs.hands[player].Len() <= 1 {
		return
	}
	led := trick.SuitLed()
	winning := trick.WinningCard()

	if card.Suit == led {
		if led == gs.trump && !card.Beats(winning, cards.TrumpOrder) {
			gs.SetConstraint(player, gs.trump, winning.Rank)
		}
		return
	}

	gs.RemoveConstraint(player, led)
	if !gs.mustTrump(player, trick) {
		return
	}
	switch {
	case card.Suit != gs.trump:
		gs.RemoveConstraint(player, gs.trump)
	case winning.Suit == gs.trump && !card.Beats(winning, cards.TrumpOrder):
		gs.SetConstraint(player, gs.trump, winning.Rank)
	}
}

// mustTrump reports whether a player who cannot follow suit is obliged to
// trump. Under Amsterdam rules a winning partner lifts the obligation.
func (gs *GameState) mustTrump(player int, trick *Trick) bool {
	return !(gs.rule == Amsterdams && trick.Winner() == Partner(player))
}

// hint is how a signal biases the deal during determinisation.
type hint int

const (
	hintNone hint = iota
	hintPrefer
	hintAvoid
)

// signalHints turns the recorded signals of player into per-card preferences
// over the cards still unseen. Signals are never hard constraints: a random
// or careless player may discard anything.
func (gs *GameState) signalHints(player int, pool []cards.Card) map[cards.Card]hint {
	if len(gs.signals[player]) == 0 {
		return nil
	}
	unseen := cards.NewCardSet(pool)
	hints := map[cards.Card]hint{}
	for _, rec := range gs.signals[player] {
		order := cards.RankOrder(rec.Suit == gs.trump)
		switch rec.Signal {
		case High:
			if top, ok := unseen.HighestRank(rec.Suit, order); ok {
				hints[top] = hintPrefer
			}
		case Long:
			ten := cards.Card{Suit: rec.Suit, Rank: cards.Ten}
			if unseen.Contains(ten) {
				hints[ten] = hintPrefer
			}
			for _, r := range []cards.Rank{cards.King, cards.Queen, cards.Jack} {
				face := cards.Card{Suit: rec.Suit, Rank: r}
				if unseen.Contains(face) {
					hints[face] = hintPrefer
					break
				}
			}
		case Low:
			for _, r := range []cards.Rank{cards.Ace, cards.Ten} {
				c := cards.Card{Suit: rec.Suit, Rank: r}
				if unseen.Contains(c) && hints[c] != hintPrefer {
					hints[c] = hintAvoid
				}
			}
		}
	}
	return hints
}
