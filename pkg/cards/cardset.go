package cards

import "sort"

// SortingMap gives the rank order used per suit when sorting or counting runs.
// Usually built with NewSortingMap so the trump suit gets TrumpOrder.
type SortingMap [NumSuits]Order

// NewSortingMap uses TrumpOrder for the trump suit and PlainOrder elsewhere.
func NewSortingMap(trump Suit) SortingMap {
	var m SortingMap
	for _, s := range Suits() {
		m[s] = RankOrder(s == trump)
	}
	return m
}

// UniformSortingMap applies the same order to every suit.
func UniformSortingMap(o Order) SortingMap {
	return SortingMap{o, o, o, o}
}

// CardSet is een geordende verzameling kaarten met een index per kleur.
// De index wordt bij elke Append/Remove bijgewerkt.
type CardSet struct {
	cards  []Card
	bySuit [NumSuits][]Card
}

func NewCardSet(cc []Card) *CardSet {
	cs := &CardSet{cards: make([]Card, 0, len(cc))}
	for _, c := range cc {
		cs.Append(c)
	}
	return cs
}

func (cs *CardSet) Len() int      { return len(cs.cards) }
func (cs *CardSet) IsEmpty() bool { return len(cs.cards) == 0 }

// Cards returns a copy of the cards in their current order.
func (cs *CardSet) Cards() []Card {
	out := make([]Card, len(cs.cards))
	copy(out, cs.cards)
	return out
}

func (cs *CardSet) Append(c Card) {
	cs.cards = append(cs.cards, c)
	cs.bySuit[c.Suit] = append(cs.bySuit[c.Suit], c)
}

// Remove removes c and reports whether it was present.
func (cs *CardSet) Remove(c Card) bool {
	i := indexOf(cs.cards, c)
	if i < 0 {
		return false
	}
	cs.cards = append(cs.cards[:i], cs.cards[i+1:]...)
	suit := cs.bySuit[c.Suit]
	j := indexOf(suit, c)
	cs.bySuit[c.Suit] = append(suit[:j], suit[j+1:]...)
	return true
}

func (cs *CardSet) Contains(c Card) bool {
	return indexOf(cs.bySuit[c.Suit], c) >= 0
}

func (cs *CardSet) ContainsSuit(s Suit) bool {
	return len(cs.bySuit[s]) > 0
}

// SuitCards returns a copy of the cards of suit s.
func (cs *CardSet) SuitCards(s Suit) []Card {
	out := make([]Card, len(cs.bySuit[s]))
	copy(out, cs.bySuit[s])
	return out
}

// CardsPerSuit counts cards per suit.
func (cs *CardSet) CardsPerSuit() [NumSuits]int {
	var n [NumSuits]int
	for s := range cs.bySuit {
		n[s] = len(cs.bySuit[s])
	}
	return n
}

// Runs geeft per kleur de lengte van de ononderbroken reeks vanaf de hoogste
// rang in de volgorde van m. Met A, 10 en H in een gewone kleur is dat 3;
// zonder aas is het 0.
func (cs *CardSet) Runs(m SortingMap) [NumSuits]int {
	var runs [NumSuits]int
	for s := range cs.bySuit {
		var held [NumRanks]bool
		for _, c := range cs.bySuit[s] {
			held[c.Rank] = true
		}
		for _, r := range m[s].Ranked() {
			if !held[r] {
				break
			}
			runs[s]++
		}
	}
	return runs
}

// MaxRunLengths returns the longest run of consecutive ranks per suit under m,
// wherever in the order it sits.
func (cs *CardSet) MaxRunLengths(m SortingMap) [NumSuits]int {
	var runs [NumSuits]int
	for s := range cs.bySuit {
		var held [NumRanks]bool
		for _, c := range cs.bySuit[s] {
			held[m[s][c.Rank]] = true
		}
		cur := 0
		for _, h := range held {
			if h {
				cur++
				if cur > runs[s] {
					runs[s] = cur
				}
			} else {
				cur = 0
			}
		}
	}
	return runs
}

// Score is the face value of the set with trump as trump suit.
func (cs *CardSet) Score(trump Suit) int {
	total := 0
	for _, c := range cs.cards {
		total += c.Value(trump)
	}
	return total
}

// HighestRank returns the strongest card of suit s under o.
func (cs *CardSet) HighestRank(s Suit, o Order) (Card, bool) {
	var best Card
	found := false
	for _, c := range cs.bySuit[s] {
		if !found || c.Beats(best, o) {
			best = c
			found = true
		}
	}
	return best, found
}

// SortAll sorteert stabiel: eerst op kleur volgens suitOrder, daarna
// aflopend op rang volgens m.
func (cs *CardSet) SortAll(m SortingMap, suitOrder []Suit) {
	pos := [NumSuits]int{}
	for i := range pos {
		pos[i] = len(suitOrder) + i
	}
	for i, s := range suitOrder {
		pos[s] = i
	}
	sort.SliceStable(cs.cards, func(i, j int) bool {
		a, b := cs.cards[i], cs.cards[j]
		if a.Suit != b.Suit {
			return pos[a.Suit] < pos[b.Suit]
		}
		return m[a.Suit][a.Rank] > m[b.Suit][b.Rank]
	})
	for s := range cs.bySuit {
		suit := cs.bySuit[s]
		sort.SliceStable(suit, func(i, j int) bool {
			return m[s][suit[i].Rank] > m[s][suit[j].Rank]
		})
	}
}

func (cs *CardSet) Clone() *CardSet {
	out := &CardSet{cards: make([]Card, len(cs.cards))}
	copy(out.cards, cs.cards)
	for s := range cs.bySuit {
		out.bySuit[s] = make([]Card, len(cs.bySuit[s]))
		copy(out.bySuit[s], cs.bySuit[s])
	}
	return out
}

func (cs *CardSet) String() string {
	return CardsToString(cs.cards)
}

func indexOf(cc []Card, c Card) int {
	for i, x := range cc {
		if x == c {
			return i
		}
	}
	return -1
}
