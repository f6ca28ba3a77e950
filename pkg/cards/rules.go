package cards

// Order maps a rank onto its strength position; a higher position wins.
type Order [NumRanks]int

var (
	// PlainOrder: 7 < 8 < 9 < J < Q < K < 10 < A
	PlainOrder = Order{Seven: 0, Eight: 1, Nine: 2, Jack: 3, Queen: 4, King: 5, Ten: 6, Ace: 7}
	// TrumpOrder: 7 < 8 < Q < K < 10 < A < 9 < J
	TrumpOrder = Order{Seven: 0, Eight: 1, Queen: 2, King: 3, Ten: 4, Ace: 5, Nine: 6, Jack: 7}
	// BonusOrder is de natuurlijke volgorde waarin roem (reeksen) geteld wordt.
	BonusOrder = Order{Seven: 0, Eight: 1, Nine: 2, Ten: 3, Jack: 4, Queen: 5, King: 6, Ace: 7}
)

// Values maps a rank onto its face value in points.
type Values [NumRanks]int

var (
	PlainValues = Values{Ace: 11, Ten: 10, King: 4, Queen: 3, Jack: 2}
	TrumpValues = Values{Jack: 20, Nine: 14, Ace: 11, Ten: 10, King: 4, Queen: 3}
)

const (
	// TotalPoints is the face value of the whole deck plus the stock for the
	// last trick.
	TotalPoints = 162
	// LastTrickBonus ("stok") goes to whoever wins the eighth trick.
	LastTrickBonus = 10
)

// RankOrder returns TrumpOrder for trump cards and PlainOrder otherwise.
func RankOrder(isTrump bool) Order {
	if isTrump {
		return TrumpOrder
	}
	return PlainOrder
}

// CardValues returns TrumpValues for trump cards and PlainValues otherwise.
func CardValues(isTrump bool) Values {
	if isTrump {
		return TrumpValues
	}
	return PlainValues
}

// Value is the face value of c when trump is the trump suit.
func (c Card) Value(trump Suit) int {
	return CardValues(c.Suit == trump)[c.Rank]
}

// Ranked returns the ranks sorted from strongest to weakest under o.
func (o Order) Ranked() []Rank {
	out := make([]Rank, NumRanks)
	for r, pos := range o {
		out[NumRanks-1-pos] = Rank(r)
	}
	return out
}

// Top is the strongest rank under o.
func (o Order) Top() Rank {
	return o.Ranked()[0]
}
