package player

import (
	"github.com/klaverjas-engine/pkg/cards"
	"github.com/klaverjas-engine/pkg/game"
)

// HandStrength schat per troefoptie hoeveel punten de hand zeker kan halen:
// de waarde van de ononderbroken reeks vanaf de hoogste kaart in elke kleur,
// met de optie als troef.
func HandStrength(hand []cards.Card, options []cards.Suit, w Weights) map[cards.Suit]float64 {
	set := cards.NewCardSet(hand)
	counts := set.CardsPerSuit()
	strength := make(map[cards.Suit]float64, len(options))
	for _, trump := range options {
		sorting := cards.NewSortingMap(trump)
		runs := set.Runs(sorting)
		total := 0.0
		for _, s := range cards.Suits() {
			values := cards.CardValues(s == trump)
			for _, r := range sorting[s].Ranked()[:runs[s]] {
				total += float64(values[r])
			}
		}
		total += w.TrumpLengthBonus * float64(counts[trump])
		strength[trump] = total
	}
	return strength
}

// ChooseBid kiest een bod:
//   - sterkte boven StrongHand: die kleur (bij gelijkstand de langste)
//   - anders een kleur met sterkte >= MinStrength en meer dan MinTrumpCount kaarten
//   - anders passen, of de sterkste kleur als passen niet mag
func ChooseBid(req game.BidRequest, w Weights) game.Bid {
	var suits []cards.Suit
	canPass := false
	for _, b := range req.Options {
		if b.Pass {
			canPass = true
		} else {
			suits = append(suits, b.Suit)
		}
	}
	if len(suits) == 0 {
		return game.PassBid
	}

	strength := HandStrength(req.Hand, suits, w)
	counts := cards.NewCardSet(req.Hand).CardsPerSuit()

	best := suits[0]
	for _, s := range suits[1:] {
		if strength[s] > strength[best] {
			best = s
		}
	}

	if strength[best] > w.StrongHand {
		pick := best
		for _, s := range suits {
			if strength[s] == strength[best] && counts[s] > counts[pick] {
				pick = s
			}
		}
		return game.SuitBid(pick)
	}

	found := false
	var long cards.Suit
	for _, s := range suits {
		if strength[s] >= w.MinStrength && float64(counts[s]) > w.MinTrumpCount {
			if !found || counts[s] > counts[long] {
				long, found = s, true
			}
		}
	}
	switch {
	case found:
		return game.SuitBid(long)
	case canPass:
		return game.PassBid
	}
	return game.SuitBid(best)
}
