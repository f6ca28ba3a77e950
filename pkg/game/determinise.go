package game

import (
	"math/rand"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/klaverjas-engine/pkg/cards"
)

// maxDealAttempts is how many shuffled greedy deals are tried before the
// exhaustive search takes over.
const maxDealAttempts = 1000

type deal [PlayersPerTrick][]cards.Card

// determinise verdeelt de kaarten die observer niet kan zien opnieuw over
// de andere drie spelers. Elke speler houdt zijn aantal kaarten en krijgt
// alleen kaarten die zijn constraints toelaten.
//
// Tier-systeem per speler, net als bij het raden van handen:
//
//	tier1 = kaarten waar een signaal naar wijst
//	tier2 = de gewone pool
//	tier3 = kaarten die een laag-signaal ontkent, enkel als noodoplossing
func (gs *GameState) determinise(observer int, rng *rand.Rand) {
	var seats []int
	var pool []cards.Card
	for p := range gs.hands {
		if p == observer {
			continue
		}
		seats = append(seats, p)
		pool = append(pool, gs.hands[p].Cards()...)
	}
	if len(pool) == 0 {
		return
	}

	// Meest beperkte speler eerst.
	sort.SliceStable(seats, func(i, j int) bool {
		return gs.constraints[seats[i]].tightness(gs.trump) < gs.constraints[seats[j]].tightness(gs.trump)
	})

	var hints [PlayersPerTrick]map[cards.Card]hint
	for _, p := range seats {
		hints[p] = gs.signalHints(p, pool)
	}

	for attempt := 0; attempt < maxDealAttempts; attempt++ {
		rng.Shuffle(len(pool), func(i, j int) {
			pool[i], pool[j] = pool[j], pool[i]
		})
		if d, ok := gs.greedyDeal(pool, seats, hints); ok {
			gs.applyDeal(d, seats)
			return
		}
	}

	if d, ok := gs.exactDeal(pool, seats); ok {
		gs.applyDeal(d, seats)
		return
	}
	log.Panic().
		Int("observer", observer).
		Int("pool", len(pool)).
		Msg("determinisatie: geen deling voldoet aan de constraints")
}

func (gs *GameState) greedyDeal(pool []cards.Card, seats []int, hints [PlayersPerTrick]map[cards.Card]hint) (deal, bool) {
	var d deal
	used := make([]bool, len(pool))
	for _, p := range seats {
		need := gs.hands[p].Len()
		var tier1, tier2, tier3 []int
		for i, c := range pool {
			if used[i] || !gs.constraints[p].Allows(c, gs.trump) {
				continue
			}
			switch hints[p][c] {
			case hintPrefer:
				tier1 = append(tier1, i)
			case hintAvoid:
				tier3 = append(tier3, i)
			default:
				tier2 = append(tier2, i)
			}
		}
		ordered := append(append(tier1, tier2...), tier3...)
		if len(ordered) < need {
			return d, false
		}
		d[p] = make([]cards.Card, need)
		for k := 0; k < need; k++ {
			d[p][k] = pool[ordered[k]]
			used[ordered[k]] = true
		}
	}
	return d, true
}

// exactDeal zoekt met backtracking naar een geldige deling. Kaarten met de
// minste kandidaten worden eerst geplaatst.
func (gs *GameState) exactDeal(pool []cards.Card, seats []int) (deal, bool) {
	type option struct {
		card  cards.Card
		seats []int
	}
	opts := make([]option, 0, len(pool))
	for _, c := range pool {
		o := option{card: c}
		for _, p := range seats {
			if gs.constraints[p].Allows(c, gs.trump) {
				o.seats = append(o.seats, p)
			}
		}
		if len(o.seats) == 0 {
			return deal{}, false
		}
		opts = append(opts, o)
	}
	sort.SliceStable(opts, func(i, j int) bool { return len(opts[i].seats) < len(opts[j].seats) })

	var d deal
	var room [PlayersPerTrick]int
	for _, p := range seats {
		room[p] = gs.hands[p].Len()
	}
	var place func(i int) bool
	place = func(i int) bool {
		if i == len(opts) {
			return true
		}
		for _, p := range opts[i].seats {
			if room[p] == 0 {
				continue
			}
			room[p]--
			d[p] = append(d[p], opts[i].card)
			if place(i + 1) {
				return true
			}
			room[p]++
			d[p] = d[p][:len(d[p])-1]
		}
		return false
	}
	return d, place(0)
}

func (gs *GameState) applyDeal(d deal, seats []int) {
	for _, p := range seats {
		gs.hands[p] = cards.NewCardSet(d[p])
	}
}
