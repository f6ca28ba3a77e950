package game

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/pkg/errors"

	"github.com/klaverjas-engine/pkg/cards"
	"github.com/klaverjas-engine/pkg/engine"
)

const (
	// TricksPerRound is the number of tricks in a round; also the hand size.
	TricksPerRound = 8
)

var (
	// ErrInvalidDeal: er moeten precies vier handen van acht verschillende kaarten zijn.
	ErrInvalidDeal = errors.New("ongeldige deling: verwacht 4 handen van 8 kaarten")
	// ErrRoundInProgress is returned by Reset while the round is still running.
	ErrRoundInProgress = errors.New("ronde is nog niet afgelopen")
)

// TrumpRule decides whether you must trump when your partner is winning.
type TrumpRule int

const (
	// Rotterdams: altijd (over)troeven als je niet kunt bekennen.
	Rotterdams TrumpRule = iota
	// Amsterdams: niet verplicht troeven als je maat de slag heeft.
	Amsterdams
)

func (r TrumpRule) String() string {
	if r == Amsterdams {
		return "amsterdams"
	}
	return "rotterdams"
}

// ParseTrumpRule accepts "amsterdams"/"rotterdams" (and the short forms).
func ParseTrumpRule(s string) (TrumpRule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "amsterdams", "amsterdam", "a":
		return Amsterdams, nil
	case "rotterdams", "rotterdam", "r":
		return Rotterdams, nil
	}
	return Rotterdams, errors.Errorf("onbekende troefregel %q", s)
}

// GameState is the rules engine for one round: hands, tricks, scores and
// what every player has revealed about their hand.
type GameState struct {
	hands      [PlayersPerTrick]*cards.CardSet
	tricks     []*Trick
	trump      cards.Suit
	rule       TrumpRule
	current    int
	contractor int
	scores     [2]RoundScore
	march      bool

	constraints [PlayersPerTrick]ConstraintSet
	signals     [PlayersPerTrick][]SignalRecord
}

var _ engine.Game[cards.Card] = (*GameState)(nil)

// New starts a round. firstPlayer leads the first trick; contractor is the
// seat that chose trump.
func New(hands [][]cards.Card, firstPlayer, contractor int, rule TrumpRule, trump cards.Suit) (*GameState, error) {
	gs := &GameState{}
	if err := gs.start(hands, firstPlayer, contractor, rule, trump); err != nil {
		return nil, err
	}
	return gs, nil
}

func (gs *GameState) start(hands [][]cards.Card, firstPlayer, contractor int, rule TrumpRule, trump cards.Suit) error {
	if err := validateDeal(hands); err != nil {
		return err
	}
	if firstPlayer < 0 || firstPlayer >= PlayersPerTrick || contractor < 0 || contractor >= PlayersPerTrick {
		return errors.Wrapf(ErrInvalidDeal, "speler %d / aanvrager %d", firstPlayer, contractor)
	}
	*gs = GameState{
		trump:      trump,
		rule:       rule,
		current:    firstPlayer,
		contractor: contractor,
		march:      true,
		tricks:     make([]*Trick, 1, TricksPerRound),
	}
	gs.tricks[0] = NewTrick(trump)
	for p := range gs.hands {
		gs.hands[p] = cards.NewCardSet(hands[p])
		gs.constraints[p] = NewConstraintSet(trump)
	}
	return nil
}

func validateDeal(hands [][]cards.Card) error {
	if len(hands) != PlayersPerTrick {
		return errors.Wrapf(ErrInvalidDeal, "%d handen", len(hands))
	}
	seen := map[cards.Card]bool{}
	for p, h := range hands {
		if len(h) != TricksPerRound {
			return errors.Wrapf(ErrInvalidDeal, "speler %d heeft %d kaarten", p+1, len(h))
		}
		for _, c := range h {
			if seen[c] || c.Suit < cards.Clubs || c.Suit > cards.Spades || c.Rank < cards.Seven || c.Rank > cards.Ace {
				return errors.Wrapf(ErrInvalidDeal, "kaart %s", c)
			}
			seen[c] = true
		}
	}
	return nil
}

// Reset starts a new round on a finished engine. While a round is still in
// progress nothing changes and ErrRoundInProgress is returned.
func (gs *GameState) Reset(hands [][]cards.Card, firstPlayer, contractor int, trump cards.Suit) error {
	if !gs.IsFinished() {
		return ErrRoundInProgress
	}
	return gs.start(hands, firstPlayer, contractor, gs.rule, trump)
}

// Clone maakt een diepe kopie. Afgeronde slagen worden gedeeld: die
// veranderen niet meer.
func (gs *GameState) Clone() *GameState {
	c := *gs
	for p := range gs.hands {
		c.hands[p] = gs.hands[p].Clone()
		c.signals[p] = gs.signals[p][:len(gs.signals[p]):len(gs.signals[p])]
	}
	c.tricks = make([]*Trick, len(gs.tricks), TricksPerRound)
	copy(c.tricks, gs.tricks)
	last := len(c.tricks) - 1
	c.tricks[last] = gs.tricks[last].clone()
	return &c
}

// ---- Accessors ----

func (gs *GameState) CurrentPlayer() int   { return gs.current }
func (gs *GameState) Trump() cards.Suit    { return gs.trump }
func (gs *GameState) TrumpRule() TrumpRule { return gs.rule }
func (gs *GameState) Contractor() int      { return gs.contractor }

// Hand returns a copy of the cards player still holds.
func (gs *GameState) Hand(player int) []cards.Card { return gs.hands[player].Cards() }

func (gs *GameState) HandSize(player int) int { return gs.hands[player].Len() }

// CurrentTrick is the trick being played, or the last trick once finished.
func (gs *GameState) CurrentTrick() *Trick { return gs.tricks[len(gs.tricks)-1] }

// Tricks returns all tricks of the round so far.
func (gs *GameState) Tricks() []*Trick {
	out := make([]*Trick, len(gs.tricks))
	copy(out, gs.tricks)
	return out
}

// CardsPlayed returns every card on the table this round, in play order.
func (gs *GameState) CardsPlayed() []cards.Card {
	var out []cards.Card
	for _, t := range gs.tricks {
		out = append(out, t.cards...)
	}
	return out
}

// Scores returns the round score per team.
func (gs *GameState) Scores() [2]RoundScore { return gs.scores }

func (gs *GameState) IsFinished() bool {
	return len(gs.tricks) == TricksPerRound && gs.tricks[TricksPerRound-1].IsComplete()
}

// Result is de genormaliseerde teamscore (score / 162, begrensd op 1) voor
// het team van player, of -1 als de ronde nog loopt.
func (gs *GameState) Result(player int) float64 {
	if !gs.IsFinished() {
		return -1
	}
	r := float64(gs.scores[Team(player)].Sum()) / cards.TotalPoints
	return min(r, 1)
}

// ---- Moves ----

// ValidMoves returns the cards the current player may legally play. Het
// resultaat is leeg als de ronde voorbij is. Read-only.
func (gs *GameState) ValidMoves() []cards.Card {
	if gs.IsFinished() {
		return nil
	}
	hand := gs.hands[gs.current]
	minimum, ok := gs.minimumRank(gs.current, gs.CurrentTrick())
	if !ok {
		return hand.Cards()
	}
	moves := higherCards(hand, minimum, cards.RankOrder(minimum.Suit == gs.trump))
	if len(moves) == 0 {
		// Kan niet overtroeven: dan mag elke troef.
		moves = hand.SuitCards(gs.trump)
	}
	return moves
}

// minimumRank geeft de laagste kaart die de speler moet evenaren of
// overtreffen, of false als alles mag.
func (gs *GameState) minimumRank(player int, trick *Trick) (cards.Card, bool) {
	hand := gs.hands[player]
	if trick.IsEmpty() || hand.Len() <= 1 {
		return cards.Card{}, false
	}
	led := trick.SuitLed()
	winning := trick.WinningCard()
	if hand.ContainsSuit(led) {
		if led == gs.trump {
			return winning, true
		}
		return cards.Card{Suit: led, Rank: cards.Seven}, true
	}
	if !hand.ContainsSuit(gs.trump) || !gs.mustTrump(player, trick) {
		return cards.Card{}, false
	}
	if winning.Suit == gs.trump {
		return winning, true
	}
	return cards.Card{Suit: gs.trump, Rank: cards.Seven}, true
}

// higherCards returns the cards of minimum's suit ranking at least as high.
func higherCards(hand *cards.CardSet, minimum cards.Card, order cards.Order) []cards.Card {
	var out []cards.Card
	for _, c := range hand.SuitCards(minimum.Suit) {
		if order[c.Rank] >= order[minimum.Rank] {
			out = append(out, c)
		}
	}
	return out
}

// DoMove speelt card voor de huidige speler. De zet wordt niet
// gecontroleerd: dat doet de aanroeper met ValidMoves. Op een afgelopen
// ronde doet DoMove niets.
func (gs *GameState) DoMove(card cards.Card) {
	if gs.IsFinished() {
		return
	}
	player := gs.current
	gs.inferConstraints(player, card)

	trick := gs.CurrentTrick()
	trick.Add(player, card)
	gs.hands[player].Remove(card)

	if sig, suit := trick.CheckSignal(); sig != NoSignal {
		gs.signals[player] = append(gs.signals[player], SignalRecord{Signal: sig, Suit: suit})
	}

	gs.current = (gs.current + 1) % PlayersPerTrick
	if trick.IsComplete() {
		gs.finishTrick(trick)
	}
}

func (gs *GameState) finishTrick(trick *Trick) {
	winner := trick.Winner()
	team := Team(winner)
	gs.scores[team].Add(trick.Score())
	if team != Team(gs.contractor) {
		gs.march = false
	}
	gs.current = winner

	if len(gs.tricks) < TricksPerRound {
		gs.tricks = append(gs.tricks, NewTrick(gs.trump))
		return
	}
	gs.scores[team].Points += cards.LastTrickBonus
	gs.finishRound()
}

// finishRound past nat en pit toe. Nat: de aanvragers halen niet meer dan de
// tegenpartij; alles (ook roem) gaat naar de tegenpartij. Pit: alle slagen
// voor de aanvragers, +100.
func (gs *GameState) finishRound() {
	c := &gs.scores[Team(gs.contractor)]
	d := &gs.scores[1-Team(gs.contractor)]
	switch {
	case c.Sum() <= d.Sum():
		d.Add(c.Score)
		c.SetWet()
	case gs.march:
		c.March = true
		c.Points += 100
	}
}

// CloneAndRandomise returns a copy in which the hands observer cannot see are
// redealt consistently with everything observer has seen.
func (gs *GameState) CloneAndRandomise(observer int, rng *rand.Rand) engine.Game[cards.Card] {
	c := gs.Clone()
	c.determinise(observer, rng)
	return c
}

func (gs *GameState) StatusString() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Troef %s (%s) | Aanvrager: speler %d | Slag %d/%d\n",
		gs.trump, gs.rule, gs.contractor+1, len(gs.tricks), TricksPerRound)
	fmt.Fprintf(&sb, "Wij: %s | Zij: %s\n", gs.scores[0], gs.scores[1])
	if t := gs.CurrentTrick(); !t.IsEmpty() {
		fmt.Fprintf(&sb, "Op tafel: %s\n", t)
	}
	return sb.String()
}
