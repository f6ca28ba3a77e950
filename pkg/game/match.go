package game

import (
	"context"
	"math"
	"math/rand"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"lukechampine.com/frand"

	"github.com/klaverjas-engine/pkg/cards"
)

// DefaultRounds is het aantal rondes in een partij.
const DefaultRounds = 16

// ErrIllegalMove is returned when a player answers with a card outside
// ValidMoves.
var ErrIllegalMove = errors.New("kaart mag niet gespeeld worden")

// Player is the capability every seat provides. Implementations live in
// package player: AI (zoekt met ISMCTS), Random en Human.
type Player interface {
	SelectBid(ctx context.Context, req BidRequest) (Bid, error)
	// SelectMove must not modify gs; legal is never empty.
	SelectMove(ctx context.Context, seat int, gs *GameState, legal []cards.Card) (cards.Card, error)
}

// Rules are the house rules of a match.
type Rules struct {
	TrumpRule TrumpRule
	BidRule   BidRule
	Rounds    int
}

func DefaultRules() Rules {
	return Rules{TrumpRule: Rotterdams, BidRule: Official, Rounds: DefaultRounds}
}

// EventKind tells what happened in an Event.
type EventKind int

const (
	EventBid EventKind = iota
	EventRoundStarted
	EventCardPlayed
	EventTrickCompleted
	EventRoundCompleted
)

// Event is delivered synchronously to Match.Notify. Only the fields relevant
// for the kind are set.
type Event struct {
	Kind  EventKind
	Round int
	Seat  int
	Bid   Bid
	Card  cards.Card
	Trick *Trick
	// Result is set for EventRoundCompleted.
	Result *RoundResult
	// State is the engine of the round; read-only for the receiver.
	State *GameState
}

// RoundResult is the outcome of one round.
type RoundResult struct {
	Round      int
	Contractor int
	Trump      cards.Suit
	Scores     [2]RoundScore
}

// Match speelt een partij van Rules.Rounds rondes tussen vier spelers. Team 0
// is stoel 0 en 2, team 1 stoel 1 en 3.
type Match struct {
	ID     uuid.UUID
	Rules  Rules
	Notify func(Event)

	players [PlayersPerTrick]Player
	rng     *rand.Rand
	dealer  int
	round   int
	totals  [2]int
	history []RoundResult
}

// NewMatch maakt een partij. Met seed 0 wordt er willekeurig geschud.
func NewMatch(players [PlayersPerTrick]Player, rules Rules, seed int64) *Match {
	if seed == 0 {
		seed = int64(frand.Uint64n(math.MaxInt64))
	}
	if rules.Rounds <= 0 {
		rules.Rounds = DefaultRounds
	}
	return &Match{
		ID:      uuid.New(),
		Rules:   rules,
		players: players,
		rng:     rand.New(rand.NewSource(seed)),
		dealer:  PlayersPerTrick - 1,
	}
}

// Totals returns the cumulative score per team.
func (m *Match) Totals() [2]int { return m.totals }

// History returns the results of the rounds played so far.
func (m *Match) History() []RoundResult {
	out := make([]RoundResult, len(m.history))
	copy(out, m.history)
	return out
}

// Round is the number of rounds played.
func (m *Match) Round() int { return m.round }

func (m *Match) IsFinished() bool { return m.round >= m.Rules.Rounds }

// Play speelt alle resterende rondes.
func (m *Match) Play(ctx context.Context) ([2]int, error) {
	for !m.IsFinished() {
		if _, err := m.PlayRound(ctx); err != nil {
			return m.totals, err
		}
	}
	zerolog.Ctx(ctx).Info().
		Str("match", m.ID.String()).
		Int("wij", m.totals[0]).
		Int("zij", m.totals[1]).
		Msg("partij afgelopen")
	return m.totals, nil
}

// PlayRound deelt, laat bieden en speelt acht slagen.
func (m *Match) PlayRound(ctx context.Context) (RoundResult, error) {
	logger := zerolog.Ctx(ctx).With().Str("match", m.ID.String()).Int("round", m.round).Logger()

	deck := cards.NewDeck()
	deck.Shuffle(m.rng)
	hands, _ := deck.Deal(PlayersPerTrick, TricksPerRound)
	eldest := (m.dealer + 1) % PlayersPerTrick

	contractor, trump, err := m.bidding(ctx, hands, eldest)
	if err != nil {
		return RoundResult{}, err
	}
	gs, err := New(hands, eldest, contractor, m.Rules.TrumpRule, trump)
	if err != nil {
		return RoundResult{}, err
	}
	logger.Debug().Int("contractor", contractor).Stringer("trump", trump).Msg("troef gekozen")
	m.notify(Event{Kind: EventRoundStarted, Round: m.round, Seat: contractor, State: gs})

	for !gs.IsFinished() {
		if err := ctx.Err(); err != nil {
			return RoundResult{}, err
		}
		seat := gs.CurrentPlayer()
		legal := gs.ValidMoves()
		card, err := m.players[seat].SelectMove(ctx, seat, gs, legal)
		if err != nil {
			return RoundResult{}, errors.WithMessagef(err, "zet van speler %d", seat+1)
		}
		if !containsCard(legal, card) {
			return RoundResult{}, errors.Wrapf(ErrIllegalMove, "speler %d: %s", seat+1, card)
		}
		trick := gs.CurrentTrick()
		gs.DoMove(card)
		m.notify(Event{Kind: EventCardPlayed, Round: m.round, Seat: seat, Card: card, State: gs})
		if trick.IsComplete() {
			m.notify(Event{Kind: EventTrickCompleted, Round: m.round, Seat: trick.Winner(), Trick: trick, State: gs})
		}
	}

	res := RoundResult{Round: m.round, Contractor: contractor, Trump: trump, Scores: gs.Scores()}
	for t := range m.totals {
		m.totals[t] += res.Scores[t].Sum()
	}
	m.history = append(m.history, res)
	m.notify(Event{Kind: EventRoundCompleted, Round: m.round, Result: &res, State: gs})
	logger.Info().
		Stringer("wij", res.Scores[0]).
		Stringer("zij", res.Scores[1]).
		Int("totaal_wij", m.totals[0]).
		Int("totaal_zij", m.totals[1]).
		Msg("ronde gespeeld")

	m.round++
	m.dealer = (m.dealer + 1) % PlayersPerTrick
	return res, nil
}

func (m *Match) notify(e Event) {
	if m.Notify != nil {
		e.Round = m.round
		m.Notify(e)
	}
}

func containsCard(cc []cards.Card, c cards.Card) bool {
	for _, x := range cc {
		if x == c {
			return true
		}
	}
	return false
}
