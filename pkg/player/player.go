// Package player implements the seats of a match: the ISMCTS-backed AI, a
// random player and a human relayed through a request channel.
package player

import (
	"context"
	"math"
	"math/rand"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"lukechampine.com/frand"

	"github.com/klaverjas-engine/pkg/cards"
	"github.com/klaverjas-engine/pkg/engine"
	"github.com/klaverjas-engine/pkg/game"
)

// Kind selects a Player implementation.
type Kind int

const (
	KindAI Kind = iota
	KindRandom
	KindHuman
)

// ErrUnknownKind is returned by New and ParseKind.
var ErrUnknownKind = errors.New("onbekend soort speler")

func (k Kind) String() string {
	switch k {
	case KindAI:
		return "ai"
	case KindRandom:
		return "random"
	case KindHuman:
		return "mens"
	}
	return "?"
}

func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ai", "engine":
		return KindAI, nil
	case "random", "willekeurig":
		return KindRandom, nil
	case "human", "mens":
		return KindHuman, nil
	}
	return 0, errors.Wrapf(ErrUnknownKind, "%q", s)
}

// Options configure the players built by New.
type Options struct {
	Config  engine.Config
	Weights Weights
	// Seed voor Random; 0 = willekeurig.
	Seed int64
}

func DefaultOptions() Options {
	return Options{Config: engine.DefaultConfig(), Weights: DefaultWeights()}
}

// New builds a player of the given kind.
func New(kind Kind, opts Options) (game.Player, error) {
	switch kind {
	case KindAI:
		return NewAI(opts.Config, opts.Weights), nil
	case KindRandom:
		return NewRandom(opts.Seed, opts.Weights), nil
	case KindHuman:
		return NewHuman(), nil
	}
	return nil, errors.Wrapf(ErrUnknownKind, "%d", kind)
}

// ---- AI ----

// AI zoekt zijn zetten met ISMCTS en biedt met de heuristiek.
type AI struct {
	solver  *engine.Solver[cards.Card]
	weights Weights
}

func NewAI(cfg engine.Config, w Weights) *AI {
	return &AI{solver: engine.NewSolver[cards.Card](cfg), weights: w}
}

func (a *AI) SelectBid(_ context.Context, req game.BidRequest) (game.Bid, error) {
	return ChooseBid(req, a.weights), nil
}

func (a *AI) SelectMove(ctx context.Context, seat int, gs *game.GameState, _ []cards.Card) (cards.Card, error) {
	move, eval, err := a.Evaluate(ctx, gs)
	if err != nil {
		return cards.Card{}, err
	}
	zerolog.Ctx(ctx).Debug().
		Int("seat", seat).
		Stringer("move", move).
		Float64("score", eval.Score).
		Int("visits", eval.Visits).
		Msg("ai speelt")
	return move, nil
}

// Evaluate runs the search for the player to move in gs; also used for hints.
func (a *AI) Evaluate(ctx context.Context, gs *game.GameState) (cards.Card, engine.MoveEval[cards.Card], error) {
	move, eval, err := a.solver.BestMove(ctx, gs)
	if err != nil {
		return cards.Card{}, eval, errors.Wrap(err, "ai zoektocht")
	}
	return move, eval, nil
}

// ---- Random ----

// Random speelt een willekeurige legale kaart.
type Random struct {
	mu      sync.Mutex
	rng     *rand.Rand
	weights Weights
}

func NewRandom(seed int64, w Weights) *Random {
	if seed == 0 {
		seed = int64(frand.Uint64n(math.MaxInt64))
	}
	return &Random{rng: rand.New(rand.NewSource(seed)), weights: w}
}

func (r *Random) SelectBid(_ context.Context, req game.BidRequest) (game.Bid, error) {
	return ChooseBid(req, r.weights), nil
}

func (r *Random) SelectMove(_ context.Context, _ int, _ *game.GameState, legal []cards.Card) (cards.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return legal[r.rng.Intn(len(legal))], nil
}
