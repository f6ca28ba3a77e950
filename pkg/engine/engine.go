package engine

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ErrNoValidMoves is returned when asked to search a finished game.
var ErrNoValidMoves = errors.New("geen legale zetten")

// Solver is an Information Set Monte Carlo Tree Search. Every iteration
// samples a determinisation of the root, walks the shared tree with UCB,
// expands one node, plays out at random and backpropagates the result.
type Solver[M comparable] struct {
	Config Config

	mu  sync.Mutex
	rng *rand.Rand
}

func NewSolver[M comparable](cfg Config) *Solver[M] {
	return &Solver[M]{
		Config: cfg,
		rng:    rand.New(rand.NewSource(cfg.seed())),
	}
}

// MoveEval contains the engine's evaluation of the best move
type MoveEval[M comparable] struct {
	Score      float64 // gemiddelde genormaliseerde score [0, 1]
	Visits     int
	Iterations int
	Details    []MoveDetail[M] // alle kandidaat-zetten, meest bezocht eerst
}

func (me MoveEval[M]) String() string {
	return fmt.Sprintf("Score: %.1f%% (%d/%d visits)", me.Score*100, me.Visits, me.Iterations)
}

type MoveDetail[M comparable] struct {
	Move    M
	WinRate float64
	Visits  int
}

func (md MoveDetail[M]) String() string {
	return fmt.Sprintf("  %v -> %.1f%% (%d visits)", md.Move, md.WinRate*100, md.Visits)
}

// BestMove zoekt de beste zet voor de speler aan zet in root.
//
// Config.NumWorkers goroutines delen één boom en samen Config.Iterations
// iteraties. Als ctx afloopt stopt het zoeken en telt wat er tot dan toe
// gevonden is. De meest bezochte zet wint.
func (s *Solver[M]) BestMove(ctx context.Context, root Game[M]) (M, MoveEval[M], error) {
	var zero M
	legal := root.ValidMoves()
	switch len(legal) {
	case 0:
		return zero, MoveEval[M]{}, ErrNoValidMoves
	case 1:
		// Eén legale zet: niets te zoeken.
		return legal[0], MoveEval[M]{Visits: 1, Details: []MoveDetail[M]{{Move: legal[0], Visits: 1}}}, nil
	}

	workers := s.Config.NumWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	// Seeds sequentieel genereren: enkel deze goroutine raakt s.rng aan.
	s.mu.Lock()
	seeds := make([]int64, workers)
	for i := range seeds {
		seeds[i] = s.rng.Int63()
	}
	s.mu.Unlock()

	start := time.Now()
	tree := NewTree[M]()
	var done atomic.Int64
	var next atomic.Int64
	observer := root.CurrentPlayer()

	g := errgroup.Group{}
	for w := 0; w < workers; w++ {
		rng := rand.New(rand.NewSource(seeds[w]))
		g.Go(func() error {
			for next.Add(1) <= int64(s.Config.Iterations) {
				if ctx.Err() != nil {
					return nil
				}
				s.iterate(tree, root, observer, rng)
				done.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return zero, MoveEval[M]{}, err
	}

	best, eval := pickBest(tree)
	eval.Iterations = int(done.Load())
	if len(eval.Details) == 0 {
		// Geannuleerd vóór de eerste iteratie.
		best = legal[0]
	}

	zerolog.Ctx(ctx).Debug().
		Int("iterations", eval.Iterations).
		Int("workers", workers).
		Int("nodes", tree.Len()).
		Dur("elapsed", time.Since(start)).
		Str("best", fmt.Sprint(best)).
		Float64("score", eval.Score).
		Msg("ismcts-zoektocht klaar")
	return best, eval, nil
}

// iterate is één ISMCTS-iteratie.
func (s *Solver[M]) iterate(tree *Tree[M], root Game[M], observer int, rng *rand.Rand) {
	// 1. Determiniseer
	state := root.CloneAndRandomise(observer, rng)
	node := RootID
	var path []NodeID

	// 2. Selecteer zolang alle legale zetten al een kind hebben
	for {
		legal := state.ValidMoves()
		if len(legal) == 0 || len(tree.UntriedMoves(node, legal)) > 0 {
			break
		}
		child := tree.UCBSelectChild(node, legal, s.Config.ExploreConst)
		if child == NoNode {
			break
		}
		if s.Config.VirtualLoss {
			tree.AddVirtualLoss(child)
			path = append(path, child)
		}
		state.DoMove(tree.Move(child))
		node = child
	}

	// 3. Breid uit
	if untried := tree.UntriedMoves(node, state.ValidMoves()); len(untried) > 0 {
		m := untried[rng.Intn(len(untried))]
		player := state.CurrentPlayer()
		state.DoMove(m)
		node = tree.AddChild(node, m, player)
	}

	// 4. Speel willekeurig uit
	for moves := state.ValidMoves(); len(moves) > 0; moves = state.ValidMoves() {
		state.DoMove(moves[rng.Intn(len(moves))])
	}

	// 5. Propageer terug
	for _, id := range path {
		tree.RemoveVirtualLoss(id)
	}
	for id := node; id != NoNode; id = tree.Parent(id) {
		tree.Update(id, state)
	}
}

func pickBest[M comparable](tree *Tree[M]) (M, MoveEval[M]) {
	var best M
	children := tree.Children(RootID)
	details := make([]MoveDetail[M], 0, len(children))
	for _, id := range children {
		v, score, _ := tree.Stats(id)
		wr := 0.0
		if v > 0 {
			wr = score / float64(v)
		}
		details = append(details, MoveDetail[M]{Move: tree.Move(id), WinRate: wr, Visits: v})
	}
	sort.SliceStable(details, func(i, j int) bool { return details[i].Visits > details[j].Visits })

	if len(details) == 0 {
		return best, MoveEval[M]{}
	}
	return details[0].Move, MoveEval[M]{
		Score:   details[0].WinRate,
		Visits:  details[0].Visits,
		Details: details,
	}
}
