package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/klaverjas-engine/pkg/engine"
	"github.com/klaverjas-engine/pkg/game"
	"github.com/klaverjas-engine/pkg/player"
)

// ─── Tuner-instellingen ───────────────────────────────────────────────────────

type settings struct {
	weightsPath   string
	gamesPerEval  int     // partijen per richting
	itersPerMove  int     // ISMCTS-iteraties per zet
	roundsPerGame int     // rondes per partij
	maxRounds     int     // maximale coordinate-descent rondes
	delta         float64 // stapgrootte per parameter
	minImprove    float64 // minimale score boven 0.50 om verbetering te accepteren
	workers       int     // parallelle partijen
	seed          int64
}

func main() {
	var s settings
	var logLevel string
	pflag.StringVar(&s.weightsPath, "weights", "weights.yaml", "bestand met biedgewichten")
	pflag.IntVar(&s.gamesPerEval, "games", 40, "partijen per richting")
	pflag.IntVar(&s.itersPerMove, "iterations", 200, "ISMCTS-iteraties per zet")
	pflag.IntVar(&s.roundsPerGame, "rounds", 4, "rondes per partij")
	pflag.IntVar(&s.maxRounds, "max-rounds", 30, "maximale tuning-rondes")
	pflag.Float64Var(&s.delta, "delta", 2, "stapgrootte per parameter")
	pflag.Float64Var(&s.minImprove, "min-improve", 0.02, "vereiste winst boven 50%")
	pflag.IntVar(&s.workers, "workers", runtime.NumCPU(), "parallelle partijen")
	pflag.Int64Var(&s.seed, "seed", 0, "seed (0 = tijd)")
	pflag.StringVar(&logLevel, "log-level", "warn", "debug, info, warn of error")
	pflag.Parse()

	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger()
	ctx, stop := signal.NotifyContext(logger.WithContext(context.Background()), os.Interrupt)
	defer stop()

	if err := tune(ctx, s); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("tuning mislukt")
	}
}

func tune(ctx context.Context, s settings) error {
	logger := zerolog.Ctx(ctx)

	best, err := player.LoadWeights(s.weightsPath)
	if err != nil {
		logger.Warn().Err(err).Msg("start met standaard-weights")
		best = player.DefaultWeights()
		if err := player.SaveWeights(best, s.weightsPath); err != nil {
			logger.Warn().Err(err).Msg("kan weights niet aanmaken")
		}
	}

	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════╗")
	fmt.Println("║   Klaverjas Coordinate-Descent Tuner     ║")
	fmt.Println("╚══════════════════════════════════════════╝")
	fmt.Printf("Games/eval: %d×2  |  Rondes/partij: %d  |  Iters/zet: %d\n",
		s.gamesPerEval, s.roundsPerGame, s.itersPerMove)
	fmt.Printf("Delta: %.2f  |  Min verbetering: %.1f%%  |  Workers: %d\n\n",
		s.delta, s.minImprove*100, s.workers)

	seed := s.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	// Hoofdrng enkel voor seed-generatie (sequentieel, geen races)
	rng := rand.New(rand.NewSource(seed))

	anyImproved := true
	round := 0
	totalStart := time.Now()

	for anyImproved && round < s.maxRounds {
		anyImproved = false
		round++
		roundStart := time.Now()
		fmt.Printf("─── Ronde %d ───\n", round)

		for pi, p := range best.Params() {
			original := *p.Ptr

			plusW := best
			*plusW.Params()[pi].Ptr = player.Clamp(original+s.delta, p.Min, p.Max)
			minusW := best
			*minusW.Params()[pi].Ptr = player.Clamp(original-s.delta, p.Min, p.Max)

			plusRate, minusRate, err := evalBothDirections(ctx, s, plusW, minusW, best, rng)
			if err != nil {
				return err
			}

			bestRate, dir, candidate := plusRate, "+", plusW
			if minusRate > plusRate {
				bestRate, dir, candidate = minusRate, "-", minusW
			}
			newVal := *candidate.Params()[pi].Ptr

			if bestRate > 0.5+s.minImprove && newVal != original {
				best = candidate
				fmt.Printf("  ✓ %-24s %s%.2f → %.2f   score=%.1f%%\n",
					p.Name, dir, original, newVal, bestRate*100)
				anyImproved = true
				if err := player.SaveWeights(best, s.weightsPath); err != nil {
					logger.Error().Err(err).Msg("opslaan mislukt")
				}
			} else {
				fmt.Printf("  · %-24s    %.2f          +%.1f%%  -%.1f%%\n",
					p.Name, original, plusRate*100, minusRate*100)
			}
		}

		fmt.Printf("  Rondetijd: %s\n\n", time.Since(roundStart).Round(time.Second))
	}

	if err := player.SaveWeights(best, s.weightsPath); err != nil {
		return err
	}

	fmt.Printf("Totale tuningtijd: %s\n", time.Since(totalStart).Round(time.Second))
	if round >= s.maxRounds {
		fmt.Printf("Gestopt na %d rondes (maximum bereikt).\n", s.maxRounds)
	} else {
		fmt.Println("Geen verdere verbetering gevonden, converged.")
	}
	fmt.Printf("Weights opgeslagen in: %s\n\n", s.weightsPath)
	printWeights(best)
	return nil
}

// ─── Parallelle evaluatie ─────────────────────────────────────────────────────

// evalBothDirections speelt plusW en minusW in één parallelle batch tegen de
// baseline. Seeds worden sequentieel getrokken; elke partij krijgt zijn eigen.
// Retourneert het gemiddelde puntenaandeel (0.0-1.0) per richting.
func evalBothDirections(ctx context.Context, s settings, plusW, minusW, baseline player.Weights, rng *rand.Rand) (float64, float64, error) {
	total := s.gamesPerEval * 2
	seeds := make([]int64, total)
	for i := range seeds {
		seeds[i] = rng.Int63()
	}

	scores := make([]float64, total)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(s.workers, 1))
	for i := 0; i < total; i++ {
		candidate := minusW
		if i < s.gamesPerEval {
			candidate = plusW
		}
		i := i
		g.Go(func() error {
			// Om en om als team 0 en team 1.
			score, err := playOneMatch(ctx, s, candidate, baseline, seeds[i], i%2)
			scores[i] = score
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return 0, 0, err
	}

	var plus, minus float64
	for i, sc := range scores {
		if i < s.gamesPerEval {
			plus += sc
		} else {
			minus += sc
		}
	}
	n := float64(s.gamesPerEval)
	return plus / n, minus / n, nil
}

// playOneMatch speelt een partij: candidate bezet het team candidateTeam,
// baseline het andere. Geeft het puntenaandeel van de kandidaat.
func playOneMatch(ctx context.Context, s settings, candidate, baseline player.Weights, seed int64, candidateTeam int) (float64, error) {
	cfg := engine.DefaultConfig()
	cfg.Iterations = s.itersPerMove
	cfg.NumWorkers = 1
	cfg.Seed = seed

	var seats [game.PlayersPerTrick]game.Player
	for seat := range seats {
		w := baseline
		if game.Team(seat) == candidateTeam {
			w = candidate
		}
		cfg.Seed++
		seats[seat] = player.NewAI(cfg, w)
	}

	m := game.NewMatch(seats, game.Rules{Rounds: s.roundsPerGame}, seed)
	totals, err := m.Play(ctx)
	if err != nil {
		return 0, err
	}
	sum := totals[0] + totals[1]
	if sum == 0 {
		return 0.5, nil
	}
	return float64(totals[candidateTeam]) / float64(sum), nil
}

func printWeights(w player.Weights) {
	fmt.Println("Huidige weights:")
	for _, p := range w.Params() {
		fmt.Printf("  %-24s = %.2f\n", p.Name, *p.Ptr)
	}
	fmt.Println()
}
