package main

import (
	"context"
	"fmt"
	stdio "io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/klaverjas-engine/pkg/engine"
	"github.com/klaverjas-engine/pkg/game"
	kio "github.com/klaverjas-engine/pkg/io"
	"github.com/klaverjas-engine/pkg/player"
)

var errQuit = errors.New("gestopt door speler")

type options struct {
	mode        string
	configPath  string
	weightsPath string
	iterations  int
	workers     int
	explore     float64
	rounds      int
	matches     int
	seed        int64
	trumpRule   string
	bidRule     string
	logLevel    string
}

func main() {
	var opts options
	pflag.StringVarP(&opts.mode, "mode", "m", "play", "play (mens met AI-maat) of simulate (AI tegen random)")
	pflag.StringVarP(&opts.configPath, "config", "c", "", "YAML met zoekinstellingen")
	pflag.StringVar(&opts.weightsPath, "weights", "", "YAML met biedgewichten (zie tune)")
	pflag.IntVarP(&opts.iterations, "iterations", "i", 0, "ISMCTS-iteraties per zet (0 = config)")
	pflag.IntVarP(&opts.workers, "workers", "w", 0, "goroutines per zoektocht (0 = config)")
	pflag.Float64Var(&opts.explore, "explore", 0, "exploratieconstante (0 = config)")
	pflag.IntVarP(&opts.rounds, "rounds", "r", game.DefaultRounds, "rondes per partij")
	pflag.IntVarP(&opts.matches, "matches", "n", 10, "partijen in simulate")
	pflag.Int64Var(&opts.seed, "seed", 0, "seed voor het schudden (0 = willekeurig)")
	pflag.StringVar(&opts.trumpRule, "trump-rule", "rotterdams", "rotterdams of amsterdams")
	pflag.StringVar(&opts.bidRule, "bid-rule", "official", "official, random, twents of utrechts")
	pflag.StringVar(&opts.logLevel, "log-level", "warn", "debug, info, warn of error")
	pflag.Parse()

	level, err := zerolog.ParseLevel(opts.logLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(logger.WithContext(context.Background()), os.Interrupt)
	defer stop()

	if err := run(ctx, opts); err != nil && !errors.Is(err, errQuit) && !errors.Is(err, stdio.EOF) && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("gestopt")
	}
}

func run(ctx context.Context, opts options) error {
	cfg := engine.DefaultConfig()
	if opts.configPath != "" {
		var err error
		if cfg, err = engine.LoadConfig(opts.configPath); err != nil {
			return err
		}
	}
	if opts.iterations > 0 {
		cfg.Iterations = opts.iterations
	}
	if opts.workers > 0 {
		cfg.NumWorkers = opts.workers
	}
	if opts.explore > 0 {
		cfg.ExploreConst = opts.explore
	}

	weights := player.DefaultWeights()
	if opts.weightsPath != "" {
		var err error
		if weights, err = player.LoadWeights(opts.weightsPath); err != nil {
			return err
		}
	}

	trumpRule, err := game.ParseTrumpRule(opts.trumpRule)
	if err != nil {
		return err
	}
	bidRule, err := game.ParseBidRule(opts.bidRule)
	if err != nil {
		return err
	}
	rules := game.Rules{TrumpRule: trumpRule, BidRule: bidRule, Rounds: opts.rounds}
	popts := player.Options{Config: cfg, Weights: weights, Seed: opts.seed}

	zerolog.Ctx(ctx).Info().
		Int("iterations", cfg.Iterations).
		Int("workers", cfg.NumWorkers).
		Float64("explore", cfg.ExploreConst).
		Stringer("trump_rule", trumpRule).
		Stringer("bid_rule", bidRule).
		Msg("instellingen")

	switch strings.ToLower(opts.mode) {
	case "play", "spelen":
		return playMode(ctx, kio.Stdin(), rules, popts)
	case "simulate", "simuleer":
		return simulateMode(ctx, os.Stdout, rules, popts, opts.matches)
	}
	return errors.Errorf("onbekende modus %q", opts.mode)
}

// ---- Spelen ----

// playMode: jij zit op stoel 1, je maat (stoel 3) en de tegenstanders zijn AI.
func playMode(ctx context.Context, reader *kio.Reader, rules game.Rules, popts player.Options) error {
	out := os.Stdout
	kio.PrintHeader(out, "Klaverjassen")
	fmt.Fprintf(out, "Jij bent speler 1, speler 3 is je maat. %s, bieden %s.\n", rules.TrumpRule, rules.BidRule)
	fmt.Fprintln(out, "Typ 'help' voor uitleg.")

	human := player.NewHuman()
	advisor := player.NewAI(popts.Config, popts.Weights)
	var seats [game.PlayersPerTrick]game.Player
	seats[0] = human
	for s := 1; s < game.PlayersPerTrick; s++ {
		seats[s] = player.NewAI(popts.Config, popts.Weights)
	}

	m := game.NewMatch(seats, rules, popts.Seed)
	m.Notify = func(e game.Event) { printEvent(out, e) }

	done := make(chan error, 1)
	go func() {
		_, err := m.Play(ctx)
		done <- err
	}()

	for {
		select {
		case req := <-human.Requests():
			req.Reply(answer(ctx, out, reader, advisor, req))
		case err := <-done:
			if err != nil {
				return err
			}
			kio.PrintHeader(out, "Partij voorbij")
			fmt.Fprintln(out, kio.FormatTotals(m.Totals()))
			return nil
		}
	}
}

func answer(ctx context.Context, out stdio.Writer, reader *kio.Reader, advisor *player.AI, req player.Request) player.Response {
	if req.Kind == player.RequestBid {
		bid := req.Bid
		kio.PrintSubHeader(out, "Bieden")
		fmt.Fprintf(out, "Hand: %s\n", kio.FormatPlainHand(bid.Hand))
		if bid.Forced {
			fmt.Fprintln(out, "Iedereen heeft gepast: jij moet kiezen.")
		}
		fmt.Fprintf(out, "Opties: %s\n", kio.FormatBids(bid.Options))
		b, err := reader.ReadBid("Bod: ", bid.Options)
		return player.Response{Bid: b, Err: err}
	}

	gs := req.State
	for {
		fmt.Fprintf(out, "\nHand: %s\n", kio.FormatHand(gs.Hand(req.Seat), gs.Trump()))
		if t := gs.CurrentTrick(); !t.IsEmpty() {
			fmt.Fprintf(out, "Op tafel: %s\n", t)
		}
		fmt.Fprintf(out, "Opties: %s\n", kio.FormatOptions(req.Legal))
		line, err := reader.ReadLine("Jouw kaart: ")
		if err != nil {
			return player.Response{Err: err}
		}
		switch strings.ToLower(line) {
		case "quit", "q", "stop":
			return player.Response{Err: errQuit}
		case "help":
			kio.PrintHelp(out)
			continue
		case "hand":
			continue
		case "status":
			fmt.Fprint(out, gs.StatusString())
			continue
		case "hint":
			move, eval, err := advisor.Evaluate(ctx, gs)
			if err != nil {
				return player.Response{Err: err}
			}
			fmt.Fprintf(out, "💡 Motor speelt %s (score %s)\n", move.Notation(), kio.FormatScore(eval.Score))
			for _, d := range eval.Details {
				fmt.Fprintf(out, "   %-4s %s  (%d bezoeken)\n", d.Move.Notation(), kio.FormatScore(d.WinRate), d.Visits)
			}
			continue
		}
		c, err := kio.ParseChoice(line, req.Legal)
		if err != nil {
			fmt.Fprintf(out, "Fout: %v\n", err)
			continue
		}
		return player.Response{Card: c}
	}
}

func printEvent(out stdio.Writer, e game.Event) {
	switch e.Kind {
	case game.EventBid:
		fmt.Fprintf(out, "Speler %d: %s\n", e.Seat+1, e.Bid)
	case game.EventRoundStarted:
		kio.PrintSubHeader(out, fmt.Sprintf("Ronde %d", e.Round+1))
		fmt.Fprintf(out, "Troef %s, gespeeld door speler %d\n", e.State.Trump(), e.Seat+1)
	case game.EventCardPlayed:
		if e.Seat != 0 {
			fmt.Fprintf(out, "Speler %d speelt %s\n", e.Seat+1, e.Card)
		}
	case game.EventTrickCompleted:
		fmt.Fprintf(out, "Slag: %s\n", kio.FormatTrick(e.Trick))
	case game.EventRoundCompleted:
		fmt.Fprintln(out, kio.FormatScores(e.Result.Scores))
	}
}

// ---- Simuleren ----

// simulateMode laat een AI-team (stoel 1 en 3) tegen een random-team spelen.
func simulateMode(ctx context.Context, out stdio.Writer, rules game.Rules, popts player.Options, matches int) error {
	kio.PrintHeader(out, "Simulatie")
	fmt.Fprintf(out, "%d partijen van %d rondes, %d iteraties per zet\n\n", matches, rules.Rounds, popts.Config.Iterations)

	var totals [2]int
	var wins, wet [2]int
	start := time.Now()
	for i := 0; i < matches; i++ {
		var seats [game.PlayersPerTrick]game.Player
		for s := range seats {
			kind := player.KindRandom
			if game.Team(s) == 0 {
				kind = player.KindAI
			}
			o := popts
			if o.Seed != 0 {
				o.Seed += int64(i*game.PlayersPerTrick + s)
			}
			p, err := player.New(kind, o)
			if err != nil {
				return err
			}
			seats[s] = p
		}
		seed := popts.Seed
		if seed != 0 {
			seed += int64(i)
		}
		m := game.NewMatch(seats, rules, seed)
		m.Notify = func(e game.Event) {
			if e.Kind == game.EventRoundCompleted {
				for t, s := range e.Result.Scores {
					if s.Wet {
						wet[t]++
					}
				}
			}
		}
		score, err := m.Play(ctx)
		if err != nil {
			return err
		}
		totals[0] += score[0]
		totals[1] += score[1]
		if score[0] > score[1] {
			wins[0]++
		} else if score[1] > score[0] {
			wins[1]++
		}
		fmt.Fprintf(out, "Partij %3d: AI %5d - %5d random\n", i+1, score[0], score[1])
	}
	if matches == 0 {
		return nil
	}

	n := float64(matches)
	kio.PrintSubHeader(out, "Resultaat")
	fmt.Fprintf(out, "Gemiddeld per partij: AI %.1f | random %.1f\n", float64(totals[0])/n, float64(totals[1])/n)
	fmt.Fprintf(out, "Gewonnen: AI %d | random %d\n", wins[0], wins[1])
	fmt.Fprintf(out, "Nat gegaan: AI %d | random %d\n", wet[0], wet[1])
	fmt.Fprintf(out, "Tijd: %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}
