package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"othello/config"
	"othello/engine"
	"othello/experiments"
	"othello/experiments/metrics"
	"othello/game"
	"othello/game/othello"
	"othello/player"
	"othello/searcher/agent"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	mode := flag.String("mode", "play", "play | match | throughput")
	black := flag.String("black", "human", "Agent for player 1: human | minimax | mcts | random")
	white := flag.String("white", "mcts", "Agent for player 2: human | minimax | mcts | random")
	positions := flag.Int("positions", 20, "Positions timed per agent in throughput mode")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	zerolog.SetGlobalLevel(cfg.Level())
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	switch *mode {
	case "play":
		err = play(cfg, *black, *white)
	case "match":
		err = match(cfg)
	case "throughput":
		err = throughput(cfg, *positions)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", *mode)
	}
}

func play(cfg *config.Config, black, white string) error {
	var human *player.Human
	closeTerminal := func() error { return nil }
	defer func() { closeTerminal() }()
	newPlayer := func(kind string, id int) (agent.Agent, error) {
		if kind != "human" {
			a := cfg.Agent(metrics.AgentConfig{ID: id, Kind: kind})
			return experiments.NewAgent(a, cfg.Seed+uint64(id), cfg.Seed+uint64(id))
		}
		if human == nil {
			h, closer, err := player.NewTerminalHuman(os.Stdout)
			if err != nil {
				return nil, err
			}
			human, closeTerminal = h, closer
		}
		return human, nil
	}

	p1, err := newPlayer(black, 1)
	if err != nil {
		return err
	}
	p2, err := newPlayer(white, 2)
	if err != nil {
		return err
	}

	out := termenv.NewOutput(os.Stdout)
	e := engine.LocalEngine(othello.Initial(), p1, p2,
		engine.WithMaxMoves(cfg.MaxMoves),
		engine.WithObserver(func(step int, action game.Action, state game.State) {
			fmt.Fprintf(out, "%d. player %d plays %v\n", step, -state.Player(), action)
		}),
	)
	result, err := e.Run()
	if errors.Is(err, player.ErrQuit) {
		return nil
	}
	if err != nil {
		return err
	}

	if final, ok := result.Final.(*othello.State); ok {
		fmt.Fprint(out, player.Render(out, final, false))
	}
	fmt.Fprintf(out, "B %d - W %d\n", result.Game.Discs1, result.Game.Discs2)
	switch result.Winner {
	case 1:
		fmt.Fprintln(out, "black wins")
	case -1:
		fmt.Fprintln(out, "white wins")
	default:
		fmt.Fprintln(out, "draw")
	}
	return nil
}

func match(cfg *config.Config) error {
	matchUps, err := experiments.MatchUps(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	summary, err := experiments.Run(ctx, "match", cfg, matchUps)
	if err != nil {
		return err
	}

	for _, t := range summary.Tallies {
		fmt.Printf("agent %d vs agent %d: %d-%d-%d (draws), %d unfinished, %.1f ± %.1f moves\n",
			t.Agent1, t.Agent2, t.Wins1, t.Wins2, t.Draws, t.Unfinished, t.MeanMoves, t.StdDevMoves)
	}
	if cfg.OutputDir == "" {
		return nil
	}
	dir, err := experiments.Write(cfg, summary)
	if err != nil {
		return err
	}
	log.Info().Msgf("results written to %s", dir)
	return nil
}

func throughput(cfg *config.Config, positions int) error {
	agents := lo.Map(cfg.Agents, func(a metrics.AgentConfig, _ int) metrics.AgentConfig { return cfg.Agent(a) })
	results, err := experiments.RunThroughput(cfg, agents, positions)
	if err != nil {
		return err
	}
	for _, r := range results {
		fmt.Printf("agent %d: %d searches, %v mean, %.0f work/s\n", r.Agent, r.Searches, r.MeanDuration, r.WorkPerSecond)
	}
	return nil
}
