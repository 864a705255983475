package experiments

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"othello/config"
	"othello/engine"
	"othello/evaluator"
	"othello/experiments/metrics"
	"othello/game/othello"
	"othello/searcher"
	"othello/searcher/agent"
)

// LinearScale is the standard deviation of the weights drawn for linear
// evaluators.
const LinearScale = 0.1

var ErrUnknownAgent = errors.New("unknown agent")

type MatchUp struct {
	Agent1 metrics.AgentConfig
	Agent2 metrics.AgentConfig
}

// Outcome of one game from the match-up's point of view.
const (
	Unfinished = iota
	Agent1Won
	Agent2Won
	Draw
)

type Tally struct {
	Agent1      int // AgentConfig.ID
	Agent2      int // AgentConfig.ID
	Games       int
	Wins1       int
	Wins2       int
	Draws       int
	Unfinished  int
	MeanMoves   float64
	StdDevMoves float64
}

type Summary struct {
	Name    string
	Tallies []Tally
	Games   []metrics.GameRecord
	Moves   []metrics.MoveRecord
}

type gameResult struct {
	matchUp int
	outcome int
	record  metrics.GameRecord
	moves   []metrics.MoveMetric
}

// MatchUps resolves the configured match-ups to agent configurations.
func MatchUps(cfg *config.Config) ([]MatchUp, error) {
	matchUps := make([]MatchUp, 0, len(cfg.MatchUps))
	for _, ids := range cfg.MatchUps {
		if len(ids) != 2 {
			return nil, fmt.Errorf("%w: match-up %v", config.ErrInvalidConfig, ids)
		}
		a1, ok := cfg.FindAgent(ids[0])
		if !ok {
			return nil, fmt.Errorf("%w: id %d", ErrUnknownAgent, ids[0])
		}
		a2, ok := cfg.FindAgent(ids[1])
		if !ok {
			return nil, fmt.Errorf("%w: id %d", ErrUnknownAgent, ids[1])
		}
		matchUps = append(matchUps, MatchUp{Agent1: a1, Agent2: a2})
	}
	return matchUps, nil
}

// Run plays cfg.Games games per match-up, alternating which agent moves
// first, with at most cfg.Concurrency games in flight.
func Run(ctx context.Context, name string, cfg *config.Config, matchUps []MatchUp) (Summary, error) {
	log.Info().Msgf("starting %s experiment...", name)

	type job struct {
		id      int
		matchUp int
		game    int
	}
	jobs := []job{}
	for mi := range matchUps {
		for i := range cfg.Games {
			jobs = append(jobs, job{id: len(jobs) + 1, matchUp: mi, game: i})
		}
	}

	results := make([]gameResult, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)
	for i, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m := matchUps[j.matchUp]
			log.Debug().Msgf("starting matchup %d of %d game %d of %d...", j.matchUp+1, len(matchUps), j.game+1, cfg.Games)

			result, err := runGame(cfg, m, j.id, j.game%2 == 0)
			if err != nil {
				return fmt.Errorf("game %d: %w", j.id, err)
			}
			result.matchUp = j.matchUp
			results[i] = result

			log.Info().Msgf("completed matchup %d of %d game %d with outcome %d", j.matchUp+1, len(matchUps), j.game+1, result.outcome)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	summary := Summary{Name: name}
	for _, r := range results {
		summary.Games = append(summary.Games, r.record)
		for _, mm := range r.moves {
			summary.Moves = append(summary.Moves, metrics.MoveRecord{Game: r.record.ID, MoveMetric: mm})
		}
	}
	for mi, m := range matchUps {
		games := lo.Filter(results, func(r gameResult, _ int) bool { return r.matchUp == mi })
		summary.Tallies = append(summary.Tallies, tally(m, games))
	}

	log.Info().Msgf("completed %s experiment", name)
	return summary, nil
}

func tally(m MatchUp, games []gameResult) Tally {
	t := Tally{Agent1: m.Agent1.ID, Agent2: m.Agent2.ID, Games: len(games)}
	outcomes := lo.CountValuesBy(games, func(r gameResult) int { return r.outcome })
	t.Wins1 = outcomes[Agent1Won]
	t.Wins2 = outcomes[Agent2Won]
	t.Draws = outcomes[Draw]
	t.Unfinished = outcomes[Unfinished]

	lengths := lo.Map(games, func(r gameResult, _ int) float64 { return float64(r.record.TotalMoves) })
	if len(lengths) > 0 {
		t.MeanMoves = stat.Mean(lengths, nil)
	}
	if len(lengths) > 1 {
		t.StdDevMoves = stat.StdDev(lengths, nil)
	}
	return t
}

// runGame plays one game. When agent1First is set Agent1 plays as player 1.
func runGame(cfg *config.Config, m MatchUp, id int, agent1First bool) (gameResult, error) {
	seed := cfg.Seed + uint64(id)*2
	a1, err := NewAgent(m.Agent1, cfg.Seed+uint64(m.Agent1.ID), seed)
	if err != nil {
		return gameResult{}, err
	}
	a2, err := NewAgent(m.Agent2, cfg.Seed+uint64(m.Agent2.ID), seed+1)
	if err != nil {
		return gameResult{}, err
	}

	black, white, blackID := a1, a2, m.Agent1.ID
	if !agent1First {
		black, white, blackID = a2, a1, m.Agent2.ID
	}
	e := engine.LocalEngine(othello.Initial(), black, white, engine.WithMaxMoves(cfg.MaxMoves))
	result, err := e.Run()
	if err != nil {
		return gameResult{}, err
	}

	outcome := Unfinished
	if result.Terminal {
		// Winner is +1 when player 1 won.
		switch {
		case result.Winner == 0:
			outcome = Draw
		case (result.Winner == 1) == agent1First:
			outcome = Agent1Won
		default:
			outcome = Agent2Won
		}
	}

	return gameResult{
		outcome: outcome,
		record: metrics.GameRecord{
			ID:         id,
			Agent1:     m.Agent1.ID,
			Agent2:     m.Agent2.ID,
			Black:      blackID,
			GameMetric: result.Game,
		},
		moves: result.Moves,
	}, nil
}

// NewAgent builds the agent described by a. modelSeed fixes the weights of
// learned evaluators, playSeed drives any sampling during play.
func NewAgent(a metrics.AgentConfig, modelSeed, playSeed uint64) (agent.Agent, error) {
	switch a.Kind {
	case "random":
		return agent.NewRandomAgent(playSeed), nil
	case "minimax":
		evaluate, err := othello.Heuristic(a.Heuristic)
		if err != nil {
			return nil, err
		}
		if a.Depth < 0 {
			return nil, fmt.Errorf("%w: negative depth %d", config.ErrInvalidConfig, a.Depth)
		}
		negamax := searcher.NewNegamax(evaluate, searcher.WithDepth(a.Depth), searcher.WithNegamaxMetrics())
		return agent.NewMinimaxAgent(negamax), nil
	case "mcts":
		predictor, err := newPredictor(a, modelSeed)
		if err != nil {
			return nil, err
		}
		if a.Simulations <= 0 {
			return nil, fmt.Errorf("%w: %d simulations", config.ErrInvalidConfig, a.Simulations)
		}
		mcts := searcher.NewMCTS(predictor,
			searcher.WithSimulations(a.Simulations),
			searcher.WithCPuct(a.CPuct),
			searcher.WithMetrics(),
		)
		if a.Temperature > 0 {
			return agent.NewTrainingAgent(mcts, a.Temperature, playSeed), nil
		}
		return agent.NewEvaluationAgent(mcts), nil
	default:
		return nil, fmt.Errorf("%w: kind %q", ErrUnknownAgent, a.Kind)
	}
}

func newPredictor(a metrics.AgentConfig, seed uint64) (searcher.Predictor, error) {
	switch a.Evaluator {
	case "uniform", "":
		evaluate, err := othello.Heuristic(a.Heuristic)
		if err != nil {
			return nil, err
		}
		return evaluator.Uniform{Value: evaluate}, nil
	case "linear":
		return evaluator.NewRandomLinear(seed, LinearScale), nil
	default:
		return nil, fmt.Errorf("%w: evaluator %q", ErrUnknownAgent, a.Evaluator)
	}
}

// Write stores the agent configurations and the records of summary as CSV
// files under cfg.OutputDir. It returns the directory written to.
func Write(cfg *config.Config, summary Summary) (string, error) {
	writer, err := metrics.NewWriter(cfg.OutputDir, summary.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	configs := lo.Map(cfg.Agents, func(a metrics.AgentConfig, _ int) metrics.AgentConfig { return cfg.Agent(a) })
	err = writer.WriteAgentConfigs(configs)
	if err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	err = writer.WriteGameRecords(summary.Games)
	if err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	err = writer.WriteMoveRecords(summary.Moves)
	if err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")
	return writer.Dir(), nil
}
