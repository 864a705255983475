package experiments

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"

	"othello/config"
	"othello/experiments/metrics"
	"othello/game"
	"othello/game/othello"
	"othello/searcher/agent"
)

// Throughput of one agent. Work counts simulations for MCTS and nodes for
// negamax.
type Throughput struct {
	Agent         int // AgentConfig.ID
	Searches      int
	MeanDuration  time.Duration
	MeanWork      float64
	WorkPerSecond float64
}

// RunThroughput times one decision of every agent on the same sampled
// positions.
func RunThroughput(cfg *config.Config, agents []metrics.AgentConfig, positions int) ([]Throughput, error) {
	states, err := samplePositions(cfg.Seed, positions)
	if err != nil {
		return nil, err
	}

	log.Info().Msgf("starting throughput experiment on %d positions...", len(states))
	results := make([]Throughput, 0, len(agents))
	for _, a := range agents {
		player, err := NewAgent(a, cfg.Seed+uint64(a.ID), cfg.Seed)
		if err != nil {
			return nil, err
		}

		durations := make([]float64, 0, len(states))
		work := make([]float64, 0, len(states))
		for _, state := range states {
			start := time.Now()
			_, err := player.SelectAction(state, state.LegalActions())
			if err != nil {
				return nil, fmt.Errorf("agent %d: %w", a.ID, err)
			}
			durations = append(durations, time.Since(start).Seconds())
			if reporter, ok := player.(agent.Reporter); ok {
				metric := reporter.Metric()
				work = append(work, float64(metric.Episodes+metric.Nodes))
			}
		}

		t := Throughput{Agent: a.ID, Searches: len(states)}
		if len(durations) > 0 {
			mean := stat.Mean(durations, nil)
			t.MeanDuration = time.Duration(mean * float64(time.Second))
			if len(work) > 0 {
				t.MeanWork = stat.Mean(work, nil)
				if mean > 0 {
					t.WorkPerSecond = t.MeanWork / mean
				}
			}
		}
		results = append(results, t)
		log.Info().Msgf("agent %d: %v per search, %.0f work/s", a.ID, t.MeanDuration, t.WorkPerSecond)
	}
	log.Info().Msg("completed throughput experiment")
	return results, nil
}

// samplePositions collects non-terminal positions from random self-play.
func samplePositions(seed uint64, count int) ([]game.State, error) {
	random := agent.NewRandomAgent(seed)
	states := make([]game.State, 0, count)
	var state game.State = othello.Initial()
	for len(states) < count {
		if state.IsTerminal() {
			state = othello.Initial()
			continue
		}
		states = append(states, state)

		action, err := random.SelectAction(state, state.LegalActions())
		if err != nil {
			return nil, err
		}
		state, err = state.Play(action)
		if err != nil {
			return nil, err
		}
	}
	return states, nil
}
