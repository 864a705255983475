package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"othello/experiments/metrics"
	"othello/game"
	"othello/searcher/agent"
)

type Option func(e *localEngine)

// Observer is called after every applied action.
type Observer func(step int, action game.Action, state game.State)

type localEngine struct {
	state    game.State
	agents   map[int]agent.Agent // keyed by player, +1 or -1
	maxMoves int
	observer Observer
}

func WithMaxMoves(maxMoves int) Option {
	return func(e *localEngine) {
		if maxMoves > 0 {
			e.maxMoves = maxMoves
		}
	}
}

func WithObserver(observer Observer) Option {
	return func(e *localEngine) {
		e.observer = observer
	}
}

// LocalEngine plays first (player 1) against second (player 2) in process,
// starting from state.
func LocalEngine(state game.State, first, second agent.Agent, options ...Option) Engine {
	if state == nil {
		panic("Must specify an initial state")
	}
	if first == nil || second == nil {
		panic("Must specify an agent for both players")
	}

	e := &localEngine{
		state:    state,
		agents:   map[int]agent.Agent{1: first, -1: second},
		maxMoves: MaxMoves,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes the entire game loop until the game ends.
func (e *localEngine) Run() (Result, error) {
	if err := game.Validate(e.state); err != nil {
		return Result{}, err
	}

	gameMetric := metrics.GameMetric{
		StartingPlayer: e.state.Player(),
		StartTime:      time.Now(),
	}
	log.Info().Msgf("player %d is starting", e.state.Player())

	var moveMetrics []metrics.MoveMetric
	state := e.state
	step := 0
	for !state.IsTerminal() && step < e.maxMoves {
		step++
		player := state.Player()

		action, err := e.agents[player].SelectAction(state, state.LegalActions())
		if err != nil {
			return Result{}, fmt.Errorf("player %d at step %d: %w", player, step, err)
		}
		next, err := state.Play(action)
		if err != nil {
			return Result{}, fmt.Errorf("player %d at step %d played %v: %w", player, step, action, err)
		}

		move := metrics.MoveMetric{Step: step, Player: player, Action: fmt.Sprint(action)}
		if reporter, ok := e.agents[player].(agent.Reporter); ok {
			move.SearchMetric = reporter.Metric()
		}
		moveMetrics = append(moveMetrics, move)
		log.Debug().Int("step", step).Int("player", player).Str("action", move.Action).Msg("move")

		if e.observer != nil {
			e.observer(step, action, next)
		}
		state = next
	}

	result := Result{
		Terminal: state.IsTerminal(),
		Final:    state,
		Moves:    moveMetrics,
	}
	if result.Terminal {
		reward, err := state.Reward()
		if err != nil {
			return Result{}, err
		}
		result.Winner = int(reward)
	} else {
		log.Warn().Msgf("stopped after %d moves without a winner", step)
	}

	gameMetric.Winner = result.Winner
	gameMetric.TotalMoves = step
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	if counter, ok := state.(discCounter); ok {
		gameMetric.Discs1 = counter.Discs(1)
		gameMetric.Discs2 = counter.Discs(-1)
	}
	result.Game = gameMetric

	log.Info().Msgf("game over after %d moves, winner: %d", step, result.Winner)
	return result, nil
}
