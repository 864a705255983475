package agent

import (
	"errors"

	"othello/experiments/metrics"
	"othello/game"
)

var ErrNoAction = errors.New("no legal action to select")

type Agent interface {
	// SelectAction returns one of legal, the actions available to the
	// player to move in state.
	SelectAction(state game.State, legal []game.Action) (game.Action, error)
}

// Reporter is implemented by agents that search before they act.
type Reporter interface {
	// Metric returns the statistics of the most recent decision.
	Metric() metrics.SearchMetric
}
