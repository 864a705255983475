package agent

import (
	"fmt"

	"github.com/samber/lo"

	"othello/experiments/metrics"
	"othello/game"
	"othello/searcher"
)

type minimaxAgent struct {
	negamax *searcher.Negamax
}

// NewMinimaxAgent returns an agent that plays the principal move of a
// depth-limited negamax search.
func NewMinimaxAgent(negamax *searcher.Negamax) Agent {
	return minimaxAgent{negamax: negamax}
}

func (a minimaxAgent) SelectAction(state game.State, legal []game.Action) (game.Action, error) {
	if len(legal) == 0 {
		return nil, ErrNoAction
	}
	result, err := a.negamax.Search(state)
	if err != nil {
		return nil, err
	}
	if result.Action == nil { // depth zero searches no action
		return legal[0], nil
	}
	if !lo.Contains(legal, result.Action) {
		return nil, fmt.Errorf("%w: search chose %v", game.ErrInvalidMove, result.Action)
	}
	return result.Action, nil
}

func (a minimaxAgent) Metric() metrics.SearchMetric {
	return a.negamax.Metric()
}
