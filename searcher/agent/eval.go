package agent

import (
	"github.com/samber/lo"

	"othello/experiments/metrics"
	"othello/game"
	"othello/searcher"
)

type evaluationAgent struct {
	mcts *searcher.MCTS
}

// NewEvaluationAgent returns an agent that plays the most visited action.
func NewEvaluationAgent(mcts *searcher.MCTS) Agent {
	return evaluationAgent{mcts: mcts}
}

func (a evaluationAgent) SelectAction(state game.State, legal []game.Action) (game.Action, error) {
	if len(legal) == 0 {
		return nil, ErrNoAction
	}
	policy, err := a.mcts.Search(state)
	if err != nil {
		return nil, err
	}
	return findMax(policy, legal), nil
}

func (a evaluationAgent) Metric() metrics.SearchMetric {
	return a.mcts.Metric()
}

// findMax returns the legal action with the highest probability, the first
// one in legal order on ties.
func findMax(policy map[game.Action]float64, legal []game.Action) game.Action {
	return lo.MaxBy(legal, func(a, b game.Action) bool {
		return policy[a] > policy[b]
	})
}
