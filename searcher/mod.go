package searcher

import (
	"errors"

	"othello/game"
)

// ErrContractViolation reports a Predictor that returned a malformed policy.
var ErrContractViolation = errors.New("evaluator contract violation")

// Predictor is the policy/value estimator consulted by MCTS. The policy is
// indexed by the 65-slot action space; it need not sum to 1.
type Predictor interface {
	Predict(state game.State) (policy []float64, value float64)
}

type PredictorFunc func(game.State) ([]float64, float64)

func (f PredictorFunc) Predict(state game.State) ([]float64, float64) {
	return f(state)
}
