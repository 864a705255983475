package evaluator

import (
	"gonum.org/v1/gonum/floats"

	"othello/game"
)

// Uniform gives every action slot the same prior and scores the position
// with a heuristic. A nil Value scores every position as 0.
type Uniform struct {
	Value game.Evaluate
}

func (u Uniform) Predict(state game.State) ([]float64, float64) {
	policy := make([]float64, game.ActionSpace)
	floats.AddConst(1.0/game.ActionSpace, policy)
	if u.Value == nil {
		return policy, 0
	}
	return policy, u.Value(state)
}
