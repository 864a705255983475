package agent

import (
	"math"

	"golang.org/x/exp/rand"

	"othello/experiments/metrics"
	"othello/game"
	"othello/searcher"
)

type trainingAgent struct {
	mcts        *searcher.MCTS
	temperature float64
	rng         *rand.Rand
}

// NewTrainingAgent returns an agent that samples its action from the visit
// distribution sharpened by temperature. A temperature of zero or less
// plays greedily.
func NewTrainingAgent(mcts *searcher.MCTS, temperature float64, seed uint64) Agent {
	return &trainingAgent{
		mcts:        mcts,
		temperature: temperature,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

func (a *trainingAgent) SelectAction(state game.State, legal []game.Action) (game.Action, error) {
	if len(legal) == 0 {
		return nil, ErrNoAction
	}
	visits, err := a.mcts.Search(state)
	if err != nil {
		return nil, err
	}
	if a.temperature <= 0 {
		return findMax(visits, legal), nil
	}
	policy := adjustTemperature(visits, legal, a.temperature)
	return sample(a.rng, policy, legal), nil
}

func (a *trainingAgent) Metric() metrics.SearchMetric {
	return a.mcts.Metric()
}

// adjustTemperature returns the probabilities of legal, in order, after
// raising every visit share to 1/temperature.
func adjustTemperature(visits map[game.Action]float64, legal []game.Action, temperature float64) []float64 {
	exponent := 1.0 / temperature
	sum := 0.0
	policy := make([]float64, len(legal))
	for i, action := range legal {
		prob := math.Pow(visits[action], exponent)
		sum += prob
		policy[i] = prob
	}
	if sum == 0 {
		for i := range policy {
			policy[i] = 1.0 / float64(len(policy))
		}
		return policy
	}
	for i := range policy {
		policy[i] /= sum
	}
	return policy
}

func sample(rng *rand.Rand, policy []float64, legal []game.Action) game.Action {
	sampled := rng.Float64()
	cumulative := 0.0
	for i, prob := range policy {
		cumulative += prob
		if sampled < cumulative {
			return legal[i]
		}
	}
	return legal[len(legal)-1] // Fallback in case of rounding errors
}
