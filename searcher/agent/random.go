package agent

import (
	"golang.org/x/exp/rand"

	"othello/game"
)

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns an agent that picks uniformly among the legal
// actions.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) SelectAction(state game.State, legal []game.Action) (game.Action, error) {
	if len(legal) == 0 {
		return nil, ErrNoAction
	}
	return legal[a.rng.Intn(len(legal))], nil
}
