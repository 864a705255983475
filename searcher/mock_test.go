package searcher

import (
	"golang.org/x/exp/rand"

	"othello/game"
)

type mockAction int

func (a mockAction) Index() int   { return int(a) }
func (a mockAction) IsPass() bool { return false }

// mockState is a node of an explicit game tree. value is the reward at
// terminal nodes and the heuristic everywhere else.
type mockState struct {
	player   int
	value    float64
	terminal bool
	broken   bool // lists one action more than it can play
	children []*mockState
}

func (s *mockState) Player() int { return s.player }

func (s *mockState) LegalActions() []game.Action {
	n := len(s.children)
	if s.broken {
		n++
	}
	actions := make([]game.Action, n)
	for i := range actions {
		actions[i] = mockAction(i)
	}
	return actions
}

func (s *mockState) Play(action game.Action) (game.State, error) {
	i := action.Index()
	if i < 0 || i >= len(s.children) {
		return nil, game.ErrInvalidMove
	}
	return s.children[i], nil
}

func (s *mockState) IsTerminal() bool { return s.terminal }

func (s *mockState) Reward() (float64, error) {
	if !s.terminal {
		return 0, game.ErrInvalidState
	}
	return s.value, nil
}

func mockValue(s game.State) float64 {
	return s.(*mockState).value
}

func leaf(player int, reward float64) *mockState {
	return &mockState{player: player, value: reward, terminal: true}
}

func branch(player int, value float64, children ...*mockState) *mockState {
	return &mockState{player: player, value: value, children: children}
}

func randomTree(rng *rand.Rand, player, depth, branching int) *mockState {
	value := rng.Float64()*2 - 1
	if depth == 0 {
		return leaf(player, value)
	}
	s := branch(player, value)
	for range 1 + rng.Intn(branching) {
		s.children = append(s.children, randomTree(rng, -player, depth-1, branching))
	}
	return s
}

type mockPredictor struct {
	policy []float64
	value  float64
	calls  int
}

func (p *mockPredictor) Predict(state game.State) ([]float64, float64) {
	p.calls++
	return p.policy, p.value
}

func uniformPolicy() []float64 {
	policy := make([]float64, game.ActionSpace)
	for i := range policy {
		policy[i] = 1.0 / game.ActionSpace
	}
	return policy
}
