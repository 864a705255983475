package searcher

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"othello/experiments/metrics"
	"othello/game"
	"othello/meta"
)

type Option func(mcts *MCTS)

// MCTS is a PUCT-guided tree search. A fresh tree is built on every call to
// Search and discarded afterwards.
type MCTS struct {
	simulations int
	cPuct       float64
	predictor   Predictor
	metrics     metrics.Collector
	last        metrics.SearchMetric
}

func WithSimulations(simulations int) Option {
	return func(m *MCTS) {
		m.simulations = simulations
	}
}

func WithCPuct(cPuct float64) Option {
	return func(m *MCTS) {
		if cPuct >= 0 {
			m.cPuct = cPuct
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(predictor Predictor, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		simulations: meta.SIMULATIONS,
		cPuct:       meta.C_PUCT,
		predictor:   predictor,
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.predictor == nil {
		panic("Must specify a predictor")
	}
	if m.simulations <= 0 {
		panic("Must specify a positive number of simulations")
	}
	return m
}

func (m *MCTS) Simulations() int {
	return m.simulations
}

// Metric returns the statistics of the most recent search. It is empty
// unless the searcher was built WithMetrics.
func (m *MCTS) Metric() metrics.SearchMetric {
	return m.last
}

// Search runs the configured number of simulations from state and returns
// the visit distribution over the root's legal actions.
func (m *MCTS) Search(state game.State) (map[game.Action]float64, error) {
	if err := game.Validate(state); err != nil {
		return nil, err
	}
	if state.IsTerminal() {
		return nil, fmt.Errorf("%w: cannot search from a terminal state", game.ErrInvalidState)
	}

	m.metrics.Start("mcts", 0)
	t := newTree(state)
	policy, _ := m.predictor.Predict(state)
	if err := m.expand(t, root, policy); err != nil {
		return nil, err
	}

	for range m.simulations {
		if err := m.simulate(t); err != nil {
			return nil, err
		}
		m.metrics.AddEpisode()
	}

	m.last = m.metrics.Complete()
	log.Debug().
		Int("simulations", m.simulations).
		Int("nodes", len(t.nodes)).
		Int("depth", m.last.Depth).
		Msg("mcts-complete")
	return t.policy(), nil
}

func (m *MCTS) simulate(t *tree) error {
	path := t.descend(m.cPuct)
	leaf := path[len(path)-1]
	state := t.nodes[leaf].state
	m.metrics.ObserveDepth(len(path) - 1)

	var value float64
	if state.IsTerminal() {
		reward, err := state.Reward()
		if err != nil {
			return err
		}
		value = reward
		m.metrics.AddTerminal()
	} else {
		policy, v := m.predictor.Predict(state)
		if err := m.expand(t, leaf, policy); err != nil {
			return err
		}
		value = v
	}

	t.backup(path, value)
	return nil
}

// expand adds one child per legal action of the node, each carrying the
// prior the predictor assigned to its index.
func (m *MCTS) expand(t *tree, parent int, policy []float64) error {
	if len(policy) != game.ActionSpace {
		return fmt.Errorf("%w: policy has %d entries, want %d", ErrContractViolation, len(policy), game.ActionSpace)
	}

	state := t.nodes[parent].state
	t.nodes[parent].expanded = true
	for _, action := range state.LegalActions() {
		index := action.Index()
		if index < 0 || index >= len(policy) {
			return fmt.Errorf("%w: action index %d outside the policy", ErrContractViolation, index)
		}
		child, err := state.Play(action)
		if err != nil {
			return err
		}
		t.add(parent, action, child, policy[index])
	}
	m.metrics.AddExpansion()
	return nil
}
