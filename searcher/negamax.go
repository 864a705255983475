package searcher

import (
	"math"

	"github.com/rs/zerolog/log"

	"othello/experiments/metrics"
	"othello/game"
	"othello/meta"
)

// Bound is the half-width of the root search window. Every score lies in
// [-1, 1], so the window never clips a real value.
const Bound = 2.0

type NegamaxOption func(n *Negamax)

type Negamax struct {
	depth    int
	evaluate game.Evaluate
	pruning  bool
	metrics  metrics.Collector
	last     metrics.SearchMetric
}

type Result struct {
	Action game.Action
	Score  float64       // from the perspective of the player to move
	Line   []game.Action // principal variation, starting with Action
}

func WithDepth(depth int) NegamaxOption {
	return func(n *Negamax) {
		n.depth = depth
	}
}

// WithoutPruning disables alpha-beta cutoffs. The result is unchanged, only
// the number of visited nodes grows.
func WithoutPruning() NegamaxOption {
	return func(n *Negamax) {
		n.pruning = false
	}
}

func WithNegamaxMetrics() NegamaxOption {
	return func(n *Negamax) {
		n.metrics = metrics.NewCollector()
	}
}

func NewNegamax(evaluate game.Evaluate, options ...NegamaxOption) *Negamax {
	n := &Negamax{ // Default values
		depth:    meta.DEPTH,
		evaluate: evaluate,
		pruning:  true,
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(n)
	}
	if n.evaluate == nil {
		panic("Must specify an evaluation function")
	}
	if n.depth < 0 {
		panic("Search depth cannot be negative")
	}
	return n
}

func (n *Negamax) Depth() int {
	return n.depth
}

// Metric returns the statistics of the most recent search. It is empty
// unless the searcher was built WithNegamaxMetrics.
func (n *Negamax) Metric() metrics.SearchMetric {
	return n.last
}

// Search returns the best action for the player to move together with its
// score. Ties go to the action listed first. Action is nil when the state
// is terminal or the depth is zero.
func (n *Negamax) Search(state game.State) (Result, error) {
	if err := game.Validate(state); err != nil {
		return Result{}, err
	}

	n.metrics.Start("negamax", n.depth)
	score, line, err := n.negamax(state, n.depth, -Bound, Bound)
	if err != nil {
		return Result{}, err
	}
	n.last = n.metrics.Complete()

	result := Result{Score: score, Line: line}
	if len(line) > 0 {
		result.Action = line[0]
	}
	log.Debug().
		Int("depth", n.depth).
		Int("nodes", n.last.Nodes).
		Int("cutoffs", n.last.Cutoffs).
		Float64("score", score).
		Msg("negamax-complete")
	return result, nil
}

func (n *Negamax) negamax(state game.State, depth int, alpha, beta float64) (float64, []game.Action, error) {
	n.metrics.AddNode()
	sign := float64(state.Player())

	if state.IsTerminal() {
		reward, err := state.Reward()
		if err != nil {
			return 0, nil, err
		}
		return sign * reward, nil, nil
	}
	if depth <= 0 {
		return sign * n.evaluate(state), nil, nil
	}

	best := math.Inf(-1)
	var line []game.Action
	for _, action := range state.LegalActions() {
		child, err := state.Play(action)
		if err != nil {
			return 0, nil, err
		}
		score, childLine, err := n.negamax(child, depth-1, -beta, -alpha)
		if err != nil {
			return 0, nil, err
		}
		score = -score

		if score > best {
			best = score
			line = append([]game.Action{action}, childLine...)
		}
		if n.pruning {
			alpha = max(alpha, score)
			if alpha >= beta {
				n.metrics.AddCutoff()
				break
			}
		}
	}
	return best, line, nil
}
