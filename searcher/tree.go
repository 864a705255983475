package searcher

import (
	"othello/game"
)

const root = 0

// node is one entry of the search tree arena. Children are stored in the
// order the state listed its legal actions.
type node struct {
	state    game.State
	parent   int // -1 for the root
	actions  []game.Action
	children []int
	visits   int
	value    float64
	prior    float64
	expanded bool
}

func (n *node) mean() float64 {
	if n.visits == 0 {
		return 0
	}
	return n.value / float64(n.visits)
}

type tree struct {
	nodes []node
}

func newTree(state game.State) *tree {
	return &tree{nodes: []node{{state: state, parent: -1}}}
}

func (t *tree) add(parent int, action game.Action, state game.State, prior float64) int {
	child := len(t.nodes)
	t.nodes = append(t.nodes, node{state: state, parent: parent, prior: prior})
	t.nodes[parent].actions = append(t.nodes[parent].actions, action)
	t.nodes[parent].children = append(t.nodes[parent].children, child)
	return child
}

// selectChild returns the child with the highest PUCT score. Ties go to
// the child inserted first.
func (t *tree) selectChild(parent int, cPuct float64) int {
	p := &t.nodes[parent]
	score := newPUCT(cPuct, p.visits)

	best := p.children[0]
	bestScore := score.evaluate(t.nodes[best].mean(), t.nodes[best].prior, t.nodes[best].visits)
	for _, child := range p.children[1:] {
		c := &t.nodes[child]
		if s := score.evaluate(c.mean(), c.prior, c.visits); s > bestScore {
			best, bestScore = child, s
		}
	}
	return best
}

// descend follows the best children from the root until it reaches a node
// that is unexpanded or terminal. The returned path starts at the root.
func (t *tree) descend(cPuct float64) []int {
	path := []int{root}
	current := root
	for t.nodes[current].expanded && !t.nodes[current].state.IsTerminal() {
		current = t.selectChild(current, cPuct)
		path = append(path, current)
	}
	return path
}

// backup credits value to every node on the path. Nodes whose mover is the
// root player gain the value and all others lose it.
func (t *tree) backup(path []int, value float64) {
	player := t.nodes[root].state.Player()
	for i := len(path) - 1; i >= 0; i-- {
		n := &t.nodes[path[i]]
		n.visits++
		if n.state.Player() == player {
			n.value += value
		} else {
			n.value -= value
		}
	}
}

// policy returns the visit distribution over the root's children.
func (t *tree) policy() map[game.Action]float64 {
	r := &t.nodes[root]
	total := 0
	for _, child := range r.children {
		total += t.nodes[child].visits
	}

	policy := make(map[game.Action]float64, len(r.children))
	for i, child := range r.children {
		if total == 0 {
			policy[r.actions[i]] = 0
			continue
		}
		policy[r.actions[i]] = float64(t.nodes[child].visits) / float64(total)
	}
	return policy
}
