package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"othello/game"
	"othello/game/othello"
)

func TestNewNegamax(t *testing.T) {
	t.Run("panics without an evaluation function", func(t *testing.T) {
		require.Panics(t, func() {
			NewNegamax(nil)
		})
	})

	t.Run("panics with a negative depth", func(t *testing.T) {
		require.Panics(t, func() {
			NewNegamax(mockValue, WithDepth(-1))
		})
	})
}

func TestNegamaxSearch(t *testing.T) {
	t.Run("player 1 maximises the reward", func(t *testing.T) {
		root := branch(1, 0, leaf(-1, 0.2), leaf(-1, 0.7), leaf(-1, 0.7))

		result, err := NewNegamax(mockValue, WithDepth(1)).Search(root)
		require.NoError(t, err)

		require.Equal(t, mockAction(1), result.Action, "Ties should go to the first action")
		require.Equal(t, 0.7, result.Score)
		require.Equal(t, []game.Action{mockAction(1)}, result.Line)
	})

	t.Run("player 2 minimises the reward", func(t *testing.T) {
		root := branch(-1, 0, leaf(1, -0.5), leaf(1, 0.3))

		result, err := NewNegamax(mockValue, WithDepth(1)).Search(root)
		require.NoError(t, err)

		require.Equal(t, mockAction(0), result.Action)
		require.Equal(t, 0.5, result.Score, "Score should be from the mover's perspective")
	})

	t.Run("evaluates the heuristic at the depth limit", func(t *testing.T) {
		root := branch(1, 0,
			branch(-1, -0.4, leaf(1, 1)),
			branch(-1, 0.1, leaf(1, -1)),
		)

		result, err := NewNegamax(mockValue, WithDepth(1)).Search(root)
		require.NoError(t, err)
		require.Equal(t, mockAction(1), result.Action)
		require.Equal(t, 0.1, result.Score)

		result, err = NewNegamax(mockValue, WithDepth(2)).Search(root)
		require.NoError(t, err)
		require.Equal(t, mockAction(0), result.Action, "Deeper search should see the terminal rewards")
		require.Equal(t, 1.0, result.Score)
		require.Equal(t, []game.Action{mockAction(0), mockAction(0)}, result.Line)
	})

	t.Run("terminal root returns its reward and no action", func(t *testing.T) {
		result, err := NewNegamax(mockValue).Search(leaf(-1, 1))
		require.NoError(t, err)

		require.Nil(t, result.Action)
		require.Equal(t, -1.0, result.Score)
	})

	t.Run("depth zero evaluates the root", func(t *testing.T) {
		root := branch(-1, 0.25, leaf(1, 1))

		result, err := NewNegamax(mockValue, WithDepth(0)).Search(root)
		require.NoError(t, err)
		require.Nil(t, result.Action)
		require.Equal(t, -0.25, result.Score)
	})

	t.Run("rejects a missing state", func(t *testing.T) {
		_, err := NewNegamax(mockValue).Search(nil)
		require.ErrorIs(t, err, game.ErrInvalidState)
	})

	t.Run("propagates errors from play", func(t *testing.T) {
		root := branch(1, 0, leaf(-1, 0))
		root.broken = true

		_, err := NewNegamax(mockValue, WithDepth(1)).Search(root)
		require.ErrorIs(t, err, game.ErrInvalidMove)
	})

	t.Run("is deterministic", func(t *testing.T) {
		root := randomTree(rand.New(rand.NewSource(7)), 1, 5, 4)
		negamax := NewNegamax(mockValue, WithDepth(4))

		first, err := negamax.Search(root)
		require.NoError(t, err)
		second, err := negamax.Search(root)
		require.NoError(t, err)
		require.Equal(t, first, second)
	})
}

func TestNegamaxPruning(t *testing.T) {
	t.Run("agrees with a full-width search", func(t *testing.T) {
		cutoffs := 0
		for seed := range uint64(50) {
			root := randomTree(rand.New(rand.NewSource(seed)), 1, 6, 4)
			for _, depth := range []int{3, 6} {
				pruned := NewNegamax(mockValue, WithDepth(depth), WithNegamaxMetrics())
				full := NewNegamax(mockValue, WithDepth(depth), WithoutPruning(), WithNegamaxMetrics())

				want, err := full.Search(root)
				require.NoError(t, err)
				got, err := pruned.Search(root)
				require.NoError(t, err)

				require.Equal(t, want.Action, got.Action, "seed %d depth %d", seed, depth)
				require.Equal(t, want.Score, got.Score, "seed %d depth %d", seed, depth)
				require.Equal(t, got.Action, got.Line[0])
				require.LessOrEqual(t, pruned.Metric().Nodes, full.Metric().Nodes)
				require.Zero(t, full.Metric().Cutoffs)
				cutoffs += pruned.Metric().Cutoffs
			}
		}
		require.Positive(t, cutoffs, "Pruning should cut at least one branch")
	})

	t.Run("agrees on othello positions", func(t *testing.T) {
		state := othello.Initial()
		pruned := NewNegamax(othello.Mean, WithDepth(3))
		full := NewNegamax(othello.Mean, WithDepth(3), WithoutPruning())

		want, err := full.Search(state)
		require.NoError(t, err)
		got, err := pruned.Search(state)
		require.NoError(t, err)

		require.Equal(t, want.Action, got.Action)
		require.Equal(t, want.Score, got.Score)
		require.Contains(t, state.LegalActions(), got.Action)
	})
}
