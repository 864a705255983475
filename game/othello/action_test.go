package othello

import (
	"testing"

	"github.com/stretchr/testify/require"

	"othello/game"
)

func TestActionIndex(t *testing.T) {
	t.Run("round trips every slot of the action space", func(t *testing.T) {
		for i := range game.ActionSpace {
			a, err := FromIndex(i)
			require.NoError(t, err)
			require.Equal(t, i, a.Index())
		}
	})

	t.Run("maps cells row-major and pass to 64", func(t *testing.T) {
		require.Equal(t, 0, Place(0, 0).Index())
		require.Equal(t, 19, Place(2, 3).Index())
		require.Equal(t, 63, Place(7, 7).Index())
		require.Equal(t, game.PassIndex, Pass().Index())
		require.True(t, Pass().IsPass())
		require.False(t, Place(0, 0).IsPass())
	})

	t.Run("rejects indices outside the action space", func(t *testing.T) {
		_, err := FromIndex(-1)
		require.ErrorIs(t, err, game.ErrInvalidMove)

		_, err = FromIndex(game.ActionSpace)
		require.ErrorIs(t, err, game.ErrInvalidMove)
	})

	t.Run("equal actions compare equal", func(t *testing.T) {
		from, err := FromIndex(game.PassIndex)
		require.NoError(t, err)
		require.Equal(t, Pass(), from)
		require.True(t, Place(4, 5) == Place(4, 5))
	})
}

func TestParseAction(t *testing.T) {
	t.Run("parses board notation", func(t *testing.T) {
		cases := map[string]Action{
			"d3":   Place(2, 3),
			"C4":   Place(3, 2),
			" a1 ": Place(0, 0),
			"h8":   Place(7, 7),
			"pass": Pass(),
			"PASS": Pass(),
		}
		for text, want := range cases {
			got, err := ParseAction(text)
			require.NoError(t, err, text)
			require.Equal(t, want, got, text)
		}
	})

	t.Run("rejects malformed notation", func(t *testing.T) {
		for _, text := range []string{"", "d", "d9", "i3", "3d", "d33", "stop"} {
			_, err := ParseAction(text)
			require.ErrorIs(t, err, game.ErrInvalidMove, text)
		}
	})

	t.Run("string and parse are inverse", func(t *testing.T) {
		for i := range game.ActionSpace {
			a, err := FromIndex(i)
			require.NoError(t, err)
			got, err := ParseAction(a.String())
			require.NoError(t, err)
			require.Equal(t, a, got)
		}
	})
}

func TestEvaluations(t *testing.T) {
	t.Run("initial position is balanced", func(t *testing.T) {
		s := Initial()
		require.Equal(t, 0.0, Mean(s))
		require.Equal(t, 0.0, DiscDifference(s))
		require.Equal(t, 0.0, Positional(s))
	})

	t.Run("scores favour player 1 after its capture", func(t *testing.T) {
		next, err := Initial().Play(Place(2, 3))
		require.NoError(t, err)

		require.InDelta(t, 3.0/64, Mean(next), 1e-9)
		require.InDelta(t, 3.0/5, DiscDifference(next), 1e-9)
		require.Greater(t, Positional(next), 0.0)
	})

	t.Run("corners dominate the positional score", func(t *testing.T) {
		var b Board
		b[0][0] = Player2
		b[3][3], b[3][4], b[4][3] = Player1, Player1, Player1
		s, err := New(b, 1, 0)
		require.NoError(t, err)

		require.Less(t, Positional(s), 0.0)
		require.GreaterOrEqual(t, Positional(s), -1.0)
	})
}

func TestHeuristic(t *testing.T) {
	t.Run("resolves known names", func(t *testing.T) {
		for _, name := range []string{"", "mean", "discs", "positional"} {
			evaluate, err := Heuristic(name)
			require.NoError(t, err, name)
			require.Equal(t, 0.0, evaluate(Initial()), name)
		}
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		_, err := Heuristic("mobility")
		require.Error(t, err)
	})
}
