package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	t.Run("creates a run directory under the root", func(t *testing.T) {
		root := t.TempDir()
		w, err := NewWriter(root, "match")
		require.NoError(t, err)

		rel, err := filepath.Rel(filepath.Join(root, "match"), w.Dir())
		require.NoError(t, err)
		require.NotContains(t, rel, "..")
		info, err := os.Stat(w.Dir())
		require.NoError(t, err)
		require.True(t, info.IsDir())
	})

	t.Run("writes one row per record after the header", func(t *testing.T) {
		w, err := NewWriter(t.TempDir(), "match")
		require.NoError(t, err)

		require.NoError(t, w.WriteAgentConfigs([]AgentConfig{
			{ID: 1, Kind: "minimax", Depth: 3, Heuristic: "mean"},
			{ID: 2, Kind: "mcts", Simulations: 100, CPuct: 1.5, Evaluator: "uniform"},
		}))
		require.NoError(t, w.WriteGameRecords([]GameRecord{
			{ID: 1, Agent1: 1, Agent2: 2, Black: 1, GameMetric: GameMetric{Winner: -1, Discs1: 20, Discs2: 44, TotalMoves: 60, StartTime: time.Now(), EndTime: time.Now()}},
		}))
		require.NoError(t, w.WriteMoveRecords([]MoveRecord{
			{Game: 1, MoveMetric: MoveMetric{Step: 1, Player: 1, Action: "d3", SearchMetric: SearchMetric{Algorithm: "negamax", Nodes: 21, Cutoffs: 3}}},
			{Game: 1, MoveMetric: MoveMetric{Step: 2, Player: -1, Action: "c3", SearchMetric: SearchMetric{Algorithm: "mcts", Episodes: 100}}},
		}))

		configs := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
		require.Len(t, configs, 3)
		require.Equal(t, []string{"2", "mcts", "0", "", "100", "1.5", "0", "uniform"}, configs[2])

		games := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
		require.Len(t, games, 2)
		require.Equal(t, "-1", games[1][4])
		require.Equal(t, "60", games[1][7])

		moves := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
		require.Len(t, moves, 3)
		require.Equal(t, []string{"1", "1", "1", "d3", "negamax"}, moves[1][:5])
		require.Equal(t, "21", moves[1][9])
		require.Equal(t, "100", moves[2][6])
	})
}

func TestCollector(t *testing.T) {
	t.Run("counts events between start and complete", func(t *testing.T) {
		c := NewCollector()
		c.Start("mcts", 0)
		c.AddEpisode()
		c.AddEpisode()
		c.AddExpansion()
		c.AddTerminal()
		c.ObserveDepth(4)
		c.ObserveDepth(2)

		metric := c.Complete()
		require.Equal(t, "mcts", metric.Algorithm)
		require.Equal(t, 2, metric.Episodes)
		require.Equal(t, 1, metric.Expansions)
		require.Equal(t, 1, metric.TerminalHits)
		require.Equal(t, 4, metric.Depth)
	})

	t.Run("start resets previous counts", func(t *testing.T) {
		c := NewCollector()
		c.Start("negamax", 3)
		c.AddNode()
		c.AddCutoff()
		c.Complete()

		c.Start("negamax", 2)
		metric := c.Complete()
		require.Zero(t, metric.Nodes)
		require.Zero(t, metric.Cutoffs)
		require.Equal(t, 2, metric.Depth)
	})

	t.Run("dummy collector records nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start("mcts", 0)
		c.AddEpisode()
		require.Equal(t, SearchMetric{}, c.Complete())
	})
}
