package engine

import (
	"othello/experiments/metrics"
	"othello/game"
	"othello/meta"
)

const MaxMoves = meta.MAX_MOVES

type Engine interface {
	// Run plays the game until it is terminal or the move limit is reached
	Run() (Result, error)
}

type Result struct {
	Winner   int  // +1, -1 or 0 for a draw or an unfinished game
	Terminal bool // false when the move limit stopped the game
	Final    game.State
	Game     metrics.GameMetric
	Moves    []metrics.MoveMetric
}

// discCounter is implemented by states that can report material.
type discCounter interface {
	Discs(player int) int
}
