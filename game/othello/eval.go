package othello

import (
	"fmt"

	"othello/game"
)

// Heuristics score a position in [-1, 1] from player 1's perspective.

var positionalWeights = [Size][Size]int{
	{100, -20, 10, 5, 5, 10, -20, 100},
	{-20, -50, -2, -2, -2, -2, -50, -20},
	{10, -2, -1, -1, -1, -1, -2, 10},
	{5, -2, -1, -1, -1, -1, -2, 5},
	{5, -2, -1, -1, -1, -1, -2, 5},
	{10, -2, -1, -1, -1, -1, -2, 10},
	{-20, -50, -2, -2, -2, -2, -50, -20},
	{100, -20, 10, 5, 5, 10, -20, 100},
}

// Mean averages the cell values over the whole board.
func Mean(s game.State) float64 {
	b := board(s)
	sum := 0
	for row := range Size {
		for col := range Size {
			sum += int(b[row][col])
		}
	}
	return float64(sum) / (Size * Size)
}

// DiscDifference is (p1 - p2) / (p1 + p2).
func DiscDifference(s game.State) float64 {
	b := board(s)
	p1, p2 := b.Count(Player1), b.Count(Player2)
	if p1+p2 == 0 {
		return 0
	}
	return float64(p1-p2) / float64(p1+p2)
}

// Positional weighs squares with the classic corner/edge table and
// normalises by the total weight of the occupied squares.
func Positional(s game.State) float64 {
	b := board(s)
	score, total := 0, 0
	for row := range Size {
		for col := range Size {
			c := b[row][col]
			if c == Empty {
				continue
			}
			w := positionalWeights[row][col]
			score += int(c) * w
			if w < 0 {
				w = -w
			}
			total += w
		}
	}
	if total == 0 {
		return 0
	}
	return float64(score) / float64(total)
}

func board(s game.State) *Board {
	gs, ok := s.(*State)
	if !ok {
		panic("unexpected state type")
	}
	return &gs.board
}

// Heuristic looks up an evaluation function by its configuration name.
func Heuristic(name string) (game.Evaluate, error) {
	switch name {
	case "mean", "":
		return Mean, nil
	case "discs":
		return DiscDifference, nil
	case "positional":
		return Positional, nil
	default:
		return nil, fmt.Errorf("unknown heuristic %q", name)
	}
}
