package othello

import "strings"

const Size = 8

// Cell holds the occupant of a square: Empty, or the disc of player +1 or -1
type Cell int8

const (
	Empty   Cell = 0
	Player1 Cell = 1
	Player2 Cell = -1
)

// Board is a plain array so that copying a state copies its board.
type Board [Size][Size]Cell

var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

func InBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < Size && col < Size
}

// InitialBoard places two discs per player diagonally in the centre.
func InitialBoard() Board {
	var b Board
	b[3][3], b[4][4] = Player2, Player2
	b[3][4], b[4][3] = Player1, Player1
	return b
}

func (b *Board) Count(c Cell) int {
	n := 0
	for row := range Size {
		for col := range Size {
			if b[row][col] == c {
				n++
			}
		}
	}
	return n
}

// run returns how many opponent discs lie between (row, col) and the next disc
// of color me along (dr, dc). It returns 0 when the run is closed by an empty
// cell or the edge instead.
func (b *Board) run(row, col, dr, dc int, me Cell) int {
	n := 0
	r, c := row+dr, col+dc
	for InBounds(r, c) {
		switch b[r][c] {
		case -me:
			n++
		case me:
			return n
		default:
			return 0
		}
		r += dr
		c += dc
	}
	return 0
}

// captures reports whether placing me at (row, col) flanks at least one disc.
func (b *Board) captures(row, col int, me Cell) bool {
	for _, d := range directions {
		if b.run(row, col, d[0], d[1], me) > 0 {
			return true
		}
	}
	return false
}

// Render draws the board with columns a-h and rows 1-8. Squares listed in
// marks are drawn as '*'.
func (b *Board) Render(marks []Action) string {
	marked := make(map[Action]bool, len(marks))
	for _, a := range marks {
		marked[a] = true
	}

	var sb strings.Builder
	sb.WriteString("  a  b  c  d  e  f  g  h\n")
	for row := range Size {
		sb.WriteByte(byte('1' + row))
		for col := range Size {
			switch {
			case marked[Place(row, col)]:
				sb.WriteString(" * ")
			case b[row][col] == Player1:
				sb.WriteString(" B ")
			case b[row][col] == Player2:
				sb.WriteString(" W ")
			default:
				sb.WriteString(" . ")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
