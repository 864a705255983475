package othello

import (
	"fmt"
	"strings"

	"othello/game"
)

// Action is either a disc placement or a pass. Construct it with Place or
// Pass; the zero value is the placement at a1.
type Action struct {
	row  int
	col  int
	pass bool
}

func Place(row, col int) Action {
	return Action{row: row, col: col}
}

func Pass() Action {
	return Action{row: -1, col: -1, pass: true}
}

func (a Action) Row() int { return a.row }

func (a Action) Col() int { return a.col }

func (a Action) IsPass() bool { return a.pass }

// Index maps the action into the 65-slot action space: row*8+col for cells,
// game.PassIndex for a pass.
func (a Action) Index() int {
	if a.pass {
		return game.PassIndex
	}
	return a.row*Size + a.col
}

// FromIndex is the inverse of Index.
func FromIndex(index int) (Action, error) {
	if index < 0 || index >= game.ActionSpace {
		return Action{}, fmt.Errorf("%w: action index %d outside [0, %d)", game.ErrInvalidMove, index, game.ActionSpace)
	}
	if index == game.PassIndex {
		return Pass(), nil
	}
	return Place(index/Size, index%Size), nil
}

// String renders the action in board notation, e.g. "d3" for row 2, column 3
func (a Action) String() string {
	if a.pass {
		return "pass"
	}
	if !InBounds(a.row, a.col) {
		return fmt.Sprintf("(%d,%d)", a.row, a.col)
	}
	return fmt.Sprintf("%c%d", 'a'+rune(a.col), a.row+1)
}

// ParseAction reads "pass" or a column letter a-h followed by a row digit 1-8.
func ParseAction(s string) (Action, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "pass" {
		return Pass(), nil
	}
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return Action{}, fmt.Errorf("%w: %q, use a format like 'd3' or 'pass'", game.ErrInvalidMove, s)
	}
	return Place(int(s[1]-'1'), int(s[0]-'a')), nil
}

// toAction converts any game.Action into an othello Action
func toAction(a game.Action) (Action, error) {
	switch a := a.(type) {
	case Action:
		return a, nil
	case nil:
		return Action{}, fmt.Errorf("%w: nil action", game.ErrInvalidMove)
	default:
		if a.IsPass() {
			return Pass(), nil
		}
		return FromIndex(a.Index())
	}
}
