package othello

import (
	"fmt"

	"github.com/samber/lo"

	"othello/game"
)

// State is an Othello position. Values are never mutated after construction:
// Play returns a new State with its own copy of the board.
type State struct {
	board  Board
	player int // +1 or -1, the side to move
	passes int // consecutive passes leading to this position
}

// Initial returns the standard starting position with player 1 to move.
func Initial() *State {
	return &State{
		board:  InitialBoard(),
		player: int(Player1),
	}
}

// New builds a state from an arbitrary board, e.g. for analysis or tests.
func New(board Board, player int, passes int) (*State, error) {
	s := &State{board: board, player: player, passes: passes}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *State) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: nil state", game.ErrInvalidState)
	}
	if s.player != int(Player1) && s.player != int(Player2) {
		return fmt.Errorf("%w: player %d is not +1 or -1", game.ErrInvalidState, s.player)
	}
	if s.passes < 0 || s.passes > 2 {
		return fmt.Errorf("%w: %d consecutive passes", game.ErrInvalidState, s.passes)
	}
	for row := range Size {
		for col := range Size {
			if c := s.board[row][col]; c != Empty && c != Player1 && c != Player2 {
				return fmt.Errorf("%w: cell (%d,%d) holds %d", game.ErrInvalidState, row, col, c)
			}
		}
	}
	return nil
}

func (s *State) Player() int { return s.player }

func (s *State) Passes() int { return s.passes }

// Board returns a copy of the board.
func (s *State) Board() Board { return s.board }

// Discs counts the discs of the given player (+1 or -1).
func (s *State) Discs(player int) int {
	return s.board.Count(Cell(player))
}

// placements lists every empty cell that flanks at least one opponent disc
// for the side to move, in row-major order.
func (s *State) placements() []Action {
	me := Cell(s.player)
	var actions []Action
	for row := range Size {
		for col := range Size {
			if s.board[row][col] != Empty {
				continue
			}
			if s.board.captures(row, col, me) {
				actions = append(actions, Place(row, col))
			}
		}
	}
	return actions
}

func (s *State) LegalActions() []game.Action {
	placements := s.placements()
	if len(placements) == 0 {
		return []game.Action{Pass()}
	}
	actions := make([]game.Action, len(placements))
	for i, a := range placements {
		actions[i] = a
	}
	return actions
}

func (s *State) Play(action game.Action) (game.State, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	a, err := toAction(action)
	if err != nil {
		return nil, err
	}

	next := *s
	next.player = -s.player

	if a.IsPass() {
		next.passes = s.passes + 1
		if next.passes > 2 {
			next.passes = 2
		}
		return &next, nil
	}

	if !InBounds(a.row, a.col) {
		return nil, fmt.Errorf("%w: %s is out of bounds", game.ErrInvalidMove, a)
	}
	if s.board[a.row][a.col] != Empty {
		return nil, fmt.Errorf("%w: %s is not empty", game.ErrInvalidMove, a)
	}
	if !lo.Contains(s.placements(), a) {
		return nil, fmt.Errorf("%w: %s flanks no discs", game.ErrInvalidMove, a)
	}

	// Runs are measured on the previous board and written into the copy
	me := Cell(s.player)
	for _, d := range directions {
		n := s.board.run(a.row, a.col, d[0], d[1], me)
		for k := 1; k <= n; k++ {
			next.board[a.row+k*d[0]][a.col+k*d[1]] = me
		}
	}
	next.board[a.row][a.col] = me
	next.passes = 0

	return &next, nil
}

// IsTerminal is true once both sides have passed back to back. A full board
// is not terminal by itself.
func (s *State) IsTerminal() bool {
	return s.passes >= 2
}

func (s *State) Reward() (float64, error) {
	if !s.IsTerminal() {
		return 0, fmt.Errorf("%w: reward requested for a non-terminal state", game.ErrInvalidState)
	}
	p1, p2 := s.board.Count(Player1), s.board.Count(Player2)
	switch {
	case p1 > p2:
		return 1, nil
	case p1 < p2:
		return -1, nil
	default:
		return 0, nil
	}
}

// Render draws the board, marking the legal placements when showMoves is set.
func (s *State) Render(showMoves bool) string {
	var marks []Action
	if showMoves {
		marks = s.placements()
	}
	return s.board.Render(marks)
}

func (s *State) String() string {
	return s.Render(false)
}
