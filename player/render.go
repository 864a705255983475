package player

import (
	"strings"

	"github.com/muesli/termenv"
	"github.com/samber/lo"

	"othello/game"
	"othello/game/othello"
)

// Render draws s like othello.State.Render but with coloured discs when out
// supports colour.
func Render(out *termenv.Output, s *othello.State, showMoves bool) string {
	var marks []game.Action
	if showMoves {
		marks = lo.Reject(s.LegalActions(), func(a game.Action, _ int) bool { return a.IsPass() })
	}

	board := out.Color("22")
	black := out.String(" B ").Foreground(out.Color("0")).Background(board).Bold()
	white := out.String(" W ").Foreground(out.Color("15")).Background(board).Bold()
	empty := out.String(" . ").Faint().Background(board)
	mark := out.String(" * ").Foreground(out.Color("11")).Background(board)

	b := s.Board()
	var sb strings.Builder
	sb.WriteString("  a  b  c  d  e  f  g  h\n")
	for row := range othello.Size {
		sb.WriteByte(byte('1' + row))
		for col := range othello.Size {
			switch {
			case lo.Contains(marks, game.Action(othello.Place(row, col))):
				sb.WriteString(mark.String())
			case b[row][col] == othello.Player1:
				sb.WriteString(black.String())
			case b[row][col] == othello.Player2:
				sb.WriteString(white.String())
			default:
				sb.WriteString(empty.String())
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
