package player

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/muesli/termenv"
	"github.com/samber/lo"

	"othello/game"
	"othello/game/othello"
)

// ErrQuit is returned when the human closes the input.
var ErrQuit = errors.New("player quit")

type LineReader interface {
	Readline() (string, error)
}

// Human asks a person for every move.
type Human struct {
	in  LineReader
	out *termenv.Output
}

func NewHuman(in LineReader, out *termenv.Output) *Human {
	return &Human{in: in, out: out}
}

// NewTerminalHuman reads moves from the terminal. The returned function
// releases the terminal.
func NewTerminalHuman(w io.Writer) (*Human, func() error, error) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "othello> ",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
	})
	if err != nil {
		return nil, nil, err
	}
	return NewHuman(l, termenv.NewOutput(w)), l.Close, nil
}

func (h *Human) SelectAction(state game.State, legal []game.Action) (game.Action, error) {
	if len(legal) == 0 {
		return nil, fmt.Errorf("%w: no legal action", game.ErrInvalidMove)
	}
	if s, ok := state.(*othello.State); ok {
		fmt.Fprint(h.out, Render(h.out, s, true))
	} else {
		fmt.Fprintln(h.out, state)
	}
	if len(legal) == 1 && legal[0].IsPass() {
		fmt.Fprintln(h.out, "no legal placement, passing")
		return legal[0], nil
	}

	for {
		fmt.Fprintf(h.out, "player %d to move (? lists moves)\n", state.Player())
		line, err := h.in.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return nil, ErrQuit
		}
		if err != nil {
			return nil, err
		}

		line = strings.TrimSpace(line)
		if line == "?" {
			fmt.Fprintln(h.out, strings.Join(lo.Map(legal, func(a game.Action, _ int) string { return fmt.Sprint(a) }), " "))
			continue
		}
		action, err := othello.ParseAction(line)
		if err != nil {
			fmt.Fprintf(h.out, "cannot read %q, use a column and a row like d3\n", line)
			continue
		}
		if !lo.Contains(legal, game.Action(action)) {
			fmt.Fprintf(h.out, "%s is not a legal move\n", action)
			continue
		}
		return action, nil
	}
}
