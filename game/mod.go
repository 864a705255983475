package game

import "errors"

// ActionSpace is the size of the fixed action index space: 64 board cells plus pass
const ActionSpace = 65

// PassIndex is the action index reserved for passing
const PassIndex = ActionSpace - 1

var (
	ErrInvalidMove  = errors.New("invalid move")
	ErrInvalidState = errors.New("invalid state")
)

// Action identifies a board cell or a pass. Implementations must be comparable
// so actions can key maps.
type Action interface {
	Index() int
	IsPass() bool
}

// State should be immutable - operations on State always return a new copy
type State interface {
	// Player returns +1 or -1 for the side to move
	Player() int
	// LegalActions is never empty: it holds a single pass when nothing else is legal
	LegalActions() []Action
	Play(Action) (State, error)
	IsTerminal() bool
	// Reward is defined for terminal states only, from player 1's perspective
	Reward() (float64, error)
}

// Evaluates a non-terminal state to a score in [-1, 1] from player 1's
// perspective (positive favours player 1).
type Evaluate func(State) float64

// Validator is implemented by states that can report whether they are well formed.
type Validator interface {
	Validate() error
}

// Validate checks s when it implements Validator.
func Validate(s State) error {
	if s == nil {
		return ErrInvalidState
	}
	if v, ok := s.(Validator); ok {
		return v.Validate()
	}
	return nil
}
