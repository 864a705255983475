package evaluator

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"othello/game"
	"othello/game/othello"
)

// Features is the length of the input encoding: one slot per cell seen from
// the mover's side, plus a constant bias slot.
const Features = othello.Size*othello.Size + 1

var ErrShape = errors.New("weight shape mismatch")

// Linear is a single-layer policy/value estimator. Policy logits are W·x + b
// passed through a softmax, the value is tanh(v·x + c) reported from player
// 1's perspective.
type Linear struct {
	policyW *mat.Dense    // ActionSpace x Features
	policyB *mat.VecDense // ActionSpace
	valueW  *mat.VecDense // Features
	valueB  float64
}

func NewLinear(policyW, policyB, valueW []float64, valueB float64) (*Linear, error) {
	if len(policyW) != game.ActionSpace*Features {
		return nil, fmt.Errorf("%w: policy weights have %d entries, want %d", ErrShape, len(policyW), game.ActionSpace*Features)
	}
	if len(policyB) != game.ActionSpace {
		return nil, fmt.Errorf("%w: policy bias has %d entries, want %d", ErrShape, len(policyB), game.ActionSpace)
	}
	if len(valueW) != Features {
		return nil, fmt.Errorf("%w: value weights have %d entries, want %d", ErrShape, len(valueW), Features)
	}
	return &Linear{
		policyW: mat.NewDense(game.ActionSpace, Features, append([]float64(nil), policyW...)),
		policyB: mat.NewVecDense(game.ActionSpace, append([]float64(nil), policyB...)),
		valueW:  mat.NewVecDense(Features, append([]float64(nil), valueW...)),
		valueB:  valueB,
	}, nil
}

// NewRandomLinear draws every weight from N(0, scale²) using a stream
// seeded with seed.
func NewRandomLinear(seed uint64, scale float64) *Linear {
	rng := rand.New(rand.NewSource(seed))
	draw := func(n int) []float64 {
		w := make([]float64, n)
		for i := range w {
			w[i] = rng.NormFloat64() * scale
		}
		return w
	}

	l, err := NewLinear(
		draw(game.ActionSpace*Features),
		draw(game.ActionSpace),
		draw(Features),
		rng.NormFloat64()*scale,
	)
	if err != nil {
		panic(err)
	}
	return l
}

func (l *Linear) Predict(state game.State) ([]float64, float64) {
	x := encode(state)

	policy := make([]float64, game.ActionSpace)
	logits := mat.NewVecDense(game.ActionSpace, policy)
	logits.MulVec(l.policyW, x)
	logits.AddVec(logits, l.policyB)
	softmax(policy)

	value := math.Tanh(mat.Dot(l.valueW, x) + l.valueB)
	return policy, float64(state.Player()) * value
}

func encode(state game.State) *mat.VecDense {
	s, ok := state.(*othello.State)
	if !ok {
		panic("unexpected state type")
	}
	board := s.Board()
	player := othello.Cell(s.Player())

	x := make([]float64, Features)
	for row := range othello.Size {
		for col := range othello.Size {
			x[row*othello.Size+col] = float64(board[row][col] * player)
		}
	}
	x[Features-1] = 1
	return mat.NewVecDense(Features, x)
}

func softmax(logits []float64) {
	floats.AddConst(-floats.Max(logits), logits)
	for i, v := range logits {
		logits[i] = math.Exp(v)
	}
	floats.Scale(1/floats.Sum(logits), logits)
}
