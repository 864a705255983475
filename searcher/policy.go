package searcher

import "math"

// puct scores the children of one parent:
// mean + c * prior * sqrt(N) / (1 + n)
type puct struct {
	numerator float64
}

func newPUCT(cPuct float64, parentVisits int) puct {
	if parentVisits < 0 {
		panic("parent visits cannot be negative")
	}
	return puct{numerator: cPuct * math.Sqrt(float64(parentVisits))}
}

func (p puct) evaluate(mean, prior float64, visits int) float64 {
	return mean + p.numerator*prior/float64(1+visits)
}
