package scoring

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Softmax normalizes scores in place after shifting by their maximum so the
// largest exponent is exp(0).
func Softmax(scores []float64) []float64 {
	if len(scores) == 0 {
		return scores
	}
	if floats.HasNaN(scores) {
		for i := range scores {
			scores[i] = math.NaN()
		}
		return scores
	}

	floats.AddConst(-floats.Max(scores), scores)
	for i, s := range scores {
		scores[i] = math.Exp(s)
	}
	floats.Scale(1/floats.Sum(scores), scores)
	return scores
}

// Certainty is the two-way softmax of an object and an attack similarity.
// NaN in either input yields NaN for both outputs.
func Certainty(sObj, sAtk float64) (obj, atk float64) {
	p := Softmax([]float64{sObj, sAtk})
	return p[0], p[1]
}
