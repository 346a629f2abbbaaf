package scorer

import "math"

// decayFloor is the raw weight of the last-listed ingredient relative to
// the first, modeling a roughly two-orders-of-magnitude concentration
// falloff down a typical INCI list.
const decayFloor = 0.08

// rankWeight returns the unnormalized weight for position index out of
// total: exponential decay from 1.0 at the top to decayFloor at the bottom.
func rankWeight(index, total int) float64 {
	if total <= 1 {
		return 1.0
	}
	frac := float64(index) / float64(total-1)
	return math.Pow(decayFloor, frac)
}

// ConcentrationWeights returns the normalized position weights for a list
// of n ingredients. Weights sum to 1.0 and are strictly decreasing for
// n >= 2.
func ConcentrationWeights(n int) []float64 {
	if n <= 0 {
		return nil
	}

	weights := make([]float64, n)
	var sum float64
	for i := range weights {
		weights[i] = rankWeight(i, n)
		sum += weights[i]
	}
	for i := range weights {
		weights[i] /= sum
	}
	return weights
}
