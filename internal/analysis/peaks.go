package analysis

import (
	"math"
	"sort"
)

// Outcome is a register value and its probability.
type Outcome struct {
	Value       int
	Probability float64
}

// ExpectedPeaks returns round(kQ/r) for k in [0, r): the register-A values
// where probability concentrates after the QFT when the period is r.
func ExpectedPeaks(Q, r int) []int {
	if Q <= 0 || r <= 0 {
		return nil
	}
	peaks := make([]int, r)
	for k := 0; k < r; k++ {
		peaks[k] = int(math.Round(float64(k)*float64(Q)/float64(r))) % Q
	}
	return peaks
}

// TopOutcomes returns the k most probable entries of dist, highest first.
// Ties keep the lower value first.
func TopOutcomes(dist []float64, k int) []Outcome {
	out := make([]Outcome, len(dist))
	for v, p := range dist {
		out[v] = Outcome{Value: v, Probability: p}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Probability > out[j].Probability
	})
	if k >= 0 && k < len(out) {
		out = out[:k]
	}
	return out
}

// PeakMass returns the total probability within ±width of the expected peaks
// for period r.
func PeakMass(dist []float64, r, width int) float64 {
	Q := len(dist)
	seen := make(map[int]bool)
	mass := 0.0
	for _, p := range ExpectedPeaks(Q, r) {
		for d := -width; d <= width; d++ {
			v := ((p+d)%Q + Q) % Q
			if seen[v] {
				continue
			}
			seen[v] = true
			mass += dist[v]
		}
	}
	return mass
}
