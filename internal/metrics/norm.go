package metrics

import (
	"math"

	"github.com/san-kum/shorsim/internal/shor"
)

// NormDrift records the largest |Σ|amp|² - 1| seen over the stages of an
// attempt.
type NormDrift struct {
	name     string
	maxDrift float64
	samples  int
}

func NewNormDrift() *NormDrift {
	return &NormDrift{name: "norm_drift"}
}

func (d *NormDrift) Name() string { return d.name }

func (d *NormDrift) Observe(snap shor.Snapshot) {
	if snap.State == nil {
		return
	}
	drift := math.Abs(snap.State.TotalProbability() - 1)
	d.maxDrift = math.Max(d.maxDrift, drift)
	d.samples++
}

func (d *NormDrift) Value() float64 {
	return d.maxDrift
}

func (d *NormDrift) Reset() {
	d.maxDrift = 0
	d.samples = 0
}
