package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/shorsim/internal/measure"
	"github.com/san-kum/shorsim/internal/quantum"
	"github.com/san-kum/shorsim/internal/shor"
)

// Entropy is the Shannon entropy, in bits, of the register-A distribution
// right after the QFT. Lower values mean sharper peaks.
type Entropy struct {
	name  string
	value float64
	seen  bool
}

func NewEntropy() *Entropy {
	return &Entropy{name: "qft_entropy"}
}

func (e *Entropy) Name() string { return e.name }

func (e *Entropy) Observe(snap shor.Snapshot) {
	if snap.Stage != shor.StageQFT || snap.State == nil {
		return
	}
	probs, err := measure.Probabilities(snap.State, quantum.RegisterA)
	if err != nil {
		return
	}
	e.value = Bits(probs)
	e.seen = true
}

func (e *Entropy) Value() float64 {
	if !e.seen {
		return 0
	}
	return e.value
}

func (e *Entropy) Reset() {
	e.value = 0
	e.seen = false
}

// Bits returns the Shannon entropy of p in bits.
func Bits(p []float64) float64 {
	return stat.Entropy(p) / math.Ln2
}
