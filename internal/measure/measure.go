// Package measure implements projective measurement of one register of a
// two-register state: marginal probabilities, weighted sampling and collapse.
package measure

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/san-kum/shorsim/internal/quantum"
)

// Result is the outcome of measuring one register.
type Result struct {
	Register    quantum.Register
	Outcome     int
	Probability float64
	State       *quantum.StateVector
}

func registerValue(s *quantum.StateVector, r quantum.Register, i int) int {
	a, b := s.Split(i)
	if r == quantum.RegisterA {
		return a
	}
	return b
}

// Probabilities returns the marginal distribution of register r: entry v is
// the total |amplitude|² over basis indices whose r-bits equal v.
func Probabilities(s *quantum.StateVector, r quantum.Register) ([]float64, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil state", quantum.ErrInvalidParameter)
	}
	w, err := s.Width(r)
	if err != nil {
		return nil, err
	}

	// same zero threshold as Collapse, so a sampled outcome always has mass
	probs := make([]float64, 1<<w)
	s.NonZero(func(i int, amp complex128) {
		probs[registerValue(s, r, i)] += real(amp)*real(amp) + imag(amp)*imag(amp)
	})
	return probs, nil
}

// Sample draws an index from the unnormalized weights probs using src.
func Sample(probs []float64, src rand.Source) (int, error) {
	if src == nil {
		return 0, fmt.Errorf("%w: nil random source", quantum.ErrInvalidParameter)
	}
	if len(probs) == 0 {
		return 0, fmt.Errorf("%w: empty distribution", quantum.ErrInvalidParameter)
	}
	for i, p := range probs {
		if p < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
			return 0, fmt.Errorf("%w: weight %d is %g", quantum.ErrInvalidParameter, i, p)
		}
	}
	if floats.Sum(probs) < quantum.Tolerance {
		return 0, fmt.Errorf("%w: distribution has no mass", quantum.ErrNormalizationFailure)
	}

	dist := distuv.NewCategorical(probs, src)
	return int(dist.Rand()), nil
}

// Collapse keeps the amplitudes whose r-bits equal outcome and renormalizes.
// It fails with ErrNormalizationFailure if no mass matches.
func Collapse(s *quantum.StateVector, r quantum.Register, outcome int) (*quantum.StateVector, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil state", quantum.ErrInvalidParameter)
	}
	w, err := s.Width(r)
	if err != nil {
		return nil, err
	}
	if outcome < 0 || outcome >= 1<<w {
		return nil, fmt.Errorf("%w: outcome %d outside register %v of width %d", quantum.ErrInvalidParameter, outcome, r, w)
	}

	out := make([]complex128, s.Dim())
	s.NonZero(func(i int, amp complex128) {
		if registerValue(s, r, i) == outcome {
			out[i] = amp
		}
	})

	m, n := s.RegisterWidths()
	collapsed, err := quantum.FromAmplitudes(m, n, out)
	if err != nil {
		return nil, fmt.Errorf("collapse register %v to %d: %w", r, outcome, err)
	}
	return collapsed, nil
}

// Measure samples register r of s and returns the collapsed state.
func Measure(s *quantum.StateVector, r quantum.Register, src rand.Source) (Result, error) {
	probs, err := Probabilities(s, r)
	if err != nil {
		return Result{}, err
	}

	outcome, err := Sample(probs, src)
	if err != nil {
		return Result{}, err
	}

	collapsed, err := Collapse(s, r, outcome)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Register:    r,
		Outcome:     outcome,
		Probability: probs[outcome] / floats.Sum(probs),
		State:       collapsed,
	}, nil
}
