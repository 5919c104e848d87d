package shor

import (
	"fmt"
	"math/rand/v2"

	"github.com/san-kum/shorsim/internal/measure"
	"github.com/san-kum/shorsim/internal/oracle"
	"github.com/san-kum/shorsim/internal/period"
	"github.com/san-kum/shorsim/internal/qft"
	"github.com/san-kum/shorsim/internal/quantum"
)

// Pipeline binds the step functions to a gate engine.
type Pipeline struct {
	Engine *quantum.Engine
}

var defaultPipeline = Pipeline{Engine: quantum.DefaultEngine}

func (p Pipeline) engine() *quantum.Engine {
	if p.Engine == nil {
		return quantum.DefaultEngine
	}
	return p.Engine
}

func checkDims(s *quantum.StateVector, m, n int) error {
	if s == nil {
		return fmt.Errorf("%w: nil state", quantum.ErrInvalidParameter)
	}
	if sm, sn := s.RegisterWidths(); sm != m || sn != n {
		return fmt.Errorf("%w: state has m=%d n=%d, caller passed m=%d n=%d",
			quantum.ErrDimensionMismatch, sm, sn, m, n)
	}
	return nil
}

// Initialize returns |0⟩⊗m |0⟩⊗n.
func Initialize(m, n int) (*quantum.StateVector, error) {
	s, err := quantum.New(m, n)
	return s, opError("initialize", err)
}

// ApplySuperposition applies a Hadamard to every qubit of register A of the
// zero state.
func ApplySuperposition(s *quantum.StateVector, m, n int) (*quantum.StateVector, error) {
	return defaultPipeline.ApplySuperposition(s, m, n)
}

func (p Pipeline) ApplySuperposition(s *quantum.StateVector, m, n int) (*quantum.StateVector, error) {
	if err := checkDims(s, m, n); err != nil {
		return nil, opError("applySuperposition", err)
	}
	if !s.IsZeroState() {
		return nil, opError("applySuperposition", fmt.Errorf("%w: state is not |0⟩", quantum.ErrPreconditionFailed))
	}

	e := p.engine()
	out := s
	for q := 0; q < m; q++ {
		next, err := e.Apply(quantum.Hadamard(), []int{q}, out)
		if err != nil {
			return nil, opError("applySuperposition", err)
		}
		out = next
	}
	return out, nil
}

// ApplyOracle maps |x⟩|y⟩ to |x⟩|y ⊕ aˣ mod N⟩.
func ApplyOracle(s *quantum.StateVector, a, N, m, n int) (*quantum.StateVector, error) {
	return defaultPipeline.ApplyOracle(s, a, N, m, n)
}

func (p Pipeline) ApplyOracle(s *quantum.StateVector, a, N, m, n int) (*quantum.StateVector, error) {
	o, err := oracle.NewModExp(a, N, m, n)
	if err != nil {
		return nil, opError("applyOracle", err)
	}
	if err := checkDims(s, m, n); err != nil {
		return nil, opError("applyOracle", err)
	}
	out, err := o.ApplyWith(p.engine(), s)
	return out, opError("applyOracle", err)
}

// MeasureRegisterB measures register B and returns the collapsed state and
// the observed value y.
func MeasureRegisterB(s *quantum.StateVector, m, n int, src rand.Source) (*quantum.StateVector, int, error) {
	if err := checkDims(s, m, n); err != nil {
		return nil, 0, opError("measureRegisterB", err)
	}
	res, err := measure.Measure(s, quantum.RegisterB, src)
	if err != nil {
		return nil, 0, opError("measureRegisterB", err)
	}
	return res.State, res.Outcome, nil
}

// QFT applies the quantum Fourier transform to the leading m qubits.
func QFT(s *quantum.StateVector, m int) (*quantum.StateVector, error) {
	return defaultPipeline.QFT(s, m)
}

func (p Pipeline) QFT(s *quantum.StateVector, m int) (*quantum.StateVector, error) {
	out, err := qft.TransformWith(p.engine(), s, m)
	return out, opError("qft", err)
}

// MeasureRegisterA measures register A and returns the observed value c and
// the collapsed state.
func MeasureRegisterA(s *quantum.StateVector, m, n int, src rand.Source) (int, *quantum.StateVector, error) {
	if err := checkDims(s, m, n); err != nil {
		return 0, nil, opError("measureRegisterA", err)
	}
	res, err := measure.Measure(s, quantum.RegisterA, src)
	if err != nil {
		return 0, nil, opError("measureRegisterA", err)
	}
	return res.Outcome, res.State, nil
}

// PeriodExtract runs the classical post-processing of measurement c.
func PeriodExtract(c, Q, N, a int) (period.Extraction, error) {
	ex, err := period.Extract(c, Q, N, a)
	return ex, opError("periodExtract", err)
}
