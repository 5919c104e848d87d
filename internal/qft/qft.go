// Package qft builds and applies the quantum Fourier transform on the leading
// qubits of a state.
//
// On the first k qubits the transform maps |x⟩ to (1/√Q) Σ_y e^(2πixy/Q) |y⟩
// with Q = 2^k, qubit 0 being the most significant bit of x.
package qft

import (
	"fmt"
	"math"

	"github.com/san-kum/shorsim/internal/quantum"
)

// Op is one gate application of the circuit.
type Op struct {
	Gate    *quantum.Gate
	Targets []int
}

func (o Op) String() string {
	return fmt.Sprintf("%s%v", o.Gate.Name(), o.Targets)
}

// Circuit returns the gate sequence of a k-qubit QFT: for each j a Hadamard
// on j followed by controlled phases π/2^(l-j) on (l, j), then swaps
// (j, k-1-j) reversing the qubit order.
func Circuit(k int) []Op {
	if k <= 0 {
		return nil
	}

	ops := make([]Op, 0, k*(k+1)/2+k/2)
	for j := 0; j < k; j++ {
		ops = append(ops, Op{Gate: quantum.Hadamard(), Targets: []int{j}})
		for l := j + 1; l < k; l++ {
			theta := math.Pi / float64(int(1)<<(l-j))
			ops = append(ops, Op{Gate: quantum.ControlledPhase(theta), Targets: []int{l, j}})
		}
	}
	for j := 0; j < k/2; j++ {
		ops = append(ops, Op{Gate: quantum.Swap(), Targets: []int{j, k - 1 - j}})
	}
	return ops
}

// Transform applies the k-qubit QFT to s using quantum.DefaultEngine.
func Transform(s *quantum.StateVector, k int) (*quantum.StateVector, error) {
	return TransformWith(quantum.DefaultEngine, s, k)
}

// TransformWith applies the k-qubit QFT to the leading k qubits of s.
func TransformWith(e *quantum.Engine, s *quantum.StateVector, k int) (*quantum.StateVector, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil state", quantum.ErrInvalidParameter)
	}
	if k <= 0 {
		return nil, fmt.Errorf("%w: qft width %d must be positive", quantum.ErrInvalidParameter, k)
	}
	if k > s.NumQubits() {
		return nil, fmt.Errorf("%w: qft width %d exceeds %d qubits", quantum.ErrDimensionMismatch, k, s.NumQubits())
	}

	out := s
	for _, op := range Circuit(k) {
		next, err := e.Apply(op.Gate, op.Targets, out)
		if err != nil {
			return nil, fmt.Errorf("qft %v: %w", op, err)
		}
		out = next
	}
	if out == s {
		out = s.Clone()
	}
	return out, nil
}
