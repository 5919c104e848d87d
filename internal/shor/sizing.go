package shor

import (
	"fmt"

	"github.com/san-kum/shorsim/internal/modarith"
	"github.com/san-kum/shorsim/internal/quantum"
)

// ancillaQubits is the work-qubit overhead a gate-level modular multiplier
// would need; it is reported but not simulated.
const ancillaQubits = 3

// Sizing holds the register widths used to factor N.
type Sizing struct {
	N         int
	RegisterA int
	RegisterB int
}

// Simulated returns the number of qubits held in the state vector.
func (s Sizing) Simulated() int { return s.RegisterA + s.RegisterB }

// Total returns the qubit count including the ancilla estimate.
func (s Sizing) Total() int { return s.Simulated() + ancillaQubits }

// Domain returns Q = 2^m.
func (s Sizing) Domain() int { return 1 << s.RegisterA }

func (s Sizing) String() string {
	return fmt.Sprintf("N=%d m=%d n=%d simulated=%d total=%d", s.N, s.RegisterA, s.RegisterB, s.Simulated(), s.Total())
}

// SizeFor returns n = ⌈log₂ N⌉ and m = 2n, or m = registerA when it is
// positive.
func SizeFor(N, registerA int) (Sizing, error) {
	if N < 2 {
		return Sizing{}, fmt.Errorf("%w: modulus %d", quantum.ErrInvalidParameter, N)
	}
	n := modarith.CeilLog2(N)
	m := 2 * n
	if registerA > 0 {
		m = registerA
	}
	if registerA < 0 {
		return Sizing{}, fmt.Errorf("%w: register A width %d", quantum.ErrInvalidParameter, registerA)
	}
	if m+n > quantum.MaxQubits {
		return Sizing{}, fmt.Errorf("%w: N=%d needs %d qubits, limit is %d", quantum.ErrInvalidParameter, N, m+n, quantum.MaxQubits)
	}
	return Sizing{N: N, RegisterA: m, RegisterB: n}, nil
}
