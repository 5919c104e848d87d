package quantum

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"
)

// Tolerance is the single numeric threshold used by every invariant check:
// amplitudes below it are treated as zero, and norms and matrix entries must
// match their expected values within it.
const Tolerance = 1e-10

// MaxQubits bounds the total width of a state vector (2^24 amplitudes).
const MaxQubits = 24

// Register selects one of the two logical qubit groups of a StateVector.
type Register int

const (
	// RegisterA occupies the high-order bits of the basis index.
	RegisterA Register = iota
	// RegisterB occupies the low-order bits of the basis index.
	RegisterB
)

func (r Register) String() string {
	switch r {
	case RegisterA:
		return "A"
	case RegisterB:
		return "B"
	default:
		return fmt.Sprintf("Register(%d)", int(r))
	}
}

// StateVector holds 2^(m+n) amplitudes indexed by (a << n) | b.
type StateVector struct {
	amps []complex128
	m, n int
}

func checkWidths(m, n int) error {
	if m <= 0 || n <= 0 {
		return fmt.Errorf("%w: register widths must be positive, got m=%d n=%d", ErrInvalidParameter, m, n)
	}
	if m+n > MaxQubits {
		return fmt.Errorf("%w: %d qubits exceeds limit of %d", ErrInvalidParameter, m+n, MaxQubits)
	}
	return nil
}

// New returns |0⟩⊗m |0⟩⊗n.
func New(m, n int) (*StateVector, error) {
	if err := checkWidths(m, n); err != nil {
		return nil, err
	}
	amps := make([]complex128, 1<<(m+n))
	amps[0] = 1
	return &StateVector{amps: amps, m: m, n: n}, nil
}

// FromAmplitudes builds a state from amps, normalizing them in place. The
// returned StateVector owns amps; the caller must not modify the slice after
// the call.
func FromAmplitudes(m, n int, amps []complex128) (*StateVector, error) {
	if err := checkWidths(m, n); err != nil {
		return nil, err
	}
	if len(amps) != 1<<(m+n) {
		return nil, fmt.Errorf("%w: expected %d amplitudes, got %d", ErrDimensionMismatch, 1<<(m+n), len(amps))
	}

	mass := 0.0
	for _, a := range amps {
		mass += real(a)*real(a) + imag(a)*imag(a)
	}
	norm := math.Sqrt(mass)
	if math.IsNaN(norm) || math.IsInf(norm, 0) {
		return nil, fmt.Errorf("%w: non-finite amplitude", ErrNormalizationFailure)
	}
	if norm < Tolerance {
		return nil, fmt.Errorf("%w: all-zero state", ErrNormalizationFailure)
	}

	if norm != 1 {
		scale := complex(1/norm, 0)
		for i := range amps {
			amps[i] *= scale
		}
	}
	return &StateVector{amps: amps, m: m, n: n}, nil
}

// NumQubits returns m+n.
func (s *StateVector) NumQubits() int { return s.m + s.n }

// RegisterWidths returns the widths of register A and register B.
func (s *StateVector) RegisterWidths() (m, n int) { return s.m, s.n }

// Dim returns the number of amplitudes.
func (s *StateVector) Dim() int { return len(s.amps) }

// Width returns the number of qubits in register r.
func (s *StateVector) Width(r Register) (int, error) {
	switch r {
	case RegisterA:
		return s.m, nil
	case RegisterB:
		return s.n, nil
	default:
		return 0, fmt.Errorf("%w: unknown register %v", ErrInvalidParameter, r)
	}
}

// Amplitude returns the amplitude at basis index i.
func (s *StateVector) Amplitude(i int) complex128 { return s.amps[i] }

// Probability returns |amplitude|² at basis index i.
func (s *StateVector) Probability(i int) float64 {
	a := s.amps[i]
	return real(a)*real(a) + imag(a)*imag(a)
}

// Amplitudes returns a copy of the amplitude buffer.
func (s *StateVector) Amplitudes() []complex128 {
	c := make([]complex128, len(s.amps))
	copy(c, s.amps)
	return c
}

// Clone returns an independent copy of s.
func (s *StateVector) Clone() *StateVector {
	return &StateVector{amps: s.Amplitudes(), m: s.m, n: s.n}
}

// Index joins register values into a basis index.
func (s *StateVector) Index(a, b int) int { return a<<s.n | b }

// Split separates basis index i into register values.
func (s *StateVector) Split(i int) (a, b int) { return i >> s.n, i & (1<<s.n - 1) }

// TotalProbability returns Σ|amplitude|².
func (s *StateVector) TotalProbability() float64 {
	sum := 0.0
	for i := range s.amps {
		sum += s.Probability(i)
	}
	return sum
}

// IsNormalized reports whether the total probability is 1 within Tolerance.
func (s *StateVector) IsNormalized() bool {
	return math.Abs(s.TotalProbability()-1) <= Tolerance
}

// NonZero calls fn for every amplitude whose magnitude is at least Tolerance,
// in increasing index order.
func (s *StateVector) NonZero(fn func(i int, amp complex128)) {
	for i, a := range s.amps {
		if cmplx.Abs(a) < Tolerance {
			continue
		}
		fn(i, a)
	}
}

// Support returns the number of non-negligible amplitudes.
func (s *StateVector) Support() int {
	count := 0
	s.NonZero(func(int, complex128) { count++ })
	return count
}

// IsZeroState reports whether s is |0⟩⊗m |0⟩⊗n.
func (s *StateVector) IsZeroState() bool {
	if !s.IsNormalized() {
		return false
	}
	if cmplx.Abs(s.amps[0]-1) > Tolerance {
		return false
	}
	for _, a := range s.amps[1:] {
		if cmplx.Abs(a) >= Tolerance {
			return false
		}
	}
	return true
}

func (s *StateVector) String() string {
	var terms []string
	s.NonZero(func(i int, a complex128) {
		if len(terms) > 5 {
			return
		}
		x, y := s.Split(i)
		terms = append(terms, fmt.Sprintf("(%.3f%+.3fi)|%d,%d⟩", real(a), imag(a), x, y))
	})
	if len(terms) <= 5 {
		return strings.Join(terms, " + ")
	}
	return fmt.Sprintf("StateVector(%d qubits, %d nonzero)", s.NumQubits(), s.Support())
}
