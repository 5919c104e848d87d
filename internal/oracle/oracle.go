// Package oracle implements the modular exponentiation oracle
// |x⟩|y⟩ → |x⟩|y ⊕ aˣ mod N⟩ as a precomputed index permutation.
package oracle

import (
	"fmt"

	"github.com/san-kum/shorsim/internal/modarith"
	"github.com/san-kum/shorsim/internal/quantum"
)

// ModExp is an immutable permutation over the 2^(m+n) basis states of a
// two-register state.
type ModExp struct {
	base    int
	modulus int
	m, n    int

	// powers[x] = aˣ mod N; table[i] is the image of basis index i.
	powers []int
	table  []int
}

// NewModExp builds the oracle for base a and modulus N over registers of
// width m and n. It requires 1 < a < N, gcd(a, N) = 1 and N ≤ 2^n so that
// every residue fits in register B.
func NewModExp(a, N, m, n int) (*ModExp, error) {
	if m <= 0 || n <= 0 || m+n > quantum.MaxQubits {
		return nil, fmt.Errorf("%w: register widths m=%d n=%d", quantum.ErrInvalidParameter, m, n)
	}
	if N < 2 {
		return nil, fmt.Errorf("%w: modulus %d must be at least 2", quantum.ErrInvalidParameter, N)
	}
	if a <= 1 || a >= N {
		return nil, fmt.Errorf("%w: base %d outside (1, %d)", quantum.ErrInvalidParameter, a, N)
	}
	if g := modarith.GCD(a, N); g != 1 {
		return nil, fmt.Errorf("%w: gcd(%d, %d) = %d", quantum.ErrInvalidParameter, a, N, g)
	}
	if N > 1<<n {
		return nil, fmt.Errorf("%w: modulus %d does not fit in %d qubits", quantum.ErrInvalidParameter, N, n)
	}

	Q := 1 << m
	powers := make([]int, Q)
	powers[0] = 1 % N
	for x := 1; x < Q; x++ {
		powers[x] = int(modarith.MulMod(uint64(powers[x-1]), uint64(a), uint64(N)))
	}

	size := 1 << n
	table := make([]int, Q*size)
	for x := 0; x < Q; x++ {
		f := powers[x]
		row := x << n
		for y := 0; y < size; y++ {
			table[row|y] = row | (y ^ f)
		}
	}

	return &ModExp{base: a, modulus: N, m: m, n: n, powers: powers, table: table}, nil
}

// Base returns a.
func (o *ModExp) Base() int { return o.base }

// Modulus returns N.
func (o *ModExp) Modulus() int { return o.modulus }

// RegisterWidths returns the register widths the oracle was built for.
func (o *ModExp) RegisterWidths() (m, n int) { return o.m, o.n }

// Value returns aˣ mod N for x in [0, 2^m).
func (o *ModExp) Value(x int) int { return o.powers[x] }

// Map returns the image of basis index i.
func (o *ModExp) Map(i int) int { return o.table[i] }

// Apply applies the oracle to s using quantum.DefaultEngine.
func (o *ModExp) Apply(s *quantum.StateVector) (*quantum.StateVector, error) {
	return o.ApplyWith(quantum.DefaultEngine, s)
}

// ApplyWith applies the oracle to s, scattering each non-negligible
// amplitude to its mapped index.
func (o *ModExp) ApplyWith(e *quantum.Engine, s *quantum.StateVector) (*quantum.StateVector, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil state", quantum.ErrInvalidParameter)
	}
	if m, n := s.RegisterWidths(); m != o.m || n != o.n {
		return nil, fmt.Errorf("%w: oracle built for m=%d n=%d, state has m=%d n=%d",
			quantum.ErrDimensionMismatch, o.m, o.n, m, n)
	}

	out := e.Accumulate(s.Dim(), func(start, end int, dst []complex128) {
		for i := start; i < end; i++ {
			amp := s.Amplitude(i)
			if real(amp)*real(amp)+imag(amp)*imag(amp) < quantum.Tolerance*quantum.Tolerance {
				continue
			}
			dst[o.table[i]] += amp
		}
	})

	return quantum.FromAmplitudes(o.m, o.n, out)
}
