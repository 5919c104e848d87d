package quantum

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/cblas128"
)

// MaxGateQubits bounds the width of a dense gate (256×256 matrix).
const MaxGateQubits = 8

// Gate is an immutable dense unitary acting on k qubits. The matrix is stored
// row-major in a flat buffer of size 2^k × 2^k.
type Gate struct {
	name string
	k    int
	dim  int
	data []complex128
}

// NewGate validates and copies a row-major 2^k × 2^k matrix.
func NewGate(name string, k int, matrix []complex128) (*Gate, error) {
	if k <= 0 || k > MaxGateQubits {
		return nil, fmt.Errorf("%w: gate %s must act on 1..%d qubits, got %d", ErrInvalidParameter, name, MaxGateQubits, k)
	}
	dim := 1 << k
	if len(matrix) != dim*dim {
		return nil, fmt.Errorf("%w: gate %s expects %d entries, got %d", ErrDimensionMismatch, name, dim*dim, len(matrix))
	}

	data := make([]complex128, len(matrix))
	copy(data, matrix)

	if !isUnitary(data, dim) {
		return nil, fmt.Errorf("%w: %s", ErrNotUnitary, name)
	}

	return &Gate{name: name, k: k, dim: dim, data: data}, nil
}

func mustGate(name string, k int, matrix []complex128) *Gate {
	g, err := NewGate(name, k, matrix)
	if err != nil {
		panic(err)
	}
	return g
}

// isUnitary computes U†U with a complex GEMM and compares it to the identity.
func isUnitary(u []complex128, dim int) bool {
	a := cblas128.General{Rows: dim, Cols: dim, Stride: dim, Data: u}
	prod := cblas128.General{Rows: dim, Cols: dim, Stride: dim, Data: make([]complex128, dim*dim)}
	cblas128.Gemm(blas.ConjTrans, blas.NoTrans, 1, a, a, 0, prod)

	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			v := prod.Data[i*dim+j]
			// negated form so NaN entries fail
			if !(math.Abs(real(v)-want) <= Tolerance && math.Abs(imag(v)) <= Tolerance) {
				return false
			}
		}
	}
	return true
}

func (g *Gate) Name() string { return g.name }

// NumQubits returns k.
func (g *Gate) NumQubits() int { return g.k }

// Dim returns 2^k.
func (g *Gate) Dim() int { return g.dim }

// At returns the matrix element in row i, column j.
func (g *Gate) At(i, j int) complex128 { return g.data[i*g.dim+j] }

// Matrix returns a copy of the row-major matrix.
func (g *Gate) Matrix() []complex128 {
	c := make([]complex128, len(g.data))
	copy(c, g.data)
	return c
}

func (g *Gate) String() string {
	return fmt.Sprintf("Gate(%s, %d qubits)", g.name, g.k)
}
