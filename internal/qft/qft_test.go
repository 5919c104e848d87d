package qft

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/shorsim/internal/analysis"
	"github.com/san-kum/shorsim/internal/quantum"
)

// registerA extracts the register-A amplitudes at b = 0.
func registerA(s *quantum.StateVector) []complex128 {
	m, _ := s.RegisterWidths()
	out := make([]complex128, 1<<m)
	for a := range out {
		out[a] = s.Amplitude(s.Index(a, 0))
	}
	return out
}

func TestCircuitShape(t *testing.T) {
	tests := []struct {
		k, h, cp, swaps int
	}{
		{1, 1, 0, 0},
		{2, 2, 1, 1},
		{3, 3, 3, 1},
		{4, 4, 6, 2},
	}

	for _, tt := range tests {
		var h, cp, sw int
		for _, op := range Circuit(tt.k) {
			switch op.Gate.Name() {
			case "H":
				h++
			case "SWAP":
				sw++
			default:
				cp++
			}
		}
		if h != tt.h || cp != tt.cp || sw != tt.swaps {
			t.Errorf("k=%d: got H=%d CP=%d SWAP=%d", tt.k, h, cp, sw)
		}
	}

	assert.Nil(t, Circuit(0))
}

func TestTransformMatchesInverseDFT(t *testing.T) {
	m, n := 4, 1
	Q := 1 << m

	amps := make([]complex128, 1<<(m+n))
	for a := 0; a < Q; a++ {
		amps[a<<n] = complex(math.Cos(float64(a)), math.Sin(0.3*float64(a*a)))
	}
	s, err := quantum.FromAmplitudes(m, n, amps)
	require.NoError(t, err)

	got, err := Transform(s, m)
	require.NoError(t, err)

	ref := analysis.IFFT(registerA(s))
	scale := complex(math.Sqrt(float64(Q)), 0)
	for y, v := range registerA(got) {
		want := ref[y] * scale
		if cmplx.Abs(v-want) > 1e-9 {
			t.Errorf("y=%d: expected %v, got %v", y, want, v)
		}
	}
	assert.InDelta(t, 1.0, got.TotalProbability(), 1e-9)
}

func TestTransformBasisState(t *testing.T) {
	m, n := 3, 1
	Q := 1 << m
	x := 5

	amps := make([]complex128, 1<<(m+n))
	amps[x<<n] = 1
	s, err := quantum.FromAmplitudes(m, n, amps)
	require.NoError(t, err)

	got, err := Transform(s, m)
	require.NoError(t, err)

	for y := 0; y < Q; y++ {
		want := cmplx.Exp(complex(0, 2*math.Pi*float64(x*y)/float64(Q))) / complex(math.Sqrt(float64(Q)), 0)
		assert.InDelta(t, 0, cmplx.Abs(got.Amplitude(y<<n)-want), 1e-9, "y=%d", y)
	}
}

func TestTransformPeriodicInput(t *testing.T) {
	// uniform over x ≡ 1 (mod 4) must peak at multiples of Q/4
	m, n := 4, 1
	amps := make([]complex128, 1<<(m+n))
	for a := 1; a < 16; a += 4 {
		amps[a<<n] = 1
	}
	s, err := quantum.FromAmplitudes(m, n, amps)
	require.NoError(t, err)

	got, err := Transform(s, m)
	require.NoError(t, err)

	for y := 0; y < 16; y++ {
		p := got.Probability(y << n)
		if y%4 == 0 {
			assert.InDelta(t, 0.25, p, 1e-9, "y=%d", y)
		} else {
			assert.InDelta(t, 0, p, 1e-9, "y=%d", y)
		}
	}
}

func TestTransformLeavesRegisterB(t *testing.T) {
	amps := make([]complex128, 1<<5)
	amps[0<<2|3] = 1
	s, err := quantum.FromAmplitudes(3, 2, amps)
	require.NoError(t, err)

	got, err := Transform(s, 3)
	require.NoError(t, err)

	got.NonZero(func(i int, _ complex128) {
		_, b := got.Split(i)
		assert.Equal(t, 3, b)
	})
	assert.Equal(t, 8, got.Support())
}

func TestTransformErrors(t *testing.T) {
	s, err := quantum.New(2, 2)
	require.NoError(t, err)

	_, err = Transform(s, 0)
	assert.ErrorIs(t, err, quantum.ErrInvalidParameter)

	_, err = Transform(s, 5)
	assert.ErrorIs(t, err, quantum.ErrDimensionMismatch)
}

func TestTransformParallelMatchesSerial(t *testing.T) {
	s, err := quantum.New(6, 4)
	require.NoError(t, err)
	s, err = quantum.Apply(quantum.Hadamard(), []int{1}, s)
	require.NoError(t, err)
	s, err = quantum.Apply(quantum.Hadamard(), []int{7}, s)
	require.NoError(t, err)

	serial, err := TransformWith(&quantum.Engine{Workers: 1}, s, 6)
	require.NoError(t, err)
	parallel, err := TransformWith(&quantum.Engine{Workers: 3, ParallelThreshold: 1}, s, 6)
	require.NoError(t, err)

	for i := 0; i < s.Dim(); i++ {
		assert.InDelta(t, 0, cmplx.Abs(serial.Amplitude(i)-parallel.Amplitude(i)), quantum.Tolerance)
	}
}
