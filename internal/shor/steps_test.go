package shor

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/shorsim/internal/period"
	"github.com/san-kum/shorsim/internal/quantum"
)

func assertNormalized(t *testing.T, s *quantum.StateVector) {
	t.Helper()
	assert.InDelta(t, 1.0, s.TotalProbability(), 1e-9)
}

func TestInitialize(t *testing.T) {
	s, err := Initialize(3, 2)
	require.NoError(t, err)
	assert.Equal(t, 32, s.Dim())
	assert.True(t, s.IsZeroState())

	_, err = Initialize(0, 2)
	assert.ErrorIs(t, err, quantum.ErrInvalidParameter)
	_, err = Initialize(2, -1)
	assert.ErrorIs(t, err, quantum.ErrInvalidParameter)

	var opErr *quantum.OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "initialize", opErr.Op)
}

func TestApplySuperposition(t *testing.T) {
	s, err := Initialize(2, 1)
	require.NoError(t, err)

	out, err := ApplySuperposition(s, 2, 1)
	require.NoError(t, err)
	assertNormalized(t, out)

	require.Equal(t, 4, out.Support())
	out.NonZero(func(i int, amp complex128) {
		_, b := out.Split(i)
		assert.Equal(t, 0, b)
		assert.InDelta(t, 0.5, cmplx.Abs(amp), quantum.Tolerance)
	})

	// input is untouched
	assert.True(t, s.IsZeroState())
}

func TestApplySuperpositionErrors(t *testing.T) {
	s, err := Initialize(2, 1)
	require.NoError(t, err)

	_, err = ApplySuperposition(s, 3, 1)
	assert.ErrorIs(t, err, quantum.ErrDimensionMismatch)

	sup, err := ApplySuperposition(s, 2, 1)
	require.NoError(t, err)
	_, err = ApplySuperposition(sup, 2, 1)
	assert.ErrorIs(t, err, quantum.ErrPreconditionFailed)
}

func TestApplyOracle(t *testing.T) {
	m, n := 4, 4
	s, err := Initialize(m, n)
	require.NoError(t, err)
	s, err = ApplySuperposition(s, m, n)
	require.NoError(t, err)

	out, err := ApplyOracle(s, 7, 15, m, n)
	require.NoError(t, err)
	assertNormalized(t, out)
	assert.Equal(t, 16, out.Support())

	out.NonZero(func(i int, _ complex128) {
		x, y := out.Split(i)
		assert.Equal(t, int(math.Pow(7, float64(x%4)))%15, y, "x=%d", x)
	})
}

func TestApplyOracleErrors(t *testing.T) {
	s, err := Initialize(4, 4)
	require.NoError(t, err)

	_, err = ApplyOracle(s, 5, 15, 4, 4)
	assert.ErrorIs(t, err, quantum.ErrInvalidParameter)

	_, err = ApplyOracle(s, 16, 15, 4, 4)
	assert.ErrorIs(t, err, quantum.ErrInvalidParameter)

	_, err = ApplyOracle(s, 7, 15, 5, 4)
	assert.ErrorIs(t, err, quantum.ErrDimensionMismatch)
}

func TestMeasureRegisterB(t *testing.T) {
	m, n := 4, 4
	s, err := Initialize(m, n)
	require.NoError(t, err)
	s, err = ApplySuperposition(s, m, n)
	require.NoError(t, err)
	s, err = ApplyOracle(s, 7, 15, m, n)
	require.NoError(t, err)

	out, y, err := MeasureRegisterB(s, m, n, NewSource(1))
	require.NoError(t, err)
	assertNormalized(t, out)
	assert.Contains(t, []int{1, 7, 4, 13}, y)

	// four x values share each residue when the period is 4
	assert.Equal(t, 4, out.Support())
	out.NonZero(func(i int, amp complex128) {
		_, b := out.Split(i)
		assert.Equal(t, y, b)
		assert.InDelta(t, 0.5, cmplx.Abs(amp), 1e-9)
	})
}

func TestMeasureRegisterAAfterQFT(t *testing.T) {
	m, n := 8, 4
	s, err := Initialize(m, n)
	require.NoError(t, err)
	s, err = ApplySuperposition(s, m, n)
	require.NoError(t, err)
	s, err = ApplyOracle(s, 7, 15, m, n)
	require.NoError(t, err)
	s, _, err = MeasureRegisterB(s, m, n, NewSource(5))
	require.NoError(t, err)
	s, err = QFT(s, m)
	require.NoError(t, err)
	assertNormalized(t, s)

	c, out, err := MeasureRegisterA(s, m, n, NewSource(6))
	require.NoError(t, err)
	assertNormalized(t, out)
	assert.Contains(t, []int{0, 64, 128, 192}, c)
}

func TestMeasureDimensionMismatch(t *testing.T) {
	s, err := Initialize(2, 2)
	require.NoError(t, err)

	_, _, err = MeasureRegisterB(s, 2, 3, NewSource(1))
	assert.ErrorIs(t, err, quantum.ErrDimensionMismatch)

	_, _, err = MeasureRegisterA(s, 1, 2, NewSource(1))
	assert.ErrorIs(t, err, quantum.ErrDimensionMismatch)
}

func TestQFTErrors(t *testing.T) {
	s, err := Initialize(2, 2)
	require.NoError(t, err)

	_, err = QFT(s, 5)
	assert.ErrorIs(t, err, quantum.ErrDimensionMismatch)
}

func TestPeriodExtract(t *testing.T) {
	ex, err := PeriodExtract(192, 256, 15, 7)
	require.NoError(t, err)
	assert.Equal(t, period.Factored, ex.Outcome)
	assert.Equal(t, 4, ex.Period)

	_, err = PeriodExtract(3, 256, 15, 5)
	assert.ErrorIs(t, err, period.ErrInvalidParameter)
}

func TestPipelineParallelEngine(t *testing.T) {
	p := Pipeline{Engine: &quantum.Engine{Workers: 4, ParallelThreshold: 1}}
	m, n := 6, 4

	s, err := Initialize(m, n)
	require.NoError(t, err)
	serial, err := ApplySuperposition(s, m, n)
	require.NoError(t, err)
	parallel, err := p.ApplySuperposition(s, m, n)
	require.NoError(t, err)

	serial, err = ApplyOracle(serial, 2, 15, m, n)
	require.NoError(t, err)
	parallel, err = p.ApplyOracle(parallel, 2, 15, m, n)
	require.NoError(t, err)

	serial, err = QFT(serial, m)
	require.NoError(t, err)
	parallel, err = p.QFT(parallel, m)
	require.NoError(t, err)

	for i := 0; i < serial.Dim(); i++ {
		assert.InDelta(t, 0, cmplx.Abs(serial.Amplitude(i)-parallel.Amplitude(i)), 1e-9)
	}
}

func TestSizeFor(t *testing.T) {
	tests := []struct {
		N, override int
		m, n        int
		wantErr     bool
	}{
		{15, 0, 8, 4, false},
		{21, 0, 10, 5, false},
		{21, 6, 6, 5, false},
		{255, 0, 16, 8, false},
		{257, 0, 0, 0, true},
		{1, 0, 0, 0, true},
		{15, -1, 0, 0, true},
	}

	for _, tt := range tests {
		sz, err := SizeFor(tt.N, tt.override)
		if tt.wantErr {
			assert.ErrorIs(t, err, quantum.ErrInvalidParameter, "N=%d", tt.N)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.m, sz.RegisterA, "N=%d", tt.N)
		assert.Equal(t, tt.n, sz.RegisterB, "N=%d", tt.N)
		assert.Equal(t, tt.m+tt.n+3, sz.Total())
	}
}
