package shor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/shorsim/internal/quantum"
)

func newRun15(t *testing.T, seed uint64) *Run {
	t.Helper()
	r, err := NewRun(RunConfig{
		Modulus:   15,
		Base:      7,
		RegisterA: 8,
		RegisterB: 4,
		Source:    NewSource(seed),
	})
	require.NoError(t, err)
	return r
}

func TestRunStages(t *testing.T) {
	r := newRun15(t, 42)

	_, ok := r.Completed()
	assert.False(t, ok)

	var seen []Stage
	r.AddObserver(ObserverFunc(func(snap Snapshot) {
		seen = append(seen, snap.Stage)
		if snap.State != nil {
			assert.InDelta(t, 1.0, snap.State.TotalProbability(), 1e-9)
		}
	}))

	for _, want := range Stages {
		assert.Equal(t, want, r.Pending())
		got, err := r.Next()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	assert.True(t, r.Done())
	assert.Equal(t, Stages, seen)

	last, ok := r.Completed()
	assert.True(t, ok)
	assert.Equal(t, StageExtract, last)

	_, err := r.Next()
	assert.ErrorIs(t, err, errRunComplete)

	ex, ok := r.Extraction()
	require.True(t, ok)
	assert.Equal(t, r.C(), ex.C)
	assert.Len(t, r.Spectrum(), 256)
}

func TestRunDeterministic(t *testing.T) {
	ctx := context.Background()

	a := newRun15(t, 9)
	exA, err := a.Finish(ctx)
	require.NoError(t, err)

	b := newRun15(t, 9)
	exB, err := b.Finish(ctx)
	require.NoError(t, err)

	assert.Equal(t, a.Y(), b.Y())
	assert.Equal(t, a.C(), b.C())
	assert.Equal(t, exA.Outcome, exB.Outcome)
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newRun15(t, 1)
	_, err := r.Finish(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRunValidation(t *testing.T) {
	src := NewSource(1)
	tests := []struct {
		name string
		cfg  RunConfig
	}{
		{"nil source", RunConfig{Modulus: 15, Base: 7, RegisterA: 8, RegisterB: 4}},
		{"shared factor", RunConfig{Modulus: 15, Base: 6, RegisterA: 8, RegisterB: 4, Source: src}},
		{"base too small", RunConfig{Modulus: 15, Base: 1, RegisterA: 8, RegisterB: 4, Source: src}},
		{"register B too narrow", RunConfig{Modulus: 15, Base: 7, RegisterA: 8, RegisterB: 3, Source: src}},
		{"zero register A", RunConfig{Modulus: 15, Base: 7, RegisterA: 0, RegisterB: 4, Source: src}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRun(tt.cfg)
			assert.ErrorIs(t, err, quantum.ErrInvalidParameter)
		})
	}
}
