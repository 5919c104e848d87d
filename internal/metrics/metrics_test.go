package metrics

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/shorsim/internal/quantum"
	"github.com/san-kum/shorsim/internal/shor"
)

func uniform(t *testing.T, m, n int) *quantum.StateVector {
	t.Helper()
	s, err := shor.Initialize(m, n)
	if err != nil {
		t.Fatal(err)
	}
	s, err = shor.ApplySuperposition(s, m, n)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestNormDrift(t *testing.T) {
	m := NewNormDrift()
	m.Observe(shor.Snapshot{Stage: shor.StageInit})
	if m.Value() != 0 {
		t.Errorf("expected zero drift without a state, got %v", m.Value())
	}

	m.Observe(shor.Snapshot{Stage: shor.StageSuperposition, State: uniform(t, 3, 1)})
	if m.Value() > 1e-9 {
		t.Errorf("expected negligible drift, got %v", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
}

func TestSupport(t *testing.T) {
	m := NewSupport()

	s, err := shor.Initialize(3, 1)
	if err != nil {
		t.Fatal(err)
	}
	m.Observe(shor.Snapshot{State: s})
	if m.Value() != 1 {
		t.Errorf("expected support 1, got %v", m.Value())
	}

	m.Observe(shor.Snapshot{State: uniform(t, 3, 1)})
	if m.Value() != 8 {
		t.Errorf("expected support 8, got %v", m.Value())
	}

	m.Observe(shor.Snapshot{State: s})
	if m.Value() != 8 {
		t.Errorf("support must keep the maximum, got %v", m.Value())
	}
}

func TestEntropyOnlyAfterQFT(t *testing.T) {
	m := NewEntropy()
	s := uniform(t, 3, 1)

	m.Observe(shor.Snapshot{Stage: shor.StageSuperposition, State: s})
	if m.Value() != 0 {
		t.Errorf("expected no value before QFT, got %v", m.Value())
	}

	m.Observe(shor.Snapshot{Stage: shor.StageQFT, State: s})
	if math.Abs(m.Value()-3) > 1e-9 {
		t.Errorf("expected 3 bits for a uniform 3-qubit register, got %v", m.Value())
	}
}

func TestBits(t *testing.T) {
	tests := []struct {
		p    []float64
		want float64
	}{
		{[]float64{1, 0, 0, 0}, 0},
		{[]float64{0.5, 0.5}, 1},
		{[]float64{0.25, 0.25, 0.25, 0.25}, 2},
	}

	for _, tt := range tests {
		if got := Bits(tt.p); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Bits(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestRegistry(t *testing.T) {
	names := Names()
	if len(names) != 3 {
		t.Fatalf("expected 3 metrics, got %v", names)
	}
	for _, name := range names {
		m, err := New(name)
		if err != nil {
			t.Fatalf("New(%q): %v", name, err)
		}
		if m.Name() != name {
			t.Errorf("metric %q reports name %q", name, m.Name())
		}
	}
	if _, err := New("bogus"); err == nil {
		t.Error("expected error for unknown metric")
	}
}

func TestDefaultWithFactorizer(t *testing.T) {
	f := shor.New(shor.DefaultConfig())
	for _, m := range Default() {
		f.AddMetric(m)
	}

	res, err := f.Attempt(context.Background(), 15, 7, 0)
	if err != nil {
		t.Fatal(err)
	}

	if res.Metrics["support"] != 256 {
		t.Errorf("expected peak support 256, got %v", res.Metrics["support"])
	}
	if res.Metrics["norm_drift"] > 1e-9 {
		t.Errorf("unexpected norm drift %v", res.Metrics["norm_drift"])
	}
	// post-QFT register A has 4 equal peaks
	if math.Abs(res.Metrics["qft_entropy"]-2) > 1e-6 {
		t.Errorf("expected 2 bits of entropy, got %v", res.Metrics["qft_entropy"])
	}
}
