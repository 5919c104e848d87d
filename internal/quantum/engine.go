package quantum

import (
	"fmt"
	"math/cmplx"
	"runtime"
)

const (
	defaultParallelThreshold = 1 << 12
	maxDefaultWorkers        = 8
)

// Engine applies gates to state vectors. States with fewer amplitudes than
// ParallelThreshold, or a Workers value below 2, are processed serially.
// Parallel runs give each worker a private destination buffer and sum the
// buffers in worker order, so results are deterministic for a fixed Workers.
type Engine struct {
	Workers           int
	ParallelThreshold int
}

// NewEngine returns an engine sized to the host.
func NewEngine() *Engine {
	workers := runtime.NumCPU()
	if workers > maxDefaultWorkers {
		workers = maxDefaultWorkers
	}
	return &Engine{
		Workers:           workers,
		ParallelThreshold: defaultParallelThreshold,
	}
}

// DefaultEngine is used by the package-level Apply.
var DefaultEngine = NewEngine()

// Apply applies g to the target qubit positions of s using DefaultEngine.
func Apply(g *Gate, targets []int, s *StateVector) (*StateVector, error) {
	return DefaultEngine.Apply(g, targets, s)
}

// Apply returns the state obtained by applying g to the target qubit
// positions of s. targets[0] maps to the most significant bit of the gate's
// k-bit sub-index.
func (e *Engine) Apply(g *Gate, targets []int, s *StateVector) (*StateVector, error) {
	if g == nil || s == nil {
		return nil, fmt.Errorf("%w: nil gate or state", ErrInvalidParameter)
	}
	if len(targets) != g.k {
		return nil, fmt.Errorf("%w: gate %s acts on %d qubits, got %d targets", ErrDimensionMismatch, g.name, g.k, len(targets))
	}

	q := s.NumQubits()
	mask := 0
	for _, p := range targets {
		if p < 0 || p >= q {
			return nil, fmt.Errorf("%w: target qubit %d outside [0, %d)", ErrInvalidParameter, p, q)
		}
		bit := 1 << (q - 1 - p)
		if mask&bit != 0 {
			return nil, fmt.Errorf("%w: duplicate target qubit %d", ErrInvalidParameter, p)
		}
		mask |= bit
	}

	// spread[j] is sub-index j scattered onto the target bits of a global index.
	k, d := g.k, g.dim
	spread := make([]int, d)
	for j := 0; j < d; j++ {
		v := 0
		for idx, p := range targets {
			if j>>(k-1-idx)&1 == 1 {
				v |= 1 << (q - 1 - p)
			}
		}
		spread[j] = v
	}

	out := e.Accumulate(s.Dim(), func(start, end int, dst []complex128) {
		for i := start; i < end; i++ {
			amp := s.amps[i]
			if cmplx.Abs(amp) < Tolerance {
				continue
			}

			sub := 0
			for idx, p := range targets {
				if i>>(q-1-p)&1 == 1 {
					sub |= 1 << (k - 1 - idx)
				}
			}

			base := i &^ mask
			for j := 0; j < d; j++ {
				el := g.data[j*d+sub]
				if el == 0 {
					continue
				}
				dst[base|spread[j]] += el * amp
			}
		}
	})

	return FromAmplitudes(s.m, s.n, out)
}

// Accumulate runs kernel over [0, size) and returns the summed destination
// buffer. Multiple source indices may write the same destination index.
func (e *Engine) Accumulate(size int, kernel Kernel) []complex128 {
	out := make([]complex128, size)

	workers := e.Workers
	if size < e.ParallelThreshold || workers <= 1 {
		kernel(0, size, out)
		return out
	}

	partials := make([][]complex128, workers)
	partials[0] = out
	ParallelFor(size, workers, func(worker, start, end int) {
		if worker > 0 {
			partials[worker] = make([]complex128, size)
		}
		kernel(start, end, partials[worker])
	})

	for w := 1; w < workers; w++ {
		local := partials[w]
		if local == nil {
			continue
		}
		for i, v := range local {
			out[i] += v
		}
	}
	return out
}
