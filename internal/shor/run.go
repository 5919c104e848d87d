package shor

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/san-kum/shorsim/internal/measure"
	"github.com/san-kum/shorsim/internal/modarith"
	"github.com/san-kum/shorsim/internal/period"
	"github.com/san-kum/shorsim/internal/quantum"
)

// errRunComplete is returned by Next once the extract stage has run.
var errRunComplete = errors.New("shor: run already complete")

// RunConfig describes one attempt.
type RunConfig struct {
	Modulus   int
	Base      int
	RegisterA int
	RegisterB int
	Source    rand.Source
	Engine    *quantum.Engine
}

// Run executes a single attempt one stage at a time.
type Run struct {
	cfg       RunConfig
	pipe      Pipeline
	observers []Observer

	next       Stage
	state      *quantum.StateVector
	spectrum   []float64
	y, c       int
	extraction *period.Extraction
	err        error
}

// NewRun validates cfg and returns a run positioned before StageInit.
func NewRun(cfg RunConfig) (*Run, error) {
	N, a := cfg.Modulus, cfg.Base
	switch {
	case cfg.Source == nil:
		return nil, fmt.Errorf("%w: nil random source", quantum.ErrInvalidParameter)
	case N < 2:
		return nil, fmt.Errorf("%w: modulus %d", quantum.ErrInvalidParameter, N)
	case a <= 1 || a >= N:
		return nil, fmt.Errorf("%w: base %d outside (1, %d)", quantum.ErrInvalidParameter, a, N)
	case modarith.GCD(a, N) != 1:
		return nil, fmt.Errorf("%w: base %d shares a factor with %d", quantum.ErrInvalidParameter, a, N)
	case cfg.RegisterA <= 0 || cfg.RegisterB <= 0:
		return nil, fmt.Errorf("%w: register widths m=%d n=%d", quantum.ErrInvalidParameter, cfg.RegisterA, cfg.RegisterB)
	case N > 1<<cfg.RegisterB:
		return nil, fmt.Errorf("%w: modulus %d does not fit in %d qubits", quantum.ErrInvalidParameter, N, cfg.RegisterB)
	}

	return &Run{
		cfg:  cfg,
		pipe: Pipeline{Engine: cfg.Engine},
		next: StageInit,
	}, nil
}

func (r *Run) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Done reports whether the extract stage has completed.
func (r *Run) Done() bool { return r.next > StageExtract }

// Err returns the error that stopped the run, if any.
func (r *Run) Err() error { return r.err }

// Completed returns the most recent finished stage and false if none has run.
func (r *Run) Completed() (Stage, bool) {
	if r.next == StageInit {
		return 0, false
	}
	return r.next - 1, true
}

// Pending returns the stage Next will execute.
func (r *Run) Pending() Stage { return r.next }

func (r *Run) State() *quantum.StateVector { return r.state }

// Y returns the register-B measurement, valid after StageMeasureB.
func (r *Run) Y() int { return r.y }

// C returns the register-A measurement, valid after StageMeasureA.
func (r *Run) C() int { return r.c }

// Spectrum returns the register-A distribution right after the QFT, or nil
// before that stage.
func (r *Run) Spectrum() []float64 { return r.spectrum }

// Extraction returns the classical result once the run is done.
func (r *Run) Extraction() (period.Extraction, bool) {
	if r.extraction == nil {
		return period.Extraction{}, false
	}
	return *r.extraction, true
}

func (r *Run) Config() RunConfig { return r.cfg }

// Next executes the pending stage and returns it. After a failure every call
// returns the same error.
func (r *Run) Next() (Stage, error) {
	if r.err != nil {
		return r.next, r.err
	}
	if r.Done() {
		return StageExtract, errRunComplete
	}

	stage := r.next
	if err := r.exec(stage); err != nil {
		r.err = err
		return stage, err
	}
	r.next++

	snap := r.snapshot(stage)
	for _, o := range r.observers {
		o.OnStage(snap)
	}
	return stage, nil
}

func (r *Run) exec(stage Stage) error {
	m, n := r.cfg.RegisterA, r.cfg.RegisterB
	N, a := r.cfg.Modulus, r.cfg.Base

	var err error
	switch stage {
	case StageInit:
		r.state, err = Initialize(m, n)
	case StageSuperposition:
		r.state, err = r.pipe.ApplySuperposition(r.state, m, n)
	case StageOracle:
		r.state, err = r.pipe.ApplyOracle(r.state, a, N, m, n)
	case StageMeasureB:
		r.state, r.y, err = MeasureRegisterB(r.state, m, n, r.cfg.Source)
	case StageQFT:
		r.state, err = r.pipe.QFT(r.state, m)
		if err == nil {
			r.spectrum, err = measure.Probabilities(r.state, quantum.RegisterA)
		}
	case StageMeasureA:
		r.c, r.state, err = MeasureRegisterA(r.state, m, n, r.cfg.Source)
	case StageExtract:
		var ex period.Extraction
		ex, err = PeriodExtract(r.c, 1<<m, N, a)
		if err == nil {
			r.extraction = &ex
		}
	default:
		err = fmt.Errorf("unknown stage %v", stage)
	}
	return err
}

func (r *Run) snapshot(stage Stage) Snapshot {
	return Snapshot{
		Stage:      stage,
		Modulus:    r.cfg.Modulus,
		Base:       r.cfg.Base,
		State:      r.state,
		Y:          r.y,
		C:          r.c,
		Extraction: r.extraction,
	}
}

// Finish runs every remaining stage, checking ctx between stages.
func (r *Run) Finish(ctx context.Context) (period.Extraction, error) {
	for !r.Done() {
		select {
		case <-ctx.Done():
			return period.Extraction{}, ctx.Err()
		default:
		}

		if _, err := r.Next(); err != nil {
			return period.Extraction{}, err
		}
	}
	return *r.extraction, nil
}
