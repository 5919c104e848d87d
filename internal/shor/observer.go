package shor

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/san-kum/shorsim/internal/period"
	"github.com/san-kum/shorsim/internal/quantum"
)

// Stage identifies one step of an attempt.
type Stage int

const (
	StageInit Stage = iota
	StageSuperposition
	StageOracle
	StageMeasureB
	StageQFT
	StageMeasureA
	StageExtract
)

// Stages lists every stage in execution order.
var Stages = []Stage{StageInit, StageSuperposition, StageOracle, StageMeasureB, StageQFT, StageMeasureA, StageExtract}

func (s Stage) String() string {
	switch s {
	case StageInit:
		return "init"
	case StageSuperposition:
		return "superposition"
	case StageOracle:
		return "oracle"
	case StageMeasureB:
		return "measure-b"
	case StageQFT:
		return "qft"
	case StageMeasureA:
		return "measure-a"
	case StageExtract:
		return "extract"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Snapshot is what observers see after a stage completes. State is shared
// with the run and must not be modified.
type Snapshot struct {
	Stage      Stage
	Modulus    int
	Base       int
	State      *quantum.StateVector
	Y          int
	C          int
	Extraction *period.Extraction
}

// Observer is notified after every stage.
type Observer interface {
	OnStage(snap Snapshot)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(snap Snapshot)

func (f ObserverFunc) OnStage(snap Snapshot) { f(snap) }

// Metric accumulates a scalar over the stages of one attempt.
type Metric interface {
	Name() string
	Observe(snap Snapshot)
	Value() float64
	Reset()
}

// LogObserver writes one debug event per stage.
type LogObserver struct {
	Logger zerolog.Logger
}

func (o LogObserver) OnStage(snap Snapshot) {
	ev := o.Logger.Debug().
		Str("stage", snap.Stage.String()).
		Int("n", snap.Modulus).
		Int("a", snap.Base)

	if snap.State != nil {
		ev = ev.Int("support", snap.State.Support()).
			Float64("norm", snap.State.TotalProbability())
	}
	switch snap.Stage {
	case StageMeasureB:
		ev = ev.Int("y", snap.Y)
	case StageMeasureA:
		ev = ev.Int("c", snap.C)
	case StageExtract:
		if snap.Extraction != nil {
			ev = ev.Str("outcome", snap.Extraction.Outcome.String()).
				Int("period", snap.Extraction.Period)
		}
	}
	ev.Msg("stage complete")
}
