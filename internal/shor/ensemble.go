package shor

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/shorsim/internal/quantum"
)

// Ensemble runs independent attempts of one (N, a) pair concurrently.
type Ensemble struct {
	numRuns   int
	seedStart uint64
	sizing    Sizing

	// Concurrency caps the number of attempts in flight; zero means no cap.
	Concurrency int
	Engine      *quantum.Engine
	// NewMetrics, when set, builds a fresh metric set for every run.
	NewMetrics func() []Metric
}

func NewEnsemble(sz Sizing, numRuns int, seedStart uint64) *Ensemble {
	return &Ensemble{sizing: sz, numRuns: numRuns, seedStart: seedStart}
}

// Run executes every attempt with seed seedStart+i and returns the results
// in run order. The first error cancels the remaining runs.
func (e *Ensemble) Run(ctx context.Context, a int) ([]*AttemptResult, error) {
	results := make([]*AttemptResult, e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	if e.Concurrency > 0 {
		g.SetLimit(e.Concurrency)
	}

	engine := e.Engine
	if engine == nil {
		engine = quantum.DefaultEngine
	}

	for i := 0; i < e.numRuns; i++ {
		g.Go(func() error {
			var metrics []Metric
			if e.NewMetrics != nil {
				metrics = e.NewMetrics()
			}
			res, err := runAttempt(ctx, e.sizing, a, i, e.seedStart+uint64(i), engine, nil, metrics)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
