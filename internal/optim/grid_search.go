package optim

import (
	"context"

	"github.com/san-kum/shorsim/internal/period"
	"github.com/san-kum/shorsim/internal/quantum"
	"github.com/san-kum/shorsim/internal/shor"
)

// Point is one evaluated (base, register A width) pair.
type Point struct {
	Base      int
	RegisterA int
	Score     float64
}

// Objective scores a base and register A width; higher is better.
type Objective func(ctx context.Context, a, m int) (float64, error)

// GridSearch evaluates every combination of bases and register widths.
type GridSearch struct {
	bases  []int
	widths []int
}

func NewGridSearch(bases, widths []int) *GridSearch {
	return &GridSearch{bases: bases, widths: widths}
}

// Search returns the best point and every evaluated point in grid order.
// Ties keep the earlier point. Cancellation stops the search with ctx.Err().
func (g *GridSearch) Search(ctx context.Context, objective Objective) (Point, []Point, error) {
	var best Point
	found := false
	points := make([]Point, 0, len(g.bases)*len(g.widths))

	for _, a := range g.bases {
		for _, m := range g.widths {
			if err := ctx.Err(); err != nil {
				return best, points, err
			}

			score, err := objective(ctx, a, m)
			if err != nil {
				return best, points, err
			}

			p := Point{Base: a, RegisterA: m, Score: score}
			points = append(points, p)
			if !found || p.Score > best.Score {
				best = p
				found = true
			}
		}
	}

	return best, points, nil
}

// SuccessRate returns an Objective that runs an ensemble of runs attempts
// for N and scores the fraction that produced factors.
func SuccessRate(N, runs int, seed uint64, e *quantum.Engine) Objective {
	return func(ctx context.Context, a, m int) (float64, error) {
		sz, err := shor.SizeFor(N, m)
		if err != nil {
			return 0, err
		}

		ens := shor.NewEnsemble(sz, runs, seed)
		ens.Engine = e
		results, err := ens.Run(ctx, a)
		if err != nil {
			return 0, err
		}

		ok := 0
		for _, r := range results {
			if r.Extraction.Outcome == period.Factored {
				ok++
			}
		}
		return float64(ok) / float64(len(results)), nil
	}
}
