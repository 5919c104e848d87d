package optim

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/shorsim/internal/quantum"
)

func TestGridSearchPicksMaximum(t *testing.T) {
	g := NewGridSearch([]int{2, 7}, []int{4, 8})
	best, points, err := g.Search(context.Background(), func(_ context.Context, a, m int) (float64, error) {
		return float64(a * m), nil
	})
	require.NoError(t, err)

	assert.Len(t, points, 4)
	assert.Equal(t, Point{Base: 7, RegisterA: 8, Score: 56}, best)
	assert.Equal(t, Point{Base: 2, RegisterA: 4, Score: 8}, points[0])
}

func TestGridSearchTiesKeepFirst(t *testing.T) {
	g := NewGridSearch([]int{2, 4}, []int{6})
	best, _, err := g.Search(context.Background(), func(context.Context, int, int) (float64, error) {
		return 0, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, best.Base)
}

func TestGridSearchStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	g := NewGridSearch([]int{2, 4, 7}, []int{8})
	_, points, err := g.Search(context.Background(), func(_ context.Context, a, _ int) (float64, error) {
		calls++
		if a == 4 {
			return 0, boom
		}
		return 1, nil
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
	assert.Len(t, points, 1)
}

func TestGridSearchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := NewGridSearch([]int{2}, []int{8})
	_, _, err := g.Search(ctx, func(context.Context, int, int) (float64, error) { return 1, nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSuccessRate(t *testing.T) {
	objective := SuccessRate(15, 8, 1, &quantum.Engine{Workers: 1})

	score, err := objective(context.Background(), 7, 8)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)

	_, err = objective(context.Background(), 6, 8)
	assert.Error(t, err)
}
