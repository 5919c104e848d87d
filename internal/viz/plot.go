package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/shorsim/internal/analysis"
)

// PlotDistribution draws a register distribution as a line plot. Wide
// distributions are reduced to width columns by taking the peak of each
// bucket.
func PlotDistribution(dist []float64, width, height int, caption string) string {
	if len(dist) == 0 {
		return ""
	}
	data := Downsample(dist, width)
	if len(data) == 1 {
		data = append(data, data[0])
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.Precision(3),
	)
}

// Downsample reduces values to at most width buckets, keeping each bucket's
// maximum.
func Downsample(values []float64, width int) []float64 {
	if width <= 0 || len(values) <= width {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, width)
	for i := range out {
		start := i * len(values) / width
		end := (i + 1) * len(values) / width
		peak := values[start]
		for _, v := range values[start:end] {
			peak = max(peak, v)
		}
		out[i] = peak
	}
	return out
}

// FormatTop lists the k most probable outcomes, one per line.
func FormatTop(dist []float64, k int) []string {
	top := analysis.TopOutcomes(dist, k)
	lines := make([]string, 0, len(top))
	for _, o := range top {
		if o.Probability < 1e-9 {
			break
		}
		lines = append(lines, fmt.Sprintf("%6d  %.4f  %s", o.Value, o.Probability, ProgressBar(o.Probability, 20)))
	}
	return lines
}
