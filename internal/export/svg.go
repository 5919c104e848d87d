package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/shorsim/internal/analysis"
)

// DistributionToSVG renders a probability distribution as a bar chart.
// Bars listed in peaks are drawn in highlight; the rest in color.
func DistributionToSVG(dist []float64, width, height int, color, highlight string, peaks []int) string {
	if len(dist) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	maxP := 0.0
	for _, p := range dist {
		if p > maxP {
			maxP = p
		}
	}
	if maxP == 0 {
		maxP = 1
	}

	marked := make(map[int]bool, len(peaks))
	for _, c := range peaks {
		marked[c] = true
	}

	barW := float64(width) / float64(len(dist))

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for c, p := range dist {
		if p <= 0 {
			continue
		}
		h := p / maxP * float64(height)
		fill := color
		if marked[c] {
			fill = highlight
		}
		sb.WriteString(fmt.Sprintf(`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"><title>c=%d p=%.4g</title></rect>
`, float64(c)*barW, float64(height)-h, barW, h, fill, c, p))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesToSVG draws values as a polyline scaled to fill the canvas.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}

	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY
	stepX := float64(width) / float64(len(values)-1)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, v := range values {
		x := float64(i) * stepX
		y := float64(height) - (v-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// SpectrumToSVG draws the power spectrum of a register distribution. A
// distribution with period Q/r peaks at bin r.
func SpectrumToSVG(dist []float64, width, height int, strokeColor string) string {
	return SeriesToSVG(analysis.PowerSpectrum(dist), width, height, strokeColor)
}
