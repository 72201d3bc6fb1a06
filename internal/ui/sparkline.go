package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/healthdigest/internal/summary"
)

// Sparkline block characters representing 8 vertical levels (lowest to highest).
const sparklineBlocks = "▁▂▃▄▅▆▇█"

// sparklineBlockRunes provides indexed access to block characters.
var sparklineBlockRunes = []rune(sparklineBlocks)

// RenderSparkline creates a sparkline visualization from a slice of float64 values.
// The width parameter determines how many of the most recent data points to display.
// Values are mapped to 8 vertical levels based on the min/max range.
// The color reflects where the last value sits within that range:
//   - 0-60%: green (success)
//   - 60-80%: yellow/amber (warning)
//   - 80-100%: red (error)
func RenderSparkline(data []float64, width int) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}

	if len(data) > width {
		data = data[len(data)-width:]
	}

	minVal, maxVal := data[0], data[0]
	for _, v := range data {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}

	var sb strings.Builder
	sb.Grow(len(data) * 4)

	numLevels := len(sparklineBlockRunes)
	valueRange := maxVal - minVal

	for _, v := range data {
		sb.WriteRune(sparklineBlockRunes[level(v, minVal, valueRange, numLevels)])
	}

	percent := 0.0
	if valueRange > 0 {
		percent = (data[len(data)-1] - minVal) / valueRange * 100
	}

	style := lipgloss.NewStyle().Foreground(getThresholdColor(percent))
	return style.Render(sb.String())
}

// SeriesSparkline draws the non-null values of a summary series.
func SeriesSparkline(series []summary.Scalar, width int) string {
	data := make([]float64, 0, len(series))
	for _, v := range series {
		if !v.IsNull() {
			data = append(data, v.Value)
		}
	}
	return RenderSparkline(data, width)
}

// level maps v to a block index. A flat series uses the middle level.
func level(v, minVal, valueRange float64, numLevels int) int {
	if valueRange == 0 {
		return numLevels / 2
	}
	l := int((v - minVal) / valueRange * float64(numLevels-1))
	if l < 0 {
		return 0
	}
	if l >= numLevels {
		return numLevels - 1
	}
	return l
}

// getThresholdColor returns a color based on percentage thresholds.
func getThresholdColor(percent float64) lipgloss.Color {
	switch {
	case percent >= 80:
		return ColorError
	case percent >= 60:
		return ColorWarning
	default:
		return ColorSuccess
	}
}
