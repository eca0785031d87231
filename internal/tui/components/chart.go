package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/pulse/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders values as one row of blocks scaled to ceiling. Values
// from index projectedFrom onward use the projected color.
func Sparkline(values []float64, projectedFrom int, ceiling float64) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active
	if ceiling <= 0 {
		ceiling = 1
	}
	projectedFrom = max(0, min(projectedFrom, len(values)))

	ramp := func(vs []float64) string {
		var buf strings.Builder
		buf.Grow(len(vs) * 3)
		for _, v := range vs {
			idx := int(v / ceiling * float64(len(sparkBlocks)-1))
			idx = max(0, min(idx, len(sparkBlocks)-1))
			buf.WriteRune(sparkBlocks[idx])
		}
		return buf.String()
	}

	obs := lipgloss.NewStyle().Foreground(t.Observed).Background(t.Surface)
	proj := lipgloss.NewStyle().Foreground(t.Projected).Background(t.Surface)
	return obs.Render(ramp(values[:projectedFrom])) + proj.Render(ramp(values[projectedFrom:]))
}

// BarChart renders a vertical bar chart on a fixed 0..ceiling axis. Bars
// from index projectedFrom onward are drawn in the projected color. When
// there are more values than columns, the newest values are kept.
func BarChart(values []float64, projectedFrom int, ceiling float64, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values, projectedFrom, ceiling)
	}

	t := theme.Active
	if ceiling <= 0 {
		ceiling = 1
	}

	tickStep := chartTickStep(ceiling)
	maxIntervals := max(2, height/2)
	for int(math.Ceil(ceiling/tickStep)) > maxIntervals {
		tickStep *= 2
	}
	ceiling = math.Ceil(ceiling/tickStep) * tickStep
	numIntervals := max(1, int(math.Round(ceiling/tickStep)))

	rowsPerTick := max(1, height/numIntervals)
	chartH := rowsPerTick * numIntervals

	yLabelW := max(4, len(formatChartLabel(ceiling))+1)
	tickLabels := make(map[int]string, numIntervals)
	for i := 1; i <= numIntervals; i++ {
		tickLabels[i*rowsPerTick] = formatChartLabel(tickStep * float64(i))
	}

	chartW := max(5, width-yLabelW-1)

	// Keep the newest samples that fit one column each.
	if len(values) > chartW {
		drop := len(values) - chartW
		values = values[drop:]
		projectedFrom -= drop
	}
	n := len(values)
	projectedFrom = max(0, min(projectedFrom, n))

	barW := max(1, min(3, chartW/n))
	axisLen := n * barW

	blocks := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	blankStyle := lipgloss.NewStyle().Background(t.Surface)
	obsStyle := lipgloss.NewStyle().Foreground(t.Observed).Background(t.Surface)
	projStyle := lipgloss.NewStyle().Foreground(t.Projected).Background(t.Surface)

	var b strings.Builder

	for row := chartH; row >= 1; row-- {
		rowTop := ceiling * float64(row) / float64(chartH)
		rowBottom := ceiling * float64(row-1) / float64(chartH)

		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, tickLabels[row])))
		b.WriteString(axisStyle.Render("│"))

		for i, v := range values {
			style := obsStyle
			if i >= projectedFrom {
				style = projStyle
			}
			switch {
			case v >= rowTop:
				b.WriteString(style.Render(strings.Repeat("█", barW)))
			case v > rowBottom:
				frac := (v - rowBottom) / (rowTop - rowBottom)
				idx := max(1, min(8, int(frac*8)))
				b.WriteString(style.Render(strings.Repeat(string(blocks[idx]), barW)))
			default:
				b.WriteString(blankStyle.Render(strings.Repeat(" ", barW)))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, "0")))
	b.WriteString(axisStyle.Render("└"))
	b.WriteString(axisStyle.Render(strings.Repeat("─", axisLen)))

	return b.String()
}

// ChartLegend renders the observed/projected key.
func ChartLegend(observed, projected int) string {
	t := theme.Active
	obs := lipgloss.NewStyle().Foreground(t.Observed).Background(t.Surface)
	proj := lipgloss.NewStyle().Foreground(t.Projected).Background(t.Surface)
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	return obs.Render("█") + muted.Render(fmt.Sprintf(" observed %d  ", observed)) +
		proj.Render("█") + muted.Render(fmt.Sprintf(" projected %d", projected))
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	if v >= 1 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}
