package components

import (
	"fmt"

	"github.com/theirongolddev/pulse/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ColorForPct returns green/yellow/orange/red based on utilization level.
func ColorForPct(pct float64) string {
	t := theme.Active
	switch {
	case pct >= 0.9:
		return string(t.Red)
	case pct >= 0.7:
		return string(t.Orange)
	case pct >= 0.5:
		return string(t.Yellow)
	default:
		return string(t.Green)
	}
}

// ColorForRemaining colors a countdown by urgency.
func ColorForRemaining(secs int64) lipgloss.Color {
	t := theme.Active
	switch {
	case secs <= 0:
		return t.Red
	case secs < 300:
		return t.Orange
	case secs < 3600:
		return t.Yellow
	default:
		return t.TextPrimary
	}
}

// LabeledBar renders a labeled bubbles progress bar with a percentage.
func LabeledBar(label string, pct float64, color string, labelW, barWidth int) string {
	t := theme.Active

	pct = max(0, min(pct, 1))

	bar := progress.New(
		progress.WithSolidFill(color),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(pct) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%3.0f%%", pct*100))
}

// UtilizationBar shows the latest sample on a 0-100 scale.
func UtilizationBar(value, labelW, barWidth int) string {
	pct := float64(value) / 100
	return LabeledBar("Now", pct, ColorForPct(pct), labelW, barWidth)
}

// FillBar shows how full the sample window is.
func FillBar(fill float64, labelW, barWidth int) string {
	return LabeledBar("Window", fill, string(theme.Active.Accent), labelW, barWidth)
}
