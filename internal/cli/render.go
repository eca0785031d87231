package cli

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/pulse/internal/dashboard"
	"github.com/theirongolddev/pulse/internal/stream"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
	ColorPurple    = lipgloss.Color("#8B7EC8")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	observedStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	projectedStyle = lipgloss.NewStyle().
			Foreground(ColorPurple)

	warnStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	expiredStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorRed)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	width := 55
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(width).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable renders a bordered table with headers and rows.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}

	widths := make([]int, numCols)
	if t.Widths != nil {
		copy(widths, t.Widths)
	} else {
		for i, h := range t.Headers {
			widths[i] = max(widths[i], lipgloss.Width(h))
		}
		for _, row := range t.Rows {
			for i, cell := range row {
				if i < numCols {
					widths[i] = max(widths[i], lipgloss.Width(cell))
				}
			}
		}
	}

	var b strings.Builder

	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	rule := func(left, mid, right string) {
		b.WriteString(dimStyle.Render(left))
		for i, w := range widths {
			b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render(mid))
			}
		}
		b.WriteString(dimStyle.Render(right))
		b.WriteString("\n")
	}

	rule("╭", "┬", "╮")

	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(" " + padRight(h, widths[i]) + " "))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
		rule("├", "┼", "┤")
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			rule("├", "┼", "┤")
			continue
		}

		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}

			// Right-align every column except the first
			var padded string
			if i == 0 {
				padded = " " + padRight(cell, widths[i]) + " "
			} else {
				padded = " " + padLeft(cell, widths[i]) + " "
			}
			b.WriteString(valueStyle.Render(padded))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
	}

	rule("╰", "┴", "╯")

	return b.String()
}

// padRight and padLeft measure display width so pre-styled cells line up.
func padRight(s string, w int) string {
	if gap := w - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func padLeft(s string, w int) string {
	if gap := w - lipgloss.Width(s); gap > 0 {
		return strings.Repeat(" ", gap) + s
	}
	return s
}

// RenderFillBar renders how full the stream window is: width cells of
// which len/capacity are filled, followed by the counts.
func RenderFillBar(length, capacity, width int) string {
	if capacity <= 0 || width <= 0 {
		return ""
	}
	filled := min(width*length/capacity, width)
	if length > 0 && filled == 0 {
		filled = 1
	}
	return fmt.Sprintf("window %s%s %s/%s",
		observedStyle.Render(strings.Repeat("█", filled)),
		dimStyle.Render(strings.Repeat("░", width-filled)),
		FormatNumber(int64(length)),
		FormatNumber(int64(capacity)),
	)
}

var blocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// sparkRune maps v onto the block ramp over the fixed sample range, so
// sparklines from different frames are comparable.
func sparkRune(v int) rune {
	span := stream.MaxValue - stream.MinValue
	idx := (v - stream.MinValue) * (len(blocks) - 1) / span
	idx = max(0, min(idx, len(blocks)-1))
	return blocks[idx]
}

// SparklineText is the unstyled sparkline for a split, observed first.
func SparklineText(sp stream.Split) string {
	var b strings.Builder
	for _, s := range sp.Observed {
		b.WriteRune(sparkRune(s.Value))
	}
	for _, s := range sp.Projected {
		b.WriteRune(sparkRune(s.Value))
	}
	return b.String()
}

// RenderSparkline draws the observed samples and the projected tail in
// distinct colors.
func RenderSparkline(sp stream.Split) string {
	if sp.Len() == 0 {
		return ""
	}
	var obs, proj strings.Builder
	for _, s := range sp.Observed {
		obs.WriteRune(sparkRune(s.Value))
	}
	for _, s := range sp.Projected {
		proj.WriteRune(sparkRune(s.Value))
	}
	return observedStyle.Render(obs.String()) + projectedStyle.Render(proj.String())
}

// RenderCountdown styles the countdown display by urgency.
func RenderCountdown(f dashboard.Frame) string {
	switch {
	case f.Remaining == 0:
		return expiredStyle.Render(f.Countdown)
	case f.Remaining < 300:
		return warnStyle.Render(f.Countdown)
	default:
		return valueStyle.Render(f.Countdown)
	}
}

// RenderFrameLine renders one compact status line for headless output.
func RenderFrameLine(f dashboard.Frame) string {
	latest := "-"
	if f.Stats.Len > 0 {
		latest = fmt.Sprintf("%d", f.Stats.Latest)
	}
	event := ""
	if len(f.Log) > 0 {
		event = f.Log[0].Title
	}
	return fmt.Sprintf("%s  %s  %s %s  %s",
		RenderCountdown(f),
		RenderSparkline(f.Split),
		mutedStyle.Render("now"),
		valueStyle.Render(latest),
		dimStyle.Render(event),
	)
}

// SplitTable lays out every window sample with its segment.
func SplitTable(sp stream.Split) Table {
	t := Table{
		Title:   "Utilization window",
		Headers: []string{"Seq", "Value", "Segment"},
	}
	for _, s := range sp.Observed {
		t.Rows = append(t.Rows, []string{FormatNumber(int64(s.Seq)), fmt.Sprintf("%d", s.Value), "observed"})
	}
	if len(sp.Observed) > 0 && len(sp.Projected) > 0 {
		t.Rows = append(t.Rows, []string{"---"})
	}
	for _, s := range sp.Projected {
		t.Rows = append(t.Rows, []string{FormatNumber(int64(s.Seq)), fmt.Sprintf("%d", s.Value), "projected"})
	}
	return t
}
