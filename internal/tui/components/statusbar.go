package components

import (
	"strings"

	"github.com/theirongolddev/pulse/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Status is the live state summarized in the status bar.
type Status struct {
	Paused  bool
	Spinner string // spinner frame shown while the stream is paused
	Period  string
	Ticks   string
	Theme   string
	Message string
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, s Status) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(width)

	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	textStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pausedStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface).Bold(true)
	liveStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface).Bold(true)

	var left strings.Builder
	left.WriteString(textStyle.Render(" "))
	for _, k := range [][2]string{{"/", "filter"}, {"a", "ack"}, {"p", "pause"}, {"?", "help"}, {"q", "quit"}} {
		left.WriteString(keyStyle.Render("[" + k[0] + "]"))
		left.WriteString(textStyle.Render(k[1] + "  "))
	}
	if s.Message != "" {
		left.WriteString(textStyle.Render(s.Message))
	}

	var right string
	if s.Paused {
		right = pausedStyle.Render(s.Spinner + " PAUSED")
	} else {
		right = liveStyle.Render("● LIVE")
	}
	right += textStyle.Render("  " + s.Period + " · " + s.Ticks + " ticks · " + s.Theme + " ")

	padding := max(0, width-lipgloss.Width(left.String())-lipgloss.Width(right))

	return style.Render(left.String() + textStyle.Render(strings.Repeat(" ", padding)) + right)
}
