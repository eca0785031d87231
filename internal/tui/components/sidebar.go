package components

import (
	"strings"

	"github.com/theirongolddev/pulse/internal/model"
	"github.com/theirongolddev/pulse/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// SidebarWidth is the fixed outer width of the navigation sidebar.
const SidebarWidth = 24

// RenderSidebar renders the navigation list with the filter line on top.
// cursor indexes items; filterLine is the already-rendered filter input or
// query summary.
func RenderSidebar(items []model.NavItem, cursor int, filterLine string, height int) string {
	t := theme.Active
	inner := SidebarWidth - 2

	base := lipgloss.NewStyle().Background(t.Surface).Width(inner)
	brand := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	item := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Width(inner)
	selected := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceHover).Bold(true).Width(inner)
	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Width(inner)

	var b strings.Builder
	b.WriteString(base.Render(brand.Render(" ◈ pulse")))
	b.WriteString("\n")
	b.WriteString(base.Render(filterLine))
	b.WriteString("\n")
	b.WriteString(base.Render(""))

	if len(items) == 0 {
		b.WriteString("\n")
		b.WriteString(dim.Render("  no matches"))
	}
	for i, it := range items {
		b.WriteString("\n")
		label := truncate(it.Label, inner-4)
		if i == cursor {
			b.WriteString(selected.Render(" ▸ " + label))
		} else {
			b.WriteString(item.Render("   " + label))
		}
	}

	if cursor >= 0 && cursor < len(items) {
		b.WriteString("\n")
		b.WriteString(base.Render(""))
		b.WriteString("\n")
		hint := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Width(inner).Padding(0, 1)
		b.WriteString(hint.Render(items[cursor].Hint))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		BorderBackground(t.Background).
		Background(t.Surface).
		Width(inner).
		Height(max(1, height-2))

	return box.Render(b.String())
}

func truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
