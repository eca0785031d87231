// Package tui provides the interactive Bubble Tea dashboard for pulse.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/pulse/internal/cli"
	"github.com/theirongolddev/pulse/internal/dashboard"
	"github.com/theirongolddev/pulse/internal/logging"
	"github.com/theirongolddev/pulse/internal/model"
	"github.com/theirongolddev/pulse/internal/tui/components"
	"github.com/theirongolddev/pulse/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// streamTickMsg and clockTickMsg carry the generation of the loop that
// scheduled them. A message from an older generation is dropped, which is
// how pausing or quitting ends a loop.
type streamTickMsg struct {
	gen int
	at  time.Time
}

type clockTickMsg struct {
	gen int
	at  time.Time
}

// App is the root Bubble Tea model.
type App struct {
	dash   *dashboard.Dashboard
	logger *zap.Logger

	// Tick loops
	streamGen int
	clockGen  int
	paused    bool
	quitting  bool

	// UI state
	width    int
	height   int
	showHelp bool
	message  string

	// Sidebar
	cursor    int
	filtering bool
	filter    textinput.Model
	query     string

	spinner spinner.Model
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 200

	minContentHeight = 5
	logRows          = 6
	sidebarItemTop   = 4 // border + brand + filter + blank
)

// NewApp creates the dashboard model. The dashboard is driven only through
// the tick loops and key handlers below.
func NewApp(d *dashboard.Dashboard, logger *zap.Logger) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Orange).Background(theme.Active.Surface)

	return App{
		dash:    d,
		logger:  logging.OrNop(logger),
		filter:  newFilterInput(),
		spinner: sp,
	}
}

func newFilterInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "filter"
	ti.CharLimit = 32
	ti.Width = components.SidebarWidth - 6
	return ti
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		streamTickCmd(a.streamGen, a.dash.Period()),
		clockTickCmd(a.clockGen),
	)
}

func streamTickCmd(gen int, period time.Duration) tea.Cmd {
	return tea.Tick(period, func(t time.Time) tea.Msg {
		return streamTickMsg{gen: gen, at: t}
	})
}

// clockTickCmd fires on wall-clock second boundaries so the countdown
// display changes in step with the system clock.
func clockTickCmd(gen int) tea.Cmd {
	return tea.Every(time.Second, func(t time.Time) tea.Msg {
		return clockTickMsg{gen: gen, at: t}
	})
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case streamTickMsg:
		if a.quitting || a.paused || msg.gen != a.streamGen {
			return a, nil
		}
		a.dash.TickStream()
		return a, streamTickCmd(a.streamGen, a.dash.Period())

	case clockTickMsg:
		if a.quitting || msg.gen != a.clockGen {
			return a, nil
		}
		a.dash.TickCountdown(msg.at)
		return a, clockTickCmd(a.clockGen)

	case spinner.TickMsg:
		if !a.paused {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.MouseMsg:
		if a.showHelp || a.filtering {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		return a.updateKey(msg)
	}

	if a.filtering {
		var cmd tea.Cmd
		a.filter, cmd = a.filter.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a.quit()
	}

	if a.filtering {
		return a.updateFilter(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	items := a.navItems()

	switch key {
	case "q":
		return a.quit()

	case "/":
		a.filtering = true
		a.filter.SetValue(a.query)
		a.filter.CursorEnd()
		return a, a.filter.Focus()

	case "esc":
		if a.query != "" {
			a.query = ""
			a.cursor = 0
		}
		return a, nil

	case "j", "down":
		if a.cursor < len(items)-1 {
			a.cursor++
		}
		return a, nil

	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil

	case "g":
		a.cursor = 0
		return a, nil

	case "G":
		a.cursor = max(0, len(items)-1)
		return a, nil

	case "enter":
		if a.cursor < len(items) {
			it := items[a.cursor]
			a.dash.Record("Opened "+it.Label, it.Hint)
			a.message = "Opened " + it.Label
			a.logger.Debug("nav opened", zap.String("item", it.Label))
		}
		return a, nil

	case "a":
		f := a.dash.Frame()
		sub := "No samples yet"
		if f.Stats.Len > 0 {
			sub = fmt.Sprintf("Utilization %d%%, %s remaining", f.Stats.Latest, f.Countdown)
		}
		a.dash.Record("Acknowledged", sub)
		a.message = "Acknowledged"
		return a, nil

	case "p":
		return a.togglePause()
	}

	return a, nil
}

// updateFilter handles keys while the sidebar filter has focus. The list is
// filtered live as the query changes.
func (a App) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.query = strings.TrimSpace(a.filter.Value())
		a.filtering = false
		a.filter.Blur()
		return a, nil
	case "esc":
		a.query = ""
		a.filtering = false
		a.filter.Blur()
		a.filter.SetValue("")
		a.cursor = 0
		return a, nil
	}

	var cmd tea.Cmd
	a.filter, cmd = a.filter.Update(msg)
	a.query = strings.TrimSpace(a.filter.Value())
	a.cursor = min(a.cursor, max(0, len(a.navItems())-1))
	return a, cmd
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	items := a.navItems()
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.cursor > 0 {
			a.cursor--
		}
	case tea.MouseButtonWheelDown:
		if a.cursor < len(items)-1 {
			a.cursor++
		}
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return a, nil
		}
		if i := a.navAt(msg.X, msg.Y); i >= 0 {
			a.cursor = i
		}
	}
	return a, nil
}

// navAt returns the sidebar item under the cell, or -1.
func (a App) navAt(x, y int) int {
	if x < 0 || x >= components.SidebarWidth {
		return -1
	}
	i := y - sidebarItemTop
	if i < 0 || i >= len(a.navItems()) {
		return -1
	}
	return i
}

func (a App) togglePause() (tea.Model, tea.Cmd) {
	// Bumping the generation orphans any tick already in flight.
	a.streamGen++
	a.paused = !a.paused
	if a.paused {
		a.dash.Record("Stream paused", "")
		a.logger.Info("stream paused")
		return a, a.spinner.Tick
	}
	a.dash.Record("Stream resumed", "")
	a.logger.Info("stream resumed")
	return a, streamTickCmd(a.streamGen, a.dash.Period())
}

func (a App) quit() (tea.Model, tea.Cmd) {
	a.quitting = true
	a.streamGen++
	a.clockGen++
	a.logger.Info("dashboard closing")
	return a, tea.Quit
}

func (a App) navItems() []model.NavItem {
	return a.dash.FilterNav(a.query)
}

// Paused reports whether the stream loop is stopped.
func (a App) Paused() bool { return a.paused }

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.quitting || a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(5, a.height)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  pulse needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	sections := []struct {
		name     string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"j k", "Move in sidebar"},
			{"g G", "First / last item"},
			{"/", "Filter sidebar"},
			{"Esc", "Clear filter"},
		}},
		{"Actions", []struct{ key, desc string }{
			{"Enter", "Open item"},
			{"a", "Acknowledge current reading"},
			{"p", "Pause / resume stream"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}
	for i, sec := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionStyle.Render(sec.name))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	h := a.height
	f := a.dash.Frame()

	statusBar := components.RenderStatusBar(w, components.Status{
		Paused:  a.paused,
		Spinner: a.spinner.View(),
		Period:  cli.FormatPeriod(a.dash.Period()),
		Ticks:   cli.FormatNumber(int64(f.Stats.Ticks)),
		Theme:   t.Name,
		Message: a.message,
	})
	contentH := max(minContentHeight, h-lipgloss.Height(statusBar))

	sidebar := components.RenderSidebar(a.navItems(), a.cursor, a.filterLine(), contentH)

	cw := a.contentWidth() - components.SidebarWidth
	content := a.renderCards(f, cw)
	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)

	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, content)
	body = lipgloss.Place(w, contentH, lipgloss.Left, lipgloss.Top, body,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, body, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) filterLine() string {
	t := theme.Active
	if a.filtering {
		return " " + a.filter.View()
	}
	style := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	if a.query != "" {
		return style.Render(" / ") + lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Render(a.query)
	}
	return style.Render(" / to filter")
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		result.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}
