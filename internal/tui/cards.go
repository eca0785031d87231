package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/pulse/internal/cli"
	"github.com/theirongolddev/pulse/internal/countdown"
	"github.com/theirongolddev/pulse/internal/dashboard"
	"github.com/theirongolddev/pulse/internal/stream"
	"github.com/theirongolddev/pulse/internal/tui/components"
	"github.com/theirongolddev/pulse/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// renderCards lays out the dashboard cards in a content column of width cw.
func (a App) renderCards(f dashboard.Frame, cw int) string {
	var rows []string

	if a.isCompactLayout() {
		rows = append(rows,
			renderAccountCard(f, cw),
			renderCountdownCard(f, cw),
		)
	} else {
		widths := components.LayoutRow(cw, 2)
		rows = append(rows, components.CardRow([]string{
			renderAccountCard(f, widths[0]),
			renderCountdownCard(f, widths[1]),
		}))
	}

	rows = append(rows, renderChartCard(f, cw))

	widths := components.LayoutRow(cw, 2)
	rows = append(rows, components.CardRow([]string{
		renderStatsCard(f, widths[0]),
		renderLogCard(f, widths[1]),
	}))

	return strings.Join(rows, "\n")
}

func renderAccountCard(f dashboard.Frame, w int) string {
	t := theme.Active
	statusColor := t.Orange
	if f.Account.Active() {
		statusColor = t.Green
	}
	fields := []components.Field{
		{Label: "Name", Value: f.Account.Name},
	}
	if f.Account.Email != "" {
		fields = append(fields, components.Field{Label: "Email", Value: f.Account.Email})
	}
	fields = append(fields,
		components.Field{Label: "Plan", Value: f.Account.Plan},
		components.Field{Label: "Status", Value: f.Account.Status, Color: statusColor},
	)
	if f.Account.Region != "" {
		fields = append(fields, components.Field{Label: "Region", Value: f.Account.Region})
	}
	return components.MetricCard("Account", fields, w)
}

func renderCountdownCard(f dashboard.Frame, w int) string {
	t := theme.Active

	clockStyle := lipgloss.NewStyle().
		Foreground(components.ColorForRemaining(f.Remaining)).
		Background(t.Surface).
		Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	state := "Access expires in"
	if f.CountdownState == countdown.Expired {
		state = "Access expired"
	}

	body := mutedStyle.Render(state) + "\n" +
		clockStyle.Render(f.Countdown) + "\n" +
		mutedStyle.Render("Deadline "+f.Target.Format("Mon 02 Jan 2006 15:04:05"))

	if f.CountdownState == countdown.Expired {
		return components.FocusedCard("Expiry", body, w)
	}
	return components.ContentCard("Expiry", body, w)
}

func renderChartCard(f dashboard.Frame, w int) string {
	inner := components.CardInnerWidth(w)
	values, cut := f.Split.Values()

	var body string
	if len(values) == 0 {
		body = lipgloss.NewStyle().
			Foreground(theme.Active.TextDim).
			Background(theme.Active.Surface).
			Render("Waiting for samples…")
	} else {
		body = components.BarChart(values, cut, 100, inner, 8) + "\n" +
			components.ChartLegend(len(f.Split.Observed), len(f.Split.Projected))
	}
	return components.ContentCard(fmt.Sprintf("Utilization · last %d samples", f.Split.Len()), body, w)
}

func renderStatsCard(f dashboard.Frame, w int) string {
	st := f.Stats
	inner := components.CardInnerWidth(w)
	barW := max(6, inner-16)

	fields := []components.Field{
		{Label: "Ticks", Value: cli.FormatNumber(int64(st.Ticks))},
		{Label: "Evicted", Value: cli.FormatNumber(int64(st.Evicted))},
		{Label: "Range", Value: rangeText(st)},
		{Label: "Mean", Value: fmt.Sprintf("%.1f", st.Mean)},
		{Label: "Fill", Value: cli.FormatPercent(st.Fill)},
	}
	card := components.MetricCard("Stream", fields, w)

	bars := components.UtilizationBar(st.Latest, 6, barW) + "\n" +
		components.FillBar(st.Fill, 6, barW)
	return card + "\n" + components.ContentCard("", bars, w)
}

func rangeText(st stream.Stats) string {
	if st.Len == 0 {
		return "-"
	}
	return fmt.Sprintf("%d - %d", st.Min, st.Max)
}

func renderLogCard(f dashboard.Frame, w int) string {
	t := theme.Active
	inner := components.CardInnerWidth(w)

	titleStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	subStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	ageStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var lines []string
	for i, e := range f.Log {
		if i == logRows {
			lines = append(lines, ageStyle.Render(fmt.Sprintf("+%d older", len(f.Log)-logRows)))
			break
		}
		age := cli.FormatAgo(e.At, f.At)
		title := truncStr(e.Title, inner-lipgloss.Width(age)-1)
		gap := max(1, inner-lipgloss.Width(title)-lipgloss.Width(age))
		lines = append(lines, titleStyle.Render(title)+spaceStyle.Render(strings.Repeat(" ", gap))+ageStyle.Render(age))
		if e.Subtitle != "" {
			lines = append(lines, subStyle.Render(truncStr(e.Subtitle, inner)))
		}
	}
	return components.ContentCard(fmt.Sprintf("Events · %d", len(f.Log)), strings.Join(lines, "\n"), w)
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
