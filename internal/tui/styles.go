package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Purple theme colors
var (
	primaryColor   = lipgloss.Color("#7D56F4")
	secondaryColor = lipgloss.Color("#FF8C00")
	mutedColor     = lipgloss.Color("#626262")
	whiteColor     = lipgloss.Color("#FFFFFF")
	errorColor     = lipgloss.Color("#FF6B6B")
	warnColor      = lipgloss.Color("#FFA500")
	successColor   = lipgloss.Color("#04B575")
	infoColor      = lipgloss.Color("#5DADE2")
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Italic(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	footerStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1)

	focusedPanelStyle = panelStyle.
				BorderForeground(primaryColor)
)

// displayClass is the colour bucket of a lifecycle state
type displayClass string

const (
	classRunning      displayClass = "running"
	classStopped      displayClass = "stopped"
	classTerminated   displayClass = "terminated"
	classProvisioning displayClass = "provisioning"
	classAvailable    displayClass = "available"
	classActive       displayClass = "active"
	classInactive     displayClass = "inactive"
	classCreating     displayClass = "creating"
	classDefault      displayClass = "default"
)

var classColors = map[displayClass]lipgloss.Color{
	classRunning:      successColor,
	classAvailable:    successColor,
	classActive:       successColor,
	classStopped:      secondaryColor,
	classInactive:     secondaryColor,
	classTerminated:   errorColor,
	classProvisioning: warnColor,
	classCreating:     warnColor,
	classDefault:      mutedColor,
}

func classStyle(c displayClass) lipgloss.Style {
	color, ok := classColors[c]
	if !ok {
		color = mutedColor
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true)
}

// bannerKind selects the banner colour
type bannerKind int

const (
	bannerNone bannerKind = iota
	bannerError
	bannerSuccess
	bannerInfo
)

// banner is a dismissible inline message
type banner struct {
	kind bannerKind
	text string
}

func (b banner) visible() bool { return b.kind != bannerNone && b.text != "" }

func (b banner) View(width int) string {
	if !b.visible() {
		return ""
	}
	color := errorColor
	switch b.kind {
	case bannerSuccess:
		color = successColor
	case bannerInfo:
		color = infoColor
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Foreground(color).
		Padding(0, 1)
	if width > 4 {
		style = style.Width(width - 2)
	}
	return style.Render(b.text + "\n" + helpStyle.Render("esc/x: dismiss"))
}

// newTable creates a table styled to match the purple theme
func newTable(columns []table.Column, rows []table.Row, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(primaryColor).
		BorderBottom(true).
		Bold(true).
		Foreground(primaryColor)

	s.Selected = s.Selected.
		Foreground(whiteColor).
		Background(primaryColor).
		Bold(true)

	t.SetStyles(s)
	return t
}

// truncate shortens s to width cells, marking the cut with an ellipsis
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// orDash renders optional values
func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

// dialog renders a centered modal box
func dialog(width, height int, border lipgloss.Color, title string, lines ...string) string {
	const contentWidth = 52

	center := lipgloss.NewStyle().Width(contentWidth).Align(lipgloss.Center)
	parts := []string{
		center.Render(lipgloss.NewStyle().Foreground(border).Bold(true).Render(title)),
		"",
	}
	for _, l := range lines {
		parts = append(parts, center.Render(l))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(1, 3).
		Width(60).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
