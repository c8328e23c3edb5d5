package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type card struct {
	to    pageID
	icon  string
	title string
	desc  string
}

var dashboardCards = []card{
	{pageCompute, "🖥️", "Compute", "Instances, lifecycle state and shapes"},
	{pageStorage, "📦", "Object Storage", "Buckets in a compartment"},
	{pageNetwork, "🌐", "Networking", "Virtual cloud networks"},
	{pageDatabase, "🗄️", "Database", "DB systems and their state"},
	{pageIAM, "🔑", "IAM", "Users and groups of the tenancy"},
}

// dashboardPage summarises the current profile and links to the resource pages
type dashboardPage struct {
	env    *env
	cursor int
	width  int
}

func newDashboardPage(e *env) *dashboardPage {
	return &dashboardPage{env: e}
}

func (p *dashboardPage) ID() pageID                { return pageDashboard }
func (p *dashboardPage) Title() string             { return "Dashboard" }
func (p *dashboardPage) Capturing() bool           { return false }
func (p *dashboardPage) SetSize(width, height int) { p.width = width }

func (p *dashboardPage) Help() []key.Binding {
	return []key.Binding{keys.Up, keys.Down, keys.Open}
}

func (p *dashboardPage) Update(msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(km, keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(km, keys.Down):
		if p.cursor < len(dashboardCards)-1 {
			p.cursor++
		}
	case key.Matches(km, keys.Open):
		return navigate(dashboardCards[p.cursor].to)
	}
	return nil
}

func (p *dashboardPage) View() string {
	profile, ok := p.env.profiles.Current()
	if !ok {
		return noProfileView("⚙️")
	}

	valueWidth := max(p.width-20, 10)
	info := func(label, value string) string {
		return labelStyle.Width(16).Render(label) + truncate(value, valueWidth)
	}
	profileCard := panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		subtitleStyle.Render("Current profile"),
		info("Profile", profile.Name),
		info("Region", profile.Region),
		info("Tenancy OCID", profile.Tenancy),
		info("User OCID", profile.User),
	))

	cards := make([]string, 0, len(dashboardCards))
	for i, c := range dashboardCards {
		style := panelStyle
		if i == p.cursor {
			style = focusedPanelStyle
		}
		cards = append(cards, style.Width(min(max(p.width-2, 20), 60)).Render(
			fmt.Sprintf("%s  %s\n%s", c.icon, labelStyle.Render(c.title), mutedStyle.Render(c.desc)),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("📊  Dashboard"),
		"",
		profileCard,
		"",
		lipgloss.JoinVertical(lipgloss.Left, cards...),
	)
}
