package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hegde-atri/oci-burrow/internal/gateway"
	"github.com/hegde-atri/oci-burrow/internal/state"
)

const sidebarWidth = 26

type focusArea int

const (
	focusSidebar focusArea = iota
	focusPage
)

var pageIcons = map[pageID]string{
	pageDashboard: "📊",
	pageCompute:   "🖥️",
	pageStorage:   "📦",
	pageNetwork:   "🌐",
	pageDatabase:  "🗄️",
	pageIAM:       "🔑",
	pageSettings:  "⚙️",
}

// CallLog exposes the gateway call history. *gateway.Gateway satisfies it.
type CallLog interface {
	Calls() []gateway.Call
}

// profileResetter is implemented by pages holding per-profile results
type profileResetter interface {
	resetForProfile()
}

// model represents the state of the bubbletea application
type model struct {
	version string
	env     *env
	calls   CallLog
	zoom    *state.ZoomStore
	changes <-chan struct{}

	pages    []page
	settings *settingsPage
	active   int
	cursor   int // sidebar
	focus    focusArea

	lastProfile string
	width       int
	height      int
	help        help.Model

	// overlays
	showingConfirmQuit bool
	showingCalls       bool
	chooser            *profileChooser
}

func newModel(version string, e *env, calls CallLog, zoom *state.ZoomStore, pickerRoot string) model {
	settings := newSettingsPage(e, pickerRoot)
	m := model{
		version:  version,
		env:      e,
		calls:    calls,
		zoom:     zoom,
		settings: settings,
		pages: []page{
			newDashboardPage(e),
			newResourcePage(e, computeKind()),
			newResourcePage(e, storageKind()),
			newResourcePage(e, networkKind()),
			newResourcePage(e, databaseKind()),
			newIAMPage(e),
			settings,
		},
		help: help.New(),
	}
	if zoom != nil {
		zoom.Attach(e.layout)
	}
	return m
}

// Init loads the shared profiles, the settings list and the region list
func (m model) Init() tea.Cmd {
	return tea.Batch(
		reloadProfiles(m.env.profiles),
		m.settings.loadList(),
		m.settings.loadRegions(),
		listenForConfigChanges(m.changes),
	)
}

func (m model) current() page { return m.pages[m.active] }

func (m *model) resize() {
	w := max(m.width-sidebarWidth-6, 20)
	h := max(m.height-6, 8)
	for _, p := range m.pages {
		p.SetSize(w, h)
	}
	m.help.Width = m.width
}

func (m *model) open(i int) {
	m.active = i
	m.cursor = i
	m.focus = focusPage
}

// profileChanged resets every page when the selected profile differs from
// the one their results belong to
func (m *model) profileChanged() {
	name := m.env.profiles.CurrentName()
	if name == m.lastProfile {
		return
	}
	m.lastProfile = name
	for _, p := range m.pages {
		if r, ok := p.(profileResetter); ok {
			r.resetForProfile()
		}
	}
}

// Update handles incoming messages and updates the model state
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case profilesReloadedMsg:
		m.profileChanged()
		return m, nil

	case configChangedMsg:
		m.env.log.Info("config file changed on disk, reloading profiles")
		return m, tea.Batch(m.settings.reloadAll(), listenForConfigChanges(m.changes))

	case navigateMsg:
		for i, p := range m.pages {
			if p.ID() == msg.to {
				m.open(i)
			}
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// async results and ticks: every page filters its own
	cmds := make([]tea.Cmd, 0, len(m.pages)+1)
	for _, p := range m.pages {
		cmds = append(cmds, p.Update(msg))
	}
	if m.chooser != nil {
		// filter results
		var cmd tea.Cmd
		m.chooser.list, cmd = m.chooser.list.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showingConfirmQuit {
		switch {
		case key.Matches(msg, keys.Confirm):
			return m, tea.Quit
		case key.Matches(msg, keys.Cancel), key.Matches(msg, keys.Quit):
			m.showingConfirmQuit = false
		}
		return m, nil
	}
	if m.showingCalls {
		if msg.String() == "esc" || key.Matches(msg, keys.Calls) || key.Matches(msg, keys.Quit) {
			m.showingCalls = false
		}
		return m, nil
	}
	if m.chooser != nil && msg.String() != "ctrl+c" {
		name, done, cmd := m.chooser.update(msg)
		if done {
			m.chooser = nil
		}
		if name != "" {
			m.env.profiles.Select(name)
			m.profileChanged()
		}
		return m, cmd
	}

	switch {
	case msg.String() == "ctrl+c":
		m.chooser = nil
		m.showingConfirmQuit = true
		return m, nil
	case key.Matches(msg, keys.Focus):
		if m.focus == focusPage {
			m.focus = focusSidebar
		} else {
			m.focus = focusPage
		}
		return m, nil
	}

	if m.focus == focusPage && m.current().Capturing() {
		return m, m.current().Update(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		m.showingConfirmQuit = true
		return m, nil
	case key.Matches(msg, keys.ZoomIn):
		m.zoomBy(func(z *state.ZoomStore) { z.ZoomIn() })
		return m, nil
	case key.Matches(msg, keys.ZoomOut):
		m.zoomBy(func(z *state.ZoomStore) { z.ZoomOut() })
		return m, nil
	case key.Matches(msg, keys.ZoomZero):
		m.zoomBy(func(z *state.ZoomStore) { z.Reset() })
		return m, nil
	case key.Matches(msg, keys.Profile):
		m.env.profiles.SelectNext()
		m.profileChanged()
		return m, nil
	case key.Matches(msg, keys.Choose):
		if profiles := m.env.profiles.Profiles(); len(profiles) > 0 {
			m.chooser = newProfileChooser(profiles, m.env.profiles.CurrentName(), m.width, m.height)
		}
		return m, nil
	case key.Matches(msg, keys.Calls):
		m.showingCalls = m.calls != nil
		return m, nil
	}

	if m.focus == focusSidebar {
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.pages)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Open):
			m.open(m.cursor)
		}
		return m, nil
	}

	return m, m.current().Update(msg)
}

func (m *model) zoomBy(fn func(*state.ZoomStore)) {
	if m.zoom == nil {
		return
	}
	fn(m.zoom)
	m.resize()
}

// View renders the shell: top bar, sidebar, current page and footer
func (m model) View() string {
	if m.showingConfirmQuit {
		return dialog(m.width, m.height, errorColor, "⚠️  Confirm Quit",
			lipgloss.NewStyle().Foreground(whiteColor).Render("Are you sure you want to exit?"),
			"",
			helpStyle.Render("Press 'y' to quit • 'n' or Esc to cancel"),
		)
	}
	if m.showingCalls {
		return m.callsView()
	}
	if m.chooser != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.chooser.View())
	}

	content := lipgloss.NewStyle().
		Width(max(m.width-sidebarWidth-4, 20)).
		Render(m.current().View())

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.sidebarView(), "  ", content)
	view := lipgloss.JoinVertical(lipgloss.Left, m.topBarView(), body, m.footerView())

	if m.width > 0 {
		view = lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top, view)
	}
	return view
}

func (m model) topBarView() string {
	title := titleStyle.Render(fmt.Sprintf("OCI Burrow v%s", m.version))

	profile := mutedStyle.Render("not configured")
	if p, ok := m.env.profiles.Current(); ok {
		profile = labelStyle.Render(p.Name) + mutedStyle.Render(" ("+p.Region+")")
	}
	if m.env.profiles.Loading() {
		profile = mutedStyle.Render("loading...")
	}
	right := "Profile: " + profile
	if m.zoom != nil {
		right += mutedStyle.Render(fmt.Sprintf("  zoom %d%%", int(m.zoom.Level()*100+0.5)))
	}

	gap := max(m.width-lipgloss.Width(title)-lipgloss.Width(right)-2, 1)
	bar := title + strings.Repeat(" ", gap) + right
	if errText := m.env.profiles.Err(); errText != "" {
		bar += "\n" + lipgloss.NewStyle().Foreground(errorColor).Render(truncate(errText, max(m.width-2, 10)))
	}
	return bar
}

func (m model) sidebarView() string {
	ascii := lipgloss.NewStyle().Foreground(secondaryColor).Bold(true).Render(`  ___
 (o o)
 (. .)
  \-/  `)

	items := []string{ascii, subtitleStyle.Render("OCI resources"), ""}
	for i, p := range m.pages {
		prefix := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor && m.focus == focusSidebar {
			prefix = "▶ "
			style = labelStyle
		}
		if i == m.active {
			style = style.Foreground(primaryColor).Bold(true)
		}
		items = append(items, style.Render(prefix+pageIcons[p.ID()]+" "+p.Title()))
	}

	style := panelStyle
	if m.focus == focusSidebar {
		style = focusedPanelStyle
	}
	return style.Width(sidebarWidth).Render(lipgloss.JoinVertical(lipgloss.Left, items...))
}

func (m model) footerView() string {
	global := []key.Binding{keys.Focus, keys.Profile, keys.Choose, keys.ZoomIn, keys.Calls, keys.Quit}
	bindings := global
	if m.focus == focusPage {
		bindings = append(m.current().Help(), global...)
	} else {
		bindings = append([]key.Binding{keys.Up, keys.Down, keys.Open}, global...)
	}
	return footerStyle.Render(m.help.ShortHelpView(bindings))
}

func (m model) callsView() string {
	calls := m.calls.Calls()
	const shown = 20
	if len(calls) > shown {
		calls = calls[len(calls)-shown:]
	}

	lines := make([]string, 0, len(calls))
	for _, c := range calls {
		outcome := lipgloss.NewStyle().Foreground(successColor).Render("ok")
		if c.Err != "" {
			outcome = lipgloss.NewStyle().Foreground(errorColor).Render(truncate(c.Err, 40))
		}
		lines = append(lines, fmt.Sprintf("%s  %-24s %8s  %s",
			c.Started.Format(time.TimeOnly), c.Command, c.Elapsed.Round(time.Millisecond), outcome))
	}
	if len(lines) == 0 {
		lines = append(lines, mutedStyle.Render("No calls yet..."))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(primaryColor).
		Padding(1, 2).
		Width(90).
		Render(lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("📋 Gateway calls"),
			"",
			strings.Join(lines, "\n"),
			"",
			helpStyle.Render("Esc: close"),
		))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
