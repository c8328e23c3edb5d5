package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/hegde-atri/oci-burrow/internal/gateway"
	"github.com/hegde-atri/oci-burrow/internal/state"
)

// resourceKind describes one resource list
type resourceKind[T any] struct {
	id    pageID
	title string
	icon  string
	noun  string
	// scoped pages need a compartment OCID before they can fetch
	scoped   bool
	columns  []table.Column
	row      func(T) table.Row
	state    func(T) string
	classify func(string) displayClass
	// ocid is what y copies
	ocid  func(T) string
	fetch func(ctx context.Context, c *gateway.Client, profile, scope string) ([]T, error)
}

// fetchDoneMsg carries the outcome of one list request
type fetchDoneMsg[T any] struct {
	page    pageID
	seq     int
	profile string
	rows    []T
	err     error
}

// resourcePage lists one resource type for the current profile
type resourcePage[T any] struct {
	kind    resourceKind[T]
	env     *env
	scope   textinput.Model
	table   table.Model
	spinner spinner.Model
	fetch   state.Fetch[T]
	seq     int
	banner  banner
	width   int
	height  int
}

func newResourcePage[T any](e *env, kind resourceKind[T]) *resourcePage[T] {
	ti := textinput.New()
	ti.Placeholder = "ocid1.compartment.oc1..xxxx"
	ti.Prompt = ""
	ti.CharLimit = 256
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(primaryColor)

	p := &resourcePage[T]{
		kind:    kind,
		env:     e,
		scope:   ti,
		spinner: sp,
		fetch:   state.Idle[T]{},
	}
	p.table = newTable(p.scaledColumns(), nil, 10)
	return p
}

func (p *resourcePage[T]) ID() pageID      { return p.kind.id }
func (p *resourcePage[T]) Title() string   { return p.kind.title }
func (p *resourcePage[T]) Capturing() bool { return p.scope.Focused() }

func (p *resourcePage[T]) Help() []key.Binding {
	if p.scope.Focused() {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "fetch")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "done")),
		}
	}
	bindings := []key.Binding{keys.Fetch, keys.Up, keys.Down, keys.Copy}
	if p.kind.scoped {
		bindings = append([]key.Binding{keys.EditScope}, bindings...)
	}
	if p.banner.visible() {
		bindings = append(bindings, keys.Dismiss)
	}
	return bindings
}

func (p *resourcePage[T]) scaledColumns() []table.Column {
	return lo.Map(p.kind.columns, func(c table.Column, _ int) table.Column {
		return table.Column{Title: c.Title, Width: p.env.layout.width(c.Width)}
	})
}

func (p *resourcePage[T]) SetSize(width, height int) {
	p.width, p.height = width, height
	p.relayout()
}

// relayout rebuilds the table for the current size and zoom
func (p *resourcePage[T]) relayout() {
	p.table.SetColumns(p.scaledColumns())
	p.table.SetWidth(p.width)
	// title, scope field, banner and detail line
	h := p.height - 9
	if p.banner.visible() {
		h -= 4
	}
	if h < 3 {
		h = 3
	}
	p.table.SetHeight(h)
}

// canFetch reports whether the fetch action is enabled
func (p *resourcePage[T]) canFetch() bool {
	if _, ok := p.env.profiles.Current(); !ok {
		return false
	}
	return state.CanFetch(p.fetch, p.kind.scoped, p.scope.Value())
}

func (p *resourcePage[T]) startFetch() tea.Cmd {
	if !p.canFetch() {
		return nil
	}
	profile := p.env.profiles.CurrentName()
	scope := strings.TrimSpace(p.scope.Value())

	p.seq++
	p.fetch = state.Loading[T]{}
	p.banner = banner{}
	p.refreshRows()

	var (
		seq    = p.seq
		id     = p.kind.id
		client = p.env.client
		fetch  = p.kind.fetch
	)
	p.env.log.Debug("fetching resources", zap.String("page", string(id)), zap.String("profile", profile))
	return tea.Batch(p.spinner.Tick, func() tea.Msg {
		rows, err := fetch(context.Background(), client, profile, scope)
		return fetchDoneMsg[T]{page: id, seq: seq, profile: profile, rows: rows, err: err}
	})
}

// resetForProfile drops rows of the previous profile and orphans any request in flight
func (p *resourcePage[T]) resetForProfile() {
	p.seq++
	p.fetch = state.Idle[T]{}
	p.banner = banner{}
	p.refreshRows()
}

func (p *resourcePage[T]) refreshRows() {
	rows := lo.Map(state.Rows(p.fetch), func(r T, _ int) table.Row { return p.kind.row(r) })
	p.table.SetRows(rows)
	// SetRows leaves the cursor at -1 after an empty list
	switch c := p.table.Cursor(); {
	case len(rows) == 0:
	case c < 0:
		p.table.SetCursor(0)
	case c >= len(rows):
		p.table.SetCursor(len(rows) - 1)
	}
	p.relayout()
}

func (p *resourcePage[T]) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case fetchDoneMsg[T]:
		if msg.page != p.kind.id || msg.seq != p.seq {
			return nil
		}
		if msg.profile != p.env.profiles.CurrentName() {
			p.resetForProfile()
			return nil
		}
		p.fetch = state.Complete(msg.rows, msg.err)
		if failed, ok := p.fetch.(state.Failed[T]); ok {
			p.banner = banner{kind: bannerError, text: failed.Message}
			p.env.log.Warn("fetch failed", zap.String("page", string(p.kind.id)), zap.String("error", failed.Message))
		}
		p.refreshRows()
		return nil

	case spinner.TickMsg:
		if !state.InFlight(p.fetch) {
			return nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return nil
}

func (p *resourcePage[T]) handleKey(msg tea.KeyMsg) tea.Cmd {
	if p.scope.Focused() {
		switch msg.String() {
		case "enter":
			p.scope.Blur()
			return p.startFetch()
		case "esc":
			p.scope.Blur()
			return nil
		}
		var cmd tea.Cmd
		p.scope, cmd = p.scope.Update(msg)
		return cmd
	}

	switch {
	case p.banner.visible() && key.Matches(msg, keys.Dismiss):
		p.banner = banner{}
		p.relayout()
		return nil
	case p.kind.scoped && key.Matches(msg, keys.EditScope):
		return p.scope.Focus()
	case key.Matches(msg, keys.Fetch):
		return p.startFetch()
	case key.Matches(msg, keys.Copy):
		p.copySelected()
		return nil
	}

	var cmd tea.Cmd
	p.table, cmd = p.table.Update(msg)
	return cmd
}

func (p *resourcePage[T]) selected() (T, bool) {
	var zero T
	rows := state.Rows(p.fetch)
	i := p.table.Cursor()
	if i < 0 || i >= len(rows) {
		return zero, false
	}
	return rows[i], true
}

func (p *resourcePage[T]) copySelected() {
	r, ok := p.selected()
	if !ok {
		return
	}
	id := p.kind.ocid(r)
	if err := p.env.copy(id); err != nil {
		p.banner = banner{kind: bannerError, text: fmt.Sprintf("Copy failed: %v", err)}
	} else {
		p.banner = banner{kind: bannerSuccess, text: "Copied " + id}
	}
	p.relayout()
}

func (p *resourcePage[T]) header() string {
	return titleStyle.Render(p.kind.icon + "  " + p.kind.title)
}

func (p *resourcePage[T]) View() string {
	if _, ok := p.env.profiles.Current(); !ok {
		return noProfileView(p.kind.icon)
	}

	parts := []string{p.header(), ""}
	if p.kind.scoped {
		field := panelStyle
		if p.scope.Focused() {
			field = focusedPanelStyle
		}
		action := mutedStyle.Render("[enter] fetch")
		if p.canFetch() {
			action = labelStyle.Render("[enter] fetch")
		}
		parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Center,
			labelStyle.Render("Compartment OCID "),
			field.Render(p.scope.View()),
			"  ",
			action,
		))
	}
	if p.banner.visible() {
		parts = append(parts, p.banner.View(p.width))
	}

	switch f := p.fetch.(type) {
	case state.Idle[T]:
		hint := fmt.Sprintf("Press r to fetch %s.", p.kind.noun)
		if p.kind.scoped {
			hint = fmt.Sprintf("Enter a compartment OCID (/) and press enter to fetch %s.", p.kind.noun)
		}
		parts = append(parts, "", mutedStyle.Render(hint))
	case state.Loading[T]:
		parts = append(parts, "", p.spinner.View()+" Fetching data...")
	case state.Loaded[T]:
		if len(f.Rows) == 0 {
			where := "in this compartment"
			if !p.kind.scoped {
				where = "in this tenancy"
			}
			parts = append(parts, "", mutedStyle.Render(fmt.Sprintf("No %s found %s.", p.kind.noun, where)))
			break
		}
		parts = append(parts, p.table.View(), p.detail(), p.summary(f.Rows))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// detail shows the selected row's lifecycle state in its class colour
func (p *resourcePage[T]) detail() string {
	r, ok := p.selected()
	if !ok {
		return ""
	}
	lifecycle := p.kind.state(r)
	if lifecycle == "" {
		return mutedStyle.Render(truncate(p.kind.ocid(r), p.width))
	}
	badge := classStyle(p.kind.classify(lifecycle)).Render("● " + lifecycle)
	room := p.width - lipgloss.Width(badge) - 2
	return badge + "  " + mutedStyle.Render(truncate(p.kind.ocid(r), room))
}

// summary counts rows per display class, e.g. "3 running · 1 stopped"
func (p *resourcePage[T]) summary(rows []T) string {
	if lo.EveryBy(rows, func(r T) bool { return p.kind.state(r) == "" }) {
		return ""
	}
	counts := lo.CountValuesBy(rows, func(r T) displayClass { return p.kind.classify(p.kind.state(r)) })
	classes := lo.Keys(counts)
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })
	parts := lo.Map(classes, func(c displayClass, _ int) string {
		return classStyle(c).Render(fmt.Sprintf("%d %s", counts[c], c))
	})
	return strings.Join(parts, mutedStyle.Render(" · "))
}

func noProfileView(icon string) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		"",
		titleStyle.Render(icon+"  No profile configured"),
		"",
		mutedStyle.Render("Add a profile on the Settings page to get started."),
	)
}
