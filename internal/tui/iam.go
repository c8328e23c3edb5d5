package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hegde-atri/oci-burrow/internal/types"
)

// iamPage shows users and groups of the tenancy on two tabs.
// Each tab keeps its own fetch state.
type iamPage struct {
	env    *env
	users  *resourcePage[types.IamUser]
	groups *resourcePage[types.IamGroup]
	onUser bool
}

func newIAMPage(e *env) *iamPage {
	return &iamPage{
		env:    e,
		users:  newResourcePage(e, usersKind()),
		groups: newResourcePage(e, groupsKind()),
		onUser: true,
	}
}

func (p *iamPage) ID() pageID    { return pageIAM }
func (p *iamPage) Title() string { return "IAM" }

func (p *iamPage) active() page {
	if p.onUser {
		return p.users
	}
	return p.groups
}

func (p *iamPage) Capturing() bool { return p.active().Capturing() }

func (p *iamPage) Help() []key.Binding {
	return append([]key.Binding{keys.NextTab}, p.active().Help()...)
}

func (p *iamPage) SetSize(width, height int) {
	// tab bar
	p.users.SetSize(width, height-2)
	p.groups.SetSize(width, height-2)
}

func (p *iamPage) resetForProfile() {
	p.users.resetForProfile()
	p.groups.resetForProfile()
}

func (p *iamPage) Update(msg tea.Msg) tea.Cmd {
	if km, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(km, keys.NextTab) {
			p.onUser = !p.onUser
			return nil
		}
		return p.active().Update(km)
	}
	// results and spinner ticks may belong to the hidden tab
	return tea.Batch(p.users.Update(msg), p.groups.Update(msg))
}

func (p *iamPage) View() string {
	if _, ok := p.env.profiles.Current(); !ok {
		return noProfileView("🔑")
	}

	tab := func(label string, on bool) string {
		if on {
			return lipgloss.NewStyle().Foreground(whiteColor).Background(primaryColor).Bold(true).Padding(0, 2).Render(label)
		}
		return mutedStyle.Padding(0, 2).Render(label)
	}
	tabs := lipgloss.JoinHorizontal(lipgloss.Top, tab("Users", p.onUser), " ", tab("Groups", !p.onUser))

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("🔑  IAM (Identity and Access Management)"),
		tabs,
		p.active().View(),
	)
}
