package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/hegde-atri/oci-burrow/internal/ocicfg"
	"github.com/hegde-atri/oci-burrow/internal/tui/keyfile"
	"github.com/hegde-atri/oci-burrow/internal/types"
)

type profileListMsg struct {
	profiles []types.Profile
	err      error
}

type regionsMsg struct {
	regions []types.Region
	err     error
}

type importedMsg struct {
	created []string
	skipped int
	err     error
}

// settingsPage lists the profiles of the config file next to the editor
type settingsPage struct {
	env        *env
	pickerRoot string

	profiles []types.Profile
	regions  []types.Region
	cursor   int
	editor   *editor

	importing   bool
	importInput textinput.Model

	banner banner
	width  int
	height int
}

func newSettingsPage(e *env, pickerRoot string) *settingsPage {
	in := textinput.New()
	in.Placeholder = "~/.oci/config"
	in.Prompt = ""
	in.Width = 50
	return &settingsPage{env: e, pickerRoot: pickerRoot, importInput: in}
}

func (p *settingsPage) ID() pageID    { return pageSettings }
func (p *settingsPage) Title() string { return "Settings" }

func (p *settingsPage) Capturing() bool { return p.editor != nil || p.importing }

func (p *settingsPage) Help() []key.Binding {
	if p.editor != nil {
		return p.editor.help()
	}
	if p.importing {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "import")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		}
	}
	return []key.Binding{keys.Up, keys.Down, keys.Open, keys.New, keys.Import, keys.Reload}
}

func (p *settingsPage) SetSize(width, height int) {
	p.width, p.height = width, height
	if p.editor != nil {
		p.editor.width = p.editorWidth()
		p.editor.picker.SetHeight(max(height-12, 5))
	}
}

func (p *settingsPage) editorWidth() int {
	return max(p.width-listWidth-4, 40)
}

const listWidth = 28

// loadList reads the profiles for this page, independently of the shared store
func (p *settingsPage) loadList() tea.Cmd {
	client, path := p.env.client, p.env.profiles.ConfigPath()
	return func() tea.Msg {
		profiles, err := client.LoadConfig(context.Background(), path)
		return profileListMsg{profiles: profiles, err: err}
	}
}

func (p *settingsPage) loadRegions() tea.Cmd {
	client := p.env.client
	return func() tea.Msg {
		regions, err := client.Regions(context.Background())
		return regionsMsg{regions: regions, err: err}
	}
}

// importFrom creates every profile of an OCI CLI config whose name is not taken yet
func (p *settingsPage) importFrom(path string) tea.Cmd {
	client, target := p.env.client, p.env.profiles.ConfigPath()
	existing := lo.Map(p.profiles, func(pr types.Profile, _ int) string { return pr.Name })
	return func() tea.Msg {
		ctx := context.Background()
		found, err := client.ImportCLIConfig(ctx, ocicfg.ExpandTilde(path))
		if err != nil {
			return importedMsg{err: err}
		}
		fresh, taken := lo.FilterReject(found, func(pr types.Profile, _ int) bool {
			return !lo.Contains(existing, pr.Name)
		})
		var created []string
		for _, pr := range fresh {
			if err := client.CreateProfile(ctx, pr, target); err != nil {
				return importedMsg{created: created, skipped: len(taken), err: err}
			}
			created = append(created, pr.Name)
		}
		return importedMsg{created: created, skipped: len(taken)}
	}
}

func (p *settingsPage) reloadAll() tea.Cmd {
	return tea.Batch(p.loadList(), reloadProfiles(p.env.profiles))
}

func (p *settingsPage) open(pr *types.Profile) tea.Cmd {
	p.editor = newEditor(p.env, pr, p.regions, p.pickerRoot)
	p.SetSize(p.width, p.height)
	return textinput.Blink
}

func (p *settingsPage) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case profileListMsg:
		if msg.err != nil {
			p.profiles = nil
			p.banner = banner{kind: bannerError, text: msg.err.Error()}
		} else {
			p.profiles = msg.profiles
		}
		if p.cursor >= len(p.profiles) {
			p.cursor = max(len(p.profiles)-1, 0)
		}
		return nil

	case regionsMsg:
		if msg.err != nil {
			p.env.log.Warn("failed to load regions", zap.Error(msg.err))
			return nil
		}
		p.regions = msg.regions
		if p.editor != nil {
			p.editor.regions = msg.regions
		}
		return nil

	case importedMsg:
		switch {
		case msg.err != nil:
			p.banner = banner{kind: bannerError, text: msg.err.Error()}
		case len(msg.created) == 0:
			p.banner = banner{kind: bannerInfo, text: fmt.Sprintf("Nothing to import (%d already present).", msg.skipped)}
		default:
			p.banner = banner{kind: bannerSuccess, text: fmt.Sprintf("Imported %s (%d already present).",
				strings.Join(msg.created, ", "), msg.skipped)}
		}
		return p.reloadAll()

	case profileSavedMsg:
		ok := msg.err == nil && len(msg.invalid) == 0
		if p.editor != nil {
			p.editor.handleResult(msg)
		} else if ok {
			p.banner = banner{kind: bannerSuccess, text: fmt.Sprintf("Profile %q saved.", msg.name)}
		} else if msg.err != nil {
			p.banner = banner{kind: bannerError, text: msg.err.Error()}
		}
		if ok {
			return p.reloadAll()
		}
		return nil

	case profileDeletedMsg:
		if msg.err != nil {
			if p.editor != nil {
				return p.editor.handleResult(msg)
			}
			p.banner = banner{kind: bannerError, text: msg.err.Error()}
			return nil
		}
		p.editor = nil
		p.banner = banner{kind: bannerSuccess, text: fmt.Sprintf("Profile %q deleted.", msg.name)}
		return p.reloadAll()

	case tea.KeyMsg:
		return p.handleKey(msg)
	}

	if p.editor != nil {
		return p.editor.handleResult(msg)
	}
	return nil
}

func (p *settingsPage) handleKey(msg tea.KeyMsg) tea.Cmd {
	if p.editor != nil {
		cmd, closed := p.editor.handleKey(msg)
		if closed {
			p.editor = nil
		}
		return cmd
	}

	if p.importing {
		switch msg.String() {
		case "esc":
			p.importing = false
			p.importInput.Blur()
			return nil
		case "enter":
			path := strings.TrimSpace(p.importInput.Value())
			if path == "" {
				return nil
			}
			p.importing = false
			p.importInput.Blur()
			return p.importFrom(path)
		}
		var cmd tea.Cmd
		p.importInput, cmd = p.importInput.Update(msg)
		return cmd
	}

	switch {
	case p.banner.visible() && key.Matches(msg, keys.Dismiss):
		p.banner = banner{}
	case key.Matches(msg, keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(msg, keys.Down):
		if p.cursor < len(p.profiles)-1 {
			p.cursor++
		}
	case key.Matches(msg, keys.Open):
		if p.cursor < len(p.profiles) {
			pr := p.profiles[p.cursor]
			return p.open(&pr)
		}
	case key.Matches(msg, keys.New):
		return p.open(nil)
	case key.Matches(msg, keys.Import):
		p.importing = true
		p.importInput.SetValue("")
		return p.importInput.Focus()
	case key.Matches(msg, keys.Reload):
		return p.reloadAll()
	}
	return nil
}

func (p *settingsPage) listView() string {
	lines := []string{subtitleStyle.Render("Profiles")}
	if len(p.profiles) == 0 {
		lines = append(lines, mutedStyle.Render("No profiles yet."), mutedStyle.Render("Press n to add one."))
	}
	for i, pr := range p.profiles {
		prefix := "  "
		style := lipgloss.NewStyle()
		if i == p.cursor {
			prefix = "▶ "
			style = labelStyle
		}
		lines = append(lines, style.Render(prefix+truncate(pr.Name, listWidth-4)))
	}
	return panelStyle.Width(listWidth).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (p *settingsPage) View() string {
	parts := []string{titleStyle.Render("⚙️  Settings"), ""}
	if p.banner.visible() {
		parts = append(parts, p.banner.View(p.width))
	}
	if p.importing {
		parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Center,
			labelStyle.Render("Import OCI CLI config from "),
			focusedPanelStyle.Render(p.importInput.View()),
		))
	}

	var right string
	if p.editor != nil {
		right = p.editor.View()
	} else {
		right = mutedStyle.Render("Select a profile and press enter to edit it,\nor press n to create a new one.")
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		p.listView(),
		"  ",
		lipgloss.NewStyle().Width(p.editorWidth()).Render(right),
	)
	parts = append(parts, body)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// defaultPickerRoot is where the key file picker starts
func defaultPickerRoot() string {
	return keyfile.DefaultRoot()
}
