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

	"github.com/hegde-atri/oci-burrow/internal/ocicfg"
	"github.com/hegde-atri/oci-burrow/internal/tui/keyfile"
	"github.com/hegde-atri/oci-burrow/internal/types"
)

type editorField int

const (
	fieldName editorField = iota
	fieldUser
	fieldTenancy
	fieldRegion
	fieldFingerprint
	fieldKeyFile
	fieldPassPhrase
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Profile name", "User OCID", "Tenancy OCID", "Region", "Fingerprint", "Private key file", "Key passphrase (optional)",
}

var fieldPlaceholders = [fieldCount]string{
	"e.g. DEFAULT",
	"ocid1.user.oc1..xxxx",
	"ocid1.tenancy.oc1..xxxx",
	"←/→ to choose",
	"aa:bb:cc:dd:ee:ff:...",
	"ctrl+o to browse",
	"only for encrypted keys",
}

// profileSavedMsg reports the outcome of save. Invalid holds validation
// messages, which are not an error.
type profileSavedMsg struct {
	name    string
	invalid []string
	err     error
}

type profileDeletedMsg struct {
	name string
	err  error
}

type connectionTestedMsg struct {
	result types.ConnectionResult
	err    error
}

// editor is the create/update/delete/test form for one profile
type editor struct {
	env      *env
	isNew    bool
	original string
	inputs   [fieldCount]textinput.Model
	focus    editorField
	regions  []types.Region

	saving        bool
	testing       bool
	deleting      bool
	confirmDelete bool
	picking       bool
	picker        keyfile.Picker
	banner        banner
	width         int
}

func newEditor(e *env, p *types.Profile, regions []types.Region, pickerRoot string) *editor {
	ed := &editor{env: e, isNew: p == nil, regions: regions, picker: keyfile.New(pickerRoot)}
	for i := range ed.inputs {
		in := textinput.New()
		in.Placeholder = fieldPlaceholders[i]
		in.Prompt = ""
		in.CharLimit = 512
		in.Width = 56
		if editorField(i) == fieldPassPhrase {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		ed.inputs[i] = in
	}
	if p != nil {
		ed.original = p.Name
		ed.set(*p)
	}
	ed.inputs[fieldName].Focus()
	return ed
}

func (ed *editor) set(p types.Profile) {
	ed.inputs[fieldName].SetValue(p.Name)
	ed.inputs[fieldUser].SetValue(p.User)
	ed.inputs[fieldTenancy].SetValue(p.Tenancy)
	ed.inputs[fieldRegion].SetValue(p.Region)
	ed.inputs[fieldFingerprint].SetValue(p.Fingerprint)
	ed.inputs[fieldKeyFile].SetValue(p.KeyFile)
	ed.inputs[fieldPassPhrase].SetValue(p.PassPhrase)
}

// form returns the profile as currently entered
func (ed *editor) form() types.Profile {
	v := func(f editorField) string { return strings.TrimSpace(ed.inputs[f].Value()) }
	return types.Profile{
		Name:        v(fieldName),
		User:        v(fieldUser),
		Tenancy:     v(fieldTenancy),
		Region:      v(fieldRegion),
		Fingerprint: v(fieldFingerprint),
		KeyFile:     ocicfg.ExpandTilde(v(fieldKeyFile)),
		PassPhrase:  ed.inputs[fieldPassPhrase].Value(),
	}
}

func (ed *editor) setFocus(f editorField) tea.Cmd {
	ed.inputs[ed.focus].Blur()
	ed.focus = (f + fieldCount) % fieldCount
	return ed.inputs[ed.focus].Focus()
}

// cycleRegion moves the region field through the known regions
func (ed *editor) cycleRegion(step int) {
	if len(ed.regions) == 0 {
		return
	}
	current := ed.inputs[fieldRegion].Value()
	_, idx, ok := lo.FindIndexOf(ed.regions, func(r types.Region) bool { return r.Code == current })
	switch {
	case !ok && step > 0:
		idx = 0
	case !ok:
		idx = len(ed.regions) - 1
	default:
		idx = (idx + step + len(ed.regions)) % len(ed.regions)
	}
	ed.inputs[fieldRegion].SetValue(ed.regions[idx].Code)
	ed.inputs[fieldRegion].CursorEnd()
}

func (ed *editor) busy() bool { return ed.saving || ed.testing || ed.deleting }

func (ed *editor) help() []key.Binding {
	switch {
	case ed.picking:
		return nil
	case ed.confirmDelete:
		return []key.Binding{keys.Confirm, keys.Cancel}
	}
	bindings := []key.Binding{keys.PrevFld, keys.NextFld, keys.Save, keys.Test}
	if !ed.isNew {
		bindings = append(bindings, keys.Delete)
	}
	if ed.focus == fieldRegion {
		bindings = append(bindings, keys.Region)
	}
	return append(bindings, keys.Pick, key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")))
}

// save validates the form, then creates or updates the profile
func (ed *editor) save() tea.Cmd {
	if ed.saving {
		return nil
	}
	ed.saving = true
	ed.banner = banner{}

	var (
		client   = ed.env.client
		path     = ed.env.profiles.ConfigPath()
		p        = ed.form()
		isNew    = ed.isNew
		original = ed.original
	)
	return func() tea.Msg {
		ctx := context.Background()
		res, err := client.ValidateProfile(ctx, p)
		if err != nil {
			return profileSavedMsg{name: p.Name, err: err}
		}
		if !res.Valid {
			return profileSavedMsg{name: p.Name, invalid: res.Errors}
		}
		if isNew {
			err = client.CreateProfile(ctx, p, path)
		} else {
			err = client.UpdateProfile(ctx, original, p, path)
		}
		return profileSavedMsg{name: p.Name, err: err}
	}
}

func (ed *editor) testConnection() tea.Cmd {
	if ed.isNew {
		ed.banner = banner{kind: bannerInfo, text: "Save the profile before running a connection test."}
		return nil
	}
	if ed.testing {
		return nil
	}
	ed.testing = true
	ed.banner = banner{}

	client, name, path := ed.env.client, ed.original, ed.env.profiles.ConfigPath()
	return func() tea.Msg {
		res, err := client.TestConnection(context.Background(), name, path)
		return connectionTestedMsg{result: res, err: err}
	}
}

func (ed *editor) deleteProfile() tea.Cmd {
	ed.confirmDelete = false
	ed.deleting = true
	client, name, path := ed.env.client, ed.original, ed.env.profiles.ConfigPath()
	return func() tea.Msg {
		return profileDeletedMsg{name: name, err: client.DeleteProfile(context.Background(), name, path)}
	}
}

// handleResult applies async outcomes addressed to the editor
func (ed *editor) handleResult(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case profileSavedMsg:
		ed.saving = false
		switch {
		case msg.err != nil:
			ed.banner = banner{kind: bannerError, text: msg.err.Error()}
		case len(msg.invalid) > 0:
			ed.banner = banner{kind: bannerError, text: strings.Join(msg.invalid, "\n")}
		default:
			ed.banner = banner{kind: bannerSuccess, text: "Profile saved."}
			ed.isNew = false
			ed.original = msg.name
		}
	case connectionTestedMsg:
		ed.testing = false
		switch {
		case msg.err != nil:
			ed.banner = banner{kind: bannerError, text: msg.err.Error()}
		case msg.result.Success:
			ed.banner = banner{kind: bannerSuccess, text: msg.result.Message}
		default:
			ed.banner = banner{kind: bannerError, text: msg.result.Message}
		}
	case profileDeletedMsg:
		ed.deleting = false
		if msg.err != nil {
			ed.banner = banner{kind: bannerError, text: msg.err.Error()}
		}
	case keyfile.SelectedMsg:
		ed.picking = false
		ed.inputs[fieldKeyFile].SetValue(msg.Selection.Path)
		ed.inputs[fieldKeyFile].CursorEnd()
		if msg.Selection.Partial {
			ed.banner = banner{kind: bannerInfo, text: fmt.Sprintf(
				"Only the file name %q is known. Complete the full path to the key file before saving.",
				msg.Selection.Path)}
		}
		return ed.setFocus(fieldKeyFile)
	case keyfile.CancelledMsg:
		ed.picking = false
	default:
		if ed.picking {
			return ed.picker.Update(msg)
		}
	}
	return nil
}

// handleKey returns closed=true when the user leaves the editor
func (ed *editor) handleKey(msg tea.KeyMsg) (cmd tea.Cmd, closed bool) {
	if ed.picking {
		return ed.picker.Update(msg), false
	}
	if ed.confirmDelete {
		switch {
		case key.Matches(msg, keys.Confirm):
			return ed.deleteProfile(), false
		case key.Matches(msg, keys.Cancel):
			ed.confirmDelete = false
		}
		return nil, false
	}

	switch {
	case msg.String() == "esc":
		if ed.banner.visible() {
			ed.banner = banner{}
			return nil, false
		}
		// the result still has to land here
		if ed.busy() {
			return nil, false
		}
		return nil, true
	case key.Matches(msg, keys.Save):
		return ed.save(), false
	case key.Matches(msg, keys.Test):
		return ed.testConnection(), false
	case key.Matches(msg, keys.Delete):
		if !ed.isNew && !ed.busy() {
			ed.confirmDelete = true
		}
		return nil, false
	case key.Matches(msg, keys.Pick):
		ed.picking = true
		return ed.picker.Open(), false
	case key.Matches(msg, keys.PrevFld):
		return ed.setFocus(ed.focus - 1), false
	case key.Matches(msg, keys.NextFld):
		return ed.setFocus(ed.focus + 1), false
	case ed.focus == fieldRegion && key.Matches(msg, keys.Region):
		step := 1
		if msg.String() == "left" {
			step = -1
		}
		ed.cycleRegion(step)
		return nil, false
	}

	var c tea.Cmd
	ed.inputs[ed.focus], c = ed.inputs[ed.focus].Update(msg)
	return c, false
}

func (ed *editor) regionName(code string) string {
	r, ok := lo.Find(ed.regions, func(r types.Region) bool { return r.Code == code })
	if !ok {
		return ""
	}
	return r.DisplayName
}

func (ed *editor) View() string {
	heading := "New profile"
	if !ed.isNew {
		heading = "Edit profile: " + ed.original
	}
	parts := []string{subtitleStyle.Render(heading)}
	if ed.banner.visible() {
		parts = append(parts, ed.banner.View(ed.width))
	}

	if ed.picking {
		parts = append(parts, "", ed.picker.View())
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	for i := range ed.inputs {
		f := editorField(i)
		style := panelStyle
		if f == ed.focus {
			style = focusedPanelStyle
		}
		row := style.Render(ed.inputs[i].View())
		if f == fieldRegion {
			if name := ed.regionName(ed.inputs[i].Value()); name != "" {
				row = lipgloss.JoinHorizontal(lipgloss.Center, row, "  ", mutedStyle.Render(name))
			}
		}
		parts = append(parts, labelStyle.Render(fieldLabels[i]), row)
	}

	var status []string
	if ed.saving {
		status = append(status, "Saving...")
	}
	if ed.testing {
		status = append(status, "Testing connection...")
	}
	if ed.deleting {
		status = append(status, "Deleting...")
	}
	if len(status) > 0 {
		parts = append(parts, "", labelStyle.Render(strings.Join(status, " ")))
	}

	if ed.confirmDelete {
		warn := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(warnColor).
			Padding(0, 2).
			Render(lipgloss.JoinVertical(lipgloss.Left,
				lipgloss.NewStyle().Foreground(warnColor).Bold(true).Render("🗑️  Confirm Delete"),
				fmt.Sprintf("Delete profile %q?", ed.original),
				helpStyle.Render("Press 'y' to delete • 'n' or Esc to cancel"),
			))
		parts = append(parts, "", warn)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
