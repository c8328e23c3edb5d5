// Package keyfile lets the user choose the private key of a profile, either by
// browsing for a .pem file or by typing its location.
package keyfile

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hegde-atri/oci-burrow/internal/ocicfg"
)

// Selection is the outcome of picking a key file
type Selection struct {
	Path string
	// Partial means only a file name is known; the directory still has to be
	// completed by the user before the path is usable.
	Partial bool
}

// SelectedMsg is emitted when the user picks a file
type SelectedMsg struct {
	Selection Selection
}

// CancelledMsg is emitted when the picker is closed without a choice
type CancelledMsg struct{}

// Resolve turns typed input into a Selection
func Resolve(input string) Selection {
	input = strings.TrimSpace(input)
	path := ocicfg.ExpandTilde(input)
	return Selection{Path: path, Partial: !filepath.IsAbs(path)}
}

// DefaultRoot is where browsing starts, ~/.oci
func DefaultRoot() string {
	return filepath.Dir(ocicfg.DefaultPath())
}

// Picker browses root for .pem files, or accepts a typed location
type Picker struct {
	root   string
	fp     filepicker.Model
	input  textinput.Model
	typing bool
	note   string
}

// New creates a picker rooted at root
func New(root string) Picker {
	fp := filepicker.New()
	fp.CurrentDirectory = root
	fp.AllowedTypes = []string{".pem"}
	fp.Styles.Cursor = fp.Styles.Cursor.Foreground(lipgloss.Color("#7D56F4"))
	fp.Styles.Selected = fp.Styles.Selected.Foreground(lipgloss.Color("#7D56F4"))

	in := textinput.New()
	in.Placeholder = "~/.oci/oci_api_key.pem"
	in.Width = 50

	return Picker{root: root, fp: fp, input: in}
}

// Typing reports whether the picker is in manual entry mode
func (p *Picker) Typing() bool { return p.typing }

// Open starts browsing, or falls back to manual entry when root is unreadable
func (p *Picker) Open() tea.Cmd {
	p.note = ""
	if info, err := os.Stat(p.root); err != nil || !info.IsDir() {
		p.note = p.root + " is not readable. Type the key file location."
		return p.startTyping()
	}
	p.typing = false
	return p.fp.Init()
}

func (p *Picker) startTyping() tea.Cmd {
	p.typing = true
	p.input.SetValue("")
	return p.input.Focus()
}

// SetHeight sizes the file list
func (p *Picker) SetHeight(h int) {
	// the file picker reserves a few rows below the list
	p.fp, _ = p.fp.Update(tea.WindowSizeMsg{Height: h + 5})
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// Update handles input while the picker is open
func (p *Picker) Update(msg tea.Msg) tea.Cmd {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc":
			p.input.Blur()
			return emit(CancelledMsg{})
		case "ctrl+e":
			if p.typing {
				p.typing = false
				p.input.Blur()
				return p.fp.Init()
			}
			return p.startTyping()
		case "enter":
			if p.typing {
				if strings.TrimSpace(p.input.Value()) == "" {
					return nil
				}
				p.input.Blur()
				return emit(SelectedMsg{Selection: Resolve(p.input.Value())})
			}
		}
		if p.typing {
			var cmd tea.Cmd
			p.input, cmd = p.input.Update(km)
			return cmd
		}
	}

	var cmd tea.Cmd
	p.fp, cmd = p.fp.Update(msg)
	if ok, path := p.fp.DidSelectFile(msg); ok {
		return emit(SelectedMsg{Selection: Selection{Path: path}})
	}
	if ok, path := p.fp.DidSelectDisabledFile(msg); ok {
		p.note = filepath.Base(path) + " is not a .pem file."
	}
	return cmd
}

// View renders the picker
func (p *Picker) View() string {
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")).Italic(true)
	label := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8C00")).Bold(true)

	var body, help string
	if p.typing {
		body = label.Render("Key file: ") + p.input.View()
		help = "enter: use • ctrl+e: browse • esc: cancel"
	} else {
		body = label.Render(p.fp.CurrentDirectory) + "\n" + p.fp.View()
		help = "enter: select • ctrl+e: type a location • esc: cancel"
	}
	parts := []string{body}
	if p.note != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")).Render(p.note))
	}
	parts = append(parts, muted.Render(help))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
