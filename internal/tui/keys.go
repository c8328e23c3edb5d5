package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every binding the shell and pages react to
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Focus    key.Binding
	Open     key.Binding
	Quit     key.Binding
	Confirm  key.Binding
	Cancel   key.Binding
	ZoomIn   key.Binding
	ZoomOut  key.Binding
	ZoomZero key.Binding
	Profile  key.Binding
	Choose   key.Binding
	Calls    key.Binding

	EditScope key.Binding
	Fetch     key.Binding
	Copy      key.Binding
	Dismiss   key.Binding
	NextTab   key.Binding

	New     key.Binding
	Import  key.Binding
	Reload  key.Binding
	Save    key.Binding
	Test    key.Binding
	Delete  key.Binding
	Pick    key.Binding
	Region  key.Binding
	Manual  key.Binding
	NextFld key.Binding
	PrevFld key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("↓/j", "down"),
	),
	Focus: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "sidebar/page"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "n"),
		key.WithHelp("esc", "cancel"),
	),
	ZoomIn: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+/-/0", "zoom"),
	),
	ZoomOut: key.NewBinding(
		key.WithKeys("-"),
	),
	ZoomZero: key.NewBinding(
		key.WithKeys("0"),
	),
	Profile: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "next profile"),
	),
	Choose: key.NewBinding(
		key.WithKeys("P"),
		key.WithHelp("P", "choose profile"),
	),
	Calls: key.NewBinding(
		key.WithKeys("L"),
		key.WithHelp("L", "call log"),
	),

	EditScope: key.NewBinding(
		key.WithKeys("/", "i"),
		key.WithHelp("/", "compartment"),
	),
	Fetch: key.NewBinding(
		key.WithKeys("r", "enter"),
		key.WithHelp("r", "fetch"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy OCID"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("esc", "x"),
		key.WithHelp("x", "dismiss"),
	),
	NextTab: key.NewBinding(
		key.WithKeys("]", "["),
		key.WithHelp("[/]", "users/groups"),
	),

	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new profile"),
	),
	Import: key.NewBinding(
		key.WithKeys("I"),
		key.WithHelp("I", "import"),
	),
	Reload: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "reload"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "save"),
	),
	Test: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "test"),
	),
	Delete: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "delete"),
	),
	Pick: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("ctrl+o", "pick key file"),
	),
	Region: key.NewBinding(
		key.WithKeys("left", "right"),
		key.WithHelp("←/→", "region"),
	),
	Manual: key.NewBinding(
		key.WithKeys("ctrl+e"),
		key.WithHelp("ctrl+e", "type name"),
	),
	NextFld: key.NewBinding(
		key.WithKeys("down", "enter"),
		key.WithHelp("↓", "next field"),
	),
	PrevFld: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous field"),
	),
}
