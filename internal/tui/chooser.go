package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"

	"github.com/hegde-atri/oci-burrow/internal/types"
)

type profileItem struct{ types.Profile }

func (i profileItem) Title() string       { return i.Name }
func (i profileItem) Description() string { return fmt.Sprintf("region=%s", i.Region) }
func (i profileItem) FilterValue() string { return i.Name }

// profileChooser is the overlay that selects a profile by name
type profileChooser struct {
	list list.Model
}

func newProfileChooser(profiles []types.Profile, current string, width, height int) *profileChooser {
	items := lo.Map(profiles, func(p types.Profile, _ int) list.Item { return profileItem{p} })
	l := list.New(items, list.NewDefaultDelegate(), max(width/2, 40), max(height-10, 10))
	l.Title = "Choose profile"
	l.Styles.Title = titleStyle
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	// the shell owns quitting
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)

	if _, i, ok := lo.FindIndexOf(profiles, func(p types.Profile) bool { return p.Name == current }); ok {
		l.Select(i)
	}
	return &profileChooser{list: l}
}

// update handles a key. chosen is set when a profile was picked; done when
// the chooser should close.
func (c *profileChooser) update(msg tea.KeyMsg) (chosen string, done bool, cmd tea.Cmd) {
	if c.list.FilterState() != list.Filtering {
		switch msg.String() {
		case "esc":
			if c.list.FilterState() == list.FilterApplied {
				c.list.ResetFilter()
				return "", false, nil
			}
			return "", true, nil
		case "enter":
			if it, ok := c.list.SelectedItem().(profileItem); ok {
				return it.Name, true, nil
			}
			return "", true, nil
		}
	}
	c.list, cmd = c.list.Update(msg)
	return "", false, cmd
}

func (c *profileChooser) View() string {
	return focusedPanelStyle.Render(c.list.View())
}
