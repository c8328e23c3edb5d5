package tui

import (
	"context"
	"errors"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/hegde-atri/oci-burrow/internal/gateway"
	"github.com/hegde-atri/oci-burrow/internal/state"
)

type pageID string

const (
	pageDashboard pageID = "dashboard"
	pageCompute   pageID = "compute"
	pageStorage   pageID = "storage"
	pageNetwork   pageID = "network"
	pageDatabase  pageID = "database"
	pageIAM       pageID = "iam"
	pageSettings  pageID = "settings"
)

// page is one screen reachable from the sidebar
type page interface {
	ID() pageID
	Title() string
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
	// Capturing reports whether a text field has focus, in which case
	// single-letter shortcuts belong to the page.
	Capturing() bool
	Help() []key.Binding
}

// env is what every page shares
type env struct {
	client   *gateway.Client
	profiles *state.ProfileStore
	layout   *layout
	log      *zap.Logger
	copy     func(string) error
}

func newEnv(client *gateway.Client, profiles *state.ProfileStore, log *zap.Logger) *env {
	if log == nil {
		log = zap.NewNop()
	}
	return &env{
		client:   client,
		profiles: profiles,
		layout:   &layout{scale: 1},
		log:      log,
		copy:     clipboard.WriteAll,
	}
}

// layout is the zoom surface: it scales table column widths
type layout struct {
	mu    sync.RWMutex
	scale float64
}

var errBadScale = errors.New("zoom level must be positive")

// ApplyZoom implements state.Surface
func (l *layout) ApplyZoom(level float64) error {
	if level <= 0 {
		return errBadScale
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.scale = level
	return nil
}

// width scales a base column width, never below 4 cells
func (l *layout) width(base int) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	w := int(float64(base) * l.scale)
	if w < 4 {
		return 4
	}
	return w
}

// profilesReloadedMsg is sent after the shared profile store reloads
type profilesReloadedMsg struct{}

// navigateMsg asks the shell to open another page
type navigateMsg struct {
	to pageID
}

func reloadProfiles(profiles *state.ProfileStore) tea.Cmd {
	return func() tea.Msg {
		profiles.Reload(context.Background())
		return profilesReloadedMsg{}
	}
}

// configChangedMsg is sent when the OCI config file was edited on disk
type configChangedMsg struct{}

// listenForConfigChanges waits for the next edit. Update re-arms it.
func listenForConfigChanges(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return configChangedMsg{}
	}
}

func navigate(to pageID) tea.Cmd {
	return func() tea.Msg { return navigateMsg{to: to} }
}
