package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/hegde-atri/oci-burrow/internal/gateway"
	"github.com/hegde-atri/oci-burrow/internal/state"
)

// Options wires the TUI to the gateway and the shared stores
type Options struct {
	Version  string
	Client   *gateway.Client
	Calls    CallLog
	Profiles *state.ProfileStore
	Zoom     *state.ZoomStore
	Log      *zap.Logger
	// KeyRoot is where the key file picker starts browsing, ~/.oci by default
	KeyRoot string
	// ConfigChanges signals edits of the OCI config file, optional
	ConfigChanges <-chan struct{}
}

// App represents the main TUI application for OCI Burrow
type App struct {
	program *tea.Program
	log     *zap.Logger
}

// New creates the bubbletea program with the initial model
func New(opts Options) *App {
	if opts.KeyRoot == "" {
		opts.KeyRoot = defaultPickerRoot()
	}
	e := newEnv(opts.Client, opts.Profiles, opts.Log)
	m := newModel(opts.Version, e, opts.Calls, opts.Zoom, opts.KeyRoot)
	m.changes = opts.ConfigChanges

	return &App{
		program: tea.NewProgram(m, tea.WithAltScreen()),
		log:     e.log,
	}
}

// Run starts the TUI application and blocks until it exits
func (a *App) Run() error {
	a.log.Info("tui started")
	_, err := a.program.Run()
	a.log.Info("tui stopped")
	return err
}
