package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/hegde-atri/oci-burrow/internal/config"
	"github.com/hegde-atri/oci-burrow/internal/gateway"
	"github.com/hegde-atri/oci-burrow/internal/logger"
	"github.com/hegde-atri/oci-burrow/internal/oci"
	"github.com/hegde-atri/oci-burrow/internal/ocicfg"
	"github.com/hegde-atri/oci-burrow/internal/prefs"
	"github.com/hegde-atri/oci-burrow/internal/state"
	"github.com/hegde-atri/oci-burrow/internal/tui"
)

// app carries what every command needs once flags and settings are resolved
type app struct {
	version string
	v       *viper.Viper
	out     io.Writer

	cfg      *config.Config
	log      *zap.Logger
	closeLog func() error
	gw       *gateway.Gateway
	client   *gateway.Client

	// apiOpts are passed to the OCI client, tests point it at a local server
	apiOpts []oci.Option
	// runTUI starts the interface, replaced in tests
	runTUI func(tui.Options) error
}

func newApp(version string) *app {
	return &app{
		version: version,
		v:       viper.New(),
		out:     os.Stdout,
		runTUI:  func(opts tui.Options) error { return tui.New(opts).Run() },
	}
}

// NewRootCmd builds the oci-burrow command tree
func NewRootCmd(version string) *cobra.Command {
	return newApp(version).rootCmd()
}

// Execute runs the command line and exits non-zero on failure
func Execute(version string) {
	if err := NewRootCmd(version).Execute(); err != nil {
		os.Exit(1)
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "oci-burrow",
		Short: "A cosy TUI for browsing Oracle Cloud Infrastructure",
		Long: `oci-burrow manages the profiles of your OCI config file and lists
compute instances, buckets, VCNs, DB systems, users and groups.

Run without arguments to open the terminal UI. The subcommands expose the
same operations for scripts.

Settings are read from the first of:
  --config <file>
  ./oci-burrow.yaml
  ~/.config/oci-burrow/config.yaml
Every setting can be overridden with an OCI_BURROW_ environment variable,
e.g. OCI_BURROW_LOG_LEVEL=debug.`,
		Version:            a.version,
		SilenceUsage:       true,
		Args:               cobra.NoArgs,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
		RunE:               a.runInterface,
	}
	root.SetVersionTemplate(`{{printf "oci-burrow v%s\n" .Version}}`)
	root.SetOut(a.out)

	flags := root.PersistentFlags()
	flags.String("config", "", "settings file (default ./oci-burrow.yaml or ~/.config/oci-burrow/config.yaml)")
	flags.String("oci-config", "", "OCI config file (default ~/.oci/config)")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-file", "", "log file used while the TUI is running")
	_ = a.v.BindPFlag("oci_config", flags.Lookup("oci-config"))
	_ = a.v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("log.file", flags.Lookup("log-file"))

	root.AddCommand(
		a.profilesCmd(),
		a.regionsCmd(),
		a.listCmd(),
		a.configPathCmd(),
	)
	return root
}

// setup loads settings, builds the logger and wires the gateway to the backend
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	explicit, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(a.v, explicit)
	if err != nil {
		return err
	}
	a.cfg = cfg

	opts := logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format}
	// bubbletea owns the terminal
	if cmd == cmd.Root() {
		opts.FilePath = cfg.Log.File
	}
	log, closeLog, err := logger.New(opts)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.log, a.closeLog = log, closeLog
	if cfg.File != "" {
		log.Debug("settings loaded", zap.String("file", cfg.File))
	}

	api := oci.NewClient(append([]oci.Option{oci.WithLogger(log)}, a.apiOpts...)...)
	a.gw = gateway.New(log)
	gateway.NewBackend(ocicfg.NewFile(cfg.OCIConfig), api).Register(a.gw)
	a.client = gateway.NewClient(a.gw)
	return nil
}

func (a *app) teardown(*cobra.Command, []string) error {
	if a.closeLog == nil {
		return nil
	}
	return a.closeLog()
}

// runInterface opens the TUI with the stored zoom level and the shared profile store
func (a *app) runInterface(cmd *cobra.Command, _ []string) error {
	var persist state.Persister
	if store, err := prefs.Open(a.cfg.Preferences); err != nil {
		a.log.Warn("preferences unavailable, zoom will not be remembered", zap.Error(err))
	} else {
		persist = store
	}

	opts := tui.Options{
		Version:  a.version,
		Client:   a.client,
		Calls:    a.gw,
		Profiles: state.NewProfileStore(a.client, ""),
		Zoom:     state.NewZoomStore(persist, a.log),
		Log:      a.log,
	}

	ociPath := ocicfg.NewFile(a.cfg.OCIConfig).Path()
	if w, err := ocicfg.NewWatcher(ociPath, a.log); err != nil {
		a.log.Warn("external edits of the OCI config will not be picked up", zap.Error(err))
	} else {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		go w.Run(ctx)
		opts.ConfigChanges = w.Changes()
	}

	return a.runTUI(opts)
}

func (a *app) console() console {
	return console{out: a.out}
}
