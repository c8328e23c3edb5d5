package cli

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hegde-atri/oci-burrow/internal/oci"
	"github.com/hegde-atri/oci-burrow/internal/ocicfg"
	"github.com/hegde-atri/oci-burrow/internal/state"
	"github.com/hegde-atri/oci-burrow/internal/tui"
	"github.com/hegde-atri/oci-burrow/internal/types"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	pterm.DisableStyling()
	os.Exit(m.Run())
}

type harness struct {
	app     *app
	out     *bytes.Buffer
	home    string
	ociPath string
	profile types.Profile
	tuiOpts *tui.Options
}

// newHarness isolates HOME and prepares a signing key for a profile named DEFAULT,
// which is not written to the config file yet
func newHarness(t *testing.T) *harness {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	chdir(t, home)

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	keyPath := filepath.Join(home, "key.pem")
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	require.NoError(t, os.WriteFile(keyPath, pemBytes, 0o600))
	fp, err := oci.Fingerprint(key)
	require.NoError(t, err)

	h := &harness{
		out:     &bytes.Buffer{},
		home:    home,
		ociPath: filepath.Join(home, ".oci", "config"),
		profile: types.Profile{
			Name:        "DEFAULT",
			User:        "ocid1.user.oc1..aaaa",
			Tenancy:     "ocid1.tenancy.oc1..bbbb",
			Region:      "eu-frankfurt-1",
			Fingerprint: fp,
			KeyFile:     keyPath,
		},
	}
	h.app = newApp("1.2.3")
	h.app.out = h.out
	h.app.runTUI = func(opts tui.Options) error {
		h.tuiOpts = &opts
		return nil
	}
	return h
}

func (h *harness) seed(t *testing.T, profiles ...types.Profile) {
	t.Helper()
	f := ocicfg.NewFile(h.ociPath)
	for _, p := range profiles {
		require.NoError(t, f.Create(p))
	}
}

// serve points the OCI client at handler
func (h *harness) serve(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	h.app.apiOpts = []oci.Option{
		oci.WithHTTPClient(srv.Client()),
		oci.WithBaseURL(func(service, region string) string { return srv.URL }),
	}
}

func (h *harness) run(args ...string) error {
	h.out.Reset()
	root := h.app.rootCmd()
	root.SetErr(io.Discard)
	root.SetArgs(append(args, "--log-level", "error"))
	return root.Execute()
}

func TestRootCommand(t *testing.T) {
	root := NewRootCmd("1.2.3")
	assert.Equal(t, "oci-burrow", root.Use)
	assert.True(t, root.SilenceUsage)

	names := make(map[string]bool)
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"profiles", "regions", "list", "config-path"} {
		assert.True(t, names[want], want)
	}
}

func TestVersionFlag(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("--version"))
	assert.Equal(t, "oci-burrow v1.2.3\n", h.out.String())
}

func TestRootStartsInterface(t *testing.T) {
	h := newHarness(t)
	prefsPath := filepath.Join(h.home, ".config", "oci-burrow", "preferences.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(prefsPath), 0o755))
	require.NoError(t, os.WriteFile(prefsPath, []byte("oci-desktop-zoom: \"1.5\"\n"), 0o644))

	require.NoError(t, h.run())
	require.NotNil(t, h.tuiOpts)
	assert.Equal(t, "1.2.3", h.tuiOpts.Version)
	assert.NotNil(t, h.tuiOpts.Client)
	assert.NotNil(t, h.tuiOpts.Profiles)
	assert.NotNil(t, h.tuiOpts.Calls)
	assert.Equal(t, 1.5, h.tuiOpts.Zoom.Level())
	// the TUI logs to a file, never to the terminal
	assert.FileExists(t, filepath.Join(h.home, ".config", "oci-burrow", "oci-burrow.log"))
}

func TestRootRejectsMissingSettingsFile(t *testing.T) {
	h := newHarness(t)
	err := h.run("--config", filepath.Join(h.home, "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
	assert.Nil(t, h.tuiOpts)
}

func TestOCIConfigFromSettingsFile(t *testing.T) {
	h := newHarness(t)
	custom := filepath.Join(h.home, "custom-oci")
	require.NoError(t, ocicfg.NewFile(custom).Create(h.profile))
	require.NoError(t, os.WriteFile("oci-burrow.yaml", []byte("oci_config: "+custom+"\n"), 0o644))

	require.NoError(t, h.run("profiles", "list"))
	assert.Contains(t, h.out.String(), "DEFAULT")
}

func TestProfilesLifecycle(t *testing.T) {
	h := newHarness(t)
	p := h.profile

	require.NoError(t, h.run("profiles", "list"))
	assert.Contains(t, h.out.String(), "No profiles found.")

	require.NoError(t, h.run("profiles", "create",
		"--name", p.Name,
		"--user", p.User,
		"--tenancy", p.Tenancy,
		"--region", p.Region,
		"--fingerprint", p.Fingerprint,
		"--key-file", p.KeyFile,
	))
	assert.Contains(t, h.out.String(), `Profile "DEFAULT" created.`)

	stored, err := ocicfg.NewFile(h.ociPath).Get("DEFAULT")
	require.NoError(t, err)
	assert.Equal(t, p, stored)

	require.NoError(t, h.run("profiles", "show", "DEFAULT"))
	assert.Contains(t, h.out.String(), p.Fingerprint)

	require.NoError(t, h.run("profiles", "validate", "DEFAULT"))
	assert.Contains(t, h.out.String(), "is valid")

	require.NoError(t, h.run("profiles", "delete", "DEFAULT", "--yes"))
	names, err := ocicfg.NewFile(h.ociPath).Names()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestProfilesCreateRejectsInvalid(t *testing.T) {
	h := newHarness(t)
	err := h.run("profiles", "create", "--name", "BAD", "--user", "nope", "--region", "eu-frankfurt-1")
	require.ErrorIs(t, err, errInvalidProfile)

	out := h.out.String()
	assert.Contains(t, out, "Invalid user OCID format")
	assert.Contains(t, out, "Invalid tenancy OCID format")
	assert.Contains(t, out, "Specify the private key file path.")
	assert.NoFileExists(t, h.ociPath)
}

func TestProfilesShowMissing(t *testing.T) {
	h := newHarness(t)
	h.seed(t, h.profile)
	err := h.run("profiles", "show", "PROD")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PROD")
}

func TestProfilesImportSkipsExisting(t *testing.T) {
	h := newHarness(t)
	h.seed(t, h.profile)

	prod := h.profile
	prod.Name = "PROD"
	cliConfig := filepath.Join(h.home, "cli-config")
	require.NoError(t, ocicfg.Write(cliConfig, []types.Profile{h.profile, prod}))

	require.NoError(t, h.run("profiles", "import", cliConfig))
	out := h.out.String()
	assert.Contains(t, out, `Skipped "DEFAULT"`)
	assert.Contains(t, out, `Imported "PROD".`)

	names, err := ocicfg.NewFile(h.ociPath).Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"DEFAULT", "PROD"}, names)
}

func TestProfilesTestConnection(t *testing.T) {
	h := newHarness(t)
	h.seed(t, h.profile)
	status := http.StatusOK
	h.serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{}`))
	})

	require.NoError(t, h.run("profiles", "test", "DEFAULT"))
	assert.Contains(t, h.out.String(), "Connection test succeeded")

	status = http.StatusUnauthorized
	require.Error(t, h.run("profiles", "test", "DEFAULT"))
	assert.Contains(t, h.out.String(), "Authentication failed")
}

func TestRegionsAndConfigPath(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("regions"))
	assert.Contains(t, h.out.String(), "eu-frankfurt-1")

	require.NoError(t, h.run("config-path"))
	assert.Equal(t, filepath.Join(h.home, ".oci", "config")+"\n", h.out.String())
}

func TestListResources(t *testing.T) {
	h := newHarness(t)
	h.seed(t, h.profile)
	h.serve(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/20160918/instances":
			_, _ = w.Write([]byte(`[{"id":"ocid1.instance.oc1..i1","displayName":"web","shape":"VM.Standard.E4.Flex","lifecycleState":"RUNNING"}]`))
		case "/n/":
			_, _ = w.Write([]byte(`"acme"`))
		case "/n/acme/b/":
			_, _ = w.Write([]byte(`[]`))
		case "/20160918/groups":
			_, _ = w.Write([]byte(`[{"id":"g1","name":"admins","lifecycleState":"ACTIVE"}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	require.NoError(t, h.run("list", "instances", "--compartment", "ocid1.compartment.oc1..c"))
	assert.Contains(t, h.out.String(), "web")
	assert.Contains(t, h.out.String(), "RUNNING")

	require.NoError(t, h.run("list", "buckets", "-c", "ocid1.compartment.oc1..c", "-p", "DEFAULT"))
	assert.Contains(t, h.out.String(), "No buckets found.")

	require.NoError(t, h.run("list", "groups"))
	assert.Contains(t, h.out.String(), "admins")
}

func TestListRequiresCompartment(t *testing.T) {
	h := newHarness(t)
	h.seed(t, h.profile)
	err := h.run("list", "vcns", "--compartment", "  ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--compartment is required")
}

func TestListWithoutProfiles(t *testing.T) {
	h := newHarness(t)
	err := h.run("list", "users")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no profile configured")
}

func TestColorStateAndAbbreviate(t *testing.T) {
	assert.Equal(t, "RUNNING", colorState("RUNNING"))
	assert.Equal(t, "-", colorState(""))
	assert.Equal(t, "MOVING", colorState("MOVING"))

	assert.Equal(t, "ocid1.user.oc1..aaaa", abbreviate("ocid1.user.oc1..aaaa"))
	assert.Equal(t, "ocid1.tenancy...efgh5678",
		abbreviate("ocid1.tenancy.oc1..aaaaaaaabbbbbbbbccccccccdddddddeeeeefgh5678"))
}

func TestZoomStoreSurvivesBrokenPreferences(t *testing.T) {
	h := newHarness(t)
	prefsPath := filepath.Join(h.home, ".config", "oci-burrow", "preferences.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(prefsPath), 0o755))
	require.NoError(t, os.WriteFile(prefsPath, []byte(":::not yaml"), 0o644))

	require.NoError(t, h.run())
	require.NotNil(t, h.tuiOpts)
	assert.Equal(t, state.ZoomLevels[state.DefaultZoomIndex], h.tuiOpts.Zoom.Level())
}

func TestInterfaceWatchesOCIConfig(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run())
	require.NotNil(t, h.tuiOpts)
	assert.Nil(t, h.tuiOpts.ConfigChanges, "no ~/.oci directory to watch")

	h.seed(t, h.profile)
	require.NoError(t, h.run())
	assert.NotNil(t, h.tuiOpts.ConfigChanges)
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (stands in for testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
