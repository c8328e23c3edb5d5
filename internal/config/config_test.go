package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withHome(t *testing.T, home string) {
	t.Helper()
	old := userHomeDir
	userHomeDir = func() (string, error) { return home, nil }
	t.Cleanup(func() { userHomeDir = old })
}

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	withHome(t, home)
	chdir(t, t.TempDir())

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Empty(t, cfg.OCIConfig)
	assert.Empty(t, cfg.File)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, filepath.Join(home, ".config", "oci-burrow", "oci-burrow.log"), cfg.Log.File)
	assert.Equal(t, filepath.Join(home, ".config", "oci-burrow", "preferences.yaml"), cfg.Preferences)
}

func TestLoadFromUserConfigDir(t *testing.T) {
	home := t.TempDir()
	withHome(t, home)
	chdir(t, t.TempDir())

	path := filepath.Join(home, ".config", "oci-burrow", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("oci_config: /etc/oci/config\nlog:\n  level: debug\n"), 0o644))

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "/etc/oci/config", cfg.OCIConfig)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, path, cfg.File)
}

func TestLoadPrefersWorkingDirectory(t *testing.T) {
	withHome(t, t.TempDir())
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile("oci-burrow.yaml", []byte("log:\n  format: json\n"), 0o644))

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadExplicitMissing(t *testing.T) {
	withHome(t, t.TempDir())
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoadEnvOverride(t *testing.T) {
	withHome(t, t.TempDir())
	chdir(t, t.TempDir())
	t.Setenv("OCI_BURROW_LOG_LEVEL", "warn")
	t.Setenv("OCI_BURROW_OCI_CONFIG", "/tmp/oci")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "/tmp/oci", cfg.OCIConfig)
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
