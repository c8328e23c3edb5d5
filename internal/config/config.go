package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. OCI_BURROW_LOG_LEVEL
const EnvPrefix = "OCI_BURROW"

// LogConfig controls the zap logger
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// Config represents the application settings
type Config struct {
	// OCIConfig overrides the OCI config file; empty means ~/.oci/config
	OCIConfig   string    `mapstructure:"oci_config"`
	Preferences string    `mapstructure:"preferences"`
	Log         LogConfig `mapstructure:"log"`

	// File is the settings file that was read, if any
	File string `mapstructure:"-"`
}

var userHomeDir = os.UserHomeDir

// Dir returns ~/.config/oci-burrow
func Dir() string {
	home, err := userHomeDir()
	if err != nil {
		return filepath.Join(".config", "oci-burrow")
	}
	return filepath.Join(home, ".config", "oci-burrow")
}

// Candidates lists the settings files tried in order when no explicit path is given
func Candidates() []string {
	return []string{"oci-burrow.yaml", filepath.Join(Dir(), "config.yaml")}
}

// SetDefaults registers the default values on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("oci_config", "")
	v.SetDefault("preferences", filepath.Join(Dir(), "preferences.yaml"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", filepath.Join(Dir(), "oci-burrow.log"))
}

// Load reads the settings into a Config. An explicit path must exist;
// otherwise the first existing candidate is used, and having none is fine.
func Load(v *viper.Viper, explicit string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := explicit
	if path == "" {
		for _, c := range Candidates() {
			if _, err := os.Stat(c); err == nil {
				path = c
				break
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("config file not found at %s", path)
			}
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if path != "" {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}
	cfg.File = path
	return cfg, nil
}
