package ocicfg

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/ini.v1"

	"github.com/hegde-atri/oci-burrow/internal/types"
)

var (
	// ErrProfileNotFound is returned when a named profile is not in the file
	ErrProfileNotFound = errors.New("profile not found")
	// ErrProfileExists is returned when creating a profile whose name is taken
	ErrProfileExists = errors.New("profile already exists")
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir

// The OCI CLI refuses keys that appear before a section header, so the
// DEFAULT profile must always be written with an explicit [DEFAULT].
func init() {
	ini.DefaultHeader = true
}

var requiredKeys = []string{"user", "fingerprint", "tenancy", "region", "key_file"}

// DefaultPath returns ~/.oci/config
func DefaultPath() string {
	home, err := osUserHomeDir()
	if err != nil {
		home = "~"
	}
	return filepath.Join(home, ".oci", "config")
}

// ExpandTilde replaces a leading ~ with the user's home directory
func ExpandTilde(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := osUserHomeDir()
	if err != nil {
		return path
	}
	return strings.Replace(path, "~", home, 1)
}

// Parse reads an OCI config file and returns its profiles in file order.
// Sections missing any required key are skipped.
func Parse(path string) ([]types.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return parseBytes(data)
}

func parseBytes(data []byte) ([]types.Profile, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:     true,
		SkipUnrecognizableLines: true,
	}, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	profiles := make([]types.Profile, 0, len(cfg.Sections()))
	for _, sec := range cfg.Sections() {
		// KeysHash holds only the section's own keys; Key and HasKey would
		// also find values inherited from a dotted parent like [team] for [team.dev]
		own := sec.KeysHash()
		complete := lo.EveryBy(requiredKeys, func(k string) bool { return lo.HasKey(own, k) })
		if !complete {
			continue
		}
		profiles = append(profiles, types.Profile{
			Name:        strings.TrimSpace(sec.Name()),
			User:        own["user"],
			Tenancy:     own["tenancy"],
			Region:      own["region"],
			Fingerprint: own["fingerprint"],
			KeyFile:     ExpandTilde(own["key_file"]),
			PassPhrase:  own["pass_phrase"],
		})
	}
	return profiles, nil
}

// Write replaces the file at path with the given profiles.
// Parent directories are created and the file is restricted to its owner.
func Write(path string, profiles []types.Profile) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	cfg := ini.Empty()
	for _, p := range profiles {
		sec, err := cfg.NewSection(p.Name)
		if err != nil {
			return fmt.Errorf("invalid profile name %q: %w", p.Name, err)
		}
		for _, kv := range [][2]string{
			{"user", p.User},
			{"fingerprint", p.Fingerprint},
			{"tenancy", p.Tenancy},
			{"region", p.Region},
			{"key_file", p.KeyFile},
			{"pass_phrase", p.PassPhrase},
		} {
			if kv[0] == "pass_phrase" && kv[1] == "" {
				continue
			}
			if _, err := sec.NewKey(kv[0], kv[1]); err != nil {
				return fmt.Errorf("failed to set %s for profile %q: %w", kv[0], p.Name, err)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := cfg.WriteTo(&buf); err != nil {
		return fmt.Errorf("failed to encode config file: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	// WriteFile keeps the mode of an existing file
	if err := os.Chmod(path, 0o600); err != nil {
		return fmt.Errorf("failed to set config file permissions: %w", err)
	}
	return nil
}
