package state

import (
	"context"
	"sync"

	"github.com/samber/lo"

	"github.com/hegde-atri/oci-burrow/internal/types"
)

// Loader fetches the profile list. gateway.Client satisfies it.
type Loader interface {
	LoadConfig(ctx context.Context, path string) ([]types.Profile, error)
}

// ProfileStore caches the profiles shared by every page together with the
// currently selected profile name.
type ProfileStore struct {
	loader     Loader
	configPath string

	mu       sync.RWMutex
	profiles []types.Profile
	current  string
	err      string
	// gen counts reloads; only the newest one may apply its result
	gen     uint64
	pending int
}

// NewProfileStore creates an empty store. An empty configPath means the
// backend default.
func NewProfileStore(loader Loader, configPath string) *ProfileStore {
	return &ProfileStore{loader: loader, configPath: configPath}
}

// Reload fetches the profiles again. On failure the list is emptied and the
// error message kept in Err.
// Overlapping reloads are allowed; a result older than the newest started
// reload is dropped.
func (s *ProfileStore) Reload(ctx context.Context) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.pending++
	s.mu.Unlock()

	profiles, err := s.loader.LoadConfig(ctx, s.configPath)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending--
	if gen != s.gen {
		return
	}
	if err != nil {
		s.err = err.Error()
		s.setProfiles(nil)
		return
	}
	s.err = ""
	s.setProfiles(profiles)
}

// setProfiles replaces the list and repairs the selection
func (s *ProfileStore) setProfiles(profiles []types.Profile) {
	s.profiles = profiles
	if len(profiles) == 0 {
		s.current = ""
		return
	}
	if !s.has(s.current) {
		s.current = profiles[0].Name
	}
}

func (s *ProfileStore) has(name string) bool {
	return name != "" && lo.ContainsBy(s.profiles, func(p types.Profile) bool { return p.Name == name })
}

// Select makes name current. Unknown names are ignored.
func (s *ProfileStore) Select(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.has(name) {
		s.current = name
	}
}

// SelectNext moves the selection to the following profile, wrapping around
func (s *ProfileStore) SelectNext() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.profiles) == 0 {
		return
	}
	_, idx, _ := lo.FindIndexOf(s.profiles, func(p types.Profile) bool { return p.Name == s.current })
	s.current = s.profiles[(idx+1)%len(s.profiles)].Name
}

// Profiles returns a copy of the cached list
func (s *ProfileStore) Profiles() []types.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Profile, len(s.profiles))
	copy(out, s.profiles)
	return out
}

// Current returns the selected profile, if any
func (s *ProfileStore) Current() (types.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.Find(s.profiles, func(p types.Profile) bool { return p.Name == s.current })
}

// CurrentName returns the selected profile name, or "" when none
func (s *ProfileStore) CurrentName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Err returns the message of the last failed Reload
func (s *ProfileStore) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Loading reports whether a Reload is in progress
func (s *ProfileStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pending > 0
}

// ConfigPath returns the config file override, or "" for the default
func (s *ProfileStore) ConfigPath() string {
	return s.configPath
}
