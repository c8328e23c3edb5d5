package ocicfg

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/samber/lo"

	"github.com/hegde-atri/oci-burrow/internal/types"
)

// File performs profile CRUD against a single OCI config file.
// Every operation re-reads the file so external edits are never lost.
type File struct {
	path string
	mu   sync.Mutex
}

// NewFile returns a File for path, or for DefaultPath when path is empty
func NewFile(path string) *File {
	if path == "" {
		path = DefaultPath()
	}
	return &File{path: path}
}

// Path returns the config file location
func (f *File) Path() string {
	return f.path
}

// Profiles returns every complete profile, or an empty list when the file does not exist
func (f *File) Profiles() ([]types.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.readOrEmpty()
}

// Names returns the profile names in file order
func (f *File) Names() ([]string, error) {
	profiles, err := f.Profiles()
	if err != nil {
		return nil, err
	}
	return lo.Map(profiles, func(p types.Profile, _ int) string { return p.Name }), nil
}

// Get returns the profile called name
func (f *File) Get(name string) (types.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	profiles, err := Parse(f.path)
	if err != nil {
		return types.Profile{}, err
	}
	p, ok := lo.Find(profiles, func(p types.Profile) bool { return p.Name == name })
	if !ok {
		return types.Profile{}, fmt.Errorf("%w: %q", ErrProfileNotFound, name)
	}
	return p, nil
}

// Create appends a new profile, creating the file if needed
func (f *File) Create(p types.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	profiles, err := f.readOrEmpty()
	if err != nil {
		return err
	}
	if lo.ContainsBy(profiles, func(existing types.Profile) bool { return existing.Name == p.Name }) {
		return fmt.Errorf("%w: %q", ErrProfileExists, p.Name)
	}
	return Write(f.path, append(profiles, p))
}

// Update replaces the profile called name with p; p may carry a new name
func (f *File) Update(name string, p types.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	profiles, err := Parse(f.path)
	if err != nil {
		return err
	}
	_, idx, ok := lo.FindIndexOf(profiles, func(existing types.Profile) bool { return existing.Name == name })
	if !ok {
		return fmt.Errorf("%w: %q", ErrProfileNotFound, name)
	}
	if p.Name != name && lo.ContainsBy(profiles, func(existing types.Profile) bool { return existing.Name == p.Name }) {
		return fmt.Errorf("%w: %q", ErrProfileExists, p.Name)
	}
	profiles[idx] = p
	return Write(f.path, profiles)
}

// Delete removes the profile called name
func (f *File) Delete(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	profiles, err := Parse(f.path)
	if err != nil {
		return err
	}
	kept := lo.Reject(profiles, func(p types.Profile, _ int) bool { return p.Name == name })
	if len(kept) == len(profiles) {
		return fmt.Errorf("%w: %q", ErrProfileNotFound, name)
	}
	return Write(f.path, kept)
}

func (f *File) readOrEmpty() ([]types.Profile, error) {
	if _, err := os.Stat(f.path); errors.Is(err, fs.ErrNotExist) {
		return []types.Profile{}, nil
	}
	return Parse(f.path)
}

// Import reads profiles from another config file, such as one written by
// the OCI CLI. Unlike Profiles, a missing file is an error.
func Import(path string) ([]types.Profile, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file not found at %s: %w", path, err)
	}
	return Parse(path)
}
