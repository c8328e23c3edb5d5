package gateway

import (
	"fmt"

	"github.com/hegde-atri/oci-burrow/internal/types"
)

type absent struct{}

// Absent marks an optional parameter that the caller deliberately left unset
var Absent = absent{}

// Args are the named parameters of a command
type Args map[string]any

// Optional returns s, or Absent when s is empty
func Optional(s string) any {
	if s == "" {
		return Absent
	}
	return s
}

// String returns a required string parameter
func (a Args) String(key string) (string, error) {
	v, ok := a[key]
	if !ok || v == Absent {
		return "", fmt.Errorf("missing required parameter %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("parameter %q must be a string, got %T", key, v)
	}
	return s, nil
}

// OptionalString returns a string parameter and whether it was supplied.
// Missing keys and Absent are both treated as not supplied.
func (a Args) OptionalString(key string) (string, bool, error) {
	v, ok := a[key]
	if !ok || v == Absent {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", false, fmt.Errorf("parameter %q must be a string, got %T", key, v)
	}
	return s, true, nil
}

// Profile returns a required profile parameter
func (a Args) Profile(key string) (types.Profile, error) {
	v, ok := a[key]
	if !ok || v == Absent {
		return types.Profile{}, fmt.Errorf("missing required parameter %q", key)
	}
	switch p := v.(type) {
	case types.Profile:
		return p, nil
	case *types.Profile:
		return *p, nil
	default:
		return types.Profile{}, fmt.Errorf("parameter %q must be a profile, got %T", key, v)
	}
}
