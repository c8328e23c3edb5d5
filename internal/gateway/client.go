package gateway

import (
	"context"
	"fmt"

	"github.com/hegde-atri/oci-burrow/internal/types"
)

// Invoker runs a named command. *Gateway satisfies it.
type Invoker interface {
	Invoke(ctx context.Context, name string, args Args) (any, error)
}

// Client is the typed front-end view of the gateway commands
type Client struct {
	inv Invoker
}

// NewClient wraps inv
func NewClient(inv Invoker) *Client {
	return &Client{inv: inv}
}

func call[T any](ctx context.Context, c *Client, name string, args Args) (T, error) {
	var zero T
	res, err := c.inv.Invoke(ctx, name, args)
	if err != nil {
		return zero, err
	}
	if res == nil {
		return zero, nil
	}
	out, ok := res.(T)
	if !ok {
		return zero, fmt.Errorf("command %s returned %T, want %T", name, res, zero)
	}
	return out, nil
}

// LoadConfig returns the complete profiles of the config file at path, or of the default file when path is empty
func (c *Client) LoadConfig(ctx context.Context, path string) ([]types.Profile, error) {
	return call[[]types.Profile](ctx, c, CmdLoadOCIConfig, Args{"path": Optional(path)})
}

// ListProfiles returns the profile names in file order
func (c *Client) ListProfiles(ctx context.Context, path string) ([]string, error) {
	return call[[]string](ctx, c, CmdListProfiles, Args{"path": Optional(path)})
}

// GetProfile returns one profile by name
func (c *Client) GetProfile(ctx context.Context, name, path string) (types.Profile, error) {
	return call[types.Profile](ctx, c, CmdGetProfile, Args{"name": name, "path": Optional(path)})
}

// CreateProfile appends p to the config file. The name must be new.
func (c *Client) CreateProfile(ctx context.Context, p types.Profile, path string) error {
	_, err := c.inv.Invoke(ctx, CmdCreateProfile, Args{"profile": p, "path": Optional(path)})
	return err
}

// UpdateProfile replaces the profile called name with p, which may rename it
func (c *Client) UpdateProfile(ctx context.Context, name string, p types.Profile, path string) error {
	_, err := c.inv.Invoke(ctx, CmdUpdateProfile, Args{"name": name, "profile": p, "path": Optional(path)})
	return err
}

// DeleteProfile removes a profile by name
func (c *Client) DeleteProfile(ctx context.Context, name, path string) error {
	_, err := c.inv.Invoke(ctx, CmdDeleteProfile, Args{"name": name, "path": Optional(path)})
	return err
}

// Regions returns the regions known to the backend
func (c *Client) Regions(ctx context.Context) ([]types.Region, error) {
	return call[[]types.Region](ctx, c, CmdGetRegions, nil)
}

// DefaultConfigPath returns the location used when no path is given
func (c *Client) DefaultConfigPath(ctx context.Context) (string, error) {
	return call[string](ctx, c, CmdGetDefaultConfigPath, nil)
}

// ImportCLIConfig reads the profiles of an OCI CLI config file without writing anything
func (c *Client) ImportCLIConfig(ctx context.Context, path string) ([]types.Profile, error) {
	return call[[]types.Profile](ctx, c, CmdImportOCICLIConfig, Args{"path": path})
}

// ValidateProfile checks p. A rejected profile is reported in the result, not as an error.
func (c *Client) ValidateProfile(ctx context.Context, p types.Profile) (types.ValidationResult, error) {
	return call[types.ValidationResult](ctx, c, CmdValidateProfile, Args{"profile": p})
}

// TestConnection makes one authenticated call with a saved profile
func (c *Client) TestConnection(ctx context.Context, profileName, configPath string) (types.ConnectionResult, error) {
	return call[types.ConnectionResult](ctx, c, CmdTestConnection, Args{
		"profileName": profileName,
		"configPath":  Optional(configPath),
	})
}

// ListInstances lists the compute instances of a compartment
func (c *Client) ListInstances(ctx context.Context, profileName, compartmentID string) ([]types.ComputeInstance, error) {
	return call[[]types.ComputeInstance](ctx, c, CmdListInstances, Args{"profileName": profileName, "compartmentId": compartmentID})
}

// Namespace returns the object storage namespace of the profile's tenancy
func (c *Client) Namespace(ctx context.Context, profileName string) (string, error) {
	return call[string](ctx, c, CmdGetNamespace, Args{"profileName": profileName})
}

// ListBuckets lists the buckets of a compartment. Resolve namespace with Namespace first.
func (c *Client) ListBuckets(ctx context.Context, profileName, compartmentID, namespace string) ([]types.Bucket, error) {
	return call[[]types.Bucket](ctx, c, CmdListBuckets, Args{
		"profileName":   profileName,
		"compartmentId": compartmentID,
		"namespace":     namespace,
	})
}

// ListVcns lists the virtual cloud networks of a compartment
func (c *Client) ListVcns(ctx context.Context, profileName, compartmentID string) ([]types.Vcn, error) {
	return call[[]types.Vcn](ctx, c, CmdListVcns, Args{"profileName": profileName, "compartmentId": compartmentID})
}

// ListDbSystems lists the DB systems of a compartment
func (c *Client) ListDbSystems(ctx context.Context, profileName, compartmentID string) ([]types.DbSystem, error) {
	return call[[]types.DbSystem](ctx, c, CmdListDbSystems, Args{"profileName": profileName, "compartmentId": compartmentID})
}

// ListUsers lists the IAM users of the profile's tenancy
func (c *Client) ListUsers(ctx context.Context, profileName string) ([]types.IamUser, error) {
	return call[[]types.IamUser](ctx, c, CmdListUsers, Args{"profileName": profileName})
}

// ListGroups lists the IAM groups of the profile's tenancy
func (c *Client) ListGroups(ctx context.Context, profileName string) ([]types.IamGroup, error) {
	return call[[]types.IamGroup](ctx, c, CmdListGroups, Args{"profileName": profileName})
}
