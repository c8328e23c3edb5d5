package oci

import (
	"context"
	"fmt"
	"net/url"

	"github.com/hegde-atri/oci-burrow/internal/types"
)

func compartmentQuery(id string) url.Values {
	return url.Values{"compartmentId": {id}}
}

// ListInstances lists compute instances in a compartment
func (c *Client) ListInstances(ctx context.Context, p types.Profile, compartmentID string) ([]types.ComputeInstance, error) {
	return getJSON[[]types.ComputeInstance](ctx, c, p, "iaas", "/20160918/instances", compartmentQuery(compartmentID))
}

// ListVcns lists virtual cloud networks in a compartment
func (c *Client) ListVcns(ctx context.Context, p types.Profile, compartmentID string) ([]types.Vcn, error) {
	return getJSON[[]types.Vcn](ctx, c, p, "iaas", "/20160918/vcns", compartmentQuery(compartmentID))
}

// ListDbSystems lists database systems in a compartment
func (c *Client) ListDbSystems(ctx context.Context, p types.Profile, compartmentID string) ([]types.DbSystem, error) {
	return getJSON[[]types.DbSystem](ctx, c, p, "database", "/20160918/dbSystems", compartmentQuery(compartmentID))
}

// Namespace returns the tenancy's object storage namespace
func (c *Client) Namespace(ctx context.Context, p types.Profile) (string, error) {
	// the body is a bare JSON string
	return getJSON[string](ctx, c, p, "objectstorage", "/n/", nil)
}

// ListBuckets lists the buckets of namespace in a compartment
func (c *Client) ListBuckets(ctx context.Context, p types.Profile, compartmentID, namespace string) ([]types.Bucket, error) {
	path := fmt.Sprintf("/n/%s/b/", url.PathEscape(namespace))
	return getJSON[[]types.Bucket](ctx, c, p, "objectstorage", path, compartmentQuery(compartmentID))
}

// ListUsers lists IAM users of the profile's tenancy
func (c *Client) ListUsers(ctx context.Context, p types.Profile) ([]types.IamUser, error) {
	return getJSON[[]types.IamUser](ctx, c, p, "identity", "/20160918/users", compartmentQuery(p.Tenancy))
}

// ListGroups lists IAM groups of the profile's tenancy
func (c *Client) ListGroups(ctx context.Context, p types.Profile) ([]types.IamGroup, error) {
	return getJSON[[]types.IamGroup](ctx, c, p, "identity", "/20160918/groups", compartmentQuery(p.Tenancy))
}
