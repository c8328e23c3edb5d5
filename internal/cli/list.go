package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/hegde-atri/oci-burrow/internal/gateway"
	"github.com/hegde-atri/oci-burrow/internal/types"
)

func (a *app) regionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regions",
		Short: "List the known OCI regions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			regions, err := a.client.Regions(cmd.Context())
			if err != nil {
				return err
			}
			rows := lo.Map(regions, func(r types.Region, _ int) []string { return []string{r.Code, r.DisplayName} })
			return a.console().table([]string{"CODE", "NAME"}, rows)
		},
	}
}

func (a *app) configPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config-path",
		Short: "Print the default OCI config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := a.client.DefaultConfigPath(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.out, path)
			return err
		},
	}
}

// listing describes one "list" subcommand
type listing[T any] struct {
	use    string
	short  string
	noun   string
	scoped bool
	header []string
	row    func(T) []string
	fetch  func(ctx context.Context, c *gateway.Client, profile, compartment string) ([]T, error)
}

func (a *app) listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List OCI resources with a profile",
	}
	cmd.PersistentFlags().StringP("profile", "p", "", "profile name (default: the first profile)")
	cmd.PersistentFlags().StringP("compartment", "c", "", "compartment OCID")

	cmd.AddCommand(
		listCommand(a, listing[types.ComputeInstance]{
			use: "instances", short: "List compute instances in a compartment", noun: "instances", scoped: true,
			header: []string{"NAME", "SHAPE", "STATE", "AVAILABILITY DOMAIN", "OCID"},
			row: func(i types.ComputeInstance) []string {
				return []string{i.DisplayName, i.Shape, colorState(i.LifecycleState), orDash(i.AvailabilityDomain), i.ID}
			},
			fetch: func(ctx context.Context, c *gateway.Client, profile, compartment string) ([]types.ComputeInstance, error) {
				return c.ListInstances(ctx, profile, compartment)
			},
		}),
		listCommand(a, listing[types.Bucket]{
			use: "buckets", short: "List object storage buckets in a compartment", noun: "buckets", scoped: true,
			header: []string{"NAME", "NAMESPACE", "CREATED"},
			row: func(b types.Bucket) []string {
				return []string{b.Name, b.Namespace, orDash(b.TimeCreated)}
			},
			fetch: func(ctx context.Context, c *gateway.Client, profile, compartment string) ([]types.Bucket, error) {
				ns, err := c.Namespace(ctx, profile)
				if err != nil {
					return nil, err
				}
				return c.ListBuckets(ctx, profile, compartment, ns)
			},
		}),
		listCommand(a, listing[types.Vcn]{
			use: "vcns", short: "List virtual cloud networks in a compartment", noun: "VCNs", scoped: true,
			header: []string{"NAME", "CIDR", "STATE", "OCID"},
			row: func(v types.Vcn) []string {
				return []string{v.DisplayName, orDash(v.CidrBlock), colorState(v.LifecycleState), v.ID}
			},
			fetch: func(ctx context.Context, c *gateway.Client, profile, compartment string) ([]types.Vcn, error) {
				return c.ListVcns(ctx, profile, compartment)
			},
		}),
		listCommand(a, listing[types.DbSystem]{
			use: "dbsystems", short: "List DB systems in a compartment", noun: "DB systems", scoped: true,
			header: []string{"NAME", "VERSION", "SHAPE", "STATE", "OCID"},
			row: func(d types.DbSystem) []string {
				return []string{d.DisplayName, orDash(d.DbVersion), orDash(d.Shape), colorState(d.LifecycleState), d.ID}
			},
			fetch: func(ctx context.Context, c *gateway.Client, profile, compartment string) ([]types.DbSystem, error) {
				return c.ListDbSystems(ctx, profile, compartment)
			},
		}),
		listCommand(a, listing[types.IamUser]{
			use: "users", short: "List IAM users of the tenancy", noun: "users",
			header: []string{"NAME", "DESCRIPTION", "STATE", "OCID"},
			row: func(u types.IamUser) []string {
				return []string{u.Name, orDash(u.Description), colorState(u.LifecycleState), u.ID}
			},
			fetch: func(ctx context.Context, c *gateway.Client, profile, _ string) ([]types.IamUser, error) {
				return c.ListUsers(ctx, profile)
			},
		}),
		listCommand(a, listing[types.IamGroup]{
			use: "groups", short: "List IAM groups of the tenancy", noun: "groups",
			header: []string{"NAME", "DESCRIPTION", "STATE", "OCID"},
			row: func(g types.IamGroup) []string {
				return []string{g.Name, orDash(g.Description), colorState(g.LifecycleState), g.ID}
			},
			fetch: func(ctx context.Context, c *gateway.Client, profile, _ string) ([]types.IamGroup, error) {
				return c.ListGroups(ctx, profile)
			},
		}),
	)
	return cmd
}

func listCommand[T any](a *app, l listing[T]) *cobra.Command {
	return &cobra.Command{
		Use:   l.use,
		Short: l.short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			compartment, _ := cmd.Flags().GetString("compartment")
			compartment = strings.TrimSpace(compartment)
			if l.scoped && compartment == "" {
				return fmt.Errorf("--compartment is required to list %s", l.noun)
			}
			profile, err := a.profileName(cmd)
			if err != nil {
				return err
			}
			rows, err := l.fetch(cmd.Context(), a.client, profile, compartment)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				a.console().empty(l.noun)
				return nil
			}
			return a.console().table(l.header, lo.Map(rows, func(r T, _ int) []string { return l.row(r) }))
		},
	}
}

// profileName returns --profile, or the first profile of the config file
func (a *app) profileName(cmd *cobra.Command) (string, error) {
	name, _ := cmd.Flags().GetString("profile")
	if name != "" {
		return name, nil
	}
	profiles, err := a.client.LoadConfig(cmd.Context(), "")
	if err != nil {
		return "", err
	}
	if len(profiles) == 0 {
		return "", fmt.Errorf("no profile configured, run %q first", "oci-burrow profiles create")
	}
	return profiles[0].Name, nil
}
