package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/hegde-atri/oci-burrow/internal/ocicfg"
	"github.com/hegde-atri/oci-burrow/internal/types"
)

var errInvalidProfile = errors.New("profile is invalid")

func (a *app) profilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "profiles",
		Aliases: []string{"profile"},
		Short:   "Manage the profiles of the OCI config file",
	}
	cmd.AddCommand(
		a.profilesListCmd(),
		a.profilesShowCmd(),
		a.profilesCreateCmd(),
		a.profilesDeleteCmd(),
		a.profilesValidateCmd(),
		a.profilesTestCmd(),
		a.profilesImportCmd(),
	)
	return cmd
}

func (a *app) profilesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every complete profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			profiles, err := a.client.LoadConfig(cmd.Context(), "")
			if err != nil {
				return err
			}
			if len(profiles) == 0 {
				a.console().empty("profiles")
				return nil
			}
			rows := lo.Map(profiles, func(p types.Profile, _ int) []string {
				return []string{p.Name, p.Region, abbreviate(p.Tenancy), abbreviate(p.User), p.KeyFile}
			})
			return a.console().table([]string{"NAME", "REGION", "TENANCY", "USER", "KEY FILE"}, rows)
		},
	}
}

func (a *app) profilesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Show one profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.client.GetProfile(cmd.Context(), args[0], "")
			if err != nil {
				return err
			}
			return a.console().table([]string{"FIELD", "VALUE"}, profileFields(p))
		},
	}
}

func profileFields(p types.Profile) [][]string {
	return [][]string{
		{"name", p.Name},
		{"user", p.User},
		{"tenancy", p.Tenancy},
		{"region", p.Region},
		{"fingerprint", p.Fingerprint},
		{"key_file", p.KeyFile},
		{"pass_phrase", lo.Ternary(p.PassPhrase != "", "(set)", "-")},
	}
}

func (a *app) profilesCreateCmd() *cobra.Command {
	var p types.Profile
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Validate and add a profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p.KeyFile = ocicfg.ExpandTilde(p.KeyFile)
			if err := a.validate(cmd.Context(), p); err != nil {
				return err
			}
			if err := a.client.CreateProfile(cmd.Context(), p, ""); err != nil {
				return err
			}
			a.console().success("Profile %q created.", p.Name)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&p.Name, "name", "", "profile name")
	f.StringVar(&p.User, "user", "", "user OCID")
	f.StringVar(&p.Tenancy, "tenancy", "", "tenancy OCID")
	f.StringVar(&p.Region, "region", "", "region code, e.g. eu-frankfurt-1")
	f.StringVar(&p.Fingerprint, "fingerprint", "", "API key fingerprint")
	f.StringVar(&p.KeyFile, "key-file", "", "private key file")
	f.StringVar(&p.PassPhrase, "pass-phrase", "", "passphrase of an encrypted key file")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

// validate prints every validation message and fails when there are any
func (a *app) validate(ctx context.Context, p types.Profile) error {
	res, err := a.client.ValidateProfile(ctx, p)
	if err != nil {
		return err
	}
	if res.Valid {
		return nil
	}
	for _, msg := range res.Errors {
		a.console().fail("%s", msg)
	}
	return errInvalidProfile
}

func (a *app) profilesDeleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Remove a profile from the config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if !yes {
				ok, err := pterm.DefaultInteractiveConfirm.Show(fmt.Sprintf("Delete profile %q?", name))
				if err != nil {
					return err
				}
				if !ok {
					a.console().info("Cancelled.")
					return nil
				}
			}
			if err := a.client.DeleteProfile(cmd.Context(), name, ""); err != nil {
				return err
			}
			a.console().success("Profile %q deleted.", name)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func (a *app) profilesValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate NAME",
		Short: "Check a stored profile for missing or malformed fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.client.GetProfile(cmd.Context(), args[0], "")
			if err != nil {
				return err
			}
			if err := a.validate(cmd.Context(), p); err != nil {
				return err
			}
			a.console().success("Profile %q is valid.", p.Name)
			return nil
		},
	}
}

func (a *app) profilesTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test NAME",
		Short: "Make an authenticated call with a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spinner, _ := pterm.DefaultSpinner.Start("Testing connection...")
			res, err := a.client.TestConnection(cmd.Context(), args[0], "")
			if spinner != nil {
				_ = spinner.Stop()
			}
			if err != nil {
				return err
			}
			if !res.Success {
				a.console().fail("%s", res.Message)
				return errors.New("connection test failed")
			}
			a.console().success("%s", res.Message)
			return nil
		},
	}
}

func (a *app) profilesImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import PATH",
		Short: "Copy the profiles of an OCI CLI config that are not present yet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			found, err := a.client.ImportCLIConfig(ctx, ocicfg.ExpandTilde(args[0]))
			if err != nil {
				return err
			}
			existing, err := a.client.ListProfiles(ctx, "")
			if err != nil {
				return err
			}
			fresh, taken := lo.FilterReject(found, func(p types.Profile, _ int) bool {
				return !lo.Contains(existing, p.Name)
			})
			for _, p := range taken {
				a.console().warn("Skipped %q, a profile with that name exists.", p.Name)
			}
			for _, p := range fresh {
				if err := a.client.CreateProfile(ctx, p, ""); err != nil {
					return err
				}
				a.console().success("Imported %q.", p.Name)
			}
			if len(fresh) == 0 {
				a.console().info("Nothing to import.")
			}
			return nil
		},
	}
}
