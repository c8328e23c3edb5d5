package gateway

import (
	"context"

	"github.com/hegde-atri/oci-burrow/internal/oci"
	"github.com/hegde-atri/oci-burrow/internal/ocicfg"
	"github.com/hegde-atri/oci-burrow/internal/types"
)

// Command names understood by the backend
const (
	CmdLoadOCIConfig        = "load_oci_config"
	CmdCreateProfile        = "create_profile"
	CmdUpdateProfile        = "update_profile"
	CmdDeleteProfile        = "delete_profile"
	CmdGetRegions           = "get_regions"
	CmdGetDefaultConfigPath = "get_default_config_path"
	CmdImportOCICLIConfig   = "import_oci_cli_config"
	CmdListProfiles         = "list_profiles"
	CmdGetProfile           = "get_profile"
	CmdValidateProfile      = "validate_profile"
	CmdTestConnection       = "test_connection"
	CmdListInstances        = "list_instances"
	CmdListBuckets          = "list_buckets"
	CmdGetNamespace         = "get_namespace"
	CmdListVcns             = "list_vcns"
	CmdListDbSystems        = "list_db_systems"
	CmdListUsers            = "list_users"
	CmdListGroups           = "list_groups"
)

// Backend serves every command from the OCI config file and the OCI REST APIs
type Backend struct {
	file      *ocicfg.File
	api       *oci.Client
	validator *oci.ProfileValidator
}

// NewBackend creates a backend bound to a config file and API client
func NewBackend(file *ocicfg.File, api *oci.Client) *Backend {
	return &Backend{file: file, api: api, validator: oci.NewProfileValidator()}
}

// Register installs every backend command on g
func (b *Backend) Register(g *Gateway) {
	g.Register(CmdGetDefaultConfigPath, func(ctx context.Context, args Args) (any, error) {
		return ocicfg.DefaultPath(), nil
	})
	g.Register(CmdLoadOCIConfig, func(ctx context.Context, args Args) (any, error) {
		f, err := b.fileFor(args, "path")
		if err != nil {
			return nil, err
		}
		return f.Profiles()
	})
	g.Register(CmdImportOCICLIConfig, func(ctx context.Context, args Args) (any, error) {
		path, err := args.String("path")
		if err != nil {
			return nil, err
		}
		return ocicfg.Import(path)
	})
	g.Register(CmdListProfiles, func(ctx context.Context, args Args) (any, error) {
		f, err := b.fileFor(args, "path")
		if err != nil {
			return nil, err
		}
		return f.Names()
	})
	g.Register(CmdGetProfile, func(ctx context.Context, args Args) (any, error) {
		f, err := b.fileFor(args, "path")
		if err != nil {
			return nil, err
		}
		name, err := args.String("name")
		if err != nil {
			return nil, err
		}
		return f.Get(name)
	})
	g.Register(CmdCreateProfile, func(ctx context.Context, args Args) (any, error) {
		f, err := b.fileFor(args, "path")
		if err != nil {
			return nil, err
		}
		p, err := args.Profile("profile")
		if err != nil {
			return nil, err
		}
		return nil, f.Create(p)
	})
	g.Register(CmdUpdateProfile, func(ctx context.Context, args Args) (any, error) {
		f, err := b.fileFor(args, "path")
		if err != nil {
			return nil, err
		}
		name, err := args.String("name")
		if err != nil {
			return nil, err
		}
		p, err := args.Profile("profile")
		if err != nil {
			return nil, err
		}
		return nil, f.Update(name, p)
	})
	g.Register(CmdDeleteProfile, func(ctx context.Context, args Args) (any, error) {
		f, err := b.fileFor(args, "path")
		if err != nil {
			return nil, err
		}
		name, err := args.String("name")
		if err != nil {
			return nil, err
		}
		return nil, f.Delete(name)
	})
	g.Register(CmdGetRegions, func(ctx context.Context, args Args) (any, error) {
		return oci.Regions(), nil
	})
	g.Register(CmdValidateProfile, func(ctx context.Context, args Args) (any, error) {
		p, err := args.Profile("profile")
		if err != nil {
			return nil, err
		}
		return b.validator.Validate(p), nil
	})
	g.Register(CmdTestConnection, func(ctx context.Context, args Args) (any, error) {
		f, err := b.fileFor(args, "configPath")
		if err != nil {
			return nil, err
		}
		p, err := profileFrom(f, args)
		if err != nil {
			return nil, err
		}
		return b.api.TestConnection(ctx, p)
	})

	g.Register(CmdListInstances, compartmentCommand(b, b.api.ListInstances))
	g.Register(CmdListVcns, compartmentCommand(b, b.api.ListVcns))
	g.Register(CmdListDbSystems, compartmentCommand(b, b.api.ListDbSystems))
	g.Register(CmdListUsers, tenancyCommand(b, b.api.ListUsers))
	g.Register(CmdListGroups, tenancyCommand(b, b.api.ListGroups))

	g.Register(CmdGetNamespace, func(ctx context.Context, args Args) (any, error) {
		p, err := profileFrom(b.file, args)
		if err != nil {
			return nil, err
		}
		return b.api.Namespace(ctx, p)
	})
	g.Register(CmdListBuckets, func(ctx context.Context, args Args) (any, error) {
		p, err := profileFrom(b.file, args)
		if err != nil {
			return nil, err
		}
		compartmentID, err := args.String("compartmentId")
		if err != nil {
			return nil, err
		}
		namespace, err := args.String("namespace")
		if err != nil {
			return nil, err
		}
		return b.api.ListBuckets(ctx, p, compartmentID, namespace)
	})
}

// fileFor honours an optional config path override in args
func (b *Backend) fileFor(args Args, key string) (*ocicfg.File, error) {
	path, ok, err := args.OptionalString(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return b.file, nil
	}
	return ocicfg.NewFile(path), nil
}

func profileFrom(f *ocicfg.File, args Args) (types.Profile, error) {
	name, err := args.String("profileName")
	if err != nil {
		return types.Profile{}, err
	}
	return f.Get(name)
}

func compartmentCommand[T any](b *Backend, list func(context.Context, types.Profile, string) ([]T, error)) Handler {
	return func(ctx context.Context, args Args) (any, error) {
		p, err := profileFrom(b.file, args)
		if err != nil {
			return nil, err
		}
		compartmentID, err := args.String("compartmentId")
		if err != nil {
			return nil, err
		}
		return list(ctx, p, compartmentID)
	}
}

func tenancyCommand[T any](b *Backend, list func(context.Context, types.Profile) ([]T, error)) Handler {
	return func(ctx context.Context, args Args) (any, error) {
		p, err := profileFrom(b.file, args)
		if err != nil {
			return nil, err
		}
		return list(ctx, p)
	}
}
