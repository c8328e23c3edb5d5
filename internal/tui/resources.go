package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/table"

	"github.com/hegde-atri/oci-burrow/internal/gateway"
	"github.com/hegde-atri/oci-burrow/internal/types"
)

func computeClass(lifecycle string) displayClass {
	switch strings.ToLower(lifecycle) {
	case "running":
		return classRunning
	case "stopped":
		return classStopped
	case "terminated":
		return classTerminated
	case "provisioning", "starting", "stopping", "creating":
		return classProvisioning
	}
	return classDefault
}

func databaseClass(lifecycle string) displayClass {
	switch strings.ToLower(lifecycle) {
	case "available":
		return classAvailable
	case "terminated", "failed":
		return classTerminated
	case "provisioning", "updating", "backup_in_progress":
		return classProvisioning
	}
	return classDefault
}

func networkClass(lifecycle string) displayClass {
	switch strings.ToLower(lifecycle) {
	case "available":
		return classAvailable
	case "terminated", "terminating":
		return classTerminated
	case "provisioning":
		return classProvisioning
	}
	return classDefault
}

func iamClass(lifecycle string) displayClass {
	switch strings.ToLower(lifecycle) {
	case "active":
		return classActive
	case "inactive", "deleted":
		return classInactive
	case "creating":
		return classCreating
	}
	return classDefault
}

func computeKind() resourceKind[types.ComputeInstance] {
	return resourceKind[types.ComputeInstance]{
		id:     pageCompute,
		title:  "Compute Instances",
		icon:   "🖥️",
		noun:   "instances",
		scoped: true,
		columns: []table.Column{
			{Title: "Display Name", Width: 28},
			{Title: "State", Width: 14},
			{Title: "Shape", Width: 22},
			{Title: "Availability Domain", Width: 24},
			{Title: "Created", Width: 26},
		},
		row: func(i types.ComputeInstance) table.Row {
			return table.Row{i.DisplayName, i.LifecycleState, i.Shape, i.AvailabilityDomain, orDash(i.TimeCreated)}
		},
		state:    func(i types.ComputeInstance) string { return i.LifecycleState },
		classify: computeClass,
		ocid:     func(i types.ComputeInstance) string { return i.ID },
		fetch: func(ctx context.Context, c *gateway.Client, profile, scope string) ([]types.ComputeInstance, error) {
			return c.ListInstances(ctx, profile, scope)
		},
	}
}

func storageKind() resourceKind[types.Bucket] {
	return resourceKind[types.Bucket]{
		id:     pageStorage,
		title:  "Object Storage",
		icon:   "📦",
		noun:   "buckets",
		scoped: true,
		columns: []table.Column{
			{Title: "Bucket", Width: 30},
			{Title: "Namespace", Width: 18},
			{Title: "Compartment", Width: 36},
			{Title: "Created", Width: 26},
		},
		row: func(b types.Bucket) table.Row {
			return table.Row{b.Name, b.Namespace, b.CompartmentID, orDash(b.TimeCreated)}
		},
		// buckets carry no lifecycle state
		state:    func(types.Bucket) string { return "" },
		classify: func(string) displayClass { return classDefault },
		ocid:     func(b types.Bucket) string { return b.Name },
		fetch: func(ctx context.Context, c *gateway.Client, profile, scope string) ([]types.Bucket, error) {
			ns, err := c.Namespace(ctx, profile)
			if err != nil {
				return nil, err
			}
			return c.ListBuckets(ctx, profile, scope, ns)
		},
	}
}

func networkKind() resourceKind[types.Vcn] {
	return resourceKind[types.Vcn]{
		id:     pageNetwork,
		title:  "Virtual Cloud Networks",
		icon:   "🌐",
		noun:   "VCNs",
		scoped: true,
		columns: []table.Column{
			{Title: "Display Name", Width: 30},
			{Title: "State", Width: 14},
			{Title: "CIDR Block", Width: 20},
			{Title: "Created", Width: 26},
		},
		row: func(v types.Vcn) table.Row {
			return table.Row{v.DisplayName, v.LifecycleState, orDash(v.CidrBlock), orDash(v.TimeCreated)}
		},
		state:    func(v types.Vcn) string { return v.LifecycleState },
		classify: networkClass,
		ocid:     func(v types.Vcn) string { return v.ID },
		fetch: func(ctx context.Context, c *gateway.Client, profile, scope string) ([]types.Vcn, error) {
			return c.ListVcns(ctx, profile, scope)
		},
	}
}

func databaseKind() resourceKind[types.DbSystem] {
	return resourceKind[types.DbSystem]{
		id:     pageDatabase,
		title:  "DB Systems",
		icon:   "🗄️",
		noun:   "DB systems",
		scoped: true,
		columns: []table.Column{
			{Title: "Display Name", Width: 28},
			{Title: "State", Width: 18},
			{Title: "Version", Width: 14},
			{Title: "Shape", Width: 22},
			{Title: "Created", Width: 26},
		},
		row: func(d types.DbSystem) table.Row {
			return table.Row{d.DisplayName, d.LifecycleState, orDash(d.DbVersion), orDash(d.Shape), orDash(d.TimeCreated)}
		},
		state:    func(d types.DbSystem) string { return d.LifecycleState },
		classify: databaseClass,
		ocid:     func(d types.DbSystem) string { return d.ID },
		fetch: func(ctx context.Context, c *gateway.Client, profile, scope string) ([]types.DbSystem, error) {
			return c.ListDbSystems(ctx, profile, scope)
		},
	}
}

var iamColumns = []table.Column{
	{Title: "Name", Width: 28},
	{Title: "State", Width: 12},
	{Title: "Description", Width: 40},
	{Title: "Created", Width: 26},
}

func usersKind() resourceKind[types.IamUser] {
	return resourceKind[types.IamUser]{
		id:      "iam-users",
		title:   "Users",
		icon:    "🔑",
		noun:    "users",
		columns: iamColumns,
		row: func(u types.IamUser) table.Row {
			return table.Row{u.Name, u.LifecycleState, orDash(u.Description), orDash(u.TimeCreated)}
		},
		state:    func(u types.IamUser) string { return u.LifecycleState },
		classify: iamClass,
		ocid:     func(u types.IamUser) string { return u.ID },
		fetch: func(ctx context.Context, c *gateway.Client, profile, _ string) ([]types.IamUser, error) {
			return c.ListUsers(ctx, profile)
		},
	}
}

func groupsKind() resourceKind[types.IamGroup] {
	return resourceKind[types.IamGroup]{
		id:      "iam-groups",
		title:   "Groups",
		icon:    "🔑",
		noun:    "groups",
		columns: iamColumns,
		row: func(g types.IamGroup) table.Row {
			return table.Row{g.Name, g.LifecycleState, orDash(g.Description), orDash(g.TimeCreated)}
		},
		state:    func(g types.IamGroup) string { return g.LifecycleState },
		classify: iamClass,
		ocid:     func(g types.IamGroup) string { return g.ID },
		fetch: func(ctx context.Context, c *gateway.Client, profile, _ string) ([]types.IamGroup, error) {
			return c.ListGroups(ctx, profile)
		},
	}
}
