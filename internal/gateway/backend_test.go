package gateway

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hegde-atri/oci-burrow/internal/oci"
	"github.com/hegde-atri/oci-burrow/internal/ocicfg"
	"github.com/hegde-atri/oci-burrow/internal/types"
)

type backendEnv struct {
	client  *Client
	file    *ocicfg.File
	profile types.Profile
}

func newBackendEnv(t *testing.T, handler http.HandlerFunc) backendEnv {
	t.Helper()
	dir := t.TempDir()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	keyPath := filepath.Join(dir, "key.pem")
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	require.NoError(t, os.WriteFile(keyPath, pemBytes, 0o600))
	fp, err := oci.Fingerprint(key)
	require.NoError(t, err)

	p := types.Profile{
		Name:        "DEFAULT",
		User:        "ocid1.user.oc1..aaaa",
		Tenancy:     "ocid1.tenancy.oc1..bbbb",
		Region:      "eu-frankfurt-1",
		Fingerprint: fp,
		KeyFile:     keyPath,
	}
	file := ocicfg.NewFile(filepath.Join(dir, "config"))
	require.NoError(t, file.Create(p))

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	api := oci.NewClient(
		oci.WithHTTPClient(srv.Client()),
		oci.WithBaseURL(func(service, region string) string { return srv.URL }),
	)

	g := New(nil)
	NewBackend(file, api).Register(g)
	return backendEnv{client: NewClient(g), file: file, profile: p}
}

func TestBackendRegistersEveryCommand(t *testing.T) {
	g := New(nil)
	NewBackend(ocicfg.NewFile(filepath.Join(t.TempDir(), "config")), oci.NewClient()).Register(g)
	assert.Len(t, g.Commands(), 18)
}

func TestBackendProfileCommands(t *testing.T) {
	env := newBackendEnv(t, func(w http.ResponseWriter, r *http.Request) {})
	ctx := context.Background()
	c := env.client

	names, err := c.ListProfiles(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"DEFAULT"}, names)

	prod := env.profile
	prod.Name = "PROD"
	require.NoError(t, c.CreateProfile(ctx, prod, ""))
	require.ErrorIs(t, c.CreateProfile(ctx, prod, ""), ocicfg.ErrProfileExists)

	prod.Region = "us-ashburn-1"
	require.NoError(t, c.UpdateProfile(ctx, "PROD", prod, ""))
	got, err := c.GetProfile(ctx, "PROD", "")
	require.NoError(t, err)
	assert.Equal(t, "us-ashburn-1", got.Region)

	require.NoError(t, c.DeleteProfile(ctx, "PROD", ""))
	_, err = c.GetProfile(ctx, "PROD", "")
	assert.ErrorIs(t, err, ocicfg.ErrProfileNotFound)

	profiles, err := c.LoadConfig(ctx, env.file.Path())
	require.NoError(t, err)
	assert.Len(t, profiles, 1)

	other, err := c.LoadConfig(ctx, filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Empty(t, other)

	imported, err := c.ImportCLIConfig(ctx, env.file.Path())
	require.NoError(t, err)
	assert.Equal(t, env.profile, imported[0])

	regions, err := c.Regions(ctx)
	require.NoError(t, err)
	assert.Len(t, regions, len(oci.Regions()))

	path, err := c.DefaultConfigPath(ctx)
	require.NoError(t, err)
	assert.Equal(t, ocicfg.DefaultPath(), path)

	res, err := c.ValidateProfile(ctx, env.profile)
	require.NoError(t, err)
	assert.True(t, res.Valid)
}

func TestBackendResourceCommands(t *testing.T) {
	env := newBackendEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/20160918/instances":
			assert.Equal(t, "ocid1.compartment.oc1..cccc", r.URL.Query().Get("compartmentId"))
			_, _ = w.Write([]byte(`[{"id":"i1","displayName":"web","shape":"VM.Standard.E4.Flex","lifecycleState":"RUNNING"}]`))
		case "/n/":
			_, _ = w.Write([]byte(`"acme"`))
		case "/n/acme/b/":
			_, _ = w.Write([]byte(`[{"name":"logs","namespace":"acme"}]`))
		case "/20160918/users":
			assert.Equal(t, "ocid1.tenancy.oc1..bbbb", r.URL.Query().Get("compartmentId"))
			_, _ = w.Write([]byte(`[{"id":"u1","name":"alice","lifecycleState":"ACTIVE"}]`))
		case "/20160918/tenancies/ocid1.tenancy.oc1..bbbb":
			_, _ = w.Write([]byte(`{}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("not found"))
		}
	})
	ctx := context.Background()
	c := env.client

	instances, err := c.ListInstances(ctx, "DEFAULT", "ocid1.compartment.oc1..cccc")
	require.NoError(t, err)
	require.Len(t, instances, 1)
	assert.Equal(t, "web", instances[0].DisplayName)

	ns, err := c.Namespace(ctx, "DEFAULT")
	require.NoError(t, err)
	assert.Equal(t, "acme", ns)

	buckets, err := c.ListBuckets(ctx, "DEFAULT", "ocid1.compartment.oc1..cccc", ns)
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	assert.Equal(t, "logs", buckets[0].Name)

	users, err := c.ListUsers(ctx, "DEFAULT")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Name)

	conn, err := c.TestConnection(ctx, "DEFAULT", "")
	require.NoError(t, err)
	assert.True(t, conn.Success)

	_, err = c.ListVcns(ctx, "DEFAULT", "ocid1.compartment.oc1..cccc")
	var apiErr *oci.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)

	_, err = c.ListDbSystems(ctx, "MISSING", "ocid1.compartment.oc1..cccc")
	assert.ErrorIs(t, err, ocicfg.ErrProfileNotFound)
}
