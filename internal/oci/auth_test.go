package oci

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hegde-atri/oci-burrow/internal/types"
)

func TestValidateProfile(t *testing.T) {
	valid := testProfile(t)
	pv := NewProfileValidator()

	tests := []struct {
		name   string
		mutate func(p *types.Profile)
		want   []string
	}{
		{
			name:   "valid",
			mutate: func(p *types.Profile) {},
			want:   []string{},
		},
		{
			name:   "blank name",
			mutate: func(p *types.Profile) { p.Name = "   " },
			want:   []string{"Profile name is required."},
		},
		{
			name: "bad ocids",
			mutate: func(p *types.Profile) {
				p.User = "user"
				p.Tenancy = "ocid2.tenancy"
			},
			want: []string{
				"Invalid user OCID format (e.g. ocid1.user.oc1..xxx).",
				"Invalid tenancy OCID format (e.g. ocid1.tenancy.oc1..xxx).",
			},
		},
		{
			name:   "short fingerprint",
			mutate: func(p *types.Profile) { p.Fingerprint = "aa:bb" },
			want:   []string{"Invalid fingerprint format (e.g. aa:bb:cc:dd:...)."},
		},
		{
			name:   "no region and empty key path",
			mutate: func(p *types.Profile) { p.Region = ""; p.KeyFile = "" },
			want:   []string{"Select a region.", "Specify the private key file path."},
		},
		{
			name:   "key file missing",
			mutate: func(p *types.Profile) { p.KeyFile = "/definitely/not/here.pem" },
			want:   []string{"The private key file was not found."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			got := pv.Validate(p)
			assert.Equal(t, len(tt.want) == 0, got.Valid)
			assert.Equal(t, tt.want, got.Errors)
		})
	}
}

func TestTestConnection(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		wantSuccess bool
		wantMessage string
	}{
		{"ok", http.StatusOK, true, "Connection test succeeded. Authentication verified."},
		{"unauthorized", http.StatusUnauthorized, false, "Authentication failed. Check the OCIDs, fingerprint and private key."},
		{"server error", http.StatusInternalServerError, false, "API error (status 500): boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/20160918/tenancies/ocid1.tenancy.oc1..bbbb", r.URL.Path)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("boom"))
			}))
			defer srv.Close()

			res, err := newTestClient(srv, nil).TestConnection(context.Background(), testProfile(t))
			require.NoError(t, err)
			assert.Equal(t, tt.wantSuccess, res.Success)
			assert.Equal(t, tt.wantMessage, res.Message)
		})
	}
}

func TestTestConnectionFingerprintMismatch(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	p := testProfile(t)
	p.Fingerprint = "00:00:00:00:00:00:00:00:00:00:00:00:00:00:00:00"

	res, err := newTestClient(srv, nil).TestConnection(context.Background(), p)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "Fingerprint mismatch")
	assert.False(t, called)
}

func TestTestConnectionTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := newTestClient(srv, nil)
	srv.Close()

	res, err := c.TestConnection(context.Background(), testProfile(t))
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "Connection failed")
}
