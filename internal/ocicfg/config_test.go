package ocicfg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hegde-atri/oci-burrow/internal/types"
)

const sampleConfig = `# generated by oci setup config
[DEFAULT]
user=ocid1.user.oc1..aaaatest
fingerprint=aa:bb:cc:dd:ee:ff
tenancy=ocid1.tenancy.oc1..aaaatest
region=ap-tokyo-1
key_file=/home/test/.oci/key.pem

[INCOMPLETE]
user=ocid1.user.oc1..cccc

[PRODUCTION]
user = ocid1.user.oc1..bbbbtest
fingerprint = 11:22:33:44:55:66
tenancy = ocid1.tenancy.oc1..bbbbtest
region = us-ashburn-1
key_file = ~/.oci/prod_key.pem
`

func withHome(t *testing.T, home string) {
	t.Helper()
	orig := osUserHomeDir
	osUserHomeDir = func() (string, error) { return home, nil }
	t.Cleanup(func() { osUserHomeDir = orig })
}

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o600))
	return path
}

func TestParse(t *testing.T) {
	withHome(t, "/home/test")
	path := writeSample(t)

	profiles, err := Parse(path)
	require.NoError(t, err)
	require.Len(t, profiles, 2)

	assert.Equal(t, "DEFAULT", profiles[0].Name)
	assert.Equal(t, "ap-tokyo-1", profiles[0].Region)
	assert.Equal(t, "/home/test/.oci/key.pem", profiles[0].KeyFile)

	assert.Equal(t, "PRODUCTION", profiles[1].Name)
	assert.Equal(t, "us-ashburn-1", profiles[1].Region)
	assert.Equal(t, "/home/test/.oci/prod_key.pem", profiles[1].KeyFile, "tilde should be expanded")
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestWriteAndParseRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config")
	in := []types.Profile{
		{Name: "DEFAULT", User: "ocid1.user.oc1..test", Tenancy: "ocid1.tenancy.oc1..test", Region: "ap-tokyo-1", Fingerprint: "aa:bb", KeyFile: "/keys/a.pem"},
		{Name: "dev", User: "ocid1.user.oc1..dev", Tenancy: "ocid1.tenancy.oc1..dev", Region: "eu-frankfurt-1", Fingerprint: "cc:dd", KeyFile: "/keys/b.pem", PassPhrase: "hunter2"},
	}
	require.NoError(t, Write(path, in))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	out, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestParseIgnoresKeysOfParentSection(t *testing.T) {
	data := []byte(`[team]
user=ocid1.user.oc1..a
fingerprint=aa:bb
tenancy=ocid1.tenancy.oc1..a
region=us-ashburn-1
key_file=/keys/team.pem

[team.dev]
region=eu-frankfurt-1
`)
	profiles, err := parseBytes(data)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "team", profiles[0].Name)
}

func TestExpandTilde(t *testing.T) {
	withHome(t, "/home/u")
	assert.Equal(t, "/home/u/.oci/key.pem", ExpandTilde("~/.oci/key.pem"))
	assert.Equal(t, "/abs/key.pem", ExpandTilde("/abs/key.pem"))
}

func TestDefaultPath(t *testing.T) {
	withHome(t, "/home/u")
	assert.Equal(t, filepath.Join("/home/u", ".oci", "config"), DefaultPath())
}
