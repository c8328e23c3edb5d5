package ocicfg

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hegde-atri/oci-burrow/internal/types"
)

func testProfile(name string) types.Profile {
	return types.Profile{
		Name:        name,
		User:        "ocid1.user.oc1..u",
		Tenancy:     "ocid1.tenancy.oc1..t",
		Region:      "us-phoenix-1",
		Fingerprint: "aa:bb",
		KeyFile:     "/keys/" + name + ".pem",
	}
}

func TestFileMissingIsEmpty(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "config"))

	profiles, err := f.Profiles()
	require.NoError(t, err)
	assert.Empty(t, profiles)

	names, err := f.Names()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestFileCRUD(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "config"))

	require.NoError(t, f.Create(testProfile("a")))
	require.NoError(t, f.Create(testProfile("b")))

	err := f.Create(testProfile("a"))
	assert.ErrorIs(t, err, ErrProfileExists)

	names, err := f.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)

	renamed := testProfile("c")
	renamed.Region = "uk-london-1"
	require.NoError(t, f.Update("a", renamed))

	got, err := f.Get("c")
	require.NoError(t, err)
	assert.Equal(t, "uk-london-1", got.Region)

	_, err = f.Get("a")
	assert.ErrorIs(t, err, ErrProfileNotFound)

	assert.ErrorIs(t, f.Update("missing", testProfile("x")), ErrProfileNotFound)
	assert.ErrorIs(t, f.Update("c", testProfile("b")), ErrProfileExists)

	require.NoError(t, f.Delete("c"))
	assert.ErrorIs(t, f.Delete("c"), ErrProfileNotFound)

	names, err = f.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, names)
}

func TestNewFileDefaultsPath(t *testing.T) {
	withHome(t, "/home/u")
	assert.Equal(t, "/home/u/.oci/config", NewFile("").Path())
}

func TestImport(t *testing.T) {
	withHome(t, "/home/test")
	path := writeSample(t)

	profiles, err := Import(path)
	require.NoError(t, err)
	assert.Len(t, profiles, 2)

	_, err = Import(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
