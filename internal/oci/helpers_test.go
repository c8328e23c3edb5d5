package oci

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hegde-atri/oci-burrow/internal/types"
)

var (
	testKeyOnce sync.Once
	testKey     *rsa.PrivateKey
)

func sharedKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	testKeyOnce.Do(func() {
		k, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			panic(err)
		}
		testKey = k
	})
	return testKey
}

// writeKey writes the shared key as PKCS#8 (or PKCS#1) PEM and returns its path
func writeKey(t *testing.T, pkcs1 bool) string {
	t.Helper()
	key := sharedKey(t)

	var block *pem.Block
	if pkcs1 {
		block = &pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}
	} else {
		der, err := x509.MarshalPKCS8PrivateKey(key)
		require.NoError(t, err)
		block = &pem.Block{Type: "PRIVATE KEY", Bytes: der}
	}
	path := filepath.Join(t.TempDir(), "key.pem")
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(block), 0o600))
	return path
}

// testProfile returns a profile whose fingerprint matches the shared key
func testProfile(t *testing.T) types.Profile {
	t.Helper()
	fp, err := Fingerprint(sharedKey(t))
	require.NoError(t, err)
	return types.Profile{
		Name:        "DEFAULT",
		User:        "ocid1.user.oc1..aaaa",
		Tenancy:     "ocid1.tenancy.oc1..bbbb",
		Region:      "ap-tokyo-1",
		Fingerprint: fp,
		KeyFile:     writeKey(t, false),
	}
}
