package oci

import (
	"crypto/md5"
	"crypto/rsa"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/oracle/oci-go-sdk/v65/common"

	"github.com/hegde-atri/oci-burrow/internal/types"
)

// ErrUnsupportedKey is returned when a PEM file holds neither a PKCS#1 nor a PKCS#8 RSA key
var ErrUnsupportedKey = errors.New("failed to parse private key: provide a PKCS#1 or PKCS#8 PEM file")

// ParsePrivateKey decodes the first PEM block in data.
// passphrase is only needed for encrypted keys.
func ParsePrivateKey(data []byte, passphrase string) (*rsa.PrivateKey, error) {
	key, err := common.PrivateKeyFromBytes(data, optionalString(passphrase))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedKey, err)
	}
	return key, nil
}

// profileKey returns the raw PEM of the profile's key file together with the parsed key
func profileKey(p types.Profile) ([]byte, *rsa.PrivateKey, error) {
	data, err := os.ReadFile(p.KeyFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read private key file: %w", err)
	}
	key, err := ParsePrivateKey(data, p.PassPhrase)
	if err != nil {
		return nil, nil, err
	}
	return data, key, nil
}

// Fingerprint returns the OCI API key fingerprint of the public half of key:
// the MD5 of its DER encoding as colon separated lowercase hex pairs.
func Fingerprint(key *rsa.PrivateKey) (string, error) {
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return "", fmt.Errorf("failed to encode public key: %w", err)
	}
	sum := md5.Sum(der)
	parts := make([]string, len(sum))
	for i, b := range sum {
		parts[i] = fmt.Sprintf("%02x", b)
	}
	return strings.Join(parts, ":"), nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return common.String(s)
}
