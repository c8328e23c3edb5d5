package oci

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/oracle/oci-go-sdk/v65/common"

	"github.com/hegde-atri/oci-burrow/internal/types"
)

// Signer adds OCI HTTP signature (version 1, rsa-sha256) headers to requests.
// The signature itself is computed by the SDK's default request signer.
type Signer struct {
	signer common.HTTPRequestSigner
	now    func() time.Time
}

// NewSigner loads the profile's private key and builds a signer for it
func NewSigner(p types.Profile) (*Signer, error) {
	pemData, _, err := profileKey(p)
	if err != nil {
		return nil, err
	}
	return newSigner(p, pemData), nil
}

func newSigner(p types.Profile, pemData []byte) *Signer {
	provider := common.NewRawConfigurationProvider(
		p.Tenancy, p.User, p.Region, p.Fingerprint, string(pemData), optionalString(p.PassPhrase),
	)
	return &Signer{
		signer: common.DefaultRequestSigner(provider),
		now:    time.Now,
	}
}

// Sign sets the date and Authorization headers on req.
// For POST and PUT the SDK also hashes the body into x-content-sha256.
func (s *Signer) Sign(req *http.Request) error {
	req.Header.Set("date", s.now().UTC().Format(http.TimeFormat))
	if req.Method == http.MethodPost || req.Method == http.MethodPut {
		if req.Header.Get("content-type") == "" {
			req.Header.Set("content-type", "application/json")
		}
		req.Header.Set("content-length", strconv.FormatInt(req.ContentLength, 10))
	}
	if err := s.signer.Sign(req); err != nil {
		return fmt.Errorf("failed to sign request: %w", err)
	}
	return nil
}
