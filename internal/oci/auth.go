package oci

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hegde-atri/oci-burrow/internal/types"
)

var (
	ocidPattern        = regexp.MustCompile(`^ocid1\.[a-z]+\.oc[0-9]+\.`)
	fingerprintPattern = regexp.MustCompile(`^([0-9a-fA-F]{2}:){15}[0-9a-fA-F]{2}$`)
)

// ProfileValidator checks profile fields before they are written to the config file
type ProfileValidator struct {
	validate *validator.Validate
}

// NewProfileValidator registers the notblank, ocid and fingerprint tags used by types.Profile
func NewProfileValidator() *ProfileValidator {
	v := validator.New()
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("ocid", func(fl validator.FieldLevel) bool {
		return ocidPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("fingerprint", func(fl validator.FieldLevel) bool {
		return fingerprintPattern.MatchString(fl.Field().String())
	})
	return &ProfileValidator{validate: v}
}

// Validate returns every problem with p, one message per field
func (pv *ProfileValidator) Validate(p types.Profile) types.ValidationResult {
	result := types.ValidationResult{Valid: true, Errors: []string{}}

	err := pv.validate.Struct(p)
	if err == nil {
		return result
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}
	for _, fe := range fieldErrs {
		result.Errors = append(result.Errors, formatProfileFieldError(fe))
	}
	result.Valid = len(result.Errors) == 0
	return result
}

func formatProfileFieldError(fe validator.FieldError) string {
	switch fe.Field() {
	case "Name":
		return "Profile name is required."
	case "User":
		return "Invalid user OCID format (e.g. ocid1.user.oc1..xxx)."
	case "Tenancy":
		return "Invalid tenancy OCID format (e.g. ocid1.tenancy.oc1..xxx)."
	case "Region":
		return "Select a region."
	case "Fingerprint":
		return "Invalid fingerprint format (e.g. aa:bb:cc:dd:...)."
	case "KeyFile":
		if fe.Tag() == "file" {
			return "The private key file was not found."
		}
		return "Specify the private key file path."
	default:
		return fmt.Sprintf("field '%s' validation failed on '%s' tag", fe.Field(), fe.Tag())
	}
}

// TestConnection fetches the profile's tenancy from the identity API.
// Authentication or network failures are reported in the result, not as an error;
// an error means the request could not be built (unreadable key, bad key format).
func (c *Client) TestConnection(ctx context.Context, p types.Profile) (types.ConnectionResult, error) {
	pemData, key, err := profileKey(p)
	if err != nil {
		return types.ConnectionResult{}, err
	}
	fp, err := Fingerprint(key)
	if err != nil {
		return types.ConnectionResult{}, err
	}
	if !strings.EqualFold(fp, p.Fingerprint) {
		return types.ConnectionResult{
			Success: false,
			Message: fmt.Sprintf("Fingerprint mismatch: the key file has %s but the profile says %s.", fp, p.Fingerprint),
		}, nil
	}

	resp, err := c.do(ctx, newSigner(p, pemData), p, "identity", "/20160918/tenancies/"+p.Tenancy, nil)
	if err != nil {
		return types.ConnectionResult{Success: false, Message: fmt.Sprintf("Connection failed: %v", err)}, nil
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode <= 299:
		return types.ConnectionResult{Success: true, Message: "Connection test succeeded. Authentication verified."}, nil
	case resp.StatusCode == http.StatusUnauthorized:
		return types.ConnectionResult{Success: false, Message: "Authentication failed. Check the OCIDs, fingerprint and private key."}, nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return types.ConnectionResult{
			Success: false,
			Message: (&APIError{StatusCode: resp.StatusCode, Body: string(body)}).Error(),
		}, nil
	}
}
