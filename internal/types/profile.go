package types

// Profile represents one named set of OCI API credentials from the config file
type Profile struct {
	Name        string `json:"name" validate:"notblank"`
	User        string `json:"user" validate:"ocid"`
	Tenancy     string `json:"tenancy" validate:"ocid"`
	Region      string `json:"region" validate:"notblank"`
	Fingerprint string `json:"fingerprint" validate:"fingerprint"`
	KeyFile     string `json:"key_file" validate:"notblank,file"`
	// PassPhrase unlocks an encrypted key file, empty for plain keys
	PassPhrase string `json:"pass_phrase,omitempty"`
}

// Region is an OCI region code with a human readable name
type Region struct {
	Code        string `json:"code"`
	DisplayName string `json:"display_name"`
}

// ValidationResult reports whether a profile passed validation.
// A rejected profile is not an error: Errors holds one message per problem.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ConnectionResult is the outcome of an authenticated test call
type ConnectionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
