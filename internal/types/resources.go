package types

// ComputeInstance is a row of the compute instance listing
type ComputeInstance struct {
	ID                 string `json:"id"`
	DisplayName        string `json:"displayName"`
	Shape              string `json:"shape"`
	LifecycleState     string `json:"lifecycleState"`
	AvailabilityDomain string `json:"availabilityDomain"`
	TimeCreated        string `json:"timeCreated,omitempty"`
}

// Bucket is an object storage bucket summary
type Bucket struct {
	Name          string `json:"name"`
	CompartmentID string `json:"compartmentId"`
	Namespace     string `json:"namespace"`
	TimeCreated   string `json:"timeCreated,omitempty"`
}

// Vcn is a virtual cloud network summary
type Vcn struct {
	ID             string `json:"id"`
	DisplayName    string `json:"displayName"`
	CidrBlock      string `json:"cidrBlock,omitempty"`
	LifecycleState string `json:"lifecycleState"`
	TimeCreated    string `json:"timeCreated,omitempty"`
}

// DbSystem is a database system summary
type DbSystem struct {
	ID             string `json:"id"`
	DisplayName    string `json:"displayName"`
	DbVersion      string `json:"dbVersion,omitempty"`
	LifecycleState string `json:"lifecycleState"`
	Shape          string `json:"shape,omitempty"`
	TimeCreated    string `json:"timeCreated,omitempty"`
}

// IamUser is an identity user in the tenancy
type IamUser struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	LifecycleState string `json:"lifecycleState"`
	TimeCreated    string `json:"timeCreated,omitempty"`
}

// IamGroup is an identity group in the tenancy
type IamGroup struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	LifecycleState string `json:"lifecycleState"`
	TimeCreated    string `json:"timeCreated,omitempty"`
}
