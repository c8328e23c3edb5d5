package oci

import (
	"github.com/oracle/oci-go-sdk/v65/common"

	"github.com/hegde-atri/oci-burrow/internal/types"
)

var regions = []types.Region{
	// Asia Pacific
	{Code: "ap-tokyo-1", DisplayName: "Tokyo"},
	{Code: "ap-osaka-1", DisplayName: "Osaka"},
	{Code: "ap-seoul-1", DisplayName: "Seoul"},
	{Code: "ap-singapore-1", DisplayName: "Singapore"},
	{Code: "ap-mumbai-1", DisplayName: "Mumbai"},
	{Code: "ap-sydney-1", DisplayName: "Sydney"},
	{Code: "ap-melbourne-1", DisplayName: "Melbourne"},
	{Code: "ap-hyderabad-1", DisplayName: "Hyderabad"},
	{Code: "ap-chuncheon-1", DisplayName: "Chuncheon"},
	// North America
	{Code: "us-ashburn-1", DisplayName: "Ashburn"},
	{Code: "us-phoenix-1", DisplayName: "Phoenix"},
	{Code: "us-sanjose-1", DisplayName: "San Jose"},
	{Code: "us-chicago-1", DisplayName: "Chicago"},
	{Code: "ca-toronto-1", DisplayName: "Toronto"},
	{Code: "ca-montreal-1", DisplayName: "Montreal"},
	// Europe
	{Code: "eu-frankfurt-1", DisplayName: "Frankfurt"},
	{Code: "eu-amsterdam-1", DisplayName: "Amsterdam"},
	{Code: "eu-zurich-1", DisplayName: "Zurich"},
	{Code: "eu-stockholm-1", DisplayName: "Stockholm"},
	{Code: "eu-madrid-1", DisplayName: "Madrid"},
	{Code: "eu-marseille-1", DisplayName: "Marseille"},
	{Code: "eu-milan-1", DisplayName: "Milan"},
	{Code: "eu-paris-1", DisplayName: "Paris"},
	{Code: "uk-london-1", DisplayName: "London"},
	{Code: "uk-cardiff-1", DisplayName: "Cardiff"},
	// Middle East & Africa
	{Code: "me-jeddah-1", DisplayName: "Jeddah"},
	{Code: "me-dubai-1", DisplayName: "Dubai"},
	{Code: "af-johannesburg-1", DisplayName: "Johannesburg"},
	// South America
	{Code: "sa-saopaulo-1", DisplayName: "Sao Paulo"},
	{Code: "sa-vinhedo-1", DisplayName: "Vinhedo"},
}

// Regions returns the regions offered in the profile editor
func Regions() []types.Region {
	out := make([]types.Region, len(regions))
	copy(out, regions)
	return out
}

// Endpoint returns the API host for service in region, e.g. iaas.ap-tokyo-1.oraclecloud.com.
// The domain follows the region's realm, so government and sovereign regions resolve too.
func Endpoint(service, region string) string {
	return common.StringToRegion(region).Endpoint(service)
}
