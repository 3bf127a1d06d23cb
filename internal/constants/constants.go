package constants

// Default file locations
const (
	DefaultCredsFile    = "creds.yml"
	DefaultBaselineFile = "baseline.yml"
	DefaultEnvFile      = ".env"
)

// URLScheme is prepended to the configured host
const URLScheme = "https://"

// Fixed attribute values
const (
	StatusActive = "active"
	FaceFront    = "front"
)

// DefaultRackUHeight is the height NetBox gives a rack created without u_height
const DefaultRackUHeight = 42

// Endpoints (app/endpoint as used by the NetBox REST API)
const (
	EndpointManufacturers = "dcim/manufacturers"
	EndpointDeviceRoles   = "dcim/device-roles"
	EndpointDeviceTypes   = "dcim/device-types"
	EndpointSites         = "dcim/sites"
	EndpointRacks         = "dcim/racks"
	EndpointDevices       = "dcim/devices"
	EndpointTags          = "extras/tags"
)

// Managed tag defaults, used when a tag slug is configured
const (
	ManagedTagName        = "Baseline Managed"
	ManagedTagColor       = "4caf50"
	ManagedTagDescription = "Created by netbox-baseline"
)

// Baseline collection keys
const (
	KeyManufacturers = "manufacturers"
	KeyDeviceRoles   = "device_roles"
	KeyDeviceTypes   = "device_types"
	KeySites         = "sites"
)

// Kinds name the entity types in diagnostics and summaries
const (
	KindManufacturer = "manufacturer"
	KindDeviceRole   = "device_role"
	KindDeviceType   = "device_type"
	KindSite         = "site"
	KindRack         = "rack"
	KindDevice       = "device"
	KindBaseline     = "baseline"
)

// Kinds lists entity kinds in reconciliation order
var Kinds = []string{
	KindManufacturer,
	KindDeviceRole,
	KindDeviceType,
	KindSite,
	KindRack,
	KindDevice,
}
