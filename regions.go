package amplitude

// Region represents an Amplitude data residency region.
type Region string

// Region constants.
const (
	// RegionUS is the default, US hosted region.
	RegionUS Region = "us"
	// RegionEU is the EU data residency region.
	RegionEU Region = "eu"
)

// regionEndpoints holds the ingestion and dashboard base URLs of a region.
type regionEndpoints struct {
	ingestion string
	dashboard string
}

var regionURLs = map[Region]regionEndpoints{
	RegionUS: {
		ingestion: "https://api2.amplitude.com",
		dashboard: "https://amplitude.com/api/2",
	},
	RegionEU: {
		ingestion: "https://api.eu.amplitude.com",
		dashboard: "https://analytics.eu.amplitude.com/api/2",
	},
}

// String returns the region identifier.
func (r Region) String() string {
	return string(r)
}

// IngestionURL returns the ingestion API base URL for the region.
// Unknown regions resolve to the US endpoints.
func (r Region) IngestionURL() string {
	if e, ok := regionURLs[r]; ok {
		return e.ingestion
	}
	return regionURLs[RegionUS].ingestion
}

// DashboardURL returns the dashboard REST API base URL for the region.
// Unknown regions resolve to the US endpoints.
func (r Region) DashboardURL() string {
	if e, ok := regionURLs[r]; ok {
		return e.dashboard
	}
	return regionURLs[RegionUS].dashboard
}
