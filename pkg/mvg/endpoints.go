package mvg

// The MVG web API is split over two bases: FIB serves live journey
// information, ZDM serves the static master data catalog.
const (
	// DefaultFIBBaseURL is the base URL of the live departure/location API.
	DefaultFIBBaseURL = "https://www.mvg.de/api/bgw-pt/v3"

	// DefaultZDMBaseURL is the base URL of the static master data API.
	DefaultZDMBaseURL = "https://www.mvg.de/.rest/zdm"
)

const (
	// endpointLocations searches stations by free text.
	// Params: query
	endpointLocations = "/locations"

	// endpointNearby searches stations around a coordinate.
	// Params: latitude, longitude
	endpointNearby = "/stations/nearby"

	// endpointDepartures returns upcoming departures at a station.
	// Params: globalId, limit, offsetInMinutes, transportTypes
	endpointDepartures = "/departures"

	// endpointMessages returns current network-wide service messages.
	endpointMessages = "/messages"

	// endpointStationIDs returns the list of all known global station ids.
	endpointStationIDs = "/mvgStationGlobalIds"

	// endpointStations returns the full station catalog.
	endpointStations = "/stations"

	// endpointLines returns the full line catalog.
	endpointLines = "/lines"
)
