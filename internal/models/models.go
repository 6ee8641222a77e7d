package models

import "encoding/json"

// TransportType is one of the fixed vehicle-mode categories the MVG API
// knows about. The tag is what the API speaks; label and icon are display
// metadata for frontends.
type TransportType struct {
	Tag   string `json:"tag"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// The full MVG product catalog. SEV is the rail-replacement bus service.
var (
	Bahn        = TransportType{Tag: "BAHN", Label: "Bahn", Icon: "mdi:train"}
	SBahn       = TransportType{Tag: "SBAHN", Label: "S-Bahn", Icon: "mdi:subway-variant"}
	UBahn       = TransportType{Tag: "UBAHN", Label: "U-Bahn", Icon: "mdi:subway"}
	Tram        = TransportType{Tag: "TRAM", Label: "Tram", Icon: "mdi:tram"}
	Bus         = TransportType{Tag: "BUS", Label: "Bus", Icon: "mdi:bus"}
	RegionalBus = TransportType{Tag: "REGIONAL_BUS", Label: "Regionalbus", Icon: "mdi:bus"}
	SEV         = TransportType{Tag: "SEV", Label: "SEV", Icon: "mdi:taxi"}
	Schiff      = TransportType{Tag: "SCHIFF", Label: "Schiff", Icon: "mdi:ferry"}
)

// AllTransportTypes lists every product in catalog order.
var AllTransportTypes = []TransportType{
	Bahn, SBahn, UBahn, Tram, Bus, RegionalBus, SEV, Schiff,
}

var transportTypesByTag = func() map[string]TransportType {
	m := make(map[string]TransportType, len(AllTransportTypes))
	for _, tt := range AllTransportTypes {
		m[tt.Tag] = tt
	}
	return m
}()

// TransportTypeByTag looks up a product by its API tag.
func TransportTypeByTag(tag string) (TransportType, bool) {
	tt, ok := transportTypesByTag[tag]
	return tt, ok
}

// DefaultTransportTypes returns every product except SEV, the default
// filter set for departure requests.
func DefaultTransportTypes() []TransportType {
	result := make([]TransportType, 0, len(AllTransportTypes)-1)
	for _, tt := range AllTransportTypes {
		if tt.Tag == SEV.Tag {
			continue
		}
		result = append(result, tt)
	}
	return result
}

// TransportTypesByLabel resolves display labels ("U-Bahn", "Tram") back to
// products. Unknown labels are ignored; an empty label list yields nil.
func TransportTypesByLabel(labels []string) []TransportType {
	var result []TransportType
	for _, tt := range AllTransportTypes {
		for _, label := range labels {
			if tt.Label == label {
				result = append(result, tt)
				break
			}
		}
	}
	return result
}

// Station is a single stop resolved by name, id or coordinates. The ID is a
// VDV-432 global stop identifier ("de:09162:6").
type Station struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Place     string  `json:"place"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Message is a service message published by the operator.
type Message struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	Lines       []string `json:"lines,omitempty"`
	Publication int64    `json:"publication,omitempty"`
	ValidFrom   int64    `json:"validFrom,omitempty"`
	ValidTo     int64    `json:"validTo,omitempty"`
}

// Departure is a normalized departure record. Time and Planned are unix
// seconds, derived from the API's millisecond timestamps. Messages carry
// the API's per-departure notices verbatim, their shape varies.
type Departure struct {
	Time              int64             `json:"time"`
	Planned           int64             `json:"planned"`
	Platform          string            `json:"platform,omitempty"`
	Realtime          bool              `json:"realtime"`
	Line              string            `json:"line"`
	Destination       string            `json:"destination"`
	Type              string            `json:"type"`
	Icon              string            `json:"icon"`
	Cancelled         bool              `json:"cancelled"`
	Messages          []json.RawMessage `json:"messages"`
	StopPointGlobalID string            `json:"stopPointGlobalId"`
}

// BoardEntry is the reduced record a departure board displays after
// filtering: what is leaving, where to, and in how many minutes.
type BoardEntry struct {
	Destination string `json:"destination"`
	Line        string `json:"line"`
	Type        string `json:"type"`
	Cancelled   bool   `json:"cancelled"`
	Icon        string `json:"icon"`
	Platform    string `json:"platform,omitempty"`
	TimeInMins  int    `json:"time_in_mins"`
}
