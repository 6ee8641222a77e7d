package mvg

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/mvgsensor/mvg-go/internal/models"
)

// DefaultDepartureLimit is what the API itself defaults to; it caps
// requests at 100.
const DefaultDepartureLimit = 10

// DepartureOptions narrows a departure request. The zero value asks for the
// default limit, no time offset and all products except SEV.
type DepartureOptions struct {
	// Limit is the maximum number of departures the API should return.
	Limit int
	// Offset shifts the window into the future, in minutes (e.g. the
	// walking time to the station).
	Offset int
	// Types restricts the result to the given products.
	Types []models.TransportType
}

// rawDeparture is the wire shape of a single departure record. Pointer
// fields distinguish an absent key from a zero value; platform and the stop
// point id are genuinely optional. Messages pass through opaque, the API
// ships both plain strings and objects there.
type rawDeparture struct {
	RealtimeDepartureTime *int64            `json:"realtimeDepartureTime"`
	PlannedDepartureTime  *int64            `json:"plannedDepartureTime"`
	Platform              string            `json:"platform"`
	Realtime              *bool             `json:"realtime"`
	Label                 *string           `json:"label"`
	Destination           *string           `json:"destination"`
	TransportType         *string           `json:"transportType"`
	Cancelled             *bool             `json:"cancelled"`
	Messages              []json.RawMessage `json:"messages"`
	StopPointGlobalID     string            `json:"stopPointGlobalId"`
}

// missing returns the name of the first required key absent from the
// record, or "".
func (d *rawDeparture) missing() string {
	switch {
	case d.RealtimeDepartureTime == nil:
		return "realtimeDepartureTime"
	case d.PlannedDepartureTime == nil:
		return "plannedDepartureTime"
	case d.Realtime == nil:
		return "realtime"
	case d.Label == nil:
		return "label"
	case d.Destination == nil:
		return "destination"
	case d.TransportType == nil:
		return "transportType"
	case d.Cancelled == nil:
		return "cancelled"
	case d.Messages == nil:
		return "messages"
	}
	return ""
}

// Departures retrieves the next departures for a station, normalized into
// unix-second timestamps and display metadata. Records come back in the
// order the API returned them.
//
// A station id that fails the format check returns ErrInvalidStationID
// before any request is issued.
func (c *Client) Departures(ctx context.Context, stationID string, opts DepartureOptions) ([]models.Departure, error) {
	stationID = strings.TrimSpace(stationID)
	if !ValidStationID(stationID) {
		return nil, invalidStationID(stationID)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultDepartureLimit
	}
	types := opts.Types
	if len(types) == 0 {
		types = models.DefaultTransportTypes()
	}
	tags := make([]string, len(types))
	for i, tt := range types {
		tags[i] = tt.Tag
	}

	args := url.Values{}
	args.Set("globalId", stationID)
	args.Set("limit", strconv.Itoa(limit))
	args.Set("offsetInMinutes", strconv.Itoa(opts.Offset))
	args.Set("transportTypes", strings.Join(tags, ","))

	var result []rawDeparture
	if err := c.call(ctx, c.fibBase, endpointDepartures, args, &result); err != nil {
		return nil, err
	}

	departures := make([]models.Departure, 0, len(result))
	for _, raw := range result {
		if field := raw.missing(); field != "" {
			return nil, apiErrorf("", "invalid departure data: missing %s", field)
		}
		tt, ok := models.TransportTypeByTag(*raw.TransportType)
		if !ok {
			return nil, apiErrorf("", "invalid departure data: unknown transport type %q", *raw.TransportType)
		}
		departures = append(departures, models.Departure{
			Time:              *raw.RealtimeDepartureTime / 1000,
			Planned:           *raw.PlannedDepartureTime / 1000,
			Platform:          raw.Platform,
			Realtime:          *raw.Realtime,
			Line:              *raw.Label,
			Destination:       *raw.Destination,
			Type:              tt.Label,
			Icon:              tt.Icon,
			Cancelled:         *raw.Cancelled,
			Messages:          raw.Messages,
			StopPointGlobalID: raw.StopPointGlobalID,
		})
	}
	return departures, nil
}
