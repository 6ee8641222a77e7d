package mvg

import (
	"context"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/mvgsensor/mvg-go/internal/models"
)

// Global station ids follow VDV Recommendation 432: "de:", a 2-5 digit
// region code and a station number ("de:09162:6"). Only the prefix is
// anchored; trailing characters past a valid prefix are accepted.
var stationIDPattern = regexp.MustCompile(`^de:[0-9]{2,5}:[0-9]+`)

// ValidStationID reports whether id is syntactically a global station id.
// No network access is performed.
func ValidStationID(id string) bool {
	return stationIDPattern.MatchString(id)
}

// StationIDExists checks a syntactically valid id against the list of ids
// the API actually knows. Ids that fail the format check are reported as
// non-existent without a request.
func (c *Client) StationIDExists(ctx context.Context, id string) (bool, error) {
	if !ValidStationID(id) {
		return false, nil
	}
	ids, err := c.StationIDs(ctx)
	if err != nil {
		return false, err
	}
	for _, known := range ids {
		if known == id {
			return true, nil
		}
	}
	return false, nil
}

// StationIDs retrieves all known global station ids, sorted ascending.
func (c *Client) StationIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := c.call(ctx, c.zdmBase, endpointStationIDs, nil, &ids); err != nil {
		return nil, err
	}
	sort.Strings(ids)
	return ids, nil
}

// Stations retrieves the full station catalog as the API returns it.
func (c *Client) Stations(ctx context.Context) ([]map[string]any, error) {
	var stations []map[string]any
	if err := c.call(ctx, c.zdmBase, endpointStations, nil, &stations); err != nil {
		return nil, err
	}
	return stations, nil
}

// Lines retrieves the full line catalog as the API returns it.
func (c *Client) Lines(ctx context.Context) ([]map[string]any, error) {
	var lines []map[string]any
	if err := c.call(ctx, c.zdmBase, endpointLines, nil, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// location is the raw shape of a single search or nearby result. Pointer
// fields distinguish an absent key from a zero value.
type location struct {
	Type      string   `json:"type"`
	GlobalID  string   `json:"globalId"`
	Name      *string  `json:"name"`
	Place     *string  `json:"place"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// stationFrom assembles a station from the matched entry and the entry
// supplying the coordinates, rejecting records with missing keys.
func stationFrom(id string, loc, coords location) (*models.Station, error) {
	switch {
	case id == "":
		return nil, apiErrorf("", "could not parse station data: missing globalId")
	case loc.Name == nil:
		return nil, apiErrorf("", "could not parse station data: missing name")
	case loc.Place == nil:
		return nil, apiErrorf("", "could not parse station data: missing place")
	case coords.Latitude == nil:
		return nil, apiErrorf("", "could not parse station data: missing latitude")
	case coords.Longitude == nil:
		return nil, apiErrorf("", "could not parse station data: missing longitude")
	}
	return &models.Station{
		ID:        id,
		Name:      *loc.Name,
		Place:     *loc.Place,
		Latitude:  *coords.Latitude,
		Longitude: *coords.Longitude,
	}, nil
}

// FindStation resolves a station by name and place ("Universität, München")
// or by global station id. It returns nil without error when nothing
// matches.
//
// When the query itself is a valid station id, the caller-supplied id wins
// over whatever id the search reports; name, place and coordinates still
// come from the first search result.
func (c *Client) FindStation(ctx context.Context, query string) (*models.Station, error) {
	query = strings.TrimSpace(query)

	args := url.Values{}
	args.Set("query", query)
	var result []location
	if err := c.call(ctx, c.fibBase, endpointLocations, args, &result); err != nil {
		return nil, err
	}

	if len(result) == 0 {
		return nil, nil
	}

	if ValidStationID(query) {
		return stationFrom(query, result[0], result[0])
	}

	for _, loc := range result {
		if loc.Type != "STATION" {
			continue
		}
		// Coordinates always come from the first result, even when a
		// later entry is the one that matched.
		return stationFrom(loc.GlobalID, loc, result[0])
	}

	return nil, nil
}

// FindNearby resolves the station closest to the given coordinates, or nil
// when the API reports none.
func (c *Client) FindNearby(ctx context.Context, latitude, longitude float64) (*models.Station, error) {
	args := url.Values{}
	args.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	args.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))

	var result []location
	if err := c.call(ctx, c.fibBase, endpointNearby, args, &result); err != nil {
		return nil, err
	}

	if len(result) == 0 {
		return nil, nil
	}

	first := result[0]
	return stationFrom(first.GlobalID, first, first)
}
