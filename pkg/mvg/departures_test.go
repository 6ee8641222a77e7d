package mvg

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mvgsensor/mvg-go/internal/models"
)

const departuresPayload = `[
	{
		"realtimeDepartureTime": 1668524580000,
		"plannedDepartureTime": 1668524460000,
		"platform": "2",
		"realtime": true,
		"label": "U3",
		"destination": "Fürstenried West",
		"transportType": "UBAHN",
		"cancelled": false,
		"messages": [],
		"stopPointGlobalId": "de:09162:6:51:52"
	},
	{
		"realtimeDepartureTime": 1668524700000,
		"plannedDepartureTime": 1668524700000,
		"realtime": false,
		"label": "54",
		"destination": "Münchner Freiheit",
		"transportType": "BUS",
		"cancelled": true,
		"messages": ["Fällt aus"],
		"stopPointGlobalId": "de:09162:6:1:1"
	}
]`

func TestDepartures(t *testing.T) {
	t.Run("normalizes millisecond timestamps", func(t *testing.T) {
		server := httptest.NewServer(jsonHandler(t, departuresPayload))
		defer server.Close()

		deps, err := newTestClient(server.URL, server.URL).Departures(context.Background(), "de:09162:6", DepartureOptions{})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(deps) != 2 {
			t.Fatalf("Expected 2 departures, got %d", len(deps))
		}

		first := deps[0]
		if first.Time != 1668524580 {
			t.Errorf("Expected time 1668524580, got %d", first.Time)
		}
		if first.Planned != 1668524460 {
			t.Errorf("Expected planned 1668524460, got %d", first.Planned)
		}
		if first.Line != "U3" || first.Destination != "Fürstenried West" {
			t.Errorf("Unexpected line/destination: %s/%s", first.Line, first.Destination)
		}
		if first.Type != "U-Bahn" || first.Icon != "mdi:subway" {
			t.Errorf("Unexpected type metadata: %s/%s", first.Type, first.Icon)
		}
		if first.Platform != "2" || !first.Realtime {
			t.Errorf("Unexpected platform/realtime: %q/%v", first.Platform, first.Realtime)
		}

		// order of the response is preserved
		second := deps[1]
		if second.Line != "54" || !second.Cancelled {
			t.Errorf("Unexpected second departure: %+v", second)
		}
		if second.Platform != "" {
			t.Errorf("Expected empty platform, got %q", second.Platform)
		}
	})

	t.Run("sends defaults without SEV", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if q.Get("globalId") != "de:09162:6" {
				t.Errorf("Expected globalId de:09162:6, got %q", q.Get("globalId"))
			}
			if q.Get("limit") != "10" {
				t.Errorf("Expected default limit 10, got %q", q.Get("limit"))
			}
			if q.Get("offsetInMinutes") != "0" {
				t.Errorf("Expected offsetInMinutes 0, got %q", q.Get("offsetInMinutes"))
			}
			types := q.Get("transportTypes")
			if strings.Contains(types, "SEV") {
				t.Errorf("Expected SEV to be excluded, got %q", types)
			}
			if !strings.Contains(types, "UBAHN") || !strings.Contains(types, "SCHIFF") {
				t.Errorf("Expected the remaining products, got %q", types)
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[]`))
		}))
		defer server.Close()

		if _, err := newTestClient(server.URL, server.URL).Departures(context.Background(), "de:09162:6", DepartureOptions{}); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	})

	t.Run("passes explicit options through", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if q.Get("limit") != "3" || q.Get("offsetInMinutes") != "15" {
				t.Errorf("Unexpected limit/offset: %q/%q", q.Get("limit"), q.Get("offsetInMinutes"))
			}
			if q.Get("transportTypes") != "UBAHN,TRAM" {
				t.Errorf("Expected UBAHN,TRAM, got %q", q.Get("transportTypes"))
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[]`))
		}))
		defer server.Close()

		opts := DepartureOptions{
			Limit:  3,
			Offset: 15,
			Types:  []models.TransportType{models.UBahn, models.Tram},
		}
		if _, err := newTestClient(server.URL, server.URL).Departures(context.Background(), "de:09162:6", opts); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	})

	t.Run("rejects a malformed id before any request", func(t *testing.T) {
		requests := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
		}))
		defer server.Close()

		_, err := newTestClient(server.URL, server.URL).Departures(context.Background(), "Hauptbahnhof", DepartureOptions{})
		if !errors.Is(err, ErrInvalidStationID) {
			t.Fatalf("Expected ErrInvalidStationID, got %v", err)
		}
		if requests != 0 {
			t.Errorf("Expected no requests, got %d", requests)
		}
	})

	t.Run("unknown transport type is an API error", func(t *testing.T) {
		server := httptest.NewServer(jsonHandler(t, `[
			{"realtimeDepartureTime": 1668524580000, "plannedDepartureTime": 1668524460000, "realtime": true, "label": "X1", "destination": "Nirgendwo", "transportType": "ZEPPELIN", "cancelled": false, "messages": [], "stopPointGlobalId": "de:09162:6:1:1"}
		]`))
		defer server.Close()

		_, err := newTestClient(server.URL, server.URL).Departures(context.Background(), "de:09162:6", DepartureOptions{})
		assertAPIError(t, err)
	})

	t.Run("record with missing keys is an API error", func(t *testing.T) {
		server := httptest.NewServer(jsonHandler(t, `[
			{"transportType": "UBAHN", "stopPointGlobalId": "de:09162:6:1:1"}
		]`))
		defer server.Close()

		deps, err := newTestClient(server.URL, server.URL).Departures(context.Background(), "de:09162:6", DepartureOptions{})
		assertAPIError(t, err)
		if deps != nil {
			t.Errorf("Expected no departures, got %+v", deps)
		}
		if !strings.Contains(err.Error(), "missing realtimeDepartureTime") {
			t.Errorf("Expected the missing key to be named, got %v", err)
		}
	})

	t.Run("message objects pass through", func(t *testing.T) {
		server := httptest.NewServer(jsonHandler(t, `[
			{"realtimeDepartureTime": 1668524580000, "plannedDepartureTime": 1668524460000, "realtime": true, "label": "U3", "destination": "Fürstenried West", "transportType": "UBAHN", "cancelled": false, "messages": [{"type": "INCIDENT", "text": "Aufzug außer Betrieb"}], "stopPointGlobalId": "de:09162:6:1:1"}
		]`))
		defer server.Close()

		deps, err := newTestClient(server.URL, server.URL).Departures(context.Background(), "de:09162:6", DepartureOptions{})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(deps) != 1 || len(deps[0].Messages) != 1 {
			t.Fatalf("Expected one departure with one message, got %+v", deps)
		}
		if !strings.Contains(string(deps[0].Messages[0]), "Aufzug") {
			t.Errorf("Expected the message verbatim, got %s", deps[0].Messages[0])
		}
	})
}

func TestBoard(t *testing.T) {
	t.Run("binds a station id", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("globalId"); got != "de:09162:70" {
				t.Errorf("Expected bound id de:09162:70, got %q", got)
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[]`))
		}))
		defer server.Close()

		board, err := newTestClient(server.URL, server.URL).Board(" de:09162:70 ")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if board.StationID() != "de:09162:70" {
			t.Errorf("Expected trimmed bound id, got %q", board.StationID())
		}
		if _, err := board.Departures(context.Background(), DepartureOptions{}); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	})

	t.Run("rejects a malformed id", func(t *testing.T) {
		_, err := New(DefaultConfig()).Board("not-a-station")
		if !errors.Is(err, ErrInvalidStationID) {
			t.Fatalf("Expected ErrInvalidStationID, got %v", err)
		}
	})
}
