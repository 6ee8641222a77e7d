// Package sensor turns a station-bound departure board into a periodically
// refreshed sensor: a filtered departure list, the current service
// messages, and a single state value (minutes until the next departure).
package sensor

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/mvgsensor/mvg-go/internal/board"
	"github.com/mvgsensor/mvg-go/internal/models"
	"github.com/mvgsensor/mvg-go/pkg/mvg"
)

// DefaultLimit is how many departures a sensor requests per refresh.
const DefaultLimit = 5

// NoneIcon is shown while the board is empty.
const NoneIcon = "mdi:clock"

// Config describes one sensor.
type Config struct {
	// Name of the sensor; defaults to the station name.
	Name string
	// Station the sensor watches.
	Station models.Station
	// Filter applied to every refresh.
	Filter board.Options
	// Products restricts the request; nil means all except SEV.
	Products []models.TransportType
	// Limit is the departure count requested upstream.
	Limit int
}

// Sensor holds the latest refresh result behind a read lock so HTTP
// handlers can read while a refresh is in flight.
type Sensor struct {
	name     string
	station  models.Station
	api      mvg.API
	filter   board.Options
	products []models.TransportType
	limit    int
	logger   *slog.Logger

	mu         sync.RWMutex
	entries    []models.BoardEntry
	messages   []models.Message
	lastUpdate time.Time
}

// New creates a sensor over the given client.
func New(api mvg.API, cfg Config, logger *slog.Logger) *Sensor {
	if cfg.Name == "" {
		cfg.Name = cfg.Station.Name
	}
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Sensor{
		name:     cfg.Name,
		station:  cfg.Station,
		api:      api,
		filter:   cfg.Filter,
		products: cfg.Products,
		limit:    cfg.Limit,
		logger:   logger,
	}
}

// Name returns the sensor name.
func (s *Sensor) Name() string {
	return s.name
}

// Station returns the watched station.
func (s *Sensor) Station() models.Station {
	return s.station
}

// Refresh fetches departures and service messages once and replaces the
// snapshot. A station id the API client refuses degrades to an empty board
// with a warning instead of failing the poll cycle; every other error
// propagates to the caller.
func (s *Sensor) Refresh(ctx context.Context) error {
	departures, err := s.api.Departures(ctx, s.station.ID, mvg.DepartureOptions{
		Limit:  s.limit,
		Offset: s.filter.TimeOffset,
		Types:  s.products,
	})
	if err != nil {
		if errors.Is(err, mvg.ErrInvalidStationID) {
			s.logger.Warn("returned data not understood", "sensor", s.name, "error", err)
			s.replace(nil, nil)
			return nil
		}
		return err
	}

	// Publish the board before the messages call so a messages failure
	// does not discard a fresh departure list.
	entries := board.Filter(departures, s.filter, time.Now())
	s.mu.Lock()
	s.entries = entries
	s.lastUpdate = time.Now()
	s.mu.Unlock()

	messages, err := s.api.Messages(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.messages = messages
	s.mu.Unlock()
	return nil
}

func (s *Sensor) replace(entries []models.BoardEntry, messages []models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = entries
	s.messages = messages
	s.lastUpdate = time.Now()
}

// Entries returns the filtered departures of the last refresh.
func (s *Sensor) Entries() []models.BoardEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]models.BoardEntry, len(s.entries))
	copy(result, s.entries)
	return result
}

// Messages returns the service messages of the last refresh.
func (s *Sensor) Messages() []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]models.Message, len(s.messages))
	copy(result, s.messages)
	return result
}

// State returns the minutes until the next departure. ok is false while the
// board is empty.
func (s *Sensor) State() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.entries) == 0 {
		return 0, false
	}
	return s.entries[0].TimeInMins, true
}

// Icon returns the icon of the next departure, or the idle clock.
func (s *Sensor) Icon() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.entries) == 0 {
		return NoneIcon
	}
	return s.entries[0].Icon
}

// LastUpdate returns when the snapshot was last replaced.
func (s *Sensor) LastUpdate() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdate
}

// Snapshot is the externally visible state of a sensor.
type Snapshot struct {
	Name       string              `json:"name"`
	Station    models.Station      `json:"station"`
	State      *int                `json:"state"`
	Icon       string              `json:"icon"`
	Departures []models.BoardEntry `json:"departures"`
	Messages   []models.Message    `json:"messages"`
	LastUpdate time.Time           `json:"last_update"`
}

// Snapshot returns a consistent copy of the sensor state.
func (s *Sensor) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Name:       s.name,
		Station:    s.station,
		Icon:       NoneIcon,
		Departures: make([]models.BoardEntry, len(s.entries)),
		Messages:   make([]models.Message, len(s.messages)),
		LastUpdate: s.lastUpdate,
	}
	copy(snap.Departures, s.entries)
	copy(snap.Messages, s.messages)
	if len(s.entries) > 0 {
		mins := s.entries[0].TimeInMins
		snap.State = &mins
		snap.Icon = s.entries[0].Icon
	}
	return snap
}
