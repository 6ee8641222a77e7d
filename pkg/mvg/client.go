package mvg

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mvgsensor/mvg-go/internal/models"
)

// API defines the operations the MVG client exposes
// Kept as an interface so sensors and handlers can be tested against mocks
type API interface {
	FindStation(ctx context.Context, query string) (*models.Station, error)
	FindNearby(ctx context.Context, latitude, longitude float64) (*models.Station, error)
	Departures(ctx context.Context, stationID string, opts DepartureOptions) ([]models.Departure, error)
	Messages(ctx context.Context) ([]models.Message, error)

	StationIDs(ctx context.Context) ([]string, error)
	Stations(ctx context.Context) ([]map[string]any, error)
	Lines(ctx context.Context) ([]map[string]any, error)
}

// Config holds configuration for the MVG client
// Base URLs are overridable for tests; zero values fall back to the
// production endpoints
type Config struct {
	FIBBaseURL string
	ZDMBaseURL string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// DefaultConfig returns default configuration against the public MVG API
func DefaultConfig() Config {
	return Config{
		FIBBaseURL: DefaultFIBBaseURL,
		ZDMBaseURL: DefaultZDMBaseURL,
	}
}

// Client talks to the MVG web API. It is stateless and safe for concurrent
// use; every call issues exactly one HTTP request.
type Client struct {
	fibBase string
	zdmBase string
	http    *http.Client
	logger  *slog.Logger
}

var _ API = (*Client)(nil)

// New creates an MVG client from the given configuration.
func New(cfg Config) *Client {
	if cfg.FIBBaseURL == "" {
		cfg.FIBBaseURL = DefaultFIBBaseURL
	}
	if cfg.ZDMBaseURL == "" {
		cfg.ZDMBaseURL = DefaultZDMBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Client{
		fibBase: cfg.FIBBaseURL,
		zdmBase: cfg.ZDMBaseURL,
		http:    cfg.HTTPClient,
		logger:  cfg.Logger,
	}
}

// Board binds the client to a single station for repeated departure calls.
// The id must be syntactically valid; existence is not checked here.
func (c *Client) Board(stationID string) (*Board, error) {
	stationID = strings.TrimSpace(stationID)
	if !ValidStationID(stationID) {
		return nil, invalidStationID(stationID)
	}
	return &Board{client: c, stationID: stationID}, nil
}

// Board is a station-bound view of the client, the one piece of state a
// periodically polled caller holds on to.
type Board struct {
	client    *Client
	stationID string
}

// StationID returns the bound global station id.
func (b *Board) StationID() string {
	return b.stationID
}

// Departures retrieves the next departures for the bound station.
func (b *Board) Departures(ctx context.Context, opts DepartureOptions) ([]models.Departure, error) {
	return b.client.Departures(ctx, b.stationID, opts)
}
