package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/mvgsensor/mvg-go/internal/models"
	"github.com/mvgsensor/mvg-go/internal/sensor"
	"github.com/mvgsensor/mvg-go/pkg/mvg"
)

// Handler handles HTTP requests
type Handler struct {
	client  mvg.API
	manager *sensor.Manager
}

// NewHandler creates a new HTTP handler
func NewHandler(client mvg.API, manager *sensor.Manager) *Handler {
	return &Handler{client: client, manager: manager}
}

// RegisterRoutes registers all routes
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.handleIndex).Methods("GET")
	r.HandleFunc("/stations", h.handleStationSearch).Methods("GET")
	r.HandleFunc("/stations/nearby", h.handleNearby).Methods("GET")
	r.HandleFunc("/departures/{id}", h.handleDepartures).Methods("GET")
	r.HandleFunc("/messages", h.handleMessages).Methods("GET")
	r.HandleFunc("/sensors", h.handleSensors).Methods("GET")
	r.HandleFunc("/sensors/{name}", h.handleSensor).Methods("GET")
}

// Response wraps API responses
type Response struct {
	Data    interface{} `json:"data"`
	Updated string      `json:"updated,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"title":  "mvg-go",
		"readme": "Visit https://github.com/mvgsensor/mvg-go for more info",
	}
	h.writeJSON(w, response)
}

func (h *Handler) handleStationSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if strings.TrimSpace(query) == "" {
		h.writeError(w, "Missing query parameter", http.StatusBadRequest)
		return
	}

	station, err := h.client.FindStation(r.Context(), query)
	if err != nil {
		h.writeUpstreamError(w, err)
		return
	}
	if station == nil {
		h.writeError(w, "No station found", http.StatusNotFound)
		return
	}

	h.writeJSON(w, Response{Data: station})
}

func (h *Handler) handleNearby(w http.ResponseWriter, r *http.Request) {
	latStr := r.URL.Query().Get("lat")
	lonStr := r.URL.Query().Get("lon")

	if latStr == "" || lonStr == "" {
		h.writeError(w, "Missing lat/lon parameter", http.StatusBadRequest)
		return
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		h.writeError(w, "Invalid lat parameter", http.StatusBadRequest)
		return
	}

	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		h.writeError(w, "Invalid lon parameter", http.StatusBadRequest)
		return
	}

	station, err := h.client.FindNearby(r.Context(), lat, lon)
	if err != nil {
		h.writeUpstreamError(w, err)
		return
	}
	if station == nil {
		h.writeError(w, "No station found", http.StatusNotFound)
		return
	}

	h.writeJSON(w, Response{Data: station})
}

func (h *Handler) handleDepartures(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	opts := mvg.DepartureOptions{}
	q := r.URL.Query()
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			h.writeError(w, "Invalid limit parameter", http.StatusBadRequest)
			return
		}
		opts.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			h.writeError(w, "Invalid offset parameter", http.StatusBadRequest)
			return
		}
		opts.Offset = n
	}
	if v := q.Get("types"); v != "" {
		for _, tag := range strings.Split(v, ",") {
			tt, ok := models.TransportTypeByTag(strings.TrimSpace(tag))
			if !ok {
				h.writeError(w, "Unknown transport type: "+tag, http.StatusBadRequest)
				return
			}
			opts.Types = append(opts.Types, tt)
		}
	}

	departures, err := h.client.Departures(r.Context(), id, opts)
	if err != nil {
		h.writeUpstreamError(w, err)
		return
	}

	h.writeJSON(w, Response{Data: departures})
}

func (h *Handler) handleMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.client.Messages(r.Context())
	if err != nil {
		h.writeUpstreamError(w, err)
		return
	}
	h.writeJSON(w, Response{Data: messages})
}

func (h *Handler) handleSensors(w http.ResponseWriter, r *http.Request) {
	if h.manager == nil {
		h.writeError(w, "No sensors configured", http.StatusNotFound)
		return
	}

	sensors := h.manager.Sensors()
	data := make([]sensor.Snapshot, len(sensors))
	var lastUpdate time.Time
	for i, s := range sensors {
		data[i] = s.Snapshot()
		if data[i].LastUpdate.After(lastUpdate) {
			lastUpdate = data[i].LastUpdate
		}
	}

	response := Response{Data: data}
	if !lastUpdate.IsZero() {
		response.Updated = lastUpdate.Format(time.RFC3339)
	}
	h.writeJSON(w, response)
}

func (h *Handler) handleSensor(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	if h.manager == nil {
		h.writeError(w, "No sensors configured", http.StatusNotFound)
		return
	}
	s := h.manager.Sensor(name)
	if s == nil {
		h.writeError(w, "Unknown sensor: "+name, http.StatusNotFound)
		return
	}

	snap := s.Snapshot()
	response := Response{Data: snap}
	if !snap.LastUpdate.IsZero() {
		response.Updated = snap.LastUpdate.Format(time.RFC3339)
	}
	h.writeJSON(w, response)
}

// writeUpstreamError maps client errors: a malformed station id is the
// caller's fault, everything else is an upstream failure.
func (h *Handler) writeUpstreamError(w http.ResponseWriter, err error) {
	if errors.Is(err, mvg.ErrInvalidStationID) {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.writeError(w, err.Error(), http.StatusBadGateway)
}

func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.writeError(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
