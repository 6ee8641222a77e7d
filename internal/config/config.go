package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds service configuration from environment variables.
type Config struct {
	Port         int
	FIBBaseURL   string // empty = production MVG live API
	ZDMBaseURL   string // empty = production MVG master data API
	SensorsFile  string
	ScanInterval time.Duration
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Port:         envInt("MVG_PORT", 8080),
		FIBBaseURL:   envStr("MVG_FIB_URL", ""),
		ZDMBaseURL:   envStr("MVG_ZDM_URL", ""),
		SensorsFile:  envStr("MVG_SENSORS_FILE", "./sensors.json"),
		ScanInterval: envDuration("MVG_SCAN_INTERVAL", 30*time.Second),
	}
}

// SensorConfig describes one departure sensor in the sensors file.
type SensorConfig struct {
	// Station by name/place ("Universität, München") or global station id.
	Station string `json:"station"`
	// Name overrides the sensor name; defaults to the resolved station name.
	Name string `json:"name,omitempty"`
	// Destinations and Lines filter the board; empty means no filter.
	Destinations []string `json:"destinations,omitempty"`
	Lines        []string `json:"lines,omitempty"`
	// Products filters by display label ("U-Bahn", "Tram").
	Products []string `json:"products,omitempty"`
	// TimeOffset hides departures leaving in fewer than this many minutes.
	TimeOffset int `json:"timeoffset,omitempty"`
	// Number of departures requested per refresh, defaults to 5.
	Number int `json:"number,omitempty"`
}

// LoadSensors reads the sensor definitions from a JSON file.
func LoadSensors(path string) ([]SensorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sensors file: %w", err)
	}

	var sensors []SensorConfig
	if err := json.Unmarshal(data, &sensors); err != nil {
		return nil, fmt.Errorf("failed to parse sensors file: %w", err)
	}

	for i := range sensors {
		if sensors[i].Station == "" {
			return nil, fmt.Errorf("sensor %d: station is required", i)
		}
		if sensors[i].Number <= 0 {
			sensors[i].Number = 5
		}
		if sensors[i].TimeOffset < 0 {
			return nil, fmt.Errorf("sensor %d: timeoffset must not be negative", i)
		}
	}
	return sensors, nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
