package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Port)
	}
	if cfg.FIBBaseURL != "" || cfg.ZDMBaseURL != "" {
		t.Error("Expected empty base URL overrides by default")
	}
	if cfg.ScanInterval != 30*time.Second {
		t.Errorf("Expected 30s scan interval, got %s", cfg.ScanInterval)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("MVG_PORT", "9090")
	t.Setenv("MVG_FIB_URL", "http://localhost:1234")
	t.Setenv("MVG_SCAN_INTERVAL", "1m")

	cfg := Load()

	if cfg.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.Port)
	}
	if cfg.FIBBaseURL != "http://localhost:1234" {
		t.Errorf("Expected overridden FIB URL, got %s", cfg.FIBBaseURL)
	}
	if cfg.ScanInterval != time.Minute {
		t.Errorf("Expected 1m scan interval, got %s", cfg.ScanInterval)
	}
}

func TestLoadSensors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sensors.json")
	content := `[
		{
			"station": "Universität, München",
			"destinations": ["Fürstenried West"],
			"lines": ["U3", "U6"],
			"products": ["U-Bahn"],
			"timeoffset": 5,
			"number": 8
		},
		{"station": "de:09162:6"}
	]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	sensors, err := LoadSensors(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(sensors) != 2 {
		t.Fatalf("Expected 2 sensors, got %d", len(sensors))
	}

	first := sensors[0]
	if first.Station != "Universität, München" || first.Number != 8 || first.TimeOffset != 5 {
		t.Errorf("Unexpected sensor: %+v", first)
	}
	if len(first.Lines) != 2 {
		t.Errorf("Expected 2 lines, got %v", first.Lines)
	}

	// defaults fill in
	if sensors[1].Number != 5 {
		t.Errorf("Expected default number 5, got %d", sensors[1].Number)
	}
}

func TestLoadSensorsErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadSensors(filepath.Join(t.TempDir(), "missing.json")); err == nil {
			t.Error("Expected an error for a missing file")
		}
	})

	t.Run("missing station", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sensors.json")
		if err := os.WriteFile(path, []byte(`[{"name": "unnamed"}]`), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadSensors(path); err == nil {
			t.Error("Expected an error for a sensor without a station")
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sensors.json")
		if err := os.WriteFile(path, []byte(`{not json`), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadSensors(path); err == nil {
			t.Error("Expected a parse error")
		}
	})
}
