package sensor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultScanInterval matches the 30 second refresh a departure display
// typically runs at.
const DefaultScanInterval = 30 * time.Second

// Manager refreshes a set of sensors on a fixed interval.
type Manager struct {
	sensors  []*Sensor
	interval time.Duration
	logger   *slog.Logger
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewManager creates a manager for the given sensors.
func NewManager(sensors []*Sensor, interval time.Duration, logger *slog.Logger) *Manager {
	if interval <= 0 {
		interval = DefaultScanInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		sensors:  sensors,
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
}

// Sensors returns the managed sensors.
func (m *Manager) Sensors() []*Sensor {
	return m.sensors
}

// Sensor returns the sensor with the given name, or nil.
func (m *Manager) Sensor(name string) *Sensor {
	for _, s := range m.sensors {
		if s.Name() == name {
			return s
		}
	}
	return nil
}

// Start begins the refresh loop.
func (m *Manager) Start() {
	m.wg.Add(1)
	go m.updateLoop()
}

// Stop stops the refresh loop and waits for it to finish.
func (m *Manager) Stop() {
	close(m.stopCh)
	m.wg.Wait()
}

func (m *Manager) updateLoop() {
	defer m.wg.Done()

	// Initial refresh so the first poll interval is not served empty.
	if err := m.RefreshAll(context.Background()); err != nil {
		m.logger.Warn("initial refresh failed", "error", err)
	}

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := m.RefreshAll(context.Background()); err != nil {
				m.logger.Warn("refresh failed, skipping cycle", "error", err)
			}
		case <-m.stopCh:
			return
		}
	}
}

// RefreshAll refreshes every sensor concurrently. Sensors are independent:
// one failing does not cancel the others; the first error is returned after
// all refreshes finished.
func (m *Manager) RefreshAll(ctx context.Context) error {
	var g errgroup.Group
	for _, s := range m.sensors {
		s := s
		g.Go(func() error {
			return s.Refresh(ctx)
		})
	}
	return g.Wait()
}
