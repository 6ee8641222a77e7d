package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/unrolled/logger"
	"golang.org/x/sync/errgroup"

	"github.com/mvgsensor/mvg-go/api/handlers"
	"github.com/mvgsensor/mvg-go/internal/board"
	"github.com/mvgsensor/mvg-go/internal/config"
	"github.com/mvgsensor/mvg-go/internal/models"
	"github.com/mvgsensor/mvg-go/internal/sensor"
	"github.com/mvgsensor/mvg-go/pkg/mvg"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg := config.Load()

	flag.IntVar(&cfg.Port, "port", cfg.Port, "HTTP server port")
	flag.StringVar(&cfg.SensorsFile, "sensors-file", cfg.SensorsFile, "Sensor definitions JSON file")
	flag.DurationVar(&cfg.ScanInterval, "scan-interval", cfg.ScanInterval, "Sensor refresh interval")
	flag.Parse()

	client := mvg.New(mvg.Config{
		FIBBaseURL: cfg.FIBBaseURL,
		ZDMBaseURL: cfg.ZDMBaseURL,
		Logger:     log,
	})

	// Sensors are optional; without a sensors file the server still offers
	// the direct lookup endpoints.
	var manager *sensor.Manager
	if _, err := os.Stat(cfg.SensorsFile); err == nil {
		sensorCfgs, err := config.LoadSensors(cfg.SensorsFile)
		if err != nil {
			log.Error("failed to load sensors", "file", cfg.SensorsFile, "error", err)
			os.Exit(1)
		}

		sensors, err := buildSensors(context.Background(), client, sensorCfgs, log)
		if err != nil {
			log.Error("failed to set up sensors", "error", err)
			os.Exit(1)
		}

		manager = sensor.NewManager(sensors, cfg.ScanInterval, log)
		manager.Start()
		defer manager.Stop()
		log.Info("sensors started", "count", len(sensors), "interval", cfg.ScanInterval)
	} else {
		log.Info("no sensors file, serving lookup endpoints only", "file", cfg.SensorsFile)
	}

	r := mux.NewRouter()
	h := handlers.NewHandler(client, manager)
	h.RegisterRoutes(r)

	l := logger.New()
	r.Use(l.Handler)
	r.Use(corsMiddleware)

	srv := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}

// buildSensors resolves every configured station and wires up the sensors.
// Resolution runs concurrently; a station that cannot be resolved is a
// configuration error and fails startup.
func buildSensors(ctx context.Context, client *mvg.Client, cfgs []config.SensorConfig, log *slog.Logger) ([]*sensor.Sensor, error) {
	sensors := make([]*sensor.Sensor, len(cfgs))

	g, ctx := errgroup.WithContext(ctx)
	for i, sc := range cfgs {
		i, sc := i, sc
		g.Go(func() error {
			station, err := client.FindStation(ctx, sc.Station)
			if err != nil {
				return err
			}
			if station == nil {
				return fmt.Errorf("unknown station: %q", sc.Station)
			}

			sensors[i] = sensor.New(client, sensor.Config{
				Name:    sc.Name,
				Station: *station,
				Filter: board.Options{
					Destinations: sc.Destinations,
					Lines:        sc.Lines,
					TimeOffset:   sc.TimeOffset,
				},
				Products: models.TransportTypesByLabel(sc.Products),
				Limit:    sc.Number,
			}, log)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sensors, nil
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
