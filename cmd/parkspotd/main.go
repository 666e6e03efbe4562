package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"parkspot-backend/config"
	"parkspot-backend/internal/api"
	"parkspot-backend/internal/db"
	"parkspot-backend/internal/notification"
	"parkspot-backend/internal/overpass"
	"parkspot-backend/internal/points"
	"parkspot-backend/internal/report"
	"parkspot-backend/internal/streets"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "parkspot-backend ", log.LstdFlags)

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	// Initialize database
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Report persistence sink
	sink := report.NewGormSink(gormDB)

	// Vacancy push notifications are optional: without VAPID keys the service
	// runs, it just never pushes.
	webpushOptions := webpush.Options{
		VAPIDPublicKey:  cfg.Push.PublicKey,
		VAPIDPrivateKey: cfg.Push.PrivateKey,
		Subscriber:      cfg.Push.Subject,
		TTL:             cfg.Push.TTL,
	}
	var notifier points.VacancyNotifier
	if cfg.Push.PublicKey != "" && cfg.Push.PrivateKey != "" {
		workerPool := notification.NewWorkerPool(cfg.WorkerPool.Size, gormDB, &webpushOptions)
		workerPool.Start(ctx)
		notifier = workerPool
		logger.Printf("notification worker pool started (size %d)", cfg.WorkerPool.Size)
	} else {
		logger.Println("VAPID keys not configured; vacancy notifications disabled")
	}

	// Park point store with its background expiry sweeper
	pointStore := points.NewStore(sink, notifier)
	go pointStore.Run(ctx, cfg.Sweep.Interval)

	// Street availability estimator over the Overpass road-data fetcher
	fetcher := overpass.NewClient(cfg.Overpass)
	estimator := streets.NewEstimator(fetcher, cfg.Estimator.CacheRadiusM, cfg.Estimator.CacheTTL)
	if cfg.Estimator.PlaceholdersEnabled {
		seed := cfg.Estimator.PlaceholderSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng := rand.New(rand.NewSource(seed))
		estimator.OnRefresh = func(segments []streets.Segment) {
			pointStore.AddPlaceholders(streets.SamplePlaceholderPoints(segments, rng))
		}
	}

	// Initialize router
	router := api.NewRouter(cfg, gormDB, pointStore, estimator, sink, &webpushOptions)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	// Create a deadline to wait for.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
