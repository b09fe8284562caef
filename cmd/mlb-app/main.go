package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/nwk5097-a11y/mlb-app/internal/cache"
	"github.com/nwk5097-a11y/mlb-app/internal/config"
	"github.com/nwk5097-a11y/mlb-app/internal/handlers"
	"github.com/nwk5097-a11y/mlb-app/internal/metrics"
	"github.com/nwk5097-a11y/mlb-app/internal/poller"
	"github.com/nwk5097-a11y/mlb-app/internal/providers/mlb"
	"github.com/nwk5097-a11y/mlb-app/internal/publisher"
	"github.com/nwk5097-a11y/mlb-app/internal/registry"
	"github.com/nwk5097-a11y/mlb-app/internal/service"
	"github.com/nwk5097-a11y/mlb-app/internal/sports/baseball_mlb"
	"github.com/nwk5097-a11y/mlb-app/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func main() {
	log.Println("Starting MLB App...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize Redis client
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}

	redisClient := redis.NewClient(opts)
	defer redisClient.Close()

	// Test Redis connection
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Connected to Redis")

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(reg)

	// Initialize components
	module := baseball_mlb.New()
	players := registry.New(cfg.Players)
	mlbClient := mlb.New(cfg.MLB.BaseURL, cfg.MLB.Timeout, appMetrics)
	cacheWriter := cache.NewRedisWriter(redisClient, cfg.Redis.CacheTTL)
	streamPublisher := publisher.NewStreamPublisher(redisClient, module.GetSportKey())

	svcOpts := []service.Option{
		service.WithPublisher(streamPublisher),
		service.WithMetrics(appMetrics),
	}

	// Optional snapshot archive
	if cfg.Postgres.DSN != "" {
		archive, err := store.NewPostgres(context.Background(), cfg.Postgres.DSN)
		if err != nil {
			log.Fatalf("Failed to connect to Postgres: %v", err)
		}
		defer archive.Close()

		if err := archive.Migrate(context.Background()); err != nil {
			log.Fatalf("Failed to migrate archive: %v", err)
		}
		log.Println("Connected to Postgres archive")
		svcOpts = append(svcOpts, service.WithArchive(archive))
	}

	trends := service.New(players, module, mlbClient, cacheWriter, svcOpts...)

	// Setup router
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	handlers.NewHandler(trends).Routes(r)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	if cfg.Polling.Enabled {
		orch := poller.NewOrchestrator(players, module, trends, cfg.Polling.Seasons)
		wg.Add(1)
		go func() {
			defer wg.Done()
			orch.Start(ctx)
		}()
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Printf("Listening on %s (%d players, seasons %v)", cfg.Server.Addr, len(cfg.Players), cfg.Polling.Seasons)
		serverErrors <- srv.ListenAndServe()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Server error: %v", err)
		}
	case sig := <-sigChan:
		log.Printf("Received shutdown signal: %v", sig)
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
		srv.Close()
	}

	wg.Wait()
	log.Println("MLB App stopped")
}
