package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/XavierBriggs/Hermes/adapters/theoddsapi"
	"github.com/XavierBriggs/Hermes/internal/cache"
	"github.com/XavierBriggs/Hermes/internal/config"
	"github.com/XavierBriggs/Hermes/internal/handlers"
	"github.com/XavierBriggs/Hermes/pkg/contracts"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	fmt.Println("=== Hermes Odds Gateway v0 ===")

	// Load configuration from environment
	cfg := config.Load()

	if cfg.APIKey == "" {
		fmt.Println("✗ ODDS_API_KEY environment variable is required")
		os.Exit(1)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "hermes").Logger()

	// Select cache backend
	payloadCache, err := buildCache(cfg)
	if err != nil {
		fmt.Printf("✗ Failed to initialize %s cache: %v\n", cfg.CacheBackend, err)
		os.Exit(1)
	}

	fmt.Printf("✓ Cache backend: %s (TTL %v)\n", cfg.CacheBackend, cfg.CacheTTL)

	// Initialize The Odds API gateway client
	client := theoddsapi.NewClient(theoddsapi.Config{
		BaseURL: cfg.UpstreamURL,
		APIKey:  cfg.APIKey,
		Cache:   payloadCache,
		Logger:  logger,
	})

	fmt.Printf("✓ Upstream: %s\n", cfg.UpstreamURL)

	// Initialize handlers
	handler := handlers.NewHandler(client, logger)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(handlers.RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Routes
	r.Get("/health", handler.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/sports/{sport}/odds", handler.GetSportOdds)
		r.Get("/sports/{sport}/events/{eventID}/odds", handler.GetEventOdds)
		r.Get("/parlay", handler.PriceParlay)
	})

	// Start server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		fmt.Printf("✓ Hermes listening on %s\n", cfg.Port)
		fmt.Println("  Endpoints:")
		fmt.Println("    GET /health")
		fmt.Println("    GET /api/v1/sports/{sport}/odds")
		fmt.Println("    GET /api/v1/sports/{sport}/events/{eventID}/odds")
		fmt.Println("    GET /api/v1/parlay")

		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		fmt.Printf("✗ Server error: %v\n", err)
		os.Exit(1)

	case sig := <-shutdown:
		fmt.Printf("\n✓ Received signal %v, shutting down gracefully...\n", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			fmt.Printf("✗ Graceful shutdown failed: %v\n", err)
			if err := srv.Close(); err != nil {
				fmt.Printf("✗ Could not stop server: %v\n", err)
			}
		}
	}

	fmt.Println("✓ Hermes stopped")
}

// buildCache constructs the configured cache backend. Memory is the default;
// Redis is for deployments where several instances share one TTL window.
func buildCache(cfg config.Config) (contracts.Cache, error) {
	switch cfg.CacheBackend {
	case config.BackendRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}

		client := redis.NewClient(opts)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("ping redis: %w", err)
		}

		return cache.NewRedis(client, cfg.CacheTTL), nil

	default:
		return cache.NewMemory(cfg.CacheTTL), nil
	}
}
