package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/zoobzio/clockz"
	_ "modernc.org/sqlite"

	"organ-transport-service/internal/adapters/cache"
	"organ-transport-service/internal/adapters/repositories"
	"organ-transport-service/internal/adapters/routing"
	"organ-transport-service/internal/api"
	"organ-transport-service/internal/config"
	"organ-transport-service/internal/domain"
	"organ-transport-service/internal/metrics"
	"organ-transport-service/internal/platform/db"
	"organ-transport-service/internal/ports"
	"organ-transport-service/internal/registry"
	"organ-transport-service/internal/services"
)

// main is the application composition root. It wires concrete adapters
// (SQLite/Postgres/Redis caches, the ORS provider) behind ports and starts
// the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")
	seedPath := os.Getenv("SEED_PATH")

	metrics.RegisterDefault()

	estimateCache, geocodeCache, closeCaches, err := buildCaches()
	if err != nil {
		log.Fatal(err)
	}
	defer closeCaches()

	// Absent credentials select the null provider: every estimate then runs
	// on the geodesic fallback, which is a supported degraded mode.
	var provider ports.RoutingProvider
	orsKey := strings.TrimSpace(os.Getenv("ORS_API_KEY"))
	if orsKey == "" {
		log.Println("level=warn msg=\"ORS_API_KEY not set, estimates degrade to geodesic fallback\"")
		provider = routing.NewNullProvider()
	} else {
		provider, err = routing.NewORSRoutingProvider(orsKey, estimateCache)
		if err != nil {
			log.Fatal(err)
		}
	}

	locations, vehicles, err := loadNetwork(seedPath)
	if err != nil {
		log.Fatal(err)
	}
	locations = registry.ResolveCoordinates(context.Background(), locations, provider, geocodeCache)

	reg := registry.New(locations)
	fleet := registry.NewFleet(vehicles)
	store := repositories.NewMemoryPlanStore()
	clock := clockz.RealClock

	estimator := services.NewEstimator(provider)
	router := api.NewRouter(api.Deps{
		Planner:            services.NewPlanner(estimator, reg, fleet, clock),
		Optimizer:          services.NewOptimizer(estimator, fleet),
		Monitor:            services.NewMonitor(clock),
		Store:              store,
		Registry:           reg,
		Fleet:              fleet,
		Clock:              clock,
		ProviderConfigured: orsKey != "",
	})

	log.Printf("Server listening addr=:%s locations=%d vehicles=%d", port, len(locations), len(vehicles))
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// Batch optimization may hold a request for the full solver budget.
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// buildCaches selects the cache backend from CACHE_DRIVER: sqlite (default),
// postgres, or redis. Redis carries only the estimate cache; geocode results
// are then fetched per boot.
func buildCaches() (ports.EstimateCache, ports.GeocodeCache, func(), error) {
	driver := config.Get("CACHE_DRIVER", "sqlite")
	noop := func() {}

	switch driver {
	case "sqlite":
		conn, err := openSqlite(config.Get("DB_PATH", "data/app.db"))
		if err != nil {
			return nil, nil, noop, err
		}
		if err := cache.InitSchema(conn); err != nil {
			return nil, nil, noop, fmt.Errorf("build caches: %w", err)
		}
		return cache.NewSqliteEstimateCache(conn), cache.NewSqliteGeocodeCache(conn), func() { conn.Close() }, nil

	case "postgres":
		conn, err := db.Open(os.Getenv("DATABASE_URL"))
		if err != nil {
			return nil, nil, noop, fmt.Errorf("build caches: %w", err)
		}
		if err := cache.InitSchema(conn); err != nil {
			return nil, nil, noop, fmt.Errorf("build caches: %w", err)
		}
		return cache.NewSQLEstimateCache(conn), cache.NewSQLGeocodeCache(conn), func() { conn.Close() }, nil

	case "redis":
		c, err := cache.NewRedisEstimateCache(config.Get("REDIS_URL", "redis://localhost:6379/0"))
		if err != nil {
			return nil, nil, noop, fmt.Errorf("build caches: %w", err)
		}
		return c, nil, noop, nil

	default:
		return nil, nil, noop, fmt.Errorf("build caches: unknown CACHE_DRIVER %q", driver)
	}
}

func openSqlite(path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %q: %w", path, err)
	}
	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("verify sqlite connection to %q: %w", path, err)
	}
	return conn, nil
}

// loadNetwork reads the location/fleet seed, or falls back to the built-in
// metro network when no seed file is configured.
func loadNetwork(seedPath string) ([]domain.Location, []domain.Vehicle, error) {
	if strings.TrimSpace(seedPath) == "" {
		log.Println("SEED_PATH not set, using built-in network")
		locations, vehicles := registry.DefaultNetwork()
		return locations, vehicles, nil
	}

	locations, vehicles, err := registry.LoadSeed(seedPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load network: %w", err)
	}
	return locations, vehicles, nil
}
