package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"organ-transport-service/internal/adapters/cache"
	"organ-transport-service/internal/config"
	"organ-transport-service/internal/domain"
	"organ-transport-service/internal/platform/db"
	"organ-transport-service/internal/registry"
)

// fleettool validates a network seed file and prepares the cache schema so
// operators can check a deployment before the server boots.
func main() {
	seedPath := flag.String("seed", "", "path to the network seed file (empty validates the built-in network)")
	initCaches := flag.Bool("init-caches", false, "initialize the estimate/geocode cache schema")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	locations, vehicles, err := loadNetwork(*seedPath)
	if err != nil {
		log.Fatal(err)
	}
	printNetwork(locations, vehicles)

	if *initCaches {
		if err := initCacheSchema(); err != nil {
			log.Fatal(err)
		}
		log.Println("Cache schema ready.")
	}
}

func loadNetwork(seedPath string) ([]domain.Location, []domain.Vehicle, error) {
	if seedPath == "" {
		locations, vehicles := registry.DefaultNetwork()
		return locations, vehicles, nil
	}
	return registry.LoadSeed(seedPath)
}

func printNetwork(locations []domain.Location, vehicles []domain.Vehicle) {
	facilities, checkpoints := 0, 0
	for _, l := range locations {
		switch l.Kind {
		case domain.KindFacility:
			facilities++
		case domain.KindCheckpoint:
			checkpoints++
		}
	}

	fmt.Printf("network: %d facilities, %d checkpoints, %d vehicles\n", facilities, checkpoints, len(vehicles))
	for _, v := range vehicles {
		fmt.Printf("  vehicle %s type=%s speed=%.0fkm/h capacity=%d available=%t\n",
			v.ID, v.Type, v.SpeedKmh, v.Capacity, v.Available)
	}
}

func initCacheSchema() error {
	driver := config.Get("CACHE_DRIVER", "sqlite")

	var (
		conn *sql.DB
		err  error
	)
	switch driver {
	case "sqlite":
		conn, err = sql.Open("sqlite", config.Get("DB_PATH", "data/app.db"))
	case "postgres":
		conn, err = db.Open(os.Getenv("DATABASE_URL"))
	case "redis":
		// Redis needs no schema.
		return nil
	default:
		return fmt.Errorf("unknown CACHE_DRIVER %q", driver)
	}
	if err != nil {
		return fmt.Errorf("init cache schema: %w", err)
	}
	defer conn.Close()

	return cache.InitSchema(conn)
}
