package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"visit-planner-service/internal/adapters/cache"
	"visit-planner-service/internal/adapters/repositories"
	"visit-planner-service/internal/api"
	"visit-planner-service/internal/config"
	"visit-planner-service/internal/platform/db"
	"visit-planner-service/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres storage, optional Redis plan
// cache) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	seedPath := config.Get("SEED_PATH", "data/seeds/visits.json")
	port := config.Get("PORT", "8080")

	var (
		repo  ports.VisitRepository
		store ports.PlanStore
	)

	// A DATABASE_URL selects the shared Postgres store; otherwise a local
	// SQLite file is created and seeded for standalone runs.
	if databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL")); databaseURL != "" {
		pg, err := db.Open(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer pg.Close()

		repo = repositories.NewPostgresVisitRepository(pg)
	} else {
		sqlite, err := openSqlite(dbPath)
		if err != nil {
			log.Fatal(err)
		}
		defer sqlite.Close()

		if err := initAndSeed(sqlite, seedPath); err != nil {
			log.Fatal(err)
		}

		repo = repositories.NewSqliteVisitRepository(sqlite)
		store = repositories.NewSqlitePlanStore(sqlite)
	}

	var planCache ports.PlanCache
	if redisAddr := strings.TrimSpace(os.Getenv("REDIS_ADDR")); redisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: redisAddr})
		planCache = cache.NewRedisPlanCache(client, 15*time.Minute)
		log.Printf("Plan cache enabled addr=%s", redisAddr)
	}

	router := api.NewRouter(repo, planCache, store)

	// Write timeout leaves headroom for planning large visit sets; the
	// balancer re-sequences every bucket inside its attempt loop.
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openSqlite(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}

func initAndSeed(db *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(db); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(db, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
