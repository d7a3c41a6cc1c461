package main

import (
	"context"
	"database/sql"
	"delivery-planner/internal/adapters/planstore"
	"delivery-planner/internal/adapters/repositories"
	"delivery-planner/internal/api"
	"delivery-planner/internal/api/handlers"
	"delivery-planner/internal/config"
	"delivery-planner/internal/platform/db"
	"delivery-planner/internal/policy"
	"delivery-planner/internal/ports"
	"fmt"
	"log"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (SQL, Redis) behind ports and starts the HTTP server.
func main() {
	if !config.LoadDotEnv() {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	conn, err := db.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	dialect, err := repositories.ParseDialect(cfg.DBDriver)
	if err != nil {
		log.Fatal(err)
	}

	// Initialize schema and seed demo data on startup for local runs.
	if cfg.DBDriver == "sqlite" {
		if err := initAndSeed(conn, dialect, cfg.SeedPath); err != nil {
			log.Fatal(err)
		}
	}

	rules := policy.DefaultRuleSet()
	if cfg.RulesPath != "" {
		if rules, err = policy.LoadRuleSetFile(cfg.RulesPath); err != nil {
			log.Fatal(err)
		}
		log.Printf("Loaded rule table path=%s rules=%d groups=%d", cfg.RulesPath, len(rules.Rules), len(rules.Groups))
	}

	plans, err := openPlanStore(cfg)
	if err != nil {
		log.Fatal(err)
	}

	repo := repositories.NewSQLRepository(conn, dialect)
	router := api.NewRouter(api.Dependencies{
		Repo:   repo,
		Matrix: repo,
		Plans:  plans,
		Rules:  rules,
		Ping:   conn.PingContext,
		Defaults: handlers.PlanDefaults{
			TruckCount:    cfg.TruckCount,
			TruckCapacity: cfg.TruckCapacity,
			Hub:           cfg.HubLocation,
			MaxPasses:     cfg.MaxPasses,
		},
	})

	log.Printf("Server listening addr=:%s driver=%s trucks=%d capacity=%d", cfg.Port, cfg.DBDriver, cfg.TruckCount, cfg.TruckCapacity)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openPlanStore(cfg config.Config) (ports.PlanStore, error) {
	if cfg.RedisURL == "" {
		log.Println("REDIS_URL not set (plans kept in memory)")
		return planstore.NewMemoryPlanStore(), nil
	}

	store, err := planstore.NewRedisPlanStore(cfg.RedisURL, cfg.PlanTTL)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func initAndSeed(conn *sql.DB, dialect repositories.Dialect, seedPath string) error {
	if err := repositories.InitSchema(conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(conn, dialect, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
