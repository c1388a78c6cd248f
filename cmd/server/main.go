package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/dryack/gDiceTable/core/api"
	"github.com/dryack/gDiceTable/core/config"
	"github.com/dryack/gDiceTable/core/dice"
	"github.com/dryack/gDiceTable/core/jobs"
	"github.com/dryack/gDiceTable/core/session"
	"github.com/dryack/gDiceTable/core/store"
	"github.com/dryack/gDiceTable/core/table"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps := api.Deps{Holder: table.NewHolder(nil)}
	if seed := cfg.Int64("rng.seed"); seed != 0 {
		deps.Source = dice.NewSource(seed)
	}

	cacheAddr := cfg.String("dragonfly.address")
	log.Printf("Connecting to Dragonfly at %s", cacheAddr)
	client := redis.NewClient(&redis.Options{Addr: cacheAddr})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	if err := client.Ping(pingCtx).Err(); err != nil {
		// The server still starts; statistics are simulated on every request
		log.Printf("Error connecting to Dragonfly: %v", err)
	} else {
		log.Println("Successfully connected to Dragonfly")
		deps.Cache = store.NewDragonflyCache(client, cfg.Int("cache.maxentries"))
	}
	cancel()

	pool, err := pgxpool.Connect(ctx, cfg.String("postgres.dsn"))
	if err != nil {
		log.Printf("Error connecting to Postgres: %v", err)
	} else {
		defer pool.Close()
		tables := store.NewPostgresTables(pool)
		if err := tables.Migrate(ctx); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		deps.DB = store.NewPostgresDB(pool)
		deps.Tables = tables

		job := jobs.NewRegistryRefreshJob(deps.Cache, tables, deps.Holder, cfg.Duration("tables.refresh"))
		if err := job.Refresh(ctx); err != nil {
			log.Printf("Initial table load failed: %v", err)
		}
		go job.Start(ctx)
	}

	if secret := cfg.String("auth.secret"); secret != "" {
		deps.Tokens, err = session.NewTokenManager(secret, 0)
		if err != nil {
			log.Fatalf("Invalid auth secret: %v", err)
		}
	} else {
		log.Println("auth.secret is not set; table uploads are disabled")
	}

	server := api.NewServer(cfg, deps)
	log.Printf("Starting server on %s", cfg.String("server.address"))
	if err := server.Run(); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
