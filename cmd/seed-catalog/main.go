package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/uniak/teaching-backend/internal/config"
	"github.com/uniak/teaching-backend/internal/database"
	"github.com/uniak/teaching-backend/internal/loader"
	"github.com/uniak/teaching-backend/internal/logger"
)

func main() {
	cfg := config.Load()
	log := logger.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	fmt.Println("=== Seeding Catalog Reference Data ===")

	created, err := loader.New(pool, log).Seed(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Seed failed")
	}

	fmt.Printf("\nSeed completed! Created %d new rows.\n", created)
}
