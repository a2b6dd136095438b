package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/uniak/teaching-backend/internal/config"
	"github.com/uniak/teaching-backend/internal/database"
	"github.com/uniak/teaching-backend/internal/logger"
	"github.com/uniak/teaching-backend/internal/repository"
)

func main() {
	var (
		username  string
		superuser bool
		revoke    bool
	)
	flag.StringVar(&username, "username", "", "User to change (required)")
	flag.BoolVar(&superuser, "superuser", false, "Also grant superuser")
	flag.BoolVar(&revoke, "revoke", false, "Remove staff and superuser instead of granting")
	flag.Parse()

	if username == "" {
		fmt.Println("Usage: promote-user -username <name> [-superuser] [-revoke]")
		flag.PrintDefaults()
		return
	}

	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	userRepo := repository.NewUserRepository(pool)

	fmt.Println("=== Change Staff Access ===")

	u, err := userRepo.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		fmt.Printf("Error: no user named '%s'\n", username)
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load user")
	}

	if revoke {
		u.IsStaff, u.IsSuperuser = false, false
	} else {
		u.IsStaff = true
		u.IsSuperuser = u.IsSuperuser || superuser
	}

	if err := userRepo.Update(ctx, u); err != nil {
		log.Fatal().Err(err).Msg("Failed to update user")
	}

	log.Info().
		Str("username", u.Username).
		Bool("is_staff", u.IsStaff).
		Bool("is_superuser", u.IsSuperuser).
		Msg("User access updated")
	fmt.Printf("Done. '%s': staff=%t superuser=%t\n", u.Username, u.IsStaff, u.IsSuperuser)
}
