package db

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"paysched/internal/domain/auth"
	"paysched/internal/platform/config"
)

// Seed creates the initial admin user when the users table is empty.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	store := auth.NewStore(pool)

	count, err := store.CountUsers(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		slog.Warn("no users exist and no seed admin configured, skipping seed")
		return nil
	}

	hash, err := auth.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		return err
	}
	id, err := store.CreateUser(ctx, cfg.SeedAdminEmail, hash, "admin")
	if err != nil {
		return err
	}
	slog.Info("seeded admin user", "userId", id, "email", cfg.SeedAdminEmail)
	return nil
}
