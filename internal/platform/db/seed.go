package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"nwfpay/internal/platform/config"
)

// Seed ensures the configured admin user exists. It never overwrites an
// existing user's password.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	email := strings.TrimSpace(strings.ToLower(cfg.SeedAdminEmail))
	if email == "" || cfg.SeedAdminPassword == "" {
		return nil
	}

	var exists bool
	err := pool.QueryRow(ctx, `
    SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)
  `, email).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SeedAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
    INSERT INTO users (email, password_hash, role)
    VALUES ($1, $2, 'admin')
  `, email, string(hash))
	return err
}
