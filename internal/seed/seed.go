// Package seed creates the bootstrap data a fresh installation needs: one
// SUPER_ADMIN account that can create the rest of the staff.
package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/campuscrm/admitdesk/internal/app/models"
	"github.com/campuscrm/admitdesk/internal/config"
	"github.com/campuscrm/admitdesk/internal/db"
	"github.com/campuscrm/admitdesk/internal/pkg/auth"
)

// CreateDefaultAdmin inserts the configured SUPER_ADMIN account if no account
// with that email exists yet. The check and the insert run in one transaction
// so two racing instances cannot both seed.
func CreateDefaultAdmin(ctx context.Context, database *db.PostgresDB, cfg *config.Config, lgr zerolog.Logger) error {
	return database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var exists bool
		err := tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
			cfg.Seed.AdminEmail).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check for existing admin: %w", err)
		}
		if exists {
			return nil
		}

		lgr.Info().Str("email", cfg.Seed.AdminEmail).Msg("Creating default admin account")

		hash, err := auth.HashPassword(cfg.Seed.AdminPassword)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO users (name, email, password, role) VALUES ($1, $2, $3, $4)`,
			cfg.Seed.AdminName, cfg.Seed.AdminEmail, hash, models.RoleSuperAdmin)
		if err != nil {
			return fmt.Errorf("failed to create admin account: %w", err)
		}

		return nil
	})
}
