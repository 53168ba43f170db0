package database

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"clarus-server/services/council-api/internal/infrastructure/database/entities"
)

// AutoMigrate applies database schema changes for the council domain.
func AutoMigrate(ctx context.Context, db *gorm.DB, log zerolog.Logger) error {
	if err := db.WithContext(ctx).AutoMigrate(
		&entities.Council{},
		&entities.Advisor{},
		&entities.Debate{},
		&entities.DebateResponse{},
	); err != nil {
		return err
	}

	log.Info().Msg("database schema up to date")
	return nil
}
