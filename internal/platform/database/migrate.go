// File: internal/platform/database/migrate.go
package database

import (
	"fmt"

	"ktm_rentals_backend/internal/loginlog"
	"ktm_rentals_backend/internal/room"
	"ktm_rentals_backend/internal/submission"
	"ktm_rentals_backend/internal/user"

	"gorm.io/gorm"
)

// AutoMigrate brings the schema up to date for all registered models. The
// uuid-ossp extension backs the uuid_generate_v4() column defaults.
func AutoMigrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("failed to ensure uuid-ossp extension: %w", err)
	}

	if err := db.AutoMigrate(
		&user.User{},
		&loginlog.LoginEvent{},
		&submission.PendingProperty{},
		&room.Room{},
	); err != nil {
		return fmt.Errorf("failed to run schema migration: %w", err)
	}
	return nil
}
