package database

import (
	"gorm.io/gorm"

	"github.com/nutriflow/backend/internal/models"
)

// Migrate creates or updates the schema for every model the app owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.WaterLog{},
	)
}
