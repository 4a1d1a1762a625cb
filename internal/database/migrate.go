package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/pantry-chef/backend/internal/models"
)

// RunMigrations creates or updates the usage tables
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.GenerationRecord{}); err != nil {
		return fmt.Errorf("failed to migrate usage tables: %w", err)
	}
	return nil
}
