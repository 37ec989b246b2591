package database

import (
	"fmt"

	"propertyhub/internal/models"

	"gorm.io/gorm"
)

// MigrateSchema creates or updates the users and properties tables
func MigrateSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Property{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// RunMigrations migrates the schema of this database
func (d *Database) RunMigrations() error {
	return MigrateSchema(d.db)
}
