package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/foodai/festival-guide/backend/internal/models"
)

// Migrate creates or updates the catalog tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Booth{}, &models.MenuItem{}); err != nil {
		return fmt.Errorf("failed to migrate catalog tables: %w", err)
	}
	return nil
}

// Seed upserts booths and menu items by primary key, so running it again
// refreshes the rows instead of failing.
func Seed(ctx context.Context, db *gorm.DB, booths []models.Booth, items []models.MenuItem) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(booths) > 0 {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&booths).Error; err != nil {
				return fmt.Errorf("failed to seed booths: %w", err)
			}
		}
		if len(items) > 0 {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).CreateInBatches(&items, 100).Error; err != nil {
				return fmt.Errorf("failed to seed menu items: %w", err)
			}
		}
		return nil
	})
}
