package database

import (
	"context"
	"fmt"
	"time"

	"propertyhub/internal/models"
	"propertyhub/internal/store"

	"gorm.io/gorm/clause"
)

var (
	_ store.UserStore     = (*Database)(nil)
	_ store.PropertyStore = (*Database)(nil)
)

// ListProperties returns all properties owned by ownerID, newest first
func (d *Database) ListProperties(ctx context.Context, ownerID string) ([]models.Property, error) {
	var properties []models.Property
	err := d.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&properties).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	return properties, nil
}

func (d *Database) CreateProperty(ctx context.Context, property *models.Property) error {
	if err := d.db.WithContext(ctx).Create(property).Error; err != nil {
		return fmt.Errorf("failed to insert property: %w", err)
	}
	return nil
}

// UpdateProperty applies changes with a single UPDATE conditioned on both id and
// owner, returning the updated row, or nil when nothing matched.
func (d *Database) UpdateProperty(ctx context.Context, ownerID, id string, changes store.PropertyChanges) (*models.Property, error) {
	var property models.Property
	result := d.db.WithContext(ctx).
		Model(&property).
		Clauses(clause.Returning{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Updates(propertyUpdates(changes, time.Now()))
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update property: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &property, nil
}

// DeleteProperty removes the property with a single DELETE conditioned on both id
// and owner, returning the deleted row, or nil when nothing matched.
func (d *Database) DeleteProperty(ctx context.Context, ownerID, id string) (*models.Property, error) {
	var property models.Property
	result := d.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&property)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to delete property: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &property, nil
}

// propertyUpdates maps the supplied changes onto column assignments
func propertyUpdates(changes store.PropertyChanges, now time.Time) map[string]interface{} {
	updates := map[string]interface{}{"updated_at": now}

	if changes.Title != nil {
		updates["title"] = *changes.Title
	}
	if changes.Price != nil {
		updates["price"] = *changes.Price
	}
	if changes.Location != nil {
		updates["location"] = *changes.Location
	}
	if changes.Description != nil {
		updates["description"] = *changes.Description
	}
	if changes.Status != nil {
		updates["status"] = *changes.Status
	}
	if changes.PropertyType != nil {
		updates["property_type"] = *changes.PropertyType
	}
	if changes.Image.Set {
		updates["image"] = nullable(changes.Image)
	}
	if changes.Size.Set {
		updates["size"] = nullable(changes.Size)
	}
	if changes.Rooms.Set {
		updates["rooms"] = nullable(changes.Rooms)
	}

	return updates
}

func nullable[T any](n store.Nullable[T]) interface{} {
	if n.Value == nil {
		return nil
	}
	return *n.Value
}
