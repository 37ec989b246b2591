package database

import (
	"context"
	"errors"
	"fmt"

	"propertyhub/internal/models"
	"propertyhub/internal/store"

	"gorm.io/gorm"
)

// CreateUser inserts a user, reporting store.ErrDuplicate when the email or username is taken
func (d *Database) CreateUser(ctx context.Context, user *models.User) error {
	if err := d.db.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("failed to insert user: %w", store.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (d *Database) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return d.findUser(ctx, "email = ?", email)
}

func (d *Database) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return d.findUser(ctx, "username = ?", username)
}

func (d *Database) findUser(ctx context.Context, query string, arg string) (*models.User, error) {
	var user models.User
	err := d.db.WithContext(ctx).Where(query, arg).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}
