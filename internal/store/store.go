// Package store declares the persistence contracts implemented by the SQL and
// MongoDB backends.
package store

import (
	"context"
	"errors"

	"propertyhub/internal/models"
)

// ErrDuplicate is returned when a unique field (email, username) is already taken
var ErrDuplicate = errors.New("duplicate key")

// UserStore owns user records. Lookups return (nil, nil) when nothing matches.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// PropertyStore owns property records. Update and delete match on id and owner in a
// single statement and return (nil, nil) when no row matches.
type PropertyStore interface {
	ListProperties(ctx context.Context, ownerID string) ([]models.Property, error)
	CreateProperty(ctx context.Context, property *models.Property) error
	UpdateProperty(ctx context.Context, ownerID, id string, changes PropertyChanges) (*models.Property, error)
	DeleteProperty(ctx context.Context, ownerID, id string) (*models.Property, error)
}

// Nullable marks a field that was supplied in an update. A nil Value clears the field.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// Supplied marks a field as present in the update; a nil v clears it
func Supplied[T any](v *T) Nullable[T] {
	return Nullable[T]{Set: true, Value: v}
}

// PropertyChanges lists the fields an update touches; nil pointers and unset
// Nullables are left unchanged.
type PropertyChanges struct {
	Title        *string
	Price        *float64
	Location     *string
	Description  *string
	Status       *models.PropertyStatus
	PropertyType *models.PropertyType
	Image        Nullable[string]
	Size         Nullable[float64]
	Rooms        Nullable[int]
}

// Empty reports whether no field is being changed
func (c PropertyChanges) Empty() bool {
	return c.Title == nil && c.Price == nil && c.Location == nil && c.Description == nil &&
		c.Status == nil && c.PropertyType == nil && !c.Image.Set && !c.Size.Set && !c.Rooms.Set
}
