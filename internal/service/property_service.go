package service

import (
	"context"
	"fmt"
	"time"

	"propertyhub/internal/apperr"
	"propertyhub/internal/models"
	"propertyhub/internal/store"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	msgInvalidID        = "Invalid property ID"
	msgNotFoundOnUpdate = "Property not found or you do not have permission to edit it"
	msgNotFoundOnDelete = "Property not found or you do not have permission to delete it"
)

// PropertyService exposes the owner-scoped property operations
type PropertyService struct {
	properties store.PropertyStore
	logger     *logrus.Logger
	now        func() time.Time
}

func NewPropertyService(properties store.PropertyStore, logger *logrus.Logger) *PropertyService {
	return &PropertyService{
		properties: properties,
		logger:     logger,
		now:        time.Now,
	}
}

// List returns the owner's properties, newest first
func (s *PropertyService) List(ctx context.Context, ownerID string) ([]models.Property, error) {
	properties, err := s.properties.ListProperties(ctx, ownerID)
	if err != nil {
		return nil, apperr.Internal("Error retrieving properties", err)
	}
	if properties == nil {
		properties = []models.Property{}
	}
	return properties, nil
}

func (s *PropertyService) Create(ctx context.Context, ownerID string, in models.PropertyInput) (*models.Property, error) {
	property, err := newPropertyFromInput(in)
	if err != nil {
		return nil, err
	}

	now := s.now()
	property.ID = uuid.New().String()
	property.UserID = ownerID
	property.CreatedAt = now
	property.UpdatedAt = now

	if err := s.properties.CreateProperty(ctx, property); err != nil {
		return nil, apperr.Internal("Error creating property", fmt.Errorf("failed to create property: %w", err))
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":     ownerID,
		"property_id": property.ID,
	}).Info("Created property")

	return property, nil
}

// Update applies the supplied fields to a property owned by ownerID. A property that
// does not exist and one owned by someone else are reported identically.
func (s *PropertyService) Update(ctx context.Context, ownerID, id string, in models.PropertyInput) (*models.Property, error) {
	if !validID(id) {
		return nil, apperr.Validation(msgInvalidID)
	}

	changes, err := changesFromInput(in)
	if err != nil {
		return nil, err
	}
	if changes.Empty() {
		s.logger.WithField("property_id", id).Debug("Update carries no field changes, refreshing timestamp only")
	}

	property, err := s.properties.UpdateProperty(ctx, ownerID, id, changes)
	if err != nil {
		return nil, apperr.Internal("Error updating property", fmt.Errorf("failed to update property: %w", err))
	}
	if property == nil {
		return nil, apperr.NotFound(msgNotFoundOnUpdate)
	}

	return property, nil
}

// Delete removes a property owned by ownerID and returns the removed record
func (s *PropertyService) Delete(ctx context.Context, ownerID, id string) (*models.Property, error) {
	if !validID(id) {
		return nil, apperr.Validation(msgInvalidID)
	}

	property, err := s.properties.DeleteProperty(ctx, ownerID, id)
	if err != nil {
		return nil, apperr.Internal("Error deleting property", fmt.Errorf("failed to delete property: %w", err))
	}
	if property == nil {
		return nil, apperr.NotFound(msgNotFoundOnDelete)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":     ownerID,
		"property_id": id,
	}).Info("Deleted property")

	return property, nil
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
