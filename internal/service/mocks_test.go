package service

import (
	"context"
	"io"

	"propertyhub/internal/models"
	"propertyhub/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
)

// MockUserStore is a mock implementation of store.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

// MockPropertyStore is a mock implementation of store.PropertyStore
type MockPropertyStore struct {
	mock.Mock
}

func (m *MockPropertyStore) ListProperties(ctx context.Context, ownerID string) ([]models.Property, error) {
	args := m.Called(ctx, ownerID)
	properties, _ := args.Get(0).([]models.Property)
	return properties, args.Error(1)
}

func (m *MockPropertyStore) CreateProperty(ctx context.Context, property *models.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockPropertyStore) UpdateProperty(ctx context.Context, ownerID, id string, changes store.PropertyChanges) (*models.Property, error) {
	args := m.Called(ctx, ownerID, id, changes)
	property, _ := args.Get(0).(*models.Property)
	return property, args.Error(1)
}

func (m *MockPropertyStore) DeleteProperty(ctx context.Context, ownerID, id string) (*models.Property, error) {
	args := m.Called(ctx, ownerID, id)
	property, _ := args.Get(0).(*models.Property)
	return property, args.Error(1)
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
