// Package mongostore implements the user and property stores on MongoDB.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"propertyhub/internal/models"
	"propertyhub/internal/store"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection      = "users"
	propertiesCollection = "properties"
)

var (
	_ store.UserStore     = (*Store)(nil)
	_ store.PropertyStore = (*Store)(nil)
)

type Store struct {
	client     *mongo.Client
	users      *mongo.Collection
	properties *mongo.Collection
	logger     *logrus.Logger
}

// Connect dials MongoDB, verifies the connection and ensures the indexes exist
func Connect(ctx context.Context, uri, database string, logger *logrus.Logger) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	db := client.Database(database)
	s := &Store{
		client:     client,
		users:      db.Collection(usersCollection),
		properties: db.Collection(propertiesCollection),
		logger:     logger,
	}

	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.WithField("database", database).Info("Connected to MongoDB")
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	_, err = s.properties.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create property indexes: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if _, err := s.users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("failed to insert user: %w", store.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"email": email})
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"username": username})
}

func (s *Store) findUser(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

// ListProperties returns all properties owned by ownerID, newest first
func (s *Store) ListProperties(ctx context.Context, ownerID string) ([]models.Property, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.properties.Find(ctx, bson.M{"userId": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}

	properties := []models.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("failed to decode properties: %w", err)
	}
	return properties, nil
}

func (s *Store) CreateProperty(ctx context.Context, property *models.Property) error {
	if _, err := s.properties.InsertOne(ctx, property); err != nil {
		return fmt.Errorf("failed to insert property: %w", err)
	}
	return nil
}

// UpdateProperty uses findOneAndUpdate filtered on {_id, userId}
func (s *Store) UpdateProperty(ctx context.Context, ownerID, id string, changes store.PropertyChanges) (*models.Property, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var property models.Property
	err := s.properties.FindOneAndUpdate(ctx, ownerFilter(ownerID, id), propertyUpdate(changes, time.Now()), opts).Decode(&property)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update property: %w", err)
	}
	return &property, nil
}

// DeleteProperty uses findOneAndDelete filtered on {_id, userId}
func (s *Store) DeleteProperty(ctx context.Context, ownerID, id string) (*models.Property, error) {
	var property models.Property
	err := s.properties.FindOneAndDelete(ctx, ownerFilter(ownerID, id)).Decode(&property)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete property: %w", err)
	}
	return &property, nil
}

func ownerFilter(ownerID, id string) bson.M {
	return bson.M{"_id": id, "userId": ownerID}
}

func propertyUpdate(changes store.PropertyChanges, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}

	if changes.Title != nil {
		set["title"] = *changes.Title
	}
	if changes.Price != nil {
		set["price"] = *changes.Price
	}
	if changes.Location != nil {
		set["location"] = *changes.Location
	}
	if changes.Description != nil {
		set["description"] = *changes.Description
	}
	if changes.Status != nil {
		set["status"] = string(*changes.Status)
	}
	if changes.PropertyType != nil {
		set["propertyType"] = string(*changes.PropertyType)
	}
	if changes.Image.Set {
		set["image"] = changes.Image.Value
	}
	if changes.Size.Set {
		set["size"] = changes.Size.Value
	}
	if changes.Rooms.Set {
		set["rooms"] = changes.Rooms.Value
	}

	return bson.M{"$set": set}
}
