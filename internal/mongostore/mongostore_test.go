package mongostore

import (
	"context"
	"io"
	"os"
	"testing"
	"time"

	"propertyhub/internal/models"
	"propertyhub/internal/store"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestPropertyUpdate(t *testing.T) {
	now := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	price := 990000.0
	status := models.StatusSold
	rooms := 4

	update := propertyUpdate(store.PropertyChanges{
		Price:  &price,
		Status: &status,
		Image:  store.Supplied[string](nil),
		Rooms:  store.Supplied(&rooms),
	}, now)

	set, ok := update["$set"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, now, set["updatedAt"])
	assert.Equal(t, 990000.0, set["price"])
	assert.Equal(t, "sold", set["status"])
	assert.Contains(t, set, "image")
	assert.Nil(t, set["image"])
	assert.NotContains(t, set, "title")
	assert.NotContains(t, set, "size")
	assert.Equal(t, 4, *set["rooms"].(*int))
}

func TestOwnerFilter(t *testing.T) {
	assert.Equal(t, bson.M{"_id": "p1", "userId": "u1"}, ownerFilter("u1", "p1"))
}

// setupStore connects to the MongoDB named by PROPERTYHUB_TEST_MONGO_URI
func setupStore(t *testing.T) *Store {
	uri := os.Getenv("PROPERTYHUB_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("PROPERTYHUB_TEST_MONGO_URI not set")
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbName := "propertyhub_test_" + uuid.NewString()[:8]
	s, err := Connect(ctx, uri, dbName, logger)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.client.Database(dbName).Drop(context.Background())
		_ = s.Close()
	})
	return s
}

func TestStore_Integration(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	user := &models.User{ID: uuid.NewString(), Username: "alice", Email: "alice@example.com", PasswordHash: "hash", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, s.CreateUser(ctx, user))

	dup := *user
	dup.ID = uuid.NewString()
	assert.ErrorIs(t, s.CreateUser(ctx, &dup), store.ErrDuplicate)

	found, err := s.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.ID)

	property := &models.Property{
		ID: uuid.NewString(), UserID: user.ID, Title: "Loft", Price: 100, Location: "Haifa",
		Status: models.StatusAvailable, PropertyType: models.TypeApartment, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, s.CreateProperty(ctx, property))

	title := "Hijacked"
	updated, err := s.UpdateProperty(ctx, "someone-else", property.ID, store.PropertyChanges{Title: &title})
	require.NoError(t, err)
	assert.Nil(t, updated)

	title = "Renovated loft"
	updated, err = s.UpdateProperty(ctx, user.ID, property.ID, store.PropertyChanges{Title: &title})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Renovated loft", updated.Title)
	assert.Equal(t, 100.0, updated.Price)

	list, err := s.ListProperties(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	deleted, err := s.DeleteProperty(ctx, user.ID, property.ID)
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.Equal(t, property.ID, deleted.ID)
}
