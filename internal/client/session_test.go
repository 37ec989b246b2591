package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"propertyhub/internal/api"
	"propertyhub/internal/auth"
	"propertyhub/internal/database"
	"propertyhub/internal/models"
	"propertyhub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startServer runs the real API over an in-memory database
func startServer(t *testing.T) *httptest.Server {
	gin.SetMode(gin.TestMode)

	db, err := database.NewTestDB()
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	router := api.NewRouter(
		service.NewAuthService(db, auth.NewTokenManager("client-test-secret"), logger),
		service.NewPropertyService(db, logger),
		logger,
		api.RouterConfig{},
	)

	server := httptest.NewServer(router)
	t.Cleanup(func() {
		server.Close()
		db.Close()
	})
	return server
}

func newTestSession(t *testing.T, baseURL string) (*Session, *SessionStore) {
	sessions := NewSessionStore(filepath.Join(t.TempDir(), "session.yaml"))
	session, err := NewSession(NewClient(baseURL), sessions)
	require.NoError(t, err)
	return session, sessions
}

func TestClient_Health(t *testing.T) {
	server := startServer(t)

	health, err := NewClient(server.URL).Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "OK", health.Status)
}

func TestClient_APIError(t *testing.T) {
	server := startServer(t)

	_, err := NewClient(server.URL).ListProperties(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Access token required. Please login first.", apiErr.Message)
}

func TestClient_APIErrorWithoutBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Health(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
}

func TestSession_RegisterPersistsAndRestores(t *testing.T) {
	server := startServer(t)
	session, sessions := newTestSession(t, server.URL)

	user, err := session.Register(context.Background(), "alice", "alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	state := session.State()
	assert.True(t, state.Auth.IsAuthenticated)
	assert.NotEmpty(t, state.Auth.Token)
	assert.False(t, state.Auth.Loading)

	persisted, err := sessions.Load()
	require.NoError(t, err)
	assert.Equal(t, state.Auth.Token, persisted.Token)
	assert.Equal(t, user, persisted.User)

	restored, err := NewSession(NewClient(server.URL), sessions)
	require.NoError(t, err)
	assert.True(t, restored.State().Auth.IsAuthenticated)

	_, err = restored.FetchProperties(context.Background())
	assert.NoError(t, err)
}

func TestSession_LoginFailureRecordsError(t *testing.T) {
	server := startServer(t)
	session, sessions := newTestSession(t, server.URL)

	_, err := session.Login(context.Background(), "ghost@example.com", "nope")
	require.Error(t, err)

	state := session.State()
	assert.False(t, state.Auth.IsAuthenticated)
	assert.False(t, state.Auth.Loading)
	assert.Equal(t, "Invalid email or password", state.Auth.Error)

	persisted, err := sessions.Load()
	require.NoError(t, err)
	assert.Empty(t, persisted.Token)

	session.ClearError()
	assert.Empty(t, session.State().Auth.Error)
}

func TestSession_PropertyLifecycle(t *testing.T) {
	server := startServer(t)
	session, _ := newTestSession(t, server.URL)
	ctx := context.Background()

	_, err := session.Register(ctx, "alice", "alice@example.com", "password123")
	require.NoError(t, err)

	first, err := session.CreateProperty(ctx, models.PropertyInput{"title": "Cottage", "price": 210000, "location": "Galilee"})
	require.NoError(t, err)
	second, err := session.CreateProperty(ctx, models.PropertyInput{"title": "Tower Flat", "price": 640000, "location": "Ramat Gan"})
	require.NoError(t, err)

	assert.Equal(t, []string{second.ID, first.ID}, session.State().Properties.Order)

	_, err = session.UpdateProperty(ctx, first.ID, models.PropertyInput{"status": "sold"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusSold, session.State().Properties.ByID[first.ID].Status)

	session.SelectProperty(second.ID)
	_, err = session.DeleteProperty(ctx, second.ID)
	require.NoError(t, err)

	state := session.State()
	assert.Equal(t, []string{first.ID}, state.Properties.Order)
	assert.Empty(t, state.Properties.SelectedID)

	list, err := session.FetchProperties(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Cottage", list[0].Title)
}

func TestSession_PropertyFailureKeepsCache(t *testing.T) {
	server := startServer(t)
	session, _ := newTestSession(t, server.URL)
	ctx := context.Background()

	_, err := session.Register(ctx, "alice", "alice@example.com", "password123")
	require.NoError(t, err)
	created, err := session.CreateProperty(ctx, models.PropertyInput{"title": "Studio", "price": 99000, "location": "Beersheba"})
	require.NoError(t, err)

	_, err = session.UpdateProperty(ctx, created.ID, models.PropertyInput{"price": 0})
	require.Error(t, err)

	state := session.State()
	assert.Equal(t, "Price must be a positive number", state.Properties.Error)
	assert.False(t, state.Properties.Loading)
	assert.Equal(t, 99000.0, state.Properties.ByID[created.ID].Price)
}

func TestSession_LogoutClearsLocalStateWhenServerIsDown(t *testing.T) {
	server := startServer(t)
	session, sessions := newTestSession(t, server.URL)
	ctx := context.Background()

	_, err := session.Register(ctx, "alice", "alice@example.com", "password123")
	require.NoError(t, err)
	server.Close()

	err = session.Logout(ctx)
	assert.Error(t, err)

	state := session.State()
	assert.False(t, state.Auth.IsAuthenticated)
	assert.Empty(t, state.Auth.Token)
	assert.Empty(t, state.Properties.Order)

	persisted, err := sessions.Load()
	require.NoError(t, err)
	assert.Empty(t, persisted.Token)
	assert.Nil(t, persisted.User)
}

func TestSession_Loan(t *testing.T) {
	session, _ := newTestSession(t, "http://127.0.0.1:0")

	session.SetLoanAmount(2500000)
	session.SetInterestRate(3.5)
	loanState := session.SetLoanTerm(30)

	assert.InDelta(t, 11226.12, loanState.MonthlyPayment, 0.5)
	assert.Len(t, loanState.History, 3)

	loanState = session.RecalculateLoan()
	assert.Len(t, loanState.History, 4)

	loanState = session.ClearLoanHistory()
	assert.Empty(t, loanState.History)
	assert.InDelta(t, 11226.12, loanState.MonthlyPayment, 0.5)
}
