package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"propertyhub/internal/api"
	"propertyhub/internal/auth"
	"propertyhub/internal/database"
	"propertyhub/internal/loan"
	"propertyhub/internal/models"
	"propertyhub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cli struct {
	serverURL   string
	sessionPath string
}

func setupCLI(t *testing.T) *cli {
	gin.SetMode(gin.TestMode)

	db, err := database.NewTestDB()
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	server := httptest.NewServer(api.NewRouter(
		service.NewAuthService(db, auth.NewTokenManager("cli-test-secret"), logger),
		service.NewPropertyService(db, logger),
		logger,
		api.RouterConfig{},
	))
	t.Cleanup(func() {
		server.Close()
		db.Close()
	})

	return &cli{
		serverURL:   server.URL,
		sessionPath: filepath.Join(t.TempDir(), "session.yaml"),
	}
}

// run executes one propertyctl invocation; each call starts from the session file
func (c *cli) run(t *testing.T, args ...string) (string, error) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--api-url", c.serverURL, "--session", c.sessionPath}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestCLI_Health(t *testing.T) {
	c := setupCLI(t)

	out, err := c.run(t, "health")
	require.NoError(t, err)
	assert.Equal(t, "OK: Server is running\n", out)
}

func TestCLI_AuthFlow(t *testing.T) {
	c := setupCLI(t)

	out, err := c.run(t, "whoami")
	require.NoError(t, err)
	assert.Equal(t, "Not logged in\n", out)

	out, err = c.run(t, "register", "--username", "alice", "--email", "alice@example.com", "--password", "password123")
	require.NoError(t, err)
	assert.Contains(t, out, "alice <alice@example.com>")

	out, err = c.run(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "alice <alice@example.com>")

	_, err = c.run(t, "logout")
	require.NoError(t, err)

	_, err = c.run(t, "properties", "list")
	assert.ErrorContains(t, err, "not logged in")

	_, err = c.run(t, "login", "--email", "alice@example.com", "--password", "wrong")
	assert.EqualError(t, err, "Invalid email or password")

	_, err = c.run(t, "login", "--email", "alice@example.com", "--password", "password123")
	require.NoError(t, err)
}

func TestCLI_Properties(t *testing.T) {
	c := setupCLI(t)
	_, err := c.run(t, "register", "--username", "bob", "--email", "bob@example.com", "--password", "password123")
	require.NoError(t, err)

	out, err := c.run(t, "--json", "properties", "create",
		"--title", "Harbour View", "--price", "780000", "--location", "Akko", "--type", "penthouse", "--rooms", "4")
	require.NoError(t, err)

	var created models.Property
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	assert.Equal(t, models.TypePenthouse, created.PropertyType)
	require.NotNil(t, created.Rooms)
	assert.Equal(t, 4, *created.Rooms)

	out, err = c.run(t, "properties", "update", created.ID, "--status", "sold", "--rooms", "")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated Harbour View")

	out, err = c.run(t, "--json", "properties", "list")
	require.NoError(t, err)
	var list []models.Property
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list, 1)
	assert.Equal(t, models.StatusSold, list[0].Status)
	assert.Nil(t, list[0].Rooms)

	_, err = c.run(t, "properties", "create", "--title", "Free", "--price", "0", "--location", "Nowhere")
	assert.EqualError(t, err, "Price must be a positive number")

	out, err = c.run(t, "properties", "delete", created.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted Harbour View")

	out, err = c.run(t, "properties", "list")
	require.NoError(t, err)
	assert.Equal(t, "No properties yet\n", out)
}

func TestCLI_Loan(t *testing.T) {
	c := setupCLI(t)

	out, err := c.run(t, "--json", "loan", "--amount", "2500000", "--rate", "3.5", "--term", "30")
	require.NoError(t, err)

	var calc loan.Calculation
	require.NoError(t, json.Unmarshal([]byte(out), &calc))
	assert.InDelta(t, 11226.12, calc.MonthlyPayment, 0.5)
	assert.InDelta(t, calc.MonthlyPayment*360, calc.TotalPayment, 1e-6)

	out, err = c.run(t, "--json", "loan", "--amount", "120000", "--rate", "0", "--all-terms")
	require.NoError(t, err)

	var history []loan.Calculation
	require.NoError(t, json.Unmarshal([]byte(out), &history))
	require.Len(t, history, len(loan.Terms))
	assert.Equal(t, 30, history[0].LoanTerm)
	assert.InDelta(t, 1000.0, history[len(history)-1].MonthlyPayment, 1e-9)

	_, err = c.run(t, "loan", "--amount", "100000", "--term", "12")
	assert.Error(t, err)

	_, err = c.run(t, "loan", "--amount", "100000", "--rate=-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--rate")
}
