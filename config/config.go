package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"

	// DefaultJWTSecret is only suitable for local development
	DefaultJWTSecret = "your-secret-key-change-in-production"
)

type Config struct {
	// Port the HTTP server listens on
	Port int `env:"PORT" envDefault:"5000"`

	// Environment name; "development" exposes error details in 500 responses
	Env string `env:"APP_ENV" envDefault:"development"`

	Log struct {
		Level  string `env:"LOG_LEVEL" envDefault:"info"`
		Format string `env:"LOG_FORMAT" envDefault:"json"`
	}

	JWTSecret string `env:"JWT_SECRET" envDefault:"your-secret-key-change-in-production"`

	Database struct {
		// Storage backend: sqlite or mongo
		Driver string `env:"DB_DRIVER" envDefault:"sqlite"`

		SQLitePath string `env:"SQLITE_PATH" envDefault:"database/propertyhub.db"`

		MongoURI      string `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
		MongoDatabase string `env:"MONGODB_DATABASE" envDefault:"real-estate"`
	}

	// Allowed CORS origins; empty allows every origin
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	// Grace period for in-flight requests on shutdown
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// LoadConfig reads an optional .env file and then the process environment
func LoadConfig() (*Config, error) {
	return Load(".env")
}

// Load reads the given dotenv files, ignoring missing ones, then parses the environment.
// Variables already set in the environment win over file values.
func Load(files ...string) (*Config, error) {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !isNotExist(err) {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	switch c.Database.Driver {
	case DriverSQLite, DriverMongo:
	default:
		return fmt.Errorf("unknown DB_DRIVER %q (expected %s or %s)", c.Database.Driver, DriverSQLite, DriverMongo)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// UsesDefaultSecret reports whether tokens are signed with the well-known fallback key
func (c *Config) UsesDefaultSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
