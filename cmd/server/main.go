package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"propertyhub/config"
	"propertyhub/internal/api"
	"propertyhub/internal/auth"
	"propertyhub/internal/database"
	"propertyhub/internal/logging"
	"propertyhub/internal/mongostore"
	"propertyhub/internal/service"
	"propertyhub/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// backend is the storage selected by DB_DRIVER
type backend interface {
	store.UserStore
	store.PropertyStore
	Ping(ctx context.Context) error
	Close() error
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize logger")
	}

	if cfg.UsesDefaultSecret() {
		logger.Warn("JWT_SECRET is not set; tokens are signed with the default development key")
	}
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openBackend(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	if err := db.Ping(ctx); err != nil {
		logger.WithError(err).Fatal("Database is not reachable")
	}

	authService := service.NewAuthService(db, auth.NewTokenManager(cfg.JWTSecret), logger)
	propertyService := service.NewPropertyService(db, logger)

	router := api.NewRouter(authService, propertyService, logger, api.RouterConfig{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Development:    cfg.IsDevelopment(),
	})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.WithFields(logrus.Fields{
			"port":      cfg.Port,
			"env":       cfg.Env,
			"db_driver": cfg.Database.Driver,
		}).Info("Starting server")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.WithError(err).Error("Server stopped with error")
		return
	}
	logger.Info("Server stopped")
}

func openBackend(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (backend, error) {
	switch cfg.Database.Driver {
	case config.DriverMongo:
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		logger.WithField("database", cfg.Database.MongoDatabase).Info("Connecting to MongoDB")
		mongo, err := mongostore.Connect(connectCtx, cfg.Database.MongoURI, cfg.Database.MongoDatabase, logger)
		if err != nil {
			return nil, err
		}
		return mongo, nil
	default:
		logger.Infof("Using database at: %s", cfg.Database.SQLitePath)
		db, err := database.NewDatabase(cfg.Database.SQLitePath, logger)
		if err != nil {
			return nil, err
		}

		logger.Info("Running database migrations...")
		if err := db.RunMigrations(); err != nil {
			db.Close()
			return nil, err
		}
		return db, nil
	}
}
