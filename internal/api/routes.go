package api

import (
	"time"

	"propertyhub/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type RouterConfig struct {
	// AllowedOrigins lists CORS origins; empty allows all
	AllowedOrigins []string
	// Development exposes error details in 500 responses
	Development bool
}

// NewRouter builds the gin engine with middleware and every route registered
func NewRouter(auth *service.AuthService, properties *service.PropertyService, logger *logrus.Logger, cfg RouterConfig) *gin.Engine {
	handler := NewHandler(auth, properties, logger, cfg.Development)

	router := gin.New()
	router.Use(handler.Recovery())
	router.Use(RequestLogger(logger))
	router.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	SetupRoutes(router, handler, auth)
	return router
}

func SetupRoutes(router *gin.Engine, handler *Handler, auth *service.AuthService) {
	api := router.Group("/api")
	{
		api.GET("/health", handler.Health)

		authRoutes := api.Group("/auth")
		authRoutes.POST("/register", handler.Register)
		authRoutes.POST("/login", handler.Login)
		authRoutes.POST("/logout", handler.Logout)

		properties := api.Group("/properties", RequireAuth(auth))
		properties.GET("", handler.ListProperties)
		properties.POST("", handler.CreateProperty)
		properties.PUT("/:id", handler.UpdateProperty)
		properties.DELETE("/:id", handler.DeleteProperty)
	}

	router.NoRoute(handler.NotFound)
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
