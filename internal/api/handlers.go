package api

import (
	"errors"
	"io"
	"net/http"

	"propertyhub/internal/apperr"
	"propertyhub/internal/models"
	"propertyhub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const msgInvalidBody = "Invalid request body"

type Handler struct {
	auth       *service.AuthService
	properties *service.PropertyService
	logger     *logrus.Logger

	// exposeErrors adds the underlying error to 500 responses
	exposeErrors bool
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func NewHandler(auth *service.AuthService, properties *service.PropertyService, logger *logrus.Logger, exposeErrors bool) *Handler {
	return &Handler{
		auth:         auth,
		properties:   properties,
		logger:       logger,
		exposeErrors: exposeErrors,
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Debug("Failed to parse register request")
		c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalidBody})
		return
	}

	session, err := h.auth.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    session.User,
		"token":   session.Token,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Debug("Failed to parse login request")
		c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalidBody})
		return
	}

	session, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    session.User,
		"token":   session.Token,
	})
}

// Logout is stateless; the client discards its token
func (h *Handler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"message": "Server is running",
	})
}

func (h *Handler) ListProperties(c *gin.Context) {
	properties, err := h.properties.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Properties retrieved successfully",
		"properties": properties,
		"count":      len(properties),
	})
}

func (h *Handler) CreateProperty(c *gin.Context) {
	in, ok := h.bindPropertyInput(c)
	if !ok {
		return
	}

	property, err := h.properties.Create(c.Request.Context(), currentUserID(c), in)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Property created successfully",
		"property": property,
	})
}

func (h *Handler) UpdateProperty(c *gin.Context) {
	in, ok := h.bindPropertyInput(c)
	if !ok {
		return
	}

	property, err := h.properties.Update(c.Request.Context(), currentUserID(c), c.Param("id"), in)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Property updated successfully",
		"property": property,
	})
}

func (h *Handler) DeleteProperty(c *gin.Context) {
	property, err := h.properties.Delete(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Property deleted successfully",
		"property": property,
	})
}

func (h *Handler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
}

// bindPropertyInput decodes a JSON object body; an empty body is an empty input
func (h *Handler) bindPropertyInput(c *gin.Context) (models.PropertyInput, bool) {
	in := models.PropertyInput{}
	if err := c.ShouldBindJSON(&in); err != nil && !errors.Is(err, io.EOF) {
		h.logger.WithError(err).Debug("Failed to parse property request")
		c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalidBody})
		return nil, false
	}
	if in == nil {
		in = models.PropertyInput{}
	}
	return in, true
}

// respondError writes err as a {message} body with the status of its kind
func (h *Handler) respondError(c *gin.Context, err error) {
	status, message := statusAndMessage(err)
	if status < http.StatusInternalServerError {
		c.JSON(status, gin.H{"message": message})
		return
	}

	h.logger.WithError(err).WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
	}).Error(message)

	body := gin.H{"message": message}
	if h.exposeErrors {
		body["error"] = err.Error()
	}
	c.JSON(status, body)
}

func statusAndMessage(err error) (int, string) {
	status := apperr.KindOf(err).HTTPStatus()
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		return status, "Internal server error"
	}
	return status, appErr.Message
}
