// Package client is the data layer behind propertyctl: a JSON client for the
// REST API, a reducer-driven state container and a locally persisted session.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"propertyhub/internal/models"
)

// APIError is a non-2xx response from the server
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

type AuthResponse struct {
	Message string            `json:"message"`
	User    models.PublicUser `json:"user"`
	Token   string            `json:"token"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type propertiesResponse struct {
	Message    string            `json:"message"`
	Properties []models.Property `json:"properties"`
	Count      int               `json:"count"`
}

type propertyResponse struct {
	Message  string          `json:"message"`
	Property models.Property `json:"property"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Client talks to the PropertyHub REST API
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken sets the bearer token sent with every request; "" sends none
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Register(ctx context.Context, username, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	body := map[string]string{"username": username, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, &messageResponse{})
}

func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListProperties(ctx context.Context) ([]models.Property, error) {
	var resp propertiesResponse
	if err := c.do(ctx, http.MethodGet, "/api/properties", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Properties, nil
}

func (c *Client) CreateProperty(ctx context.Context, in models.PropertyInput) (*models.Property, error) {
	var resp propertyResponse
	if err := c.do(ctx, http.MethodPost, "/api/properties", in, &resp); err != nil {
		return nil, err
	}
	return &resp.Property, nil
}

func (c *Client) UpdateProperty(ctx context.Context, id string, in models.PropertyInput) (*models.Property, error) {
	var resp propertyResponse
	if err := c.do(ctx, http.MethodPut, "/api/properties/"+id, in, &resp); err != nil {
		return nil, err
	}
	return &resp.Property, nil
}

func (c *Client) DeleteProperty(ctx context.Context, id string) (*models.Property, error) {
	var resp propertyResponse
	if err := c.do(ctx, http.MethodDelete, "/api/properties/"+id, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Property, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body messageResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Message = body.Message
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
