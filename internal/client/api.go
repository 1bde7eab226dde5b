// Package client implements the application-facing tier: a typed API client
// for the backend, session persistence, the portfolio view model, and the
// debounced market search controller.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pshvarts/stockfolio/internal/common"
	"github.com/pshvarts/stockfolio/internal/models"
)

const defaultTimeout = 15 * time.Second

// APIError carries the backend's structured error body alongside the status.
type APIError struct {
	StatusCode int
	ErrorLabel string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (status: %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("request failed (status: %d)", e.StatusCode)
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

// API is a typed HTTP client for the backend REST surface.
type API struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
}

// APIOption configures the client
type APIOption func(*API)

// WithHTTPClient sets the underlying HTTP client
func WithHTTPClient(hc *http.Client) APIOption {
	return func(a *API) {
		a.httpClient = hc
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) APIOption {
	return func(a *API) {
		a.logger = logger
	}
}

// NewAPI creates a backend API client.
func NewAPI(baseURL string, opts ...APIOption) *API {
	a := &API{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// do executes a request and decodes a success body into result. Non-2xx
// responses are returned as *APIError with the server's message field.
func (a *API) do(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	a.logger.Debug().Str("method", method).Str("path", path).Msg("Backend API request")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errBody struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errBody); decodeErr == nil {
			apiErr.ErrorLabel = errBody.Error
			apiErr.Message = errBody.Message
		}
		return apiErr
	}

	if result == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// userEnvelope is the success wrapper used by the user routes.
type userEnvelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

// Login authenticates by username existence and returns the user.
func (a *API) Login(ctx context.Context, username string) (*models.User, error) {
	var resp userEnvelope
	err := a.do(ctx, http.MethodPost, "/user/login", map[string]string{"username": username}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Register creates a user account.
func (a *API) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	var resp userEnvelope
	err := a.do(ctx, http.MethodPost, "/user/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.User, nil
}

// GetUser fetches a user by name.
func (a *API) GetUser(ctx context.Context, name string) (*models.User, error) {
	var resp userEnvelope
	if err := a.do(ctx, http.MethodGet, "/user/"+name, nil, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// DatabaseSummary is the shape of the users overview endpoint.
type DatabaseSummary struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	TotalUsers int    `json:"totalUsers"`
	Users      []struct {
		Name      string    `json:"name"`
		Email     string    `json:"email"`
		CreatedAt time.Time `json:"created_at"`
	} `json:"users"`
}

// CheckDatabase fetches the users collection summary.
func (a *API) CheckDatabase(ctx context.Context) (*DatabaseSummary, error) {
	var resp DatabaseSummary
	if err := a.do(ctx, http.MethodGet, "/user/check/database", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetPortfolio fetches the portfolio for a user, or nil when none exists.
func (a *API) GetPortfolio(ctx context.Context, user string) (*models.Portfolio, error) {
	var p models.Portfolio
	err := a.do(ctx, http.MethodGet, "/portfolio/"+user, nil, &p)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// CreatePortfolio creates a portfolio document.
func (a *API) CreatePortfolio(ctx context.Context, p *models.Portfolio) (*models.Portfolio, error) {
	var created models.Portfolio
	if err := a.do(ctx, http.MethodPost, "/portfolio", p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdatePortfolio persists a replacement holdings list for the user.
// Returns nil when the server reports no portfolio for the user.
func (a *API) UpdatePortfolio(ctx context.Context, user string, stocks []models.PortfolioStock) (*models.Portfolio, error) {
	var updated *models.Portfolio
	err := a.do(ctx, http.MethodPut, "/portfolio/"+user, map[string]interface{}{
		"stocks": stocks,
	}, &updated)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeletePortfolio removes the user's portfolio.
func (a *API) DeletePortfolio(ctx context.Context, user string) error {
	return a.do(ctx, http.MethodDelete, "/portfolio/"+user, nil, nil)
}
