// Package apiclient talks to the project board REST API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jxmullins/projectboard/internal/project"
	"go.uber.org/zap"
)

// ResourcePath is the fixed collection path on the backend.
const ResourcePath = "/api/projects"

// RequestIDHeader carries a per-request id so client and server logs can be
// correlated.
const RequestIDHeader = "X-Request-ID"

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes int64 = 8 << 20

// ErrInvalidResponse is returned when a decoded body is not the record the
// operation expects.
var ErrInvalidResponse = errors.New("invalid API response")

// StatusError reports a non-success HTTP status.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Status     string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s failed: %s: %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s failed: %s", e.Method, e.Path, e.Status)
}

// errorEnvelope is the backend's failure body, e.g. {"error": "Project not found"}.
type errorEnvelope struct {
	Error string `json:"error"`
}

// Config holds configuration for creating a Client.
type Config struct {
	BaseURL    string
	Timeout    time.Duration // zero means no client-side timeout
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client issues requests against the project resource.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// New creates a client for the API rooted at cfg.BaseURL.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  httpClient,
		logger:  logger,
	}
}

// BaseURL returns the API root this client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListOptions narrows a list request. Both filters are applied server side.
type ListOptions struct {
	Search string
	Status string
}

// List returns all projects, optionally filtered by a server-side search.
func (c *Client) List(ctx context.Context, search string) ([]project.Project, error) {
	return c.ListWith(ctx, ListOptions{Search: search})
}

// ListWith returns projects matching opts in backend order.
func (c *Client) ListWith(ctx context.Context, opts ListOptions) ([]project.Project, error) {
	query := url.Values{}
	if s := strings.TrimSpace(opts.Search); s != "" {
		query.Set("search", s)
	}
	if s := strings.TrimSpace(opts.Status); s != "" {
		query.Set("status", s)
	}

	body, status, err := c.do(ctx, http.MethodGet, ResourcePath, query, nil)
	if err != nil {
		return nil, err
	}

	var projects []project.Project
	if err := json.Unmarshal(body, &projects); err != nil {
		return nil, envelopeError(body, status, fmt.Errorf("%w: decoding project list: %v", ErrInvalidResponse, err))
	}
	for i, p := range projects {
		if err := validateRecord(p); err != nil {
			return nil, fmt.Errorf("project at index %d: %w", i, err)
		}
	}
	if projects == nil {
		projects = []project.Project{}
	}
	return projects, nil
}

// Get fetches a single project.
func (c *Client) Get(ctx context.Context, id project.ID) (*project.Project, error) {
	body, status, err := c.do(ctx, http.MethodGet, itemPath(id), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeProject(body, status)
}

// Create posts a new project and returns it with its assigned id.
func (c *Client) Create(ctx context.Context, payload project.Payload) (*project.Project, error) {
	body, status, err := c.do(ctx, http.MethodPost, ResourcePath, nil, payload)
	if err != nil {
		return nil, err
	}
	return decodeProject(body, status)
}

// Update replaces the editable fields of an existing project.
func (c *Client) Update(ctx context.Context, id project.ID, payload project.Payload) (*project.Project, error) {
	body, status, err := c.do(ctx, http.MethodPut, itemPath(id), nil, payload)
	if err != nil {
		return nil, err
	}
	return decodeProject(body, status)
}

// Delete removes a project. Unlike the other operations it fails on any
// non-2xx status before looking at the body.
func (c *Client) Delete(ctx context.Context, id project.ID) error {
	path := itemPath(id)
	body, status, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		var env errorEnvelope
		_ = json.Unmarshal(body, &env)
		return &StatusError{
			Method:     http.MethodDelete,
			Path:       path,
			StatusCode: status,
			Status:     fmt.Sprintf("%d %s", status, http.StatusText(status)),
			Message:    env.Error,
		}
	}

	var ack map[string]any
	if err := json.Unmarshal(body, &ack); err != nil {
		return fmt.Errorf("%w: decoding delete response: %v", ErrInvalidResponse, err)
	}
	return nil
}

// do performs one request and returns the raw body and status code.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, int, error) {
	var bodyReader io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("api request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil, 0, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("reading response body: %w", err)
	}

	c.logger.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("query", query.Encode()),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	return body, resp.StatusCode, nil
}

func itemPath(id project.ID) string {
	return ResourcePath + "/" + url.PathEscape(id.String())
}

// decodeProject decodes a single record without consulting the status
// code; a failure envelope or a record missing its id is rejected here.
func decodeProject(body []byte, status int) (*project.Project, error) {
	if err := envelopeError(body, status, nil); err != nil {
		return nil, err
	}
	var p project.Project
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("%w: decoding project: %v", ErrInvalidResponse, err)
	}
	if err := validateRecord(p); err != nil {
		return nil, err
	}
	return &p, nil
}

// envelopeError returns an error describing body when it is an
// {"error": ...} envelope, otherwise fallback.
func envelopeError(body []byte, status int, fallback error) error {
	var env errorEnvelope
	if json.Unmarshal(body, &env) == nil && env.Error != "" {
		return fmt.Errorf("%w: %s (HTTP %d)", ErrInvalidResponse, env.Error, status)
	}
	return fallback
}

func validateRecord(p project.Project) error {
	if p.ID.IsZero() {
		return fmt.Errorf("%w: project has no id", ErrInvalidResponse)
	}
	return nil
}
