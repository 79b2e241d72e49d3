package taskapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	nanoid "github.com/matoous/go-nanoid/v2"

	"github.com/npratt/depviz/internal/model"
)

// RequestIDHeader carries a per-request id for correlating client and
// server logs.
const RequestIDHeader = "X-Request-ID"

const (
	requestIDAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	requestIDLength   = 12
)

// HTTPClient implements Client against the task service REST API.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithToken sets a bearer token sent on every request.
func WithToken(token string) Option {
	return func(c *HTTPClient) {
		c.token = token
	}
}

// WithTimeout bounds each request. Zero means no client-side timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *HTTPClient) {
		c.logger = logger
	}
}

// NewHTTPClient creates a client for the API rooted at baseURL
// (e.g. "http://localhost:8080/api").
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root without a trailing slash.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// --- Tasks ---

func (c *HTTPClient) Ready(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := c.doJSON(ctx, http.MethodGet, "/tasks/ready", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *HTTPClient) Blocked(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := c.doJSON(ctx, http.MethodGet, "/tasks/blocked", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// --- Dependencies ---

func (c *HTTPClient) Tree(ctx context.Context, taskID string) (*model.DependencyTree, error) {
	var tree model.DependencyTree
	if err := c.doJSON(ctx, http.MethodGet, "/dependencies/"+url.PathEscape(taskID)+"/tree", nil, &tree); err != nil {
		return nil, err
	}
	return &tree, nil
}

func (c *HTTPClient) Dependencies(ctx context.Context, taskID string) (*model.DependencyList, error) {
	var list model.DependencyList
	if err := c.doJSON(ctx, http.MethodGet, "/dependencies/"+url.PathEscape(taskID), nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

type createDependencyRequest struct {
	SourceID string               `json:"sourceId"`
	TargetID string               `json:"targetId"`
	Type     model.DependencyType `json:"type"`
}

// CreateDependency validates the triple locally before sending it; the
// server remains the authority on cycles and duplicates.
func (c *HTTPClient) CreateDependency(ctx context.Context, sourceID, targetID string, depType model.DependencyType) (*model.Dependency, error) {
	if err := model.ValidateTriple(sourceID, targetID, depType); err != nil {
		return nil, err
	}
	body := createDependencyRequest{SourceID: sourceID, TargetID: targetID, Type: depType}
	var dep model.Dependency
	if err := c.doJSON(ctx, http.MethodPost, "/dependencies", body, &dep); err != nil {
		return nil, err
	}
	// Some servers answer 201 with an empty body.
	if dep.SourceID == "" {
		dep = model.Dependency{SourceID: sourceID, TargetID: targetID, Type: depType}
	}
	return &dep, nil
}

func (c *HTTPClient) DeleteDependency(ctx context.Context, sourceID, targetID string, depType model.DependencyType) error {
	path := "/dependencies/" + url.PathEscape(sourceID) + "/" + url.PathEscape(targetID) + "/" + url.PathEscape(string(depType))
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// doJSON performs an HTTP request with optional JSON body and decodes the JSON response.
// If result is nil, or the response has no body, nothing is decoded.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	requestID, err := nanoid.Generate(requestIDAlphabet, requestIDLength)
	if err == nil {
		req.Header.Set(RequestIDHeader, requestID)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("api request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start))

	// 204 No Content: success with no body.
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return parseAPIError(resp.StatusCode, respBody)
	}

	if result != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func parseAPIError(status int, body []byte) error {
	var errResp struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &errResp) == nil {
		if errResp.Error != "" {
			return &APIError{StatusCode: status, Message: errResp.Error}
		}
		if errResp.Message != "" {
			return &APIError{StatusCode: status, Message: errResp.Message}
		}
	}
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &APIError{StatusCode: status, Message: msg}
}
