package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrRequestFailed is matched by every error the resource client returns.
// Transport failures, non-2xx statuses and bad bodies are not told apart.
var ErrRequestFailed = errors.New("store request failed")

// RequestError describes one failed call to the remote store
type RequestError struct {
	Method     string
	Path       string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

// Is makes errors.Is(err, ErrRequestFailed) hold for every RequestError
func (e *RequestError) Is(target error) bool {
	return target == ErrRequestFailed
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// ResourceClient issues CRUD calls against REST collections of the remote store.
// out arguments are decoded from the JSON response and may be nil.
type ResourceClient interface {
	List(ctx context.Context, collection string, out interface{}) error
	Create(ctx context.Context, collection string, record interface{}, out interface{}) error
	Update(ctx context.Context, collection string, id uint, record interface{}, out interface{}) error
	Delete(ctx context.Context, collection string, id uint) error
}

// RESTClient implements ResourceClient over HTTP with JSON bodies
type RESTClient struct {
	baseURL    string
	httpClient *http.Client
}

var storeClientInstance ResourceClient

// NewRESTClient creates a client for the store rooted at baseURL
func NewRESTClient(baseURL string, timeout time.Duration) *RESTClient {
	return &RESTClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// InitStoreClient initializes the shared resource client
func InitStoreClient(baseURL string, timeout time.Duration) ResourceClient {
	storeClientInstance = NewRESTClient(baseURL, timeout)
	return storeClientInstance
}

// GetStoreClient returns the initialized resource client
func GetStoreClient() ResourceClient {
	return storeClientInstance
}

// SetStoreClient sets the resource client instance (primarily for testing)
func SetStoreClient(client ResourceClient) {
	storeClientInstance = client
}

// BaseURL returns the store root the client calls
func (c *RESTClient) BaseURL() string {
	return c.baseURL
}

// List handles GET /{collection}
func (c *RESTClient) List(ctx context.Context, collection string, out interface{}) error {
	return c.do(ctx, http.MethodGet, "/"+collection, nil, out)
}

// Create handles POST /{collection}
func (c *RESTClient) Create(ctx context.Context, collection string, record interface{}, out interface{}) error {
	return c.do(ctx, http.MethodPost, "/"+collection, record, out)
}

// Update handles PATCH /{collection}/{id}
func (c *RESTClient) Update(ctx context.Context, collection string, id uint, record interface{}, out interface{}) error {
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/%s/%d", collection, id), record, out)
}

// Delete handles DELETE /{collection}/{id}
func (c *RESTClient) Delete(ctx context.Context, collection string, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/%s/%d", collection, id), nil, nil)
}

func (c *RESTClient) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	fail := func(status int, err error) error {
		return &RequestError{Method: method, Path: path, StatusCode: status, Err: err}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fail(0, fmt.Errorf("failed to encode request: %w", err))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fail(0, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fail(0, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return fail(resp.StatusCode, nil)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fail(0, fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}
