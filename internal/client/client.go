// Package client is the typed handle on the mess API used by the terminal
// app. One Client is built from the environment and shared by every hook.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"
)

// Environment variables read by FromEnv.
const (
	EnvURL     = "MESS_API_URL"
	EnvAnonKey = "MESS_ANON_KEY"
)

// ErrNotConfigured is returned by every call of a client built without an
// API URL or anon key.
var ErrNotConfigured = errors.New("mess API is not configured: set " + EnvURL + " and " + EnvAnonKey)

// Config configures a Client.
type Config struct {
	URL     string
	AnonKey string
	// HTTPClient defaults to a client with a 15s timeout.
	HTTPClient *http.Client
}

// APIError is a non-2xx response. Its message is the server's.
type APIError struct {
	Status  int
	Code    string
	Message string
	Details any
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// Client talks to the mess API. It is safe for concurrent use.
type Client struct {
	baseURL   *url.URL
	anonKey   string
	http      *http.Client
	configErr error

	mu    sync.RWMutex
	token string
}

// New builds a client. Missing values do not fail here; the returned
// client fails every call with ErrNotConfigured instead.
func New(cfg Config) *Client {
	c := &Client{
		anonKey: cfg.AnonKey,
		http:    cfg.HTTPClient,
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 15 * time.Second}
	}

	if strings.TrimSpace(cfg.URL) == "" || strings.TrimSpace(cfg.AnonKey) == "" {
		c.configErr = ErrNotConfigured
		return c
	}

	u, err := url.Parse(strings.TrimRight(cfg.URL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		c.configErr = fmt.Errorf("%w: invalid %s %q", ErrNotConfigured, EnvURL, cfg.URL)
		return c
	}
	c.baseURL = u
	return c
}

// FromEnv builds the client from MESS_API_URL and MESS_ANON_KEY.
func FromEnv() *Client {
	return New(Config{
		URL:     os.Getenv(EnvURL),
		AnonKey: os.Getenv(EnvAnonKey),
	})
}

// Configured reports the configuration error, if any.
func (c *Client) Configured() error {
	return c.configErr
}

// SetToken replaces the session token sent as the bearer.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token returns the current session token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details any    `json:"details"`
	} `json:"error"`
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/api/v1" + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	return c.do(ctx, method, path, query, reader, "application/json", out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	if c.configErr != nil {
		return c.configErr
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil && !errors.Is(err, io.EOF) {
		if resp.StatusCode >= 300 {
			return &APIError{Status: resp.StatusCode}
		}
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = errorMessage(env.Error.Message, env.Error.Details)
			apiErr.Details = env.Error.Details
		}
		return apiErr
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return nil
}

// errorMessage folds a plain string detail into the message so a single
// line tells the user what went wrong.
func errorMessage(message string, details any) string {
	if s, ok := details.(string); ok && s != "" && s != message {
		return message + ": " + s
	}
	return message
}
