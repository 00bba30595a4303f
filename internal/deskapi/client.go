// Package deskapi is the typed client for the kiosk data service. The
// monitor only reads loan, host and settings snapshots and appends
// notification-log records; everything else the service owns is out of reach.
package deskapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const apiKeyHeader = "X-API-Key"

// APIError is returned for non-2xx responses from the data service.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("desk api error %d: %s", e.Status, e.Body)
}

// Client talks JSON over HTTP to the kiosk data service.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// New builds a client for the given base URL. The API key may be empty when
// the service does not require one (local development).
func New(baseURL, apiKey string, timeout time.Duration, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("desk api base URL is required")
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListAssetLoans returns all asset loan records.
func (c *Client) ListAssetLoans(ctx context.Context) ([]AssetLoan, error) {
	var loans []AssetLoan
	if err := c.get(ctx, "/api/asset-loans", &loans); err != nil {
		return nil, fmt.Errorf("list asset loans: %w", err)
	}
	return loans, nil
}

// ListKeyLoans returns all key loan records.
func (c *Client) ListKeyLoans(ctx context.Context) ([]KeyLoan, error) {
	var loans []KeyLoan
	if err := c.get(ctx, "/api/key-loans", &loans); err != nil {
		return nil, fmt.Errorf("list key loans: %w", err)
	}
	return loans, nil
}

// ListHosts returns the host directory.
func (c *Client) ListHosts(ctx context.Context) ([]Host, error) {
	var hosts []Host
	if err := c.get(ctx, "/api/hosts", &hosts); err != nil {
		return nil, fmt.Errorf("list hosts: %w", err)
	}
	return hosts, nil
}

// GetSettings returns the global kiosk settings.
func (c *Client) GetSettings(ctx context.Context) (*Settings, error) {
	var settings Settings
	if err := c.get(ctx, "/api/settings", &settings); err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &settings, nil
}

// CreateNotification appends one notification-log record.
func (c *Client) CreateNotification(ctx context.Context, record NotificationRecord) error {
	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/notifications", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("create notification: %w", readError(resp))
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return readError(resp)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}
}

func readError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}
