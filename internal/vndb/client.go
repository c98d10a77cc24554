package vndb

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

	"vnrename/internal/services"
)

const (
	defaultTimeout     = 10 * time.Second
	defaultSearchLimit = 10
	maxSearchLimit     = 100
	maxErrorBody       = 512
)

// Catalog defines the catalog operations used by matching.
type Catalog interface {
	SearchVN(ctx context.Context, query string, results int) ([]VN, error)
	ReleasesForVN(ctx context.Context, id string) ([]Release, error)
	SearchTags(ctx context.Context, name string) ([]Tag, error)
}

// Client provides access to the VNDB kana API.
type Client struct {
	baseURL    string
	token      string
	userAgent  string
	httpClient *http.Client
}

var _ Catalog = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithToken authenticates requests with an API token.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(agent string) Option {
	return func(c *Client) {
		if agent = strings.TrimSpace(agent); agent != "" {
			c.userAgent = agent
		}
	}
}

// New creates a VNDB client.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, services.Wrap(services.ErrConfiguration, "vndb", "new client", "base url required", nil)
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  "vnrename",
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// SearchVN runs a full-text VN search and returns up to results entries in
// catalog order.
func (c *Client) SearchVN(ctx context.Context, query string, results int) ([]VN, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, services.Wrap(services.ErrValidation, "vndb", "search vn", "query must not be empty", nil)
	}
	if results <= 0 {
		results = defaultSearchLimit
	}
	if results > maxSearchLimit {
		results = maxSearchLimit
	}

	var payload wireVNResponse
	req := queryRequest{
		Filters: []any{"search", "=", query},
		Fields:  vnFields,
		Results: results,
	}
	if err := c.post(ctx, "/vn", req, &payload); err != nil {
		return nil, err
	}

	out := make([]VN, 0, len(payload.Results))
	for _, item := range payload.Results {
		if vn, ok := item.toDomain(); ok {
			out = append(out, vn)
		}
	}
	return out, nil
}

// ReleasesForVN lists releases of the VN with the given identifier. The id is
// sent exactly as supplied; callers decide which id form to try.
func (c *Client) ReleasesForVN(ctx context.Context, id string) ([]Release, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, services.Wrap(services.ErrValidation, "vndb", "releases", "vn id must not be empty", nil)
	}

	var payload wireReleaseResponse
	req := queryRequest{
		Filters: []any{"vn", "=", []any{"id", "=", id}},
		Fields:  releaseFields,
	}
	if err := c.post(ctx, "/release", req, &payload); err != nil {
		return nil, err
	}

	out := make([]Release, 0, len(payload.Results))
	for _, item := range payload.Results {
		out = append(out, item.toDomain())
	}
	return out, nil
}

// SearchTags looks up catalog tags by name or alias.
func (c *Client) SearchTags(ctx context.Context, name string) ([]Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, services.Wrap(services.ErrValidation, "vndb", "search tags", "tag name must not be empty", nil)
	}

	var payload wireTagResponse
	req := queryRequest{
		Filters: []any{"search", "=", name},
		Fields:  tagFields,
	}
	if err := c.post(ctx, "/tag", req, &payload); err != nil {
		return nil, err
	}

	out := make([]Tag, 0, len(payload.Results))
	for _, item := range payload.Results {
		if tag, ok := item.toDomain(); ok {
			out = append(out, tag)
		}
	}
	return out, nil
}

func (c *Client) post(ctx context.Context, path string, body queryRequest, out any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return services.Wrap(services.ErrValidation, "vndb", path, "encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return services.Wrap(services.ErrValidation, "vndb", path, "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		marker := services.ErrTransient
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			marker = services.ErrTimeout
		}
		return services.Wrap(marker, "vndb", path, fmt.Sprintf("execute request (latency=%v)", latency), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		message := fmt.Sprintf("returned %d (latency=%v): %s", resp.StatusCode, latency, strings.TrimSpace(string(snippet)))
		return services.Wrap(services.ErrTransient, "vndb", path, message, nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return services.Wrap(services.ErrTransient, "vndb", path, "decode response", err)
	}
	return nil
}

func isTimeout(err error) bool {
	var timeout interface{ Timeout() bool }
	return errors.As(err, &timeout) && timeout.Timeout()
}
