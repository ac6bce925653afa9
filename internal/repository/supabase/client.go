// Package supabase stores records in a hosted Supabase project through its
// PostgREST endpoint (/rest/v1/<table>).
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/tuition_site/internal/service"
	"go.uber.org/zap"
)

const maxResponseBytes = 8 << 20

type Config struct {
	ProjectURL string
	APIKey     string
	Timeout    time.Duration
}

// Client performs PostgREST calls with the project's API key.
type Client struct {
	prefix string
	apiKey string
	http   *http.Client
	logger *zap.Logger
}

func New(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.ProjectURL == "" {
		return nil, fmt.Errorf("project URL is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}
	u, err := url.Parse(cfg.ProjectURL)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid project URL %q", cfg.ProjectURL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		prefix: strings.TrimRight(cfg.ProjectURL, "/") + "/rest/v1",
		apiKey: cfg.APIKey,
		http:   &http.Client{Timeout: timeout},
		logger: logger,
	}, nil
}

// APIError is a non-2xx PostgREST reply.
type APIError struct {
	Status  int
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("supabase: status %d", e.Status)
	}
	return fmt.Sprintf("supabase: status %d: %s (%s)", e.Status, e.Message, e.Code)
}

// Request sends body (JSON-encoded when not nil) to table and returns the raw
// response. query must already be encoded.
func (c *Client) Request(ctx context.Context, method, table string, body interface{}, query string) ([]byte, error) {
	data, _, err := c.do(ctx, method, table, body, query, "")
	return data, err
}

// Count returns the exact number of rows in table matching query, read from
// the Content-Range header of a HEAD request.
func (c *Client) Count(ctx context.Context, table, query string) (int, error) {
	_, header, err := c.do(ctx, http.MethodHead, table, nil, query, "count=exact")
	if err != nil {
		return 0, err
	}
	return parseContentRange(header.Get("Content-Range"))
}

// parseContentRange reads the total from "0-24/1500" or "*/1500".
func parseContentRange(v string) (int, error) {
	i := strings.LastIndex(v, "/")
	if i < 0 {
		return 0, fmt.Errorf("missing count in Content-Range %q", v)
	}
	n, err := strconv.Atoi(v[i+1:])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid count in Content-Range %q", v)
	}
	return n, nil
}

func (c *Client) do(ctx context.Context, method, table string, body interface{}, query, prefer string) ([]byte, http.Header, error) {
	if table == "" {
		return nil, nil, fmt.Errorf("table is required")
	}
	endpoint := c.prefix + "/" + url.PathEscape(table)
	if query != "" {
		endpoint += "?" + query
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal %s body: %w", table, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	switch {
	case prefer != "":
		req.Header.Set("Prefer", prefer)
	case method == http.MethodPost || method == http.MethodPatch:
		req.Header.Set("Prefer", "return=representation")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, nil, ctxErr
		}
		return nil, nil, fmt.Errorf("%s %s: %w: %v", method, table, service.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, nil, fmt.Errorf("read %s response: %w", table, err)
	}

	c.logger.Debug("Supabase request",
		zap.String("method", method),
		zap.String("table", table),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		_ = json.Unmarshal(data, apiErr)
		if resp.StatusCode >= 500 {
			return nil, nil, fmt.Errorf("%s %s: %w: %w", method, table, service.ErrUnavailable, apiErr)
		}
		return nil, nil, apiErr
	}
	return data, resp.Header, nil
}

// IsAPIError reports whether err carries a PostgREST status code.
func IsAPIError(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}
