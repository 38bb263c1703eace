package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const maxResponseBytes = 8 << 20

// Client talks to one API deployment on behalf of one organization and
// hackathon.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	token       string
	orgID       string
	hackathonID string
	userAgent   string
	log         *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(cl *Client) {
		cl.token = token
	}
}

// WithOrg sets the organization id used by org-scoped endpoints.
func WithOrg(orgID string) Option {
	return func(cl *Client) {
		cl.orgID = orgID
	}
}

// WithHackathon sets the hackathon id every endpoint is scoped to.
func WithHackathon(hackathonID string) Option {
	return func(cl *Client) {
		cl.hackathonID = hackathonID
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(log *zap.Logger) Option {
	return func(cl *Client) {
		if log != nil {
			cl.log = log
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(cl *Client) {
		cl.userAgent = ua
	}
}

// New creates a Client for the API rooted at baseURL (for example
// "https://example.org/api/v1").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		userAgent:  "hackadmin",
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HackathonID returns the hackathon the client is scoped to.
func (c *Client) HackathonID() string { return c.hackathonID }

// Token returns the bearer token, used when handing off to the OAuth connector.
func (c *Client) Token() string { return c.token }

func (c *Client) hackathonPath(format string, args ...any) (string, error) {
	if c.hackathonID == "" {
		return "", ErrMissingScope
	}
	return "/hackathons/" + url.PathEscape(c.hackathonID) + fmt.Sprintf(format, args...), nil
}

func (c *Client) orgHackathonPath(format string, args ...any) (string, error) {
	if c.orgID == "" || c.hackathonID == "" {
		return "", ErrMissingScope
	}
	return "/org/" + url.PathEscape(c.orgID) + "/hackathons/" + url.PathEscape(c.hackathonID) +
		fmt.Sprintf(format, args...), nil
}

// do issues one request and decodes a successful JSON response into out.
// out may be nil when the response body is not needed.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	c.log.Debug("request",
		zap.String("method", method),
		zap.String("url", target),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(data),
			Method:     method,
			Path:       path,
		}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s %s response: %w", method, path, err)
	}
	return nil
}
