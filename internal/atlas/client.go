// Package atlas is a minimal client for the MongoDB Atlas Admin API, covering
// the cloud backup snapshot and restore job endpoints.
package atlas

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

	"github.com/mongodb-forks/digest"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://cloud.mongodb.com/api/atlas/v1.0"

	defaultTimeout      = 60 * time.Second
	defaultRateInterval = 600 * time.Millisecond
	defaultRateBurst    = 5
)

// Config holds the API credentials and the project the client acts on.
type Config struct {
	BaseURL    string
	PublicKey  string
	PrivateKey string
	ProjectID  string
}

// Client talks to the Atlas Admin API. Requests are authenticated with HTTP
// digest and paced by a token bucket.
type Client struct {
	baseURL   string
	projectID string
	http      *http.Client
	limiter   *rate.Limiter
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the digest-authenticated HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLimiter replaces the default request pacing.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// New builds a Client from cfg.
func New(cfg Config, opts ...Option) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}

	c := &Client{
		baseURL:   strings.TrimRight(base, "/"),
		projectID: cfg.ProjectID,
		http: &http.Client{
			Transport: digest.NewTransport(cfg.PublicKey, cfg.PrivateKey),
			Timeout:   defaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Every(defaultRateInterval), defaultRateBurst),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) clusterPath(cluster string, elem ...string) string {
	p := "/groups/" + url.PathEscape(c.projectID) + "/clusters/" + url.PathEscape(cluster) + "/backup"
	for _, e := range elem {
		p += "/" + url.PathEscape(e)
	}
	return p
}

// do performs one request and decodes a 2xx JSON body into out.
// Non-2xx responses come back as *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s: %w", method, path, err)
	}
	return nil
}
