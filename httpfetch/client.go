// Package httpfetch retrieves off-chain jetton metadata documents over HTTP.
package httpfetch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common/lru"
	"github.com/ethereum/go-ethereum/log"
)

// Client defaults.
const (
	DefaultMaxBodySize = 1 << 20
	DefaultCacheSize   = 16 << 20
	DefaultTimeout     = 15 * time.Second
	DefaultUserAgent   = "go-jetton/httpfetch"
)

var (
	// ErrTooLarge indicates a response body above the configured limit.
	ErrTooLarge = errors.New("httpfetch: response body too large")

	// ErrNotObject indicates a body that is not a JSON object.
	ErrNotObject = errors.New("httpfetch: response is not a JSON object")
)

// StatusError reports a non-2xx response.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("httpfetch: GET %s: status %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

// Client fetches JSON documents and caches the raw bodies of valid ones by URL.
type Client struct {
	http      *http.Client
	maxBody   int64
	cacheSize uint64
	cache     *lru.SizeConstrainedCache[string, []byte]
	userAgent string
	log       log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithMaxBodySize limits accepted response bodies.
func WithMaxBodySize(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBody = n
		}
	}
}

// WithCacheSize bounds the total cached bytes. Zero disables caching.
func WithCacheSize(n uint64) Option {
	return func(c *Client) {
		c.cacheSize = n
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a client.
func New(opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{Timeout: DefaultTimeout},
		maxBody:   DefaultMaxBodySize,
		cacheSize: DefaultCacheSize,
		userAgent: DefaultUserAgent,
		log:       log.New("module", "httpfetch"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cacheSize > 0 {
		c.cache = lru.NewSizeConstrainedCache[string, []byte](c.cacheSize)
	}
	return c
}

// Fetch GETs url and decodes the body as a JSON object. Numbers are kept as
// json.Number.
func (c *Client) Fetch(ctx context.Context, url string) (map[string]any, error) {
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w: %s", ErrNotObject, url)
		}
		return nil, fmt.Errorf("httpfetch: decode %s: %w", url, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotObject, url)
	}
	if c.cache != nil {
		c.cache.Add(url, body)
	}
	return doc, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	if c.cache != nil {
		if body, ok := c.cache.Get(url); ok {
			c.log.Trace("Metadata cache hit", "url", url)
			return body, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Debug("Metadata fetch failed", "url", url, "status", resp.StatusCode)
		return nil, &StatusError{URL: url, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > c.maxBody {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, url, c.maxBody)
	}
	c.log.Debug("Fetched metadata", "url", url, "size", len(body), "elapsed", time.Since(start))

	return body, nil
}
