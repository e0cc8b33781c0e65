package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"
)

const (
	apiPrefix      = "/api"
	requestTimeout = 10 * time.Second
	maxBodyBytes   = 1 << 20
	defaultRate    = 10
	defaultBurst   = 5
)

// Client is the ThreadsCity API client. Every request carries the
// client's cookie jar, JSON headers and a fixed timeout.
type Client struct {
	http    *http.Client
	jar     *cookiejar.Jar
	base    *url.URL
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithTransport replaces the HTTP transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.http.Transport = rt }
}

// WithRateLimit paces outgoing requests. A non-positive rps disables pacing.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// NewClient creates a client for the server at baseURL; requests go to
// baseURL + "/api" + path.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/") + apiPrefix)
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	c := &Client{
		http: &http.Client{
			Jar:     jar,
			Timeout: requestTimeout,
		},
		jar:     jar,
		base:    u,
		limiter: rate.NewLimiter(defaultRate, defaultBurst),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root, including the /api prefix.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// Cookies returns the cookies the jar would send to the API.
func (c *Client) Cookies() []*http.Cookie {
	return c.jar.Cookies(c.base)
}

// SetCookies loads cookies into the jar for the API host.
func (c *Client) SetCookies(cookies []*http.Cookie) {
	c.jar.SetCookies(c.base, cookies)
}

// Get issues a GET to path and decodes a JSON body into dst (if non-nil).
func (c *Client) Get(ctx context.Context, path string, dst interface{}) error {
	return c.Do(ctx, http.MethodGet, path, nil, dst)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, dst interface{}) error {
	return c.Do(ctx, http.MethodPost, path, body, dst)
}

// Do sends one request. Failures come back unchanged as *TransportError
// (no response) or *ResponseError (non-2xx); both are logged first.
func (c *Client) Do(ctx context.Context, method, path string, body, dst interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return c.fail(&TransportError{Method: method, Path: path, Err: err})
	}

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request for %s: %w", path, err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, rdr)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "threadscity/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return c.fail(&TransportError{Method: method, Path: path, Timeout: isTimeout(err), Err: err})
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return c.fail(&TransportError{Method: method, Path: path, Timeout: isTimeout(err), Err: err})
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.fail(&ResponseError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: raw})
	}

	if dst == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decoding response from %s: %w", path, err)
	}
	return nil
}

func (c *Client) fail(err error) error {
	switch e := err.(type) {
	case *TransportError:
		if e.Timeout {
			log.Printf("api: %s %s timed out: %v", e.Method, e.Path, e.Err)
		} else {
			log.Printf("api: %s %s got no response from server: %v", e.Method, e.Path, e.Err)
		}
	case *ResponseError:
		log.Printf("api: %s %s failed with HTTP %d", e.Method, e.Path, e.StatusCode)
	}
	return err
}
