package httpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout bounds every request that carries no deadline of its own.
const DefaultTimeout = 15 * time.Second

// devPrefix is the fixed relative prefix served by pharmadesk-proxy.
const devPrefix = "/api"

// Config selects the backend base address.
type Config struct {
	// BaseURL, when non-empty, is used verbatim.
	BaseURL string
	// Scheme/Host/Port derive the base when BaseURL is empty. A zero Port
	// falls back to the protocol default.
	Scheme string
	Host   string
	Port   int
	// DevProxy routes requests through the local dev proxy prefix.
	DevProxy     bool
	DevProxyAddr string

	Timeout time.Duration
}

var (
	baseOnce sync.Once
	baseURL  *url.URL
	baseErr  error
)

// ResolveBase determines the backend base address. The resolution happens
// once per process lifetime; later calls return the first result regardless
// of cfg.
func ResolveBase(cfg Config) (*url.URL, error) {
	baseOnce.Do(func() {
		baseURL, baseErr = resolve(cfg)
	})
	return baseURL, baseErr
}

// Base returns the resolved base address, or nil before resolution.
func Base() *url.URL {
	return baseURL
}

// ResetBase clears the cached base address. Tests only.
func ResetBase() {
	baseOnce = sync.Once{}
	baseURL = nil
	baseErr = nil
}

func resolve(cfg Config) (*url.URL, error) {
	if cfg.DevProxy {
		addr := cfg.DevProxyAddr
		if addr == "" {
			addr = "127.0.0.1:3000"
		}
		return url.Parse("http://" + addr + devPrefix)
	}
	if cfg.BaseURL != "" {
		u, err := url.Parse(cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("httpc: parse base url: %w", err)
		}
		if u.Scheme == "" || u.Host == "" {
			return nil, errors.New("httpc: base url must be absolute")
		}
		return u, nil
	}
	scheme := cfg.Scheme
	if scheme == "" {
		scheme = "http"
	}
	host := cfg.Host
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port == 0 {
		if scheme == "https" {
			port = 443
		} else {
			port = 80
		}
	}
	return &url.URL{Scheme: scheme, Host: host + ":" + strconv.Itoa(port)}, nil
}

// Client issues JSON requests against the resolved base address.
type Client struct {
	base    *url.URL
	httpc   *http.Client
	timeout time.Duration
	logger  *slog.Logger
	token   func() string
}

// Option customizes a Client.
type Option func(*Client)

// WithToken installs a bearer token source attached to every request.
func WithToken(source func() string) Option {
	return func(c *Client) { c.token = source }
}

// WithLogger installs a request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithHTTPClient replaces the underlying transport. Tests only.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpc = hc }
}

// WithBase overrides base resolution with an explicit address. Tests only.
func WithBase(u *url.URL) Option {
	return func(c *Client) { c.base = u }
}

// New resolves the base address and builds a client.
func New(cfg Config, opts ...Option) (*Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		httpc:   &http.Client{},
		timeout: timeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.base == nil {
		base, err := ResolveBase(cfg)
		if err != nil {
			return nil, err
		}
		c.base = base
	}
	return c, nil
}

// Base returns the address every request is built against.
func (c *Client) Base() *url.URL {
	return c.base
}

// DoRaw sends one request and returns the response body and declared content
// type. Non-2xx responses become a typed *Error; an exceeded deadline
// surfaces as ErrTimeout.
func (c *Client) DoRaw(ctx context.Context, method, path string, query url.Values, body any) ([]byte, string, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	u := c.base.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, "", fmt.Errorf("httpc: encode body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, "", fmt.Errorf("httpc: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, "", fmt.Errorf("httpc: %s %s: %w", method, path, ErrTimeout)
		}
		return nil, "", fmt.Errorf("httpc: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("httpc: read response: %w", err)
	}

	if c.logger != nil {
		c.logger.Debug("request done",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", &Error{
			Status: resp.StatusCode,
			Body:   data,
			Detail: errorDetail(data),
		}
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// Do sends one request and decodes the response into out. JSON bodies are
// unmarshalled; any other content type is only accepted into a *string.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	data, contentType, err := c.DoRaw(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if isJSON(contentType) {
		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("httpc: decode response: %w", err)
		}
		return nil
	}
	if s, ok := out.(*string); ok {
		*s = string(data)
		return nil
	}
	return fmt.Errorf("httpc: expected JSON response, got %q", contentType)
}

func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediatype, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediatype == "application/json" || mediatype == "application/problem+json"
}

// errorDetail extracts the backend's "detail" field, if any.
func errorDetail(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Detail
}
