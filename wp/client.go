package wp

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
)

const (
	defaultTimeout = 10 * time.Second

	// DefaultCacheWindow is how long a successful payload is reused for
	// the same query+variables pair. This is the sole freshness
	// mechanism between revalidations: near-real-time without hammering
	// the upstream on every page view.
	DefaultCacheWindow = 60 * time.Second

	defaultUserAgent = "CloudReno-Blog/1.0"
)

// Client issues GraphQL queries to the upstream content source. Every
// call is a single request/response; no retries happen here. All the
// catalog queries are read-only so retries would be safe, but policy is
// deliberately left to the orchestrating layer.
type Client struct {
	endpoint  string
	http      *http.Client
	cache     *gocache.Cache
	window    time.Duration
	userAgent string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

// WithCache injects the response cache. Tests pass a cache with a tiny
// window or bypass caching entirely with a zero window.
func WithCache(cache *gocache.Cache) ClientOption {
	return func(c *Client) { c.cache = cache }
}

// WithCacheWindow sets the reuse window for cached payloads.
func WithCacheWindow(d time.Duration) ClientOption {
	return func(c *Client) { c.window = d }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient builds a client for the given endpoint. A missing endpoint
// is a fatal configuration error, not a per-request failure.
func NewClient(endpoint string, opts ...ClientOption) (*Client, error) {
	if endpoint == "" {
		return nil, ErrEndpointNotConfigured
	}
	c := &Client{
		endpoint:  endpoint,
		http:      &http.Client{Timeout: defaultTimeout},
		window:    DefaultCacheWindow,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cache == nil {
		c.cache = gocache.New(c.window, 2*c.window)
	}
	return c, nil
}

// Execute validates vars against the query's schema, sends the query,
// and decodes the data payload into out. Failures surface as
// *TransportError, *ProtocolError or *UpstreamError; nothing is
// swallowed here, callers decide fallback policy.
func (c *Client) Execute(ctx context.Context, q Query, vars map[string]any, out any) error {
	if err := q.Validate(vars); err != nil {
		return err
	}

	key, err := cacheKey(q, vars)
	if err != nil {
		return errors.Wrapf(err, "wp: encode variables for %s", q.Name)
	}
	if c.window > 0 {
		if cached, ok := c.cache.Get(key); ok {
			return json.Unmarshal(cached.([]byte), out)
		}
	}

	payload, err := json.Marshal(map[string]any{
		"query":     q.Doc,
		"variables": vars,
	})
	if err != nil {
		return errors.Wrapf(err, "wp: encode request for %s", q.Name)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrapf(err, "wp: build request for %s", q.Name)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Query: q.Name, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Query: q.Name, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ProtocolError{Query: q.Name, Status: resp.StatusCode}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return &ProtocolError{Query: q.Name, Err: err}
	}
	// Partial success (data alongside errors) is still a failure: none
	// of the catalog queries tolerate partial data.
	if len(env.Errors) > 0 {
		return &UpstreamError{Query: q.Name, Errors: env.Errors}
	}
	if env.Data == nil {
		return &ProtocolError{Query: q.Name, Err: errors.New("envelope carried neither data nor errors")}
	}

	if c.window > 0 {
		c.cache.Set(key, []byte(env.Data), c.window)
	}
	return json.Unmarshal(env.Data, out)
}

// cacheKey is the query name plus the canonical JSON encoding of the
// variables. json.Marshal sorts map keys, so equal variable sets always
// produce equal keys.
func cacheKey(q Query, vars map[string]any) (string, error) {
	encoded, err := json.Marshal(vars)
	if err != nil {
		return "", err
	}
	return q.Name + ":" + string(encoded), nil
}
