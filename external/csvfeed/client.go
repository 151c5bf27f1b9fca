package csvfeed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/fantasy-projections/internal/domain/source"
	"github.com/riskibarqy/fantasy-projections/internal/platform/logging"
	"github.com/riskibarqy/fantasy-projections/internal/platform/resilience"
)

const (
	defaultTimeout      = 30 * time.Second
	defaultMaxBodyBytes = 64 << 20
)

// ErrNotPublished marks a 404 from the upstream: the file for the requested
// season or week does not exist yet.
var ErrNotPublished = crerr.New("no data published")

// ErrBodyTooLarge rejects a download over the configured size limit.
var ErrBodyTooLarge = crerr.New("response body too large")

type ClientConfig struct {
	HTTPClient     *http.Client
	Name           source.Name
	Timeout        time.Duration
	UserAgent      string
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	// MaxBodyBytes caps a download; larger bodies fail instead of being cut.
	MaxBodyBytes int64
}

// Client downloads CSV files over HTTP. Every failure is marked with
// source.ErrUnavailable and no request is retried.
type Client struct {
	httpClient *http.Client
	name       source.Name
	userAgent  string
	maxBody    int64
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	flight     resilience.Group[[]byte]
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = "fantasy-projections/1.0"
	}

	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}

	breaker := resilience.NewFromConfig(string(cfg.Name), cfg.CircuitBreaker)
	if breaker != nil {
		breaker.WithIgnore(func(err error) bool { return crerr.Is(err, ErrNotPublished) })
	}

	return &Client{
		httpClient: httpClient,
		name:       cfg.Name,
		userAgent:  userAgent,
		maxBody:    maxBody,
		logger:     logger.Named(string(cfg.Name)),
		breaker:    breaker,
	}
}

// Get fetches url and returns its body. Concurrent calls for the same url
// share one request.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	body, err, shared := c.flight.Do(url, func() ([]byte, error) {
		var out []byte
		err := c.breaker.Do(ctx, func(ctx context.Context) error {
			var reqErr error
			out, reqErr = c.get(ctx, url)
			return reqErr
		})
		return out, err
	})
	if err != nil {
		if crerr.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "circuit breaker rejected request", "url", url, "state", c.breaker.State())
		}
		return nil, c.unavailable(err, "get %s", url)
	}
	if shared {
		c.logger.DebugContext(ctx, "shared in-flight download", "url", url)
	}
	return body, nil
}

// Probe issues a HEAD request and reports whether the upstream answers.
func (c *Client) Probe(ctx context.Context, url string) error {
	err := c.breaker.Do(ctx, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("send request: %w", err)
		}
		_ = resp.Body.Close()
		if resp.StatusCode == http.StatusNotFound {
			return ErrNotPublished
		}
		if resp.StatusCode >= http.StatusBadRequest {
			return fmt.Errorf("upstream status=%d", resp.StatusCode)
		}
		return nil
	})
	if err != nil {
		return c.unavailable(err, "probe %s", url)
	}
	return nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, application/octet-stream")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, ErrNotPublished
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	n, err := io.Copy(buf, io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("upstream status=%d body=%s", resp.StatusCode, abbreviateBody(buf.B))
	}
	if n > c.maxBody {
		return nil, fmt.Errorf("%w: response exceeds %d bytes", ErrBodyTooLarge, c.maxBody)
	}

	c.logger.DebugContext(ctx, "downloaded csv",
		"url", url,
		"bytes", buf.Len(),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	out := make([]byte, buf.Len())
	copy(out, buf.B)
	return out, nil
}

func (c *Client) unavailable(err error, format string, args ...any) error {
	return crerr.Mark(crerr.Wrapf(err, "%s: "+format, append([]any{c.name}, args...)...), source.ErrUnavailable)
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
