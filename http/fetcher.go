// Package http provides the HTTP-based implementation of docdive.Fetcher
// shared by every documentation source. It rotates User-Agent headers to
// reduce fingerprinting-based blocking, rate limits requests per domain,
// and maps HTTP status codes onto the docdive error taxonomy.
package http

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/mwalczyk/docdive"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 15 * time.Second

// defaultUserAgents is the pool rotated across requests. Documentation
// sites are not designed for programmatic access; a single static agent
// string gets blocked quickly.
var defaultUserAgents = []string{
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64; rv:125.0) Gecko/20100101 Firefox/125.0",
}

// Ensure Fetcher implements docdive.Fetcher at compile time.
var _ docdive.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves payloads from documentation sites over HTTP.
type Fetcher struct {
	client     *http.Client
	timeout    time.Duration
	accept     string
	userAgents []string
	next       atomic.Uint64
	limiter    *DomainLimiter
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (15s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithAccept sets the Accept header sent with every request. Sources
// that serve JSON set "application/json"; HTML sources "text/html".
func WithAccept(accept string) Option {
	return func(f *Fetcher) {
		f.accept = accept
	}
}

// WithUserAgents replaces the rotated User-Agent pool.
func WithUserAgents(agents []string) Option {
	return func(f *Fetcher) {
		if len(agents) > 0 {
			f.userAgents = agents
		}
	}
}

// WithDomainLimiter sets a per-domain rate limiter applied before every
// request.
func WithDomainLimiter(l *DomainLimiter) Option {
	return func(f *Fetcher) {
		f.limiter = l
	}
}

// WithHTTPClient replaces the underlying client. Used by tests.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// NewFetcher creates a new HTTP Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:    DefaultFetchTimeout,
		accept:     "text/html",
		userAgents: defaultUserAgents,
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{
			Timeout: f.timeout,
		}
	}

	return f
}

// Fetch performs a GET against url and returns the response body.
// Status codes map onto the error taxonomy: 404 -> ENOTFOUND,
// 429 -> ERATELIMIT carrying any Retry-After hint, 401/403 ->
// EUNAUTHORIZED, any other non-2xx -> ENETWORK.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, docdive.Errorf(docdive.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent())
	req.Header.Set("Accept", f.accept)

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, req.URL.Host); err != nil {
			return nil, err
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, docdive.Errorf(docdive.ENETWORK, "request to %s failed: %v", url, err)
	}
	defer resp.Body.Close()

	if err := statusError(resp, url); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, docdive.Errorf(docdive.ENETWORK, "reading response from %s: %v", url, err)
	}

	return body, nil
}

// userAgent returns the next agent from the pool, round-robin.
func (f *Fetcher) userAgent() string {
	n := f.next.Add(1)
	return f.userAgents[int(n-1)%len(f.userAgents)]
}

// statusError maps a non-2xx response onto the error taxonomy.
func statusError(resp *http.Response, url string) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return docdive.Errorf(docdive.ENOTFOUND, "document not found: %s", url)
	case resp.StatusCode == http.StatusTooManyRequests:
		err := docdive.Errorf(docdive.ERATELIMIT, "rate limited by %s", resp.Request.URL.Host)
		err.RetryAfter = parseRetryAfter(resp.Header.Get("Retry-After"))
		return err
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return docdive.Errorf(docdive.EUNAUTHORIZED, "access denied by %s (HTTP %d)", resp.Request.URL.Host, resp.StatusCode)
	default:
		return docdive.Errorf(docdive.ENETWORK, "HTTP %d for %s", resp.StatusCode, url)
	}
}

// parseRetryAfter handles the delta-seconds form of Retry-After.
// The HTTP-date form is rare on documentation sites and is ignored.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	secs, err := strconv.Atoi(value)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
