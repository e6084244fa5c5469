package docdive

import "context"

// Fetcher retrieves raw payloads from URLs. Implementations own the
// transport details: headers, timeouts, rate limiting, and the mapping
// of HTTP outcomes onto the error taxonomy (ENOTFOUND, ERATELIMIT,
// EUNAUTHORIZED, ENETWORK).
type Fetcher interface {
	// Fetch performs a GET and returns the response body. The context
	// controls timeout and cancellation.
	Fetch(ctx context.Context, url string) ([]byte, error)
}
