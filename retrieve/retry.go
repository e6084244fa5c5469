package retrieve

import (
	"context"
	"log/slog"
	"time"

	"github.com/mwalczyk/docdive"
)

// Ensure RetryFetcher implements docdive.Fetcher at compile time.
var _ docdive.Fetcher = (*RetryFetcher)(nil)

// DefaultRetryDelays returns the backoff delays between fetch
// attempts: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// RetryFetcher decorates a Fetcher with exponential backoff on
// transient failures. Retrieval itself never retries; wrap a source's
// fetcher in one of these when a caller wants retry-on-failure
// behavior.
//
// Only ENETWORK and ERATELIMIT failures are retried. A Retry-After
// hint on a rate-limit error stretches the scheduled delay when the
// hint is longer.
type RetryFetcher struct {
	Fetcher docdive.Fetcher

	// Delays between attempts. Empty means DefaultRetryDelays.
	Delays []time.Duration

	// Logger for retry attempts. Nil discards.
	Logger *slog.Logger
}

// Fetch attempts the underlying fetch up to len(Delays)+1 times.
func (f *RetryFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	delays := f.Delays
	if len(delays) == 0 {
		delays = DefaultRetryDelays()
	}
	logger := f.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var lastErr error
	for attempt := 0; attempt <= len(delays); attempt++ {
		body, err := f.Fetcher.Fetch(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if attempt == len(delays) || !retryable(err) {
			break
		}

		delay := delays[attempt]
		if hint := docdive.RetryAfter(err); hint > delay {
			delay = hint
		}
		logger.Debug("retrying fetch",
			"url", url,
			"attempt", attempt+2,
			"delay", delay,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	return nil, lastErr
}

func retryable(err error) bool {
	switch docdive.ErrorCode(err) {
	case docdive.ENETWORK, docdive.ERATELIMIT:
		return true
	}
	return false
}
