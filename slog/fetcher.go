// Package slog provides logging decorators for the core interfaces.
// Wrapping happens at wiring time; the implementations themselves stay
// free of logging concerns.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/mwalczyk/docdive"
)

// Ensure LoggingFetcher implements docdive.Fetcher at compile time.
var _ docdive.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging of every request.
type LoggingFetcher struct {
	next   docdive.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a LoggingFetcher wrapping next.
func NewLoggingFetcher(next docdive.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	start := time.Now()
	body, err := f.next.Fetch(ctx, url)
	if err != nil {
		f.logger.Error("fetch",
			"url", url,
			"duration", time.Since(start),
			"err", err,
		)
		return nil, err
	}
	f.logger.Debug("fetch",
		"url", url,
		"bytes", len(body),
		"duration", time.Since(start),
	)
	return body, nil
}
