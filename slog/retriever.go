package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/mwalczyk/docdive"
)

// Ensure LoggingRetriever implements docdive.Retriever at compile time.
var _ docdive.Retriever = (*LoggingRetriever)(nil)

// LoggingRetriever wraps a Retriever with logging of searches and
// fetches, tagged with the wrapped source.
type LoggingRetriever struct {
	next   docdive.Retriever
	logger *slog.Logger
}

// NewLoggingRetriever creates a LoggingRetriever wrapping next.
func NewLoggingRetriever(next docdive.Retriever, logger *slog.Logger) *LoggingRetriever {
	return &LoggingRetriever{
		next:   next,
		logger: logger.With("source", next.Source()),
	}
}

// Source delegates to the wrapped retriever.
func (r *LoggingRetriever) Source() docdive.Source {
	return r.next.Source()
}

// Search delegates to the wrapped retriever and logs the outcome.
func (r *LoggingRetriever) Search(ctx context.Context, query string, maxResults int) ([]docdive.SearchResult, error) {
	start := time.Now()
	results, err := r.next.Search(ctx, query, maxResults)
	if err != nil {
		r.logger.Error("search",
			"query", query,
			"duration", time.Since(start),
			"err", err,
		)
		return nil, err
	}
	r.logger.Info("search",
		"query", query,
		"results", len(results),
		"duration", time.Since(start),
	)
	return results, nil
}

// Fetch delegates to the wrapped retriever and logs the outcome.
func (r *LoggingRetriever) Fetch(ctx context.Context, result docdive.SearchResult) (*docdive.DocumentContent, error) {
	start := time.Now()
	content, err := r.next.Fetch(ctx, result)
	if err != nil {
		r.logger.Error("fetch",
			"url", result.URL,
			"duration", time.Since(start),
			"err", err,
		)
		return nil, err
	}
	r.logger.Info("fetch",
		"url", result.URL,
		"bytes", len(content.Markdown),
		"duration", time.Since(start),
	)
	return content, nil
}
