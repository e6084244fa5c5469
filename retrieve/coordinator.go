// Package retrieve provides multi-source retrieval orchestration: a
// coordinator that fans a query out across every enabled source
// concurrently and merges partial failures, plus an opt-in retrying
// fetcher decorator.
package retrieve

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mwalczyk/docdive"
	"golang.org/x/sync/errgroup"
)

// Coordinator fans a search out across its registered retrievers.
// Sources fail independently: one source's error never aborts the
// others, and the merged result list concatenates each source's
// results in registration order.
type Coordinator struct {
	retrievers []docdive.Retriever
	bySource   map[docdive.Source]docdive.Retriever
	logger     *slog.Logger
}

// NewCoordinator registers the retrievers in the given order. That
// order is the stable merge order for aggregated results. A nil logger
// discards logs.
func NewCoordinator(logger *slog.Logger, retrievers ...docdive.Retriever) *Coordinator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	c := &Coordinator{
		logger:   logger,
		bySource: make(map[docdive.Source]docdive.Retriever, len(retrievers)),
	}
	for _, r := range retrievers {
		if _, dup := c.bySource[r.Source()]; dup {
			continue
		}
		c.retrievers = append(c.retrievers, r)
		c.bySource[r.Source()] = r
	}
	return c
}

// Search queries every enabled source concurrently and merges the
// results. sources nil or empty enables every registered source. The
// returned error map records per-source failures and is non-nil only
// when at least one source failed; the call itself fails only when no
// source is enabled or every enabled source failed, the latter with a
// *docdive.SourceErrors carrying the per-source failures.
func (c *Coordinator) Search(ctx context.Context, query string, sources []docdive.Source, maxPerSource int) ([]docdive.SearchResult, map[docdive.Source]error, error) {
	enabled, err := c.enabled(sources)
	if err != nil {
		return nil, nil, err
	}

	searchID := uuid.NewString()
	logger := c.logger.With("search_id", searchID, "query", query)
	start := time.Now()

	perSource := make([][]docdive.SearchResult, len(enabled))
	errs := make([]error, len(enabled))

	g, gctx := errgroup.WithContext(ctx)
	for i, r := range enabled {
		g.Go(func() error {
			results, err := r.Search(gctx, query, maxPerSource)
			if err != nil {
				// Captured, not returned: a failing source must not
				// cancel its siblings through the group context.
				errs[i] = err
				logger.Warn("source search failed",
					"source", r.Source(),
					"error", err,
				)
				return nil
			}
			perSource[i] = results
			return nil
		})
	}
	// The group never carries an error; Wait is a join.
	_ = g.Wait()

	var merged []docdive.SearchResult
	failures := make(map[docdive.Source]error)
	for i, r := range enabled {
		if errs[i] != nil {
			failures[r.Source()] = errs[i]
			continue
		}
		merged = append(merged, perSource[i]...)
	}

	if len(failures) == len(enabled) {
		return nil, failures, &docdive.SourceErrors{Errors: failures}
	}
	if len(failures) == 0 {
		failures = nil
	}

	logger.Debug("search merged",
		"results", len(merged),
		"failed_sources", len(failures),
		"elapsed", time.Since(start),
	)
	return merged, failures, nil
}

// Fetch resolves a result's document through the retriever that
// produced it.
func (c *Coordinator) Fetch(ctx context.Context, result docdive.SearchResult) (*docdive.DocumentContent, error) {
	r, ok := c.bySource[result.Source]
	if !ok {
		return nil, docdive.Errorf(docdive.EINVALID, "no retriever registered for source %q", result.Source)
	}
	return r.Fetch(ctx, result)
}

// Sources returns the registered sources in registration order.
func (c *Coordinator) Sources() []docdive.Source {
	sources := make([]docdive.Source, 0, len(c.retrievers))
	for _, r := range c.retrievers {
		sources = append(sources, r.Source())
	}
	return sources
}

// enabled resolves a source selection against the registry.
func (c *Coordinator) enabled(sources []docdive.Source) ([]docdive.Retriever, error) {
	if len(c.retrievers) == 0 {
		return nil, docdive.Errorf(docdive.EINTERNAL, "no retrievers registered")
	}
	if len(sources) == 0 {
		return c.retrievers, nil
	}

	want := make(map[docdive.Source]bool, len(sources))
	for _, s := range sources {
		if _, ok := c.bySource[s]; !ok {
			return nil, docdive.Errorf(docdive.EINVALID, "unknown source %q", s)
		}
		want[s] = true
	}

	// Preserve registration order regardless of selection order.
	var enabled []docdive.Retriever
	for _, r := range c.retrievers {
		if want[r.Source()] {
			enabled = append(enabled, r)
		}
	}
	return enabled, nil
}
