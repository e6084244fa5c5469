package docdive

import "context"

// Retriever is the per-source façade unifying search, fetch, and
// caching behind one contract. Implementations hide the site's search
// endpoint shape, its payload format (HTML or JSON), and the conversion
// pipeline that turns a fetched payload into markdown.
type Retriever interface {
	// Source returns the source this retriever serves. Every result it
	// emits carries the same source tag.
	Source() Source

	// Search queries the source and returns results in source-native
	// order. maxResults <= 0 means unrestricted; a positive value
	// truncates the list after parsing. Returns ENORESULTS when the
	// parser yields nothing after filtering.
	Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error)

	// Fetch returns the converted document for a result, consulting the
	// content cache first. A conversion failure fails the call and
	// leaves the cache entry unset.
	Fetch(ctx context.Context, result SearchResult) (*DocumentContent, error)
}

// ContentCache stores converted documents keyed by source URL with
// TTL-only eviction. Implementations must be safe for concurrent use;
// expiry is checked lazily on Get and proactively by RemoveExpired.
type ContentCache interface {
	// Get returns the cached document for key, or nil on a miss. An
	// entry older than the TTL is evicted and reported as a miss.
	Get(key string) *DocumentContent

	// Set stores a document under key, replacing any previous entry.
	Set(key string, content *DocumentContent)

	// Clear drops all entries.
	Clear()

	// RemoveExpired sweeps out expired entries without requiring reads.
	// Callers that care about memory bounds invoke this periodically.
	RemoveExpired()
}
