package apple

import (
	"context"
	"time"

	"github.com/mwalczyk/docdive"
)

// Ensure Retriever implements docdive.Retriever at compile time.
var _ docdive.Retriever = (*Retriever)(nil)

// Retriever is the Apple Developer Documentation façade: search via the
// site's HTML search page, fetch via the JSON data endpoint mapping,
// with converted documents cached by URL.
type Retriever struct {
	// Search page fetcher (Accept: text/html).
	SearchFetcher docdive.Fetcher

	// Data endpoint fetcher (Accept: application/json).
	DataFetcher docdive.Fetcher

	// Converted document cache, keyed by documentation page URL.
	Cache docdive.ContentCache

	// Clock, overridable in tests. Defaults to time.Now.
	Now func() time.Time
}

// Source returns docdive.SourceAppleDocs.
func (r *Retriever) Source() docdive.Source {
	return docdive.SourceAppleDocs
}

// Search queries developer.apple.com and returns parsed results in
// page order. maxResults <= 0 means unrestricted.
func (r *Retriever) Search(ctx context.Context, query string, maxResults int) ([]docdive.SearchResult, error) {
	if query == "" {
		return nil, docdive.Errorf(docdive.EINVALID, "search query required")
	}

	raw, err := r.SearchFetcher.Fetch(ctx, SearchURL(query))
	if err != nil {
		return nil, err
	}

	results, err := ParseSearchResults(string(raw))
	if err != nil {
		return nil, err
	}
	if maxResults > 0 && len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}

// Fetch returns the converted document for a result. The cache is
// consulted first; on a miss the page URL is mapped to its JSON data
// endpoint, fetched, converted, and cached. A conversion failure fails
// the call without populating the cache.
func (r *Retriever) Fetch(ctx context.Context, result docdive.SearchResult) (*docdive.DocumentContent, error) {
	if cached := r.Cache.Get(result.URL); cached != nil {
		return cached, nil
	}

	dataURL, err := MapDocumentURL(result.URL)
	if err != nil {
		return nil, err
	}

	raw, err := r.DataFetcher.Fetch(ctx, dataURL)
	if err != nil {
		return nil, err
	}

	fetched := r.now()
	_, markdown, err := ConvertDocument(raw, result.URL, fetched)
	if err != nil {
		return nil, err
	}

	content := docdive.NewDocumentContent(result, markdown, raw, fetched)
	r.Cache.Set(result.URL, content)
	return content, nil
}

func (r *Retriever) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}
