package hws

import (
	"context"
	"time"

	"github.com/mwalczyk/docdive"
)

// Ensure Retriever implements docdive.Retriever at compile time.
var _ docdive.Retriever = (*Retriever)(nil)

// Retriever is the Hacking with Swift façade: search via the site's
// HTML search page, fetch via a plain article GET, with converted
// documents cached by URL.
type Retriever struct {
	// Page fetcher (Accept: text/html), shared by search and fetch.
	Fetcher docdive.Fetcher

	// Article-to-markdown conversion pipeline.
	Converter *DocumentConverter

	// Converted document cache, keyed by article URL.
	Cache docdive.ContentCache

	// Clock, overridable in tests. Defaults to time.Now.
	Now func() time.Time
}

// Source returns docdive.SourceHWS.
func (r *Retriever) Source() docdive.Source {
	return docdive.SourceHWS
}

// Search queries hackingwithswift.com and returns parsed results in
// page order. maxResults <= 0 means unrestricted.
func (r *Retriever) Search(ctx context.Context, query string, maxResults int) ([]docdive.SearchResult, error) {
	if query == "" {
		return nil, docdive.Errorf(docdive.EINVALID, "search query required")
	}

	raw, err := r.Fetcher.Fetch(ctx, SearchURL(query))
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
// consulted first; on a miss the article page is fetched, converted,
// and cached. A conversion failure fails the call without populating
// the cache.
func (r *Retriever) Fetch(ctx context.Context, result docdive.SearchResult) (*docdive.DocumentContent, error) {
	if cached := r.Cache.Get(result.URL); cached != nil {
		return cached, nil
	}

	raw, err := r.Fetcher.Fetch(ctx, result.URL)
	if err != nil {
		return nil, err
	}

	fetched := r.now()
	_, markdown, err := r.Converter.Convert(raw, result.URL, fetched)
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
