package mock

import (
	"context"

	"github.com/mwalczyk/docdive"
)

var _ docdive.Retriever = (*Retriever)(nil)

// Retriever is a mock implementation of docdive.Retriever.
type Retriever struct {
	SourceFn func() docdive.Source
	SearchFn func(ctx context.Context, query string, maxResults int) ([]docdive.SearchResult, error)
	FetchFn  func(ctx context.Context, result docdive.SearchResult) (*docdive.DocumentContent, error)
}

func (r *Retriever) Source() docdive.Source {
	return r.SourceFn()
}

func (r *Retriever) Search(ctx context.Context, query string, maxResults int) ([]docdive.SearchResult, error) {
	return r.SearchFn(ctx, query, maxResults)
}

func (r *Retriever) Fetch(ctx context.Context, result docdive.SearchResult) (*docdive.DocumentContent, error) {
	return r.FetchFn(ctx, result)
}
