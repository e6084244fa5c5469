package mock

import (
	"context"

	"github.com/mwalczyk/docdive"
)

var _ docdive.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of docdive.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) ([]byte, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f.FetchFn(ctx, url)
}
