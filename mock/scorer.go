package mock

import (
	"context"

	"github.com/mwalczyk/docdive"
)

var _ docdive.Scorer = (*Scorer)(nil)

// Scorer is a mock implementation of docdive.Scorer.
type Scorer struct {
	RankResultsFn func(ctx context.Context, query string, candidates []docdive.RankCandidate) ([]string, error)
}

func (s *Scorer) RankResults(ctx context.Context, query string, candidates []docdive.RankCandidate) ([]string, error) {
	return s.RankResultsFn(ctx, query, candidates)
}
