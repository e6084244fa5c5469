package mock

import "github.com/mwalczyk/docdive"

var _ docdive.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of docdive.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*docdive.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*docdive.ExtractResult, error) {
	return e.ExtractFn(html)
}
