// Package readability wraps go-readability behind the docdive.Extractor
// interface. Sources use it as the content-extraction fallback when
// none of their known container candidates match a page.
package readability

import (
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/mwalczyk/docdive"
)

// Ensure Extractor implements docdive.Extractor at compile time.
var _ docdive.Extractor = (*Extractor)(nil)

// Extractor extracts main content from HTML using readability
// heuristics.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content with
// boilerplate removed.
func (e *Extractor) Extract(rawHTML string) (*docdive.ExtractResult, error) {
	if rawHTML == "" {
		return nil, docdive.Errorf(docdive.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, docdive.Errorf(docdive.EPARSE, "readability extraction failed: %v", err)
	}

	return &docdive.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
