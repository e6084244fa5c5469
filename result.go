package docdive

import (
	"net/url"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
)

// SearchResult is a canonical, source-tagged pointer to one
// documentation item found by a query. It is a value: parsers create
// it, the reranker and callers consume it, and nothing owns it.
//
// All fields except the two rank fields are set by the parser and never
// mutated afterwards. OriginalRank is assigned once when a result
// enters the reranker; RerankedRank once when it leaves.
type SearchResult struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Summary     string            `json:"summary,omitempty"`
	URL         string            `json:"url"`
	Source      Source            `json:"source"`
	Breadcrumbs []string          `json:"breadcrumbs,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	Type        string            `json:"type,omitempty"`
	Score       *float64          `json:"score,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`

	OriginalRank *int `json:"originalRank,omitempty"`
	RerankedRank *int `json:"rerankedRank,omitempty"`
}

// Validate returns an error if the result contains invalid fields.
// Every result a parser emits must pass: a result without a title or an
// absolute URL is navigational noise, not a document pointer.
func (r *SearchResult) Validate() error {
	if r.Title == "" {
		return Errorf(EINVALID, "search result title required")
	}
	u, err := url.Parse(r.URL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return Errorf(EINVALID, "search result URL must be absolute, got %q", r.URL)
	}
	if !r.Source.Valid() {
		return Errorf(EINVALID, "unknown search result source %q", r.Source)
	}
	return nil
}

// DocumentContent is the fully fetched-and-converted markdown body for
// one SearchResult. Instances are immutable once created; the content
// cache evicts them by TTL, never rewrites them.
type DocumentContent struct {
	Result      SearchResult `json:"result"`
	Markdown    string       `json:"markdown"`
	FetchedAt   time.Time    `json:"fetchedAt"`
	ContentHash string       `json:"contentHash"`

	// Raw is the unconverted payload, kept for debugging and cache
	// provenance. May be nil.
	Raw []byte `json:"-"`
}

// NewDocumentContent assembles a DocumentContent, stamping the fetch
// time and the content hash of the converted markdown.
func NewDocumentContent(result SearchResult, markdown string, raw []byte, fetchedAt time.Time) *DocumentContent {
	return &DocumentContent{
		Result:      result,
		Markdown:    markdown,
		FetchedAt:   fetchedAt,
		ContentHash: HashContent(markdown),
		Raw:         raw,
	}
}

// HashContent returns a stable hex hash of content, used for change
// detection between fetches of the same URL.
func HashContent(content string) string {
	return strconv.FormatUint(xxhash.Sum64String(content), 16)
}
