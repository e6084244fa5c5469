package docdive

// ExtractResult holds the main content extracted from a fetched page.
type ExtractResult struct {
	// Title is the page title, when the extractor could determine one.
	Title string

	// ContentHTML is the main content as clean HTML with navigation,
	// headers, footers, and sidebars removed.
	ContentHTML string
}

// Extractor isolates the main content of a documentation page.
// Sources use it as a fallback when their site-specific container
// candidates fail to match.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}
