package docdive

// Converter converts extracted HTML to Markdown. Implementations handle
// block and inline elements, entity decoding, and blank-line collapsing;
// input should already have boilerplate removed (see Extractor).
type Converter interface {
	Convert(html string) (string, error)
}
