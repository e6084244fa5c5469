package docdive

import (
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Frontmatter is the metadata block prefixed to every converted
// document: a "---"-delimited YAML block with the document title, its
// canonical source URL, and the fetch timestamp.
type Frontmatter struct {
	Title   string `yaml:"title"`
	Source  string `yaml:"source"`
	Fetched string `yaml:"fetched"`
}

const frontmatterDelim = "---\n"

// RenderFrontmatter produces the front-matter block for a document,
// followed by a blank line. Timestamps are rendered as RFC 3339.
func RenderFrontmatter(title, sourceURL string, fetched time.Time) string {
	fm := Frontmatter{
		Title:   title,
		Source:  sourceURL,
		Fetched: fetched.UTC().Format(time.RFC3339),
	}
	// Marshal of a flat struct with string fields cannot fail.
	out, err := yaml.Marshal(&fm)
	if err != nil {
		return frontmatterDelim + frontmatterDelim + "\n"
	}
	return frontmatterDelim + string(out) + frontmatterDelim + "\n"
}

// StripFrontmatter removes a leading front-matter block and returns the
// body unchanged. Input without a front-matter block is returned as-is,
// so stripping twice equals stripping once.
func StripFrontmatter(markdown string) string {
	if !strings.HasPrefix(markdown, frontmatterDelim) {
		return markdown
	}
	rest := markdown[len(frontmatterDelim):]
	i := strings.Index(rest, "\n---\n")
	if i < 0 {
		return markdown
	}
	body := rest[i+len("\n---\n"):]
	return strings.TrimPrefix(body, "\n")
}

// ParseFrontmatter decodes a document's front-matter block and returns
// it together with the body. Documents without a block return a zero
// Frontmatter and the input unchanged.
func ParseFrontmatter(markdown string) (Frontmatter, string) {
	var fm Frontmatter
	if !strings.HasPrefix(markdown, frontmatterDelim) {
		return fm, markdown
	}
	rest := markdown[len(frontmatterDelim):]
	i := strings.Index(rest, "\n---\n")
	if i < 0 {
		return fm, markdown
	}
	if err := yaml.Unmarshal([]byte(rest[:i+1]), &fm); err != nil {
		return Frontmatter{}, markdown
	}
	return fm, strings.TrimPrefix(rest[i+len("\n---\n"):], "\n")
}
