// Package htmltomarkdown wraps the html-to-markdown library behind the
// docdive.Converter interface. It handles block elements (headings,
// paragraphs, lists, blockquotes, code blocks), inline elements, and
// entity decoding, emitting CommonMark with table support.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/mwalczyk/docdive"
)

// Ensure Converter implements docdive.Converter at compile time.
var _ docdive.Converter = (*Converter)(nil)

// Converter converts extracted documentation HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", docdive.Errorf(docdive.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", docdive.Errorf(docdive.ECONVERSION, "converting HTML to markdown: %v", err)
	}

	return result, nil
}
