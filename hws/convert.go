package hws

import (
	"strings"
	"time"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/mwalczyk/docdive"
	"github.com/mwalczyk/docdive/goquery"
)

// strippedTags are removed from the page wholesale before content
// extraction. Scripts and styles carry no content; the rest is chrome.
const strippedTags = "script, style, nav, header, footer, aside"

// containerCandidates is the ordered list of main-content container
// selectors, generic first. The last candidate that matches wins, so
// the most specific known container is preferred over the page shell.
var containerCandidates = []string{
	"main",
	"article",
	"div.content",
	"div.article-text",
}

// titleSuffixes are trimmed off <title> text to recover the bare
// article title.
var titleSuffixes = []string{
	" – Hacking with Swift",
	" - Hacking with Swift",
	" – Hacking with Swift+",
}

// DocumentConverter turns a fetched article page into cleaned
// markdown. Content extraction tries the known container candidates
// first; when none match, Fallback (readability heuristics) takes
// over, and failing that the stripped page body is converted whole.
type DocumentConverter struct {
	// HTML-to-markdown conversion.
	Markdown docdive.Converter

	// Content-extraction fallback for pages with an unrecognized
	// layout. Optional; nil skips straight to whole-body conversion.
	Fallback docdive.Extractor

	// Boilerplate cleanup chain, run on the converted markdown.
	Cleanup *docdive.Engine
}

// Convert produces the final front-matter-prefixed markdown document
// for an article page.
func (c *DocumentConverter) Convert(rawHTML []byte, pageURL string, fetched time.Time) (string, string, error) {
	doc, err := goquery.Document(string(rawHTML))
	if err != nil {
		return "", "", err
	}
	doc.Find(strippedTags).Remove()

	title := pageTitle(doc, pageURL)

	contentHTML, err := c.contentHTML(doc, string(rawHTML))
	if err != nil {
		return "", "", err
	}

	markdown, err := c.Markdown.Convert(contentHTML)
	if err != nil {
		return "", "", err
	}
	body := c.Cleanup.Clean(markdown)

	return title, docdive.RenderFrontmatter(title, pageURL, fetched) + body, nil
}

// contentHTML isolates the main content of the stripped page.
func (c *DocumentConverter) contentHTML(doc *gq.Document, rawHTML string) (string, error) {
	var container *gq.Selection
	for _, candidate := range containerCandidates {
		if match := doc.Find(candidate); match.Length() > 0 {
			container = match.Last()
		}
	}
	if container != nil {
		return goquery.OuterHTML(container)
	}

	if c.Fallback != nil {
		if extracted, err := c.Fallback.Extract(rawHTML); err == nil && extracted.ContentHTML != "" {
			return extracted.ContentHTML, nil
		}
	}

	if body := doc.Find("body"); body.Length() > 0 {
		return goquery.OuterHTML(body)
	}
	return rawHTML, nil
}

// pageTitle recovers the article title: the content h1 when present,
// then the <title> tag minus the site suffix, then the last URL path
// segment.
func pageTitle(doc *gq.Document, pageURL string) string {
	if h1 := goquery.Text(doc.Selection, "h1"); h1 != "" {
		return h1
	}
	if title := goquery.Text(doc.Selection, "title"); title != "" {
		for _, suffix := range titleSuffixes {
			title = strings.TrimSuffix(title, suffix)
		}
		return strings.TrimSpace(title)
	}

	path := strings.Trim(strings.TrimPrefix(pageURL, Origin), "/")
	if i := strings.LastIndex(path, "/"); i >= 0 {
		path = path[i+1:]
	}
	return path
}
