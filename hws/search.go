// Package hws implements the Hacking with Swift source: search over
// the site's HTML search page and article fetching with HTML-to-markdown
// conversion plus a site-specific boilerplate cleanup rule set.
package hws

import (
	"net/url"
	"strings"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/mwalczyk/docdive"
	"github.com/mwalczyk/docdive/goquery"
)

// Origin is the site origin every relative link resolves against.
const Origin = "https://www.hackingwithswift.com"

// SearchURL returns the hackingwithswift.com search endpoint for a
// query.
func SearchURL(query string) string {
	return Origin + "/search?q=" + url.QueryEscape(query)
}

// allowedPathPrefixes is the allow-list of article content paths.
// Navigation, store, and forum links on the search page are discarded.
var allowedPathPrefixes = []string{
	"/example-code/",
	"/quick-start/",
	"/articles/",
	"/read/",
	"/books/",
}

// pathTypes classifies article paths into a result type label.
var pathTypes = []struct {
	prefix string
	label  string
}{
	{"/example-code/", "example"},
	{"/quick-start/", "tutorial"},
	{"/articles/", "article"},
	{"/read/", "book"},
	{"/books/", "book"},
}

// ParseSearchResults extracts a canonical result list from a raw
// search results page. Result blocks are located by the repeating
// container pattern; each block yields a primary link plus an optional
// summary, with breadcrumbs synthesized from the article path. Blocks
// without a usable link are dropped silently. Fails with EPARSE when
// the block structure is entirely absent and ENORESULTS when filtering
// leaves nothing.
func ParseSearchResults(rawHTML string) ([]docdive.SearchResult, error) {
	doc, err := goquery.Document(rawHTML)
	if err != nil {
		return nil, err
	}

	blocks := doc.Find("ul.search-results li, div.search-result, article.result")
	if blocks.Length() == 0 {
		return nil, docdive.Errorf(docdive.EPARSE, "search page has no result blocks")
	}

	var results []docdive.SearchResult
	seen := make(map[string]bool)

	blocks.Each(func(_ int, block *gq.Selection) {
		link := block.Find("a[href]").First()
		href, ok := link.Attr("href")
		title := strings.TrimSpace(link.Text())
		if !ok || href == "" || title == "" {
			return
		}

		absURL := goquery.AbsoluteURL(Origin, href)
		if absURL == "" || !goquery.AllowPath(Origin, absURL, allowedPathPrefixes) || seen[absURL] {
			return
		}
		seen[absURL] = true

		path := strings.TrimPrefix(absURL, Origin)
		result := docdive.SearchResult{
			ID:          docdive.HashContent(string(docdive.SourceHWS) + ":" + absURL),
			Title:       title,
			URL:         absURL,
			Source:      docdive.SourceHWS,
			Type:        classifyPath(path),
			Summary:     goquery.Text(block, "p, .excerpt"),
			Breadcrumbs: goquery.HumanizePath(path),
			Tags:        goquery.Texts(block, ".tag"),
		}

		if result.Validate() == nil {
			results = append(results, result)
		}
	})

	if len(results) == 0 {
		return nil, docdive.Errorf(docdive.ENORESULTS, "no article results after filtering")
	}
	return results, nil
}

func classifyPath(path string) string {
	for _, pt := range pathTypes {
		if strings.HasPrefix(path, pt.prefix) {
			return pt.label
		}
	}
	return ""
}
