package apple

import (
	"net/url"
	"strings"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/mwalczyk/docdive"
	"github.com/mwalczyk/docdive/goquery"
)

// SearchURL returns the developer.apple.com search endpoint for a query.
func SearchURL(query string) string {
	return Origin + "/search/?q=" + url.QueryEscape(query) + "&type=Documentation"
}

// allowedPathPrefixes is the allow-list of documentation content paths.
// Anything else on the search page is navigational noise and discarded.
var allowedPathPrefixes = []string{
	"/documentation/",
	"/tutorials/",
}

// pathTypes classifies link paths into a result type label for the
// flat-link fallback heuristic. Only allow-listed prefixes survive
// filtering, but classification keeps the label faithful.
var pathTypes = []struct {
	prefix string
	label  string
}{
	{"/documentation/", "documentation"},
	{"/tutorials/", "tutorial"},
	{"/videos/", "video"},
	{"/forums/", "forum"},
	{"/news/", "news"},
}

// ParseSearchResults extracts a canonical result list from a raw search
// results page. Stage one splits the page into result blocks; stage two
// extracts a primary link, an optional type label, breadcrumbs, and a
// summary per block, dropping blocks without a usable link. When the
// block pattern yields nothing the flat-link heuristic kicks in.
// Fails with EPARSE when the expected structure is entirely absent and
// ENORESULTS when filtering leaves nothing.
func ParseSearchResults(rawHTML string) ([]docdive.SearchResult, error) {
	doc, err := goquery.Document(rawHTML)
	if err != nil {
		return nil, err
	}

	results := parseResultBlocks(doc)
	if len(results) == 0 {
		results = parseFlatLinks(doc)
	}
	if len(results) == 0 {
		if doc.Find("a[href]").Length() == 0 {
			return nil, docdive.Errorf(docdive.EPARSE, "search page has no recognizable structure")
		}
		return nil, docdive.Errorf(docdive.ENORESULTS, "no documentation results after filtering")
	}
	return results, nil
}

// parseResultBlocks implements the primary two-stage extraction over
// the repeating result container pattern.
func parseResultBlocks(doc *gq.Document) []docdive.SearchResult {
	var results []docdive.SearchResult
	seen := make(map[string]bool)

	doc.Find("li.search-result, div.search-result").Each(func(_ int, block *gq.Selection) {
		link := block.Find("a[href]").First()
		href, ok := link.Attr("href")
		title := strings.TrimSpace(link.Text())
		if !ok || href == "" || title == "" {
			// A block without a usable link is dropped, not fatal.
			return
		}

		absURL := goquery.AbsoluteURL(Origin, href)
		if absURL == "" || !goquery.AllowPath(Origin, absURL, allowedPathPrefixes) || seen[absURL] {
			return
		}
		seen[absURL] = true

		result := docdive.SearchResult{
			ID:          docdive.HashContent(string(docdive.SourceAppleDocs) + ":" + absURL),
			Title:       title,
			URL:         absURL,
			Source:      docdive.SourceAppleDocs,
			Type:        goquery.Text(block, ".result-type, .search-result-type"),
			Summary:     goquery.Text(block, "p.description, .result-description"),
			Breadcrumbs: goquery.Texts(block, "ul.breadcrumbs li, .breadcrumb li"),
			Tags:        goquery.Texts(block, ".tag, .result-tag"),
		}

		if result.Validate() == nil {
			results = append(results, result)
		}
	})

	return results
}

// parseFlatLinks is the fallback heuristic for pages where the block
// pattern matched nothing: classify every anchor by path prefix and
// synthesize breadcrumbs from the path itself.
func parseFlatLinks(doc *gq.Document) []docdive.SearchResult {
	var results []docdive.SearchResult
	seen := make(map[string]bool)

	doc.Find("a[href]").Each(func(_ int, link *gq.Selection) {
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
			ID:          docdive.HashContent(string(docdive.SourceAppleDocs) + ":" + absURL),
			Title:       title,
			URL:         absURL,
			Source:      docdive.SourceAppleDocs,
			Type:        classifyPath(path),
			Breadcrumbs: goquery.HumanizePath(path),
		}
		if result.Validate() == nil {
			results = append(results, result)
		}
	})

	return results
}

func classifyPath(path string) string {
	for _, pt := range pathTypes {
		if strings.HasPrefix(path, pt.prefix) {
			return pt.label
		}
	}
	return ""
}
