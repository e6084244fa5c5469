// Package goquery provides the shared CSS-based extraction helpers the
// per-source search parsers are built on: HTML parsing with taxonomy
// error mapping, URL absolutization against a site origin, allow-list
// path filtering, and breadcrumb synthesis from URL paths.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mwalczyk/docdive"
)

// Document parses raw HTML. Parse failures map to EPARSE.
func Document(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docdive.Errorf(docdive.EPARSE, "parsing HTML: %v", err)
	}
	return doc, nil
}

// AbsoluteURL normalizes href to absolute form against origin. Only
// site-relative hrefs and hrefs already on the origin resolve; anything
// else (other hosts, javascript:, mailto:, fragments) returns "".
func AbsoluteURL(origin, href string) string {
	switch {
	case strings.HasPrefix(href, "/"):
		return origin + href
	case strings.HasPrefix(href, origin):
		return href
	default:
		return ""
	}
}

// AllowPath reports whether absURL's path under origin starts with one
// of the allow-listed prefixes.
func AllowPath(origin, absURL string, prefixes []string) bool {
	path := strings.TrimPrefix(absURL, origin)
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// HumanizePath synthesizes breadcrumbs from a URL path: numeric ID
// segments are dropped and kebab-case segments become Title Case.
func HumanizePath(path string) []string {
	var crumbs []string
	for seg := range strings.SplitSeq(strings.Trim(path, "/"), "/") {
		if seg == "" || isNumeric(seg) {
			continue
		}
		crumbs = append(crumbs, titleCase(seg))
	}
	return crumbs
}

// OuterHTML serializes a selection back to HTML. Failures map to
// EPARSE.
func OuterHTML(sel *goquery.Selection) (string, error) {
	html, err := goquery.OuterHtml(sel)
	if err != nil {
		return "", docdive.Errorf(docdive.EPARSE, "serializing HTML: %v", err)
	}
	return html, nil
}

// Text returns the trimmed text of the first node matching selector
// under sel, or "" when nothing matches.
func Text(sel *goquery.Selection, selector string) string {
	return strings.TrimSpace(sel.Find(selector).First().Text())
}

// Texts returns the trimmed, non-empty texts of every node matching
// selector under sel.
func Texts(sel *goquery.Selection, selector string) []string {
	var out []string
	sel.Find(selector).Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			out = append(out, text)
		}
	})
	return out
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func titleCase(segment string) string {
	words := strings.Split(segment, "-")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
