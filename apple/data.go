// Package apple implements the Apple Developer Documentation source:
// searching developer.apple.com, resolving documentation page URLs to
// their companion JSON data endpoints, and converting the tagged JSON
// content tree into markdown.
package apple

import (
	"net/url"
	"strings"

	"github.com/mwalczyk/docdive"
)

// Origin is the Apple Developer site origin.
const Origin = "https://developer.apple.com"

// Host is the only host documentation URLs may carry.
const Host = "developer.apple.com"

// MapDocumentURL deterministically maps a documentation web URL to the
// JSON data endpoint that backs it. A framework-only path maps to the
// framework index endpoint; a deeper path maps to the per-page .json
// endpoint under the parallel /tutorials/data namespace:
//
//	/documentation/swift       -> /tutorials/data/index/swift
//	/documentation/swift/array -> /tutorials/data/documentation/swift/array.json
//
// The mapping is pure. URLs on another host or with an unexpected path
// shape fail with EINVALID.
func MapDocumentURL(pageURL string) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", docdive.Errorf(docdive.EINVALID, "malformed documentation URL %q: %v", pageURL, err)
	}
	if u.Host != Host {
		return "", docdive.Errorf(docdive.EINVALID, "unexpected host %q, want %s", u.Host, Host)
	}

	path := strings.Trim(u.Path, "/")
	segments := strings.Split(path, "/")
	if len(segments) < 2 || segments[0] != "documentation" {
		return "", docdive.Errorf(docdive.EINVALID, "unexpected documentation path %q", u.Path)
	}
	for _, seg := range segments[1:] {
		if seg == "" {
			return "", docdive.Errorf(docdive.EINVALID, "unexpected documentation path %q", u.Path)
		}
	}

	if len(segments) == 2 {
		return Origin + "/tutorials/data/index/" + segments[1], nil
	}
	return Origin + "/tutorials/data/documentation/" + strings.Join(segments[1:], "/") + ".json", nil
}
