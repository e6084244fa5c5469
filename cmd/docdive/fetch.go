package main

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/mwalczyk/docdive"
	"github.com/mwalczyk/docdive/apple"
	"github.com/mwalczyk/docdive/hws"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	source, err := c.source()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdive.ErrorMessage(err))
		return err
	}

	result := docdive.SearchResult{
		ID:     docdive.HashContent(string(source) + ":" + c.URL),
		Title:  lastPathSegment(c.URL),
		URL:    c.URL,
		Source: source,
	}

	content, err := deps.Coordinator.Fetch(deps.Ctx, result)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdive.ErrorMessage(err))
		return err
	}

	fmt.Fprint(deps.Stdout, content.Markdown)
	return nil
}

// source resolves the explicit --source flag or infers the source from
// the URL host.
func (c *FetchCmd) source() (docdive.Source, error) {
	if c.Source != "" {
		source := docdive.Source(c.Source)
		if !source.Valid() {
			return "", docdive.Errorf(docdive.EINVALID, "unknown source %q", c.Source)
		}
		return source, nil
	}

	u, err := url.Parse(c.URL)
	if err != nil || u.Host == "" {
		return "", docdive.Errorf(docdive.EINVALID, "invalid URL %q", c.URL)
	}
	switch {
	case strings.HasPrefix(apple.Origin, u.Scheme+"://"+u.Host):
		return docdive.SourceAppleDocs, nil
	case strings.HasPrefix(hws.Origin, u.Scheme+"://"+u.Host):
		return docdive.SourceHWS, nil
	}
	return "", docdive.Errorf(docdive.EINVALID, "cannot infer source for host %q, pass --source", u.Host)
}

func lastPathSegment(rawURL string) string {
	path := strings.Trim(rawURL, "/")
	if i := strings.LastIndex(path, "/"); i >= 0 {
		path = path[i+1:]
	}
	return path
}
