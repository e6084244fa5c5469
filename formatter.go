package docdive

import (
	"fmt"
	"strings"
)

// FormatDocuments formats fetched documents for display or LLM context.
// Uses the result title if available, falls back to the source URL.
// Documents are separated by blank lines.
func FormatDocuments(docs []*DocumentContent) string {
	if len(docs) == 0 {
		return ""
	}

	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		header := doc.Result.Title
		if header == "" {
			header = doc.Result.URL
		}
		parts = append(parts, "## Document: "+header+"\n"+doc.Markdown)
	}

	return strings.Join(parts, "\n\n")
}

// FormatResults formats a search result list as a numbered summary,
// one result per block, with breadcrumbs and summary when present.
func FormatResults(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, res := range results {
		fmt.Fprintf(&sb, "%d. %s [%s]\n   %s\n", i+1, res.Title, res.Source, res.URL)
		if len(res.Breadcrumbs) > 0 {
			fmt.Fprintf(&sb, "   %s\n", strings.Join(res.Breadcrumbs, " > "))
		}
		if res.Summary != "" {
			fmt.Fprintf(&sb, "   %s\n", res.Summary)
		}
	}
	return sb.String()
}
