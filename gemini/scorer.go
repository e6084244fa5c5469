// Package gemini implements relevance scoring with Google Gemini. The
// reranker treats it as a pluggable strategy; everything here is prompt
// construction and lenient response parsing around one model call.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/mwalczyk/docdive"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// Ensure Scorer implements docdive.Scorer at compile time.
var _ docdive.Scorer = (*Scorer)(nil)

// Scorer implements docdive.Scorer using Google Gemini.
type Scorer struct {
	client *genai.Client
}

// NewScorer creates a new Scorer.
func NewScorer(client *genai.Client) *Scorer {
	return &Scorer{client: client}
}

// RankResults asks the model to order candidate ids by relevance to
// the query, most relevant first. The response is parsed leniently:
// unknown ids and decoration are dropped, duplicates collapse to the
// first mention. The caller recovers any candidate the model omitted.
func (s *Scorer) RankResults(ctx context.Context, query string, candidates []docdive.RankCandidate) ([]string, error) {
	if query == "" {
		return nil, docdive.Errorf(docdive.EINVALID, "query required")
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	prompt := BuildRankPrompt(query, candidates)
	config := BuildConfig()

	result, err := s.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, docdive.Errorf(docdive.EINTERNAL, "gemini returned nil result")
	}

	return ParseRankedIDs(result.Text(), candidates), nil
}

// BuildConfig returns the GenerateContentConfig for ranking calls.
// Temperature is kept near zero: ranking should be as deterministic as
// the model allows.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.1)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You rank documentation search results by relevance to a developer's query. Reply with the candidate ids only, one per line, most relevant first. Do not add commentary.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildRankPrompt builds the user prompt listing the candidates.
func BuildRankPrompt(query string, candidates []docdive.RankCandidate) string {
	var sb strings.Builder
	sb.WriteString("<candidates>\n")
	for i, c := range candidates {
		sb.WriteString("<candidate>\n")
		fmt.Fprintf(&sb, "<index>%d</index>\n", i+1)
		fmt.Fprintf(&sb, "<id>%s</id>\n", c.ID)
		fmt.Fprintf(&sb, "<title>%s</title>\n", c.Title)
		if c.Summary != "" {
			fmt.Fprintf(&sb, "<summary>%s</summary>\n", c.Summary)
		}
		sb.WriteString("</candidate>\n")
	}
	sb.WriteString("</candidates>\n\n")
	fmt.Fprintf(&sb, "Query: %s", query)
	return sb.String()
}

// ParseRankedIDs extracts candidate ids from a model response in
// mention order. Lines are stripped of list numbering and markup
// before matching; anything that is not a known candidate id is
// ignored, and repeated ids keep their first position.
func ParseRankedIDs(response string, candidates []docdive.RankCandidate) []string {
	known := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		known[c.ID] = true
	}

	var ids []string
	seen := make(map[string]bool)
	for line := range strings.SplitSeq(response, "\n") {
		for _, token := range strings.Fields(line) {
			id := strings.Trim(token, "`*[]().,:\"'")
			if known[id] && !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids
}
