package docdive

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// RankCandidate is what the scoring strategy sees for one result: the
// opaque id it must echo back, plus the text worth scoring. Summaries
// may arrive truncated when the token budget demands it.
type RankCandidate struct {
	ID      string
	Title   string
	Summary string
}

// Scorer ranks candidates for a query. Implementations call an external
// model; the contract is to return candidate ids in descending
// relevance order. Omitting ids is tolerated (the reranker restores
// them); inventing ids is not (they are ignored).
type Scorer interface {
	RankResults(ctx context.Context, query string, candidates []RankCandidate) ([]string, error)
}

// Reranker defaults.
const (
	DefaultMaxCandidates = 20
	DefaultTokenBudget   = 6000
	DefaultSummaryWords  = 50
)

// Reranker reorders a result set for a query using an injected scoring
// strategy, subject to a token budget, with per-query memoization.
//
// Rerank always returns a permutation of its input: no drops, no
// duplicates. Calls on the same instance are serialized; the memo is
// invalidated only by ClearMemo, never by time.
type Reranker struct {
	mu            sync.Mutex
	scorer        Scorer
	maxCandidates int
	tokenBudget   int
	summaryWords  int
	memo          map[string][]string
	logger        *slog.Logger
}

// RerankerOption configures a Reranker.
type RerankerOption func(*Reranker)

// WithMaxCandidates caps how many results are sent to the scorer.
// Results beyond the cap keep their original relative order after the
// ranked prefix.
func WithMaxCandidates(n int) RerankerOption {
	return func(r *Reranker) { r.maxCandidates = n }
}

// WithTokenBudget sets the estimated-token budget for the scoring
// prompt. Exceeding it truncates candidate summaries, never drops
// candidates.
func WithTokenBudget(n int) RerankerOption {
	return func(r *Reranker) { r.tokenBudget = n }
}

// WithSummaryWords sets the word count summaries are truncated to when
// the token budget is exceeded.
func WithSummaryWords(n int) RerankerOption {
	return func(r *Reranker) { r.summaryWords = n }
}

// WithRerankLogger sets the logger for rerank diagnostics.
func WithRerankLogger(logger *slog.Logger) RerankerOption {
	return func(r *Reranker) { r.logger = logger }
}

// NewReranker creates a Reranker around a scoring strategy.
func NewReranker(scorer Scorer, opts ...RerankerOption) *Reranker {
	r := &Reranker{
		scorer:        scorer,
		maxCandidates: DefaultMaxCandidates,
		tokenBudget:   DefaultTokenBudget,
		summaryWords:  DefaultSummaryWords,
		memo:          make(map[string][]string),
		logger:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rerank reorders results for query. The returned slice carries
// OriginalRank (input position) and RerankedRank (output position) on
// every result; the input slice is not mutated.
func (r *Reranker) Rerank(ctx context.Context, query string, results []SearchResult) ([]SearchResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(results) == 0 {
		return []SearchResult{}, nil
	}

	// Work on a copy so the caller's slice stays untouched.
	ordered := make([]SearchResult, len(results))
	copy(ordered, results)
	for i := range ordered {
		if ordered[i].OriginalRank == nil {
			rank := i
			ordered[i].OriginalRank = &rank
		}
	}

	if idOrder, ok := r.memo[query]; ok {
		r.logger.Debug("rerank memo hit", "query", query, "results", len(ordered))
		return applyIDOrder(ordered, idOrder), nil
	}

	if len(ordered) == 1 {
		r.memo[query] = idsOf(ordered)
		return applyIDOrder(ordered, idsOf(ordered)), nil
	}

	limit := r.maxCandidates
	if limit <= 0 {
		limit = DefaultMaxCandidates
	}
	head := ordered
	if len(head) > limit {
		head = head[:limit]
	}

	candidates := make([]RankCandidate, len(head))
	for i, res := range head {
		candidates[i] = RankCandidate{ID: res.ID, Title: res.Title, Summary: res.Summary}
	}

	// Over budget, summaries shrink to a fixed word count. The scorer
	// sees the truncated text; final output is always rebuilt from the
	// untruncated originals.
	if est := r.estimatePromptTokens(query, candidates); est > r.tokenBudget {
		r.logger.Debug("rerank prompt over budget, truncating summaries",
			"estimated", est, "budget", r.tokenBudget)
		for i := range candidates {
			candidates[i].Summary = TruncateWords(candidates[i].Summary, r.summaryWords)
		}
	}

	rankedIDs, err := r.scorer.RankResults(ctx, query, candidates)
	if err != nil {
		return nil, err
	}

	// Ranked prefix first, scorer omissions next in original order,
	// then everything beyond the candidate cap.
	final := make([]string, 0, len(ordered))
	inHead := make(map[string]bool, len(head))
	for _, res := range head {
		inHead[res.ID] = true
	}
	used := make(map[string]bool, len(ordered))
	for _, id := range rankedIDs {
		if inHead[id] && !used[id] {
			final = append(final, id)
			used[id] = true
		}
	}
	for _, res := range ordered {
		if !used[res.ID] {
			final = append(final, res.ID)
			used[res.ID] = true
		}
	}

	r.memo[query] = final
	return applyIDOrder(ordered, final), nil
}

// ClearMemo drops every memoized query order.
func (r *Reranker) ClearMemo() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.memo = make(map[string][]string)
}

// estimatePromptTokens approximates the scoring prompt cost as total
// character count divided by four.
func (r *Reranker) estimatePromptTokens(query string, candidates []RankCandidate) int {
	chars := len(query)
	for _, c := range candidates {
		chars += len(c.ID) + len(c.Title) + len(c.Summary)
	}
	return EstimateTokens(chars)
}

// EstimateTokens converts a character count to an estimated token
// count using the conventional four-characters-per-token ratio.
func EstimateTokens(chars int) int {
	return (chars + 3) / 4
}

// TruncateWords returns the first n whitespace-separated words of s.
func TruncateWords(s string, n int) string {
	if n <= 0 {
		return ""
	}
	words := strings.Fields(s)
	if len(words) <= n {
		return s
	}
	return strings.Join(words[:n], " ")
}

// applyIDOrder reorders results to follow idOrder, appending any result
// whose id the order omits in original relative order, and stamps
// RerankedRank. Unknown ids in the order are ignored.
func applyIDOrder(results []SearchResult, idOrder []string) []SearchResult {
	byID := make(map[string]int, len(results))
	for i, res := range results {
		byID[res.ID] = i
	}
	out := make([]SearchResult, 0, len(results))
	used := make(map[string]bool, len(results))
	for _, id := range idOrder {
		if i, ok := byID[id]; ok && !used[id] {
			out = append(out, results[i])
			used[id] = true
		}
	}
	for _, res := range results {
		if !used[res.ID] {
			out = append(out, res)
			used[res.ID] = true
		}
	}
	for i := range out {
		rank := i
		out[i].RerankedRank = &rank
	}
	return out
}

func idsOf(results []SearchResult) []string {
	ids := make([]string, len(results))
	for i, res := range results {
		ids[i] = res.ID
	}
	return ids
}
