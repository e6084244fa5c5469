package gemini_test

import (
	"context"
	"testing"

	"github.com/mwalczyk/docdive"
	"github.com/mwalczyk/docdive/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidates() []docdive.RankCandidate {
	return []docdive.RankCandidate{
		{ID: "a1b2", Title: "How to append to an array", Summary: "Appending items."},
		{ID: "c3d4", Title: "Array"},
		{ID: "e5f6", Title: "How to sort an array"},
	}
}

func TestScorer_RankResults_EmptyQueryIsInvalid(t *testing.T) {
	t.Parallel()

	scorer := gemini.NewScorer(nil) // nil client ok for this test

	_, err := scorer.RankResults(context.Background(), "", candidates())

	require.Error(t, err)
	assert.Equal(t, docdive.EINVALID, docdive.ErrorCode(err))
}

func TestScorer_RankResults_NoCandidatesIsNotACall(t *testing.T) {
	t.Parallel()

	scorer := gemini.NewScorer(nil)

	ids, err := scorer.RankResults(context.Background(), "append", nil)

	require.NoError(t, err)
	assert.Nil(t, ids)
}

func TestBuildRankPrompt(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildRankPrompt("append to array", candidates())

	assert.Contains(t, prompt, "<id>a1b2</id>")
	assert.Contains(t, prompt, "<title>How to append to an array</title>")
	assert.Contains(t, prompt, "<summary>Appending items.</summary>")
	assert.Contains(t, prompt, "<index>3</index>")
	assert.Contains(t, prompt, "Query: append to array")
	assert.NotContains(t, prompt, "<summary></summary>")
}

func TestParseRankedIDs(t *testing.T) {
	t.Parallel()

	t.Run("plain id lines parse in order", func(t *testing.T) {
		t.Parallel()

		ids := gemini.ParseRankedIDs("c3d4\na1b2\ne5f6", candidates())

		assert.Equal(t, []string{"c3d4", "a1b2", "e5f6"}, ids)
	})

	t.Run("list numbering and markup are stripped", func(t *testing.T) {
		t.Parallel()

		response := "1. `c3d4`\n2. [a1b2]\n3. **e5f6**,"

		ids := gemini.ParseRankedIDs(response, candidates())

		assert.Equal(t, []string{"c3d4", "a1b2", "e5f6"}, ids)
	})

	t.Run("unknown ids and commentary are ignored", func(t *testing.T) {
		t.Parallel()

		response := "Here is the ranking:\nc3d4\nzzzz\na1b2"

		ids := gemini.ParseRankedIDs(response, candidates())

		assert.Equal(t, []string{"c3d4", "a1b2"}, ids)
	})

	t.Run("duplicates keep their first position", func(t *testing.T) {
		t.Parallel()

		ids := gemini.ParseRankedIDs("c3d4\nc3d4\na1b2\nc3d4", candidates())

		assert.Equal(t, []string{"c3d4", "a1b2"}, ids)
	})

	t.Run("empty response yields nothing", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, gemini.ParseRankedIDs("", candidates()))
	})
}
