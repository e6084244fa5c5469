package retrieve_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mwalczyk/docdive"
	"github.com/mwalczyk/docdive/mock"
	"github.com/mwalczyk/docdive/retrieve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubRetriever(source docdive.Source, results []docdive.SearchResult, err error) *mock.Retriever {
	return &mock.Retriever{
		SourceFn: func() docdive.Source { return source },
		SearchFn: func(_ context.Context, _ string, _ int) ([]docdive.SearchResult, error) {
			return results, err
		},
	}
}

func result(id string, source docdive.Source) docdive.SearchResult {
	return docdive.SearchResult{
		ID:     id,
		Title:  "Result " + id,
		URL:    "https://example.com/documentation/" + id,
		Source: source,
	}
}

func TestCoordinatorSearch(t *testing.T) {
	t.Parallel()

	t.Run("merges results in registration order", func(t *testing.T) {
		t.Parallel()

		apple := stubRetriever(docdive.SourceAppleDocs,
			[]docdive.SearchResult{result("a1", docdive.SourceAppleDocs), result("a2", docdive.SourceAppleDocs)}, nil)
		hws := stubRetriever(docdive.SourceHWS,
			[]docdive.SearchResult{result("h1", docdive.SourceHWS)}, nil)
		c := retrieve.NewCoordinator(nil, apple, hws)

		results, failures, err := c.Search(context.Background(), "arrays", nil, 0)

		require.NoError(t, err)
		assert.Nil(t, failures)
		require.Len(t, results, 3)
		assert.Equal(t, "a1", results[0].ID)
		assert.Equal(t, "a2", results[1].ID)
		assert.Equal(t, "h1", results[2].ID)
	})

	t.Run("one failing source does not abort the others", func(t *testing.T) {
		t.Parallel()

		apple := stubRetriever(docdive.SourceAppleDocs,
			[]docdive.SearchResult{result("a1", docdive.SourceAppleDocs)}, nil)
		hws := stubRetriever(docdive.SourceHWS, nil,
			docdive.Errorf(docdive.ERATELIMIT, "slow down"))
		c := retrieve.NewCoordinator(nil, apple, hws)

		results, failures, err := c.Search(context.Background(), "arrays", nil, 0)

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "a1", results[0].ID)
		require.Len(t, failures, 1)
		assert.Equal(t, docdive.ERATELIMIT, docdive.ErrorCode(failures[docdive.SourceHWS]))
	})

	t.Run("all sources failing is an aggregate failure", func(t *testing.T) {
		t.Parallel()

		apple := stubRetriever(docdive.SourceAppleDocs, nil,
			docdive.Errorf(docdive.ENETWORK, "apple down"))
		hws := stubRetriever(docdive.SourceHWS, nil,
			docdive.Errorf(docdive.ENORESULTS, "nothing matched"))
		c := retrieve.NewCoordinator(nil, apple, hws)

		_, failures, err := c.Search(context.Background(), "arrays", nil, 0)

		require.Error(t, err)
		require.Len(t, failures, 2)

		var srcErrs *docdive.SourceErrors
		require.True(t, errors.As(err, &srcErrs))
		assert.Equal(t, failures, srcErrs.Errors)
		assert.Contains(t, srcErrs.Error(), "apple")
		assert.Contains(t, srcErrs.Error(), "hws")
	})

	t.Run("source selection restricts the fan-out", func(t *testing.T) {
		t.Parallel()

		appleCalled := false
		apple := &mock.Retriever{
			SourceFn: func() docdive.Source { return docdive.SourceAppleDocs },
			SearchFn: func(_ context.Context, _ string, _ int) ([]docdive.SearchResult, error) {
				appleCalled = true
				return []docdive.SearchResult{result("a1", docdive.SourceAppleDocs)}, nil
			},
		}
		hws := stubRetriever(docdive.SourceHWS,
			[]docdive.SearchResult{result("h1", docdive.SourceHWS)}, nil)
		c := retrieve.NewCoordinator(nil, apple, hws)

		results, _, err := c.Search(context.Background(), "arrays", []docdive.Source{docdive.SourceHWS}, 0)

		require.NoError(t, err)
		assert.False(t, appleCalled)
		require.Len(t, results, 1)
		assert.Equal(t, "h1", results[0].ID)
	})

	t.Run("unknown source selection is invalid", func(t *testing.T) {
		t.Parallel()

		c := retrieve.NewCoordinator(nil,
			stubRetriever(docdive.SourceAppleDocs, nil, nil))

		_, _, err := c.Search(context.Background(), "arrays", []docdive.Source{"mdn"}, 0)

		require.Error(t, err)
		assert.Equal(t, docdive.EINVALID, docdive.ErrorCode(err))
	})

	t.Run("maxPerSource is passed through to every source", func(t *testing.T) {
		t.Parallel()

		var got int
		r := &mock.Retriever{
			SourceFn: func() docdive.Source { return docdive.SourceAppleDocs },
			SearchFn: func(_ context.Context, _ string, maxResults int) ([]docdive.SearchResult, error) {
				got = maxResults
				return nil, nil
			},
		}
		c := retrieve.NewCoordinator(nil, r)

		_, _, err := c.Search(context.Background(), "arrays", nil, 5)

		require.NoError(t, err)
		assert.Equal(t, 5, got)
	})
}

func TestCoordinatorFetch(t *testing.T) {
	t.Parallel()

	t.Run("routes to the retriever that produced the result", func(t *testing.T) {
		t.Parallel()

		want := &docdive.DocumentContent{Markdown: "# Arrays\n"}
		hws := &mock.Retriever{
			SourceFn: func() docdive.Source { return docdive.SourceHWS },
			FetchFn: func(_ context.Context, _ docdive.SearchResult) (*docdive.DocumentContent, error) {
				return want, nil
			},
		}
		c := retrieve.NewCoordinator(nil,
			stubRetriever(docdive.SourceAppleDocs, nil, nil), hws)

		got, err := c.Fetch(context.Background(), result("h1", docdive.SourceHWS))

		require.NoError(t, err)
		assert.Same(t, want, got)
	})

	t.Run("unregistered source is invalid", func(t *testing.T) {
		t.Parallel()

		c := retrieve.NewCoordinator(nil,
			stubRetriever(docdive.SourceAppleDocs, nil, nil))

		_, err := c.Fetch(context.Background(), result("x", "mdn"))

		require.Error(t, err)
		assert.Equal(t, docdive.EINVALID, docdive.ErrorCode(err))
	})
}

func TestCoordinatorSources(t *testing.T) {
	t.Parallel()

	c := retrieve.NewCoordinator(nil,
		stubRetriever(docdive.SourceAppleDocs, nil, nil),
		stubRetriever(docdive.SourceHWS, nil, nil))

	assert.Equal(t, []docdive.Source{docdive.SourceAppleDocs, docdive.SourceHWS}, c.Sources())
}
