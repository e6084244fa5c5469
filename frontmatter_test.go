package docdive_test

import (
	"strings"
	"testing"
	"time"

	"github.com/mwalczyk/docdive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrontmatter(t *testing.T) {
	t.Parallel()

	fetched := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	t.Run("render produces delimited block with blank line", func(t *testing.T) {
		t.Parallel()

		fm := docdive.RenderFrontmatter("Arrays", "https://developer.apple.com/documentation/swift/array", fetched)

		assert.True(t, strings.HasPrefix(fm, "---\n"))
		assert.Contains(t, fm, "title: Arrays\n")
		assert.Contains(t, fm, "source: https://developer.apple.com/documentation/swift/array\n")
		assert.Contains(t, fm, "fetched: \"2025-03-14T09:26:53Z\"\n")
		assert.True(t, strings.HasSuffix(fm, "---\n\n"))
	})

	t.Run("strip removes exactly the block and returns body unchanged", func(t *testing.T) {
		t.Parallel()

		body := "# Arrays\n\nAn ordered collection.\n"
		doc := docdive.RenderFrontmatter("Arrays", "https://example.com/a", fetched) + body

		assert.Equal(t, body, docdive.StripFrontmatter(doc))
	})

	t.Run("strip twice equals strip once", func(t *testing.T) {
		t.Parallel()

		body := "# Title\n\ntext with --- inline\n"
		doc := docdive.RenderFrontmatter("Title", "https://example.com/b", fetched) + body

		once := docdive.StripFrontmatter(doc)
		twice := docdive.StripFrontmatter(once)

		assert.Equal(t, once, twice)
		assert.False(t, strings.HasPrefix(once, "---\n"))
	})

	t.Run("strip leaves documents without frontmatter alone", func(t *testing.T) {
		t.Parallel()

		doc := "# No metadata here\n"
		assert.Equal(t, doc, docdive.StripFrontmatter(doc))
	})

	t.Run("strip leaves unterminated frontmatter alone", func(t *testing.T) {
		t.Parallel()

		doc := "---\ntitle: broken\nno closing delimiter"
		assert.Equal(t, doc, docdive.StripFrontmatter(doc))
	})

	t.Run("parse round-trips metadata", func(t *testing.T) {
		t.Parallel()

		body := "content\n"
		doc := docdive.RenderFrontmatter("My Doc", "https://example.com/doc", fetched) + body

		fm, rest := docdive.ParseFrontmatter(doc)

		require.Equal(t, "My Doc", fm.Title)
		assert.Equal(t, "https://example.com/doc", fm.Source)
		assert.Equal(t, "2025-03-14T09:26:53Z", fm.Fetched)
		assert.Equal(t, body, rest)
	})
}
