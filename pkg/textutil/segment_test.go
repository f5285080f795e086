package textutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitChapters(t *testing.T) {
	t.Parallel()

	text := "Chapter One\nHello world.\n\n\n\nChapter Two\nGoodbye."
	chapters := SplitChapters(text)

	require.Len(t, chapters, 2)
	assert.Equal(t, "Chapter One", chapters[0].Title)
	assert.Equal(t, "Hello world.", chapters[0].Body)
	assert.Equal(t, "Chapter Two", chapters[1].Title)
	assert.Equal(t, "Goodbye.", chapters[1].Body)
}

func TestSplitChaptersUntitledFallback(t *testing.T) {
	t.Parallel()

	chapters := SplitChapters("just some prose.\nwith no headings at all.")

	require.Len(t, chapters, 1)
	assert.Equal(t, "Untitled Chapter 1", chapters[0].Title)
	assert.Equal(t, "just some prose.\nwith no headings at all.", chapters[0].Body)
}

func TestSplitChaptersPreambleBeforeFirstHeading(t *testing.T) {
	t.Parallel()

	text := "some front matter.\nCHAPTER ONE\nbody text."
	chapters := SplitChapters(text)

	require.Len(t, chapters, 2)
	assert.Equal(t, "Untitled Chapter 1", chapters[0].Title)
	assert.Equal(t, "some front matter.", chapters[0].Body)
	assert.Equal(t, "CHAPTER ONE", chapters[1].Title)
	assert.Equal(t, "body text.", chapters[1].Body)
}

func TestSplitChaptersEmptyText(t *testing.T) {
	t.Parallel()
	assert.Empty(t, SplitChapters(""))
}

func TestSplitChaptersHeadingOnlyInput(t *testing.T) {
	t.Parallel()

	chapters := SplitChapters("CHAPTER ONE")

	require.Len(t, chapters, 1)
	assert.Equal(t, "CHAPTER ONE", chapters[0].Title)
	assert.Empty(t, chapters[0].Body)
}

func TestSplitChaptersReconstructsBodyContent(t *testing.T) {
	t.Parallel()

	text := "alpha line.\nbeta line.\nChapter Two\ngamma line.\ndelta line."
	chapters := SplitChapters(text)
	require.Len(t, chapters, 2)

	var bodies []string
	for _, ch := range chapters {
		bodies = append(bodies, ch.Body)
	}
	joined := strings.Join(bodies, "\n")
	assert.Equal(t, "alpha line.\nbeta line.\ngamma line.\ndelta line.", joined)
}
