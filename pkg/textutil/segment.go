package textutil

import (
	"fmt"
	"strings"
)

// ChapterText is one segmented chapter: a heading plus the normalized body
// that followed it.
type ChapterText struct {
	Title string
	Body  string
}

// UntitledChapterTitle returns the placeholder title for the n-th chapter
// (1-based) when no heading was detected for it.
func UntitledChapterTitle(n int) string {
	return fmt.Sprintf("Untitled Chapter %d", n)
}

// SplitChapters splits flat text into (title, body) chapters by scanning for
// heading lines with DetectChapterTitle. Text before the first heading (and
// any chapter whose heading was never found) gets an "Untitled Chapter N"
// placeholder. For non-empty input the result always has at least one entry.
func SplitChapters(text string) []ChapterText {
	if text == "" {
		return nil
	}

	var chapters []ChapterText
	var currentTitle string
	var accum []string

	flush := func() {
		title := currentTitle
		if title == "" {
			title = UntitledChapterTitle(len(chapters) + 1)
		}
		chapters = append(chapters, ChapterText{
			Title: title,
			Body:  Normalize(strings.Join(accum, "\n")),
		})
	}

	for _, line := range strings.Split(text, "\n") {
		title, ok := DetectChapterTitle(line)
		if !ok {
			accum = append(accum, line)
			continue
		}
		if len(accum) > 0 {
			flush()
		}
		currentTitle = title
		accum = nil
	}

	// The trailing accumulator is a chapter too. The len check also covers
	// the degenerate case of input that was nothing but heading lines, so a
	// non-empty text never yields zero chapters.
	if len(accum) > 0 || len(chapters) == 0 {
		flush()
	}

	return chapters
}
