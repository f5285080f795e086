package textutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectChapterTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		line     string
		expected string
		ok       bool
	}{
		{"empty", "", "", false},
		{"whitespace only", "   \t ", "", false},
		{"too short", "ab", "", false},
		{"keyword prefix", "Chapter One", "Chapter One", true},
		{"keyword prefix lowercase", "chapter 12", "chapter 12", true},
		{"keyword russian", "Глава первая", "Глава первая", true},
		{"keyword part", "Part II: The Return", "Part II: The Return", true},
		{"keyword section", "Section 4", "Section 4", true},
		{"all caps", "THE BEGINNING", "THE BEGINNING", true},
		{"all caps trimmed", "  EPILOGUE  ", "EPILOGUE", true},
		{"mixed case no keyword", "An ordinary sentence", "", false},
		{"keyword mid-sentence not prefix", "The chapter was long", "", false},
		{"sixty chars no pattern", strings.Repeat("a", 60), "", false},
		{"sixty chars caps rejected by length", strings.Repeat("A", 60), "", false},
		{"nine words never accepted", "CHAPTER IN WHICH WE MEET NINE WHOLE WORDS TODAY", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			title, ok := DetectChapterTitle(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, title)
		})
	}
}

func TestDetectChapterTitleReturnsOriginalCase(t *testing.T) {
	t.Parallel()

	title, ok := DetectChapterTitle("  Chapter One  ")
	assert.True(t, ok)
	assert.Equal(t, "Chapter One", title)
}
