package textutil

import (
	"strings"
	"unicode"
)

// chapterKeywords are the heading prefixes recognized in English and Russian.
var chapterKeywords = []string{"chapter", "глава", "part", "часть", "section", "раздел"}

const (
	minTitleLength = 3
	maxTitleLength = 50
	maxTitleWords  = 8
)

// DetectChapterTitle reports whether a single line looks like a chapter
// heading. A line qualifies when it is short enough and either entirely
// upper-case or prefixed by a known chapter keyword. The returned title is
// the trimmed original line.
//
// This is a deliberate heuristic: a short all-caps acronym line or a keyword
// at the start of a sentence can be misclassified.
func DetectChapterTitle(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if len([]rune(line)) < minTitleLength {
		return "", false
	}
	if len(strings.Fields(line)) > maxTitleWords {
		return "", false
	}
	if len([]rune(line)) >= maxTitleLength {
		return "", false
	}

	if isUpper(line) {
		return line, true
	}

	lower := strings.ToLower(line)
	for _, keyword := range chapterKeywords {
		if strings.HasPrefix(lower, keyword) {
			return line, true
		}
	}

	return "", false
}

// isUpper reports whether the string contains at least one cased character
// and no lower-case characters, matching Python's str.isupper.
func isUpper(s string) bool {
	hasCased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			hasCased = true
		}
	}
	return hasCased
}
