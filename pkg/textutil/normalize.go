// Package textutil holds the line-oriented text transforms the ingestion
// pipeline is built from: whitespace normalization, chapter-title detection,
// chapter segmentation, and pagination. Everything here is pure and
// deterministic.
package textutil

import (
	"regexp"
	"strings"
)

var (
	multipleSpacesPattern   = regexp.MustCompile(` {2,}`)
	multipleNewlinesPattern = regexp.MustCompile(`\n{3,}`)
)

// Normalize collapses whitespace noise in extracted text: tabs become single
// spaces, runs of two or more spaces collapse to one, runs of three or more
// newlines collapse to one, and every line (and the whole text) is trimmed.
// Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ReplaceAll(text, "\t", " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = multipleSpacesPattern.ReplaceAllString(line, " ")
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")

	text = multipleNewlinesPattern.ReplaceAllString(text, "\n")

	return strings.TrimSpace(text)
}
