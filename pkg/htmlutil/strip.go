// Package htmlutil strips markup from EPUB content documents down to plain
// text while keeping paragraph breaks.
package htmlutil

import (
	"regexp"
	"strings"
)

// blockBreakPattern matches the closing side of block-level elements that
// should turn into line breaks.
var blockBreakPattern = regexp.MustCompile(`(?i)<br\s*/?>|</(?:p|div|li|h[1-6]|tr|blockquote)>`)

// tagPattern matches any remaining tag, including self-closing ones.
var tagPattern = regexp.MustCompile(`<[^>]*>`)

var multipleSpacesPattern = regexp.MustCompile(`\s{2,}`)

var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", "\"",
	"&#39;", "'",
	"&apos;", "'",
	"&mdash;", "—",
	"&ndash;", "–",
	"&hellip;", "…",
	"&rsquo;", "’",
	"&lsquo;", "‘",
	"&rdquo;", "”",
	"&ldquo;", "“",
	"&amp;", "&",
)

// StripTags removes all HTML tags from a string and normalizes whitespace.
// Block-level elements become newlines so paragraph structure survives into
// the segmenter.
func StripTags(html string) string {
	if html == "" {
		return ""
	}

	result := blockBreakPattern.ReplaceAllString(html, "\n")
	result = tagPattern.ReplaceAllString(result, "")
	result = entityReplacer.Replace(result)

	lines := strings.Split(result, "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(multipleSpacesPattern.ReplaceAllString(line, " "))
		if line != "" {
			kept = append(kept, line)
		}
	}

	return strings.Join(kept, "\n")
}
