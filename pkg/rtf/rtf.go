// Package rtf converts RTF markup to plain text by stripping control words
// and groups. It handles the documents book uploads actually contain; it is
// not a full RTF reader.
package rtf

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// \par and \line end a paragraph or line; the trailing space is the
	// control word delimiter.
	lineBreakPattern = regexp.MustCompile(`\\(?:par|line)\b ?`)
	// \'hh is an 8-bit character escape.
	hexEscapePattern = regexp.MustCompile(`\\'([0-9a-fA-F]{2})`)
	// Any other control word, with an optional numeric argument and an
	// optional trailing space delimiter.
	controlWordPattern = regexp.MustCompile(`\\\*?[a-zA-Z]+-?\d* ?`)
)

// Character escapes become sentinels first so the stripped characters they
// produce survive group-brace removal.
var (
	escapeToSentinel = strings.NewReplacer(
		`\\`, "\x01",
		`\{`, "\x02",
		`\}`, "\x03",
		`\~`, " ",
	)
	sentinelToChar = strings.NewReplacer(
		"\x01", `\`,
		"\x02", "{",
		"\x03", "}",
	)
)

// ToText strips RTF markup from content, preserving paragraph breaks as
// newlines.
func ToText(content string) string {
	text := escapeToSentinel.Replace(content)
	text = lineBreakPattern.ReplaceAllString(text, "\n")

	text = hexEscapePattern.ReplaceAllStringFunc(text, func(match string) string {
		code, err := strconv.ParseUint(match[2:], 16, 8)
		if err != nil {
			return ""
		}
		return string(rune(code))
	})

	text = controlWordPattern.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "{", "")
	text = strings.ReplaceAll(text, "}", "")
	text = sentinelToChar.Replace(text)

	return strings.TrimSpace(text)
}
