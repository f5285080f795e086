package textutil

import "strings"

const (
	// DefaultLinesPerPage is the page height used for text-first formats.
	DefaultLinesPerPage = 26
	// WrappedLinesPerPage is the page height used when long lines are
	// re-wrapped first (the PDF path).
	WrappedLinesPerPage = 20
	// DefaultMaxLineLength is the column at which WrapLongLines breaks.
	DefaultMaxLineLength = 125
)

// PaginateLines splits a chapter body into pages of linesPerPage lines each,
// rejoined with newlines. The last page may be shorter. An empty body yields
// zero pages.
func PaginateLines(body string, linesPerPage int) []string {
	if body == "" || linesPerPage <= 0 {
		return nil
	}

	lines := strings.Split(body, "\n")
	pages := make([]string, 0, (len(lines)+linesPerPage-1)/linesPerPage)
	for start := 0; start < len(lines); start += linesPerPage {
		end := start + linesPerPage
		if end > len(lines) {
			end = len(lines)
		}
		pages = append(pages, strings.Join(lines[start:end], "\n"))
	}
	return pages
}

// PaginateWrappedLines is PaginateLines after re-wrapping any line longer
// than maxLineLength with WrapLongLines.
func PaginateWrappedLines(body string, linesPerPage, maxLineLength int) []string {
	return PaginateLines(WrapLongLines(body, maxLineLength), linesPerPage)
}

// WrapLongLines greedily re-wraps lines exceeding maxLineLength by packing
// whitespace-delimited words. Words are never split, so a single word longer
// than maxLineLength stays on its own line.
func WrapLongLines(body string, maxLineLength int) string {
	if body == "" || maxLineLength <= 0 {
		return body
	}

	var out []string
	for _, line := range strings.Split(body, "\n") {
		if len([]rune(line)) <= maxLineLength {
			out = append(out, line)
			continue
		}
		out = append(out, wrapLine(line, maxLineLength)...)
	}
	return strings.Join(out, "\n")
}

func wrapLine(line string, maxLineLength int) []string {
	var wrapped []string
	var current strings.Builder
	currentLen := 0

	for _, word := range strings.Fields(line) {
		wordLen := len([]rune(word))
		if currentLen > 0 && currentLen+1+wordLen > maxLineLength {
			wrapped = append(wrapped, current.String())
			current.Reset()
			currentLen = 0
		}
		if currentLen > 0 {
			current.WriteByte(' ')
			currentLen++
		}
		current.WriteString(word)
		currentLen += wordLen
	}
	if currentLen > 0 {
		wrapped = append(wrapped, current.String())
	}
	return wrapped
}
