// Package fb2 extracts paragraph text from FictionBook 2 documents. FB2
// files in the wild are frequently malformed XML, so parsing goes through
// the x/net/html tokenizer, which recovers instead of failing.
package fb2

import (
	"bytes"
	"io"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

// ErrNoBody is returned when the document has no body element at all.
var ErrNoBody = errors.New("fb2 body not found")

// The HTML tokenizer treats <title> content as raw text, but FB2 section
// titles contain <p> elements we need to see. Renaming the tag keeps the
// tokenizer walking through them.
var titleTagPattern = regexp.MustCompile(`(?i)<(/?)title>`)

// ExtractParagraphText returns the text of every paragraph element inside
// the document's body elements, in document order, joined by newlines.
func ExtractParagraphText(data []byte) (string, error) {
	data = titleTagPattern.ReplaceAll(data, []byte("<${1}fb2-title>"))
	tokenizer := html.NewTokenizer(bytes.NewReader(data))

	sawBody := false
	bodyDepth := 0
	paragraphDepth := 0
	var paragraphs []string
	var current strings.Builder

	flush := func() {
		text := strings.TrimSpace(current.String())
		if text != "" {
			paragraphs = append(paragraphs, text)
		}
		current.Reset()
	}

	for {
		tokenType := tokenizer.Next()
		if tokenType == html.ErrorToken {
			if err := tokenizer.Err(); err != io.EOF {
				return "", errors.WithStack(err)
			}
			break
		}

		token := tokenizer.Token()
		switch tokenType {
		case html.StartTagToken:
			switch token.Data {
			case "body":
				sawBody = true
				bodyDepth++
			case "p":
				if bodyDepth > 0 {
					paragraphDepth++
				}
			}
		case html.EndTagToken:
			switch token.Data {
			case "body":
				if bodyDepth > 0 {
					bodyDepth--
				}
			case "p":
				if paragraphDepth > 0 {
					paragraphDepth--
					if paragraphDepth == 0 {
						flush()
					}
				}
			}
		case html.SelfClosingTagToken:
			// Empty paragraphs (<p/>) contribute nothing.
		case html.TextToken:
			if bodyDepth > 0 && paragraphDepth > 0 {
				current.WriteString(token.Data)
			}
		}
	}

	// A paragraph left open by truncated markup still counts.
	if paragraphDepth > 0 {
		flush()
	}

	if !sawBody {
		return "", errors.WithStack(ErrNoBody)
	}

	return strings.Join(paragraphs, "\n"), nil
}
