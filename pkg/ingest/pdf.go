package ingest

import (
	"bytes"
	"context"
	"strings"

	"github.com/chaptermill/chaptermill/pkg/errcodes"
	"github.com/chaptermill/chaptermill/pkg/models"
	"github.com/chaptermill/chaptermill/pkg/textutil"
	"github.com/ledongthuc/pdf"
	"github.com/uptrace/bun"
)

// tocDetectorThreshold is the number of title-like lines on a single page
// past which the page is treated as a table of contents and skipped.
const tocDetectorThreshold = 3

// pageSource abstracts the PDF reader so the chapter state machine can be
// driven by synthetic pages in tests.
type pageSource interface {
	pageCount() int
	pageText(number int) (string, error)
}

type pdfFile struct {
	reader *pdf.Reader
}

func (f *pdfFile) pageCount() int {
	return f.reader.NumPage()
}

func (f *pdfFile) pageText(number int) (string, error) {
	page := f.reader.Page(number)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}

func extractPDF(ctx context.Context, idb bun.IDB, book *models.Book, data []byte) (*Result, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errcodes.ParseFailed("Could not open PDF file.")
	}
	return extractPDFPages(ctx, idb, book, &pdfFile{reader: reader})
}

// extractPDFPages walks pages in order, accumulating body lines until a
// chapter title is detected, at which point the accumulated text is flushed
// as the previous chapter. Pages where several lines look like titles are
// tables of contents and contribute nothing.
func extractPDFPages(ctx context.Context, idb bun.IDB, book *models.Book, source pageSource) (*Result, error) {
	result := &Result{}
	next := 1
	currentTitle := ""
	var accum []string

	flush := func(title string) error {
		body := textutil.Normalize(strings.Join(accum, "\n"))
		pages := textutil.PaginateWrappedLines(body, textutil.WrappedLinesPerPage, textutil.DefaultMaxLineLength)
		end, err := SaveChapter(ctx, idb, book, title, pages, next)
		if err != nil {
			return err
		}
		if title == "" {
			title = textutil.UntitledChapterTitle(result.TotalChapters + 1)
		}
		result.ChapterTitles = append(result.ChapterTitles, title)
		result.TotalChapters++
		next = end + 1
		accum = accum[:0]
		return nil
	}

	for number := 1; number <= source.pageCount(); number++ {
		text, err := source.pageText(number)
		if err != nil {
			// A single unreadable page should not sink the whole book.
			continue
		}
		lines := strings.Split(text, "\n")

		titleCount := 0
		for _, line := range lines {
			if _, ok := textutil.DetectChapterTitle(line); ok {
				titleCount++
			}
		}
		if titleCount >= tocDetectorThreshold {
			continue
		}

		for _, line := range lines {
			if title, ok := textutil.DetectChapterTitle(line); ok {
				if len(accum) > 0 {
					if err := flush(currentTitle); err != nil {
						return nil, err
					}
				}
				currentTitle = title
				continue
			}
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				accum = append(accum, trimmed)
			}
		}
	}

	if len(accum) > 0 || (result.TotalChapters == 0 && currentTitle != "") {
		if err := flush(currentTitle); err != nil {
			return nil, err
		}
	}
	if result.TotalChapters == 0 {
		return nil, errcodes.ParseFailed("PDF contains no extractable text.")
	}

	result.TotalPages = next - 1
	return result, nil
}
