// Package ingest turns uploaded e-book files into persisted Book → Chapter →
// Page hierarchies. Each supported format has an extractor that produces
// chapters (directly or via the shared segmenter) and writes them through
// SaveChapter, threading a running page counter so page numbers stay
// contiguous across the whole book.
package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/chaptermill/chaptermill/pkg/errcodes"
	"github.com/chaptermill/chaptermill/pkg/models"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/uptrace/bun"
)

// Format identifies a supported upload format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatFB2  Format = "fb2"
	FormatEPUB Format = "epub"
	FormatTXT  Format = "txt"
	FormatRTF  Format = "rtf"
)

// Result reports what an ingestion produced.
type Result struct {
	ChapterTitles []string `json:"chapter_titles"`
	TotalChapters int      `json:"total_chapters"`
	TotalPages    int      `json:"total_pages"`
}

type extractFunc func(ctx context.Context, idb bun.IDB, book *models.Book, data []byte) (*Result, error)

var extractors = map[Format]extractFunc{
	FormatPDF:  extractPDF,
	FormatFB2:  extractFB2,
	FormatEPUB: extractEPUB,
	FormatTXT:  extractTXT,
	FormatRTF:  extractRTF,
}

// DetectFormat maps a filename to its upload format by extension. Unknown
// extensions are a validation error, not a server error.
func DetectFormat(filename string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	format := Format(ext)
	if _, ok := extractors[format]; !ok {
		return "", errcodes.UnsupportedFileType(ext)
	}
	return format, nil
}

// Ingest extracts data into chapters and pages for book and updates the
// book's cached totals. It must be called inside the transaction that
// created the book row: any failure is returned to the caller so the whole
// upload rolls back together.
func Ingest(ctx context.Context, idb bun.IDB, book *models.Book, filename string, data []byte) (result *Result, err error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errcodes.EmptyUpload()
	}

	// Extractors work on hostile input; a panic becomes a structural error
	// instead of taking the request down.
	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(ctx).Warn("extractor panicked", logger.Data{"format": string(format), "panic": fmt.Sprint(r)})
			result = nil
			err = errcodes.ParseFailed(fmt.Sprintf("Could not parse %s file.", format))
		}
	}()

	result, err = extractors[format](ctx, idb, book, data)
	if err != nil {
		var ec *errcodes.Error
		if errors.As(err, &ec) {
			return nil, err
		}
		logger.FromContext(ctx).Warn("extraction failed", logger.Data{"format": string(format), "error": err.Error()})
		return nil, errcodes.ParseFailed(fmt.Sprintf("Could not parse %s file.", format))
	}

	book.TotalChapters = result.TotalChapters
	book.TotalPages = result.TotalPages
	book.UpdatedAt = time.Now()
	_, err = idb.NewUpdate().
		Model(book).
		Column("total_chapters", "total_pages", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return result, nil
}
