package ingest

import (
	"context"
	"strings"

	"github.com/chaptermill/chaptermill/pkg/epub"
	"github.com/chaptermill/chaptermill/pkg/errcodes"
	"github.com/chaptermill/chaptermill/pkg/htmlutil"
	"github.com/chaptermill/chaptermill/pkg/models"
	"github.com/chaptermill/chaptermill/pkg/textutil"
	"github.com/uptrace/bun"
)

func extractEPUB(ctx context.Context, idb bun.IDB, book *models.Book, data []byte) (*Result, error) {
	docs, err := epub.ExtractContentDocuments(data)
	if err != nil {
		return nil, errcodes.ParseFailed("Could not read EPUB container.")
	}

	var parts []string
	for _, doc := range docs {
		if text := htmlutil.StripTags(string(doc.Data)); text != "" {
			parts = append(parts, text)
		}
	}

	text := textutil.Normalize(strings.Join(parts, "\n"))
	if text == "" {
		return nil, errcodes.ParseFailed("EPUB contains no extractable text.")
	}
	return persistSegments(ctx, idb, book, textutil.SplitChapters(text), textutil.DefaultLinesPerPage)
}
