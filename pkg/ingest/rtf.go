package ingest

import (
	"context"

	"github.com/chaptermill/chaptermill/pkg/errcodes"
	"github.com/chaptermill/chaptermill/pkg/models"
	"github.com/chaptermill/chaptermill/pkg/rtf"
	"github.com/chaptermill/chaptermill/pkg/textutil"
	"github.com/uptrace/bun"
)

func extractRTF(ctx context.Context, idb bun.IDB, book *models.Book, data []byte) (*Result, error) {
	text := textutil.Normalize(rtf.ToText(decodeText(data)))
	if text == "" {
		return nil, errcodes.ParseFailed("RTF file contains no text.")
	}
	return persistSegments(ctx, idb, book, textutil.SplitChapters(text), textutil.DefaultLinesPerPage)
}
