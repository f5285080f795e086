package ingest

import (
	"context"

	"github.com/chaptermill/chaptermill/pkg/errcodes"
	"github.com/chaptermill/chaptermill/pkg/fb2"
	"github.com/chaptermill/chaptermill/pkg/models"
	"github.com/chaptermill/chaptermill/pkg/textutil"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

func extractFB2(ctx context.Context, idb bun.IDB, book *models.Book, data []byte) (*Result, error) {
	content, err := fb2.ExtractParagraphText(data)
	if err != nil {
		if errors.Is(err, fb2.ErrNoBody) {
			return nil, errcodes.ParseFailed("FB2 file has no body element.")
		}
		return nil, err
	}

	text := textutil.Normalize(content)
	if text == "" {
		return nil, errcodes.ParseFailed("FB2 file contains no text.")
	}
	return persistSegments(ctx, idb, book, textutil.SplitChapters(text), textutil.DefaultLinesPerPage)
}
