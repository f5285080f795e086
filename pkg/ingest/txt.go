package ingest

import (
	"context"
	"unicode/utf8"

	"github.com/chaptermill/chaptermill/pkg/errcodes"
	"github.com/chaptermill/chaptermill/pkg/models"
	"github.com/chaptermill/chaptermill/pkg/textutil"
	"github.com/uptrace/bun"
)

func extractTXT(ctx context.Context, idb bun.IDB, book *models.Book, data []byte) (*Result, error) {
	text := textutil.Normalize(decodeText(data))
	if text == "" {
		return nil, errcodes.ParseFailed("File contains no text.")
	}
	return persistSegments(ctx, idb, book, textutil.SplitChapters(text), textutil.DefaultLinesPerPage)
}

// decodeText interprets bytes as UTF-8 when valid and falls back to Latin-1
// otherwise, so legacy single-byte files never produce replacement runes.
func decodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}
