package ingest

import (
	"context"
	"time"

	"github.com/chaptermill/chaptermill/pkg/models"
	"github.com/chaptermill/chaptermill/pkg/textutil"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// SaveChapter persists one chapter and its pages for book. Pages are
// numbered startingPageNumber, startingPageNumber+1, and so on; the return
// value is the number assigned to the last page, so callers chain calls with
// next = returned + 1 to keep numbering contiguous across the book. A
// chapter with no pages returns startingPageNumber-1 and leaves its page
// range null.
//
// A blank title falls back to "Untitled Chapter N" where N is the chapter's
// 1-based position in the book.
func SaveChapter(ctx context.Context, idb bun.IDB, book *models.Book, title string, pages []string, startingPageNumber int) (int, error) {
	existing, err := idb.NewSelect().
		Model((*models.Chapter)(nil)).
		Where("book_id = ?", book.ID).
		Count(ctx)
	if err != nil {
		return 0, errors.WithStack(err)
	}

	if title == "" {
		title = textutil.UntitledChapterTitle(existing + 1)
	}

	now := time.Now()
	chapter := &models.Chapter{
		ID:        uuid.NewString(),
		BookID:    book.ID,
		SortOrder: existing,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if len(pages) > 0 {
		start := startingPageNumber
		end := startingPageNumber + len(pages) - 1
		chapter.StartPageNumber = &start
		chapter.EndPageNumber = &end
	}

	_, err = idb.NewInsert().Model(chapter).Exec(ctx)
	if err != nil {
		return 0, errors.WithStack(err)
	}

	if len(pages) > 0 {
		pageModels := make([]*models.Page, 0, len(pages))
		for i, content := range pages {
			pageModels = append(pageModels, &models.Page{
				ID:         uuid.NewString(),
				ChapterID:  chapter.ID,
				PageNumber: startingPageNumber + i,
				Content:    content,
				CreatedAt:  now,
				UpdatedAt:  now,
			})
		}
		_, err = idb.NewInsert().Model(&pageModels).Exec(ctx)
		if err != nil {
			return 0, errors.WithStack(err)
		}
	}

	return startingPageNumber + len(pages) - 1, nil
}

// persistSegments writes segmented chapters in order, paginating each body
// at linesPerPage and chaining page numbers from 1.
func persistSegments(ctx context.Context, idb bun.IDB, book *models.Book, chapters []textutil.ChapterText, linesPerPage int) (*Result, error) {
	result := &Result{}
	next := 1
	for _, chapter := range chapters {
		pages := textutil.PaginateLines(chapter.Body, linesPerPage)
		end, err := SaveChapter(ctx, idb, book, chapter.Title, pages, next)
		if err != nil {
			return nil, err
		}
		result.ChapterTitles = append(result.ChapterTitles, chapter.Title)
		result.TotalChapters++
		next = end + 1
	}
	result.TotalPages = next - 1
	return result, nil
}
