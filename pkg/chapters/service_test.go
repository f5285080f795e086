package chapters

import (
	"context"
	"testing"

	"github.com/chaptermill/chaptermill/pkg/ingest"
	"github.com/chaptermill/chaptermill/pkg/models"
	"github.com/chaptermill/chaptermill/pkg/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetrieveChapterWithPages(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := testutils.Database(t)
	svc := NewService(db)
	book := testutils.Book(t, db)

	_, err := ingest.SaveChapter(ctx, db, book, "Opening", []string{"first page", "second page"}, 1)
	require.NoError(t, err)

	var inserted models.Chapter
	err = db.NewSelect().Model(&inserted).Where("book_id = ?", book.ID).Scan(ctx)
	require.NoError(t, err)

	chapter, err := svc.RetrieveChapter(ctx, RetrieveChapterOptions{
		ID:           &inserted.ID,
		IncludePages: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Opening", chapter.Title)
	require.Len(t, chapter.Pages, 2)
	assert.Equal(t, "first page", chapter.Pages[0].Content)
	assert.Equal(t, 1, chapter.Pages[0].PageNumber)
	assert.Equal(t, 2, chapter.Pages[1].PageNumber)
}

func TestRetrieveChapterNotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := testutils.Database(t)
	svc := NewService(db)

	id := uuid.NewString()
	_, err := svc.RetrieveChapter(ctx, RetrieveChapterOptions{ID: &id})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestDeleteChaptersRenumbers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := testutils.Database(t)
	svc := NewService(db)
	book := testutils.Book(t, db)

	next := 1
	end, err := ingest.SaveChapter(ctx, db, book, "A", []string{"a1", "a2"}, next)
	require.NoError(t, err)
	next = end + 1
	end, err = ingest.SaveChapter(ctx, db, book, "B", []string{"b1"}, next)
	require.NoError(t, err)
	next = end + 1
	end, err = ingest.SaveChapter(ctx, db, book, "C", nil, next)
	require.NoError(t, err)
	next = end + 1
	_, err = ingest.SaveChapter(ctx, db, book, "D", []string{"d1", "d2", "d3"}, next)
	require.NoError(t, err)

	var chapters []*models.Chapter
	err = db.NewSelect().
		Model(&chapters).
		Where("book_id = ?", book.ID).
		Order("sort_order ASC").
		Scan(ctx)
	require.NoError(t, err)
	require.Len(t, chapters, 4)

	// Remove B; what remains should close ranks: A keeps 1-2, C stays
	// pageless, D moves from 4-6 to 3-5.
	err = svc.DeleteChapters(ctx, book, []string{chapters[1].ID})
	require.NoError(t, err)

	assert.Equal(t, 3, book.TotalChapters)
	assert.Equal(t, 5, book.TotalPages)

	var remaining []*models.Chapter
	err = db.NewSelect().
		Model(&remaining).
		Where("book_id = ?", book.ID).
		Order("sort_order ASC").
		Scan(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 3)

	assert.Equal(t, "A", remaining[0].Title)
	assert.Equal(t, 0, remaining[0].SortOrder)
	assert.Equal(t, 1, *remaining[0].StartPageNumber)
	assert.Equal(t, 2, *remaining[0].EndPageNumber)

	assert.Equal(t, "C", remaining[1].Title)
	assert.Equal(t, 1, remaining[1].SortOrder)
	assert.Nil(t, remaining[1].StartPageNumber)
	assert.Nil(t, remaining[1].EndPageNumber)

	assert.Equal(t, "D", remaining[2].Title)
	assert.Equal(t, 2, remaining[2].SortOrder)
	assert.Equal(t, 3, *remaining[2].StartPageNumber)
	assert.Equal(t, 5, *remaining[2].EndPageNumber)

	var pages []*models.Page
	err = db.NewSelect().
		Model(&pages).
		Where("chapter_id = ?", remaining[2].ID).
		Order("page_number ASC").
		Scan(ctx)
	require.NoError(t, err)
	require.Len(t, pages, 3)
	assert.Equal(t, 3, pages[0].PageNumber)
	assert.Equal(t, "d1", pages[0].Content)
	assert.Equal(t, 5, pages[2].PageNumber)
	assert.Equal(t, "d3", pages[2].Content)
}

func TestDeleteChaptersUnknownChapter(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := testutils.Database(t)
	svc := NewService(db)
	book := testutils.Book(t, db)

	_, err := ingest.SaveChapter(ctx, db, book, "Only", []string{"x"}, 1)
	require.NoError(t, err)

	err = svc.DeleteChapters(ctx, book, []string{uuid.NewString()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	// Nothing was deleted.
	count, err := db.NewSelect().
		Model((*models.Chapter)(nil)).
		Where("book_id = ?", book.ID).
		Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
