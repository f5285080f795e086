package ingest

import (
	"context"
	"testing"

	"github.com/chaptermill/chaptermill/pkg/models"
	"github.com/chaptermill/chaptermill/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveChapterChainsPageNumbers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := testutils.Database(t)
	book := testutils.Book(t, db)

	end, err := SaveChapter(ctx, db, book, "One", []string{"a", "b", "c"}, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, end)

	end, err = SaveChapter(ctx, db, book, "Two", []string{"d"}, end+1)
	require.NoError(t, err)
	assert.Equal(t, 4, end)

	var chapters []*models.Chapter
	err = db.NewSelect().
		Model(&chapters).
		Where("book_id = ?", book.ID).
		Order("sort_order ASC").
		Scan(ctx)
	require.NoError(t, err)
	require.Len(t, chapters, 2)

	require.NotNil(t, chapters[0].StartPageNumber)
	require.NotNil(t, chapters[0].EndPageNumber)
	assert.Equal(t, 1, *chapters[0].StartPageNumber)
	assert.Equal(t, 3, *chapters[0].EndPageNumber)
	assert.Equal(t, 4, *chapters[1].StartPageNumber)
	assert.Equal(t, 4, *chapters[1].EndPageNumber)

	var pages []*models.Page
	err = db.NewSelect().
		Model(&pages).
		Where("chapter_id = ?", chapters[0].ID).
		Order("page_number ASC").
		Scan(ctx)
	require.NoError(t, err)
	require.Len(t, pages, 3)
	assert.Equal(t, "a", pages[0].Content)
	assert.Equal(t, 1, pages[0].PageNumber)
	assert.Equal(t, 3, pages[2].PageNumber)
}

func TestSaveChapterNoPages(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := testutils.Database(t)
	book := testutils.Book(t, db)

	end, err := SaveChapter(ctx, db, book, "Empty", nil, 5)
	require.NoError(t, err)
	assert.Equal(t, 4, end)

	chapter := &models.Chapter{}
	err = db.NewSelect().Model(chapter).Where("book_id = ?", book.ID).Scan(ctx)
	require.NoError(t, err)
	assert.Nil(t, chapter.StartPageNumber)
	assert.Nil(t, chapter.EndPageNumber)
}

func TestSaveChapterBlankTitleFallback(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := testutils.Database(t)
	book := testutils.Book(t, db)

	_, err := SaveChapter(ctx, db, book, "Named", []string{"x"}, 1)
	require.NoError(t, err)
	_, err = SaveChapter(ctx, db, book, "", []string{"y"}, 2)
	require.NoError(t, err)

	var chapters []*models.Chapter
	err = db.NewSelect().
		Model(&chapters).
		Where("book_id = ?", book.ID).
		Order("sort_order ASC").
		Scan(ctx)
	require.NoError(t, err)
	require.Len(t, chapters, 2)
	assert.Equal(t, "Untitled Chapter 2", chapters[1].Title)
}
