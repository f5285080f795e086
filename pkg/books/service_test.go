package books

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/chaptermill/chaptermill/pkg/errcodes"
	"github.com/chaptermill/chaptermill/pkg/fileutils"
	"github.com/chaptermill/chaptermill/pkg/genres"
	"github.com/chaptermill/chaptermill/pkg/models"
	"github.com/chaptermill/chaptermill/pkg/testutils"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBook(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := testutils.Database(t)
	store := fileutils.NewStore(t.TempDir())
	svc := NewService(db, store)
	genreService := genres.NewService(db)

	genre, err := genreService.FindOrCreateGenre(ctx, db, "Fantasy "+uuid.NewString())
	require.NoError(t, err)

	ownerID := uuid.NewString()
	book, result, err := svc.CreateBook(ctx, CreateBookParams{
		OwnerID:  ownerID,
		Title:    "The Long Night",
		Language: "en",
		GenreIDs: []int{genre.ID},
		Filename: "book.txt",
		Data:     []byte("Chapter One\nIt begins.\n\nChapter Two\nIt ends.\n"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalChapters)
	assert.Equal(t, 2, result.TotalPages)
	assert.Equal(t, 2, book.TotalChapters)
	require.Len(t, book.Genres, 1)
	assert.Equal(t, genre.ID, book.Genres[0].ID)

	// The original upload is removed once ingestion commits.
	_, err = os.Stat(filepath.Join(store.Root(), ownerID, book.ID, "book.txt"))
	assert.True(t, os.IsNotExist(err))

	stored, err := svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &book.ID, OwnerID: &ownerID})
	require.NoError(t, err)
	assert.Equal(t, "The Long Night", stored.Title)
	assert.Equal(t, 2, stored.TotalChapters)
	require.Len(t, stored.Genres, 1)
}

func TestCreateBookUnknownGenre(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := testutils.Database(t)
	svc := NewService(db, fileutils.NewStore(t.TempDir()))

	_, _, err := svc.CreateBook(ctx, CreateBookParams{
		OwnerID:  uuid.NewString(),
		Title:    "No Such Genre",
		Language: "en",
		GenreIDs: []int{999999999},
		Filename: "book.txt",
		Data:     []byte("some text"),
	})
	require.Error(t, err)
	var ec *errcodes.Error
	require.True(t, errors.As(err, &ec))
	assert.Equal(t, "validation_error", ec.Code)
}

func TestCreateBookParseFailureRollsBack(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := testutils.Database(t)
	store := fileutils.NewStore(t.TempDir())
	svc := NewService(db, store)

	ownerID := uuid.NewString()
	_, _, err := svc.CreateBook(ctx, CreateBookParams{
		OwnerID:  ownerID,
		Title:    "Broken Upload",
		Language: "en",
		Filename: "book.epub",
		Data:     []byte("not actually a zip archive"),
	})
	require.Error(t, err)

	// No book row survives the failed ingestion.
	count, err := db.NewSelect().
		Model((*models.Book)(nil)).
		Where("owner_id = ?", ownerID).
		Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	// And the media directory is cleaned up.
	entries, err := os.ReadDir(filepath.Join(store.Root(), ownerID))
	if err == nil {
		assert.Empty(t, entries)
	}
}

func TestDeleteBookRemovesMediaDirectory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := testutils.Database(t)
	store := fileutils.NewStore(t.TempDir())
	svc := NewService(db, store)

	ownerID := uuid.NewString()
	book, _, err := svc.CreateBook(ctx, CreateBookParams{
		OwnerID:   ownerID,
		Title:     "Doomed",
		Language:  "en",
		Filename:  "book.txt",
		Data:      []byte("Chapter One\nShort lived.\n"),
		CoverName: "cover.jpg",
		CoverData: []byte{0xFF, 0xD8, 0xFF},
	})
	require.NoError(t, err)
	require.NotNil(t, book.CoverPath)

	bookDir := filepath.Join(store.Root(), ownerID, book.ID)
	_, err = os.Stat(bookDir)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteBook(ctx, book))

	_, err = svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &book.ID})
	require.Error(t, err)
	_, err = os.Stat(bookDir)
	assert.True(t, os.IsNotExist(err))

	// Chapters and pages cascade with the book row.
	count, err := db.NewSelect().
		Model((*models.Chapter)(nil)).
		Where("book_id = ?", book.ID).
		Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
