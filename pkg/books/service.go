package books

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/chaptermill/chaptermill/pkg/errcodes"
	"github.com/chaptermill/chaptermill/pkg/fileutils"
	"github.com/chaptermill/chaptermill/pkg/genres"
	"github.com/chaptermill/chaptermill/pkg/ingest"
	"github.com/chaptermill/chaptermill/pkg/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/uptrace/bun"
)

type RetrieveBookOptions struct {
	ID      *string
	OwnerID *string
}

type ListBooksOptions struct {
	Limit    *int
	Offset   *int
	OwnerID  *string
	Language *string
	Title    *string
	GenreIDs []int

	includeTotal bool
}

type UpdateBookOptions struct {
	Columns []string
}

// CreateBookParams carries everything needed to create a book from an
// uploaded file.
type CreateBookParams struct {
	OwnerID     string
	Title       string
	Language    string
	Description *string
	GenreIDs    []int
	Filename    string
	Data        []byte
	CoverName   string
	CoverData   []byte
}

type Service struct {
	db    *bun.DB
	store *fileutils.Store
}

func NewService(db *bun.DB, store *fileutils.Store) *Service {
	return &Service{db, store}
}

// CreateBook creates the book row, links its genres, and ingests the
// uploaded file into chapters and pages, all in one transaction. The
// original file is kept on disk only until ingestion has committed; its
// removal afterwards is best-effort.
func (svc *Service) CreateBook(ctx context.Context, params CreateBookParams) (*models.Book, *ingest.Result, error) {
	// Validate genre ids before touching disk or the database.
	genreRows := make([]*models.Genre, 0, len(params.GenreIDs))
	for _, id := range params.GenreIDs {
		genre := &models.Genre{}
		err := svc.db.NewSelect().Model(genre).Where("g.id = ?", id).Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, nil, errcodes.ValidationError(fmt.Sprintf("genre %d does not exist", id))
			}
			return nil, nil, errors.WithStack(err)
		}
		genreRows = append(genreRows, genre)
	}

	now := time.Now()
	book := &models.Book{
		ID:          uuid.NewString(),
		OwnerID:     params.OwnerID,
		Title:       params.Title,
		Language:    params.Language,
		Description: params.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	uploadPath, err := svc.store.SaveUpload(params.OwnerID, book.ID, params.Filename, bytes.NewReader(params.Data))
	if err != nil {
		return nil, nil, err
	}
	if len(params.CoverData) > 0 {
		coverPath, err := svc.store.SaveCover(params.OwnerID, book.ID, params.CoverName, bytes.NewReader(params.CoverData))
		if err != nil {
			svc.cleanupBookDir(ctx, params.OwnerID, book.ID)
			return nil, nil, err
		}
		book.CoverPath = &coverPath
	}

	var result *ingest.Result
	err = svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.
			NewInsert().
			Model(book).
			Returning("*").
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		if len(genreRows) > 0 {
			links := make([]*models.BookGenre, 0, len(genreRows))
			for _, genre := range genreRows {
				links = append(links, &models.BookGenre{BookID: book.ID, GenreID: genre.ID})
			}
			_, err = tx.NewInsert().Model(&links).Exec(ctx)
			if err != nil {
				return errors.WithStack(err)
			}
		}

		result, err = ingest.Ingest(ctx, tx, book, params.Filename, params.Data)
		return err
	})
	if err != nil {
		svc.cleanupBookDir(ctx, params.OwnerID, book.ID)
		return nil, nil, err
	}

	// The original upload has served its purpose once chapters are stored.
	if delErr := svc.store.Delete(uploadPath); delErr != nil {
		logger.FromContext(ctx).Warn("failed to remove original upload", logger.Data{"path": uploadPath, "error": delErr.Error()})
	}

	book.Genres = genreRows
	return book, result, nil
}

func (svc *Service) cleanupBookDir(ctx context.Context, ownerID, bookID string) {
	if err := svc.store.DeleteBookDir(ownerID, bookID); err != nil {
		logger.FromContext(ctx).Warn("failed to clean up book media directory", logger.Data{"book_id": bookID, "error": err.Error()})
	}
}

func (svc *Service) RetrieveBook(ctx context.Context, opts RetrieveBookOptions) (*models.Book, error) {
	book := &models.Book{}

	q := svc.db.
		NewSelect().
		Model(book)

	if opts.ID != nil {
		q = q.Where("b.id = ?", *opts.ID)
	}
	if opts.OwnerID != nil {
		q = q.Where("b.owner_id = ?", *opts.OwnerID)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Book")
		}
		return nil, errors.WithStack(err)
	}

	book.Genres, err = genres.GenresForBook(ctx, svc.db, book.ID)
	if err != nil {
		return nil, err
	}

	return book, nil
}

func (svc *Service) ListBooks(ctx context.Context, opts ListBooksOptions) ([]*models.Book, error) {
	b, _, err := svc.listBooksWithTotal(ctx, opts)
	return b, err
}

func (svc *Service) ListBooksWithTotal(ctx context.Context, opts ListBooksOptions) ([]*models.Book, int, error) {
	opts.includeTotal = true
	return svc.listBooksWithTotal(ctx, opts)
}

func (svc *Service) listBooksWithTotal(ctx context.Context, opts ListBooksOptions) ([]*models.Book, int, error) {
	var books []*models.Book
	var total int
	var err error

	q := svc.db.
		NewSelect().
		Model(&books).
		Order("b.created_at DESC")

	if opts.OwnerID != nil {
		q = q.Where("b.owner_id = ?", *opts.OwnerID)
	}
	if opts.Language != nil {
		q = q.Where("b.language = ?", *opts.Language)
	}
	if opts.Title != nil && *opts.Title != "" {
		q = q.Where("b.title LIKE ?", "%"+*opts.Title+"%")
	}
	// Books must carry every requested genre, not just one of them.
	if len(opts.GenreIDs) > 0 {
		q = q.Where(
			"b.id IN (SELECT book_id FROM book_genres WHERE genre_id IN (?) GROUP BY book_id HAVING COUNT(DISTINCT genre_id) = ?)",
			bun.In(opts.GenreIDs), len(opts.GenreIDs),
		)
	}
	if opts.Limit != nil {
		q = q.Limit(*opts.Limit)
	}
	if opts.Offset != nil {
		q = q.Offset(*opts.Offset)
	}

	if opts.includeTotal {
		total, err = q.ScanAndCount(ctx)
	} else {
		err = q.Scan(ctx)
	}
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	for _, book := range books {
		book.Genres, err = genres.GenresForBook(ctx, svc.db, book.ID)
		if err != nil {
			return nil, 0, err
		}
	}

	return books, total, nil
}

func (svc *Service) UpdateBook(ctx context.Context, book *models.Book, opts UpdateBookOptions) error {
	if len(opts.Columns) == 0 {
		return nil
	}

	book.UpdatedAt = time.Now()
	columns := append(opts.Columns, "updated_at")

	_, err := svc.db.
		NewUpdate().
		Model(book).
		Column(columns...).
		WherePK().
		Exec(ctx)
	return errors.WithStack(err)
}

// DeleteBook removes the book row (chapters and pages cascade) and then its
// media directory. The directory removal is best-effort.
func (svc *Service) DeleteBook(ctx context.Context, book *models.Book) error {
	_, err := svc.db.
		NewDelete().
		Model(book).
		WherePK().
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	svc.cleanupBookDir(ctx, book.OwnerID, book.ID)
	return nil
}
