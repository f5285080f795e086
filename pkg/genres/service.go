package genres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/chaptermill/chaptermill/pkg/errcodes"
	"github.com/chaptermill/chaptermill/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type RetrieveGenreOptions struct {
	ID   *int
	Name *string
}

type ListGenresOptions struct {
	Limit  *int
	Offset *int
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

func (svc *Service) CreateGenre(ctx context.Context, genre *models.Genre) error {
	now := time.Now()
	if genre.CreatedAt.IsZero() {
		genre.CreatedAt = now
	}
	genre.UpdatedAt = genre.CreatedAt

	_, err := svc.db.
		NewInsert().
		Model(genre).
		Returning("*").
		Exec(ctx)
	return errors.WithStack(err)
}

func (svc *Service) RetrieveGenre(ctx context.Context, opts RetrieveGenreOptions) (*models.Genre, error) {
	genre := &models.Genre{}

	q := svc.db.
		NewSelect().
		Model(genre)

	if opts.ID != nil {
		q = q.Where("g.id = ?", *opts.ID)
	}
	if opts.Name != nil {
		// Case-insensitive match
		q = q.Where("LOWER(g.name) = LOWER(?)", *opts.Name)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Genre")
		}
		return nil, errors.WithStack(err)
	}

	return genre, nil
}

// FindOrCreateGenre finds an existing genre by case-insensitive name or
// creates a new one.
func (svc *Service) FindOrCreateGenre(ctx context.Context, idb bun.IDB, name string) (*models.Genre, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("genre name cannot be empty")
	}

	genre := &models.Genre{}
	err := idb.NewSelect().
		Model(genre).
		Where("LOWER(g.name) = LOWER(?)", name).
		Scan(ctx)
	if err == nil {
		return genre, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, errors.WithStack(err)
	}

	now := time.Now()
	genre = &models.Genre{
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err = idb.NewInsert().
		Model(genre).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return genre, nil
}

func (svc *Service) ListGenres(ctx context.Context, opts ListGenresOptions) ([]*models.Genre, error) {
	var genres []*models.Genre

	q := svc.db.
		NewSelect().
		Model(&genres).
		Order("g.name ASC")

	if opts.Limit != nil {
		q = q.Limit(*opts.Limit)
	}
	if opts.Offset != nil {
		q = q.Offset(*opts.Offset)
	}

	err := q.Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return genres, nil
}

// GetBookCount returns the number of books associated with a genre.
func (svc *Service) GetBookCount(ctx context.Context, genreID int) (int, error) {
	count, err := svc.db.
		NewSelect().
		Model((*models.BookGenre)(nil)).
		Where("genre_id = ?", genreID).
		Count(ctx)
	return count, errors.WithStack(err)
}

// GenresForBook loads the genres linked to a book, ordered by name.
func GenresForBook(ctx context.Context, idb bun.IDB, bookID string) ([]*models.Genre, error) {
	var genres []*models.Genre
	err := idb.NewSelect().
		Model(&genres).
		Join("JOIN book_genres AS bg ON bg.genre_id = g.id").
		Where("bg.book_id = ?", bookID).
		Order("g.name ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return genres, nil
}
