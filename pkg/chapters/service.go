package chapters

import (
	"context"
	"database/sql"
	"time"

	"github.com/chaptermill/chaptermill/pkg/errcodes"
	"github.com/chaptermill/chaptermill/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type RetrieveChapterOptions struct {
	ID           *string
	BookID       *string
	IncludePages bool
}

type ListChaptersOptions struct {
	BookID *string
	Limit  *int
	Offset *int
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

func (svc *Service) RetrieveChapter(ctx context.Context, opts RetrieveChapterOptions) (*models.Chapter, error) {
	chapter := &models.Chapter{}

	q := svc.db.
		NewSelect().
		Model(chapter)

	if opts.ID != nil {
		q = q.Where("ch.id = ?", *opts.ID)
	}
	if opts.BookID != nil {
		q = q.Where("ch.book_id = ?", *opts.BookID)
	}
	if opts.IncludePages {
		q = q.Relation("Pages", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("p.page_number ASC")
		})
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Chapter")
		}
		return nil, errors.WithStack(err)
	}

	return chapter, nil
}

func (svc *Service) ListChapters(ctx context.Context, opts ListChaptersOptions) ([]*models.Chapter, error) {
	var chapters []*models.Chapter

	q := svc.db.
		NewSelect().
		Model(&chapters).
		Order("ch.sort_order ASC")

	if opts.BookID != nil {
		q = q.Where("ch.book_id = ?", *opts.BookID)
	}
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

	return chapters, nil
}

// DeleteChapters removes the given chapters from a book and renumbers what
// remains: sort orders close ranks and page numbers are reassigned
// contiguously from 1, the same threading rule ingestion uses. The book's
// cached totals are re-derived from the surviving rows.
func (svc *Service) DeleteChapters(ctx context.Context, book *models.Book, chapterIDs []string) error {
	if len(chapterIDs) == 0 {
		return nil
	}

	return svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		// Take the write lock on the book row up front so concurrent
		// deletions or uploads for the same book serialize instead of
		// failing halfway through renumbering.
		_, err := tx.NewUpdate().
			Model((*models.Book)(nil)).
			Set("updated_at = updated_at").
			Where("id = ?", book.ID).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		count, err := tx.NewSelect().
			Model((*models.Chapter)(nil)).
			Where("book_id = ?", book.ID).
			Where("id IN (?)", bun.In(chapterIDs)).
			Count(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if count != len(chapterIDs) {
			return errcodes.NotFound("Chapter")
		}

		// Pages cascade with their chapters.
		_, err = tx.NewDelete().
			Model((*models.Chapter)(nil)).
			Where("book_id = ?", book.ID).
			Where("id IN (?)", bun.In(chapterIDs)).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		totalPages, remaining, err := renumberChapters(ctx, tx, book.ID)
		if err != nil {
			return err
		}

		now := time.Now()
		book.TotalChapters = remaining
		book.TotalPages = totalPages
		book.UpdatedAt = now
		_, err = tx.NewUpdate().
			Model(book).
			Column("total_chapters", "total_pages", "updated_at").
			WherePK().
			Exec(ctx)
		return errors.WithStack(err)
	})
}

// renumberChapters reassigns sort orders and page numbers for every chapter
// left in the book and returns the new page total and chapter count.
func renumberChapters(ctx context.Context, tx bun.Tx, bookID string) (int, int, error) {
	var chapters []*models.Chapter
	err := tx.NewSelect().
		Model(&chapters).
		Where("book_id = ?", bookID).
		Order("sort_order ASC").
		Scan(ctx)
	if err != nil {
		return 0, 0, errors.WithStack(err)
	}

	next := 1
	for i, chapter := range chapters {
		pageCount, err := tx.NewSelect().
			Model((*models.Page)(nil)).
			Where("chapter_id = ?", chapter.ID).
			Count(ctx)
		if err != nil {
			return 0, 0, errors.WithStack(err)
		}

		chapter.SortOrder = i
		if pageCount == 0 {
			chapter.StartPageNumber = nil
			chapter.EndPageNumber = nil
		} else {
			oldStart := 1
			if chapter.StartPageNumber != nil {
				oldStart = *chapter.StartPageNumber
			}
			start := next
			end := next + pageCount - 1
			chapter.StartPageNumber = &start
			chapter.EndPageNumber = &end

			if oldStart != start {
				if err := shiftPageNumbers(ctx, tx, chapter.ID, start-oldStart); err != nil {
					return 0, 0, err
				}
			}
			next = end + 1
		}

		chapter.UpdatedAt = time.Now()
		_, err = tx.NewUpdate().
			Model(chapter).
			Column("sort_order", "start_page_number", "end_page_number", "updated_at").
			WherePK().
			Exec(ctx)
		if err != nil {
			return 0, 0, errors.WithStack(err)
		}
	}

	return next - 1, len(chapters), nil
}

// shiftPageNumbers moves every page of a chapter by delta. The numbers are
// negated first so the unique (chapter_id, page_number) index never sees a
// transient collision mid-statement.
func shiftPageNumbers(ctx context.Context, tx bun.Tx, chapterID string, delta int) error {
	_, err := tx.NewUpdate().
		Model((*models.Page)(nil)).
		Set("page_number = -page_number").
		Where("chapter_id = ?", chapterID).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	_, err = tx.NewUpdate().
		Model((*models.Page)(nil)).
		Set("page_number = -page_number + ?", delta).
		Where("chapter_id = ?", chapterID).
		Where("page_number < 0").
		Exec(ctx)
	return errors.WithStack(err)
}
