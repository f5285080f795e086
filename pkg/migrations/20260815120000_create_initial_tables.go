package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

func init() {
	up := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec(`
			CREATE TABLE books (
				id TEXT PRIMARY KEY,
				owner_id TEXT NOT NULL,
				title TEXT NOT NULL,
				language TEXT NOT NULL,
				description TEXT,
				cover_path TEXT,
				total_chapters INTEGER NOT NULL DEFAULT 0,
				total_pages INTEGER NOT NULL DEFAULT 0,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
			)
		`)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = db.Exec(`CREATE INDEX ix_books_owner_id ON books(owner_id)`)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = db.Exec(`
			CREATE TABLE genres (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL UNIQUE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
			)
		`)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = db.Exec(`
			CREATE TABLE book_genres (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				book_id TEXT NOT NULL REFERENCES books(id) ON DELETE CASCADE,
				genre_id INTEGER NOT NULL REFERENCES genres(id) ON DELETE CASCADE,
				UNIQUE (book_id, genre_id)
			)
		`)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = db.Exec(`
			CREATE TABLE chapters (
				id TEXT PRIMARY KEY,
				book_id TEXT NOT NULL REFERENCES books(id) ON DELETE CASCADE,
				sort_order INTEGER NOT NULL,
				title TEXT NOT NULL,
				start_page_number INTEGER,
				end_page_number INTEGER,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
			)
		`)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = db.Exec(`CREATE UNIQUE INDEX ux_chapters_book_sort ON chapters(book_id, sort_order)`)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = db.Exec(`
			CREATE TABLE pages (
				id TEXT PRIMARY KEY,
				chapter_id TEXT NOT NULL REFERENCES chapters(id) ON DELETE CASCADE,
				page_number INTEGER NOT NULL,
				content TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
			)
		`)
		if err != nil {
			return errors.WithStack(err)
		}

		// Page numbers are unique within a book, not just a chapter, but
		// SQLite can't express that without a denormalized book_id. The
		// ingestion writer is the only producer and threads the counter.
		_, err = db.Exec(`CREATE UNIQUE INDEX ux_pages_chapter_number ON pages(chapter_id, page_number)`)
		if err != nil {
			return errors.WithStack(err)
		}

		return nil
	}

	down := func(_ context.Context, db *bun.DB) error {
		for _, table := range []string{"pages", "chapters", "book_genres", "genres", "books"} {
			_, err := db.Exec("DROP TABLE IF EXISTS " + table)
			if err != nil {
				return errors.WithStack(err)
			}
		}
		return nil
	}

	Migrations.MustRegister(up, down)
}
