package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Genre struct {
	bun.BaseModel `bun:"table:genres,alias:g"`

	ID        int       `bun:",pk,autoincrement" json:"id"`
	Name      string    `bun:",nullzero" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BookGenre struct {
	bun.BaseModel `bun:"table:book_genres,alias:bg"`

	ID      int    `bun:",pk,autoincrement" json:"id"`
	BookID  string `bun:",nullzero" json:"book_id"`
	Book    *Book  `bun:"rel:belongs-to,join:book_id=id" json:"-"`
	GenreID int    `bun:",nullzero" json:"genre_id"`
	Genre   *Genre `bun:"rel:belongs-to,join:genre_id=id" json:"genre,omitempty"`
}
