package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID            string     `bun:",pk,nullzero" json:"id"`
	OwnerID       string     `bun:",nullzero" json:"owner_id"`
	Title         string     `bun:",nullzero" json:"title"`
	Language      string     `bun:",nullzero" json:"language"`
	Description   *string    `json:"description"`
	CoverPath     *string    `json:"cover_path"`
	TotalChapters int        `json:"total_chapters"`
	TotalPages    int        `json:"total_pages"`
	Genres        []*Genre   `bun:"-" json:"genres,omitempty"`
	Chapters      []*Chapter `bun:"rel:has-many,join:id=book_id" json:"chapters,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
