package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Chapter struct {
	bun.BaseModel `bun:"table:chapters,alias:ch"`

	ID        string `bun:",pk,nullzero" json:"id"`
	BookID    string `bun:",nullzero" json:"book_id"`
	SortOrder int    `bun:",notnull" json:"sort_order"`
	Title     string `bun:",notnull" json:"title"`

	// Both are nil for a chapter that produced zero pages; otherwise
	// 1-based, inclusive, and contiguous with the neighboring chapters.
	StartPageNumber *int `json:"start_page_number"`
	EndPageNumber   *int `json:"end_page_number"`

	Book      *Book     `bun:"rel:belongs-to,join:book_id=id" json:"-"`
	Pages     []*Page   `bun:"rel:has-many,join:id=chapter_id" json:"pages,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
