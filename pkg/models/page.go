package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Page struct {
	bun.BaseModel `bun:"table:pages,alias:p"`

	ID         string    `bun:",pk,nullzero" json:"id"`
	ChapterID  string    `bun:",nullzero" json:"chapter_id"`
	PageNumber int       `bun:",notnull" json:"page_number"`
	Content    string    `json:"content"`
	Chapter    *Chapter  `bun:"rel:belongs-to,join:chapter_id=id" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
