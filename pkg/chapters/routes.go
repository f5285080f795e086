package chapters

import (
	"github.com/chaptermill/chaptermill/pkg/books"
	"github.com/chaptermill/chaptermill/pkg/fileutils"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers chapter routes on the given group.
func RegisterRoutes(g *echo.Group, db *bun.DB, store *fileutils.Store) {
	h := &handler{
		chapterService: NewService(db),
		bookService:    books.NewService(db, store),
	}

	g.GET("", h.list)
	g.GET("/:id", h.retrieve)
	g.POST("/delete", h.bulkDelete)
}
