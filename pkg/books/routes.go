package books

import (
	"github.com/chaptermill/chaptermill/pkg/fileutils"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers book routes on the given group.
func RegisterRoutes(g *echo.Group, db *bun.DB, store *fileutils.Store) {
	h := &handler{
		bookService: NewService(db, store),
	}

	g.GET("", h.list)
	g.POST("", h.upload)
	g.GET("/:id", h.retrieve)
	g.GET("/:id/cover", h.cover)
	g.DELETE("/:id", h.deleteBook)
}
