package genres

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers genre routes on the given group.
func RegisterRoutes(g *echo.Group, db *bun.DB) {
	h := &handler{
		genreService: NewService(db),
	}

	g.GET("", h.list)
	g.GET("/:id", h.retrieve)
	g.POST("", h.create)
}
