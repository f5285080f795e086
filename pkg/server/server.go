package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/chaptermill/chaptermill/pkg/binder"
	"github.com/chaptermill/chaptermill/pkg/books"
	"github.com/chaptermill/chaptermill/pkg/chapters"
	"github.com/chaptermill/chaptermill/pkg/config"
	"github.com/chaptermill/chaptermill/pkg/errcodes"
	"github.com/chaptermill/chaptermill/pkg/fileutils"
	"github.com/chaptermill/chaptermill/pkg/genres"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
	"github.com/uptrace/bun"
)

func New(cfg *config.Config, db *bun.DB) (*http.Server, error) {
	e := echo.New()

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	e.Use(middleware.CORS())

	health.RegisterRoutes(e)

	store := fileutils.NewStore(cfg.MediaRoot)

	books.RegisterRoutes(e.Group("/books"), db, store)
	chapters.RegisterRoutes(e.Group("/chapters"), db, store)
	genres.RegisterRoutes(e.Group("/genres"), db)

	echo.NotFoundHandler = notFoundHandler
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
