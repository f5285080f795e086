package chapters

import (
	"net/http"

	"github.com/chaptermill/chaptermill/pkg/books"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	chapterService *Service
	bookService    *books.Service
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	chapter, err := h.chapterService.RetrieveChapter(ctx, RetrieveChapterOptions{
		ID:           &id,
		IncludePages: true,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, chapter))
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListChaptersQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	chapters, err := h.chapterService.ListChapters(ctx, ListChaptersOptions{
		BookID: &params.BookID,
		Limit:  &params.Limit,
		Offset: &params.Offset,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	response := map[string]any{
		"chapters": chapters,
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

func (h *handler) bulkDelete(c echo.Context) error {
	ctx := c.Request().Context()

	params := DeleteChaptersPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	// Ownership check before anything is deleted.
	book, err := h.bookService.RetrieveBook(ctx, books.RetrieveBookOptions{
		ID:      &params.BookID,
		OwnerID: &params.OwnerID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.chapterService.DeleteChapters(ctx, book, params.ChapterIDs); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}
