package books

import (
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/chaptermill/chaptermill/pkg/errcodes"
	"github.com/chaptermill/chaptermill/pkg/ingest"
	"github.com/chaptermill/chaptermill/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	bookService *Service
}

func (h *handler) upload(c echo.Context) error {
	ctx := c.Request().Context()

	params := UploadBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	fileHeader := params.FormFiles["file"]
	if fileHeader == nil {
		return errcodes.EmptyUpload()
	}
	// Reject unknown formats before reading the file body.
	if _, err := ingest.DetectFormat(fileHeader.Filename); err != nil {
		return err
	}

	data, err := readFormFile(fileHeader)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return errcodes.EmptyUpload()
	}

	createParams := CreateBookParams{
		OwnerID:     params.OwnerID,
		Title:       params.Title,
		Language:    params.Language,
		Description: params.Description,
		GenreIDs:    params.GenreIDs,
		Filename:    fileHeader.Filename,
		Data:        data,
	}

	if coverHeader := params.FormFiles["cover"]; coverHeader != nil {
		coverData, err := readFormFile(coverHeader)
		if err != nil {
			return err
		}
		createParams.CoverName = coverHeader.Filename
		createParams.CoverData = coverData
	}

	book, result, err := h.bookService.CreateBook(ctx, createParams)
	if err != nil {
		return errors.WithStack(err)
	}

	response := struct {
		*models.Book
		ChapterTitles []string `json:"chapter_titles"`
	}{book, result.ChapterTitles}

	return errors.WithStack(c.JSON(http.StatusCreated, response))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	params := RetrieveBookQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID:      &id,
		OwnerID: params.OwnerID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListBooksQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	books, total, err := h.bookService.ListBooksWithTotal(ctx, ListBooksOptions{
		Limit:    &params.Limit,
		Offset:   &params.Offset,
		OwnerID:  params.OwnerID,
		Language: params.Language,
		Title:    params.Title,
		GenreIDs: params.GenreIDs,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	response := map[string]any{
		"books": books,
		"total": total,
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

func (h *handler) cover(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{ID: &id})
	if err != nil {
		return errors.WithStack(err)
	}
	if book.CoverPath == nil {
		return errcodes.NotFound("Cover")
	}

	f, err := h.bookService.store.Open(*book.CoverPath)
	if err != nil {
		return errcodes.NotFound("Cover")
	}
	defer f.Close()

	ctype := mime.TypeByExtension(filepath.Ext(*book.CoverPath))
	if ctype == "" {
		ctype = "application/octet-stream"
	}
	return errors.WithStack(c.Stream(http.StatusOK, ctype, f))
}

func (h *handler) deleteBook(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	params := RetrieveBookQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID:      &id,
		OwnerID: params.OwnerID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.bookService.DeleteBook(ctx, book); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.NoContent(http.StatusNoContent))
}

func readFormFile(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return data, nil
}
