package ingest

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/chaptermill/chaptermill/pkg/errcodes"
	"github.com/chaptermill/chaptermill/pkg/models"
	"github.com/chaptermill/chaptermill/pkg/testutils"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	format, err := DetectFormat("book.PDF")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, format)

	format, err = DetectFormat("novel.fb2")
	require.NoError(t, err)
	assert.Equal(t, FormatFB2, format)

	_, err = DetectFormat("archive.mobi")
	require.Error(t, err)
	var ec *errcodes.Error
	require.True(t, errors.As(err, &ec))
	assert.Equal(t, "unsupported_file_type", ec.Code)
	assert.Equal(t, 400, ec.HTTPCode)

	_, err = DetectFormat("noextension")
	require.Error(t, err)
}

func TestIngestEmptyFile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := testutils.Database(t)
	book := testutils.Book(t, db)

	_, err := Ingest(ctx, db, book, "book.txt", nil)
	require.Error(t, err)
	var ec *errcodes.Error
	require.True(t, errors.As(err, &ec))
	assert.Equal(t, "empty_upload", ec.Code)
}

func TestIngestTXT(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := testutils.Database(t)
	book := testutils.Book(t, db)

	data := []byte("A few words of front matter.\n\nChapter One\nIt was a dark and stormy night.\nThe rain fell in torrents.\n\nChapter Two\nThe end came quickly.\n")

	result, err := Ingest(ctx, db, book, "story.txt", data)
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalChapters)
	assert.Equal(t, 3, result.TotalPages)
	assert.Equal(t, []string{"Untitled Chapter 1", "Chapter One", "Chapter Two"}, result.ChapterTitles)

	// Cached totals are written back onto the book row.
	stored := &models.Book{ID: book.ID}
	err = db.NewSelect().Model(stored).WherePK().Scan(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.TotalChapters)
	assert.Equal(t, 3, stored.TotalPages)

	var chapters []*models.Chapter
	err = db.NewSelect().
		Model(&chapters).
		Where("book_id = ?", book.ID).
		Order("sort_order ASC").
		Scan(ctx)
	require.NoError(t, err)
	require.Len(t, chapters, 3)
	assert.Equal(t, "Chapter One", chapters[1].Title)
	require.NotNil(t, chapters[1].StartPageNumber)
	assert.Equal(t, 2, *chapters[1].StartPageNumber)
	assert.Equal(t, 2, *chapters[1].EndPageNumber)
	assert.Equal(t, 3, *chapters[2].StartPageNumber)
	assert.Equal(t, 3, *chapters[2].EndPageNumber)
}

func TestIngestTXTCollapsesBlankRuns(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := testutils.Database(t)
	book := testutils.Book(t, db)

	data := []byte("Chapter One\nHello world.\n\n\n\nChapter Two\nGoodbye.")

	result, err := Ingest(ctx, db, book, "short.txt", data)
	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalChapters)
	assert.Equal(t, 2, result.TotalPages)
	assert.Equal(t, []string{"Chapter One", "Chapter Two"}, result.ChapterTitles)

	var chapters []*models.Chapter
	err = db.NewSelect().
		Model(&chapters).
		Where("book_id = ?", book.ID).
		Order("sort_order ASC").
		Scan(ctx)
	require.NoError(t, err)
	require.Len(t, chapters, 2)
	assert.Equal(t, 1, *chapters[0].StartPageNumber)
	assert.Equal(t, 2, *chapters[1].StartPageNumber)

	// The quadruple blank line between chapters is collapsed away by
	// normalization before the body is stored.
	var pages []*models.Page
	err = db.NewSelect().
		Model(&pages).
		Where("chapter_id = ?", chapters[0].ID).
		Order("page_number ASC").
		Scan(ctx)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "Hello world.", pages[0].Content)
}

func TestIngestTXTLatin1Fallback(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := testutils.Database(t)
	book := testutils.Book(t, db)

	// "café" encoded as Latin-1: 0xE9 is invalid as UTF-8.
	data := []byte{'c', 'a', 'f', 0xE9}

	result, err := Ingest(ctx, db, book, "notes.txt", data)
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalChapters)

	chapter := &models.Chapter{}
	err = db.NewSelect().Model(chapter).Where("book_id = ?", book.ID).Scan(ctx)
	require.NoError(t, err)

	page := &models.Page{}
	err = db.NewSelect().Model(page).Where("chapter_id = ?", chapter.ID).Scan(ctx)
	require.NoError(t, err)
	assert.Equal(t, "café", page.Content)
}

func TestIngestRTF(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := testutils.Database(t)
	book := testutils.Book(t, db)

	data := []byte(`{\rtf1\ansi CHAPTER ONE\par Some body text here.\par}`)

	result, err := Ingest(ctx, db, book, "doc.rtf", data)
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalChapters)
	assert.Equal(t, []string{"CHAPTER ONE"}, result.ChapterTitles)
	assert.Equal(t, 1, result.TotalPages)
}

func TestIngestFB2(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := testutils.Database(t)
	book := testutils.Book(t, db)

	data := []byte(`<?xml version="1.0"?>
<FictionBook>
  <body>
    <section>
      <title><p>Chapter One</p></title>
      <p>First paragraph of the story.</p>
      <p>Second paragraph.</p>
    </section>
  </body>
</FictionBook>`)

	result, err := Ingest(ctx, db, book, "kniga.fb2", data)
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalChapters)
	assert.Equal(t, []string{"Chapter One"}, result.ChapterTitles)
}

func TestIngestFB2NoBody(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := testutils.Database(t)
	book := testutils.Book(t, db)

	_, err := Ingest(ctx, db, book, "broken.fb2", []byte("<FictionBook><description/></FictionBook>"))
	require.Error(t, err)
	var ec *errcodes.Error
	require.True(t, errors.As(err, &ec))
	assert.Equal(t, "parse_failed", ec.Code)
	assert.Equal(t, 422, ec.HTTPCode)
}

func TestIngestEPUB(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := testutils.Database(t)
	book := testutils.Book(t, db)

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	writeZipFile := func(name, content string) {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	writeZipFile("OEBPS/content.opf", `<?xml version="1.0"?>
<package xmlns="http://www.idpf.org/2007/opf" version="3.0">
  <manifest>
    <item id="ch1" href="ch1.xhtml" media-type="application/xhtml+xml"/>
    <item id="ch2" href="ch2.xhtml" media-type="application/xhtml+xml"/>
  </manifest>
  <spine>
    <itemref idref="ch1"/>
    <itemref idref="ch2"/>
  </spine>
</package>`)
	writeZipFile("OEBPS/ch1.xhtml", "<html><body><h1>CHAPTER ONE</h1><p>The story begins.</p></body></html>")
	writeZipFile("OEBPS/ch2.xhtml", "<html><body><h1>CHAPTER TWO</h1><p>The story ends.</p></body></html>")
	require.NoError(t, w.Close())

	result, err := Ingest(ctx, db, book, "novel.epub", buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalChapters)
	assert.Equal(t, []string{"CHAPTER ONE", "CHAPTER TWO"}, result.ChapterTitles)
	assert.Equal(t, 2, result.TotalPages)
}

func TestIngestEPUBNotAZip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := testutils.Database(t)
	book := testutils.Book(t, db)

	_, err := Ingest(ctx, db, book, "bad.epub", []byte("definitely not a zip archive"))
	require.Error(t, err)
	var ec *errcodes.Error
	require.True(t, errors.As(err, &ec))
	assert.Equal(t, "parse_failed", ec.Code)
}
