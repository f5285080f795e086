// Package testgen builds small in-memory e-book files for exercising the
// upload pipeline in tests.
package testgen

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"testing"
)

// Chapter is one heading/body pair to embed in a generated book.
type Chapter struct {
	Title string
	Body  string
}

// TXT renders chapters as plain text with heading lines.
func TXT(chapters ...Chapter) []byte {
	var sb strings.Builder
	for _, ch := range chapters {
		sb.WriteString(ch.Title)
		sb.WriteString("\n")
		sb.WriteString(ch.Body)
		sb.WriteString("\n\n")
	}
	return []byte(sb.String())
}

// FB2 renders chapters as a minimal FictionBook document.
func FB2(chapters ...Chapter) []byte {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	sb.WriteString("<FictionBook>\n<body>\n")
	for _, ch := range chapters {
		sb.WriteString("<section>\n")
		fmt.Fprintf(&sb, "<title><p>%s</p></title>\n", ch.Title)
		for _, line := range strings.Split(ch.Body, "\n") {
			fmt.Fprintf(&sb, "<p>%s</p>\n", line)
		}
		sb.WriteString("</section>\n")
	}
	sb.WriteString("</body>\n</FictionBook>\n")
	return []byte(sb.String())
}

// EPUB builds a one-document-per-chapter EPUB archive.
func EPUB(t *testing.T, chapters ...Chapter) []byte {
	t.Helper()

	var manifest, spine strings.Builder
	for i := range chapters {
		fmt.Fprintf(&manifest, `<item id="ch%d" href="ch%d.xhtml" media-type="application/xhtml+xml"/>`+"\n", i, i)
		fmt.Fprintf(&spine, `<itemref idref="ch%d"/>`+"\n", i)
	}
	opf := fmt.Sprintf(`<?xml version="1.0"?>
<package xmlns="http://www.idpf.org/2007/opf" version="3.0">
  <manifest>
%s  </manifest>
  <spine>
%s  </spine>
</package>`, manifest.String(), spine.String())

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	write := func(name, content string) {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to create zip entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write zip entry %s: %v", name, err)
		}
	}

	write("OEBPS/content.opf", opf)
	for i, ch := range chapters {
		var body strings.Builder
		fmt.Fprintf(&body, "<h1>%s</h1>\n", ch.Title)
		for _, line := range strings.Split(ch.Body, "\n") {
			fmt.Fprintf(&body, "<p>%s</p>\n", line)
		}
		write(fmt.Sprintf("OEBPS/ch%d.xhtml", i), fmt.Sprintf("<html><body>\n%s</body></html>", body.String()))
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}

	return buf.Bytes()
}
