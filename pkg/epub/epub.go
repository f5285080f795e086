// Package epub reads EPUB containers and returns their content documents in
// reading order.
package epub

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ContentDocument is one XHTML content item from the EPUB spine.
type ContentDocument struct {
	Name string
	Data []byte
}

// Package is the OPF package document, cut down to the parts needed to walk
// the manifest and spine.
type Package struct {
	XMLName  xml.Name `xml:"package"`
	Manifest struct {
		Item []struct {
			ID        string `xml:"id,attr"`
			Href      string `xml:"href,attr"`
			MediaType string `xml:"media-type,attr"`
		} `xml:"item"`
	} `xml:"manifest"`
	Spine struct {
		Itemref []struct {
			Idref string `xml:"idref,attr"`
		} `xml:"itemref"`
	} `xml:"spine"`
}

// ExtractContentDocuments opens an EPUB archive and returns its document-type
// content items (application/xhtml+xml or text/html) in spine order. Manifest
// documents missing from the spine are appended after it in manifest order.
func ExtractContentDocuments(data []byte) ([]ContentDocument, error) {
	zipReader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var opfName string
	var pkg *Package
	for _, file := range zipReader.File {
		if filepath.Ext(file.Name) == ".opf" {
			pkg, err = parseOPF(file)
			if err != nil {
				return nil, err
			}
			opfName = file.Name
			break
		}
	}
	if pkg == nil {
		return nil, errors.New("no opf file found")
	}

	// All files are referenced relative to the OPF file's directory.
	basePath := filepath.Dir(opfName)
	if basePath == "." {
		basePath = ""
	} else {
		basePath += "/"
	}

	hrefByID := map[string]string{}
	var manifestOrder []string
	for _, item := range pkg.Manifest.Item {
		if !isDocumentType(item.MediaType) {
			continue
		}
		hrefByID[item.ID] = basePath + item.Href
		manifestOrder = append(manifestOrder, item.ID)
	}

	byName := map[string]*zip.File{}
	for _, file := range zipReader.File {
		byName[file.Name] = file
	}

	seen := map[string]bool{}
	var order []string
	for _, ref := range pkg.Spine.Itemref {
		if href, ok := hrefByID[ref.Idref]; ok && !seen[href] {
			seen[href] = true
			order = append(order, href)
		}
	}
	for _, id := range manifestOrder {
		if href := hrefByID[id]; !seen[href] {
			seen[href] = true
			order = append(order, href)
		}
	}

	var docs []ContentDocument
	for _, href := range order {
		file, ok := byName[href]
		if !ok {
			continue
		}
		r, err := file.Open()
		if err != nil {
			return nil, errors.WithStack(err)
		}
		b, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			return nil, errors.WithStack(err)
		}
		docs = append(docs, ContentDocument{Name: href, Data: b})
	}

	return docs, nil
}

func parseOPF(file *zip.File) (*Package, error) {
	r, err := file.Open()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer r.Close()

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	pkg := &Package{}
	err = xml.Unmarshal(b, pkg)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return pkg, nil
}

func isDocumentType(mediaType string) bool {
	switch strings.ToLower(mediaType) {
	case "application/xhtml+xml", "text/html":
		return true
	}
	return false
}
