// Package source provides read access to the pages of a source document.
//
// The imposition core only needs a page count; the renderer additionally
// needs each page's media size and its page number in the underlying file.
// [Document] captures exactly that, [OpenPDF] implements it on top of pdfcpu
// and [Trim] drops pages from either end.
package source

import (
	"fmt"

	"github.com/matzehuels/bindery/pkg/errors"
)

// Size is a page size in PDF points (1/72 inch).
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// String formats the size as "595x842".
func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}

// Document is a read-only sequence of pages.
type Document interface {
	// PageCount returns the number of pages.
	PageCount() int
	// MediaSize returns the physical size of page i (0-based).
	MediaSize(i int) (Size, error)
	// PageNumber maps page i (0-based) to its 1-based page number in the
	// underlying file.
	PageNumber(i int) int
}

// Trim returns a view of doc without its first skipStart and last skipEnd
// pages. It fails with [errors.ErrCodeSourceBounds] when either count is
// negative or no page would remain.
func Trim(doc Document, skipStart, skipEnd int) (Document, error) {
	n := doc.PageCount()
	if skipStart < 0 || skipEnd < 0 {
		return nil, errors.New(errors.ErrCodeSourceBounds,
			"skip counts must not be negative (start %d, end %d)", skipStart, skipEnd)
	}
	if skipStart+skipEnd >= n {
		return nil, errors.New(errors.ErrCodeSourceBounds,
			"skipping %d+%d pages leaves nothing of %d", skipStart, skipEnd, n)
	}
	if skipStart == 0 && skipEnd == 0 {
		return doc, nil
	}
	return &trimmed{doc: doc, offset: skipStart, count: n - skipStart - skipEnd}, nil
}

type trimmed struct {
	doc    Document
	offset int
	count  int
}

func (t *trimmed) PageCount() int {
	return t.count
}

func (t *trimmed) MediaSize(i int) (Size, error) {
	if i < 0 || i >= t.count {
		return Size{}, outOfRange(i, t.count)
	}
	return t.doc.MediaSize(t.offset + i)
}

func (t *trimmed) PageNumber(i int) int {
	return t.doc.PageNumber(t.offset + i)
}

// Virtual returns a document of n pages that all have the given size. It
// backs dry runs where only the page count is known.
func Virtual(n int, size Size) Document {
	return virtual{n: n, size: size}
}

type virtual struct {
	n    int
	size Size
}

func (v virtual) PageCount() int { return v.n }

func (v virtual) MediaSize(i int) (Size, error) {
	if i < 0 || i >= v.n {
		return Size{}, outOfRange(i, v.n)
	}
	return v.size, nil
}

func (v virtual) PageNumber(i int) int { return i + 1 }

func outOfRange(i, n int) error {
	return errors.New(errors.ErrCodeInvalidInput, "page index %d out of range [0, %d)", i, n)
}
