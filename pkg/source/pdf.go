package source

import (
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/matzehuels/bindery/pkg/errors"
)

func init() {
	// Keep pdfcpu from creating a configuration directory under the
	// user's home.
	api.DisableConfigDir()
}

// PDF is a source document read from a PDF file. Page sizes are read once
// when the file is opened; the file is not held open afterwards.
type PDF struct {
	path  string
	sizes []Size
}

// OpenPDF reads the page count and media boxes of the PDF file at path.
func OpenPDF(path string) (*PDF, error) {
	if err := errors.ValidateInputFile(path); err != nil {
		return nil, err
	}
	dims, err := api.PageDimsFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "reading %s", path)
	}
	if len(dims) == 0 {
		return nil, errors.New(errors.ErrCodeSourceBounds, "%s has no pages", path)
	}
	sizes := make([]Size, len(dims))
	for i, d := range dims {
		sizes[i] = Size{Width: d.Width, Height: d.Height}
	}
	return &PDF{path: path, sizes: sizes}, nil
}

// Path returns the file the document was read from.
func (p *PDF) Path() string {
	return p.path
}

// PageCount returns the number of pages in the file.
func (p *PDF) PageCount() int {
	return len(p.sizes)
}

// MediaSize returns the media box size of page i.
func (p *PDF) MediaSize(i int) (Size, error) {
	if i < 0 || i >= len(p.sizes) {
		return Size{}, outOfRange(i, len(p.sizes))
	}
	return p.sizes[i], nil
}

// PageNumber returns i+1.
func (p *PDF) PageNumber(i int) int {
	return i + 1
}
