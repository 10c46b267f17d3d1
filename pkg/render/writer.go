package render

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/jung-kurt/gofpdf"
	"github.com/jung-kurt/gofpdf/contrib/gofpdi"

	"github.com/matzehuels/bindery/pkg/errors"
	"github.com/matzehuels/bindery/pkg/imposition"
	"github.com/matzehuels/bindery/pkg/source"
)

// mediaBox is the page box imported from source pages.
const mediaBox = "/MediaBox"

// Writer renders an imposition layout into a PDF, one output page per slot.
type Writer struct {
	Paper   Paper
	Margins Margins
	Logger  *log.Logger

	// Title and Subject are written to the document information dictionary
	// when set.
	Title   string
	Subject string

	// Progress, when set, is called after each output page.
	Progress func(done, total int)
}

// NewWriter returns a Writer for paper with the default margins.
func NewWriter(paper Paper, logger *log.Logger) *Writer {
	if logger == nil {
		logger = log.Default()
	}
	return &Writer{Paper: paper, Margins: DefaultMargins(), Logger: logger}
}

// Stats summarises a render.
type Stats struct {
	Pages  int // output pages written
	Real   int // pages carrying source content
	Blanks int // blank pages
}

// WriteFile renders layout to the file at path. srcPath must be the PDF file
// doc was read from.
func (w *Writer) WriteFile(ctx context.Context, path, srcPath string, doc source.Document, layout *imposition.Layout) (Stats, error) {
	f, err := os.Create(path)
	if err != nil {
		return Stats{}, errors.Wrap(errors.ErrCodeRenderFailed, err, "creating %s", path)
	}
	stats, err := w.Write(ctx, f, srcPath, doc, layout)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = errors.Wrap(errors.ErrCodeRenderFailed, cerr, "closing %s", path)
	}
	if err != nil {
		os.Remove(path)
		return Stats{}, err
	}
	return stats, nil
}

// Write renders layout to out. Slots are consumed strictly in output order:
// blanks become empty pages and real slots import the matching source page,
// scaled and translated by [Place].
func (w *Writer) Write(ctx context.Context, out io.Writer, srcPath string, doc source.Document, layout *imposition.Layout) (stats Stats, err error) {
	if err := w.Margins.Validate(); err != nil {
		return Stats{}, err
	}
	if layout.SourcePages() != doc.PageCount() {
		return Stats{}, errors.New(errors.ErrCodeInternal,
			"layout built for %d pages, document has %d", layout.SourcePages(), doc.PageCount())
	}

	// gofpdi panics on unreadable input.
	defer func() {
		if r := recover(); r != nil {
			stats = Stats{}
			err = errors.New(errors.ErrCodeRenderFailed, "importing pages from %s: %v", srcPath, r)
		}
	}()

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: w.Paper.Width, Ht: w.Paper.Height},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("bindery", true)
	if w.Title != "" {
		pdf.SetTitle(w.Title, true)
	}
	if w.Subject != "" {
		pdf.SetSubject(w.Subject, true)
	}

	imp := gofpdi.NewImporter()
	total := layout.TotalSlots()
	for p := range total {
		if err := ctx.Err(); err != nil {
			return Stats{}, err
		}
		slot := layout.ResolveSlot(p)
		pdf.AddPage()
		stats.Pages++

		idx, ok := slot.Source()
		if !ok {
			stats.Blanks++
			w.Logger.Debug("blank page", "slot", p, "reason", slot.Reason())
		} else {
			if err := w.placePage(pdf, imp, srcPath, doc, idx); err != nil {
				return Stats{}, err
			}
			stats.Real++
			w.Logger.Debug("placed page", "slot", p, "source", idx)
		}

		if pdf.Err() {
			return Stats{}, errors.Wrap(errors.ErrCodeRenderFailed, pdf.Error(), "output page %d", p+1)
		}
		if w.Progress != nil {
			w.Progress(p+1, total)
		}
	}

	if err := pdf.Output(out); err != nil {
		return Stats{}, errors.Wrap(errors.ErrCodeRenderFailed, err, "writing output")
	}
	return stats, nil
}

func (w *Writer) placePage(pdf *gofpdf.Fpdf, imp *gofpdi.Importer, srcPath string, doc source.Document, idx int) error {
	size, err := doc.MediaSize(idx)
	if err != nil {
		return err
	}
	if size.Width <= 0 || size.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidFormat, "source page %d has empty media box %v", doc.PageNumber(idx), size)
	}
	pl := Place(w.Paper, w.Margins, size, idx)
	tpl := imp.ImportPage(pdf, srcPath, doc.PageNumber(idx), mediaBox)
	imp.UseImportedTemplate(pdf, tpl, pl.X, pl.Top(w.Paper), pl.Width, pl.Height)
	return nil
}

// Describe returns a one-line summary of the output settings for logs.
func (w *Writer) Describe() string {
	return fmt.Sprintf("%s, scale %.2f", w.Paper, w.Margins.Scale)
}
