package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/bindery/internal/testpdf"
	"github.com/matzehuels/bindery/pkg/errors"
	"github.com/matzehuels/bindery/pkg/imposition"
	"github.com/matzehuels/bindery/pkg/source"
)

var a4 = source.Size{Width: 595, Height: 842}

func TestOpenDocument(t *testing.T) {
	t.Run("page count", func(t *testing.T) {
		doc, err := openDocument("120")
		if err != nil {
			t.Fatalf("openDocument() error = %v", err)
		}
		if doc.PageCount() != 120 {
			t.Errorf("PageCount() = %d, want 120", doc.PageCount())
		}
	})

	t.Run("pdf", func(t *testing.T) {
		doc, err := openDocument(testpdf.Write(t, "in.pdf", 3))
		if err != nil {
			t.Fatalf("openDocument() error = %v", err)
		}
		if doc.PageCount() != 3 {
			t.Errorf("PageCount() = %d, want 3", doc.PageCount())
		}
	})

	tests := []struct {
		arg  string
		code errors.Code
	}{
		{"0", errors.ErrCodeSourceBounds},
		{"-3", errors.ErrCodeSourceBounds},
		{"book.txt", errors.ErrCodeInvalidFormat},
		{filepath.Join("missing", "book.pdf"), errors.ErrCodeFileNotFound},
	}
	for _, tt := range tests {
		if _, err := openDocument(tt.arg); !errors.Is(err, tt.code) {
			t.Errorf("openDocument(%q) error = %v, want %s", tt.arg, err, tt.code)
		}
	}
}

func TestFormatSizes(t *testing.T) {
	if got := formatSizes([]int{8, 12, 16}); got != "8 + 12 + 16" {
		t.Errorf("formatSizes() = %q", got)
	}
}

func TestSignatureTable(t *testing.T) {
	layout, err := imposition.NewLayout([]int{8, 12}, imposition.Padding{StartBlanks: 4, EndBlanks: 3}, 10)
	if err != nil {
		t.Fatal(err)
	}
	out := signatureTable(source.Virtual(10, a4), layout)

	// Signature 1 holds the start blanks and pages 1-4, signature 2 the rest.
	for _, want := range []string{"Content", "1–8", "9–20", "1–4", "5–10"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if got := strings.Count(out, "\n"); got < 4 {
		t.Errorf("table has %d lines, want header and two rows:\n%s", got, out)
	}
}

func TestSignatureTableAllBlank(t *testing.T) {
	layout, err := imposition.NewLayout([]int{4, 4}, imposition.Padding{StartBlanks: 4}, 2)
	if err != nil {
		t.Fatal(err)
	}
	out := signatureTable(source.Virtual(2, a4), layout)
	if !strings.Contains(out, "—") {
		t.Errorf("blank signature should show no content:\n%s", out)
	}
}

func TestSheetTable(t *testing.T) {
	doc, err := source.Trim(source.Virtual(3, a4), 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	layout, err := imposition.NewLayout([]int{4}, imposition.Padding{}, 2)
	if err != nil {
		t.Fatal(err)
	}

	out := sheetTable(doc, layout)
	// Page numbers refer to the untrimmed file.
	for _, want := range []string{"Front", "· | 2", "3 | ·"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestSlotLabel(t *testing.T) {
	doc := source.Virtual(5, a4)
	if got := slotLabel(doc, imposition.Real(4)); got != "5" {
		t.Errorf("slotLabel(Real(4)) = %q, want 5", got)
	}
	if got := slotLabel(doc, imposition.Blank(imposition.BlankEnd)); got != iconBlank {
		t.Errorf("slotLabel(Blank) = %q, want %q", got, iconBlank)
	}
}
