// Package testpdf writes small PDF fixtures for tests.
package testpdf

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/jung-kurt/gofpdf"
)

// A4 is the portrait A4 size in points as gofpdf defines it.
var A4 = gofpdf.SizeType{Wd: 595.28, Ht: 841.89}

// Write creates a PDF named name in a fresh temporary directory with n A4
// pages, each labelled with its page number, and returns its path.
func Write(t testing.TB, name string, n int) string {
	t.Helper()
	sizes := make([]gofpdf.SizeType, n)
	for i := range sizes {
		sizes[i] = A4
	}
	return WriteSizes(t, name, sizes...)
}

// WriteSizes is like Write but gives every page its own size.
func WriteSizes(t testing.TB, name string, sizes ...gofpdf.SizeType) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)

	pdf := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "pt", Size: A4})
	for i, size := range sizes {
		// "P" keeps Wd and Ht as given; "L" would swap them.
		pdf.AddPageFormat("P", size)
		pdf.SetFont("Helvetica", "", 24)
		pdf.Text(40, 60, fmt.Sprintf("page %d", i+1))
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		t.Fatalf("writing fixture %s: %v", path, err)
	}
	return path
}
