package errors

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  bool
		wantCode Code
	}{
		{"valid simple", "book.pdf", false, ""},
		{"valid nested", "out/print/book.pdf", false, ""},
		{"valid absolute", "/tmp/book.pdf", false, ""},
		{"valid uppercase ext", "BOOK.PDF", false, ""},

		{"empty", "", true, ErrCodeInvalidPath},
		{"too long", string(make([]byte, 5000)), true, ErrCodeInvalidPath},
		{"null byte", "foo\x00bar.pdf", true, ErrCodeInvalidPath},
		{"control char", "foo\x01bar.pdf", true, ErrCodeInvalidPath},
		{"newline", "foo\nbar.pdf", true, ErrCodeInvalidPath},
		{"not pdf", "book.txt", true, ErrCodeInvalidFormat},
		{"no extension", "book", true, ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, tt.wantCode) {
				t.Errorf("ValidatePath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateInputFile(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "in.pdf")
	if err := os.WriteFile(existing, []byte("%PDF-1.4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	subdir := filepath.Join(dir, "sub.pdf")
	if err := os.Mkdir(subdir, 0o755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		path     string
		wantCode Code
	}{
		{"existing", existing, ""},
		{"missing", filepath.Join(dir, "missing.pdf"), ErrCodeFileNotFound},
		{"directory", subdir, ErrCodeInvalidPath},
		{"wrong ext", filepath.Join(dir, "in.txt"), ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInputFile(tt.path)
			if got := GetCode(err); got != tt.wantCode {
				t.Errorf("ValidateInputFile(%q) code = %q, want %q (err: %v)", tt.path, got, tt.wantCode, err)
			}
		})
	}
}

func TestValidateOutputFile(t *testing.T) {
	dir := t.TempDir()

	if err := ValidateOutputFile(filepath.Join(dir, "out.pdf")); err != nil {
		t.Errorf("ValidateOutputFile() unexpected error: %v", err)
	}
	if err := ValidateOutputFile(filepath.Join(dir, "missing", "out.pdf")); !Is(err, ErrCodeInvalidPath) {
		t.Errorf("ValidateOutputFile() missing dir error = %v, want %s", err, ErrCodeInvalidPath)
	}
}

func TestValidateNonNegative(t *testing.T) {
	if err := ValidateNonNegative("start blanks", 0); err != nil {
		t.Errorf("ValidateNonNegative(0) = %v, want nil", err)
	}
	if err := ValidateNonNegative("start blanks", -1); !Is(err, ErrCodeInvalidConfig) {
		t.Errorf("ValidateNonNegative(-1) = %v, want %s", err, ErrCodeInvalidConfig)
	}
}
