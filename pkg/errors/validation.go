package errors

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// ValidatePath validates a document path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//   - Extension must be .pdf (case-insensitive)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return New(ErrCodeInvalidFormat, "%s: not a .pdf file", path)
	}

	return nil
}

// ValidateInputFile validates path and checks that it names an existing
// regular file.
func ValidateInputFile(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(ErrCodeFileNotFound, "%s: no such file", path)
		}
		return Wrap(ErrCodeInvalidPath, err, "cannot stat %s", path)
	}
	if info.IsDir() {
		return New(ErrCodeInvalidPath, "%s is a directory", path)
	}
	return nil
}

// ValidateOutputFile validates path and checks that its parent directory
// exists. The file itself may or may not exist; it is overwritten.
func ValidateOutputFile(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return New(ErrCodeInvalidPath, "output directory %s does not exist", dir)
	}
	if !info.IsDir() {
		return New(ErrCodeInvalidPath, "%s is not a directory", dir)
	}
	return nil
}

// ValidateNonNegative rejects negative counts such as blank or skip counts.
func ValidateNonNegative(name string, v int) error {
	if v < 0 {
		return New(ErrCodeInvalidConfig, "%s must not be negative (got %d)", name, v)
	}
	return nil
}
