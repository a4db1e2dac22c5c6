// Package extract pulls plain text out of resume and job description files.
// Layout is not reconstructed: text comes out in document order.
package extract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat matches every *UnsupportedFormatError.
var ErrUnsupportedFormat = errors.New("unsupported format")

type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Ext == "" {
		return "unsupported format: file has no extension"
	}
	return fmt.Sprintf("unsupported format: %s", e.Ext)
}

func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// Func extracts the text of one file.
type Func func(path string) (string, error)

// ResumeExtensions lists the formats Text understands.
var ResumeExtensions = []string{".pdf", ".docx", ".txt"}

// Text extracts a resume: .pdf, .docx or .txt.
func Text(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pdf":
		return pdfText(path)
	case ".docx":
		return docxText(path)
	case ".txt":
		return plainText(path)
	default:
		return "", &UnsupportedFormatError{Ext: ext}
	}
}

// JobDescription extracts a job description, which may also be a saved
// .html/.htm posting.
func JobDescription(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".html" || ext == ".htm" {
		return htmlText(path)
	}
	return Text(path)
}

func plainText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	// Invalid bytes are dropped.
	return strings.ToValidUTF8(string(data), ""), nil
}
