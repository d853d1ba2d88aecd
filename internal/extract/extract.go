// Package extract converts uploaded files into plain text for analysis.
// These are thin adapters over format libraries; the analysis engine only
// ever sees decoded text. Scanned images need OCR and are not supported.
package extract

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// FileType labels the recognized source formats.
const (
	TypePDF      = "pdf"
	TypeText     = "text"
	TypeMarkdown = "markdown"
	TypeCSV      = "csv"
	TypeHTML     = "html"
)

var typeByExtension = map[string]string{
	".pdf":  TypePDF,
	".txt":  TypeText,
	".md":   TypeMarkdown,
	".csv":  TypeCSV,
	".html": TypeHTML,
	".htm":  TypeHTML,
}

// FileType returns the recognized type for filename, or "" if unsupported.
func FileType(filename string) string {
	return typeByExtension[strings.ToLower(filepath.Ext(filename))]
}

// Supported reports whether filename has a recognized extension.
func Supported(filename string) bool {
	return FileType(filename) != ""
}

// SupportedExtensions returns the recognized file extensions.
func SupportedExtensions() []string {
	return []string{".pdf", ".txt", ".md", ".csv", ".html", ".htm"}
}

// Process extracts plain text from data according to the filename's
// extension, returning the text and the detected file type.
func Process(data []byte, filename string) (string, string, error) {
	ft := FileType(filename)
	switch ft {
	case TypePDF:
		text, err := FromPDF(data)
		return text, ft, err
	case TypeCSV:
		text, err := FromCSV(data)
		return text, ft, err
	case TypeHTML:
		text, err := FromHTML(data)
		return text, ft, err
	case TypeText, TypeMarkdown:
		text, err := fromPlainText(data)
		return text, ft, err
	default:
		return "", "", fmt.Errorf("unsupported file format %q (supported: %s)",
			filepath.Ext(filename), strings.Join(SupportedExtensions(), ", "))
	}
}

func fromPlainText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("file is not valid UTF-8 text")
	}
	return string(data), nil
}
