package fileproc

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"hiresight/internal/config"
	"hiresight/internal/errors"
)

// Extractor turns uploaded resume files into plain text. Supported formats
// are PDF and plain text; uploads are validated against the configured size
// cap and extension allowlist before any parsing happens.
type Extractor struct {
	maxFileSize       int64
	allowedExtensions []string
	logger            *errors.Logger
}

func NewExtractor(cfg *config.AppConfig, logger *errors.Logger) *Extractor {
	return &Extractor{
		maxFileSize:       cfg.MaxFileSize,
		allowedExtensions: cfg.AllowedExtensions,
		logger:            logger,
	}
}

// ValidateUpload rejects files that must not reach the pipeline: wrong
// extension, oversized, or empty.
func (e *Extractor) ValidateUpload(filename string, size int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !e.extensionAllowed(ext) {
		return errors.NewValidationError(errors.ErrCodeInvalidFormat,
			fmt.Sprintf("Unsupported file type %q, allowed: %s", ext, strings.Join(e.allowedExtensions, ", ")), nil)
	}
	if size > e.maxFileSize {
		return errors.NewValidationError(errors.ErrCodeFileTooLarge,
			fmt.Sprintf("File exceeds the %d byte limit", e.maxFileSize), nil)
	}
	if size == 0 {
		return errors.NewValidationError(errors.ErrCodeEmptyInput,
			"Uploaded file is empty", nil)
	}
	return nil
}

// ExtractText converts the uploaded bytes into resume text based on the
// filename's extension. The result is guaranteed non-blank.
func (e *Extractor) ExtractText(filename string, data []byte) (string, error) {
	if err := e.ValidateUpload(filename, int64(len(data))); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	var text string
	var err error
	switch ext {
	case ".pdf":
		text, err = extractPDFText(data)
		if err != nil {
			return "", errors.NewExtractionError(errors.ErrCodeFileNotReadable,
				"Failed to extract text from PDF", err)
		}
	case ".txt":
		if !utf8.Valid(data) {
			return "", errors.NewValidationError(errors.ErrCodeInvalidFormat,
				"Text file is not valid UTF-8", nil)
		}
		text = string(data)
	default:
		return "", errors.NewValidationError(errors.ErrCodeInvalidFormat,
			fmt.Sprintf("Unsupported file type %q", ext), nil)
	}

	if strings.TrimSpace(text) == "" {
		return "", errors.NewValidationError(errors.ErrCodeEmptyInput,
			"No text content found in file", nil)
	}

	e.logger.Debug("Extracted resume text",
		"filename", filename,
		"bytes", len(data),
		"text_length", len(text))

	return text, nil
}

func (e *Extractor) extensionAllowed(ext string) bool {
	for _, allowed := range e.allowedExtensions {
		if ext == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var textBuilder strings.Builder
	totalPages := reader.NumPage()

	for pageIndex := 1; pageIndex <= totalPages; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep what the rest yields
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	text := textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text content found in PDF")
	}

	return text, nil
}
