package fileproc

import (
	stderrors "errors"
	"log/slog"
	"strings"
	"testing"

	"hiresight/internal/config"
	"hiresight/internal/errors"
)

func testExtractor() *Extractor {
	return NewExtractor(&config.AppConfig{
		MaxFileSize:       1024,
		AllowedExtensions: []string{".pdf", ".txt"},
	}, errors.NewLogger(slog.LevelError))
}

func TestValidateUpload(t *testing.T) {
	e := testExtractor()

	tests := []struct {
		name     string
		filename string
		size     int64
		wantCode string
	}{
		{"valid txt", "resume.txt", 100, ""},
		{"valid pdf", "resume.pdf", 100, ""},
		{"uppercase extension", "RESUME.TXT", 100, ""},
		{"unsupported extension", "resume.docx", 100, errors.ErrCodeInvalidFormat},
		{"no extension", "resume", 100, errors.ErrCodeInvalidFormat},
		{"too large", "resume.txt", 2048, errors.ErrCodeFileTooLarge},
		{"empty file", "resume.txt", 0, errors.ErrCodeEmptyInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := e.ValidateUpload(tt.filename, tt.size)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}

			var appErr *errors.AppError
			if !stderrors.As(err, &appErr) {
				t.Fatalf("Expected AppError, got %T (%v)", err, err)
			}
			if appErr.Code != tt.wantCode {
				t.Errorf("Expected code %q, got %q", tt.wantCode, appErr.Code)
			}
		})
	}
}

func TestExtractTextPlain(t *testing.T) {
	e := testExtractor()

	text, err := e.ExtractText("resume.txt", []byte("Jordan Doe\nGo engineer\n"))
	if err != nil {
		t.Fatalf("ExtractText failed: %v", err)
	}
	if !strings.Contains(text, "Go engineer") {
		t.Errorf("Extracted text missing content: %q", text)
	}
}

func TestExtractTextBlankContent(t *testing.T) {
	e := testExtractor()

	_, err := e.ExtractText("resume.txt", []byte("   \n\t  "))
	if err == nil {
		t.Fatal("Expected error for blank content")
	}

	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		t.Fatalf("Expected AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeEmptyInput {
		t.Errorf("Expected code %q, got %q", errors.ErrCodeEmptyInput, appErr.Code)
	}
}

func TestExtractTextInvalidPDF(t *testing.T) {
	e := testExtractor()

	_, err := e.ExtractText("resume.pdf", []byte("this is not a pdf"))
	if err == nil {
		t.Fatal("Expected error for malformed PDF bytes")
	}

	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		t.Fatalf("Expected AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeFileNotReadable {
		t.Errorf("Expected code %q, got %q", errors.ErrCodeFileNotReadable, appErr.Code)
	}
}

func TestExtractTextRejectsBeforeParsing(t *testing.T) {
	e := testExtractor()

	_, err := e.ExtractText("resume.exe", []byte("payload"))
	if err == nil {
		t.Fatal("Expected error for disallowed extension")
	}
}

func TestExtractTextRejectsInvalidUTF8(t *testing.T) {
	e := testExtractor()

	_, err := e.ExtractText("resume.txt", []byte{0xff, 0xfe, 0x41, 0x80})
	if err == nil {
		t.Fatal("Expected error for invalid UTF-8 content")
	}

	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		t.Fatalf("Expected AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeInvalidFormat {
		t.Errorf("Expected code %q, got %q", errors.ErrCodeInvalidFormat, appErr.Code)
	}
}
