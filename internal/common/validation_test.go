package common

import (
	"strings"
	"testing"
)

func TestValidateOutputFormat(t *testing.T) {
	supported := []string{"json", "text", "markdown"}

	tests := []struct {
		name        string
		format      string
		supported   []string
		expectError bool
	}{
		{"json accepted", "json", supported, false},
		{"text accepted", "text", supported, false},
		{"markdown accepted", "markdown", supported, false},
		{"xml rejected", "xml", supported, true},
		{"case sensitive", "JSON", supported, true},
		{"empty format rejected", "", supported, true},
		{"no restrictions allows anything", "xml", nil, false},
		{"single format list", "text", []string{"json"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format, tt.supported)
			if tt.expectError {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				if !strings.Contains(err.Error(), tt.format) {
					t.Errorf("error should name the rejected format, got %q", err.Error())
				}
				return
			}
			if err != nil {
				t.Errorf("expected no error but got: %v", err)
			}
		})
	}
}

func TestGetSupportedFormats(t *testing.T) {
	formats := []string{"json", "text", "markdown"}
	result := GetSupportedFormats(formats)
	if len(result) != len(formats) {
		t.Fatalf("expected %d formats, got %d", len(formats), len(result))
	}
	for i, want := range formats {
		if result[i] != want {
			t.Errorf("format[%d] = %q, want %q", i, result[i], want)
		}
	}
}
