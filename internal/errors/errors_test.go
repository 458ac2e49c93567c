package errors

import (
	"fmt"
	"testing"
)

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "ai service failure is transient",
			err:  NewAIError(ErrCodeAIServiceFailed, "model call failed", nil),
			want: true,
		},
		{
			name: "ai timeout is transient",
			err:  NewAIError(ErrCodeAITimeout, "model call timed out", nil),
			want: true,
		},
		{
			name: "network error is transient",
			err:  NewNetworkError(ErrCodeNetworkTimeout, "connection timed out", nil),
			want: true,
		},
		{
			name: "parse failure is not transient",
			err:  NewExtractionError(ErrCodeAIResponseParse, "invalid json in response", nil),
			want: false,
		},
		{
			name: "validation error is not transient",
			err:  NewValidationError(ErrCodeInvalidRequest, "empty job description", nil),
			want: false,
		},
		{
			name: "plain error is not transient",
			err:  fmt.Errorf("plain error"),
			want: false,
		},
		{
			name: "wrapped transient error is still transient",
			err:  fmt.Errorf("skills analysis error: %w", NewAIError(ErrCodeAIServiceFailed, "model call failed", nil)),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTransient(tt.err); got != tt.want {
				t.Errorf("IsTransient() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsStructural(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "parse failure is structural",
			err:  NewExtractionError(ErrCodeAIResponseParse, "response did not match schema", nil),
			want: true,
		},
		{
			name: "ai service failure is not structural",
			err:  NewAIError(ErrCodeAIServiceFailed, "model call failed", nil),
			want: false,
		},
		{
			name: "wrapped parse failure is still structural",
			err:  fmt.Errorf("resume extraction error: %w", NewExtractionError(ErrCodeAIResponseParse, "response did not match schema", nil)),
			want: true,
		},
		{
			name: "plain error is not structural",
			err:  fmt.Errorf("plain error"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsStructural(tt.err); got != tt.want {
				t.Errorf("IsStructural() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppErrorTransientAndStructuralAreDisjoint(t *testing.T) {
	codes := []string{
		ErrCodeAIServiceFailed,
		ErrCodeAIResponseParse,
		ErrCodeAITimeout,
		ErrCodeStageFailed,
		ErrCodeProjection,
	}
	for _, code := range codes {
		err := NewAIError(code, "x", nil)
		if IsTransient(err) && IsStructural(err) {
			t.Errorf("code %s classified as both transient and structural", code)
		}
	}
}
