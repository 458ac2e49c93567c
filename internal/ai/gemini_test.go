package ai

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"google.golang.org/api/googleapi"
)

type fakeNetError struct{}

func (fakeNetError) Error() string   { return "dial tcp: i/o timeout" }
func (fakeNetError) Timeout() bool   { return true }
func (fakeNetError) Temporary() bool { return true }

func TestIsRetryableError(t *testing.T) {
	g := &GeminiProvider{}

	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"nil error", nil, false},
		{"network timeout", fakeNetError{}, true},
		{"wrapped network timeout", fmt.Errorf("call failed: %w", fakeNetError{}), true},
		{"rate limited", &googleapi.Error{Code: http.StatusTooManyRequests}, true},
		{"server error", &googleapi.Error{Code: http.StatusInternalServerError}, true},
		{"bad gateway", &googleapi.Error{Code: http.StatusBadGateway}, true},
		{"service unavailable", &googleapi.Error{Code: http.StatusServiceUnavailable}, true},
		{"gateway timeout", &googleapi.Error{Code: http.StatusGatewayTimeout}, true},
		{"bad request", &googleapi.Error{Code: http.StatusBadRequest}, false},
		{"unauthorized", &googleapi.Error{Code: http.StatusUnauthorized}, false},
		{"plain error", stderrors.New("malformed response schema"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.isRetryableError(tt.err); got != tt.retryable {
				t.Errorf("isRetryableError(%v) = %v, want %v", tt.err, got, tt.retryable)
			}
		})
	}
}
