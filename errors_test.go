package mailgun

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAPIErrorTextIsVerbatimBody(t *testing.T) {
	err := &APIError{StatusCode: http.StatusBadRequest, Body: "Invalid domain"}

	if got := err.Error(); got != "Invalid domain" {
		t.Fatalf("Error() = %q, want %q", got, "Invalid domain")
	}
}

func TestAPIErrorEmptyBodyFallsBackToStatusText(t *testing.T) {
	err := &APIError{StatusCode: http.StatusUnauthorized}

	if got := err.Error(); got != http.StatusText(http.StatusUnauthorized) {
		t.Fatalf("Error() = %q, want status text", got)
	}
}

func TestAPIErrorMatchesWithAs(t *testing.T) {
	wrapped := fmt.Errorf("send newsletter: %w", &APIError{StatusCode: 402, Body: "upgrade required"})

	var apiErr *APIError
	if !errors.As(wrapped, &apiErr) {
		t.Fatalf("expected errors.As to find *APIError in %v", wrapped)
	}
	if apiErr.StatusCode != 402 {
		t.Fatalf("status = %d, want 402", apiErr.StatusCode)
	}
}

func TestInvalidResponseSentinel(t *testing.T) {
	err := fmt.Errorf("%w: unexpected end of JSON input", ErrInvalidResponse)

	if !errors.Is(err, ErrInvalidResponse) {
		t.Fatalf("expected wrapped error to match ErrInvalidResponse")
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Fatalf("invalid response errors must not match *APIError")
	}
}
