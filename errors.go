package mailgun

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidAddress is returned when a value cannot be parsed as an
	// email address.
	ErrInvalidAddress = errors.New("mailgun: invalid email address")

	// ErrInvalidResponse is returned when the API accepts a send but the
	// response body cannot be decoded into a SendResponse.
	ErrInvalidResponse = errors.New("mailgun: invalid response body")
)

// APIError is returned when the API answers a send with a non-2xx status.
// The response body is kept verbatim so the provider's own diagnostic text
// reaches the caller unchanged.
type APIError struct {
	StatusCode int
	Body       string
}

// Error returns the raw response body, falling back to the standard status
// text when the body was empty.
func (e *APIError) Error() string {
	if e.Body == "" {
		return http.StatusText(e.StatusCode)
	}
	return e.Body
}
