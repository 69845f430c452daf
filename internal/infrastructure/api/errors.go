// internal/infrastructure/api/errors.go
package api

import (
	"errors"
	"fmt"
	"net/http"
)

// FetchError indicates a network or status failure while retrieving the
// vendor's script asset. Transient; the pipeline may retry it.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("failed to fetch %s: status %d", e.URL, e.Status)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ExtractionError indicates the basic-auth literal is absent from the
// fetched script. The site layout changed; retrying the same run cannot
// succeed.
type ExtractionError struct {
	Pattern string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("no credential matching %q in script content", e.Pattern)
}

// DecodeError indicates a malformed credential payload (invalid base64 or
// missing separator). Non-retryable.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed credential payload: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed credential payload: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// APIError indicates the rate endpoint rejected the request. The status
// code and body are kept for diagnostics.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("rate API returned status %d: %s", e.Status, e.Body)
}

// AuthFailure reports whether the rejection means the credential is stale
// and extraction must be re-run.
func (e *APIError) AuthFailure() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// ParseError indicates the rate response is missing an expected field.
// Upstream shape changed; requires operator attention.
type ParseError struct {
	Field string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unexpected rate response shape: missing %s", e.Field)
}

// IsRetryable reports whether err is a transient condition worth retrying
// within the same run. Auth rejections are not retryable as-is; they need a
// refreshed credential first (see IsAuthFailure).
func IsRetryable(err error) bool {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return true
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return !apiErr.AuthFailure()
	}

	return false
}

// IsAuthFailure reports whether err means the upstream rejected our
// credential.
func IsAuthFailure(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.AuthFailure()
}
