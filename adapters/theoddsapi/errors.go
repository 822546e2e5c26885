package theoddsapi

import (
	"errors"
	"fmt"
)

// ErrMissingCredential is returned before any network call when the client
// was constructed without an API key. Fatal to the request, not the process.
var ErrMissingCredential = errors.New("theoddsapi: missing API credential")

// UpstreamError is a non-2xx provider response. Body is truncated to
// maxErrorBody; the caller decides whether to surface or summarize it.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned HTTP %d: %s", e.StatusCode, e.Body)
}

// UnavailableError is a transport-level failure: the provider could not be
// reached or the response body could not be read
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("upstream unavailable: %v", e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// MalformedResponseError is a 2xx response whose body is not valid JSON
type MalformedResponseError struct {
	Detail string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed upstream response: %s", e.Detail)
}
