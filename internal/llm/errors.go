package llm

import (
	"errors"
	"fmt"
)

var (
	// ErrServiceUnavailable indicates the completion service is unreachable.
	ErrServiceUnavailable = errors.New("completion service unavailable")

	// ErrTimeout indicates the completion request exceeded the configured timeout.
	ErrTimeout = errors.New("completion request timed out")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("completion retry attempts exhausted")
)

// StatusError is returned for non-2xx responses. It carries the status
// code and the response body (or status text when the body could not be
// read) so the failure can be shown to the user verbatim.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("completion service returned status %d: %s", e.StatusCode, e.Body)
}
