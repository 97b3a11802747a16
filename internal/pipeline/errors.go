package pipeline

import (
	"errors"
	"fmt"
)

// ErrSourceUnavailable means the trends source kept failing after the retry
// budget was spent.
var ErrSourceUnavailable = errors.New("trend source unavailable")

// ErrNoSelection means the generative model never produced a usable trend
// selection; the trends stage fails without crashing the workflow.
var ErrNoSelection = errors.New("no usable trend selection")

// MalformedResponseError marks a generative-text response that failed schema
// validation. It is retried like a transient provider error.
type MalformedResponseError struct {
	Cause error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed model response: %v", e.Cause)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}
