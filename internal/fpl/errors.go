package fpl

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a referenced player or team absent from bootstrap data.
// Callers treat it as a skip, not a hard failure.
var ErrNotFound = errors.New("not found in bootstrap data")

// UpstreamError reports a failed call to the statistics provider or the
// image host: transport error, timeout, or non-2xx status.
type UpstreamError struct {
	Endpoint string
	Status   int // zero when the request never completed
	Err      error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("upstream %s returned %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("upstream %s unavailable: %v", e.Endpoint, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
