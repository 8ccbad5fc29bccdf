// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an upstream model API failure.
type ErrorKind string

const (
	// KindRateLimit is an HTTP 429 or provider rate-limit response.
	KindRateLimit ErrorKind = "rate_limit"

	// KindTimeout is a request or connection timeout.
	KindTimeout ErrorKind = "timeout"

	// KindServer is a transient provider-side failure (HTTP 5xx, dropped
	// connection).
	KindServer ErrorKind = "server"

	// KindPermanent is any failure that will not improve on retry
	// (bad request, auth failure).
	KindPermanent ErrorKind = "permanent"
)

// UpstreamError is a classified failure from the model API.
type UpstreamError struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("model API %s (HTTP %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("model API %s: %s", e.Kind, e.Message)
}

// Transient reports whether the failure is worth retrying.
func (e *UpstreamError) Transient() bool {
	switch e.Kind {
	case KindRateLimit, KindTimeout, KindServer:
		return true
	}
	return false
}

// ErrMalformedResponse designates model output that could not be parsed into
// the expected structure. Never retried; callers degrade to a fallback or a
// per-item error.
var ErrMalformedResponse = errors.New("malformed model response")

// TransientFailure is returned after the retry budget is exhausted on
// transient upstream errors.
type TransientFailure struct {
	Attempts int
	Last     error
}

func (e *TransientFailure) Error() string {
	return fmt.Sprintf("model call failed after %d attempts: %v", e.Attempts, e.Last)
}

func (e *TransientFailure) Unwrap() error { return e.Last }
