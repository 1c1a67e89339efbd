package core

import (
	"context"
	"errors"
	"fmt"
)

type BackendReason string

const (
	ReasonTimeout           BackendReason = "timeout"
	ReasonMalformedResponse BackendReason = "malformed-response"
	ReasonTransportFailure  BackendReason = "transport-failure"
)

// BackendError is returned by generative backends and attachment fetchers.
type BackendError struct {
	Reason BackendReason
	// Op names the failed operation, e.g. "complete" or "fetch".
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

func NewBackendError(op string, reason BackendReason, err error) *BackendError {
	return &BackendError{Reason: reason, Op: op, Err: err}
}

// ClassifyBackendError wraps err into a BackendError, mapping deadlines to ReasonTimeout.
// Errors that already are BackendErrors are returned as is.
func ClassifyBackendError(op string, err error) *BackendError {
	if err == nil {
		return nil
	}
	if be, ok := AsBackendError(err); ok {
		return be
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return NewBackendError(op, ReasonTimeout, err)
	}
	return NewBackendError(op, ReasonTransportFailure, err)
}

func AsBackendError(err error) (*BackendError, bool) {
	var be *BackendError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
