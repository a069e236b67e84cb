package errs

import (
	"fmt"
	"strings"
)

// FieldViolation describes a single invalid request field.
type FieldViolation struct {
	Field  string `json:"field"`
	Detail string `json:"detail"`
}

// ValidationError carries every violated field of a request, in the order the
// fields were checked. The workflow is never entered when one is returned.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	details := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		details[i] = fmt.Sprintf("%s: %s", v.Field, v.Detail)
	}
	return "validation failed: " + strings.Join(details, "; ")
}

// NotFoundError signals that a user record or ECG reading does not exist.
type NotFoundError struct {
	Resource string
	UserID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s found for user %q", e.Resource, e.UserID)
}

// ModelLoadError is fatal at startup: the process must not serve requests
// with a partially loaded model registry.
type ModelLoadError struct {
	Artifact string
	Err      error
}

func (e *ModelLoadError) Error() string {
	return fmt.Sprintf("failed to load model artifact %q: %v", e.Artifact, e.Err)
}

func (e *ModelLoadError) Unwrap() error { return e.Err }

// PersistenceError means the prediction was computed but could not be saved.
// Callers surface it separately from a prediction failure so a client can
// distinguish "we don't know your risk" from "we know it but failed to
// record it".
type PersistenceError struct {
	UserID string
	Err    error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist prediction for user %q: %v", e.UserID, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// TimeoutError marks a store call that exceeded its deadline.
type TimeoutError struct {
	Operation string
	Err       error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("store operation %q timed out: %v", e.Operation, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// TransientUpstreamError wraps a backend hiccup. Read-only fetches are safe
// to retry; persistence is idempotent (upsert by user), so a retry there
// cannot duplicate a result record.
type TransientUpstreamError struct {
	Operation string
	Err       error
}

func (e *TransientUpstreamError) Error() string {
	return fmt.Sprintf("upstream error during %q: %v", e.Operation, e.Err)
}

func (e *TransientUpstreamError) Unwrap() error { return e.Err }
