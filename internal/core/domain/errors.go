package domain

import (
	"errors"
	"fmt"
)

// DomainError is a business error with a structured code of the form
// DIO-<AREA>-<NNNN>. The last four digits follow HTTP status semantics.
type DomainError struct {
	Code    string // Error code (e.g., "DIO-MAT-4040")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is matches any DomainError with the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a DomainError.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{Code: e.Code, Message: e.Message, Details: details, Cause: e.Cause}
}

// WithCause returns a copy of the error wrapping cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{Code: e.Code, Message: e.Message, Details: e.Details, Cause: cause}
}

// Wrap is shorthand for WithCause.
func (e *DomainError) Wrap(cause error) *DomainError {
	return e.WithCause(cause)
}

// IsDomainError reports whether err is a DomainError with the given code.
// An empty code matches any DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return code == "" || de.Code == code
	}
	return false
}

// GetErrorCode extracts the code of a DomainError, or "".
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// Material errors (MAT).
var (
	// ErrMaterialNotFound indicates no material matches the reference.
	ErrMaterialNotFound = NewDomainError("DIO-MAT-4040", "material not found")

	// ErrVariantNotFound indicates the id exists but the sub-type does not.
	ErrVariantNotFound = NewDomainError("DIO-MAT-4041", "material variant not found")
)

// Snapshot errors (SNAP).
var (
	// ErrSnapshotNotFound indicates no registry snapshot has been saved.
	ErrSnapshotNotFound = NewDomainError("DIO-SNAP-4040", "registry snapshot not found")

	// ErrSnapshotDrift indicates the running registry differs from the
	// stored snapshot.
	ErrSnapshotDrift = NewDomainError("DIO-SNAP-4090", "registry differs from snapshot")

	// ErrSnapshotCorrupt indicates a stored entry could not be decoded.
	ErrSnapshotCorrupt = NewDomainError("DIO-SNAP-5000", "registry snapshot corrupt")
)

// Argument errors (ARG).
var (
	// ErrInvalidArgument indicates a malformed argument.
	ErrInvalidArgument = NewDomainError("DIO-ARG-1001", "invalid argument")

	// ErrMissingArgument indicates a required argument is missing.
	ErrMissingArgument = NewDomainError("DIO-ARG-1002", "missing required argument")
)

// System errors (SYS).
var (
	// ErrInternalServer indicates an internal error.
	ErrInternalServer = NewDomainError("DIO-SYS-5000", "internal server error")

	// ErrStorageError indicates a storage layer error.
	ErrStorageError = NewDomainError("DIO-SYS-5001", "storage error")

	// ErrServiceUnavailable indicates the service is shutting down or not
	// yet ready.
	ErrServiceUnavailable = NewDomainError("DIO-SYS-5030", "service unavailable")

	// ErrBadRequest indicates a request the server cannot interpret.
	ErrBadRequest = NewDomainError("DIO-SYS-4000", "bad request")

	// ErrRateLimited indicates too many requests.
	ErrRateLimited = NewDomainError("DIO-SYS-4290", "too many requests")
)
