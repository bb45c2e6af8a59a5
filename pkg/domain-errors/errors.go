package domainerrors

import (
	"errors"
	"net/http"
)

// Code classifies a failure so transport layers can map it to a response
// without inspecting error strings.
type Code string

const (
	// CodeValidation marks malformed input or a missing/unknown reference.
	// The caller can recover by correcting the request.
	CodeValidation Code = "validation_failed"
	// CodeInvariantViolation marks a well-formed request rejected by domain
	// policy (underage policyholder, late claim, over-coverage amount).
	CodeInvariantViolation Code = "business_rule_violation"
	// CodeNotFound marks a point lookup that matched no record.
	CodeNotFound Code = "not_found"
	// CodeStorage normalizes driver and connectivity failures. Callers never
	// see the underlying driver error type.
	CodeStorage Code = "storage_fault"
	// CodeDataCorruption marks a persisted value that cannot be reconstructed
	// into its domain type. Unreachable if writes are well-formed.
	CodeDataCorruption Code = "data_corruption"

	CodeBadRequest   Code = "bad_request"
	CodeUnauthorized Code = "unauthorized"
	CodeTimeout      Code = "timeout"
	CodeInternal     Code = "internal"
)

// DomainError carries a code alongside the message and an optional cause.
type DomainError struct {
	Code    Code
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error { return e.Err }

// New builds a coded error with no underlying cause.
func New(code Code, message string) error {
	return &DomainError{Code: code, Message: message}
}

// Wrap attaches a code and message to an existing error, preserving the cause
// for errors.Is/As chains.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &DomainError{Code: code, Message: message, Err: err}
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// GetCode extracts the code from err, defaulting to CodeInternal for
// untagged errors.
func GetCode(err error) Code {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// IsDomain reports whether err was produced by this package. The transaction
// runner uses it to decide whether a failure still needs storage-fault
// normalization.
func IsDomain(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// ToHTTPStatus maps a code to its transport status. Validation and rule
// violations are both client faults; storage faults stay opaque server faults.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeValidation, CodeInvariantViolation, CodeBadRequest:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
