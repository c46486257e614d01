// Package domainerrors carries stable, client-facing error codes across layers.
//
// Services return *Error values; the HTTP layer maps codes to status codes in
// pkg/platform/httputil. Stores never construct these directly: they return
// sentinel errors that services translate.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code is a stable, machine readable error identifier.
type Code string

const (
	// Generic
	CodeBadRequest         Code = "bad_request"
	CodeValidation         Code = "validation_error"
	CodeInvalidInput       Code = "invalid_input"
	CodeNotFound           Code = "not_found"
	CodeUnauthorized       Code = "unauthorized"
	CodeForbidden          Code = "forbidden"
	CodeConflict           Code = "conflict"
	CodeRateLimited        Code = "rate_limited"
	CodeInternal           Code = "internal_error"
	CodeInvariantViolation Code = "invariant_violation"
	CodeTimeout            Code = "timeout"
	CodeUnavailable        Code = "dependency_unavailable"

	// Eligibility
	CodeElectionNotActive      Code = "election_not_active"
	CodeNotEligible            Code = "not_eligible"
	CodeAlreadyVoted           Code = "already_voted"
	CodeCandidateNotInElection Code = "candidate_not_in_election"

	// One-time codes
	CodeCodeNotFound    Code = "code_not_found"
	CodeCodeExpired     Code = "code_expired"
	CodeCodeMismatch    Code = "code_mismatch"
	CodeBindingMismatch Code = "binding_mismatch"
	CodeDeliveryFailed  Code = "delivery_failed"
)

// Error is a domain error with a stable code and a human readable message.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a domain error.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Wrap attaches a code and message to an underlying cause.
func Wrap(err error, code Code, msg string) error {
	return &Error{Code: code, Message: msg, Err: err}
}

// HasCode reports whether the outermost domain error in the chain carries code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// Is is an alias of HasCode kept for handler call sites.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf returns the code of the outermost domain error, or CodeInternal.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf returns the message of the outermost domain error.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return ""
}
