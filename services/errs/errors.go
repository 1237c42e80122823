// Package errs is the error taxonomy shared by every service. Handlers map a
// Code to an HTTP status; Reason narrows conflicts for clients that need to
// tell them apart.
package errs

import (
	"errors"
	"fmt"
	"strings"

	"freelancehub/database/repository"
)

type Code string

const (
	CodeValidation   Code = "validation"
	CodeNotFound     Code = "not_found"
	CodeConflict     Code = "conflict"
	CodeForbidden    Code = "forbidden"
	CodeUnauthorized Code = "unauthorized"
	CodeUpstream     Code = "upstream"
)

// Conflict reasons.
const (
	ReasonAlreadyHired      = "already_hired"
	ReasonDuplicateRating   = "duplicate_rating"
	ReasonInvalidTransition = "invalid_transition"
	ReasonDuplicateAccount  = "duplicate_account"
	ReasonDuplicateBid      = "duplicate_bid"
	ReasonDuplicateProfile  = "duplicate_profile"
)

// Error carries a taxonomy code plus the operation that produced it.
type Error struct {
	Code    Code
	Reason  string
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	op := strings.TrimSpace(e.Op)
	msg := strings.TrimSpace(e.Message)
	switch {
	case op != "" && msg != "":
		return fmt.Sprintf("%s: %s (%s)", op, msg, e.Code)
	case op != "":
		return fmt.Sprintf("%s (%s)", op, e.Code)
	case msg != "":
		return fmt.Sprintf("%s (%s)", msg, e.Code)
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

func Validation(op, format string, args ...any) error {
	return &Error{Code: CodeValidation, Op: op, Message: fmt.Sprintf(format, args...)}
}

func NotFound(op, format string, args ...any) error {
	return &Error{Code: CodeNotFound, Op: op, Message: fmt.Sprintf(format, args...)}
}

func Conflict(op, reason, format string, args ...any) error {
	return &Error{Code: CodeConflict, Reason: reason, Op: op, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(op, format string, args ...any) error {
	return &Error{Code: CodeForbidden, Op: op, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(op, format string, args ...any) error {
	return &Error{Code: CodeUnauthorized, Op: op, Message: fmt.Sprintf(format, args...)}
}

// Upstream wraps a storage or collaborator failure. A nil cause returns nil.
func Upstream(op string, cause error) error {
	if cause == nil {
		return nil
	}
	return &Error{Code: CodeUpstream, Op: op, Message: cause.Error(), Cause: cause}
}

// FromStore classifies a repository error. A missing document becomes
// NotFound naming what was looked up; anything else is Upstream.
func FromStore(op string, err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return &Error{Code: CodeNotFound, Op: op, Message: what + " not found", Cause: err}
	default:
		return Upstream(op, err)
	}
}

// IsCode reports whether err (or anything it wraps) carries code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// CodeOf extracts the taxonomy code, or "" for foreign errors.
func CodeOf(err error) Code {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Code
}

// ReasonOf extracts the conflict reason, if any.
func ReasonOf(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Reason
}

// MessageOf returns the human-readable part without op or code decoration.
func MessageOf(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	return e.Message
}
