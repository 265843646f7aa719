package replygen

import (
	"errors"
	"fmt"
	"time"
)

// Application error codes.
//
// Each pipeline stage reports failures with its own code so callers can
// tell a bad URL from an unreachable page or a malformed generation.
const (
	EINTERNAL   = "internal"
	EINVALID    = "invalid"
	EINVALIDURL = "invalid_url"
	ENOTFOUND   = "not_found"
	EFETCH      = "fetch_error"
	ETIMEOUT    = "fetch_timeout"
	EEXTRACT    = "extraction_failure"
	ESHAPE      = "invalid_generation_shape"
	EPARSE      = "generation_parse_error"
	EGENERATE   = "generation_error"
)

// Error represents an application-specific error.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable error message.
	Message string
}

// Error implements the error interface. Not used by the application otherwise.
func (e *Error) Error() string {
	return fmt.Sprintf("replygen error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsTagged reports whether err carries an application error code.
func IsTagged(err error) bool {
	var e *Error
	return errors.As(err, &e)
}

// ElapsedError attaches the processing time spent before a failure.
type ElapsedError struct {
	Err     error
	Elapsed time.Duration
}

func (e *ElapsedError) Error() string {
	return e.Err.Error()
}

func (e *ElapsedError) Unwrap() error {
	return e.Err
}

// ErrorElapsed returns the processing time attached to err, if any.
func ErrorElapsed(err error) (time.Duration, bool) {
	var e *ElapsedError
	if errors.As(err, &e) {
		return e.Elapsed, true
	}
	return 0, false
}
