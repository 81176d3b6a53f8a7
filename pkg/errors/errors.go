package errors

import (
	"errors"
	"fmt"
)

// Failure classes an adapter can report.
var (
	ErrUpstream    = errors.New("upstream request failed")
	ErrBadResponse = errors.New("malformed upstream response")
	ErrSession     = errors.New("session unavailable")
)

// Codes attached through WrapWithCode, surfaced in logs.
const (
	CodeUpstream    = "upstream"
	CodeBadResponse = "bad_response"
	CodeSession     = "session"
)

// Error carries a short code next to the wrapped cause.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatusError is returned when an upstream answers with a non-2xx status.
// It matches ErrUpstream.
type HTTPStatusError struct {
	StatusCode int
	URL        string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("%s: status %d", e.URL, e.StatusCode)
}

func (e *HTTPStatusError) Is(target error) bool {
	return target == ErrUpstream
}

// WrapWithCode wraps err with a code and message. A nil err stays nil.
func WrapWithCode(err error, code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// GetCode returns the outermost code in err's chain, or "" if there is none.
func GetCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
