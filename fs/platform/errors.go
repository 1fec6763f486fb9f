package platform

import (
	"errors"
	"fmt"
)

// ErrorCode is a store error code.
type ErrorCode string

// Store error codes.
const (
	ErrNotFound      ErrorCode = "ERR_FILESYSTEM_NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ERR_FILESYSTEM_ALREADY_EXISTS"
	ErrNotADirectory ErrorCode = "ERR_FILESYSTEM_NOT_A_DIRECTORY"
	ErrIsDirectory   ErrorCode = "ERR_FILESYSTEM_IS_DIRECTORY"
	ErrInvalidURI    ErrorCode = "ERR_FILESYSTEM_INVALID_URI"
	ErrCannotRead    ErrorCode = "ERR_FILESYSTEM_CANNOT_READ"
	ErrCannotWrite   ErrorCode = "ERR_FILESYSTEM_CANNOT_WRITE"
	ErrUnavailable   ErrorCode = "ERR_FILESYSTEM_UNAVAILABLE"
)

// Error is returned by every Platform operation.
type Error struct {
	Code    ErrorCode
	URI     string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.URI != "" {
		msg += " (" + e.URI + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// NewError creates an *Error with a formatted message.
func NewError(code ErrorCode, uri, format string, args ...interface{}) *Error {
	return &Error{Code: code, URI: uri, Message: fmt.Sprintf(format, args...)}
}

// WrapError wraps err as an *Error. It returns nil if err is nil.
func WrapError(err error, code ErrorCode, uri, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, URI: uri, Message: message, Err: err}
}

// CodeOf returns the code of the first *Error in err's chain.
func CodeOf(err error) (ErrorCode, bool) {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Code, true
	}
	return "", false
}

// IsCode reports whether err carries code.
func IsCode(err error, code ErrorCode) bool {
	c, ok := CodeOf(err)
	return ok && c == code
}
