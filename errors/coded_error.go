package errors

import (
	"context"
	stderrors "errors"
	"io/fs"
)

// codedError is the concrete implementation of CodedError.
// It is private to enforce construction through package functions.
type codedError struct {
	code           ErrorCode
	classification ErrorClassification
	message        string
	context        map[string]interface{}
	cause          error
}

// Error returns the string representation of the error.
// Format: "CODE: message", "CODE" when the message is empty, with
// ": cause" appended when a cause is present.
func (e *codedError) Error() string {
	s := string(e.code)
	if e.message != "" {
		s += ": " + e.message
	}
	if e.cause != nil {
		s += ": " + e.cause.Error()
	}
	return s
}

// Code returns the error code.
func (e *codedError) Code() ErrorCode {
	return e.code
}

// Classification returns the error classification.
func (e *codedError) Classification() ErrorClassification {
	return e.classification
}

// Message returns the error message.
func (e *codedError) Message() string {
	return e.message
}

// Context returns a copy of the context map, or nil when empty.
func (e *codedError) Context() map[string]interface{} {
	if len(e.context) == 0 {
		return nil
	}
	ctx := make(map[string]interface{}, len(e.context))
	for k, v := range e.context {
		ctx[k] = v
	}
	return ctx
}

// Unwrap returns the wrapped error for standard library compatibility.
func (e *codedError) Unwrap() error {
	return e.cause
}

// Is matches the io/fs sentinel that corresponds to the error code, so
// errors.Is(err, fs.ErrNotExist) holds for ENOENT without a wrapped cause.
func (e *codedError) Is(target error) bool {
	sentinel, ok := sentinels[e.code]
	return ok && target == sentinel
}

var sentinels = map[ErrorCode]error{
	CodeExist:        fs.ErrExist,
	CodeNotExist:     fs.ErrNotExist,
	CodeInvalid:      fs.ErrInvalid,
	CodeNotSupported: stderrors.ErrUnsupported,
	CodePermission:   fs.ErrPermission,
	CodeTimedOut:     context.DeadlineExceeded,
}

// Sentinel returns the io/fs (or context) sentinel that corresponds to code,
// or nil when the code has none.
func Sentinel(code ErrorCode) error {
	return sentinels[code]
}
