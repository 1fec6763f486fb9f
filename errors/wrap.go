package errors

import (
	"errors"
	"fmt"
)

// Wrap wraps an error with a code and message while preserving the original
// error. The wrapped error is accessible via Unwrap() and compatible with
// errors.Is and errors.As.
//
// If the wrapped error is a CodedError, its classification is preserved.
// Otherwise, the default classification for the code is used.
//
// Returns nil if err is nil.
//
// Example:
//
//	if err := store.Delete(ctx, uri, opts); err != nil {
//	    return errors.Wrap(err, errors.CodeIO, path)
//	}
func Wrap(err error, code ErrorCode, message string) CodedError {
	if err == nil {
		return nil
	}

	classification := getDefaultClassification(code)
	var coded CodedError
	if errors.As(err, &coded) {
		classification = coded.Classification()
	}

	return &codedError{
		code:           code,
		classification: classification,
		message:        message,
		cause:          err,
	}
}

// Wrapf wraps an error with a formatted message.
//
// Returns nil if err is nil.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) CodedError {
	if err == nil {
		return nil
	}

	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WrapWithContext wraps an error and attaches context metadata in a single
// operation. The context map is copied to prevent external mutation.
//
// Returns nil if err is nil.
//
// Example:
//
//	return errors.WrapWithContext(err, errors.CodeNotExist, path, map[string]interface{}{
//	    "op":  "readFile",
//	    "uri": uri,
//	})
func WrapWithContext(err error, code ErrorCode, message string, ctx map[string]interface{}) CodedError {
	if err == nil {
		return nil
	}

	wrapped := Wrap(err, code, message).(*codedError)
	wrapped.context = copyContext(ctx)
	return wrapped
}

func copyContext(ctx map[string]interface{}) map[string]interface{} {
	if len(ctx) == 0 {
		return nil
	}
	out := make(map[string]interface{}, len(ctx))
	for k, v := range ctx {
		out[k] = v
	}
	return out
}
