package errors

// CodedError extends the standard error interface with a POSIX error code.
//
// CodedError provides the code consumers branch on, a classification for
// retry logic, contextual metadata (operation, path, URI), and compatibility
// with standard library error handling (errors.Is, errors.As, errors.Unwrap).
type CodedError interface {
	error

	// Code returns the POSIX code identifying the error.
	Code() ErrorCode

	// Classification returns whether the error is retryable or permanent.
	Classification() ErrorClassification

	// Message returns the message without the code prefix.
	Message() string

	// Context returns attached metadata as a read-only map.
	// Returns nil if no context has been attached.
	Context() map[string]interface{}

	// Unwrap returns the wrapped error, or nil.
	Unwrap() error
}
