package errors

import "errors"

// WithContext adds a single context field to an error.
// Returns a new CodedError with the field added; existing fields are preserved.
//
// If err is not a CodedError, it is converted to one with CodeUnknown.
// Returns nil if err is nil.
//
// Example:
//
//	err := errors.New(errors.CodeNotExist, path)
//	err = errors.WithContext(err, "op", "stat")
func WithContext(err error, key string, value interface{}) CodedError {
	if err == nil {
		return nil
	}
	return WithContextMap(err, map[string]interface{}{key: value})
}

// WithContextMap adds multiple context fields to an error.
// New fields override existing ones with the same key.
//
// If err is not a CodedError, it is converted to one with CodeUnknown.
// Returns nil if err is nil.
func WithContextMap(err error, ctx map[string]interface{}) CodedError {
	if err == nil {
		return nil
	}

	coded := asCoded(err)
	merged := make(map[string]interface{})
	for k, v := range coded.Context() {
		merged[k] = v
	}
	for k, v := range ctx {
		merged[k] = v
	}

	return &codedError{
		code:           coded.Code(),
		classification: coded.Classification(),
		message:        coded.Message(),
		context:        merged,
		cause:          coded.Unwrap(),
	}
}

// WithClassification overrides the classification of an error.
//
// If err is not a CodedError, it is converted to one with CodeUnknown.
// Returns nil if err is nil.
func WithClassification(err error, classification ErrorClassification) CodedError {
	if err == nil {
		return nil
	}

	coded := asCoded(err)
	return &codedError{
		code:           coded.Code(),
		classification: classification,
		message:        coded.Message(),
		context:        copyContext(coded.Context()),
		cause:          coded.Unwrap(),
	}
}

func asCoded(err error) CodedError {
	var coded CodedError
	if errors.As(err, &coded) {
		return coded
	}
	return &codedError{
		code:           CodeUnknown,
		classification: ClassificationPermanent,
		message:        err.Error(),
		cause:          err,
	}
}
