package errors

// ErrorClassification indicates whether an error should trigger a retry.
type ErrorClassification string

const (
	// ClassificationRetryable indicates temporary failures that may succeed on retry.
	// Examples: deadlines, an unreachable object store.
	ClassificationRetryable ErrorClassification = "RETRYABLE"

	// ClassificationPermanent indicates failures that will not succeed on retry.
	// Examples: missing paths, unsupported operations.
	ClassificationPermanent ErrorClassification = "PERMANENT"
)

// IsRetryable returns true if the classification indicates retry should be attempted.
func (c ErrorClassification) IsRetryable() bool {
	return c == ClassificationRetryable
}

var defaultClassifications = map[ErrorCode]ErrorClassification{
	CodeTimedOut: ClassificationRetryable,
	CodeIO:       ClassificationRetryable,

	CodeExist:        ClassificationPermanent,
	CodeNotExist:     ClassificationPermanent,
	CodeNotDir:       ClassificationPermanent,
	CodeIsDir:        ClassificationPermanent,
	CodeNotEmpty:     ClassificationPermanent,
	CodeInvalid:      ClassificationPermanent,
	CodeNotSupported: ClassificationPermanent,
	CodePermission:   ClassificationPermanent,
	CodeConflict:     ClassificationPermanent,
	CodeUnknown:      ClassificationPermanent,
}

// getDefaultClassification returns the default classification for an error code.
// Unmapped codes are permanent.
func getDefaultClassification(code ErrorCode) ErrorClassification {
	if class, ok := defaultClassifications[code]; ok {
		return class
	}
	return ClassificationPermanent
}
