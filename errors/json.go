package errors

import (
	"encoding/json"
)

// ErrorResponse is the flat, serializable form of an error.
// The wrapped error chain is excluded; Context carries the operation, path
// and URI where the shim attached them.
type ErrorResponse struct {
	// Code is the POSIX code.
	Code string `json:"code"`

	// Message is the message without the code prefix.
	Message string `json:"message"`

	// Classification indicates whether the error is retryable or permanent.
	Classification string `json:"classification"`

	// Context contains optional metadata about the error.
	Context map[string]interface{} `json:"context,omitempty"`
}

// ToJSON converts any error to an ErrorResponse suitable for JSON serialization.
// Returns nil if err is nil.
//
// For standard errors, uses CodeUnknown, ClassificationPermanent, and the
// error string as the message.
func ToJSON(err error) *ErrorResponse {
	if err == nil {
		return nil
	}

	message := err.Error()
	var context map[string]interface{}

	var coded CodedError
	if As(err, &coded) {
		message = coded.Message()
		context = coded.Context()
	}

	return &ErrorResponse{
		Code:           string(GetCode(err)),
		Message:        message,
		Classification: string(GetClassification(err)),
		Context:        context,
	}
}

// MarshalJSON implements json.Marshaler for codedError.
//
// Example:
//
//	err := errors.New(errors.CodeNotExist, "/repo")
//	data, _ := json.Marshal(err)
//	// {"code":"ENOENT","message":"/repo","classification":"PERMANENT"}
func (e *codedError) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(&ErrorResponse{
		Code:           string(e.code),
		Message:        e.message,
		Classification: string(e.classification),
		Context:        e.context,
	})
	if err != nil {
		return nil, &codedError{
			code:           CodeUnknown,
			classification: ClassificationPermanent,
			message:        "failed to marshal error response",
			cause:          err,
		}
	}
	return data, nil
}
