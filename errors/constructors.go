package errors

import "fmt"

// New creates a new CodedError with the specified code and message.
// The classification is set automatically from the code's default.
//
// Example:
//
//	err := errors.New(errors.CodeArchiveOpen, "cannot open archive")
func New(code ErrorCode, message string) CodedError {
	return &codedError{
		code:           code,
		classification: getDefaultClassification(code),
		message:        message,
	}
}

// Newf creates a new CodedError with a formatted message.
//
// Example:
//
//	err := errors.Newf(errors.CodeInvalidInput, "expected 1 archive, got %d", n)
func Newf(code ErrorCode, format string, args ...interface{}) CodedError {
	return &codedError{
		code:           code,
		classification: getDefaultClassification(code),
		message:        fmt.Sprintf(format, args...),
	}
}
