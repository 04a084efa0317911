package errors

import (
	"errors"
	"fmt"
)

// Wrap wraps an existing error with a code and message.
// Returns nil if err is nil.
//
// If err is already a CodedError its classification is preserved; otherwise
// the default classification of code is used.
//
// Example:
//
//	if err := h.ExtractMember(ctx, name, dest, true); err != nil {
//	    return errors.Wrap(err, errors.CodeExtractionFailed, "extraction failed")
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

// Wrapf wraps an error with a code and a formatted message.
// Returns nil if err is nil.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) CodedError {
	if err == nil {
		return nil
	}

	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WrapWithContext wraps an error and attaches a copy of ctx in one call.
// Returns nil if err is nil.
func WrapWithContext(err error, code ErrorCode, message string, ctx map[string]interface{}) CodedError {
	if err == nil {
		return nil
	}

	wrapped := Wrap(err, code, message).(*codedError)
	if ctx != nil {
		wrapped.context = make(map[string]interface{}, len(ctx))
		for k, v := range ctx {
			wrapped.context[k] = v
		}
	}
	return wrapped
}
