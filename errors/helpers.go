package errors

import (
	stderrors "errors"
)

// Is reports whether any error in err's chain matches target.
// It is a passthrough to the standard library so callers need a single import.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// GetCode extracts the error code from an error.
// Returns CodeUnknown for nil and for errors without a code.
func GetCode(err error) ErrorCode {
	if err == nil {
		return CodeUnknown
	}

	var coded CodedError
	if stderrors.As(err, &coded) {
		return coded.Code()
	}

	return CodeUnknown
}

// GetClassification extracts the classification from an error.
// Plain errors are treated as fatal.
func GetClassification(err error) ErrorClassification {
	if err == nil {
		return ClassificationRecoverable
	}

	var coded CodedError
	if stderrors.As(err, &coded) {
		return coded.Classification()
	}

	return ClassificationFatal
}

// IsFatal reports whether err must abort the run.
// A nil error is never fatal.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	return GetClassification(err).IsFatal()
}
