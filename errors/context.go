package errors

import "errors"

// asCoded returns err as a *codedError, converting plain errors into an
// unknown-coded error that wraps them.
func asCoded(err error) *codedError {
	var coded CodedError
	if !errors.As(err, &coded) {
		return &codedError{
			code:           CodeUnknown,
			classification: getDefaultClassification(CodeUnknown),
			message:        err.Error(),
			cause:          err,
		}
	}
	return &codedError{
		code:           coded.Code(),
		classification: coded.Classification(),
		message:        coded.Message(),
		context:        coded.Context(),
		cause:          coded.Unwrap(),
	}
}

// WithContext returns a copy of err with key set to value in its context.
// Errors are immutable: the original error is not modified.
// Returns nil if err is nil.
//
// Example:
//
//	err = errors.WithContext(err, "member", "Interface\\Glues\\Logo.blp")
func WithContext(err error, key string, value interface{}) CodedError {
	if err == nil {
		return nil
	}

	out := asCoded(err)
	if out.context == nil {
		out.context = make(map[string]interface{}, 1)
	}
	out.context[key] = value
	return out
}

// WithContextMap returns a copy of err with every entry of ctx merged into its
// context. Returns nil if err is nil.
func WithContextMap(err error, ctx map[string]interface{}) CodedError {
	if err == nil {
		return nil
	}

	out := asCoded(err)
	if out.context == nil {
		out.context = make(map[string]interface{}, len(ctx))
	}
	for k, v := range ctx {
		out.context[k] = v
	}
	return out
}

// WithClassification returns a copy of err with the given classification.
// Returns nil if err is nil.
//
// Example:
//
//	// a missing list file is fatal even though NOT_FOUND is normally recoverable
//	err = errors.WithClassification(err, errors.ClassificationFatal)
func WithClassification(err error, classification ErrorClassification) CodedError {
	if err == nil {
		return nil
	}

	out := asCoded(err)
	out.classification = classification
	return out
}
