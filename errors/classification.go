package errors

// ErrorClassification categorizes errors by how the run reacts to them.
type ErrorClassification string

const (
	// ClassificationFatal indicates the run must stop and exit with a non-zero code.
	ClassificationFatal ErrorClassification = "FATAL"

	// ClassificationRecoverable indicates a per-item failure: it is logged and
	// the remaining items are still processed.
	ClassificationRecoverable ErrorClassification = "RECOVERABLE"
)

// IsFatal returns true if the classification is fatal.
func (c ErrorClassification) IsFatal() bool {
	return c == ClassificationFatal
}

// defaultClassifications maps each code to its default classification.
var defaultClassifications = map[ErrorCode]ErrorClassification{
	CodeInvalidInput: ClassificationFatal,
	CodeArchiveOpen:  ClassificationFatal,
	CodeListFile:     ClassificationFatal,
	CodeClosed:       ClassificationFatal,
	CodeInternal:     ClassificationFatal,
	CodeUnknown:      ClassificationFatal,

	CodePatchFailed:       ClassificationRecoverable,
	CodeNotFound:          ClassificationRecoverable,
	CodeNoMatch:           ClassificationRecoverable,
	CodeExtractionFailed:  ClassificationRecoverable,
	CodeSecurityViolation: ClassificationRecoverable,
}

// getDefaultClassification returns the default classification for a code.
// Unknown codes are fatal so that nothing unexpected is silently skipped.
func getDefaultClassification(code ErrorCode) ErrorClassification {
	if class, ok := defaultClassifications[code]; ok {
		return class
	}
	return ClassificationFatal
}
