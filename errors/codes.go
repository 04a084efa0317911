package errors

// ErrorCode represents a specific error condition.
// Error codes are string-based for debuggability and log readability.
type ErrorCode string

const (
	// Input errors.

	// CodeInvalidInput indicates the command line or an argument is invalid.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// Archive errors.

	// CodeArchiveOpen indicates the base archive could not be opened.
	CodeArchiveOpen ErrorCode = "ARCHIVE_OPEN_FAILED"

	// CodeListFile indicates the archive's list file could not be extracted.
	CodeListFile ErrorCode = "LISTFILE_FAILED"

	// CodePatchFailed indicates a patch archive could not be layered.
	CodePatchFailed ErrorCode = "PATCH_FAILED"

	// CodeClosed indicates an operation on an archive handle that was closed.
	CodeClosed ErrorCode = "CLOSED"

	// Member errors.

	// CodeNotFound indicates a member does not exist in the archive or its patches.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeNoMatch indicates a wildcard search matched no member.
	CodeNoMatch ErrorCode = "NO_MATCH"

	// CodeExtractionFailed indicates a single member could not be extracted.
	CodeExtractionFailed ErrorCode = "EXTRACTION_FAILED"

	// CodeSecurityViolation indicates a member path would escape the destination.
	CodeSecurityViolation ErrorCode = "SECURITY_VIOLATION"

	// System errors.

	// CodeInternal indicates an internal error occurred.
	CodeInternal ErrorCode = "INTERNAL_ERROR"

	// CodeUnknown indicates an unknown or unclassified error occurred.
	CodeUnknown ErrorCode = "UNKNOWN"
)
