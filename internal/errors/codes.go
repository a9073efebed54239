package errors

import "strings"

// Error codes follow the format ERR_<number>_<NAME>. The number range
// encodes the category: 1xx input/config, 3xx index, 5xx internal.
const (
	// ErrCodeInvalidInput indicates caller input that cannot be normalized.
	ErrCodeInvalidInput = "ERR_101_INVALID_INPUT"

	// ErrCodeConfigInvalid indicates a broken or unreadable configuration.
	ErrCodeConfigInvalid = "ERR_102_CONFIG_INVALID"

	// ErrCodeIndexUnavailable indicates a transport or open failure against
	// the document index. Retryable; retry policy belongs to the caller.
	ErrCodeIndexUnavailable = "ERR_301_INDEX_UNAVAILABLE"

	// ErrCodeMalformedResult indicates a document that failed to
	// deserialize into its expected entity shape.
	ErrCodeMalformedResult = "ERR_302_MALFORMED_RESULT"

	// ErrCodeIndexLocked indicates the index is held by another process.
	ErrCodeIndexLocked = "ERR_303_INDEX_LOCKED"

	// ErrCodeInternal is the catch-all for unexpected failures.
	ErrCodeInternal = "ERR_501_INTERNAL"
)

// Category classifies an error by the subsystem it originates from.
type Category string

const (
	CategoryInput    Category = "input"
	CategoryConfig   Category = "config"
	CategoryIndex    Category = "index"
	CategoryInternal Category = "internal"
)

// Severity indicates how the error should be treated by callers.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
	SeverityFatal   Severity = "fatal"
)

func categoryFromCode(code string) Category {
	switch {
	case strings.HasPrefix(code, "ERR_101"):
		return CategoryInput
	case strings.HasPrefix(code, "ERR_102"):
		return CategoryConfig
	case strings.HasPrefix(code, "ERR_3"):
		return CategoryIndex
	default:
		return CategoryInternal
	}
}

func severityFromCode(code string) Severity {
	switch code {
	case ErrCodeInvalidInput:
		return SeverityWarning
	case ErrCodeConfigInvalid:
		return SeverityFatal
	default:
		return SeverityError
	}
}

func isRetryableCode(code string) bool {
	switch code {
	case ErrCodeIndexUnavailable, ErrCodeIndexLocked:
		return true
	default:
		return false
	}
}
