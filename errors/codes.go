package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Traversal errors
const (
	// ErrCodeIllegalState indicates a second traversal of a single-use sequence.
	ErrCodeIllegalState ErrorCode = "ILLEGAL_STATE"
)

// Construction errors
const (
	// ErrCodeUnsupportedSource indicates a value that cannot back a sequence.
	ErrCodeUnsupportedSource ErrorCode = "UNSUPPORTED_SOURCE"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeInvalidFormat indicates a field has an invalid format.
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected internal failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// contractCodes are codes raised for programming-contract violations rather
// than bad data.
var contractCodes = map[ErrorCode]bool{
	ErrCodeIllegalState:      true,
	ErrCodeUnsupportedSource: true,
}

// IsContractCode returns true if the code reports misuse of the API by the
// caller (as opposed to invalid input data or an internal fault).
func IsContractCode(code ErrorCode) bool {
	return contractCodes[code]
}
