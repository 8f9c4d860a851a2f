package errors

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes shared by every layer.
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeConflict           ErrorCode = "COMMON_004"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_005"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_006"
	ErrCodeTimeout            ErrorCode = "COMMON_007"
	ErrCodeValidation         ErrorCode = "COMMON_008"
	ErrCodeSerialization      ErrorCode = "COMMON_009"
	ErrCodeDatabaseError      ErrorCode = "COMMON_010"
	ErrCodeCacheError         ErrorCode = "COMMON_011"
	ErrCodeMessagingError     ErrorCode = "COMMON_012"
)

// Question / dispatch error codes.
//
// These mirror the dispatch pipeline's terminal states. OutOfDomain and
// NoMatch are expected outcomes, not faults; they carry codes so that
// handlers and metrics can label them without string matching.
const (
	ErrCodeOutOfDomain        ErrorCode = "QST_001"
	ErrCodeQuestionTooLong    ErrorCode = "QST_002"
	ErrCodeNoMatch            ErrorCode = "DSP_001"
	ErrCodeSolverCrash        ErrorCode = "DSP_002"
	ErrCodeMalformedSolverOut ErrorCode = "ANS_001"
	ErrCodeStructuralInvalid  ErrorCode = "ANS_002"
)

// Mastery / persistence error codes.
const (
	ErrCodeAttemptNotFound  ErrorCode = "MST_001"
	ErrCodeStudentNotFound  ErrorCode = "MST_002"
	ErrCodeInvalidExamMode  ErrorCode = "MST_003"
	ErrCodeMasteryStoreFail ErrorCode = "MST_004"
)

// Aliases used throughout the codebase for readability at call sites.
const (
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeBadRequest
	CodeNotFound     = ErrCodeNotFound
	CodeConflict     = ErrCodeConflict
	CodeRateLimit    = ErrCodeTooManyRequests
	CodeUnknown      = ErrorCode("UNKNOWN")
	CodeOK           = ErrorCode("OK")
)

// Sentinel answer error strings surfaced inside a normalized Answer.error
// field. These are part of the caller-visible contract: a no-match dispatch
// always produces exactly "NO_MATCH", and a solver that returned a value of
// unexpected shape always produces exactly "SOLVER_BAD_OUTPUT_TYPE".
const (
	SentinelNoMatch       = "NO_MATCH"
	SentinelBadSolverType = "SOLVER_BAD_OUTPUT_TYPE"
)
