package apperrors

// ErrorCode identifies an error class in API responses.
type ErrorCode string

const (
	// System
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"

	// Business logic
	CodeNotFound          ErrorCode = "NOT_FOUND"
	CodeAlreadyExists     ErrorCode = "ALREADY_EXISTS"
	CodeValidationFailed  ErrorCode = "VALIDATION_FAILED"
	CodeConflict          ErrorCode = "CONFLICT"
	CodeInvalidStatus     ErrorCode = "INVALID_STATUS"
	CodeInvalidTransition ErrorCode = "INVALID_TRANSITION"
	CodeInvalidOperation  ErrorCode = "INVALID_OPERATION"

	// Auth
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	CodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
)
