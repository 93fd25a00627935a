package domain

import "fmt"

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain error codes
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeCollaborator  = "COLLABORATOR_ERROR"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// Validation errors
var (
	ErrMissingQuery         = NewDomainError(ErrCodeValidation, "search query is required")
	ErrMissingResults       = NewDomainError(ErrCodeValidation, "invalid search results provided")
	ErrInvalidResultIndex   = NewDomainError(ErrCodeNotFound, "search result not found")
	ErrInvalidGender        = NewDomainError(ErrCodeValidation, "invalid gender")
	ErrMissingRequiredField = NewDomainError(ErrCodeValidation, "missing required field")
)

// Not found errors
var (
	ErrHistoryNotFound     = NewDomainError(ErrCodeNotFound, "search history not found")
	ErrStatisticsNotFound  = NewDomainError(ErrCodeNotFound, "search statistics not found")
	ErrSavedResultNotFound = NewDomainError(ErrCodeNotFound, "saved result not found")
	ErrUserNotFound        = NewDomainError(ErrCodeNotFound, "user not found")
	ErrAPIKeyNotFound      = NewDomainError(ErrCodeNotFound, "api key not found")
)

// Already exists errors
var (
	ErrResultAlreadySaved = NewDomainError(ErrCodeAlreadyExists, "search result already saved")
	ErrUserAlreadyExists  = NewDomainError(ErrCodeAlreadyExists, "username or email already taken")
)

// Authorization errors
var (
	ErrAPIKeyRevoked = NewDomainError(ErrCodeUnauthorized, "api key has been revoked")
	ErrInvalidAPIKey = NewDomainError(ErrCodeUnauthorized, "invalid api key")
)

// Collaborator errors
var (
	ErrSearchFailed = NewDomainError(ErrCodeCollaborator, "failed to perform search")
)
