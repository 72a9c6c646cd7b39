package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	Field         string `json:"field,omitempty"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeDuplicateCode      = "DUPLICATE_CODE"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeUsageLimitExceeded = "USAGE_LIMIT_EXCEEDED"
	ErrCodeInvalidQuery       = "INVALID_QUERY"
	ErrCodeStoreUnavailable   = "STORE_UNAVAILABLE"
	ErrCodeEmailTaken         = "EMAIL_TAKEN"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeUnauthorised       = "UNAUTHORIZED"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
	Field   string
}

func (e *DomainError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}

// Is reports whether target is a DomainError carrying the same code, so that
// errors.Is(err, ErrValidation) matches every field-specific validation error.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a validation error pointing at a request field.
func NewValidationError(field, message string) *DomainError {
	return &DomainError{
		Code:    ErrCodeValidation,
		Message: message,
		Field:   field,
	}
}

// Common domain errors
var (
	ErrValidation         = NewDomainError(ErrCodeValidation, "Request validation failed")
	ErrDuplicateCode      = NewDomainError(ErrCodeDuplicateCode, "Coupon code already exists")
	ErrNotFound           = NewDomainError(ErrCodeNotFound, "Coupon not found")
	ErrUsageLimitExceeded = NewDomainError(ErrCodeUsageLimitExceeded, "Coupon usage limit exceeded")
	ErrInvalidQuery       = NewDomainError(ErrCodeInvalidQuery, "Search query is required")
	ErrStoreUnavailable   = NewDomainError(ErrCodeStoreUnavailable, "Storage is temporarily unavailable")
	ErrEmailTaken         = NewDomainError(ErrCodeEmailTaken, "User already exists")
	ErrInvalidCredentials = NewDomainError(ErrCodeInvalidCredentials, "Invalid credentials")
	ErrUnauthorised       = NewDomainError(ErrCodeUnauthorised, "Authentication required")
)
